package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remodel-system/internal/entities"
	apperrors "remodel-system/pkg/errors"
)

// DirectoryRepositoryInterface покрывает справочники районов, типов домов и отделов.
type DirectoryRepositoryInterface interface {
	GetDistricts(ctx context.Context) ([]entities.District, error)
	FindDistrict(ctx context.Context, code string) (*entities.District, error)
	GetHouseTypes(ctx context.Context) ([]entities.HouseType, error)
	FindHouseType(ctx context.Context, code string) (*entities.HouseType, error)
	GetDepartments(ctx context.Context) ([]entities.Department, error)
}

type DirectoryRepository struct {
	storage *pgxpool.Pool
}

func NewDirectoryRepository(storage *pgxpool.Pool) DirectoryRepositoryInterface {
	return &DirectoryRepository{storage: storage}
}

func (r *DirectoryRepository) GetDistricts(ctx context.Context) ([]entities.District, error) {
	rows, err := r.storage.Query(ctx, `SELECT code, name, price_coef FROM districts ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения районов: %w", err)
	}
	defer rows.Close()

	items := make([]entities.District, 0)
	for rows.Next() {
		var d entities.District
		if err := rows.Scan(&d.Code, &d.Name, &d.PriceCoef); err != nil {
			return nil, fmt.Errorf("ошибка сканирования района: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}

func (r *DirectoryRepository) FindDistrict(ctx context.Context, code string) (*entities.District, error) {
	var d entities.District
	err := r.storage.QueryRow(ctx,
		`SELECT code, name, price_coef FROM districts WHERE code = $1`, code).
		Scan(&d.Code, &d.Name, &d.PriceCoef)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска района: %w", err)
	}
	return &d, nil
}

func (r *DirectoryRepository) GetHouseTypes(ctx context.Context) ([]entities.HouseType, error) {
	rows, err := r.storage.Query(ctx, `SELECT code, name, price_coef FROM house_types ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения типов домов: %w", err)
	}
	defer rows.Close()

	items := make([]entities.HouseType, 0)
	for rows.Next() {
		var h entities.HouseType
		if err := rows.Scan(&h.Code, &h.Name, &h.PriceCoef); err != nil {
			return nil, fmt.Errorf("ошибка сканирования типа дома: %w", err)
		}
		items = append(items, h)
	}
	return items, rows.Err()
}

func (r *DirectoryRepository) FindHouseType(ctx context.Context, code string) (*entities.HouseType, error) {
	var h entities.HouseType
	err := r.storage.QueryRow(ctx,
		`SELECT code, name, price_coef FROM house_types WHERE code = $1`, code).
		Scan(&h.Code, &h.Name, &h.PriceCoef)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска типа дома: %w", err)
	}
	return &h, nil
}

func (r *DirectoryRepository) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	rows, err := r.storage.Query(ctx, `SELECT code, name FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения отделов: %w", err)
	}
	defer rows.Close()

	items := make([]entities.Department, 0)
	for rows.Next() {
		var d entities.Department
		if err := rows.Scan(&d.Code, &d.Name); err != nil {
			return nil, fmt.Errorf("ошибка сканирования отдела: %w", err)
		}
		items = append(items, d)
	}
	return items, rows.Err()
}
