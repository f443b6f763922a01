package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remodel-system/internal/entities"
	apperrors "remodel-system/pkg/errors"
)

const userSelectFields = `id, email, full_name, password_hash, role, department_code, is_active, created_at`

type UserRepositoryInterface interface {
	FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	FindByEmail(ctx context.Context, email string) (*entities.User, error)
	ListByRole(ctx context.Context, role string) ([]entities.User, error)
	Create(ctx context.Context, user *entities.User) error
}

type UserRepository struct {
	storage *pgxpool.Pool
}

func NewUserRepository(storage *pgxpool.Pool) UserRepositoryInterface {
	return &UserRepository{storage: storage}
}

func scanUser(row pgx.Row) (*entities.User, error) {
	var u entities.User
	err := row.Scan(&u.ID, &u.Email, &u.FullName, &u.PasswordHash, &u.Role, &u.DepartmentCode, &u.IsActive, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования пользователя: %w", err)
	}
	return &u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE id = $1`, userSelectFields)
	return scanUser(r.storage.QueryRow(ctx, query, id))
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE LOWER(email) = LOWER($1)`, userSelectFields)
	return scanUser(r.storage.QueryRow(ctx, query, email))
}

func (r *UserRepository) ListByRole(ctx context.Context, role string) ([]entities.User, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE role = $1 AND is_active ORDER BY full_name`, userSelectFields)

	rows, err := r.storage.Query(ctx, query, role)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователей: %w", err)
	}
	defer rows.Close()

	users := make([]entities.User, 0)
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *UserRepository) Create(ctx context.Context, user *entities.User) error {
	query := `
		INSERT INTO users (id, email, full_name, password_hash, role, department_code, is_active, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.storage.Exec(ctx, query,
		user.ID, user.Email, user.FullName, user.PasswordHash,
		user.Role, user.DepartmentCode, user.IsActive, user.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания пользователя: %w", err)
	}
	return nil
}
