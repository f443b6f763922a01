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

const planVersionSelectFields = `id, order_id, version_type, plan, is_applied, comment, created_by_id, created_at`

type PlanVersionRepositoryInterface interface {
	Upsert(ctx context.Context, tx pgx.Tx, version *entities.OrderPlanVersion) (*entities.OrderPlanVersion, error)
	FindByType(ctx context.Context, orderID uuid.UUID, versionType string) (*entities.OrderPlanVersion, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entities.OrderPlanVersion, error)
}

type PlanVersionRepository struct {
	storage *pgxpool.Pool
}

func NewPlanVersionRepository(storage *pgxpool.Pool) PlanVersionRepositoryInterface {
	return &PlanVersionRepository{storage: storage}
}

func scanPlanVersion(row pgx.Row) (*entities.OrderPlanVersion, error) {
	var v entities.OrderPlanVersion
	err := row.Scan(
		&v.ID, &v.OrderID, &v.VersionType, &v.Plan,
		&v.IsApplied, &v.Comment, &v.CreatedByID, &v.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrPlanVersionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования версии плана: %w", err)
	}
	return &v, nil
}

// Upsert сохраняет версию плана с перезаписью по паре (order_id, тип версии).
// Существующая версия того же типа обновляется на месте, id и created_at
// сохраняются; пустой комментарий и пустой автор не затирают прежние значения.
func (r *PlanVersionRepository) Upsert(ctx context.Context, tx pgx.Tx, version *entities.OrderPlanVersion) (*entities.OrderPlanVersion, error) {
	query := fmt.Sprintf(`
		INSERT INTO order_plan_versions (id, order_id, version_type, plan, is_applied, comment, created_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (order_id, UPPER(version_type)) DO UPDATE SET
			plan          = EXCLUDED.plan,
			comment       = COALESCE(NULLIF(EXCLUDED.comment, ''), order_plan_versions.comment),
			created_by_id = COALESCE(EXCLUDED.created_by_id, order_plan_versions.created_by_id)
		RETURNING %s`, planVersionSelectFields)

	saved, err := scanPlanVersion(tx.QueryRow(ctx, query,
		version.ID, version.OrderID, version.VersionType, version.Plan,
		version.IsApplied, version.Comment, version.CreatedByID, version.CreatedAt,
	))
	if err != nil {
		return nil, fmt.Errorf("ошибка сохранения версии плана: %w", err)
	}
	return saved, nil
}

func (r *PlanVersionRepository) FindByType(ctx context.Context, orderID uuid.UUID, versionType string) (*entities.OrderPlanVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM order_plan_versions
		WHERE order_id = $1 AND UPPER(version_type) = UPPER($2)`, planVersionSelectFields)
	return scanPlanVersion(r.storage.QueryRow(ctx, query, orderID, versionType))
}

func (r *PlanVersionRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entities.OrderPlanVersion, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM order_plan_versions
		WHERE order_id = $1
		ORDER BY created_at ASC`, planVersionSelectFields)

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения версий плана: %w", err)
	}
	defer rows.Close()

	versions := make([]entities.OrderPlanVersion, 0)
	for rows.Next() {
		v, err := scanPlanVersion(rows)
		if err != nil {
			return nil, err
		}
		versions = append(versions, *v)
	}
	return versions, rows.Err()
}
