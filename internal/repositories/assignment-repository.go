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

const assignmentSelectFields = `id, order_id, executor_id, assigned_by_id, status, assigned_at, updated_at`

type AssignmentRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, assignment *entities.ExecutorAssignment) error
	UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entities.AssignmentStatus) error
	FindActiveByOrder(ctx context.Context, orderID uuid.UUID) (*entities.ExecutorAssignment, error)
	FindActiveByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*entities.ExecutorAssignment, error)
	FindByOrderAndExecutorInTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, executorID uuid.UUID) (*entities.ExecutorAssignment, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entities.ExecutorAssignment, error)
}

type AssignmentRepository struct {
	storage *pgxpool.Pool
}

func NewAssignmentRepository(storage *pgxpool.Pool) AssignmentRepositoryInterface {
	return &AssignmentRepository{storage: storage}
}

func scanAssignment(row pgx.Row) (*entities.ExecutorAssignment, error) {
	var a entities.ExecutorAssignment
	err := row.Scan(&a.ID, &a.OrderID, &a.ExecutorID, &a.AssignedByID, &a.Status, &a.AssignedAt, &a.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrAssignmentNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования назначения: %w", err)
	}
	return &a, nil
}

func (r *AssignmentRepository) Create(ctx context.Context, tx pgx.Tx, assignment *entities.ExecutorAssignment) error {
	query := `
		INSERT INTO executor_assignments (id, order_id, executor_id, assigned_by_id, status, assigned_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, query,
		assignment.ID, assignment.OrderID, assignment.ExecutorID,
		assignment.AssignedByID, assignment.Status, assignment.AssignedAt, assignment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания назначения: %w", err)
	}
	return nil
}

func (r *AssignmentRepository) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entities.AssignmentStatus) error {
	tag, err := tx.Exec(ctx,
		`UPDATE executor_assignments SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("ошибка обновления статуса назначения: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrAssignmentNotFound
	}
	return nil
}

// FindActiveByOrder возвращает последнее неотклоненное назначение заказа.
func (r *AssignmentRepository) FindActiveByOrder(ctx context.Context, orderID uuid.UUID) (*entities.ExecutorAssignment, error) {
	return r.findActive(ctx, r.storage, orderID)
}

func (r *AssignmentRepository) FindActiveByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*entities.ExecutorAssignment, error) {
	return r.findActive(ctx, tx, orderID)
}

func (r *AssignmentRepository) findActive(ctx context.Context, q querier, orderID uuid.UUID) (*entities.ExecutorAssignment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM executor_assignments
		WHERE order_id = $1 AND status <> 'DECLINED'
		ORDER BY assigned_at DESC
		LIMIT 1`, assignmentSelectFields)
	return scanAssignment(q.QueryRow(ctx, query, orderID))
}

// FindByOrderAndExecutorInTx ищет назначение конкретного исполнителя на заказ
// независимо от статуса.
func (r *AssignmentRepository) FindByOrderAndExecutorInTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, executorID uuid.UUID) (*entities.ExecutorAssignment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM executor_assignments
		WHERE order_id = $1 AND executor_id = $2
		ORDER BY assigned_at DESC
		LIMIT 1`, assignmentSelectFields)
	return scanAssignment(tx.QueryRow(ctx, query, orderID, executorID))
}

func (r *AssignmentRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entities.ExecutorAssignment, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM executor_assignments
		WHERE order_id = $1
		ORDER BY assigned_at ASC`, assignmentSelectFields)

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения назначений: %w", err)
	}
	defer rows.Close()

	assignments := make([]entities.ExecutorAssignment, 0)
	for rows.Next() {
		a, err := scanAssignment(rows)
		if err != nil {
			return nil, err
		}
		assignments = append(assignments, *a)
	}
	return assignments, rows.Err()
}
