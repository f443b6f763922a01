package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remodel-system/internal/entities"
)

type OrderHistoryRepositoryInterface interface {
	AddEntry(ctx context.Context, tx pgx.Tx, entry *entities.OrderStatusHistory) error
	GetHistory(ctx context.Context, orderID uuid.UUID) ([]entities.OrderStatusHistory, error)
}

type OrderHistoryRepository struct {
	storage *pgxpool.Pool
}

func NewOrderHistoryRepository(storage *pgxpool.Pool) OrderHistoryRepositoryInterface {
	return &OrderHistoryRepository{storage: storage}
}

// AddEntry пишется только в транзакции вместе со сменой статуса заказа.
func (r *OrderHistoryRepository) AddEntry(ctx context.Context, tx pgx.Tx, entry *entities.OrderStatusHistory) error {
	query := `
		INSERT INTO order_status_history (id, order_id, status, comment, changed_by_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	_, err := tx.Exec(ctx, query,
		entry.ID, entry.OrderID, entry.Status, entry.Comment, entry.ChangedByID, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка записи истории статусов: %w", err)
	}
	return nil
}

func (r *OrderHistoryRepository) GetHistory(ctx context.Context, orderID uuid.UUID) ([]entities.OrderStatusHistory, error) {
	query := `
		SELECT id, order_id, status, comment, changed_by_id, created_at
		FROM order_status_history
		WHERE order_id = $1
		ORDER BY created_at ASC`

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения истории статусов: %w", err)
	}
	defer rows.Close()

	history := make([]entities.OrderStatusHistory, 0)
	for rows.Next() {
		var h entities.OrderStatusHistory
		if err := rows.Scan(&h.ID, &h.OrderID, &h.Status, &h.Comment, &h.ChangedByID, &h.CreatedAt); err != nil {
			return nil, fmt.Errorf("ошибка сканирования записи истории: %w", err)
		}
		history = append(history, h)
	}
	return history, rows.Err()
}
