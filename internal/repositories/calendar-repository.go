package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"remodel-system/internal/entities"
	apperrors "remodel-system/pkg/errors"
)

const calendarSelectFields = `id, executor_id, order_id, title, description, start_time, end_time, status, location, notes, created_at`

type CalendarRepositoryInterface interface {
	Create(ctx context.Context, tx pgx.Tx, event *entities.ExecutorCalendarEvent) error
	Update(ctx context.Context, tx pgx.Tx, event *entities.ExecutorCalendarEvent) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.ExecutorCalendarEvent, error)
	FindPlannedByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*entities.ExecutorCalendarEvent, error)
	ListByExecutor(ctx context.Context, executorID uuid.UUID, from, to time.Time) ([]entities.ExecutorCalendarEvent, error)
	ListAll(ctx context.Context, from, to time.Time) ([]entities.ExecutorCalendarEvent, error)
	ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entities.ExecutorCalendarEvent, error)
}

type CalendarRepository struct {
	storage *pgxpool.Pool
}

func NewCalendarRepository(storage *pgxpool.Pool) CalendarRepositoryInterface {
	return &CalendarRepository{storage: storage}
}

func scanCalendarEvent(row pgx.Row) (*entities.ExecutorCalendarEvent, error) {
	var e entities.ExecutorCalendarEvent
	err := row.Scan(
		&e.ID, &e.ExecutorID, &e.OrderID, &e.Title, &e.Description,
		&e.StartTime, &e.EndTime, &e.Status, &e.Location, &e.Notes, &e.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования события календаря: %w", err)
	}
	return &e, nil
}

func (r *CalendarRepository) Create(ctx context.Context, tx pgx.Tx, event *entities.ExecutorCalendarEvent) error {
	query := `
		INSERT INTO executor_calendar_events
			(id, executor_id, order_id, title, description, start_time, end_time, status, location, notes, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)`

	_, err := tx.Exec(ctx, query,
		event.ID, event.ExecutorID, event.OrderID, event.Title, event.Description,
		event.StartTime, event.EndTime, event.Status, event.Location, event.Notes, event.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания события календаря: %w", err)
	}
	return nil
}

func (r *CalendarRepository) Update(ctx context.Context, tx pgx.Tx, event *entities.ExecutorCalendarEvent) error {
	query := `
		UPDATE executor_calendar_events SET
			title = $2, description = $3, start_time = $4, end_time = $5,
			status = $6, location = $7, notes = $8
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		event.ID, event.Title, event.Description, event.StartTime, event.EndTime,
		event.Status, event.Location, event.Notes,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления события календаря: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func (r *CalendarRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.ExecutorCalendarEvent, error) {
	query := fmt.Sprintf(`SELECT %s FROM executor_calendar_events WHERE id = $1`, calendarSelectFields)
	return scanCalendarEvent(r.storage.QueryRow(ctx, query, id))
}

// FindPlannedByOrderInTx ищет запланированный визит по заказу для переноса даты.
func (r *CalendarRepository) FindPlannedByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*entities.ExecutorCalendarEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM executor_calendar_events
		WHERE order_id = $1 AND status = 'PLANNED'
		ORDER BY created_at DESC
		LIMIT 1`, calendarSelectFields)
	return scanCalendarEvent(tx.QueryRow(ctx, query, orderID))
}

func (r *CalendarRepository) ListByExecutor(ctx context.Context, executorID uuid.UUID, from, to time.Time) ([]entities.ExecutorCalendarEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM executor_calendar_events
		WHERE executor_id = $1 AND start_time >= $2 AND start_time < $3
		ORDER BY start_time ASC`, calendarSelectFields)

	rows, err := r.storage.Query(ctx, query, executorID, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения календаря исполнителя: %w", err)
	}
	defer rows.Close()
	return collectCalendarEvents(rows)
}

// ListAll возвращает события всех исполнителей для календаря администратора.
func (r *CalendarRepository) ListAll(ctx context.Context, from, to time.Time) ([]entities.ExecutorCalendarEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM executor_calendar_events
		WHERE start_time >= $1 AND start_time < $2
		ORDER BY start_time ASC`, calendarSelectFields)

	rows, err := r.storage.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения общего календаря: %w", err)
	}
	defer rows.Close()
	return collectCalendarEvents(rows)
}

func (r *CalendarRepository) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entities.ExecutorCalendarEvent, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM executor_calendar_events
		WHERE order_id = $1
		ORDER BY start_time ASC`, calendarSelectFields)

	rows, err := r.storage.Query(ctx, query, orderID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения событий заказа: %w", err)
	}
	defer rows.Close()
	return collectCalendarEvents(rows)
}

func collectCalendarEvents(rows pgx.Rows) ([]entities.ExecutorCalendarEvent, error) {
	events := make([]entities.ExecutorCalendarEvent, 0)
	for rows.Next() {
		e, err := scanCalendarEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}
