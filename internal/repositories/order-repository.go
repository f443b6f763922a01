package repositories

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"remodel-system/internal/entities"
	apperrors "remodel-system/pkg/errors"
	"remodel-system/pkg/types"
)

const orderTable = "orders"

const orderSelectFields = `o.id, o.client_id, o.current_department_code, o.district_code, o.house_type_code,
	o.title, o.description, o.address, o.area, o.complexity, o.status,
	o.calculator_input, o.estimated_price, o.total_price,
	o.ai_decision_status, o.ai_decision_summary,
	o.planned_visit_at, o.completed_at, o.created_at, o.updated_at`

var orderAllowedSortFields = map[string]string{
	"created_at": "o.created_at",
	"updated_at": "o.updated_at",
	"status":     "o.status",
	"title":      "o.title",
}

type OrderRepositoryInterface interface {
	GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error)
	GetOrdersByClient(ctx context.Context, clientID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error)
	GetOrdersByExecutor(ctx context.Context, executorID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error)
	FindOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error)
	FindOrderForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Order, error)
	CreateOrder(ctx context.Context, tx pgx.Tx, order *entities.Order) error
	UpdateOrder(ctx context.Context, tx pgx.Tx, order *entities.Order) error
}

type OrderRepository struct {
	storage *pgxpool.Pool
	logger  *zap.Logger
}

func NewOrderRepository(storage *pgxpool.Pool, logger *zap.Logger) OrderRepositoryInterface {
	return &OrderRepository{storage: storage, logger: logger}
}

func scanOrder(row pgx.Row) (*entities.Order, error) {
	var o entities.Order
	err := row.Scan(
		&o.ID, &o.ClientID, &o.CurrentDepartmentCode, &o.DistrictCode, &o.HouseTypeCode,
		&o.Title, &o.Description, &o.Address, &o.Area, &o.Complexity, &o.Status,
		&o.CalculatorInput, &o.EstimatedPrice, &o.TotalPrice,
		&o.AiDecisionStatus, &o.AiDecisionSummary,
		&o.PlannedVisitAt, &o.CompletedAt, &o.CreatedAt, &o.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования заказа: %w", err)
	}
	return &o, nil
}

func (r *OrderRepository) baseSelect(filter types.Filter) sq.SelectBuilder {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	b := psql.Select().From(orderTable + " o")

	if filter.Search != "" {
		like := "%" + filter.Search + "%"
		b = b.Where(sq.Or{
			sq.ILike{"o.title": like},
			sq.ILike{"o.address": like},
		})
	}
	if v, ok := filter.Filter["status"]; ok {
		b = b.Where(sq.Eq{"o.status": v})
	}
	if v, ok := filter.Filter["department_code"]; ok {
		b = b.Where(sq.Eq{"o.current_department_code": v})
	}
	if v, ok := filter.Filter["district_code"]; ok {
		b = b.Where(sq.Eq{"o.district_code": v})
	}
	if v, ok := filter.Filter["executor_id"]; ok {
		b = b.Where(`EXISTS (
			SELECT 1 FROM executor_assignments ea
			WHERE ea.order_id = o.id AND ea.executor_id = ? AND ea.status <> 'DECLINED')`, v)
	}
	return b
}

func (r *OrderRepository) queryOrders(ctx context.Context, base sq.SelectBuilder, filter types.Filter) ([]entities.Order, uint64, error) {
	countQuery, countArgs, err := base.Columns("COUNT(o.id)").ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки COUNT-запроса: %w", err)
	}
	var total uint64
	if err = r.storage.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("ошибка подсчета заказов: %w", err)
	}
	if total == 0 {
		return []entities.Order{}, 0, nil
	}

	orderBy := "o.created_at DESC"
	for field, dir := range filter.Sort {
		col, ok := orderAllowedSortFields[field]
		if !ok {
			continue
		}
		if dir != "asc" && dir != "desc" {
			dir = "desc"
		}
		orderBy = col + " " + dir
		break
	}

	main := base.Columns(orderSelectFields).OrderBy(orderBy)
	if filter.WithPagination {
		main = main.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}
	query, args, err := main.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка сборки запроса заказов: %w", err)
	}
	r.logger.Debug("Выполнение SQL-запроса списка заказов", zap.String("query", query))

	rows, err := r.storage.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("ошибка получения списка заказов: %w", err)
	}
	defer rows.Close()

	orders := make([]entities.Order, 0)
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, *o)
	}
	return orders, total, rows.Err()
}

func (r *OrderRepository) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	return r.queryOrders(ctx, r.baseSelect(filter), filter)
}

func (r *OrderRepository) GetOrdersByClient(ctx context.Context, clientID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error) {
	base := r.baseSelect(filter).Where(sq.Eq{"o.client_id": clientID})
	return r.queryOrders(ctx, base, filter)
}

func (r *OrderRepository) GetOrdersByExecutor(ctx context.Context, executorID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error) {
	base := r.baseSelect(filter).Where(`EXISTS (
		SELECT 1 FROM executor_assignments ea
		WHERE ea.order_id = o.id AND ea.executor_id = ? AND ea.status <> 'DECLINED')`, executorID)
	return r.queryOrders(ctx, base, filter)
}

func (r *OrderRepository) FindOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s o WHERE o.id = $1`, orderSelectFields, orderTable)
	return scanOrder(r.storage.QueryRow(ctx, query, id))
}

// FindOrderForUpdate читает заказ в транзакции с блокировкой строки.
func (r *OrderRepository) FindOrderForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Order, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s o WHERE o.id = $1 FOR UPDATE`, orderSelectFields, orderTable)
	return scanOrder(tx.QueryRow(ctx, query, id))
}

func (r *OrderRepository) CreateOrder(ctx context.Context, tx pgx.Tx, order *entities.Order) error {
	query := `
		INSERT INTO orders (
			id, client_id, current_department_code, district_code, house_type_code,
			title, description, address, area, complexity, status,
			calculator_input, estimated_price, total_price,
			ai_decision_status, ai_decision_summary,
			planned_visit_at, completed_at, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20)`

	_, err := tx.Exec(ctx, query,
		order.ID, order.ClientID, order.CurrentDepartmentCode, order.DistrictCode, order.HouseTypeCode,
		order.Title, order.Description, order.Address, order.Area, order.Complexity, order.Status,
		order.CalculatorInput, order.EstimatedPrice, order.TotalPrice,
		order.AiDecisionStatus, order.AiDecisionSummary,
		order.PlannedVisitAt, order.CompletedAt, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания заказа: %w", err)
	}
	return nil
}

func (r *OrderRepository) UpdateOrder(ctx context.Context, tx pgx.Tx, order *entities.Order) error {
	query := `
		UPDATE orders SET
			current_department_code = $2, district_code = $3, house_type_code = $4,
			title = $5, description = $6, address = $7, area = $8, complexity = $9, status = $10,
			calculator_input = $11, estimated_price = $12, total_price = $13,
			ai_decision_status = $14, ai_decision_summary = $15,
			planned_visit_at = $16, completed_at = $17, updated_at = NOW()
		WHERE id = $1`

	tag, err := tx.Exec(ctx, query,
		order.ID,
		order.CurrentDepartmentCode, order.DistrictCode, order.HouseTypeCode,
		order.Title, order.Description, order.Address, order.Area, order.Complexity, order.Status,
		order.CalculatorInput, order.EstimatedPrice, order.TotalPrice,
		order.AiDecisionStatus, order.AiDecisionSummary,
		order.PlannedVisitAt, order.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления заказа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
