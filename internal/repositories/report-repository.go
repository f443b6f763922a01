package repositories

import (
	"context"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/aarondl/null/v8"
	"github.com/jackc/pgx/v5/pgxpool"

	"remodel-system/internal/entities"
)

type ReportFilter struct {
	DateFrom *time.Time
	DateTo   *time.Time
	Statuses []string
}

type ReportItem struct {
	OrderID        string
	Title          string
	Status         entities.OrderStatus
	ClientName     string
	ExecutorName   null.String
	DistrictName   null.String
	HouseTypeName  null.String
	Area           null.Float64
	EstimatedPrice null.Float64
	TotalPrice     null.Float64
	CreatedAt      time.Time
	CompletedAt    null.Time
}

type ReportRepositoryInterface interface {
	GetOrdersReport(ctx context.Context, filter ReportFilter) ([]ReportItem, error)
}

type reportRepository struct {
	db *pgxpool.Pool
}

func NewReportRepository(db *pgxpool.Pool) ReportRepositoryInterface {
	return &reportRepository{db: db}
}

func (r *reportRepository) GetOrdersReport(ctx context.Context, filter ReportFilter) ([]ReportItem, error) {
	psql := sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

	base := psql.Select(
		"o.id", "o.title", "o.status",
		"client.full_name",
		"executor.full_name",
		"d.name", "ht.name",
		"o.area", "o.estimated_price", "o.total_price",
		"o.created_at", "o.completed_at",
	).
		From("orders o").
		Join("users client ON o.client_id = client.id").
		LeftJoin(`executor_assignments ea ON ea.order_id = o.id AND ea.status <> 'DECLINED'`).
		LeftJoin("users executor ON ea.executor_id = executor.id").
		LeftJoin("districts d ON o.district_code = d.code").
		LeftJoin("house_types ht ON o.house_type_code = ht.code").
		OrderBy("o.created_at DESC")

	if filter.DateFrom != nil {
		base = base.Where(sq.GtOrEq{"o.created_at": *filter.DateFrom})
	}
	if filter.DateTo != nil {
		base = base.Where(sq.LtOrEq{"o.created_at": *filter.DateTo})
	}
	if len(filter.Statuses) > 0 {
		base = base.Where(sq.Eq{"o.status": filter.Statuses})
	}

	query, args, err := base.ToSql()
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки запроса отчета: %w", err)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выполнения запроса отчета: %w", err)
	}
	defer rows.Close()

	items := make([]ReportItem, 0)
	for rows.Next() {
		var item ReportItem
		err := rows.Scan(
			&item.OrderID, &item.Title, &item.Status,
			&item.ClientName, &item.ExecutorName,
			&item.DistrictName, &item.HouseTypeName,
			&item.Area, &item.EstimatedPrice, &item.TotalPrice,
			&item.CreatedAt, &item.CompletedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ошибка сканирования строки отчета: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
