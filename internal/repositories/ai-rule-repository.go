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

const aiRuleSelectFields = `id, name, description, risk_type, severity, trigger_condition, is_enabled, created_at`

type AiRuleRepositoryInterface interface {
	ListEnabled(ctx context.Context) ([]entities.AiRule, error)
	List(ctx context.Context) ([]entities.AiRule, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entities.AiRule, error)
	Create(ctx context.Context, rule *entities.AiRule) error
	Update(ctx context.Context, rule *entities.AiRule) error
}

type AiRuleRepository struct {
	storage *pgxpool.Pool
}

func NewAiRuleRepository(storage *pgxpool.Pool) AiRuleRepositoryInterface {
	return &AiRuleRepository{storage: storage}
}

func scanAiRule(row pgx.Row) (*entities.AiRule, error) {
	var rule entities.AiRule
	err := row.Scan(
		&rule.ID, &rule.Name, &rule.Description, &rule.RiskType,
		&rule.Severity, &rule.TriggerCondition, &rule.IsEnabled, &rule.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, apperrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("ошибка сканирования правила анализа: %w", err)
	}
	return &rule, nil
}

func (r *AiRuleRepository) list(ctx context.Context, onlyEnabled bool) ([]entities.AiRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM ai_rules`, aiRuleSelectFields)
	if onlyEnabled {
		query += ` WHERE is_enabled`
	}
	query += ` ORDER BY severity DESC, name`

	rows, err := r.storage.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения правил анализа: %w", err)
	}
	defer rows.Close()

	rules := make([]entities.AiRule, 0)
	for rows.Next() {
		rule, err := scanAiRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *rule)
	}
	return rules, rows.Err()
}

func (r *AiRuleRepository) ListEnabled(ctx context.Context) ([]entities.AiRule, error) {
	return r.list(ctx, true)
}

func (r *AiRuleRepository) List(ctx context.Context) ([]entities.AiRule, error) {
	return r.list(ctx, false)
}

func (r *AiRuleRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.AiRule, error) {
	query := fmt.Sprintf(`SELECT %s FROM ai_rules WHERE id = $1`, aiRuleSelectFields)
	return scanAiRule(r.storage.QueryRow(ctx, query, id))
}

func (r *AiRuleRepository) Create(ctx context.Context, rule *entities.AiRule) error {
	query := `
		INSERT INTO ai_rules (id, name, description, risk_type, severity, trigger_condition, is_enabled, created_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)`

	_, err := r.storage.Exec(ctx, query,
		rule.ID, rule.Name, rule.Description, rule.RiskType,
		rule.Severity, rule.TriggerCondition, rule.IsEnabled, rule.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("ошибка создания правила анализа: %w", err)
	}
	return nil
}

func (r *AiRuleRepository) Update(ctx context.Context, rule *entities.AiRule) error {
	query := `
		UPDATE ai_rules SET
			name = $2, description = $3, risk_type = $4,
			severity = $5, trigger_condition = $6, is_enabled = $7
		WHERE id = $1`

	tag, err := r.storage.Exec(ctx, query,
		rule.ID, rule.Name, rule.Description, rule.RiskType,
		rule.Severity, rule.TriggerCondition, rule.IsEnabled,
	)
	if err != nil {
		return fmt.Errorf("ошибка обновления правила анализа: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
