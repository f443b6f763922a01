package seeders

import (
	"context"
	"log"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

func seedAiRules(ctx context.Context, db *pgxpool.Pool) error {
	log.Println("  - Наполнение таблицы 'ai_rules'...")

	query := `INSERT INTO ai_rules (id, name, description, risk_type, severity, trigger_condition, is_enabled)
			  SELECT $1, $2, $3, $4, $5, $6, TRUE
			  WHERE NOT EXISTS (SELECT 1 FROM ai_rules WHERE risk_type = $4);`

	for _, r := range aiRulesData {
		if _, err := db.Exec(ctx, query, uuid.New(), r.Name, r.Description, r.RiskType, r.Severity, r.TriggerCondition); err != nil {
			log.Printf("Ошибка при вставке правила '%s': %v", r.Name, err)
			return err
		}
	}
	return nil
}
