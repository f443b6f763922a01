package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type AiRule struct {
	ID               uuid.UUID   `json:"id" db:"id"`
	Name             string      `json:"name" db:"name"`
	Description      null.String `json:"description" db:"description"`
	RiskType         string      `json:"risk_type" db:"risk_type"`
	Severity         int         `json:"severity" db:"severity"`
	TriggerCondition null.String `json:"trigger_condition" db:"trigger_condition"`
	IsEnabled        bool        `json:"is_enabled" db:"is_enabled"`
	CreatedAt        time.Time   `json:"created_at" db:"created_at"`
}
