package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type RiskFindingDTO struct {
	RuleName string `json:"rule_name"`
	RiskType string `json:"risk_type"`
	Severity int    `json:"severity"`
	Message  string `json:"message"`
}

type RiskAnalysisDTO struct {
	DecisionStatus string           `json:"decision_status"`
	Summary        string           `json:"summary"`
	Findings       []RiskFindingDTO `json:"findings"`
}

type CreateAiRuleDTO struct {
	Name             string      `json:"name" validate:"required"`
	Description      null.String `json:"description" validate:"omitempty"`
	RiskType         string      `json:"risk_type" validate:"required"`
	Severity         int         `json:"severity" validate:"required,gte=1,lte=5"`
	TriggerCondition null.String `json:"trigger_condition" validate:"omitempty"`
	IsEnabled        *bool       `json:"is_enabled" validate:"omitempty"`
}

type UpdateAiRuleDTO struct {
	ID               uuid.UUID   `json:"id" validate:"required"`
	Name             *string     `json:"name" validate:"omitempty"`
	Description      null.String `json:"description" validate:"omitempty"`
	RiskType         *string     `json:"risk_type" validate:"omitempty"`
	Severity         *int        `json:"severity" validate:"omitempty,gte=1,lte=5"`
	TriggerCondition null.String `json:"trigger_condition" validate:"omitempty"`
	IsEnabled        *bool       `json:"is_enabled" validate:"omitempty"`
}
