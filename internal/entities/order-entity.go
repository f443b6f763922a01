package entities

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"remodel-system/pkg/types"
)

type Order struct {
	ID                    uuid.UUID   `json:"id" db:"id"`
	ClientID              uuid.UUID   `json:"client_id" db:"client_id"`
	CurrentDepartmentCode null.String `json:"current_department_code" db:"current_department_code"`
	DistrictCode          null.String `json:"district_code" db:"district_code"`
	HouseTypeCode         null.String `json:"house_type_code" db:"house_type_code"`

	Title       string      `json:"title" db:"title"`
	Description null.String `json:"description" db:"description"`
	Address     null.String `json:"address" db:"address"`
	Area        null.Float64 `json:"area" db:"area"`
	Complexity  null.String `json:"complexity" db:"complexity"`

	Status OrderStatus `json:"status" db:"status"`

	CalculatorInput map[string]any `json:"calculator_input,omitempty" db:"calculator_input"`
	EstimatedPrice  null.Float64   `json:"estimated_price" db:"estimated_price"`
	TotalPrice      null.Float64   `json:"total_price" db:"total_price"`

	AiDecisionStatus  null.String `json:"ai_decision_status" db:"ai_decision_status"`
	AiDecisionSummary null.String `json:"ai_decision_summary" db:"ai_decision_summary"`

	PlannedVisitAt null.Time `json:"planned_visit_at" db:"planned_visit_at"`
	CompletedAt    null.Time `json:"completed_at" db:"completed_at"`

	types.BaseEntity

	// Поля для связанных данных (не колонки в таблице)
	Client   *User               `db:"-" json:"client,omitempty"`
	Executor *User               `db:"-" json:"executor,omitempty"`
	History  []OrderStatusHistory `db:"-" json:"history,omitempty"`
}
