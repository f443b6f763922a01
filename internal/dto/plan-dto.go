package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"remodel-system/internal/plan"
)

type SavePlanVersionDTO struct {
	VersionType string        `json:"version_type" validate:"required"`
	Plan        plan.Document `json:"plan" validate:"required"`
	Comment     null.String   `json:"comment" validate:"omitempty"`
}

// ParseResultDTO — результат внешнего распознавания техпаспорта БТИ.
// Принимается как исходная версия плана заказа.
type ParseResultDTO struct {
	Plan     plan.Document  `json:"plan" validate:"required"`
	Warnings []string       `json:"warnings" validate:"omitempty"`
	Source   null.String    `json:"source" validate:"omitempty"`
	Raw      map[string]any `json:"raw" validate:"omitempty"`
}

type EditPlanDTO struct {
	Plan    plan.Document `json:"plan" validate:"required"`
	Comment null.String   `json:"comment" validate:"omitempty"`
}

type ApprovePlanDTO struct {
	Comment null.String `json:"comment" validate:"omitempty"`
}

type RejectPlanDTO struct {
	Comment string   `json:"comment" validate:"required"`
	Issues  []string `json:"issues" validate:"omitempty"`
}

type PlanVersionSummaryDTO struct {
	ID          uuid.UUID   `json:"id"`
	VersionType string      `json:"version_type"`
	IsApplied   bool        `json:"is_applied"`
	Comment     null.String `json:"comment"`
	CreatedBy   null.String `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
}

type PlanVersionDTO struct {
	PlanVersionSummaryDTO
	Plan plan.Document `json:"plan"`
}

// BeforeAfterDTO — исходный и актуальный планы для сравнения на клиенте.
type BeforeAfterDTO struct {
	Before *plan.Document `json:"before"`
	After  *plan.Document `json:"after"`
}

type PlanDiffDTO struct {
	FromVersion string          `json:"from_version"`
	ToVersion   string          `json:"to_version"`
	Diff        plan.DiffResult `json:"diff"`
}

type SplitViewDTO struct {
	VersionType string        `json:"version_type"`
	Plan        plan.Document `json:"plan"`
}
