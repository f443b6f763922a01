package entities

import (
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"remodel-system/internal/plan"
)

// Типы версий плана. На один заказ хранится не более одной версии каждого типа.
const (
	VersionOriginal       = "ORIGINAL"
	VersionModified       = "MODIFIED"
	VersionExecutorEdited = "EXECUTOR_EDITED"
	VersionFinal          = "FINAL"
)

// NormalizeVersionType приводит тип версии к верхнему регистру.
func NormalizeVersionType(v string) string {
	return strings.ToUpper(strings.TrimSpace(v))
}

type OrderPlanVersion struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	OrderID     uuid.UUID     `json:"order_id" db:"order_id"`
	VersionType string        `json:"version_type" db:"version_type"`
	Plan        plan.Document `json:"plan" db:"plan"`
	IsApplied   bool          `json:"is_applied" db:"is_applied"`
	Comment     null.String   `json:"comment" db:"comment"`
	CreatedByID uuid.NullUUID `json:"created_by_id" db:"created_by_id"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
