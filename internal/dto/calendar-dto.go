package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type CreateCalendarEventDTO struct {
	OrderID     uuid.NullUUID `json:"order_id" validate:"omitempty"`
	Title       null.String   `json:"title" validate:"omitempty"`
	Description null.String   `json:"description" validate:"omitempty"`
	StartTime   time.Time     `json:"start_time" validate:"required"`
	EndTime     time.Time     `json:"end_time" validate:"required,gtfield=StartTime"`
	Location    null.String   `json:"location" validate:"omitempty"`
	Notes       null.String   `json:"notes" validate:"omitempty"`
}

type UpdateCalendarEventDTO struct {
	Title       null.String `json:"title" validate:"omitempty"`
	Description null.String `json:"description" validate:"omitempty"`
	StartTime   *time.Time  `json:"start_time" validate:"omitempty"`
	EndTime     *time.Time  `json:"end_time" validate:"omitempty"`
	Status      *string     `json:"status" validate:"omitempty,oneof=PLANNED DONE CANCELLED"`
	Location    null.String `json:"location" validate:"omitempty"`
	Notes       null.String `json:"notes" validate:"omitempty"`
}
