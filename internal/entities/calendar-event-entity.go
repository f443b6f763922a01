package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type ExecutorCalendarEvent struct {
	ID          uuid.UUID      `json:"id" db:"id"`
	ExecutorID  uuid.UUID      `json:"executor_id" db:"executor_id"`
	OrderID     uuid.NullUUID  `json:"order_id" db:"order_id"`
	Title       null.String    `json:"title" db:"title"`
	Description null.String    `json:"description" db:"description"`
	StartTime   time.Time      `json:"start_time" db:"start_time"`
	EndTime     time.Time      `json:"end_time" db:"end_time"`
	Status      CalendarStatus `json:"status" db:"status"`
	Location    null.String    `json:"location" db:"location"`
	Notes       null.String    `json:"notes" db:"notes"`
	CreatedAt   time.Time      `json:"created_at" db:"created_at"`
}
