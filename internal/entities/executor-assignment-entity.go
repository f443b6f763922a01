package entities

import (
	"time"

	"github.com/google/uuid"
)

type ExecutorAssignment struct {
	ID           uuid.UUID        `json:"id" db:"id"`
	OrderID      uuid.UUID        `json:"order_id" db:"order_id"`
	ExecutorID   uuid.UUID        `json:"executor_id" db:"executor_id"`
	AssignedByID uuid.NullUUID    `json:"assigned_by_id" db:"assigned_by_id"`
	Status       AssignmentStatus `json:"status" db:"status"`
	AssignedAt   time.Time        `json:"assigned_at" db:"assigned_at"`
	UpdatedAt    time.Time        `json:"updated_at" db:"updated_at"`

	Executor *User `db:"-" json:"executor,omitempty"`
}
