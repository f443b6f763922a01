package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type OrderStatusHistory struct {
	ID          uuid.UUID     `json:"id" db:"id"`
	OrderID     uuid.UUID     `json:"order_id" db:"order_id"`
	Status      OrderStatus   `json:"status" db:"status"`
	Comment     null.String   `json:"comment" db:"comment"`
	ChangedByID uuid.NullUUID `json:"changed_by_id" db:"changed_by_id"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
}
