package events

import (
	"github.com/google/uuid"

	"remodel-system/internal/entities"
)

const OrderStatusChangedName = "order.status_changed"

// OrderStatusChanged публикуется после коммита каждого перехода статуса.
type OrderStatusChanged struct {
	OrderID   uuid.UUID
	OldStatus entities.OrderStatus
	NewStatus entities.OrderStatus
	ActorID   uuid.NullUUID
	Comment   string
}

func (OrderStatusChanged) Name() string { return OrderStatusChangedName }
