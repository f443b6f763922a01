package listeners

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"remodel-system/internal/events"
	"remodel-system/pkg/eventbus"
)

// NotificationListener слушает переходы статусов и уведомляет участников.
// Сейчас уведомление — структурированная запись в лог; точка расширения
// для почты или мессенджера.
type NotificationListener struct {
	logger *zap.Logger
}

func NewNotificationListener(logger *zap.Logger) *NotificationListener {
	return &NotificationListener{logger: logger}
}

func (l *NotificationListener) Register(bus *eventbus.Bus) {
	bus.Subscribe(events.OrderStatusChangedName, l.onStatusChanged)
}

func (l *NotificationListener) onStatusChanged(ctx context.Context, event eventbus.Event) error {
	e, ok := event.(events.OrderStatusChanged)
	if !ok {
		return fmt.Errorf("неожиданный тип события: %T", event)
	}

	l.logger.Info("Статус заказа изменен",
		zap.String("orderId", e.OrderID.String()),
		zap.String("oldStatus", string(e.OldStatus)),
		zap.String("newStatus", string(e.NewStatus)),
		zap.String("comment", e.Comment),
	)
	return nil
}
