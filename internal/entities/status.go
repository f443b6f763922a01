package entities

import apperrors "remodel-system/pkg/errors"

// OrderStatus — закрытый перечислимый тип статусов заказа.
type OrderStatus string

const (
	StatusDraft                  OrderStatus = "DRAFT"
	StatusSubmitted              OrderStatus = "SUBMITTED"
	StatusExecutorAssigned       OrderStatus = "EXECUTOR_ASSIGNED"
	StatusVisitScheduled         OrderStatus = "VISIT_SCHEDULED"
	StatusDocumentsInProgress    OrderStatus = "DOCUMENTS_IN_PROGRESS"
	StatusReadyForApproval       OrderStatus = "READY_FOR_APPROVAL"
	StatusAwaitingClientApproval OrderStatus = "AWAITING_CLIENT_APPROVAL"
	StatusRejectedByExecutor     OrderStatus = "REJECTED_BY_EXECUTOR"
	StatusCompleted              OrderStatus = "COMPLETED"
	StatusCancelled              OrderStatus = "CANCELLED"
	StatusRejected               OrderStatus = "REJECTED"
)

var orderStatuses = map[OrderStatus]bool{
	StatusDraft:                  true,
	StatusSubmitted:              true,
	StatusExecutorAssigned:       true,
	StatusVisitScheduled:         true,
	StatusDocumentsInProgress:    true,
	StatusReadyForApproval:       true,
	StatusAwaitingClientApproval: true,
	StatusRejectedByExecutor:     true,
	StatusCompleted:              true,
	StatusCancelled:              true,
	StatusRejected:               true,
}

func (s OrderStatus) IsValid() bool {
	return orderStatuses[s]
}

// ParseOrderStatus превращает строку в статус заказа или возвращает ошибку.
func ParseOrderStatus(value string) (OrderStatus, error) {
	s := OrderStatus(value)
	if !s.IsValid() {
		return "", apperrors.ErrUnknownOrderStatus
	}
	return s, nil
}

// AssignmentStatus — статус назначения исполнителя.
type AssignmentStatus string

const (
	AssignmentAssigned  AssignmentStatus = "ASSIGNED"
	AssignmentAccepted  AssignmentStatus = "ACCEPTED"
	AssignmentDeclined  AssignmentStatus = "DECLINED"
	AssignmentCompleted AssignmentStatus = "COMPLETED"
)

// CalendarStatus — статус события в календаре исполнителя.
type CalendarStatus string

const (
	CalendarPlanned   CalendarStatus = "PLANNED"
	CalendarDone      CalendarStatus = "DONE"
	CalendarCancelled CalendarStatus = "CANCELLED"
)

// Роли пользователей.
const (
	RoleClient   = "client"
	RoleExecutor = "executor"
	RoleAdmin    = "admin"
)
