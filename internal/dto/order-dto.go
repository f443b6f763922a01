package dto

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"

	"remodel-system/internal/entities"
)

type CreateOrderDTO struct {
	Title           string         `json:"title" validate:"required"`
	Description     null.String    `json:"description" validate:"omitempty"`
	Address         null.String    `json:"address" validate:"omitempty"`
	Area            null.Float64   `json:"area" validate:"omitempty,gte=0"`
	Complexity      null.String    `json:"complexity" validate:"omitempty"`
	DistrictCode    null.String    `json:"district_code" validate:"omitempty"`
	HouseTypeCode   null.String    `json:"house_type_code" validate:"omitempty"`
	DepartmentCode  null.String    `json:"department_code" validate:"omitempty"`
	CalculatorInput map[string]any `json:"calculator_input" validate:"omitempty"`
}

type UpdateOrderDTO struct {
	Title           *string        `json:"title" validate:"omitempty"`
	Description     null.String    `json:"description" validate:"omitempty"`
	Address         null.String    `json:"address" validate:"omitempty"`
	Area            null.Float64   `json:"area" validate:"omitempty,gte=0"`
	Complexity      null.String    `json:"complexity" validate:"omitempty"`
	DistrictCode    null.String    `json:"district_code" validate:"omitempty"`
	HouseTypeCode   null.String    `json:"house_type_code" validate:"omitempty"`
	CalculatorInput map[string]any `json:"calculator_input" validate:"omitempty"`
}

// AdminUpdateOrderDTO — прямое редактирование заказа администратором,
// в обход машины состояний. Каждое изменение фиксируется в истории.
type AdminUpdateOrderDTO struct {
	Title            *string      `json:"title" validate:"omitempty"`
	Description      null.String  `json:"description" validate:"omitempty"`
	Address          null.String  `json:"address" validate:"omitempty"`
	Area             null.Float64 `json:"area" validate:"omitempty,gte=0"`
	Complexity       null.String  `json:"complexity" validate:"omitempty"`
	DistrictCode     null.String  `json:"district_code" validate:"omitempty"`
	HouseTypeCode    null.String  `json:"house_type_code" validate:"omitempty"`
	DepartmentCode   null.String  `json:"department_code" validate:"omitempty"`
	Status           *string      `json:"status" validate:"omitempty"`
	TotalPrice       null.Float64 `json:"total_price" validate:"omitempty,gte=0"`
	AiDecisionStatus null.String  `json:"ai_decision_status" validate:"omitempty"`
	PlannedVisitAt   null.Time    `json:"planned_visit_at" validate:"omitempty"`
	CompletedAt      null.Time    `json:"completed_at" validate:"omitempty"`
	Comment          null.String  `json:"comment" validate:"omitempty"`
}

// UpdateVisitDTO правит запланированный визит. Поле status принимает статус
// заказа: валидное значение переводит заказ без проверки допустимости
// перехода, опечатки отсекаются валидацией.
type UpdateVisitDTO struct {
	StartTime      *time.Time  `json:"start_time" validate:"omitempty"`
	EndTime        *time.Time  `json:"end_time" validate:"omitempty"`
	Location       null.String `json:"location" validate:"omitempty"`
	Notes          null.String `json:"notes" validate:"omitempty"`
	CalendarStatus *string     `json:"calendar_status" validate:"omitempty,oneof=PLANNED DONE CANCELLED"`
	Status         *string     `json:"status" validate:"omitempty,oneof=DRAFT SUBMITTED EXECUTOR_ASSIGNED VISIT_SCHEDULED DOCUMENTS_IN_PROGRESS READY_FOR_APPROVAL AWAITING_CLIENT_APPROVAL REJECTED_BY_EXECUTOR COMPLETED CANCELLED REJECTED"`
}

type AssignExecutorDTO struct {
	ExecutorID uuid.UUID   `json:"executor_id" validate:"required"`
	Comment    null.String `json:"comment" validate:"omitempty"`
}

type ScheduleVisitDTO struct {
	VisitAt  time.Time   `json:"visit_at" validate:"required"`
	EndTime  *time.Time  `json:"end_time" validate:"omitempty"`
	Location null.String `json:"location" validate:"omitempty"`
	Notes    null.String `json:"notes" validate:"omitempty"`
}

// AdminScheduleVisitDTO — планирование визита администратором. Исполнитель
// указывается явно, без него берется последнее назначение на заказ.
type AdminScheduleVisitDTO struct {
	ScheduleVisitDTO
	ExecutorID *uuid.UUID `json:"executor_id" validate:"omitempty"`
}

type DeclineOrderDTO struct {
	Reason string `json:"reason" validate:"required"`
}

type CancelOrderDTO struct {
	Comment null.String `json:"comment" validate:"omitempty"`
}

type ChangeStatusDTO struct {
	Status  string      `json:"status" validate:"required"`
	Comment null.String `json:"comment" validate:"omitempty"`
}

type OrderStatusHistoryDTO struct {
	Status    entities.OrderStatus `json:"status"`
	Comment   null.String          `json:"comment"`
	ChangedBy null.String          `json:"changed_by"`
	CreatedAt time.Time            `json:"created_at"`
}

type OrderDetailsDTO struct {
	Order       entities.Order                   `json:"order"`
	History     []OrderStatusHistoryDTO          `json:"history"`
	Assignments []entities.ExecutorAssignment    `json:"assignments"`
	Versions    []PlanVersionSummaryDTO          `json:"plan_versions"`
	Calendar    []entities.ExecutorCalendarEvent `json:"calendar_events"`
}
