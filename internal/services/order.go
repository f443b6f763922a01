package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/entities"
	"remodel-system/internal/events"
	"remodel-system/internal/repositories"
	"remodel-system/pkg/eventbus"
	apperrors "remodel-system/pkg/errors"
	"remodel-system/pkg/types"
)

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, clientID uuid.UUID, data dto.CreateOrderDTO) (*entities.Order, error)
	UpdateOrder(ctx context.Context, clientID uuid.UUID, orderID uuid.UUID, data dto.UpdateOrderDTO) (*entities.Order, error)
	CancelOrder(ctx context.Context, clientID uuid.UUID, orderID uuid.UUID, data dto.CancelOrderDTO) (*entities.Order, error)
	GetClientOrders(ctx context.Context, clientID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error)
	GetClientOrder(ctx context.Context, clientID uuid.UUID, orderID uuid.UUID) (*entities.Order, error)

	GetExecutorOrders(ctx context.Context, executorID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error)
	TakeOrder(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID) (*entities.Order, error)
	DeclineOrder(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.DeclineOrderDTO) (*entities.Order, error)
	ScheduleVisit(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.ScheduleVisitDTO) (*entities.Order, error)
	UpdateVisit(ctx context.Context, actorID uuid.UUID, orderID uuid.UUID, data dto.UpdateVisitDTO) (*entities.Order, error)
	ApprovePlan(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.ApprovePlanDTO) (*entities.Order, error)
	EditPlan(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.EditPlanDTO) (*entities.Order, error)
	RejectPlan(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.RejectPlanDTO) (*entities.Order, error)

	GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error)
	GetOrderDetails(ctx context.Context, orderID uuid.UUID) (*dto.OrderDetailsDTO, error)
	AssignExecutor(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, data dto.AssignExecutorDTO) (*entities.Order, error)
	AdminScheduleVisit(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, data dto.AdminScheduleVisitDTO) (*entities.Order, error)
	SendForRevision(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, comment string) (*entities.Order, error)
	ApproveOrder(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, comment null.String) (*entities.Order, error)
	RejectOrder(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, comment string) (*entities.Order, error)
	AddComment(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, comment string) error
	AdminUpdateOrder(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, data dto.AdminUpdateOrderDTO) (*entities.Order, error)

	ListHistory(ctx context.Context, orderID uuid.UUID) ([]entities.OrderStatusHistory, error)
}

type OrderService struct {
	orderRepo      repositories.OrderRepositoryInterface
	historyRepo    repositories.OrderHistoryRepositoryInterface
	assignmentRepo repositories.AssignmentRepositoryInterface
	calendarRepo   repositories.CalendarRepositoryInterface
	versionRepo    repositories.PlanVersionRepositoryInterface
	userRepo       repositories.UserRepositoryInterface
	txManager      repositories.TxManagerInterface
	pricing        PricingServiceInterface
	bus            *eventbus.Bus
	logger         *zap.Logger
}

func NewOrderService(
	orderRepo repositories.OrderRepositoryInterface,
	historyRepo repositories.OrderHistoryRepositoryInterface,
	assignmentRepo repositories.AssignmentRepositoryInterface,
	calendarRepo repositories.CalendarRepositoryInterface,
	versionRepo repositories.PlanVersionRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	pricing PricingServiceInterface,
	bus *eventbus.Bus,
	logger *zap.Logger,
) OrderServiceInterface {
	return &OrderService{
		orderRepo:      orderRepo,
		historyRepo:    historyRepo,
		assignmentRepo: assignmentRepo,
		calendarRepo:   calendarRepo,
		versionRepo:    versionRepo,
		userRepo:       userRepo,
		txManager:      txManager,
		pricing:        pricing,
		bus:            bus,
		logger:         logger,
	}
}

func nullableActor(actorID uuid.UUID) uuid.NullUUID {
	return uuid.NullUUID{UUID: actorID, Valid: actorID != uuid.Nil}
}

// transition записывает новый статус заказа и строку истории в одной транзакции.
// Статус заказа всегда совпадает со статусом последней записи истории.
func (s *OrderService) transition(ctx context.Context, tx pgx.Tx, order *entities.Order, newStatus entities.OrderStatus, actorID uuid.UUID, comment null.String) error {
	order.Status = newStatus
	if err := s.orderRepo.UpdateOrder(ctx, tx, order); err != nil {
		return err
	}
	return s.historyRepo.AddEntry(ctx, tx, &entities.OrderStatusHistory{
		ID:          uuid.New(),
		OrderID:     order.ID,
		Status:      newStatus,
		Comment:     comment,
		ChangedByID: nullableActor(actorID),
		CreatedAt:   time.Now(),
	})
}

func (s *OrderService) publishStatusChange(ctx context.Context, orderID uuid.UUID, oldStatus, newStatus entities.OrderStatus, actorID uuid.UUID, comment string) {
	s.bus.Publish(ctx, events.OrderStatusChanged{
		OrderID:   orderID,
		OldStatus: oldStatus,
		NewStatus: newStatus,
		ActorID:   nullableActor(actorID),
		Comment:   comment,
	})
}

// CreateOrder создает заказ сразу в статусе SUBMITTED.
// Сбой расчета стоимости не блокирует создание, оценка остается пустой.
func (s *OrderService) CreateOrder(ctx context.Context, clientID uuid.UUID, data dto.CreateOrderDTO) (*entities.Order, error) {
	now := time.Now()
	order := &entities.Order{
		ID:                    uuid.New(),
		ClientID:              clientID,
		CurrentDepartmentCode: data.DepartmentCode,
		DistrictCode:          data.DistrictCode,
		HouseTypeCode:         data.HouseTypeCode,
		Title:                 data.Title,
		Description:           data.Description,
		Address:               data.Address,
		Area:                  data.Area,
		Complexity:            data.Complexity,
		Status:                entities.StatusSubmitted,
		CalculatorInput:       data.CalculatorInput,
	}
	order.CreatedAt = now
	order.UpdatedAt = now

	if estimate := s.pricing.EstimateForOrder(ctx, order); estimate != nil {
		order.EstimatedPrice = null.Float64From(*estimate)
	}

	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		if err := s.orderRepo.CreateOrder(ctx, tx, order); err != nil {
			return err
		}
		return s.historyRepo.AddEntry(ctx, tx, &entities.OrderStatusHistory{
			ID:          uuid.New(),
			OrderID:     order.ID,
			Status:      entities.StatusSubmitted,
			Comment:     null.StringFrom("Заказ создан"),
			ChangedByID: nullableActor(clientID),
			CreatedAt:   now,
		})
	})
	if err != nil {
		s.logger.Error("Ошибка создания заказа", zap.Error(err))
		return nil, err
	}

	s.publishStatusChange(ctx, order.ID, "", entities.StatusSubmitted, clientID, "Заказ создан")
	return order, nil
}

// UpdateOrder — правка полей клиентом, разрешена только в DRAFT/SUBMITTED.
// Историю не пишет: статус не меняется.
func (s *OrderService) UpdateOrder(ctx context.Context, clientID uuid.UUID, orderID uuid.UUID, data dto.UpdateOrderDTO) (*entities.Order, error) {
	var order *entities.Order
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		if order.ClientID != clientID {
			return apperrors.ErrForbidden
		}
		if order.Status != entities.StatusDraft && order.Status != entities.StatusSubmitted {
			return apperrors.ErrOrderNotEditable
		}

		if data.Title != nil {
			order.Title = *data.Title
		}
		if data.Description.Valid {
			order.Description = data.Description
		}
		if data.Address.Valid {
			order.Address = data.Address
		}
		if data.Area.Valid {
			order.Area = data.Area
		}
		if data.Complexity.Valid {
			order.Complexity = data.Complexity
		}
		if data.DistrictCode.Valid {
			order.DistrictCode = data.DistrictCode
		}
		if data.HouseTypeCode.Valid {
			order.HouseTypeCode = data.HouseTypeCode
		}
		if data.CalculatorInput != nil {
			order.CalculatorInput = data.CalculatorInput
		}

		if estimate := s.pricing.EstimateForOrder(ctx, order); estimate != nil {
			order.EstimatedPrice = null.Float64From(*estimate)
		} else {
			order.EstimatedPrice = null.Float64{}
		}

		return s.orderRepo.UpdateOrder(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	return order, nil
}

func (s *OrderService) CancelOrder(ctx context.Context, clientID uuid.UUID, orderID uuid.UUID, data dto.CancelOrderDTO) (*entities.Order, error) {
	var order *entities.Order
	var oldStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		if order.ClientID != clientID {
			return apperrors.ErrForbidden
		}
		oldStatus = order.Status
		return s.transition(ctx, tx, order, entities.StatusCancelled, clientID, data.Comment)
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, entities.StatusCancelled, clientID, data.Comment.String)
	return order, nil
}

func (s *OrderService) GetClientOrders(ctx context.Context, clientID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error) {
	return s.orderRepo.GetOrdersByClient(ctx, clientID, filter)
}

func (s *OrderService) GetClientOrder(ctx context.Context, clientID uuid.UUID, orderID uuid.UUID) (*entities.Order, error) {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.ClientID != clientID {
		return nil, apperrors.ErrForbidden
	}
	return order, nil
}

func (s *OrderService) GetExecutorOrders(ctx context.Context, executorID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error) {
	return s.orderRepo.GetOrdersByExecutor(ctx, executorID, filter)
}

// TakeOrder — исполнитель принимает заказ в работу. Назначение ищется по паре
// заказ-исполнитель, создается при отсутствии и переводится в ACCEPTED.
// Чужие назначения не трогаются.
func (s *OrderService) TakeOrder(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID) (*entities.Order, error) {
	var order *entities.Order
	var oldStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status

		assignment, txErr := s.assignmentRepo.FindByOrderAndExecutorInTx(ctx, tx, orderID, executorID)
		if txErr != nil {
			if !errors.Is(txErr, apperrors.ErrAssignmentNotFound) {
				return txErr
			}
			now := time.Now()
			assignment = &entities.ExecutorAssignment{
				ID:           uuid.New(),
				OrderID:      orderID,
				ExecutorID:   executorID,
				AssignedByID: nullableActor(executorID),
				Status:       entities.AssignmentAssigned,
				AssignedAt:   now,
				UpdatedAt:    now,
			}
			if err := s.assignmentRepo.Create(ctx, tx, assignment); err != nil {
				return err
			}
		}
		if err := s.assignmentRepo.UpdateStatus(ctx, tx, assignment.ID, entities.AssignmentAccepted); err != nil {
			return err
		}

		return s.transition(ctx, tx, order, entities.StatusExecutorAssigned, executorID,
			null.StringFrom("Заказ принят исполнителем"))
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, entities.StatusExecutorAssigned, executorID, "Заказ принят исполнителем")
	return order, nil
}

// DeclineOrder требует существующего назначения на этого исполнителя.
func (s *OrderService) DeclineOrder(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.DeclineOrderDTO) (*entities.Order, error) {
	var order *entities.Order
	var oldStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status

		assignment, txErr := s.assignmentRepo.FindByOrderAndExecutorInTx(ctx, tx, orderID, executorID)
		if txErr != nil {
			return txErr
		}
		if err := s.assignmentRepo.UpdateStatus(ctx, tx, assignment.ID, entities.AssignmentDeclined); err != nil {
			return err
		}

		comment := "Исполнитель отказался от заказа: " + data.Reason
		return s.transition(ctx, tx, order, entities.StatusRejected, executorID, null.StringFrom(comment))
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, entities.StatusRejected, executorID, data.Reason)
	return order, nil
}

// ScheduleVisit назначает дату визита и создает событие в календаре исполнителя.
func (s *OrderService) ScheduleVisit(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.ScheduleVisitDTO) (*entities.Order, error) {
	var order *entities.Order
	var oldStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status

		order.PlannedVisitAt = null.TimeFrom(data.VisitAt)

		event := visitEvent(executorID, orderID, order.Title, data)
		if err := s.calendarRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		comment := "Визит запланирован на " + data.VisitAt.Format("02.01.2006 15:04")
		return s.transition(ctx, tx, order, entities.StatusVisitScheduled, executorID, null.StringFrom(comment))
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, entities.StatusVisitScheduled, executorID, "")
	return order, nil
}

// AdminScheduleVisit планирует визит от имени исполнителя. Исполнитель берется
// из запроса, а при его отсутствии из последнего назначения на заказ.
func (s *OrderService) AdminScheduleVisit(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, data dto.AdminScheduleVisitDTO) (*entities.Order, error) {
	var order *entities.Order
	var oldStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status

		executorID, txErr := s.resolveVisitExecutor(ctx, tx, orderID, data.ExecutorID)
		if txErr != nil {
			return txErr
		}

		order.PlannedVisitAt = null.TimeFrom(data.VisitAt)

		event := visitEvent(executorID, orderID, order.Title, data.ScheduleVisitDTO)
		if err := s.calendarRepo.Create(ctx, tx, event); err != nil {
			return err
		}

		comment := "Визит запланирован на " + data.VisitAt.Format("02.01.2006 15:04")
		return s.transition(ctx, tx, order, entities.StatusVisitScheduled, adminID, null.StringFrom(comment))
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, entities.StatusVisitScheduled, adminID, "")
	return order, nil
}

func (s *OrderService) resolveVisitExecutor(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, explicit *uuid.UUID) (uuid.UUID, error) {
	if explicit != nil {
		executor, err := s.userRepo.FindByID(ctx, *explicit)
		if err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return uuid.Nil, apperrors.ErrExecutorNotFound
			}
			return uuid.Nil, err
		}
		if executor.Role != entities.RoleExecutor {
			return uuid.Nil, apperrors.ErrExecutorNotFound
		}
		return executor.ID, nil
	}
	assignment, err := s.assignmentRepo.FindActiveByOrderInTx(ctx, tx, orderID)
	if err != nil {
		return uuid.Nil, err
	}
	return assignment.ExecutorID, nil
}

func visitEvent(executorID uuid.UUID, orderID uuid.UUID, orderTitle string, data dto.ScheduleVisitDTO) *entities.ExecutorCalendarEvent {
	endTime := data.VisitAt.Add(time.Hour)
	if data.EndTime != nil {
		endTime = *data.EndTime
	}
	return &entities.ExecutorCalendarEvent{
		ID:         uuid.New(),
		ExecutorID: executorID,
		OrderID:    uuid.NullUUID{UUID: orderID, Valid: true},
		Title:      null.StringFrom("Выезд по заказу: " + orderTitle),
		StartTime:  data.VisitAt,
		EndTime:    endTime,
		Status:     entities.CalendarPlanned,
		Location:   data.Location,
		Notes:      data.Notes,
		CreatedAt:  time.Now(),
	}
}

// UpdateVisit правит связанное событие календаря. Если в статусе пришло
// валидное значение статуса заказа, заказ переводится в него без проверок
// допустимости перехода; нераспознанное значение игнорируется, правка
// календаря при этом сохраняется.
func (s *OrderService) UpdateVisit(ctx context.Context, actorID uuid.UUID, orderID uuid.UUID, data dto.UpdateVisitDTO) (*entities.Order, error) {
	var order *entities.Order
	var oldStatus, newStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status
		newStatus = order.Status

		event, txErr := s.calendarRepo.FindPlannedByOrderInTx(ctx, tx, orderID)
		if txErr != nil && !errors.Is(txErr, apperrors.ErrNotFound) {
			return txErr
		}
		if event != nil {
			if data.StartTime != nil {
				event.StartTime = *data.StartTime
				order.PlannedVisitAt = null.TimeFrom(*data.StartTime)
			}
			if data.EndTime != nil {
				event.EndTime = *data.EndTime
			}
			if data.Location.Valid {
				event.Location = data.Location
			}
			if data.Notes.Valid {
				event.Notes = data.Notes
			}
			if data.CalendarStatus != nil {
				event.Status = entities.CalendarStatus(*data.CalendarStatus)
			}
			if err := s.calendarRepo.Update(ctx, tx, event); err != nil {
				return err
			}
		}

		if data.Status != nil {
			parsed, parseErr := entities.ParseOrderStatus(*data.Status)
			if parseErr != nil {
				s.logger.Warn("Нераспознанный статус заказа в обновлении визита проигнорирован",
					zap.String("status", *data.Status))
			} else {
				newStatus = parsed
				return s.transition(ctx, tx, order, parsed, actorID, null.StringFrom("Визит обновлен"))
			}
		}
		return s.orderRepo.UpdateOrder(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	if newStatus != oldStatus {
		s.publishStatusChange(ctx, orderID, oldStatus, newStatus, actorID, "Визит обновлен")
	}
	return order, nil
}

// ApprovePlan отправляет заказ на проверку. Итоговая версия плана создается
// копией последней сохраненной; без сохраненных версий заказ переводится
// без нее.
func (s *OrderService) ApprovePlan(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.ApprovePlanDTO) (*entities.Order, error) {
	versions, err := s.versionRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	comment := data.Comment
	if !comment.Valid || comment.String == "" {
		comment = null.StringFrom("План одобрен исполнителем")
	}

	var order *entities.Order
	var oldStatus entities.OrderStatus
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status

		if len(versions) > 0 {
			latest := versions[len(versions)-1]
			finalVersion := &entities.OrderPlanVersion{
				ID:          uuid.New(),
				OrderID:     orderID,
				VersionType: entities.VersionFinal,
				Plan:        latest.Plan,
				IsApplied:   true,
				Comment:     comment,
				CreatedByID: nullableActor(executorID),
				CreatedAt:   time.Now(),
			}
			if _, err := s.versionRepo.Upsert(ctx, tx, finalVersion); err != nil {
				return err
			}
		}

		return s.transition(ctx, tx, order, entities.StatusReadyForApproval, executorID, comment)
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, entities.StatusReadyForApproval, executorID, comment.String)
	return order, nil
}

// EditPlan сохраняет правку исполнителя непримененной версией и отдает заказ
// на согласование клиенту.
func (s *OrderService) EditPlan(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.EditPlanDTO) (*entities.Order, error) {
	if err := data.Plan.Validate(); err != nil {
		return nil, err
	}

	comment := "План отредактирован исполнителем."
	if data.Comment.Valid && data.Comment.String != "" {
		comment = "План отредактирован исполнителем. " + data.Comment.String
	}

	var order *entities.Order
	var oldStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status

		version := &entities.OrderPlanVersion{
			ID:          uuid.New(),
			OrderID:     orderID,
			VersionType: entities.VersionExecutorEdited,
			Plan:        data.Plan,
			IsApplied:   false,
			Comment:     data.Comment,
			CreatedByID: nullableActor(executorID),
			CreatedAt:   time.Now(),
		}
		if _, err := s.versionRepo.Upsert(ctx, tx, version); err != nil {
			return err
		}

		return s.transition(ctx, tx, order, entities.StatusAwaitingClientApproval, executorID, null.StringFrom(comment))
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, entities.StatusAwaitingClientApproval, executorID, comment)
	return order, nil
}

// RejectPlan — отказ исполнителя согласовать план, с перечнем замечаний.
func (s *OrderService) RejectPlan(ctx context.Context, executorID uuid.UUID, orderID uuid.UUID, data dto.RejectPlanDTO) (*entities.Order, error) {
	comment := data.Comment
	if len(data.Issues) > 0 {
		var b strings.Builder
		b.WriteString(comment)
		b.WriteString("\nЗамечания:\n")
		for i, issue := range data.Issues {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString("- " + issue)
		}
		comment = b.String()
	}

	var order *entities.Order
	var oldStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status
		return s.transition(ctx, tx, order, entities.StatusRejectedByExecutor, executorID, null.StringFrom(comment))
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, entities.StatusRejectedByExecutor, executorID, comment)
	return order, nil
}

func (s *OrderService) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	return s.orderRepo.GetOrders(ctx, filter)
}

func (s *OrderService) GetOrderDetails(ctx context.Context, orderID uuid.UUID) (*dto.OrderDetailsDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	history, err := s.historyRepo.GetHistory(ctx, orderID)
	if err != nil {
		return nil, err
	}
	assignments, err := s.assignmentRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	versions, err := s.versionRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	calendar, err := s.calendarRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	details := &dto.OrderDetailsDTO{
		Order:       *order,
		Assignments: assignments,
		Calendar:    calendar,
	}

	actorNames := map[uuid.UUID]string{}
	for _, h := range history {
		entry := dto.OrderStatusHistoryDTO{
			Status:    h.Status,
			Comment:   h.Comment,
			CreatedAt: h.CreatedAt,
		}
		if h.ChangedByID.Valid {
			name, ok := actorNames[h.ChangedByID.UUID]
			if !ok {
				if user, err := s.userRepo.FindByID(ctx, h.ChangedByID.UUID); err == nil {
					name = user.FullName
				}
				actorNames[h.ChangedByID.UUID] = name
			}
			if name != "" {
				entry.ChangedBy = null.StringFrom(name)
			}
		}
		details.History = append(details.History, entry)
	}

	for _, v := range versions {
		details.Versions = append(details.Versions, dto.PlanVersionSummaryDTO{
			ID:          v.ID,
			VersionType: v.VersionType,
			IsApplied:   v.IsApplied,
			Comment:     v.Comment,
			CreatedAt:   v.CreatedAt,
		})
	}
	return details, nil
}

// AssignExecutor назначает исполнителя. Заказ без отдела получает отдел исполнителя.
func (s *OrderService) AssignExecutor(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, data dto.AssignExecutorDTO) (*entities.Order, error) {
	executor, err := s.userRepo.FindByID(ctx, data.ExecutorID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrExecutorNotFound
		}
		return nil, err
	}
	if executor.Role != entities.RoleExecutor {
		return nil, apperrors.ErrExecutorNotFound
	}

	var order *entities.Order
	var oldStatus entities.OrderStatus
	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status

		if !order.CurrentDepartmentCode.Valid && executor.DepartmentCode.Valid {
			order.CurrentDepartmentCode = executor.DepartmentCode
		}

		now := time.Now()
		assignment := &entities.ExecutorAssignment{
			ID:           uuid.New(),
			OrderID:      orderID,
			ExecutorID:   executor.ID,
			AssignedByID: nullableActor(adminID),
			Status:       entities.AssignmentAssigned,
			AssignedAt:   now,
			UpdatedAt:    now,
		}
		if err := s.assignmentRepo.Create(ctx, tx, assignment); err != nil {
			return err
		}

		comment := data.Comment
		if !comment.Valid || comment.String == "" {
			comment = null.StringFrom("Назначен исполнитель: " + executor.FullName)
		}
		return s.transition(ctx, tx, order, entities.StatusExecutorAssigned, adminID, comment)
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, entities.StatusExecutorAssigned, adminID, "")
	return order, nil
}

func (s *OrderService) SendForRevision(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, comment string) (*entities.Order, error) {
	return s.adminTransition(ctx, adminID, orderID, entities.StatusSubmitted, null.StringFrom(comment))
}

// ApproveOrder завершает заказ. completed_at здесь намеренно не проставляется:
// поле задается только явной правкой полей администратором.
func (s *OrderService) ApproveOrder(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, comment null.String) (*entities.Order, error) {
	return s.adminTransition(ctx, adminID, orderID, entities.StatusCompleted, comment)
}

func (s *OrderService) RejectOrder(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, comment string) (*entities.Order, error) {
	return s.adminTransition(ctx, adminID, orderID, entities.StatusRejected, null.StringFrom(comment))
}

func (s *OrderService) adminTransition(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, newStatus entities.OrderStatus, comment null.String) (*entities.Order, error) {
	var order *entities.Order
	var oldStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status
		return s.transition(ctx, tx, order, newStatus, adminID, comment)
	})
	if err != nil {
		return nil, err
	}
	s.publishStatusChange(ctx, orderID, oldStatus, newStatus, adminID, comment.String)
	return order, nil
}

// AddComment пишет запись истории с текущим статусом, без перехода.
func (s *OrderService) AddComment(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, comment string) error {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return err
	}
	return s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		return s.historyRepo.AddEntry(ctx, tx, &entities.OrderStatusHistory{
			ID:          uuid.New(),
			OrderID:     orderID,
			Status:      order.Status,
			Comment:     null.StringFrom(comment),
			ChangedByID: nullableActor(adminID),
			CreatedAt:   time.Now(),
		})
	})
}

// AdminUpdateOrder — прямое редактирование полей в обход машины состояний.
// Присланный статус перезаписывает текущий и всегда фиксируется в истории.
func (s *OrderService) AdminUpdateOrder(ctx context.Context, adminID uuid.UUID, orderID uuid.UUID, data dto.AdminUpdateOrderDTO) (*entities.Order, error) {
	var order *entities.Order
	var oldStatus, newStatus entities.OrderStatus
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		order, txErr = s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		oldStatus = order.Status
		newStatus = order.Status

		if data.Title != nil {
			order.Title = *data.Title
		}
		if data.Description.Valid {
			order.Description = data.Description
		}
		if data.Address.Valid {
			order.Address = data.Address
		}
		if data.Area.Valid {
			order.Area = data.Area
		}
		if data.Complexity.Valid {
			order.Complexity = data.Complexity
		}
		if data.DistrictCode.Valid {
			order.DistrictCode = data.DistrictCode
		}
		if data.HouseTypeCode.Valid {
			order.HouseTypeCode = data.HouseTypeCode
		}
		if data.DepartmentCode.Valid {
			order.CurrentDepartmentCode = data.DepartmentCode
		}
		if data.TotalPrice.Valid {
			order.TotalPrice = data.TotalPrice
		}
		if data.AiDecisionStatus.Valid {
			order.AiDecisionStatus = data.AiDecisionStatus
		}
		if data.PlannedVisitAt.Valid {
			order.PlannedVisitAt = data.PlannedVisitAt
		}
		if data.CompletedAt.Valid {
			order.CompletedAt = data.CompletedAt
		}

		if data.Status != nil {
			parsed, parseErr := entities.ParseOrderStatus(*data.Status)
			if parseErr != nil {
				return parseErr
			}
			newStatus = parsed
			comment := data.Comment
			if !comment.Valid {
				comment = null.StringFrom(fmt.Sprintf("Статус изменен администратором: %s -> %s", oldStatus, parsed))
			}
			return s.transition(ctx, tx, order, parsed, adminID, comment)
		}
		return s.orderRepo.UpdateOrder(ctx, tx, order)
	})
	if err != nil {
		return nil, err
	}
	if newStatus != oldStatus {
		s.publishStatusChange(ctx, orderID, oldStatus, newStatus, adminID, data.Comment.String)
	}
	return order, nil
}

func (s *OrderService) ListHistory(ctx context.Context, orderID uuid.UUID) ([]entities.OrderStatusHistory, error) {
	return s.historyRepo.GetHistory(ctx, orderID)
}
