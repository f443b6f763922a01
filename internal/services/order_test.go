package services

import (
	"context"
	"testing"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/entities"
	"remodel-system/internal/plan"
	"remodel-system/pkg/eventbus"
	apperrors "remodel-system/pkg/errors"
)

type orderFixture struct {
	orders      *mockOrderRepo
	history     *mockHistoryRepo
	assignments *mockAssignmentRepo
	calendar    *mockCalendarRepo
	versions    *mockVersionRepo
	users       *mockUserRepo
	pricing     *mockPricing
	svc         OrderServiceInterface
}

func newOrderFixture(orders ...entities.Order) *orderFixture {
	f := &orderFixture{
		orders:      newMockOrderRepo(orders...),
		history:     &mockHistoryRepo{},
		assignments: &mockAssignmentRepo{},
		calendar:    &mockCalendarRepo{},
		versions:    &mockVersionRepo{},
		users:       newMockUserRepo(),
		pricing:     &mockPricing{},
	}
	f.svc = NewOrderService(
		f.orders, f.history, f.assignments, f.calendar, f.versions,
		f.users, &mockTxManager{}, f.pricing, eventbus.New(zap.NewNop()), zap.NewNop(),
	)
	return f
}

func submittedOrder(clientID uuid.UUID) entities.Order {
	order := entities.Order{
		ID:       uuid.New(),
		ClientID: clientID,
		Title:    "Перепланировка двушки",
		Status:   entities.StatusSubmitted,
	}
	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	return order
}

func validPlanDoc() plan.Document {
	return plan.Document{
		Meta: plan.Meta{Unit: "px", Scale: &plan.Scale{PxPerMeter: 40}},
		Elements: []plan.Element{{
			ID:       "wall_1",
			Type:     plan.TypeWall,
			Role:     plan.RoleExisting,
			Geometry: plan.Geometry{Kind: plan.KindSegment, Points: []float64{0, 0, 400, 0}},
		}},
	}
}

func TestCreateOrder(t *testing.T) {
	f := newOrderFixture()
	estimate := 12500.0
	f.pricing.estimate = &estimate
	clientID := uuid.New()

	order, err := f.svc.CreateOrder(context.Background(), clientID, dto.CreateOrderDTO{
		Title: "План БТИ для перепланировки",
		Area:  null.Float64From(54.5),
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusSubmitted, order.Status)
	assert.Equal(t, null.Float64From(12500.0), order.EstimatedPrice)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, entities.StatusSubmitted, entry.Status)
	assert.Equal(t, "Заказ создан", entry.Comment.String)
	assert.Equal(t, clientID, entry.ChangedByID.UUID)
}

func TestCreateOrder_PricingUnavailable(t *testing.T) {
	f := newOrderFixture()
	f.pricing.estimate = nil

	order, err := f.svc.CreateOrder(context.Background(), uuid.New(), dto.CreateOrderDTO{Title: "Заказ"})

	require.NoError(t, err)
	assert.False(t, order.EstimatedPrice.Valid)
}

func TestUpdateOrder_OnlyOwnOrder(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)

	_, err := f.svc.UpdateOrder(context.Background(), uuid.New(), order.ID, dto.UpdateOrderDTO{})

	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestUpdateOrder_NotEditableAfterSubmission(t *testing.T) {
	clientID := uuid.New()
	order := submittedOrder(clientID)
	order.Status = entities.StatusCompleted
	f := newOrderFixture(order)

	_, err := f.svc.UpdateOrder(context.Background(), clientID, order.ID, dto.UpdateOrderDTO{
		Title: strPtr("Новый заголовок"),
	})

	assert.ErrorIs(t, err, apperrors.ErrOrderNotEditable)

	stored, _ := f.orders.FindOrder(context.Background(), order.ID)
	assert.Equal(t, "Перепланировка двушки", stored.Title)
}

func TestUpdateOrder_RecalculatesEstimateWithoutHistory(t *testing.T) {
	clientID := uuid.New()
	order := submittedOrder(clientID)
	f := newOrderFixture(order)
	estimate := 9900.0
	f.pricing.estimate = &estimate

	updated, err := f.svc.UpdateOrder(context.Background(), clientID, order.ID, dto.UpdateOrderDTO{
		Title: strPtr("Перепланировка трешки"),
		Area:  null.Float64From(72),
	})

	require.NoError(t, err)
	assert.Equal(t, "Перепланировка трешки", updated.Title)
	assert.Equal(t, null.Float64From(9900.0), updated.EstimatedPrice)
	assert.Equal(t, entities.StatusSubmitted, updated.Status)
	assert.Empty(t, f.history.entries)
}

func TestCancelOrder(t *testing.T) {
	clientID := uuid.New()
	order := submittedOrder(clientID)
	f := newOrderFixture(order)

	cancelled, err := f.svc.CancelOrder(context.Background(), clientID, order.ID, dto.CancelOrderDTO{
		Comment: null.StringFrom("Передумал"),
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusCancelled, cancelled.Status)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, entities.StatusCancelled, entry.Status)
	assert.Equal(t, "Передумал", entry.Comment.String)
}

func TestTakeOrder_CreatesAssignmentWhenMissing(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	executorID := uuid.New()

	taken, err := f.svc.TakeOrder(context.Background(), executorID, order.ID)

	require.NoError(t, err)
	assert.Equal(t, entities.StatusExecutorAssigned, taken.Status)

	require.Len(t, f.assignments.assignments, 1)
	assignment := f.assignments.assignments[0]
	assert.Equal(t, executorID, assignment.ExecutorID)
	assert.Equal(t, entities.AssignmentAccepted, assignment.Status)
}

func TestTakeOrder_AcceptsExistingAssignment(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	executorID := uuid.New()
	f.assignments.assignments = append(f.assignments.assignments, entities.ExecutorAssignment{
		ID:         uuid.New(),
		OrderID:    order.ID,
		ExecutorID: executorID,
		Status:     entities.AssignmentAssigned,
	})

	_, err := f.svc.TakeOrder(context.Background(), executorID, order.ID)

	require.NoError(t, err)
	require.Len(t, f.assignments.assignments, 1)
	assert.Equal(t, entities.AssignmentAccepted, f.assignments.assignments[0].Status)
}

func TestTakeOrder_OtherExecutorAssignmentUntouched(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	firstExecutor := uuid.New()
	secondExecutor := uuid.New()
	f.assignments.assignments = append(f.assignments.assignments, entities.ExecutorAssignment{
		ID:         uuid.New(),
		OrderID:    order.ID,
		ExecutorID: firstExecutor,
		Status:     entities.AssignmentAssigned,
	})

	_, err := f.svc.TakeOrder(context.Background(), secondExecutor, order.ID)

	require.NoError(t, err)
	require.Len(t, f.assignments.assignments, 2)
	assert.Equal(t, firstExecutor, f.assignments.assignments[0].ExecutorID)
	assert.Equal(t, entities.AssignmentAssigned, f.assignments.assignments[0].Status)
	assert.Equal(t, secondExecutor, f.assignments.assignments[1].ExecutorID)
	assert.Equal(t, entities.AssignmentAccepted, f.assignments.assignments[1].Status)
}

func TestDeclineOrder_RequiresOwnAssignment(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)

	_, err := f.svc.DeclineOrder(context.Background(), uuid.New(), order.ID, dto.DeclineOrderDTO{Reason: "занят"})
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)

	// назначение на другого исполнителя тоже не подходит
	f.assignments.assignments = append(f.assignments.assignments, entities.ExecutorAssignment{
		ID:         uuid.New(),
		OrderID:    order.ID,
		ExecutorID: uuid.New(),
		Status:     entities.AssignmentAssigned,
	})
	_, err = f.svc.DeclineOrder(context.Background(), uuid.New(), order.ID, dto.DeclineOrderDTO{Reason: "занят"})
	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
}

func TestDeclineOrder(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	executorID := uuid.New()
	f.assignments.assignments = append(f.assignments.assignments, entities.ExecutorAssignment{
		ID:         uuid.New(),
		OrderID:    order.ID,
		ExecutorID: executorID,
		Status:     entities.AssignmentAssigned,
	})

	declined, err := f.svc.DeclineOrder(context.Background(), executorID, order.ID, dto.DeclineOrderDTO{
		Reason: "несущие стены вне компетенции",
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusRejected, declined.Status)
	assert.Equal(t, entities.AssignmentDeclined, f.assignments.assignments[0].Status)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, "Исполнитель отказался от заказа: несущие стены вне компетенции", entry.Comment.String)
}

func TestScheduleVisit(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	executorID := uuid.New()
	visitAt := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)

	scheduled, err := f.svc.ScheduleVisit(context.Background(), executorID, order.ID, dto.ScheduleVisitDTO{
		VisitAt:  visitAt,
		Location: null.StringFrom("ул. Рудаки, 15"),
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusVisitScheduled, scheduled.Status)
	assert.Equal(t, visitAt, scheduled.PlannedVisitAt.Time)

	require.Len(t, f.calendar.events, 1)
	event := f.calendar.events[0]
	assert.Equal(t, "Выезд по заказу: Перепланировка двушки", event.Title.String)
	assert.Equal(t, visitAt, event.StartTime)
	assert.Equal(t, visitAt.Add(time.Hour), event.EndTime)
	assert.Equal(t, entities.CalendarPlanned, event.Status)
}

func TestScheduleVisit_ExplicitEndTime(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	visitAt := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	endAt := visitAt.Add(3 * time.Hour)

	_, err := f.svc.ScheduleVisit(context.Background(), uuid.New(), order.ID, dto.ScheduleVisitDTO{
		VisitAt: visitAt,
		EndTime: &endAt,
	})

	require.NoError(t, err)
	require.Len(t, f.calendar.events, 1)
	assert.Equal(t, endAt, f.calendar.events[0].EndTime)
}

func TestAdminScheduleVisit_ExplicitExecutor(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	adminID := uuid.New()
	executor := entities.User{ID: uuid.New(), Role: entities.RoleExecutor, FullName: "Фарход Исоев"}
	f.users.users[executor.ID] = executor
	visitAt := time.Date(2026, 10, 1, 11, 0, 0, 0, time.UTC)

	scheduled, err := f.svc.AdminScheduleVisit(context.Background(), adminID, order.ID, dto.AdminScheduleVisitDTO{
		ScheduleVisitDTO: dto.ScheduleVisitDTO{VisitAt: visitAt},
		ExecutorID:       &executor.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusVisitScheduled, scheduled.Status)
	require.Len(t, f.calendar.events, 1)
	assert.Equal(t, executor.ID, f.calendar.events[0].ExecutorID)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, adminID, entry.ChangedByID.UUID)
}

func TestAdminScheduleVisit_FallsBackToAssignment(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	executorID := uuid.New()
	f.assignments.assignments = append(f.assignments.assignments, entities.ExecutorAssignment{
		ID:         uuid.New(),
		OrderID:    order.ID,
		ExecutorID: executorID,
		Status:     entities.AssignmentAccepted,
	})

	_, err := f.svc.AdminScheduleVisit(context.Background(), uuid.New(), order.ID, dto.AdminScheduleVisitDTO{
		ScheduleVisitDTO: dto.ScheduleVisitDTO{VisitAt: time.Now().Add(24 * time.Hour)},
	})

	require.NoError(t, err)
	require.Len(t, f.calendar.events, 1)
	assert.Equal(t, executorID, f.calendar.events[0].ExecutorID)
}

func TestAdminScheduleVisit_NoExecutorAnywhere(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)

	_, err := f.svc.AdminScheduleVisit(context.Background(), uuid.New(), order.ID, dto.AdminScheduleVisitDTO{
		ScheduleVisitDTO: dto.ScheduleVisitDTO{VisitAt: time.Now().Add(24 * time.Hour)},
	})

	assert.ErrorIs(t, err, apperrors.ErrAssignmentNotFound)
	assert.Empty(t, f.calendar.events)
}

func TestUpdateVisit_MovesEventAndStatus(t *testing.T) {
	order := submittedOrder(uuid.New())
	order.Status = entities.StatusVisitScheduled
	f := newOrderFixture(order)
	executorID := uuid.New()
	f.calendar.events = append(f.calendar.events, entities.ExecutorCalendarEvent{
		ID:         uuid.New(),
		ExecutorID: executorID,
		OrderID:    uuid.NullUUID{UUID: order.ID, Valid: true},
		StartTime:  time.Now(),
		EndTime:    time.Now().Add(time.Hour),
		Status:     entities.CalendarPlanned,
	})

	newStart := time.Date(2026, 9, 20, 9, 0, 0, 0, time.UTC)
	status := string(entities.StatusDocumentsInProgress)
	calendarStatus := string(entities.CalendarDone)

	updated, err := f.svc.UpdateVisit(context.Background(), executorID, order.ID, dto.UpdateVisitDTO{
		StartTime:      &newStart,
		CalendarStatus: &calendarStatus,
		Status:         &status,
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusDocumentsInProgress, updated.Status)
	assert.Equal(t, newStart, updated.PlannedVisitAt.Time)
	assert.Equal(t, entities.CalendarDone, f.calendar.events[0].Status)
	assert.Equal(t, newStart, f.calendar.events[0].StartTime)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, entities.StatusDocumentsInProgress, entry.Status)
}

func TestUpdateVisit_UnknownStatusIgnored(t *testing.T) {
	order := submittedOrder(uuid.New())
	order.Status = entities.StatusVisitScheduled
	f := newOrderFixture(order)
	f.calendar.events = append(f.calendar.events, entities.ExecutorCalendarEvent{
		ID:        uuid.New(),
		OrderID:   uuid.NullUUID{UUID: order.ID, Valid: true},
		StartTime: time.Now(),
		EndTime:   time.Now().Add(time.Hour),
		Status:    entities.CalendarPlanned,
	})
	newStart := time.Date(2026, 10, 5, 9, 0, 0, 0, time.UTC)
	bad := "IN_LIMBO"

	updated, err := f.svc.UpdateVisit(context.Background(), uuid.New(), order.ID, dto.UpdateVisitDTO{
		StartTime: &newStart,
		Status:    &bad,
	})

	// нераспознанный статус не ломает правку календаря
	require.NoError(t, err)
	assert.Equal(t, entities.StatusVisitScheduled, updated.Status)
	assert.Equal(t, newStart, f.calendar.events[0].StartTime)
	assert.Nil(t, f.history.lastFor(order.ID))
}

func TestApprovePlan_WithoutVersions(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)

	approved, err := f.svc.ApprovePlan(context.Background(), uuid.New(), order.ID, dto.ApprovePlanDTO{})

	// без сохраненных версий заказ все равно уходит на проверку
	require.NoError(t, err)
	assert.Equal(t, entities.StatusReadyForApproval, approved.Status)
	assert.Empty(t, f.versions.versions)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, "План одобрен исполнителем", entry.Comment.String)
}

func TestApprovePlan_SynthesizesFinalFromLatest(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	executorID := uuid.New()

	latestPlan := validPlanDoc()
	f.versions.versions = append(f.versions.versions,
		entities.OrderPlanVersion{
			ID: uuid.New(), OrderID: order.ID, VersionType: entities.VersionOriginal,
			Plan: plan.Document{}, IsApplied: true, CreatedAt: time.Now().Add(-time.Hour),
		},
		entities.OrderPlanVersion{
			ID: uuid.New(), OrderID: order.ID, VersionType: entities.VersionModified,
			Plan: latestPlan, IsApplied: true, CreatedAt: time.Now(),
		},
	)

	approved, err := f.svc.ApprovePlan(context.Background(), executorID, order.ID, dto.ApprovePlanDTO{})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusReadyForApproval, approved.Status)

	final, findErr := f.versions.FindByType(context.Background(), order.ID, entities.VersionFinal)
	require.NoError(t, findErr)
	assert.True(t, final.IsApplied)
	assert.Equal(t, latestPlan, final.Plan)
	assert.Equal(t, executorID, final.CreatedByID.UUID)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, "План одобрен исполнителем", entry.Comment.String)
}

func TestEditPlan(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	executorID := uuid.New()

	edited, err := f.svc.EditPlan(context.Background(), executorID, order.ID, dto.EditPlanDTO{
		Plan:    validPlanDoc(),
		Comment: null.StringFrom("Добавлен проем"),
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusAwaitingClientApproval, edited.Status)

	version, findErr := f.versions.FindByType(context.Background(), order.ID, entities.VersionExecutorEdited)
	require.NoError(t, findErr)
	assert.False(t, version.IsApplied)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, "План отредактирован исполнителем. Добавлен проем", entry.Comment.String)
}

func TestEditPlan_InvalidPlan(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)

	broken := validPlanDoc()
	broken.Elements[0].Role = "GHOST"

	_, err := f.svc.EditPlan(context.Background(), uuid.New(), order.ID, dto.EditPlanDTO{Plan: broken})

	assert.Error(t, err)
	assert.Empty(t, f.versions.versions)
}

func TestRejectPlan_CommentWithIssues(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)

	rejected, err := f.svc.RejectPlan(context.Background(), uuid.New(), order.ID, dto.RejectPlanDTO{
		Comment: "Согласование невозможно",
		Issues:  []string{"снос несущей стены", "мокрая зона над спальней"},
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusRejectedByExecutor, rejected.Status)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t,
		"Согласование невозможно\nЗамечания:\n- снос несущей стены\n- мокрая зона над спальней",
		entry.Comment.String)
}

func TestAssignExecutor(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	adminID := uuid.New()

	executor := entities.User{
		ID:             uuid.New(),
		Email:          "executor@example.com",
		FullName:       "Фарход Исоев",
		Role:           entities.RoleExecutor,
		DepartmentCode: null.StringFrom("BTI"),
	}
	f.users.users[executor.ID] = executor

	assigned, err := f.svc.AssignExecutor(context.Background(), adminID, order.ID, dto.AssignExecutorDTO{
		ExecutorID: executor.ID,
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusExecutorAssigned, assigned.Status)
	// заказ без отдела получает отдел исполнителя
	assert.Equal(t, "BTI", assigned.CurrentDepartmentCode.String)

	require.Len(t, f.assignments.assignments, 1)
	assert.Equal(t, entities.AssignmentAssigned, f.assignments.assignments[0].Status)
	assert.Equal(t, adminID, f.assignments.assignments[0].AssignedByID.UUID)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, "Назначен исполнитель: Фарход Исоев", entry.Comment.String)
}

func TestAssignExecutor_NotAnExecutor(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)

	client := entities.User{ID: uuid.New(), Role: entities.RoleClient}
	f.users.users[client.ID] = client

	_, err := f.svc.AssignExecutor(context.Background(), uuid.New(), order.ID, dto.AssignExecutorDTO{
		ExecutorID: client.ID,
	})
	assert.ErrorIs(t, err, apperrors.ErrExecutorNotFound)

	_, err = f.svc.AssignExecutor(context.Background(), uuid.New(), order.ID, dto.AssignExecutorDTO{
		ExecutorID: uuid.New(),
	})
	assert.ErrorIs(t, err, apperrors.ErrExecutorNotFound)
}

func TestAdminDecisions(t *testing.T) {
	adminID := uuid.New()

	t.Run("отправка на доработку", func(t *testing.T) {
		order := submittedOrder(uuid.New())
		order.Status = entities.StatusReadyForApproval
		f := newOrderFixture(order)

		revised, err := f.svc.SendForRevision(context.Background(), adminID, order.ID, "Нет плана подвала")
		require.NoError(t, err)
		assert.Equal(t, entities.StatusSubmitted, revised.Status)
	})

	t.Run("завершение не проставляет дату", func(t *testing.T) {
		order := submittedOrder(uuid.New())
		order.Status = entities.StatusReadyForApproval
		f := newOrderFixture(order)

		completed, err := f.svc.ApproveOrder(context.Background(), adminID, order.ID, null.String{})
		require.NoError(t, err)
		assert.Equal(t, entities.StatusCompleted, completed.Status)
		assert.False(t, completed.CompletedAt.Valid)
	})

	t.Run("отклонение", func(t *testing.T) {
		order := submittedOrder(uuid.New())
		f := newOrderFixture(order)

		rejected, err := f.svc.RejectOrder(context.Background(), adminID, order.ID, "Не хватает документов")
		require.NoError(t, err)
		assert.Equal(t, entities.StatusRejected, rejected.Status)

		entry := f.history.lastFor(order.ID)
		require.NotNil(t, entry)
		assert.Equal(t, "Не хватает документов", entry.Comment.String)
	})
}

func TestAddComment_NoTransition(t *testing.T) {
	order := submittedOrder(uuid.New())
	order.Status = entities.StatusVisitScheduled
	f := newOrderFixture(order)
	adminID := uuid.New()

	err := f.svc.AddComment(context.Background(), adminID, order.ID, "Клиент просил перезвонить")

	require.NoError(t, err)
	stored, _ := f.orders.FindOrder(context.Background(), order.ID)
	assert.Equal(t, entities.StatusVisitScheduled, stored.Status)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, entities.StatusVisitScheduled, entry.Status)
	assert.Equal(t, "Клиент просил перезвонить", entry.Comment.String)
}

func TestAdminUpdateOrder_StatusChangeWritesHistory(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	status := string(entities.StatusCompleted)

	updated, err := f.svc.AdminUpdateOrder(context.Background(), uuid.New(), order.ID, dto.AdminUpdateOrderDTO{
		Status:     &status,
		TotalPrice: null.Float64From(48000),
	})

	require.NoError(t, err)
	assert.Equal(t, entities.StatusCompleted, updated.Status)
	assert.Equal(t, null.Float64From(48000.0), updated.TotalPrice)

	entry := f.history.lastFor(order.ID)
	require.NotNil(t, entry)
	assert.Equal(t, "Статус изменен администратором: SUBMITTED -> COMPLETED", entry.Comment.String)
}

func TestAdminUpdateOrder_FieldPatchWithoutHistory(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)

	updated, err := f.svc.AdminUpdateOrder(context.Background(), uuid.New(), order.ID, dto.AdminUpdateOrderDTO{
		DepartmentCode: null.StringFrom("CAD"),
	})

	require.NoError(t, err)
	assert.Equal(t, "CAD", updated.CurrentDepartmentCode.String)
	assert.Empty(t, f.history.entries)
}

func TestAdminUpdateOrder_UnknownStatus(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)
	bad := "HALF_DONE"

	_, err := f.svc.AdminUpdateOrder(context.Background(), uuid.New(), order.ID, dto.AdminUpdateOrderDTO{Status: &bad})

	assert.ErrorIs(t, err, apperrors.ErrUnknownOrderStatus)
}

func TestGetOrderDetails_ResolvesActorNames(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newOrderFixture(order)

	admin := entities.User{ID: uuid.New(), FullName: "Администратор", Role: entities.RoleAdmin}
	f.users.users[admin.ID] = admin
	f.history.entries = append(f.history.entries, entities.OrderStatusHistory{
		ID:          uuid.New(),
		OrderID:     order.ID,
		Status:      entities.StatusSubmitted,
		ChangedByID: uuid.NullUUID{UUID: admin.ID, Valid: true},
		CreatedAt:   time.Now(),
	})

	details, err := f.svc.GetOrderDetails(context.Background(), order.ID)

	require.NoError(t, err)
	require.Len(t, details.History, 1)
	assert.Equal(t, "Администратор", details.History[0].ChangedBy.String)
}

func strPtr(s string) *string { return &s }
