package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"remodel-system/internal/dto"
	"remodel-system/internal/entities"
	"remodel-system/internal/repositories"
	apperrors "remodel-system/pkg/errors"
	"remodel-system/pkg/types"
)

// Рукописные in-memory реализации интерфейсов репозиториев.
// Транзакции имитируются простым вызовом функции с nil tx.

type mockTxManager struct {
	err error
}

func (m *mockTxManager) RunInTransaction(ctx context.Context, fn func(tx pgx.Tx) error) error {
	if m.err != nil {
		return m.err
	}
	return fn(nil)
}

type mockOrderRepo struct {
	orders    map[uuid.UUID]entities.Order
	createErr error
	updateErr error
	updated   int
}

func newMockOrderRepo(orders ...entities.Order) *mockOrderRepo {
	repo := &mockOrderRepo{orders: make(map[uuid.UUID]entities.Order)}
	for _, o := range orders {
		repo.orders[o.ID] = o
	}
	return repo
}

func (m *mockOrderRepo) GetOrders(ctx context.Context, filter types.Filter) ([]entities.Order, uint64, error) {
	out := make([]entities.Order, 0, len(m.orders))
	for _, o := range m.orders {
		out = append(out, o)
	}
	return out, uint64(len(out)), nil
}

func (m *mockOrderRepo) GetOrdersByClient(ctx context.Context, clientID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error) {
	var out []entities.Order
	for _, o := range m.orders {
		if o.ClientID == clientID {
			out = append(out, o)
		}
	}
	return out, uint64(len(out)), nil
}

func (m *mockOrderRepo) GetOrdersByExecutor(ctx context.Context, executorID uuid.UUID, filter types.Filter) ([]entities.Order, uint64, error) {
	return nil, 0, nil
}

func (m *mockOrderRepo) FindOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := o
	return &copied, nil
}

func (m *mockOrderRepo) FindOrderForUpdate(ctx context.Context, tx pgx.Tx, id uuid.UUID) (*entities.Order, error) {
	return m.FindOrder(ctx, id)
}

func (m *mockOrderRepo) CreateOrder(ctx context.Context, tx pgx.Tx, order *entities.Order) error {
	if m.createErr != nil {
		return m.createErr
	}
	m.orders[order.ID] = *order
	return nil
}

func (m *mockOrderRepo) UpdateOrder(ctx context.Context, tx pgx.Tx, order *entities.Order) error {
	if m.updateErr != nil {
		return m.updateErr
	}
	if _, ok := m.orders[order.ID]; !ok {
		return apperrors.ErrNotFound
	}
	m.orders[order.ID] = *order
	m.updated++
	return nil
}

type mockHistoryRepo struct {
	entries []entities.OrderStatusHistory
	addErr  error
}

func (m *mockHistoryRepo) AddEntry(ctx context.Context, tx pgx.Tx, entry *entities.OrderStatusHistory) error {
	if m.addErr != nil {
		return m.addErr
	}
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockHistoryRepo) GetHistory(ctx context.Context, orderID uuid.UUID) ([]entities.OrderStatusHistory, error) {
	var out []entities.OrderStatusHistory
	for _, e := range m.entries {
		if e.OrderID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockHistoryRepo) lastFor(orderID uuid.UUID) *entities.OrderStatusHistory {
	for i := len(m.entries) - 1; i >= 0; i-- {
		if m.entries[i].OrderID == orderID {
			return &m.entries[i]
		}
	}
	return nil
}

type mockAssignmentRepo struct {
	assignments []entities.ExecutorAssignment
}

func (m *mockAssignmentRepo) Create(ctx context.Context, tx pgx.Tx, assignment *entities.ExecutorAssignment) error {
	m.assignments = append(m.assignments, *assignment)
	return nil
}

func (m *mockAssignmentRepo) UpdateStatus(ctx context.Context, tx pgx.Tx, id uuid.UUID, status entities.AssignmentStatus) error {
	for i := range m.assignments {
		if m.assignments[i].ID == id {
			m.assignments[i].Status = status
			m.assignments[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return apperrors.ErrAssignmentNotFound
}

func (m *mockAssignmentRepo) FindActiveByOrder(ctx context.Context, orderID uuid.UUID) (*entities.ExecutorAssignment, error) {
	return m.findActive(orderID)
}

func (m *mockAssignmentRepo) FindActiveByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*entities.ExecutorAssignment, error) {
	return m.findActive(orderID)
}

func (m *mockAssignmentRepo) findActive(orderID uuid.UUID) (*entities.ExecutorAssignment, error) {
	for i := len(m.assignments) - 1; i >= 0; i-- {
		a := m.assignments[i]
		if a.OrderID == orderID && a.Status != entities.AssignmentDeclined {
			return &a, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (m *mockAssignmentRepo) FindByOrderAndExecutorInTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID, executorID uuid.UUID) (*entities.ExecutorAssignment, error) {
	for i := len(m.assignments) - 1; i >= 0; i-- {
		a := m.assignments[i]
		if a.OrderID == orderID && a.ExecutorID == executorID {
			return &a, nil
		}
	}
	return nil, apperrors.ErrAssignmentNotFound
}

func (m *mockAssignmentRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entities.ExecutorAssignment, error) {
	var out []entities.ExecutorAssignment
	for _, a := range m.assignments {
		if a.OrderID == orderID {
			out = append(out, a)
		}
	}
	return out, nil
}

type mockCalendarRepo struct {
	events []entities.ExecutorCalendarEvent
}

func (m *mockCalendarRepo) Create(ctx context.Context, tx pgx.Tx, event *entities.ExecutorCalendarEvent) error {
	m.events = append(m.events, *event)
	return nil
}

func (m *mockCalendarRepo) Update(ctx context.Context, tx pgx.Tx, event *entities.ExecutorCalendarEvent) error {
	for i := range m.events {
		if m.events[i].ID == event.ID {
			m.events[i] = *event
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (m *mockCalendarRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.ExecutorCalendarEvent, error) {
	for _, e := range m.events {
		if e.ID == id {
			copied := e
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockCalendarRepo) FindPlannedByOrderInTx(ctx context.Context, tx pgx.Tx, orderID uuid.UUID) (*entities.ExecutorCalendarEvent, error) {
	for i := len(m.events) - 1; i >= 0; i-- {
		e := m.events[i]
		if e.OrderID.Valid && e.OrderID.UUID == orderID && e.Status == entities.CalendarPlanned {
			return &e, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockCalendarRepo) ListByExecutor(ctx context.Context, executorID uuid.UUID, from, to time.Time) ([]entities.ExecutorCalendarEvent, error) {
	var out []entities.ExecutorCalendarEvent
	for _, e := range m.events {
		if e.ExecutorID == executorID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (m *mockCalendarRepo) ListAll(ctx context.Context, from, to time.Time) ([]entities.ExecutorCalendarEvent, error) {
	out := make([]entities.ExecutorCalendarEvent, len(m.events))
	copy(out, m.events)
	return out, nil
}

func (m *mockCalendarRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entities.ExecutorCalendarEvent, error) {
	var out []entities.ExecutorCalendarEvent
	for _, e := range m.events {
		if e.OrderID.Valid && e.OrderID.UUID == orderID {
			out = append(out, e)
		}
	}
	return out, nil
}

type mockVersionRepo struct {
	versions []entities.OrderPlanVersion
	listErr  error
}

func (m *mockVersionRepo) Upsert(ctx context.Context, tx pgx.Tx, version *entities.OrderPlanVersion) (*entities.OrderPlanVersion, error) {
	for i := range m.versions {
		existing := &m.versions[i]
		if existing.OrderID == version.OrderID && strings.EqualFold(existing.VersionType, version.VersionType) {
			existing.Plan = version.Plan
			if version.Comment.Valid && version.Comment.String != "" {
				existing.Comment = version.Comment
			}
			if version.CreatedByID.Valid {
				existing.CreatedByID = version.CreatedByID
			}
			copied := *existing
			return &copied, nil
		}
	}
	m.versions = append(m.versions, *version)
	copied := *version
	return &copied, nil
}

func (m *mockVersionRepo) FindByType(ctx context.Context, orderID uuid.UUID, versionType string) (*entities.OrderPlanVersion, error) {
	for _, v := range m.versions {
		if v.OrderID == orderID && strings.EqualFold(v.VersionType, versionType) {
			copied := v
			return &copied, nil
		}
	}
	return nil, apperrors.ErrPlanVersionNotFound
}

func (m *mockVersionRepo) ListByOrder(ctx context.Context, orderID uuid.UUID) ([]entities.OrderPlanVersion, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	var out []entities.OrderPlanVersion
	for _, v := range m.versions {
		if v.OrderID == orderID {
			out = append(out, v)
		}
	}
	return out, nil
}

type mockUserRepo struct {
	users map[uuid.UUID]entities.User
}

func newMockUserRepo(users ...entities.User) *mockUserRepo {
	repo := &mockUserRepo{users: make(map[uuid.UUID]entities.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return repo
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	copied := u
	return &copied, nil
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entities.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			copied := u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockUserRepo) ListByRole(ctx context.Context, role string) ([]entities.User, error) {
	var out []entities.User
	for _, u := range m.users {
		if u.Role == role {
			out = append(out, u)
		}
	}
	return out, nil
}

func (m *mockUserRepo) Create(ctx context.Context, user *entities.User) error {
	m.users[user.ID] = *user
	return nil
}

type mockPricing struct {
	estimate *float64
}

func (m *mockPricing) Estimate(ctx context.Context, input dto.PriceCalculatorInputDTO) (*dto.PriceEstimateDTO, error) {
	if m.estimate == nil {
		return &dto.PriceEstimateDTO{}, nil
	}
	return &dto.PriceEstimateDTO{EstimatedPrice: *m.estimate}, nil
}

func (m *mockPricing) EstimateForOrder(ctx context.Context, order *entities.Order) *float64 {
	return m.estimate
}

type mockRuleRepo struct {
	rules   []entities.AiRule
	listErr error
}

func (m *mockRuleRepo) ListEnabled(ctx context.Context) ([]entities.AiRule, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.rules, nil
}

func (m *mockRuleRepo) List(ctx context.Context) ([]entities.AiRule, error) {
	return m.rules, nil
}

func (m *mockRuleRepo) FindByID(ctx context.Context, id uuid.UUID) (*entities.AiRule, error) {
	for _, r := range m.rules {
		if r.ID == id {
			copied := r
			return &copied, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (m *mockRuleRepo) Create(ctx context.Context, rule *entities.AiRule) error {
	m.rules = append(m.rules, *rule)
	return nil
}

func (m *mockRuleRepo) Update(ctx context.Context, rule *entities.AiRule) error {
	for i := range m.rules {
		if m.rules[i].ID == rule.ID {
			m.rules[i] = *rule
			return nil
		}
	}
	return apperrors.ErrNotFound
}

var (
	_ repositories.TxManagerInterface              = (*mockTxManager)(nil)
	_ repositories.OrderRepositoryInterface        = (*mockOrderRepo)(nil)
	_ repositories.OrderHistoryRepositoryInterface = (*mockHistoryRepo)(nil)
	_ repositories.AssignmentRepositoryInterface   = (*mockAssignmentRepo)(nil)
	_ repositories.CalendarRepositoryInterface     = (*mockCalendarRepo)(nil)
	_ repositories.PlanVersionRepositoryInterface  = (*mockVersionRepo)(nil)
	_ repositories.UserRepositoryInterface         = (*mockUserRepo)(nil)
	_ repositories.AiRuleRepositoryInterface       = (*mockRuleRepo)(nil)
	_ PricingServiceInterface                      = (*mockPricing)(nil)
)
