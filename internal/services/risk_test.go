package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/entities"
	"remodel-system/internal/plan"
	apperrors "remodel-system/pkg/errors"
)

func TestDeriveDecisionStatus(t *testing.T) {
	testCases := []struct {
		name     string
		findings []dto.RiskFindingDTO
		want     string
	}{
		{"без находок", nil, DecisionAllowed},
		{"только предупреждения", []dto.RiskFindingDTO{{Severity: 1}, {Severity: 2}}, DecisionAllowedWithWarnings},
		{"требует согласования", []dto.RiskFindingDTO{{Severity: 3}}, DecisionNeedsApproval},
		{"запрещено", []dto.RiskFindingDTO{{Severity: 2}, {Severity: 4}}, DecisionForbidden},
		{"максимальная серьезность", []dto.RiskFindingDTO{{Severity: 5}}, DecisionForbidden},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DeriveDecisionStatus(tc.findings))
		})
	}
}

type stubEvaluator struct {
	findings []dto.RiskFindingDTO
	summary  string
	err      error
}

func (s *stubEvaluator) Analyze(ctx context.Context, doc plan.Document, order *entities.Order, rules []entities.AiRule) ([]dto.RiskFindingDTO, string, error) {
	return s.findings, s.summary, s.err
}

type riskFixture struct {
	orders    *mockOrderRepo
	versions  *mockVersionRepo
	rules     *mockRuleRepo
	evaluator *stubEvaluator
	svc       RiskAnalysisServiceInterface
}

func newRiskFixture(order entities.Order) *riskFixture {
	f := &riskFixture{
		orders:    newMockOrderRepo(order),
		versions:  &mockVersionRepo{},
		rules:     &mockRuleRepo{},
		evaluator: &stubEvaluator{},
	}
	f.versions.versions = append(f.versions.versions, entities.OrderPlanVersion{
		ID:          uuid.New(),
		OrderID:     order.ID,
		VersionType: entities.VersionModified,
		Plan:        validPlanDoc(),
		IsApplied:   true,
		CreatedAt:   time.Now(),
	})
	planService := NewPlanVersionService(f.versions, f.orders, newMockUserRepo(), &mockTxManager{}, zap.NewNop())
	f.svc = NewRiskAnalysisService(f.orders, planService, f.rules, f.evaluator, &mockTxManager{}, zap.NewNop())
	return f
}

func TestAnalyzeOrderPlan(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newRiskFixture(order)
	f.evaluator.findings = []dto.RiskFindingDTO{
		{RuleName: "Снос несущей стены", RiskType: "LOAD_BEARING_DEMOLITION", Severity: 5, Message: "Стена wall_1 несущая"},
	}
	f.evaluator.summary = "Обнаружен запрещенный демонтаж"

	result, err := f.svc.AnalyzeOrderPlan(context.Background(), order.ID, "")

	require.NoError(t, err)
	assert.Equal(t, DecisionForbidden, result.DecisionStatus)
	assert.Equal(t, "Обнаружен запрещенный демонтаж", result.Summary)
	require.Len(t, result.Findings, 1)

	// решение сохраняется на заказе
	stored, _ := f.orders.FindOrder(context.Background(), order.ID)
	assert.Equal(t, DecisionForbidden, stored.AiDecisionStatus.String)
	assert.Equal(t, "Обнаружен запрещенный демонтаж", stored.AiDecisionSummary.String)
}

func TestAnalyzeOrderPlan_EvaluatorUnavailable(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newRiskFixture(order)
	f.evaluator.err = errors.New("connection refused")

	result, err := f.svc.AnalyzeOrderPlan(context.Background(), order.ID, "")

	require.NoError(t, err)
	assert.Equal(t, DecisionUnknown, result.DecisionStatus)
	assert.Equal(t, "Анализ недоступен", result.Summary)
	assert.NotNil(t, result.Findings)
	assert.Empty(t, result.Findings)

	stored, _ := f.orders.FindOrder(context.Background(), order.ID)
	assert.Equal(t, DecisionUnknown, stored.AiDecisionStatus.String)
}

func TestAnalyzeOrderPlan_RulesLoadFailureDoesNotBlock(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newRiskFixture(order)
	f.rules.listErr = errors.New("база недоступна")
	f.evaluator.summary = "Нарушений не найдено"

	result, err := f.svc.AnalyzeOrderPlan(context.Background(), order.ID, "")

	require.NoError(t, err)
	assert.Equal(t, DecisionAllowed, result.DecisionStatus)
}

func TestAnalyzeOrderPlan_WithoutPlan(t *testing.T) {
	order := submittedOrder(uuid.New())
	f := newRiskFixture(order)
	f.versions.versions = nil

	_, err := f.svc.AnalyzeOrderPlan(context.Background(), order.ID, "")

	assert.ErrorIs(t, err, apperrors.ErrPlanVersionNotFound)
}
