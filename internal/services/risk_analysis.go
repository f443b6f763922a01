package services

import (
	"context"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/repositories"
)

type RiskAnalysisServiceInterface interface {
	AnalyzeOrderPlan(ctx context.Context, orderID uuid.UUID, versionType string) (*dto.RiskAnalysisDTO, error)
}

// RiskAnalysisService прогоняет план заказа через внешний анализатор
// и сохраняет решение на заказе. Недоступность анализатора не роняет запрос.
type RiskAnalysisService struct {
	orderRepo   repositories.OrderRepositoryInterface
	planService PlanVersionServiceInterface
	ruleRepo    repositories.AiRuleRepositoryInterface
	evaluator   RiskEvaluator
	txManager   repositories.TxManagerInterface
	logger      *zap.Logger
}

func NewRiskAnalysisService(
	orderRepo repositories.OrderRepositoryInterface,
	planService PlanVersionServiceInterface,
	ruleRepo repositories.AiRuleRepositoryInterface,
	evaluator RiskEvaluator,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) RiskAnalysisServiceInterface {
	return &RiskAnalysisService{
		orderRepo:   orderRepo,
		planService: planService,
		ruleRepo:    ruleRepo,
		evaluator:   evaluator,
		txManager:   txManager,
		logger:      logger,
	}
}

func (s *RiskAnalysisService) AnalyzeOrderPlan(ctx context.Context, orderID uuid.UUID, versionType string) (*dto.RiskAnalysisDTO, error) {
	order, err := s.orderRepo.FindOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	version, err := s.planService.GetVersion(ctx, orderID, versionType)
	if err != nil {
		return nil, err
	}

	rules, err := s.ruleRepo.ListEnabled(ctx)
	if err != nil {
		s.logger.Warn("Не удалось загрузить правила анализа", zap.Error(err))
		rules = nil
	}

	result := &dto.RiskAnalysisDTO{}
	findings, summary, err := s.evaluator.Analyze(ctx, version.Plan, order, rules)
	if err != nil {
		s.logger.Warn("Сервис анализа плана недоступен",
			zap.String("orderId", orderID.String()), zap.Error(err))
		result.DecisionStatus = DecisionUnknown
		result.Summary = analysisUnavailableSummary
		result.Findings = []dto.RiskFindingDTO{}
	} else {
		result.DecisionStatus = DeriveDecisionStatus(findings)
		result.Summary = summary
		result.Findings = findings
		if result.Findings == nil {
			result.Findings = []dto.RiskFindingDTO{}
		}
	}

	err = s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		locked, txErr := s.orderRepo.FindOrderForUpdate(ctx, tx, orderID)
		if txErr != nil {
			return txErr
		}
		locked.AiDecisionStatus = null.StringFrom(result.DecisionStatus)
		locked.AiDecisionSummary = null.StringFrom(result.Summary)
		return s.orderRepo.UpdateOrder(ctx, tx, locked)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
