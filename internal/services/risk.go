package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/entities"
	"remodel-system/internal/plan"
	"remodel-system/pkg/config"
)

// Статусы решения по результатам анализа плана.
const (
	DecisionAllowed             = "ALLOWED"
	DecisionAllowedWithWarnings = "ALLOWED_WITH_WARNINGS"
	DecisionNeedsApproval       = "NEEDS_APPROVAL"
	DecisionForbidden           = "FORBIDDEN"
	DecisionUnknown             = "UNKNOWN"
)

const analysisUnavailableSummary = "Анализ недоступен"

// RiskEvaluator — внешний сервис анализа плана на регуляторные риски.
type RiskEvaluator interface {
	Analyze(ctx context.Context, doc plan.Document, order *entities.Order, rules []entities.AiRule) ([]dto.RiskFindingDTO, string, error)
}

// DeriveDecisionStatus выводит итоговое решение из серьезности найденных рисков.
func DeriveDecisionStatus(findings []dto.RiskFindingDTO) string {
	maxSeverity := 0
	for _, f := range findings {
		if f.Severity > maxSeverity {
			maxSeverity = f.Severity
		}
	}
	switch {
	case maxSeverity >= 4:
		return DecisionForbidden
	case maxSeverity >= 3:
		return DecisionNeedsApproval
	case len(findings) > 0:
		return DecisionAllowedWithWarnings
	default:
		return DecisionAllowed
	}
}

// HTTPRiskEvaluator ходит во внешний сервис анализа по HTTP.
type HTTPRiskEvaluator struct {
	cfg    config.AnalysisConfig
	client *http.Client
	logger *zap.Logger
}

func NewHTTPRiskEvaluator(cfg config.AnalysisConfig, logger *zap.Logger) RiskEvaluator {
	return &HTTPRiskEvaluator{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

type analyzeRequest struct {
	Plan        plan.Document    `json:"plan"`
	OrderTitle  string           `json:"order_title"`
	Area        *float64         `json:"area,omitempty"`
	Rules       []analyzeRule    `json:"rules"`
	Temperature float64          `json:"temperature"`
}

type analyzeRule struct {
	Name             string `json:"name"`
	RiskType         string `json:"risk_type"`
	Severity         int    `json:"severity"`
	TriggerCondition string `json:"trigger_condition,omitempty"`
}

type analyzeResponse struct {
	Summary  string               `json:"summary"`
	Findings []dto.RiskFindingDTO `json:"findings"`
}

func (e *HTTPRiskEvaluator) Analyze(ctx context.Context, doc plan.Document, order *entities.Order, rules []entities.AiRule) ([]dto.RiskFindingDTO, string, error) {
	reqBody := analyzeRequest{
		Plan:        doc,
		OrderTitle:  order.Title,
		Temperature: e.cfg.Temperature,
	}
	if order.Area.Valid {
		reqBody.Area = &order.Area.Float64
	}
	for _, r := range rules {
		reqBody.Rules = append(reqBody.Rules, analyzeRule{
			Name:             r.Name,
			RiskType:         r.RiskType,
			Severity:         r.Severity,
			TriggerCondition: r.TriggerCondition.String,
		})
	}

	raw, err := json.Marshal(reqBody)
	if err != nil {
		return nil, "", fmt.Errorf("ошибка сериализации запроса анализа: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, e.cfg.ServiceURL+"/analyze", bytes.NewReader(raw))
	if err != nil {
		return nil, "", fmt.Errorf("ошибка создания запроса анализа: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("сервис анализа недоступен: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("сервис анализа вернул статус %d", resp.StatusCode)
	}

	var result analyzeResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, "", fmt.Errorf("ошибка разбора ответа анализа: %w", err)
	}
	return result.Findings, result.Summary, nil
}
