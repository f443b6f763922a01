package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/entities"
	"remodel-system/internal/repositories"
)

type AiRuleServiceInterface interface {
	GetRules(ctx context.Context) ([]entities.AiRule, error)
	CreateRule(ctx context.Context, data dto.CreateAiRuleDTO) (*entities.AiRule, error)
	UpdateRule(ctx context.Context, data dto.UpdateAiRuleDTO) (*entities.AiRule, error)
}

type AiRuleService struct {
	repo   repositories.AiRuleRepositoryInterface
	logger *zap.Logger
}

func NewAiRuleService(repo repositories.AiRuleRepositoryInterface, logger *zap.Logger) AiRuleServiceInterface {
	return &AiRuleService{repo: repo, logger: logger}
}

func (s *AiRuleService) GetRules(ctx context.Context) ([]entities.AiRule, error) {
	return s.repo.List(ctx)
}

func (s *AiRuleService) CreateRule(ctx context.Context, data dto.CreateAiRuleDTO) (*entities.AiRule, error) {
	rule := &entities.AiRule{
		ID:               uuid.New(),
		Name:             data.Name,
		Description:      data.Description,
		RiskType:         data.RiskType,
		Severity:         data.Severity,
		TriggerCondition: data.TriggerCondition,
		IsEnabled:        true,
		CreatedAt:        time.Now(),
	}
	if data.IsEnabled != nil {
		rule.IsEnabled = *data.IsEnabled
	}
	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *AiRuleService) UpdateRule(ctx context.Context, data dto.UpdateAiRuleDTO) (*entities.AiRule, error) {
	rule, err := s.repo.FindByID(ctx, data.ID)
	if err != nil {
		return nil, err
	}

	if data.Name != nil {
		rule.Name = *data.Name
	}
	if data.Description.Valid {
		rule.Description = data.Description
	}
	if data.RiskType != nil {
		rule.RiskType = *data.RiskType
	}
	if data.Severity != nil {
		rule.Severity = *data.Severity
	}
	if data.TriggerCondition.Valid {
		rule.TriggerCondition = data.TriggerCondition
	}
	if data.IsEnabled != nil {
		rule.IsEnabled = *data.IsEnabled
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}
