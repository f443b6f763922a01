package services

import (
	"context"

	"go.uber.org/zap"

	"remodel-system/internal/repositories"
)

type ReportServiceInterface interface {
	GetOrdersReport(ctx context.Context, filter repositories.ReportFilter) ([]repositories.ReportItem, error)
}

type reportService struct {
	reportRepo repositories.ReportRepositoryInterface
	logger     *zap.Logger
}

func NewReportService(reportRepo repositories.ReportRepositoryInterface, logger *zap.Logger) ReportServiceInterface {
	return &reportService{reportRepo: reportRepo, logger: logger}
}

func (s *reportService) GetOrdersReport(ctx context.Context, filter repositories.ReportFilter) ([]repositories.ReportItem, error) {
	return s.reportRepo.GetOrdersReport(ctx, filter)
}
