package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"remodel-system/internal/entities"
	"remodel-system/internal/repositories"
)

type CalendarServiceInterface interface {
	GetExecutorEvents(ctx context.Context, executorID uuid.UUID, from, to time.Time) ([]entities.ExecutorCalendarEvent, error)
	GetAllEvents(ctx context.Context, from, to time.Time) ([]entities.ExecutorCalendarEvent, error)
	GetOrderEvents(ctx context.Context, orderID uuid.UUID) ([]entities.ExecutorCalendarEvent, error)
}

type CalendarService struct {
	repo repositories.CalendarRepositoryInterface
}

func NewCalendarService(repo repositories.CalendarRepositoryInterface) CalendarServiceInterface {
	return &CalendarService{repo: repo}
}

func (s *CalendarService) GetExecutorEvents(ctx context.Context, executorID uuid.UUID, from, to time.Time) ([]entities.ExecutorCalendarEvent, error) {
	from, to = calendarRange(from, to)
	return s.repo.ListByExecutor(ctx, executorID, from, to)
}

// GetAllEvents отдает календарь по всем исполнителям.
func (s *CalendarService) GetAllEvents(ctx context.Context, from, to time.Time) ([]entities.ExecutorCalendarEvent, error) {
	from, to = calendarRange(from, to)
	return s.repo.ListAll(ctx, from, to)
}

func calendarRange(from, to time.Time) (time.Time, time.Time) {
	if from.IsZero() {
		from = time.Now().AddDate(0, -1, 0)
	}
	if to.IsZero() {
		to = time.Now().AddDate(0, 3, 0)
	}
	return from, to
}

func (s *CalendarService) GetOrderEvents(ctx context.Context, orderID uuid.UUID) ([]entities.ExecutorCalendarEvent, error) {
	return s.repo.ListByOrder(ctx, orderID)
}
