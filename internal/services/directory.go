package services

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"remodel-system/internal/entities"
	"remodel-system/internal/repositories"
)

const directoryCacheTTL = 10 * time.Minute

type DirectoryServiceInterface interface {
	GetDistricts(ctx context.Context) ([]entities.District, error)
	FindDistrict(ctx context.Context, code string) (*entities.District, error)
	GetHouseTypes(ctx context.Context) ([]entities.HouseType, error)
	FindHouseType(ctx context.Context, code string) (*entities.HouseType, error)
	GetDepartments(ctx context.Context) ([]entities.Department, error)
}

// DirectoryService отдает справочники с кешированием в Redis.
// Справочники меняются редко, а читаются на каждом расчете стоимости.
type DirectoryService struct {
	repo   repositories.DirectoryRepositoryInterface
	cache  repositories.CacheRepositoryInterface
	logger *zap.Logger
}

func NewDirectoryService(
	repo repositories.DirectoryRepositoryInterface,
	cache repositories.CacheRepositoryInterface,
	logger *zap.Logger,
) DirectoryServiceInterface {
	return &DirectoryService{repo: repo, cache: cache, logger: logger}
}

func cacheLookup[T any](s *DirectoryService, ctx context.Context, key string, load func(context.Context) (T, error)) (T, error) {
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		var value T
		if err := json.Unmarshal([]byte(cached), &value); err == nil {
			return value, nil
		}
		s.logger.Warn("Не удалось разобрать кеш справочника, читаем из БД", zap.String("key", key))
	}

	value, err := load(ctx)
	if err != nil {
		return value, err
	}

	if raw, err := json.Marshal(value); err == nil {
		if err := s.cache.Set(ctx, key, raw, directoryCacheTTL); err != nil {
			s.logger.Warn("Не удалось записать справочник в кеш", zap.String("key", key), zap.Error(err))
		}
	}
	return value, nil
}

func (s *DirectoryService) GetDistricts(ctx context.Context) ([]entities.District, error) {
	return cacheLookup(s, ctx, "directory:districts", s.repo.GetDistricts)
}

func (s *DirectoryService) FindDistrict(ctx context.Context, code string) (*entities.District, error) {
	return cacheLookup(s, ctx, "directory:district:"+code, func(ctx context.Context) (*entities.District, error) {
		return s.repo.FindDistrict(ctx, code)
	})
}

func (s *DirectoryService) GetHouseTypes(ctx context.Context) ([]entities.HouseType, error) {
	return cacheLookup(s, ctx, "directory:house_types", s.repo.GetHouseTypes)
}

func (s *DirectoryService) FindHouseType(ctx context.Context, code string) (*entities.HouseType, error) {
	return cacheLookup(s, ctx, "directory:house_type:"+code, func(ctx context.Context) (*entities.HouseType, error) {
		return s.repo.FindHouseType(ctx, code)
	})
}

func (s *DirectoryService) GetDepartments(ctx context.Context) ([]entities.Department, error) {
	return cacheLookup(s, ctx, "directory:departments", s.repo.GetDepartments)
}
