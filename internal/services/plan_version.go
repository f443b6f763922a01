package services

import (
	"context"
	"strings"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/entities"
	"remodel-system/internal/plan"
	"remodel-system/internal/repositories"
	apperrors "remodel-system/pkg/errors"
)

type PlanVersionServiceInterface interface {
	SaveVersion(ctx context.Context, orderID uuid.UUID, data dto.SavePlanVersionDTO, creatorID uuid.NullUUID) (*entities.OrderPlanVersion, error)
	GetVersion(ctx context.Context, orderID uuid.UUID, versionType string) (*entities.OrderPlanVersion, error)
	ListVersions(ctx context.Context, orderID uuid.UUID) ([]entities.OrderPlanVersion, error)
	GetSplitView(ctx context.Context, orderID uuid.UUID, versionType string) (*dto.SplitViewDTO, error)
	GetBeforeAfter(ctx context.Context, orderID uuid.UUID) (*dto.BeforeAfterDTO, error)
	GetDiff(ctx context.Context, orderID uuid.UUID, originalType, modifiedType string) (*dto.PlanDiffDTO, error)
	ExportPlan(ctx context.Context, orderID uuid.UUID, versionType string) (*dto.PlanVersionDTO, error)
}

type PlanVersionService struct {
	versionRepo repositories.PlanVersionRepositoryInterface
	orderRepo   repositories.OrderRepositoryInterface
	userRepo    repositories.UserRepositoryInterface
	txManager   repositories.TxManagerInterface
	logger      *zap.Logger
}

func NewPlanVersionService(
	versionRepo repositories.PlanVersionRepositoryInterface,
	orderRepo repositories.OrderRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	txManager repositories.TxManagerInterface,
	logger *zap.Logger,
) PlanVersionServiceInterface {
	return &PlanVersionService{
		versionRepo: versionRepo,
		orderRepo:   orderRepo,
		userRepo:    userRepo,
		txManager:   txManager,
		logger:      logger,
	}
}

// SaveVersion валидирует план и сохраняет версию с перезаписью по типу.
func (s *PlanVersionService) SaveVersion(ctx context.Context, orderID uuid.UUID, data dto.SavePlanVersionDTO, creatorID uuid.NullUUID) (*entities.OrderPlanVersion, error) {
	if _, err := s.orderRepo.FindOrder(ctx, orderID); err != nil {
		return nil, err
	}
	if err := data.Plan.Validate(); err != nil {
		return nil, err
	}

	versionType := entities.NormalizeVersionType(data.VersionType)

	// Версия правок исполнителя лежит непримененной до одобрения клиентом.
	version := &entities.OrderPlanVersion{
		ID:          uuid.New(),
		OrderID:     orderID,
		VersionType: versionType,
		Plan:        data.Plan,
		IsApplied:   versionType != entities.VersionExecutorEdited,
		Comment:     data.Comment,
		CreatedByID: creatorID,
		CreatedAt:   time.Now(),
	}

	var saved *entities.OrderPlanVersion
	err := s.txManager.RunInTransaction(ctx, func(tx pgx.Tx) error {
		var txErr error
		saved, txErr = s.versionRepo.Upsert(ctx, tx, version)
		return txErr
	})
	if err != nil {
		s.logger.Error("Ошибка сохранения версии плана",
			zap.String("orderId", orderID.String()),
			zap.String("versionType", versionType),
			zap.Error(err))
		return nil, err
	}
	return saved, nil
}

// GetVersion отдает версию по типу (без учета регистра) либо последнюю по времени.
func (s *PlanVersionService) GetVersion(ctx context.Context, orderID uuid.UUID, versionType string) (*entities.OrderPlanVersion, error) {
	versions, err := s.versionRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}
	return pickVersion(versions, versionType)
}

func pickVersion(versions []entities.OrderPlanVersion, versionType string) (*entities.OrderPlanVersion, error) {
	if len(versions) == 0 {
		return nil, apperrors.ErrPlanVersionNotFound
	}
	if versionType == "" {
		return &versions[len(versions)-1], nil
	}
	want := entities.NormalizeVersionType(versionType)
	for i := range versions {
		if strings.EqualFold(versions[i].VersionType, want) {
			return &versions[i], nil
		}
	}
	return nil, apperrors.ErrPlanVersionNotFound
}

func (s *PlanVersionService) ListVersions(ctx context.Context, orderID uuid.UUID) ([]entities.OrderPlanVersion, error) {
	return s.versionRepo.ListByOrder(ctx, orderID)
}

func (s *PlanVersionService) GetSplitView(ctx context.Context, orderID uuid.UUID, versionType string) (*dto.SplitViewDTO, error) {
	version, err := s.GetVersion(ctx, orderID, versionType)
	if err != nil {
		return nil, err
	}
	return &dto.SplitViewDTO{
		VersionType: version.VersionType,
		Plan:        plan.SplitWallSegments(version.Plan),
	}, nil
}

// GetBeforeAfter возвращает исходный план и актуальную правку для сравнения.
func (s *PlanVersionService) GetBeforeAfter(ctx context.Context, orderID uuid.UUID) (*dto.BeforeAfterDTO, error) {
	versions, err := s.versionRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	result := &dto.BeforeAfterDTO{}
	if v, err := pickVersion(versions, entities.VersionOriginal); err == nil {
		result.Before = &v.Plan
	}
	if v, err := pickModified(versions); err == nil {
		result.After = &v.Plan
	}
	return result, nil
}

// pickModified выбирает "измененную" версию: MODIFIED, затем EXECUTOR_EDITED,
// затем просто последняя по времени.
func pickModified(versions []entities.OrderPlanVersion) (*entities.OrderPlanVersion, error) {
	if v, err := pickVersion(versions, entities.VersionModified); err == nil {
		return v, nil
	}
	if v, err := pickVersion(versions, entities.VersionExecutorEdited); err == nil {
		return v, nil
	}
	return pickVersion(versions, "")
}

func (s *PlanVersionService) GetDiff(ctx context.Context, orderID uuid.UUID, originalType, modifiedType string) (*dto.PlanDiffDTO, error) {
	versions, err := s.versionRepo.ListByOrder(ctx, orderID)
	if err != nil {
		return nil, err
	}

	var original, modified *entities.OrderPlanVersion
	if originalType != "" {
		original, err = pickVersion(versions, originalType)
	} else {
		original, err = pickVersion(versions, entities.VersionOriginal)
	}
	if err != nil {
		return nil, err
	}

	if modifiedType != "" {
		modified, err = pickVersion(versions, modifiedType)
	} else {
		modified, err = pickModified(versions)
	}
	if err != nil {
		return nil, err
	}

	return &dto.PlanDiffDTO{
		FromVersion: original.VersionType,
		ToVersion:   modified.VersionType,
		Diff:        plan.Diff(original.Plan, modified.Plan),
	}, nil
}

func (s *PlanVersionService) ExportPlan(ctx context.Context, orderID uuid.UUID, versionType string) (*dto.PlanVersionDTO, error) {
	version, err := s.GetVersion(ctx, orderID, versionType)
	if err != nil {
		return nil, err
	}

	result := &dto.PlanVersionDTO{
		PlanVersionSummaryDTO: dto.PlanVersionSummaryDTO{
			ID:          version.ID,
			VersionType: version.VersionType,
			IsApplied:   version.IsApplied,
			Comment:     version.Comment,
			CreatedAt:   version.CreatedAt,
		},
		Plan: version.Plan,
	}
	if version.CreatedByID.Valid {
		if creator, err := s.userRepo.FindByID(ctx, version.CreatedByID.UUID); err == nil {
			result.CreatedBy = null.StringFrom(creator.FullName)
		}
	}
	return result, nil
}
