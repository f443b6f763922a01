package services

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/repositories"
	apperrors "remodel-system/pkg/errors"
	"remodel-system/pkg/service"
	"remodel-system/pkg/utils"
)

type AuthServiceInterface interface {
	Login(ctx context.Context, data dto.LoginDTO) (*dto.AuthResponseDTO, error)
}

type AuthService struct {
	userRepo   repositories.UserRepositoryInterface
	jwtService service.JWTService
	logger     *zap.Logger
}

func NewAuthService(userRepo repositories.UserRepositoryInterface, jwtService service.JWTService, logger *zap.Logger) AuthServiceInterface {
	return &AuthService{userRepo: userRepo, jwtService: jwtService, logger: logger}
}

func (s *AuthService) Login(ctx context.Context, data dto.LoginDTO) (*dto.AuthResponseDTO, error) {
	user, err := s.userRepo.FindByEmail(ctx, data.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}
	if !user.IsActive {
		return nil, apperrors.ErrForbidden
	}
	if err := utils.ComparePasswords(user.PasswordHash, data.Password); err != nil {
		return nil, apperrors.ErrInvalidCredentials
	}

	accessToken, refreshToken, err := s.jwtService.GenerateTokens(user.ID, user.Role)
	if err != nil {
		s.logger.Error("Ошибка генерации токенов", zap.Error(err))
		return nil, err
	}

	return &dto.AuthResponseDTO{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		User: dto.UserPublicDTO{
			ID:             user.ID,
			Email:          user.Email,
			FullName:       user.FullName,
			Role:           user.Role,
			DepartmentCode: user.DepartmentCode,
		},
	}, nil
}
