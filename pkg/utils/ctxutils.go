package utils

import (
	"context"

	"remodel-system/pkg/contextkeys"
	apperrors "remodel-system/pkg/errors"

	"github.com/google/uuid"
)

func GetUserIDFromCtx(ctx context.Context) (uuid.UUID, error) {
	userID, ok := ctx.Value(contextkeys.UserIDKey).(uuid.UUID)
	if !ok || userID == uuid.Nil {
		return uuid.Nil, apperrors.ErrUserIDNotFoundInContext
	}
	return userID, nil
}

func GetUserRoleFromCtx(ctx context.Context) (string, error) {
	role, ok := ctx.Value(contextkeys.UserRoleKey).(string)
	if !ok || role == "" {
		return "", apperrors.ErrForbidden
	}
	return role, nil
}
