package dto

import (
	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

type AuthResponseDTO struct {
	AccessToken  string        `json:"accessToken"`
	RefreshToken string        `json:"refreshToken"`
	User         UserPublicDTO `json:"user"`
}

type UserPublicDTO struct {
	ID             uuid.UUID   `json:"id"`
	Email          string      `json:"email"`
	FullName       string      `json:"full_name"`
	Role           string      `json:"role"`
	DepartmentCode null.String `json:"department_code"`
}
