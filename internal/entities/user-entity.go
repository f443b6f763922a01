package entities

import (
	"time"

	"github.com/aarondl/null/v8"
	"github.com/google/uuid"
)

type User struct {
	ID       uuid.UUID `json:"id" db:"id"`
	Email    string    `json:"email" db:"email"`
	FullName string    `json:"full_name" db:"full_name"`

	PasswordHash string `json:"-" db:"password_hash"`

	Role           string      `json:"role" db:"role"`
	DepartmentCode null.String `json:"department_code" db:"department_code"`
	IsActive       bool        `json:"is_active" db:"is_active"`
	CreatedAt      time.Time   `json:"created_at" db:"created_at"`
}
