package utils

import (
	"errors"
	"net/http"

	apperrors "remodel-system/pkg/errors"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type HttpResponse struct {
	Status     bool        `json:"status"`
	Body       interface{} `json:"body,omitempty"`
	Message    string      `json:"message"`
	TotalCount *uint64     `json:"total_count,omitempty"`
}

func SuccessResponse(ctx echo.Context, body interface{}, message string, code int, totalCount ...uint64) error {
	resp := &HttpResponse{
		Status:  true,
		Body:    body,
		Message: message,
	}
	if len(totalCount) > 0 {
		resp.TotalCount = &totalCount[0]
	}
	return ctx.JSON(code, resp)
}

// ErrorList сопоставляет сентинельные ошибки HTTP-кодам.
var ErrorList = map[error]int{
	apperrors.ErrNotFound:            http.StatusNotFound,
	apperrors.ErrExecutorNotFound:    http.StatusNotFound,
	apperrors.ErrAssignmentNotFound:  http.StatusNotFound,
	apperrors.ErrPlanVersionNotFound: http.StatusNotFound,
	apperrors.ErrOrderNotEditable:    http.StatusBadRequest,
	apperrors.ErrExecutorRequired:    http.StatusBadRequest,
	apperrors.ErrUnknownOrderStatus:  http.StatusBadRequest,
	apperrors.ErrBadRequest:          http.StatusBadRequest,
	apperrors.ErrForbidden:           http.StatusForbidden,
	apperrors.ErrUnauthorized:        http.StatusUnauthorized,
	apperrors.ErrEmptyAuthHeader:     http.StatusUnauthorized,
	apperrors.ErrInvalidAuthHeader:   http.StatusUnauthorized,
	apperrors.ErrInvalidToken:        http.StatusUnauthorized,
	apperrors.ErrTokenExpired:        http.StatusUnauthorized,
	apperrors.ErrInvalidCredentials:  http.StatusUnauthorized,
}

func ErrorResponse(ctx echo.Context, err error) error {
	message := err.Error()
	code := http.StatusInternalServerError

	var httpErr *apperrors.HttpError
	var invalidInput *apperrors.InvalidInputError
	var validationErrs validator.ValidationErrors
	var echoErr *echo.HTTPError

	switch {
	case errors.As(err, &httpErr):
		code = httpErr.Code
		message = httpErr.Message
	case errors.As(err, &invalidInput):
		code = http.StatusUnprocessableEntity
		message = invalidInput.Message
	case errors.As(err, &validationErrs):
		code = http.StatusUnprocessableEntity
	case errors.As(err, &echoErr):
		code = echoErr.Code
		if m, ok := echoErr.Message.(string); ok {
			message = m
		}
	default:
		for sentinel, statusCode := range ErrorList {
			if errors.Is(err, sentinel) {
				message = sentinel.Error()
				code = statusCode
				break
			}
		}
	}

	return ctx.JSON(code, &HttpResponse{
		Status:  false,
		Body:    struct{}{},
		Message: message,
	})
}
