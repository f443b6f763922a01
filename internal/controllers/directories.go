package controllers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remodel-system/internal/services"
	"remodel-system/pkg/utils"
)

// DirectoryController отдает справочники, которые фронт использует
// в калькуляторе стоимости и формах заказа.
type DirectoryController struct {
	directoryService services.DirectoryServiceInterface
	logger           *zap.Logger
}

func NewDirectoryController(directoryService services.DirectoryServiceInterface, logger *zap.Logger) *DirectoryController {
	return &DirectoryController{directoryService: directoryService, logger: logger}
}

func (c *DirectoryController) GetDistricts(ctx echo.Context) error {
	res, err := c.directoryService.GetDistricts(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Список районов получен", http.StatusOK)
}

func (c *DirectoryController) GetHouseTypes(ctx echo.Context) error {
	res, err := c.directoryService.GetHouseTypes(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Список типов домов получен", http.StatusOK)
}

func (c *DirectoryController) GetDepartments(ctx echo.Context) error {
	res, err := c.directoryService.GetDepartments(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Список отделов получен", http.StatusOK)
}
