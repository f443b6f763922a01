package controllers

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/entities"
	"remodel-system/internal/services"
	apperrors "remodel-system/pkg/errors"
	"remodel-system/pkg/utils"
)

// ClientOrderController — кабинет клиента: заказы и работа с планом.
type ClientOrderController struct {
	orderService services.OrderServiceInterface
	planService  services.PlanVersionServiceInterface
	riskService  services.RiskAnalysisServiceInterface
	pricing      services.PricingServiceInterface
	logger       *zap.Logger
}

func NewClientOrderController(
	orderService services.OrderServiceInterface,
	planService services.PlanVersionServiceInterface,
	riskService services.RiskAnalysisServiceInterface,
	pricing services.PricingServiceInterface,
	logger *zap.Logger,
) *ClientOrderController {
	return &ClientOrderController{
		orderService: orderService,
		planService:  planService,
		riskService:  riskService,
		pricing:      pricing,
		logger:       logger,
	}
}

func parseOrderID(ctx echo.Context) (uuid.UUID, error) {
	id, err := uuid.Parse(ctx.Param("id"))
	if err != nil {
		return uuid.Nil, apperrors.NewHttpError(http.StatusBadRequest, "некорректный идентификатор заказа", err)
	}
	return id, nil
}

func (c *ClientOrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.orderService.GetClientOrders(reqCtx, clientID, filter)
	if err != nil {
		c.logger.Error("Ошибка получения заказов клиента", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Заказы успешно получены", http.StatusOK, total)
}

func (c *ClientOrderController) GetOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.GetClientOrder(reqCtx, clientID, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ успешно получен", http.StatusOK)
}

func (c *ClientOrderController) CreateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.CreateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.CreateOrder(reqCtx, clientID, payload)
	if err != nil {
		c.logger.Error("Ошибка создания заказа", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ успешно создан", http.StatusCreated)
}

func (c *ClientOrderController) UpdateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.UpdateOrder(reqCtx, clientID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ успешно обновлен", http.StatusOK)
}

func (c *ClientOrderController) CancelOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.CancelOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.CancelOrder(reqCtx, clientID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ отменен", http.StatusOK)
}

// SavePlan сохраняет версию плана клиента (MODIFIED по умолчанию).
func (c *ClientOrderController) SavePlan(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if _, err := c.orderService.GetClientOrder(reqCtx, clientID, orderID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.SavePlanVersionDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if payload.VersionType == "" {
		payload.VersionType = entities.VersionModified
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	version, err := c.planService.SaveVersion(reqCtx, orderID, payload, uuid.NullUUID{UUID: clientID, Valid: true})
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, version, "Версия плана сохранена", http.StatusOK)
}

// SaveParseResult принимает результат распознавания техпаспорта
// и сохраняет его исходной версией плана.
func (c *ClientOrderController) SaveParseResult(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if _, err := c.orderService.GetClientOrder(reqCtx, clientID, orderID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.ParseResultDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	version, err := c.planService.SaveVersion(reqCtx, orderID, dto.SavePlanVersionDTO{
		VersionType: entities.VersionOriginal,
		Plan:        payload.Plan,
		Comment:     payload.Source,
	}, uuid.NullUUID{UUID: clientID, Valid: true})
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, version, "Распознанный план сохранен", http.StatusOK)
}

func (c *ClientOrderController) GetPlan(ctx echo.Context) error {
	return c.respondPlanVersion(ctx, false)
}

func (c *ClientOrderController) GetSplitView(ctx echo.Context) error {
	return c.respondPlanVersion(ctx, true)
}

func (c *ClientOrderController) respondPlanVersion(ctx echo.Context, split bool) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if _, err := c.orderService.GetClientOrder(reqCtx, clientID, orderID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	versionType := ctx.QueryParam("version_type")
	if split {
		res, err := c.planService.GetSplitView(reqCtx, orderID, versionType)
		if err != nil {
			return utils.ErrorResponse(ctx, err)
		}
		return utils.SuccessResponse(ctx, res, "План успешно получен", http.StatusOK)
	}

	version, err := c.planService.GetVersion(reqCtx, orderID, versionType)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, version, "План успешно получен", http.StatusOK)
}

func (c *ClientOrderController) GetBeforeAfter(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if _, err := c.orderService.GetClientOrder(reqCtx, clientID, orderID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.planService.GetBeforeAfter(reqCtx, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Сравнение планов получено", http.StatusOK)
}

func (c *ClientOrderController) GetDiff(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if _, err := c.orderService.GetClientOrder(reqCtx, clientID, orderID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.planService.GetDiff(reqCtx, orderID,
		ctx.QueryParam("original_type"), ctx.QueryParam("modified_type"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Сравнение версий получено", http.StatusOK)
}

// AnalyzePlan запускает анализ рисков по актуальной версии плана.
func (c *ClientOrderController) AnalyzePlan(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if _, err := c.orderService.GetClientOrder(reqCtx, clientID, orderID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.riskService.AnalyzeOrderPlan(reqCtx, orderID, ctx.QueryParam("version_type"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Анализ плана выполнен", http.StatusOK)
}

// EstimatePrice — предварительный расчет без создания заказа.
func (c *ClientOrderController) EstimatePrice(ctx echo.Context) error {
	var payload dto.PriceCalculatorInputDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.pricing.Estimate(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Стоимость рассчитана", http.StatusOK)
}

func (c *ClientOrderController) GetHistory(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	clientID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if _, err := c.orderService.GetClientOrder(reqCtx, clientID, orderID); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	history, err := c.orderService.ListHistory(reqCtx, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, history, "История заказа получена", http.StatusOK)
}
