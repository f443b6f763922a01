package controllers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/services"
	"remodel-system/pkg/utils"
)

// ExecutorOrderController — кабинет исполнителя: назначенные заказы,
// визиты и согласование планов.
type ExecutorOrderController struct {
	orderService    services.OrderServiceInterface
	planService     services.PlanVersionServiceInterface
	calendarService services.CalendarServiceInterface
	logger          *zap.Logger
}

func NewExecutorOrderController(
	orderService services.OrderServiceInterface,
	planService services.PlanVersionServiceInterface,
	calendarService services.CalendarServiceInterface,
	logger *zap.Logger,
) *ExecutorOrderController {
	return &ExecutorOrderController{
		orderService:    orderService,
		planService:     planService,
		calendarService: calendarService,
		logger:          logger,
	}
}

func (c *ExecutorOrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	executorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())

	res, total, err := c.orderService.GetExecutorOrders(reqCtx, executorID, filter)
	if err != nil {
		c.logger.Error("Ошибка получения заказов исполнителя", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Заказы успешно получены", http.StatusOK, total)
}

func (c *ExecutorOrderController) TakeOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	executorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.TakeOrder(reqCtx, executorID, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ принят в работу", http.StatusOK)
}

func (c *ExecutorOrderController) DeclineOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	executorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.DeclineOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.DeclineOrder(reqCtx, executorID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Отказ от заказа зафиксирован", http.StatusOK)
}

func (c *ExecutorOrderController) ScheduleVisit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	executorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.ScheduleVisitDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.ScheduleVisit(reqCtx, executorID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Визит запланирован", http.StatusOK)
}

func (c *ExecutorOrderController) UpdateVisit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	executorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.UpdateVisitDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.UpdateVisit(reqCtx, executorID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Визит обновлен", http.StatusOK)
}

func (c *ExecutorOrderController) ApprovePlan(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	executorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.ApprovePlanDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.ApprovePlan(reqCtx, executorID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "План одобрен", http.StatusOK)
}

func (c *ExecutorOrderController) EditPlan(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	executorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.EditPlanDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.EditPlan(reqCtx, executorID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Правки плана сохранены", http.StatusOK)
}

func (c *ExecutorOrderController) RejectPlan(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	executorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.RejectPlanDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.RejectPlan(reqCtx, executorID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Отказ по плану зафиксирован", http.StatusOK)
}

func (c *ExecutorOrderController) GetPlan(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	version, err := c.planService.GetVersion(reqCtx, orderID, ctx.QueryParam("version_type"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, version, "План успешно получен", http.StatusOK)
}

func (c *ExecutorOrderController) GetSplitView(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.planService.GetSplitView(reqCtx, orderID, ctx.QueryParam("version_type"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "План успешно получен", http.StatusOK)
}

func (c *ExecutorOrderController) GetBeforeAfter(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.planService.GetBeforeAfter(reqCtx, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Сравнение планов получено", http.StatusOK)
}

func (c *ExecutorOrderController) GetDiff(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.planService.GetDiff(reqCtx, orderID,
		ctx.QueryParam("original_type"), ctx.QueryParam("modified_type"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Сравнение версий получено", http.StatusOK)
}

func (c *ExecutorOrderController) ExportPlan(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	res, err := c.planService.ExportPlan(reqCtx, orderID, ctx.QueryParam("version_type"))
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "План выгружен", http.StatusOK)
}

// GetCalendar отдает события календаря текущего исполнителя.
func (c *ExecutorOrderController) GetCalendar(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	executorID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var from, to time.Time
	if v := ctx.QueryParam("from"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			from = parsed
		}
	}
	if v := ctx.QueryParam("to"); v != "" {
		if parsed, err := time.Parse(time.RFC3339, v); err == nil {
			to = parsed
		}
	}

	events, err := c.calendarService.GetExecutorEvents(reqCtx, executorID, from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, events, "Календарь получен", http.StatusOK)
}
