package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aarondl/null/v8"
	"github.com/labstack/echo/v4"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"remodel-system/internal/dto"
	"remodel-system/internal/repositories"
	"remodel-system/internal/services"
	apperrors "remodel-system/pkg/errors"
	"remodel-system/pkg/utils"
)

// AdminOrderController — панель администратора: надзор за конвейером заказов.
type AdminOrderController struct {
	orderService    services.OrderServiceInterface
	reportService   services.ReportServiceInterface
	ruleService     services.AiRuleServiceInterface
	calendarService services.CalendarServiceInterface
	logger          *zap.Logger
}

func NewAdminOrderController(
	orderService services.OrderServiceInterface,
	reportService services.ReportServiceInterface,
	ruleService services.AiRuleServiceInterface,
	calendarService services.CalendarServiceInterface,
	logger *zap.Logger,
) *AdminOrderController {
	return &AdminOrderController{
		orderService:    orderService,
		reportService:   reportService,
		ruleService:     ruleService,
		calendarService: calendarService,
		logger:          logger,
	}
}

func (c *AdminOrderController) GetOrders(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter := utils.ParseFilterFromQuery(ctx.Request().URL.Query())
	res, total, err := c.orderService.GetOrders(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка получения списка заказов", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, res, "Заказы успешно получены", http.StatusOK, total)
}

func (c *AdminOrderController) GetOrderDetails(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	details, err := c.orderService.GetOrderDetails(reqCtx, orderID)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, details, "Детали заказа получены", http.StatusOK)
}

func (c *AdminOrderController) UpdateOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	adminID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.AdminUpdateOrderDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.AdminUpdateOrder(reqCtx, adminID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ успешно обновлен", http.StatusOK)
}

func (c *AdminOrderController) AssignExecutor(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	adminID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.AssignExecutorDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.AssignExecutor(reqCtx, adminID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Исполнитель назначен", http.StatusOK)
}

// ScheduleVisit планирует выезд от имени исполнителя.
func (c *AdminOrderController) ScheduleVisit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	adminID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.AdminScheduleVisitDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.AdminScheduleVisit(reqCtx, adminID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Визит запланирован", http.StatusOK)
}

func (c *AdminOrderController) UpdateVisit(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	adminID, err := utils.GetUserIDFromCtx(reqCtx)
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

	order, err := c.orderService.UpdateVisit(reqCtx, adminID, orderID, payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Визит обновлен", http.StatusOK)
}

// GetCalendar отдает календарь по всем исполнителям.
func (c *AdminOrderController) GetCalendar(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

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

	events, err := c.calendarService.GetAllEvents(reqCtx, from, to)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, events, "Календарь получен", http.StatusOK)
}

func (c *AdminOrderController) SendForRevision(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	adminID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload struct {
		Comment string `json:"comment" validate:"required"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.SendForRevision(reqCtx, adminID, orderID, payload.Comment)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ отправлен на доработку", http.StatusOK)
}

func (c *AdminOrderController) ApproveOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	adminID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload struct {
		Comment null.String `json:"comment"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.ApproveOrder(reqCtx, adminID, orderID, payload.Comment)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ завершен", http.StatusOK)
}

func (c *AdminOrderController) RejectOrder(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	adminID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload struct {
		Comment string `json:"comment" validate:"required"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.RejectOrder(reqCtx, adminID, orderID, payload.Comment)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Заказ отклонен", http.StatusOK)
}

func (c *AdminOrderController) ChangeStatus(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	adminID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload dto.ChangeStatusDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	order, err := c.orderService.AdminUpdateOrder(reqCtx, adminID, orderID, dto.AdminUpdateOrderDTO{
		Status:  &payload.Status,
		Comment: payload.Comment,
	})
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, order, "Статус заказа изменен", http.StatusOK)
}

func (c *AdminOrderController) AddComment(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	adminID, err := utils.GetUserIDFromCtx(reqCtx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	orderID, err := parseOrderID(ctx)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	var payload struct {
		Comment string `json:"comment" validate:"required"`
	}
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	if err := c.orderService.AddComment(reqCtx, adminID, orderID, payload.Comment); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, struct{}{}, "Комментарий добавлен", http.StatusOK)
}

func (c *AdminOrderController) GetAiRules(ctx echo.Context) error {
	rules, err := c.ruleService.GetRules(ctx.Request().Context())
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, rules, "Правила анализа получены", http.StatusOK)
}

func (c *AdminOrderController) CreateAiRule(ctx echo.Context) error {
	var payload dto.CreateAiRuleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	rule, err := c.ruleService.CreateRule(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, rule, "Правило анализа создано", http.StatusCreated)
}

func (c *AdminOrderController) UpdateAiRule(ctx echo.Context) error {
	var payload dto.UpdateAiRuleDTO
	if err := ctx.Bind(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	if err := ctx.Validate(&payload); err != nil {
		return utils.ErrorResponse(ctx, err)
	}

	rule, err := c.ruleService.UpdateRule(ctx.Request().Context(), payload)
	if err != nil {
		return utils.ErrorResponse(ctx, err)
	}
	return utils.SuccessResponse(ctx, rule, "Правило анализа обновлено", http.StatusOK)
}

// GetReport формирует отчет по заказам, json или xlsx по параметру format.
func (c *AdminOrderController) GetReport(ctx echo.Context) error {
	reqCtx := ctx.Request().Context()

	filter := repositories.ReportFilter{}
	if v := ctx.QueryParam("date_from"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateFrom = &parsed
		}
	}
	if v := ctx.QueryParam("date_to"); v != "" {
		if parsed, err := time.Parse("2006-01-02", v); err == nil {
			filter.DateTo = &parsed
		}
	}
	if v := ctx.QueryParam("status"); v != "" {
		filter.Statuses = []string{v}
	}

	data, err := c.reportService.GetOrdersReport(reqCtx, filter)
	if err != nil {
		c.logger.Error("Ошибка формирования отчета", zap.Error(err))
		return utils.ErrorResponse(ctx, err)
	}

	if ctx.QueryParam("format") == "xlsx" {
		return c.respondWithXLSX(ctx, data)
	}
	return utils.SuccessResponse(ctx, data, "Отчет успешно сформирован", http.StatusOK)
}

var reportHeaders = []interface{}{
	"ID заказа", "Название", "Статус", "Клиент", "Исполнитель",
	"Район", "Тип дома", "Площадь", "Оценка", "Итоговая цена", "Создан", "Завершен",
}

func (c *AdminOrderController) respondWithXLSX(ctx echo.Context, data []repositories.ReportItem) error {
	f := excelize.NewFile()
	sheet := "Отчет по заказам"
	f.SetSheetName("Sheet1", sheet)
	f.SetSheetRow(sheet, "A1", &reportHeaders)
	style, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheet, "A1", "L1", style)

	for i, item := range data {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []interface{}{
			item.OrderID, item.Title, string(item.Status),
			item.ClientName, item.ExecutorName.String,
			item.DistrictName.String, item.HouseTypeName.String,
			item.Area.Float64, item.EstimatedPrice.Float64, item.TotalPrice.Float64,
			item.CreatedAt.Format("02.01.2006"),
			formatNullDate(item.CompletedAt.Time, item.CompletedAt.Valid),
		}
		f.SetSheetRow(sheet, cell, &row)
	}
	f.SetColWidth(sheet, "A", "A", 38)
	f.SetColWidth(sheet, "B", "B", 30)
	f.SetColWidth(sheet, "D", "E", 25)

	ctx.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="orders_report_%s.xlsx"`, time.Now().Format("2006-01-02")))
	ctx.Response().Header().Set(echo.HeaderContentType,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	ctx.Response().WriteHeader(http.StatusOK)

	if err := f.Write(ctx.Response().Writer); err != nil {
		c.logger.Error("Ошибка записи XLSX-отчета", zap.Error(err))
		return apperrors.NewHttpError(http.StatusInternalServerError, "не удалось сформировать файл отчета", err)
	}
	return nil
}

func formatNullDate(t time.Time, valid bool) string {
	if !valid {
		return ""
	}
	return t.Format("02.01.2006")
}
