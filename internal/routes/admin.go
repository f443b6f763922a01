package routes

import (
	"github.com/labstack/echo/v4"

	"remodel-system/internal/controllers"
)

func runAdminRouter(adminGroup *echo.Group, adminCtrl *controllers.AdminOrderController) {
	{
		adminGroup.GET("/orders", adminCtrl.GetOrders)
		adminGroup.GET("/orders/:id", adminCtrl.GetOrderDetails)
		adminGroup.PUT("/orders/:id", adminCtrl.UpdateOrder)
		adminGroup.POST("/orders/:id/assign", adminCtrl.AssignExecutor)
		adminGroup.POST("/orders/:id/visit", adminCtrl.ScheduleVisit)
		adminGroup.PUT("/orders/:id/visit", adminCtrl.UpdateVisit)
		adminGroup.POST("/orders/:id/revision", adminCtrl.SendForRevision)
		adminGroup.POST("/orders/:id/approve", adminCtrl.ApproveOrder)
		adminGroup.POST("/orders/:id/reject", adminCtrl.RejectOrder)
		adminGroup.POST("/orders/:id/status", adminCtrl.ChangeStatus)
		adminGroup.POST("/orders/:id/comment", adminCtrl.AddComment)

		adminGroup.GET("/ai-rules", adminCtrl.GetAiRules)
		adminGroup.POST("/ai-rules", adminCtrl.CreateAiRule)
		adminGroup.PUT("/ai-rules/:id", adminCtrl.UpdateAiRule)

		adminGroup.GET("/calendar", adminCtrl.GetCalendar)

		adminGroup.GET("/reports/orders", adminCtrl.GetReport)
	}
}
