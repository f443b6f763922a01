package routes

import (
	"github.com/labstack/echo/v4"

	"remodel-system/internal/controllers"
)

func runExecutorRouter(executorGroup *echo.Group, executorCtrl *controllers.ExecutorOrderController) {
	{
		executorGroup.GET("/orders", executorCtrl.GetOrders)
		executorGroup.POST("/orders/:id/take", executorCtrl.TakeOrder)
		executorGroup.POST("/orders/:id/decline", executorCtrl.DeclineOrder)
		executorGroup.POST("/orders/:id/visit", executorCtrl.ScheduleVisit)
		executorGroup.PUT("/orders/:id/visit", executorCtrl.UpdateVisit)

		executorGroup.POST("/orders/:id/plan/approve", executorCtrl.ApprovePlan)
		executorGroup.POST("/orders/:id/plan/edit", executorCtrl.EditPlan)
		executorGroup.POST("/orders/:id/plan/reject", executorCtrl.RejectPlan)
		executorGroup.GET("/orders/:id/plan", executorCtrl.GetPlan)
		executorGroup.GET("/orders/:id/plan/2d", executorCtrl.GetSplitView)
		executorGroup.GET("/orders/:id/plan/before-after", executorCtrl.GetBeforeAfter)
		executorGroup.GET("/orders/:id/plan/diff", executorCtrl.GetDiff)
		executorGroup.GET("/orders/:id/plan/export", executorCtrl.ExportPlan)

		executorGroup.GET("/calendar", executorCtrl.GetCalendar)
	}
}
