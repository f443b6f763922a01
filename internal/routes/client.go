package routes

import (
	"github.com/labstack/echo/v4"

	"remodel-system/internal/controllers"
)

func runClientRouter(clientGroup *echo.Group, clientCtrl *controllers.ClientOrderController) {
	{
		clientGroup.GET("/orders", clientCtrl.GetOrders)
		clientGroup.POST("/orders", clientCtrl.CreateOrder)
		clientGroup.GET("/orders/:id", clientCtrl.GetOrder)
		clientGroup.PUT("/orders/:id", clientCtrl.UpdateOrder)
		clientGroup.POST("/orders/:id/cancel", clientCtrl.CancelOrder)
		clientGroup.GET("/orders/:id/history", clientCtrl.GetHistory)

		clientGroup.POST("/orders/:id/plan", clientCtrl.SavePlan)
		clientGroup.POST("/orders/:id/plan/parse-result", clientCtrl.SaveParseResult)
		clientGroup.GET("/orders/:id/plan", clientCtrl.GetPlan)
		clientGroup.GET("/orders/:id/plan/2d", clientCtrl.GetSplitView)
		clientGroup.GET("/orders/:id/plan/before-after", clientCtrl.GetBeforeAfter)
		clientGroup.GET("/orders/:id/plan/diff", clientCtrl.GetDiff)
		clientGroup.POST("/orders/:id/plan/analyze", clientCtrl.AnalyzePlan)

		clientGroup.POST("/calculator/estimate", clientCtrl.EstimatePrice)
	}
}
