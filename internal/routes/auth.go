package routes

import (
	"github.com/labstack/echo/v4"

	"remodel-system/internal/controllers"
)

func runAuthRouter(api *echo.Group, authCtrl *controllers.AuthController) {
	authGroup := api.Group("/auth")
	{
		authGroup.POST("/login", authCtrl.Login)
	}
}
