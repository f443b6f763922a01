package routes

import (
	"github.com/labstack/echo/v4"

	"remodel-system/internal/controllers"
)

func runDirectoryRouter(secureGroup *echo.Group, directoryCtrl *controllers.DirectoryController) {
	dirGroup := secureGroup.Group("/directories")
	{
		dirGroup.GET("/districts", directoryCtrl.GetDistricts)
		dirGroup.GET("/house-types", directoryCtrl.GetHouseTypes)
		dirGroup.GET("/departments", directoryCtrl.GetDepartments)
	}
}
