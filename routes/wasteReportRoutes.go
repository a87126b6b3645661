package routes

import (
	"ecowastehunt-be/controllers"
	"ecowastehunt-be/middlewares"

	"github.com/gin-gonic/gin"
)

// WasteReportRoutes sets up the waste report routes
func WasteReportRoutes(r *gin.Engine) {
	reports := r.Group("/waste-reports")
	{
		reports.POST("", middlewares.AuthMiddleware(), middlewares.ReportRateLimiter(20), controllers.CreateWasteReport)
		reports.GET("/user/my-reports", middlewares.AuthMiddleware(), controllers.GetMyWasteReports)
		reports.GET("/nearby", controllers.GetNearbyWasteReports)
		reports.GET("/:id", middlewares.AuthMiddleware(), controllers.GetWasteReport)
		reports.POST("/:id/vote", middlewares.AuthMiddleware(), controllers.VoteOnWasteReport)
	}
}
