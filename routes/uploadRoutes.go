package routes

import (
	"ecowastehunt-be/controllers"
	"ecowastehunt-be/middlewares"

	"github.com/gin-gonic/gin"
)

// UploadRoutes sets up the media upload routes
func UploadRoutes(r *gin.Engine) {
	uploads := r.Group("/uploads")
	{
		uploads.POST("/waste-images", middlewares.AuthMiddleware(), controllers.UploadWasteImages)
	}
}
