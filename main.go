package main

import (
	"net/http"
	"os"
	"strings"

	"ecowastehunt-be/config"
	"ecowastehunt-be/logger"
	"ecowastehunt-be/models"
	"ecowastehunt-be/routes"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.New("ecowastehunt-be")

	if err := godotenv.Load(); err != nil {
		log.Info("No .env file found")
	}

	db := config.ConnectDB()
	if db == nil {
		log.Fatal("Failed to connect to MongoDB")
	}
	log.Info("MongoDB connection established")

	config.ConnectRedis()

	if err := models.EnsureVoteIndex(config.GetCollection("waste_report_votes")); err != nil {
		log.WithError(err).Fatal("creating vote index")
	}
	if err := models.EnsureReportIndexes(config.GetCollection("waste_reports")); err != nil {
		log.WithError(err).Fatal("creating report indexes")
	}

	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("wastetype", func(fl validator.FieldLevel) bool {
			return models.WasteType(strings.ToLower(fl.Field().String())).Valid()
		})
	}

	r := gin.Default()
	r.Use(logger.RequestLogger(log))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "access-token"},
		AllowCredentials: false,
	}))

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	r.Static("/uploads", uploadDir)

	routes.AuthRoutes(r)
	routes.WasteReportRoutes(r)
	routes.UploadRoutes(r)

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	if err := r.Run(":" + port); err != nil {
		log.WithError(err).Fatal("Failed to start server")
	}
}
