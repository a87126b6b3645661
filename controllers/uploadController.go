package controllers

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"ecowastehunt-be/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type uploadedFile struct {
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	OriginalName string `json:"originalname"`
	Size         int64  `json:"size"`
}

// UploadWasteImages accepts up to 5 images in a single multipart request
// (field "images") and returns one hosted URL per file, in submission order.
func UploadWasteImages(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid multipart form"})
		return
	}

	files := form.File["images"]
	if len(files) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "no images supplied"})
		return
	}
	if len(files) > models.MaxReportImages {
		c.JSON(http.StatusBadRequest, gin.H{"error": "at most 5 images per upload"})
		return
	}

	uploadDir := os.Getenv("UPLOAD_DIR")
	if uploadDir == "" {
		uploadDir = "uploads"
	}
	if err := os.MkdirAll(uploadDir, 0o755); err != nil {
		log.WithError(err).Error("creating upload directory")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store images"})
		return
	}

	baseURL := strings.TrimRight(os.Getenv("PUBLIC_BASE_URL"), "/")
	if baseURL == "" {
		scheme := "http"
		if c.Request.TLS != nil {
			scheme = "https"
		}
		baseURL = fmt.Sprintf("%s://%s", scheme, c.Request.Host)
	}

	saved := make([]uploadedFile, 0, len(files))
	for _, fh := range files {
		ext := filepath.Ext(fh.Filename)
		if ext == "" {
			ext = ".jpg"
		}
		name := uuid.NewString() + ext
		dst := filepath.Join(uploadDir, name)

		if err := c.SaveUploadedFile(fh, dst); err != nil {
			log.WithError(err).Error("saving uploaded image")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store images"})
			return
		}

		saved = append(saved, uploadedFile{
			URL:          baseURL + "/uploads/" + name,
			Filename:     name,
			OriginalName: fh.Filename,
			Size:         fh.Size,
		})
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Images uploaded",
		"data":    saved,
	})
}
