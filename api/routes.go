package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Config holds application configuration
type Config struct {
	Port        string
	MaxFileSize int64
	TempDir     string
	DocumentTTL time.Duration
}

func SetupRoutes(r *gin.Engine, s *Server) {
	apiGroup := r.Group("/api/pdf")
	{
		apiGroup.POST("/upload", s.HandleUpload)
		apiGroup.POST("/upload-multiple", s.HandleUploadMultiple)
		apiGroup.POST("/parse-pages", s.HandleParsePages)
		apiGroup.POST("/split", s.HandleSplit)
		apiGroup.POST("/remove-pages", s.HandleRemovePages)
		apiGroup.POST("/arrange-pages", s.HandleArrangePages)
		apiGroup.POST("/merge", s.HandleMerge)
		apiGroup.POST("/resave", s.HandleResave)
		apiGroup.POST("/compress", s.HandleResave)
		apiGroup.POST("/images-to-pdf", s.HandleImagesToPDF)
		apiGroup.GET("/documents/:id", s.HandleDownloadDocument)
		apiGroup.DELETE("/documents/:id", s.HandleDeleteDocument)
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "healthy",
			"service": "pdf_toolkit",
		})
	})
}
