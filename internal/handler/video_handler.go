package handler

import (
	"context"
	"net/http"

	"videograb/internal/model"
	"videograb/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Resolver turns a video URL into a downloadable format list.
type Resolver interface {
	Resolve(ctx context.Context, videoURL string) (*model.VideoInfo, error)
}

// VideoHandler handles video-related requests
type VideoHandler struct {
	resolver Resolver
}

// NewVideoHandler creates a new video handler
func NewVideoHandler(r Resolver) *VideoHandler {
	return &VideoHandler{resolver: r}
}

// Resolve handles POST /api/download
func (h *VideoHandler) Resolve(c *gin.Context) {
	var req model.DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.WithRequest(c).Warn("Invalid download request", zap.Error(err))
		c.JSON(http.StatusBadRequest, model.ErrorResponse{Error: "Invalid URL provided"})
		return
	}

	videoInfo, err := h.resolver.Resolve(c.Request.Context(), req.URL)
	if err != nil {
		respondError(c, err, "Failed to process video. Please try again.")
		return
	}

	c.JSON(http.StatusOK, videoInfo)
}

// HealthCheck handles GET /api/health
func (h *VideoHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "videograb",
	})
}
