package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"videograb/internal/model"
	"videograb/internal/service"
	"videograb/pkg/logger"
	"videograb/pkg/validator"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Opener opens an upstream media response.
type Opener interface {
	Open(ctx context.Context, upstreamURL string) (*service.Upstream, error)
}

// StreamHandler relays upstream media to the browser as a file download
type StreamHandler struct {
	opener Opener
	cfg    *model.StreamConfig
}

// NewStreamHandler creates a new stream handler
func NewStreamHandler(o Opener, cfg *model.StreamConfig) *StreamHandler {
	return &StreamHandler{opener: o, cfg: cfg}
}

// Stream handles GET /api/stream?url=...&title=...
func (h *StreamHandler) Stream(c *gin.Context) {
	title := c.DefaultQuery("title", "video")
	if title == "" {
		title = "video"
	}

	upstream, err := h.opener.Open(c.Request.Context(), c.Query("url"))
	if err != nil {
		respondError(c, err, "Failed to stream video. Please try again.")
		return
	}
	defer upstream.Body.Close()

	c.Header("Content-Disposition", buildContentDisposition(title))
	c.Header("Accept-Ranges", "bytes")
	c.Header("Cache-Control", fmt.Sprintf("public, max-age=%d", h.cfg.CacheMaxAge))
	c.Header("Content-Type", upstream.ContentType)
	if upstream.ContentLength >= 0 {
		c.Header("Content-Length", fmt.Sprintf("%d", upstream.ContentLength))
	}
	c.Status(http.StatusOK)

	written, err := io.Copy(c.Writer, upstream.Body)
	if err != nil {
		logger.WithRequest(c).Warn("Stream interrupted", zap.Int64("bytes", written), zap.Error(err))
		return
	}
	logger.WithRequest(c).Debug("Stream completed", zap.Int64("bytes", written))
}

// buildContentDisposition forces a download named after the full title. The
// extension is always .mp4 whatever the container.
func buildContentDisposition(title string) string {
	return fmt.Sprintf(`attachment; filename="%s.mp4"`, validator.EscapeComponent(title))
}
