package handler

import (
	"net/http"

	"videograb/internal/model"
	"videograb/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError converts err into a JSON error body. Unclassified errors get
// fallback so internal details stay in the log.
func respondError(c *gin.Context, err error, fallback string) {
	log := logger.WithRequest(c)

	appErr, ok := model.AsAppError(err)
	if !ok {
		log.Error("Unhandled error", zap.Error(err), zap.String("path", c.Request.URL.Path))
		c.JSON(http.StatusInternalServerError, model.ErrorResponse{Error: fallback})
		return
	}

	message := appErr.Message
	if appErr.Kind == model.KindUpstreamFetch && appErr.Err != nil {
		message = appErr.Error()
	}

	status := appErr.StatusCode()
	if status >= http.StatusInternalServerError {
		log.Error("Request failed", zap.String("kind", string(appErr.Kind)), zap.Error(err))
	} else {
		log.Warn("Request rejected", zap.String("kind", string(appErr.Kind)), zap.String("reason", appErr.Message))
	}
	c.JSON(status, model.ErrorResponse{Error: message})
}
