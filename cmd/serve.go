package cmd

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"videograb/config"
	"videograb/internal/extractor"
	"videograb/internal/handler"
	"videograb/internal/service"
	"videograb/pkg/httpclient"
	"videograb/pkg/logger"
	"videograb/web"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web service",
	Args:  cobra.NoArgs,
	RunE:  serveRun,
}

func serveRun(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if err := logger.Init(&cfg.Logging); err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()

	logger.Logger.Info("Starting videograb server",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.String("version", Version),
	)

	// Initialize services
	ex := extractor.NewYouTubeExtractor(httpclient.New(time.Duration(cfg.YouTube.Timeout) * time.Second))
	videoService := service.NewVideoService(ex, cfg.Stream.Path)
	// Media transfers are bounded by the inbound request, not a client timeout.
	streamService := service.NewStreamService(httpclient.New(0), &cfg.Stream)

	rateLimitService := service.NewRateLimitService(&cfg.RateLimit)
	defer rateLimitService.Stop()
	if cfg.RateLimit.Enabled {
		logger.Logger.Info("Rate limiting enabled", zap.Int("requests_per_minute", cfg.RateLimit.RequestsPerMinute))
	}

	index, err := web.Index()
	if err != nil {
		return fmt.Errorf("loading index page: %w", err)
	}

	// Setup Gin router
	gin.SetMode(gin.ReleaseMode)
	router := handler.NewRouter(handler.RouterDeps{
		Config:    cfg,
		Resolver:  videoService,
		Opener:    streamService,
		RateLimit: rateLimitService,
		Index:     index,
		Static:    web.Static(),
	})

	// No write timeout: streamed downloads run as long as the media does.
	srv := &http.Server{
		Addr:        fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:     router,
		ReadTimeout: time.Duration(cfg.Server.Timeout) * time.Second,
		IdleTimeout: 120 * time.Second,
	}

	errChan := make(chan error, 1)
	go func() {
		logger.Logger.Info("Server listening", zap.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sigChan:
	case err := <-errChan:
		logger.Logger.Error("Server error", zap.Error(err))
		return err
	}

	logger.Logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Logger.Info("Server stopped")
	return nil
}
