package handler

import (
	"io/fs"
	"net/http"

	"videograb/internal/model"
	"videograb/internal/service"
	"videograb/pkg/logger"
	"videograb/pkg/middleware"

	"github.com/gin-gonic/gin"
)

// RouterDeps collects what NewRouter wires together.
type RouterDeps struct {
	Config    *model.Config
	Resolver  Resolver
	Opener    Opener
	RateLimit *service.RateLimitService // nil disables limiting
	Index     []byte
	Static    fs.FS
}

// NewRouter builds the gin engine with every route and middleware.
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(logger.GinLogger())

	site := NewSiteHandler(deps.Index, &deps.Config.Site)
	router.GET("/", site.Index)
	router.GET("/sitemap.xml", site.Sitemap)
	router.GET("/robots.txt", site.Robots)
	if deps.Static != nil {
		router.StaticFS("/static", http.FS(deps.Static))
	}

	videoHandler := NewVideoHandler(deps.Resolver)
	streamHandler := NewStreamHandler(deps.Opener, &deps.Config.Stream)

	limited := router.Group("")
	if deps.RateLimit != nil && deps.Config.RateLimit.Enabled {
		limited.Use(middleware.RateLimitMiddleware(deps.RateLimit))
	}

	router.GET("/api/health", videoHandler.HealthCheck)
	limited.POST("/api/download", videoHandler.Resolve)
	// Resolved format URLs point here, so the route follows the config.
	limited.GET(deps.Config.Stream.Path, streamHandler.Stream)

	return router
}
