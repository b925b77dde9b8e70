package handler

import (
	"encoding/xml"
	"fmt"
	"net/http"
	"time"

	"videograb/internal/model"

	"github.com/gin-gonic/gin"
)

type sitemapURLSet struct {
	XMLName xml.Name     `xml:"urlset"`
	XMLNS   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

type sitemapURL struct {
	Loc        string  `xml:"loc"`
	LastMod    string  `xml:"lastmod"`
	ChangeFreq string  `xml:"changefreq"`
	Priority   float64 `xml:"priority"`
}

// SiteHandler serves the landing page and crawler metadata
type SiteHandler struct {
	index []byte
	cfg   *model.SiteConfig
	now   func() time.Time
}

// NewSiteHandler creates a new site handler
func NewSiteHandler(index []byte, cfg *model.SiteConfig) *SiteHandler {
	return &SiteHandler{index: index, cfg: cfg, now: time.Now}
}

// Index handles GET /
func (h *SiteHandler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", h.index)
}

// Sitemap handles GET /sitemap.xml
func (h *SiteHandler) Sitemap(c *gin.Context) {
	c.XML(http.StatusOK, sitemapURLSet{
		XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9",
		URLs: []sitemapURL{{
			Loc:        h.cfg.BaseURL,
			LastMod:    h.now().UTC().Format(time.RFC3339),
			ChangeFreq: "daily",
			Priority:   1,
		}},
	})
}

// Robots handles GET /robots.txt
func (h *SiteHandler) Robots(c *gin.Context) {
	c.String(http.StatusOK, "User-agent: *\nAllow: /\nDisallow: /api/\nSitemap: %s\n",
		fmt.Sprintf("%s/sitemap.xml", h.cfg.BaseURL))
}
