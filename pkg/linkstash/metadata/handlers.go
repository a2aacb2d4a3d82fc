package metadata

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"linkstash/pkg/linkstash/errs"
)

// Handler handles metadata scraping requests
type Handler struct {
	scraper *Scraper
}

// NewHandler creates a new metadata handler
func NewHandler(scraper *Scraper) *Handler {
	return &Handler{scraper: scraper}
}

// ScrapeRequest represents the request to scrape a URL
type ScrapeRequest struct {
	URL string `json:"url" binding:"required"`
}

// Scrape fetches metadata for a URL. Fetch or parse failures degrade to
// empty fields so the client's save flow is never blocked.
// @Summary Scrape URL metadata
// @Tags metadata
// @Accept json
// @Produce json
// @Param request body ScrapeRequest true "URL to scrape"
// @Success 200 {object} Metadata
// @Failure 400 {object} map[string]string "URL missing or malformed"
// @Security BearerAuth
// @Router /scrape-url [post]
func (h *Handler) Scrape(c *gin.Context) {
	var req ScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "URL is required"})
		return
	}

	meta, err := h.scraper.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		var ve *errs.ValidationError
		if errors.As(err, &ve) {
			c.JSON(http.StatusBadRequest, gin.H{"error": ve.Error()})
			return
		}
		slog.Warn("metadata fetch failed", "url", req.URL, "error", err)
		c.JSON(http.StatusOK, Metadata{})
		return
	}

	c.JSON(http.StatusOK, meta)
}

// RegisterRoutes registers metadata routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/scrape-url", h.Scrape)
}
