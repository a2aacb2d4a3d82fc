package dashboard

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"linkstash/pkg/linkstash/auth"
	"linkstash/pkg/linkstash/deadline"
	"linkstash/pkg/linkstash/errs"
	"linkstash/pkg/linkstash/models"
)

// Handler handles dashboard requests
type Handler struct {
	aggregator *Aggregator
}

// NewHandler creates a new dashboard handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{aggregator: NewAggregator(db)}
}

// DeadlineLinkResponse is a link in a deadline list, with its urgency
// classification attached for display
type DeadlineLinkResponse struct {
	ID       uint                    `json:"id"`
	URL      string                  `json:"url"`
	Title    string                  `json:"title"`
	Deadline *time.Time              `json:"deadline"`
	Priority string                  `json:"priority"`
	Status   string                  `json:"status"`
	Urgency  deadline.Classification `json:"urgency"`
}

// SummaryResponse is the dashboard payload
type SummaryResponse struct {
	Stats                 Stats                  `json:"stats"`
	RecentLinks           []models.Link          `json:"recentLinks"`
	UpcomingDeadlineLinks []DeadlineLinkResponse `json:"upcomingDeadlineLinks"`
}

func toDeadlineResponses(links []models.Link, now time.Time) []DeadlineLinkResponse {
	responses := make([]DeadlineLinkResponse, len(links))
	for i, link := range links {
		responses[i] = DeadlineLinkResponse{
			ID:       link.ID,
			URL:      link.URL,
			Title:    link.Title,
			Deadline: link.Deadline,
			Priority: string(link.Priority),
			Status:   string(link.Status),
			Urgency:  deadline.Classify(link.Deadline, now),
		}
	}
	return responses
}

// Summary returns the user's dashboard: stats, recent links, and the next
// few deadline-bearing links with urgency buckets
// @Summary Get dashboard
// @Tags dashboard
// @Produce json
// @Success 200 {object} SummaryResponse
// @Security BearerAuth
// @Router /dashboard [get]
func (h *Handler) Summary(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	summary, err := h.aggregator.Summary(c.Request.Context(), userID)
	if err != nil {
		status, msg := errs.HTTP(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, SummaryResponse{
		Stats:                 summary.Stats,
		RecentLinks:           summary.RecentLinks,
		UpcomingDeadlineLinks: toDeadlineResponses(summary.UpcomingDeadlineLinks, time.Now()),
	})
}

// Upcoming returns the standalone upcoming-deadlines list
// @Summary List upcoming deadlines
// @Tags dashboard
// @Produce json
// @Param limit query int false "Max results (default 5)"
// @Success 200 {array} DeadlineLinkResponse
// @Security BearerAuth
// @Router /deadlines/upcoming [get]
func (h *Handler) Upcoming(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	limit := UpcomingListLimit
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	links, err := h.aggregator.UpcomingDeadlineLinks(c.Request.Context(), userID, limit)
	if err != nil {
		status, msg := errs.HTTP(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, toDeadlineResponses(links, time.Now()))
}

// RegisterRoutes registers dashboard routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/dashboard", h.Summary)
	rg.GET("/deadlines/upcoming", h.Upcoming)
}
