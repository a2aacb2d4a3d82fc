package importexport

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"linkstash/pkg/linkstash/auth"
	"linkstash/pkg/linkstash/models"
)

// Handler handles import/export requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new import/export handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// PinboardBookmark represents a bookmark in Pinboard JSON format
type PinboardBookmark struct {
	Href        string `json:"href"`
	Description string `json:"description"`
	Extended    string `json:"extended"`
	Tags        string `json:"tags"`
	Time        string `json:"time"`
	Shared      string `json:"shared"`
	ToRead      string `json:"toread"`
	Meta        string `json:"meta,omitempty"`
	Hash        string `json:"hash,omitempty"`
}

// ImportRequest represents an import request
type ImportRequest struct {
	Bookmarks []PinboardBookmark `json:"bookmarks" binding:"required"`
}

// ImportResult represents the result of an import operation
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// parseBookmarkTime accepts the two timestamp shapes Pinboard exports use
func parseBookmarkTime(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	parsed, err := time.Parse(time.RFC3339, s)
	if err != nil {
		parsed, err = time.Parse("2006-01-02T15:04:05Z", s)
	}
	return parsed, err
}

// findOrCreateTag resolves a tag name within the owner's tags, creating it
// on first use
func (h *Handler) findOrCreateTag(ownerID uint, name string) (models.Tag, error) {
	var tag models.Tag
	if err := h.db.Where("user_id = ? AND name = ?", ownerID, name).First(&tag).Error; err == nil {
		return tag, nil
	}
	tag = models.Tag{UserID: ownerID, Name: name}
	return tag, h.db.Create(&tag).Error
}

// Import imports bookmarks from Pinboard JSON format into the caller's
// collection. A bookmark whose URL the user already saved is skipped rather
// than duplicated.
// @Summary Import bookmarks
// @Description Import bookmarks in Pinboard JSON format
// @Tags importexport
// @Accept json
// @Produce json
// @Param request body ImportRequest true "Bookmarks to import"
// @Success 200 {object} ImportResult
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /import [post]
func (h *Handler) Import(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req ImportRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result := ImportResult{
		Errors: []string{},
	}

	for i, bookmark := range req.Bookmarks {
		if bookmark.Href == "" {
			result.Errors = append(result.Errors, "bookmark "+strconv.Itoa(i)+": missing href")
			result.Skipped++
			continue
		}

		createdAt, err := parseBookmarkTime(bookmark.Time)
		if err != nil {
			result.Errors = append(result.Errors, "bookmark "+strconv.Itoa(i)+": invalid time format")
			result.Skipped++
			continue
		}

		var existing int64
		h.db.Model(&models.Link{}).Where("user_id = ? AND url = ?", userID, bookmark.Href).Count(&existing)
		if existing > 0 {
			result.Skipped++
			continue
		}

		title := bookmark.Description
		if title == "" {
			title = bookmark.Href
		}
		if len(title) > models.MaxTitleLength {
			title = title[:models.MaxTitleLength]
		}

		status := models.StatusCompleted
		if bookmark.ToRead == "yes" {
			status = models.StatusPending
		}

		link := models.Link{
			UserID:      userID,
			URL:         bookmark.Href,
			Title:       title,
			Description: bookmark.Extended,
			Priority:    models.PriorityMedium,
			Status:      status,
		}
		link.CreatedAt = createdAt

		if err := h.db.Create(&link).Error; err != nil {
			result.Errors = append(result.Errors, "bookmark "+strconv.Itoa(i)+": "+err.Error())
			result.Skipped++
			continue
		}

		for _, tagName := range strings.Fields(bookmark.Tags) {
			tag, err := h.findOrCreateTag(userID, tagName)
			if err != nil {
				continue
			}
			h.db.Create(&models.LinkTag{LinkID: link.ID, TagID: tag.ID})
		}

		result.Imported++
	}

	c.JSON(http.StatusOK, result)
}

// Export exports the caller's links to Pinboard JSON format, newest first
// @Summary Export bookmarks
// @Description Export all links in Pinboard JSON format
// @Tags importexport
// @Produce json
// @Param download query bool false "Send as a file attachment"
// @Success 200 {array} PinboardBookmark
// @Security BearerAuth
// @Router /export [get]
func (h *Handler) Export(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var links []models.Link
	err := h.db.Preload("Tags").
		Where("user_id = ?", userID).
		Order("created_at DESC").Order("id ASC").
		Find(&links).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch links"})
		return
	}

	bookmarks := make([]PinboardBookmark, len(links))
	for i, link := range links {
		tagNames := make([]string, len(link.Tags))
		for j, tag := range link.Tags {
			tagNames[j] = tag.Name
		}

		toread := "no"
		if link.Status == models.StatusPending {
			toread = "yes"
		}

		bookmarks[i] = PinboardBookmark{
			Href:        link.URL,
			Description: link.Title,
			Extended:    link.Description,
			Tags:        strings.Join(tagNames, " "),
			Time:        link.CreatedAt.Format(time.RFC3339),
			Shared:      "no",
			ToRead:      toread,
		}
	}

	if c.Query("download") == "true" {
		c.Header("Content-Disposition", "attachment; filename=linkstash-export.json")
	}

	c.JSON(http.StatusOK, bookmarks)
}

// RegisterRoutes registers import/export routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/import", h.Import)
	rg.GET("/export", h.Export)
}
