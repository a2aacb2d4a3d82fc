package links

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"linkstash/pkg/linkstash/auth"
	"linkstash/pkg/linkstash/errs"
	"linkstash/pkg/linkstash/models"
)

// Handler handles link-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new links handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateLinkRequest represents the request to create a link
type CreateLinkRequest struct {
	URL         string     `json:"url" binding:"required,url"`
	Title       string     `json:"title" binding:"required,max=150"`
	Description string     `json:"description"`
	Favicon     string     `json:"favicon"`
	CategoryID  *uint      `json:"category_id"`
	Notes       *string    `json:"notes"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Status      string     `json:"status" binding:"omitempty,oneof=Pending Completed Applied Rejected"`
	TagIDs      []uint     `json:"tags"`
}

// UpdateLinkRequest represents the request to update a link. A nil TagIDs
// leaves the tag set untouched; a present (possibly empty) list replaces it.
type UpdateLinkRequest struct {
	URL         string     `json:"url" binding:"omitempty,url"`
	Title       string     `json:"title" binding:"omitempty,max=150"`
	Description *string    `json:"description"`
	Favicon     *string    `json:"favicon"`
	CategoryID  *uint      `json:"category_id"`
	Notes       *string    `json:"notes"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority" binding:"omitempty,oneof=Low Medium High"`
	Status      string     `json:"status" binding:"omitempty,oneof=Pending Completed Applied Rejected"`
	TagIDs      *[]uint    `json:"tags"`
}

// LinkResponse represents a link in API responses
type LinkResponse struct {
	ID          uint       `json:"id"`
	URL         string     `json:"url"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Favicon     string     `json:"favicon"`
	CategoryID  *uint      `json:"category_id"`
	Notes       *string    `json:"notes"`
	Deadline    *time.Time `json:"deadline"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	Tags        []string   `json:"tags,omitempty"`
	CreatedAt   string     `json:"created_at"`
	UpdatedAt   string     `json:"updated_at"`
}

func linkToResponse(link models.Link) LinkResponse {
	resp := LinkResponse{
		ID:          link.ID,
		URL:         link.URL,
		Title:       link.Title,
		Description: link.Description,
		Favicon:     link.Favicon,
		CategoryID:  link.CategoryID,
		Notes:       link.Notes,
		Deadline:    link.Deadline,
		Priority:    string(link.Priority),
		Status:      string(link.Status),
		CreatedAt:   link.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   link.UpdatedAt.Format(time.RFC3339),
	}
	for _, t := range link.Tags {
		resp.Tags = append(resp.Tags, t.Name)
	}
	return resp
}

// findOwned loads a link scoped to the owner. Links belonging to other
// users report not-found, never forbidden.
func (h *Handler) findOwned(ownerID uint, id uint) (*models.Link, error) {
	var link models.Link
	if err := h.db.Where("id = ? AND user_id = ?", id, ownerID).First(&link).Error; err != nil {
		return nil, &errs.NotFoundError{Resource: "Link"}
	}
	return &link, nil
}

// checkCategory verifies a referenced category exists and belongs to the owner
func (h *Handler) checkCategory(ownerID uint, categoryID uint) error {
	var category models.Category
	if err := h.db.Where("id = ? AND user_id = ?", categoryID, ownerID).First(&category).Error; err != nil {
		return &errs.NotFoundError{Resource: "Category"}
	}
	return nil
}

// ownedTags resolves tag IDs within the owner's tags, rejecting any that
// are missing or foreign
func (h *Handler) ownedTags(ownerID uint, tagIDs []uint) ([]models.Tag, error) {
	if len(tagIDs) == 0 {
		return nil, nil
	}
	var tags []models.Tag
	if err := h.db.Where("user_id = ? AND id IN ?", ownerID, tagIDs).Find(&tags).Error; err != nil {
		return nil, &errs.DependencyError{Op: "resolve tags", Err: err}
	}
	if len(tags) != len(dedupeIDs(tagIDs)) {
		return nil, &errs.NotFoundError{Resource: "Tag"}
	}
	return tags, nil
}

func dedupeIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// replaceTags swaps a link's tag set inside the caller's transaction.
// The delete-then-insert pair stays atomic so a failed insert cannot leave
// the link tagless.
func replaceTags(tx *gorm.DB, linkID uint, tags []models.Tag) error {
	if err := tx.Where("link_id = ?", linkID).Delete(&models.LinkTag{}).Error; err != nil {
		return err
	}
	for _, tag := range tags {
		if err := tx.Create(&models.LinkTag{LinkID: linkID, TagID: tag.ID}).Error; err != nil {
			return err
		}
	}
	return nil
}

// parseTagNames collects the tags query parameter, accepting both repeated
// keys and comma-separated values
func parseTagNames(c *gin.Context) []string {
	var names []string
	for _, raw := range c.QueryArray("tags") {
		for _, part := range strings.Split(raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				names = append(names, part)
			}
		}
	}
	return names
}

// List returns a filtered, sorted, paginated page of the user's links
// @Summary List links
// @Description List the authenticated user's links with filtering, sorting and pagination
// @Tags links
// @Produce json
// @Param search query string false "Substring match against title, URL or notes"
// @Param categoryId query int false "Filter by category ID"
// @Param status query string false "Filter by status" Enums(Pending, Completed, Applied, Rejected)
// @Param tags query []string false "Tag names the link must all carry"
// @Param sort query string false "Sort field" Enums(createdAt, deadline, title, priority)
// @Param order query string false "Sort direction" Enums(asc, desc)
// @Param page query int false "Page number (default 1)"
// @Param limit query int false "Page size (default 10)"
// @Success 200 {array} LinkResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /links [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	opts := ListOptions{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		TagNames: parseTagNames(c),
		Sort:     c.Query("sort"),
		Order:    c.Query("order"),
	}
	if v := c.Query("categoryId"); v != "" {
		parsed, err := strconv.ParseUint(v, 10, 32)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid category ID"})
			return
		}
		opts.CategoryID = uint(parsed)
	}
	if v := c.Query("page"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			opts.Page = parsed
		}
	}
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			opts.Limit = parsed
		}
	}

	page, err := Query(h.db, userID, opts)
	if err != nil {
		status, msg := errs.HTTP(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	responses := make([]LinkResponse, len(page))
	for i, link := range page {
		responses[i] = linkToResponse(link)
	}
	c.JSON(http.StatusOK, responses)
}

// Get returns a single link with its tags
// @Summary Get a link
// @Description Get one of the user's links by ID
// @Tags links
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {object} LinkResponse
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /links/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	var link models.Link
	if err := h.db.Preload("Tags").Where("id = ? AND user_id = ?", id, userID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	c.JSON(http.StatusOK, linkToResponse(link))
}

// Create creates a new link
// @Summary Create a link
// @Description Save a new link, optionally tagged and categorized
// @Tags links
// @Accept json
// @Produce json
// @Param request body CreateLinkRequest true "Link details"
// @Success 201 {object} LinkResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Category or tag not found"
// @Security BearerAuth
// @Router /links [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.CategoryID != nil {
		if err := h.checkCategory(userID, *req.CategoryID); err != nil {
			status, msg := errs.HTTP(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
	}

	tags, err := h.ownedTags(userID, req.TagIDs)
	if err != nil {
		status, msg := errs.HTTP(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	link := models.Link{
		UserID:      userID,
		URL:         req.URL,
		Title:       req.Title,
		Description: req.Description,
		Favicon:     req.Favicon,
		CategoryID:  req.CategoryID,
		Notes:       req.Notes,
		Deadline:    req.Deadline,
		Priority:    models.LinkPriority(req.Priority),
		Status:      models.LinkStatus(req.Status),
	}
	if link.Priority == "" {
		link.Priority = models.PriorityMedium
	}
	if link.Status == "" {
		link.Status = models.StatusPending
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&link).Error; err != nil {
			return err
		}
		for _, tag := range tags {
			if err := tx.Create(&models.LinkTag{LinkID: link.ID, TagID: tag.ID}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create link"})
		return
	}

	link.Tags = tags
	c.JSON(http.StatusCreated, linkToResponse(link))
}

// Update updates a link and optionally replaces its tag set
// @Summary Update a link
// @Description Update an existing link; a tags array replaces the tag set
// @Tags links
// @Accept json
// @Produce json
// @Param id path int true "Link ID"
// @Param request body UpdateLinkRequest true "Updated link details"
// @Success 200 {object} LinkResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /links/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	link, err := h.findOwned(userID, uint(id))
	if err != nil {
		status, msg := errs.HTTP(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	var req UpdateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.URL != "" {
		link.URL = req.URL
	}
	if req.Title != "" {
		link.Title = req.Title
	}
	if req.Description != nil {
		link.Description = *req.Description
	}
	if req.Favicon != nil {
		link.Favicon = *req.Favicon
	}
	if req.CategoryID != nil {
		if err := h.checkCategory(userID, *req.CategoryID); err != nil {
			status, msg := errs.HTTP(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
		link.CategoryID = req.CategoryID
	}
	if req.Notes != nil {
		link.Notes = req.Notes
	}
	if req.Deadline != nil {
		link.Deadline = req.Deadline
	}
	if req.Priority != "" {
		link.Priority = models.LinkPriority(req.Priority)
	}
	if req.Status != "" {
		link.Status = models.LinkStatus(req.Status)
	}

	var newTags []models.Tag
	if req.TagIDs != nil {
		newTags, err = h.ownedTags(userID, *req.TagIDs)
		if err != nil {
			status, msg := errs.HTTP(err)
			c.JSON(status, gin.H{"error": msg})
			return
		}
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(link).Error; err != nil {
			return err
		}
		if req.TagIDs != nil {
			return replaceTags(tx, link.ID, newTags)
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update link"})
		return
	}

	if err := h.db.Preload("Tags").First(link, link.ID).Error; err == nil {
		c.JSON(http.StatusOK, linkToResponse(*link))
		return
	}
	c.JSON(http.StatusOK, linkToResponse(*link))
}

// Delete deletes a link along with its tag associations and reminders
// @Summary Delete a link
// @Description Delete one of the user's links
// @Tags links
// @Produce json
// @Param id path int true "Link ID"
// @Success 204 "Link deleted"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /links/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	link, err := h.findOwned(userID, uint(id))
	if err != nil {
		status, msg := errs.HTTP(err)
		c.JSON(status, gin.H{"error": msg})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("link_id = ?", link.ID).Delete(&models.LinkTag{}).Error; err != nil {
			return err
		}
		if err := tx.Where("link_id = ?", link.ID).Delete(&models.Reminder{}).Error; err != nil {
			return err
		}
		return tx.Delete(link).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete link"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers link routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/links", h.List)
	rg.POST("/links", h.Create)
	rg.GET("/links/:id", h.Get)
	rg.PUT("/links/:id", h.Update)
	rg.DELETE("/links/:id", h.Delete)
}
