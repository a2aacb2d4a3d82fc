package tags

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"linkstash/pkg/linkstash/auth"
	"linkstash/pkg/linkstash/models"
)

// Handler handles tag-related requests
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new tags handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateTagRequest represents the request to create a tag
type CreateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// UpdateTagRequest represents the request to rename a tag
type UpdateTagRequest struct {
	Name string `json:"name" binding:"required"`
}

// TagResponse represents a tag in API responses
type TagResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func tagToResponse(tag models.Tag) TagResponse {
	return TagResponse{ID: tag.ID, Name: tag.Name}
}

// findOwnedTag loads a tag scoped to the owner
func (h *Handler) findOwnedTag(ownerID uint, id uint) (*models.Tag, bool) {
	var tag models.Tag
	if err := h.db.Where("id = ? AND user_id = ?", id, ownerID).First(&tag).Error; err != nil {
		return nil, false
	}
	return &tag, true
}

// findOwnedLink loads a link scoped to the owner
func (h *Handler) findOwnedLink(ownerID uint, id uint) (*models.Link, bool) {
	var link models.Link
	if err := h.db.Where("id = ? AND user_id = ?", id, ownerID).First(&link).Error; err != nil {
		return nil, false
	}
	return &link, true
}

// List returns all of the user's tags
// @Summary List tags
// @Tags tags
// @Produce json
// @Success 200 {array} TagResponse
// @Security BearerAuth
// @Router /tags [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var tags []models.Tag
	if err := h.db.Where("user_id = ?", userID).Order("name ASC").Find(&tags).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	responses := make([]TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = tagToResponse(tag)
	}
	c.JSON(http.StatusOK, responses)
}

// Create creates a new tag
// @Summary Create a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param request body CreateTagRequest true "Tag details"
// @Success 201 {object} TagResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /tags [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag := models.Tag{UserID: userID, Name: req.Name}
	if err := h.db.Create(&tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create tag"})
		return
	}

	c.JSON(http.StatusCreated, tagToResponse(tag))
}

// Update renames a tag
// @Summary Rename a tag
// @Tags tags
// @Accept json
// @Produce json
// @Param id path int true "Tag ID"
// @Param request body UpdateTagRequest true "New tag name"
// @Success 200 {object} TagResponse
// @Failure 404 {object} map[string]string "Tag not found"
// @Security BearerAuth
// @Router /tags/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	tag, ok := h.findOwnedTag(userID, uint(id))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	var req UpdateTagRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tag.Name = req.Name
	if err := h.db.Save(tag).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update tag"})
		return
	}

	c.JSON(http.StatusOK, tagToResponse(*tag))
}

// Delete deletes a tag and its link associations in one transaction
// @Summary Delete a tag
// @Tags tags
// @Produce json
// @Param id path int true "Tag ID"
// @Success 204 "Tag deleted"
// @Failure 404 {object} map[string]string "Tag not found"
// @Security BearerAuth
// @Router /tags/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	tag, ok := h.findOwnedTag(userID, uint(id))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	err = h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("tag_id = ?", tag.ID).Delete(&models.LinkTag{}).Error; err != nil {
			return err
		}
		return tx.Delete(tag).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete tag"})
		return
	}

	c.Status(http.StatusNoContent)
}

// ListLinkTags returns the tags attached to a link
// @Summary List a link's tags
// @Tags tags
// @Produce json
// @Param id path int true "Link ID"
// @Success 200 {array} TagResponse
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /links/{id}/tags [get]
func (h *Handler) ListLinkTags(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}

	if _, ok := h.findOwnedLink(userID, uint(id)); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	var tags []models.Tag
	err = h.db.Joins("JOIN link_tags ON link_tags.tag_id = tags.id").
		Where("link_tags.link_id = ?", id).
		Order("tags.name ASC").
		Find(&tags).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch tags"})
		return
	}

	responses := make([]TagResponse, len(tags))
	for i, tag := range tags {
		responses[i] = tagToResponse(tag)
	}
	c.JSON(http.StatusOK, responses)
}

// Attach attaches a tag to a link. Attaching an already-attached tag is a
// no-op rather than an error; the unique pair index holds either way.
// @Summary Attach a tag to a link
// @Tags tags
// @Produce json
// @Param id path int true "Link ID"
// @Param tagId path int true "Tag ID"
// @Success 200 {object} TagResponse
// @Failure 404 {object} map[string]string "Link or tag not found"
// @Security BearerAuth
// @Router /links/{id}/tags/{tagId} [post]
func (h *Handler) Attach(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}
	tagID, err := strconv.ParseUint(c.Param("tagId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	if _, ok := h.findOwnedLink(userID, uint(linkID)); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}
	tag, ok := h.findOwnedTag(userID, uint(tagID))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	var existing models.LinkTag
	if err := h.db.Where("link_id = ? AND tag_id = ?", linkID, tagID).First(&existing).Error; err != nil {
		linkTag := models.LinkTag{LinkID: uint(linkID), TagID: uint(tagID)}
		if err := h.db.Create(&linkTag).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to attach tag"})
			return
		}
	}

	c.JSON(http.StatusOK, tagToResponse(*tag))
}

// Detach removes a tag from a link
// @Summary Detach a tag from a link
// @Tags tags
// @Produce json
// @Param id path int true "Link ID"
// @Param tagId path int true "Tag ID"
// @Success 204 "Tag detached"
// @Failure 404 {object} map[string]string "Link or tag not found"
// @Security BearerAuth
// @Router /links/{id}/tags/{tagId} [delete]
func (h *Handler) Detach(c *gin.Context) {
	userID, _ := auth.GetUserID(c)
	linkID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid link ID"})
		return
	}
	tagID, err := strconv.ParseUint(c.Param("tagId"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid tag ID"})
		return
	}

	if _, ok := h.findOwnedLink(userID, uint(linkID)); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}
	if _, ok := h.findOwnedTag(userID, uint(tagID)); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "Tag not found"})
		return
	}

	if err := h.db.Where("link_id = ? AND tag_id = ?", linkID, tagID).Delete(&models.LinkTag{}).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to detach tag"})
		return
	}

	c.Status(http.StatusNoContent)
}

// RegisterRoutes registers tag routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/tags", h.List)
	rg.POST("/tags", h.Create)
	rg.PUT("/tags/:id", h.Update)
	rg.DELETE("/tags/:id", h.Delete)

	// Link tag operations
	rg.GET("/links/:id/tags", h.ListLinkTags)
	rg.POST("/links/:id/tags/:tagId", h.Attach)
	rg.DELETE("/links/:id/tags/:tagId", h.Detach)
}
