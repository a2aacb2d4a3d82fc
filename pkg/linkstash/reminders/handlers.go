package reminders

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"linkstash/pkg/linkstash/auth"
	"linkstash/pkg/linkstash/models"
)

// Handler handles reminder-related requests. Reminders are only recorded
// here; delivery is a separate concern.
type Handler struct {
	db *gorm.DB
}

// NewHandler creates a new reminders handler
func NewHandler(db *gorm.DB) *Handler {
	return &Handler{db: db}
}

// CreateReminderRequest represents the request to create a reminder
type CreateReminderRequest struct {
	LinkID       uint      `json:"link_id" binding:"required"`
	ReminderDate time.Time `json:"reminder_date" binding:"required"`
}

// ReminderResponse represents a reminder in API responses
type ReminderResponse struct {
	ID           uint      `json:"id"`
	LinkID       uint      `json:"link_id"`
	ReminderDate time.Time `json:"reminder_date"`
	Sent         bool      `json:"sent"`
}

func reminderToResponse(reminder models.Reminder) ReminderResponse {
	return ReminderResponse{
		ID:           reminder.ID,
		LinkID:       reminder.LinkID,
		ReminderDate: reminder.ReminderDate,
		Sent:         reminder.Sent,
	}
}

// List returns the user's reminders ordered by reminder date
// @Summary List reminders
// @Tags reminders
// @Produce json
// @Success 200 {array} ReminderResponse
// @Security BearerAuth
// @Router /reminders [get]
func (h *Handler) List(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var reminders []models.Reminder
	if err := h.db.Where("user_id = ?", userID).Order("reminder_date ASC").Find(&reminders).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch reminders"})
		return
	}

	responses := make([]ReminderResponse, len(reminders))
	for i, reminder := range reminders {
		responses[i] = reminderToResponse(reminder)
	}
	c.JSON(http.StatusOK, responses)
}

// Create creates a reminder for one of the user's links
// @Summary Create a reminder
// @Tags reminders
// @Accept json
// @Produce json
// @Param request body CreateReminderRequest true "Reminder details"
// @Success 201 {object} ReminderResponse
// @Failure 400 {object} map[string]string "Validation error"
// @Failure 404 {object} map[string]string "Link not found"
// @Security BearerAuth
// @Router /reminders [post]
func (h *Handler) Create(c *gin.Context) {
	userID, _ := auth.GetUserID(c)

	var req CreateReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The target link must belong to the caller
	var link models.Link
	if err := h.db.Where("id = ? AND user_id = ?", req.LinkID, userID).First(&link).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Link not found"})
		return
	}

	reminder := models.Reminder{
		UserID:       userID,
		LinkID:       req.LinkID,
		ReminderDate: req.ReminderDate,
	}
	if err := h.db.Create(&reminder).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create reminder"})
		return
	}

	c.JSON(http.StatusCreated, reminderToResponse(reminder))
}

// RegisterRoutes registers reminder routes
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/reminders", h.List)
	rg.POST("/reminders", h.Create)
}
