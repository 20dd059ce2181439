package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acarlier/ticketeer/internal/helpers"
	"github.com/acarlier/ticketeer/internal/models"
)

type CreateEventRequest struct {
	Name        string     `json:"name" binding:"required"`
	Date        *time.Time `json:"date" binding:"required"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
	LogoURL     *string    `json:"logo_url"`
	Image       *string    `json:"image"`
	MaxTickets  *int       `json:"max_tickets"`
	Show        *bool      `json:"show"`
}

// UpdateEventRequest has pointer fields throughout: only keys present in the
// request body are applied, everything else keeps its prior value.
type UpdateEventRequest struct {
	Name        *string    `json:"name"`
	Date        *time.Time `json:"date"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
	LogoURL     *string    `json:"logo_url"`
	Image       *string    `json:"image"`
	MaxTickets  *int       `json:"max_tickets"`
	Show        *bool      `json:"show"`
}

// EventSummary is the admin read-side projection: the event plus aggregated
// ticket counts, instead of a preloaded object graph.
type EventSummary struct {
	models.Event
	TicketCount    int64 `json:"ticket_count"`
	CheckedInCount int64 `json:"checked_in_count"`
}

func CreateEvent(c *gin.Context) {
	var req CreateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name and date are required.")
		return
	}

	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	event := models.Event{
		ID:          uuid.New(),
		Name:        req.Name,
		Date:        *req.Date,
		Location:    req.Location,
		Description: req.Description,
		LogoURL:     req.LogoURL,
		Image:       req.Image,
		MaxTickets:  req.MaxTickets,
		UserID:      userID.(uuid.UUID),
	}
	if req.Show != nil {
		event.Show = *req.Show
	}

	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	c.JSON(http.StatusCreated, event)
}

// ListOwnEvents returns the calling organizer's events with ticket counts,
// ordered by date.
func ListOwnEvents(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var events []models.Event
	if err := gormDB.Where("user_id = ?", userID).Order("date ASC").Find(&events).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	summaries := make([]EventSummary, 0, len(events))
	for _, event := range events {
		summary, err := summarizeEvent(gormDB, event)
		if err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Error counting tickets.")
			return
		}
		summaries = append(summaries, summary)
	}

	c.JSON(http.StatusOK, gin.H{"events": summaries})
}

func GetOwnEvent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	event, ok := findOwnedEvent(c, gormDB, c.Param("id"), userID.(uuid.UUID))
	if !ok {
		return
	}

	summary, err := summarizeEvent(gormDB, *event)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error counting tickets.")
		return
	}

	c.JSON(http.StatusOK, summary)
}

func UpdateEvent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	var req UpdateEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	event, ok := findOwnedEvent(c, gormDB, c.Param("id"), userID.(uuid.UUID))
	if !ok {
		return
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Date != nil {
		updates["date"] = *req.Date
	}
	if req.Location != nil {
		updates["location"] = *req.Location
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.LogoURL != nil {
		updates["logo_url"] = *req.LogoURL
	}
	if req.Image != nil {
		updates["image"] = *req.Image
	}
	if req.MaxTickets != nil {
		updates["max_tickets"] = *req.MaxTickets
	}
	if req.Show != nil {
		updates["show"] = *req.Show
	}

	if len(updates) > 0 {
		if err := gormDB.Model(event).Updates(updates).Error; err != nil {
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Event updated successfully.",
		"event":   event,
	})
}

func DeleteEvent(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	event, ok := findOwnedEvent(c, gormDB, c.Param("id"), userID.(uuid.UUID))
	if !ok {
		return
	}

	// Explicit cascade keeps deletion behavior identical across dialects.
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id = ?", event.ID).Delete(&models.Ticket{}).Error; err != nil {
			return err
		}
		return tx.Delete(event).Error
	})
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to delete event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Event deleted successfully."})
}

// UploadEventImage stores an image for an owned event and records its path.
func UploadEventImage(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	event, ok := findOwnedEvent(c, gormDB, c.Param("id"), userID.(uuid.UUID))
	if !ok {
		return
	}

	imageFile, err := c.FormFile("image")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Missing image file.")
		return
	}

	imagePath, err := helpers.UploadFile(c, imageFile, "event_images")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if event.Image != nil {
		if err := helpers.DeleteFile(*event.Image); err != nil {
			log.Printf("Error deleting old image: %v", err)
		}
	}

	if err := gormDB.Model(event).Update("image", imagePath).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to update event.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Image uploaded successfully.",
		"image":   imagePath,
	})
}

// ListPublicEvents returns visible events, paginated.
func ListPublicEvents(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	pageNum, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limitNum, err := helpers.StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(&models.Event{}).Where("show = ?", true)

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (pageNum - 1) * limitNum
	err = query.Offset(offset).Limit(limitNum).Order("date ASC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

func GetPublicEvent(c *gin.Context) {
	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	if err := gormDB.Where("id = ? AND show = ?", c.Param("id"), true).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	c.JSON(http.StatusOK, event)
}

// findOwnedEvent resolves an event id and enforces ownership, writing the
// 404/403 response itself when the check fails so callers can just return.
func findOwnedEvent(c *gin.Context, gormDB *gorm.DB, eventID string, userID uuid.UUID) (*models.Event, bool) {
	var event models.Event
	if err := gormDB.Where("id = ?", eventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return nil, false
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return nil, false
	}

	if event.UserID != userID {
		helpers.RespondWithError(c, http.StatusForbidden, "You don't have permission to access this event.")
		return nil, false
	}

	return &event, true
}

func summarizeEvent(gormDB *gorm.DB, event models.Event) (EventSummary, error) {
	var ticketCount, checkedInCount int64
	if err := gormDB.Model(&models.Ticket{}).Where("event_id = ?", event.ID).Count(&ticketCount).Error; err != nil {
		return EventSummary{}, err
	}
	if err := gormDB.Model(&models.Ticket{}).Where("event_id = ? AND checked_in = ?", event.ID, true).Count(&checkedInCount).Error; err != nil {
		return EventSummary{}, err
	}
	return EventSummary{Event: event, TicketCount: ticketCount, CheckedInCount: checkedInCount}, nil
}
