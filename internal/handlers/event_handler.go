package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/ticketchain/ticketchain/internal/helpers"
	"github.com/ticketchain/ticketchain/internal/middleware"
	"github.com/ticketchain/ticketchain/internal/models"
)

type EventRequest struct {
	Title        string    `json:"title" binding:"required"`
	Description  string    `json:"description" binding:"required"`
	Category     string    `json:"category"`
	Venue        string    `json:"venue" binding:"required"`
	City         string    `json:"city"`
	StartTime    time.Time `json:"start_time" binding:"required"`
	EndTime      time.Time `json:"end_time" binding:"required"`
	OrganizerPct int       `json:"organizer_pct"`
	ArtistPct    int       `json:"artist_pct"`
	VenuePct     int       `json:"venue_pct"`
	PlatformPct  int       `json:"platform_pct"`
}

// CreateEvent registers a new event in pending state. Only an admin
// approval moves it on sale.
func CreateEvent(c *gin.Context) {
	var req EventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	if !req.EndTime.After(req.StartTime) {
		helpers.RespondWithError(c, http.StatusBadRequest, "End time must be after start time.")
		return
	}

	royalty := models.RoyaltySplit{
		OrganizerPct: req.OrganizerPct,
		ArtistPct:    req.ArtistPct,
		VenuePct:     req.VenuePct,
		PlatformPct:  req.PlatformPct,
	}
	if err := royalty.Validate(); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	event := models.Event{
		Title:       req.Title,
		Description: req.Description,
		Category:    req.Category,
		Venue:       req.Venue,
		City:        req.City,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      models.EventPending,
		Royalty:     royalty,
		OrganizerID: userID,
	}
	if err := gormDB.Create(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to create event.")
		return
	}

	helpers.RespondWithData(c, http.StatusCreated, gin.H{"event_id": event.ID, "status": event.Status})
}

// UploadEventBanner attaches a banner image to the organizer's own event.
func UploadEventBanner(c *gin.Context) {
	eventID := c.Param("id")
	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	var event models.Event
	if err := gormDB.Where("id = ? AND organizer_id = ?", eventID, userID).First(&event).Error; err != nil {
		helpers.RespondWithError(c, http.StatusForbidden, "Event not found or you don't have permission to modify it.")
		return
	}

	bannerFile, err := c.FormFile("banner")
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Banner file is required.")
		return
	}
	bannerPath, err := helpers.UploadBanner(c, bannerFile)
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	if event.BannerPath != "" {
		_ = helpers.DeleteFile(event.BannerPath)
	}
	if err := gormDB.Model(&event).Update("banner_path", bannerPath).Error; err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to save banner.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"banner_path": bannerPath})
}

func GetEvent(c *gin.Context) {
	gormDB := middleware.GetDB(c)

	var event models.Event
	err := gormDB.Preload("Organizer").Preload("TicketTypes").
		Where("id = ?", c.Param("id")).First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving event.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, event)
}

// ListEvents returns approved events by default; status filtering beyond
// that is an authenticated concern handled by the admin dashboard.
func ListEvents(c *gin.Context) {
	gormDB := middleware.GetDB(c)

	pageNum, err := helpers.StringToInt(c.DefaultQuery("page", "1"))
	if err != nil || pageNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid page number.")
		return
	}
	limitNum, err := helpers.StringToInt(c.DefaultQuery("limit", "10"))
	if err != nil || limitNum < 1 {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid limit.")
		return
	}

	query := gormDB.Model(&models.Event{}).Where("status = ?", models.EventApproved)
	if city := c.Query("city"); city != "" {
		query = query.Where("city = ?", city)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	var totalCount int64
	query.Count(&totalCount)

	var events []models.Event
	offset := (pageNum - 1) * limitNum
	err = query.Preload("TicketTypes").Offset(offset).Limit(limitNum).
		Order("start_time ASC").Find(&events).Error
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving events.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{
		"events":      events,
		"total":       totalCount,
		"page":        pageNum,
		"limit":       limitNum,
		"total_pages": (totalCount + int64(limitNum) - 1) / int64(limitNum),
	})
}

// CancelEvent lets the organizer withdraw their own pending or approved
// event.
func CancelEvent(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User ID not found in token.")
		return
	}
	gormDB := middleware.GetDB(c)

	result := gormDB.Model(&models.Event{}).
		Where("id = ? AND organizer_id = ? AND status IN ?",
			c.Param("id"), userID, []string{models.EventPending, models.EventApproved}).
		Update("status", models.EventCancelled)
	if result.Error != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to cancel event.")
		return
	}
	if result.RowsAffected == 0 {
		helpers.RespondWithError(c, http.StatusForbidden, "Event not found, already finished, or you don't have permission to cancel it.")
		return
	}

	helpers.RespondWithData(c, http.StatusOK, gin.H{"status": models.EventCancelled})
}
