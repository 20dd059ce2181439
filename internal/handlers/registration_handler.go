package handlers

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acarlier/ticketeer/internal/documents"
	"github.com/acarlier/ticketeer/internal/helpers"
	"github.com/acarlier/ticketeer/internal/middleware"
	"github.com/acarlier/ticketeer/internal/service"
)

type RegistrationRequest struct {
	Name  string `json:"name" binding:"required"`
	Email string `json:"email" binding:"required,email"`
}

// RegisterForEvent issues (or replays) a ticket for an attendee, emails the
// PDF and returns it inline as base64. The ticket row is committed before
// rendering and delivery, so a failure past that point leaves a valid
// registration without an email.
func RegisterForEvent(c *gin.Context) {
	var req RegistrationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Name and email are required.")
		return
	}

	eventID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result, err := service.IssueTicket(gormDB, service.IssueInput{
		EventID:          eventID,
		ParticipantName:  req.Name,
		ParticipantEmail: req.Email,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEventNotFound):
			helpers.RespondWithError(c, http.StatusNotFound, "Event not found.")
		case errors.Is(err, service.ErrCapacityExceeded):
			helpers.RespondWithError(c, http.StatusBadRequest, "The maximum number of tickets for this event has been reached.")
		default:
			helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to register for event.")
		}
		return
	}

	pdfData := documents.TicketData{
		ParticipantName: result.Participant.Name,
		EventName:       result.Event.Name,
		EventDate:       result.Event.Date,
		Code:            result.Ticket.Code,
		Number:          result.Ticket.Number,
		QRCode:          result.Ticket.QRCode,
	}
	if result.Event.Location != nil {
		pdfData.Location = *result.Event.Location
	}
	if result.Event.Description != nil {
		pdfData.Description = *result.Event.Description
	}
	if result.Event.MaxTickets != nil {
		pdfData.MaxTickets = *result.Event.MaxTickets
	}

	pdf, err := documents.RenderTicketPDF(pdfData)
	if err != nil {
		log.Printf("Error rendering ticket PDF for %s: %v", result.Ticket.Code, err)
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to render ticket.")
		return
	}

	if m := middleware.GetMailer(c); m != nil {
		filename := fmt.Sprintf("%s.pdf", result.Ticket.Code)
		if err := m.SendTicket(result.Participant.Email, result.Participant.Name, result.Event.Name, pdf, filename); err != nil {
			log.Printf("Error emailing ticket %s to %s: %v", result.Ticket.Code, result.Participant.Email, err)
			helpers.RespondWithError(c, http.StatusInternalServerError, "Ticket was issued but the email could not be sent.")
			return
		}
	}

	logoURL := ""
	if result.Event.LogoURL != nil {
		logoURL = *result.Event.LogoURL
	}
	description := ""
	if result.Event.Description != nil {
		description = *result.Event.Description
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"reused":  result.Reused,
		"ticket": gin.H{
			"id":                result.Ticket.ID,
			"code":              result.Ticket.Code,
			"number":            result.Ticket.Number,
			"qr_code":           result.Ticket.QRCode,
			"event_name":        result.Event.Name,
			"event_logo_url":    logoURL,
			"event_description": description,
			"participant_name":  result.Participant.Name,
			"participant_email": result.Participant.Email,
		},
		"pdf_base64": base64.StdEncoding.EncodeToString(pdf),
	})
}
