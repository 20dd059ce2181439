package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acarlier/ticketeer/internal/helpers"
	"github.com/acarlier/ticketeer/internal/models"
	"github.com/acarlier/ticketeer/internal/service"
)

type VerifyRequest struct {
	Code string `json:"code" binding:"required"`
}

// VerifyTicket resolves a scanned code for the calling organizer. Negative
// outcomes (unknown code, wrong desk, already redeemed) are domain results
// on a 200 response so the scanning UI can render them inline.
func VerifyTicket(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Ticket code is required.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	result, err := service.VerifyTicket(gormDB, req.Code, userID.(uuid.UUID))
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Failed to verify ticket.")
		return
	}

	switch result.Outcome {
	case service.OutcomeNotFound:
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"result":  result.Outcome,
			"message": "Ticket not found.",
		})
	case service.OutcomeForbidden:
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"result":  result.Outcome,
			"message": "You are not allowed to verify this ticket.",
		})
	case service.OutcomeAlreadyRedeemed:
		c.JSON(http.StatusOK, gin.H{
			"valid":   false,
			"result":  result.Outcome,
			"message": fmt.Sprintf("Ticket already redeemed on %s.", result.Ticket.RedeemedAt.Format("2 January 2006 at 15:04")),
			"ticket":  verifiedTicketPayload(result.Ticket),
		})
	default:
		c.JSON(http.StatusOK, gin.H{
			"valid":   true,
			"result":  result.Outcome,
			"message": fmt.Sprintf("Valid ticket for %s (%s).", result.Ticket.Participant.Name, result.Ticket.Event.Name),
			"ticket":  verifiedTicketPayload(result.Ticket),
		})
	}
}

func verifiedTicketPayload(ticket *models.Ticket) gin.H {
	return gin.H{
		"code":        ticket.Code,
		"number":      ticket.Number,
		"participant": ticket.Participant,
		"event":       ticket.Event,
		"redeemed_at": ticket.RedeemedAt,
	}
}

// TicketStats reports totals for the organizer's most recent event.
func TicketStats(c *gin.Context) {
	userID, exists := c.Get("user_id")
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	db, exists := c.Get("db")
	if !exists {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Database connection not found.")
		return
	}
	gormDB := db.(*gorm.DB)

	var event models.Event
	err := gormDB.Where("user_id = ?", userID).Order("date DESC").First(&event).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusOK, gin.H{
				"total_tickets":    0,
				"checked_in_count": 0,
				"event_name":       "No event found",
			})
			return
		}
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error retrieving stats.")
		return
	}

	summary, err := summarizeEvent(gormDB, event)
	if err != nil {
		helpers.RespondWithError(c, http.StatusInternalServerError, "Error counting tickets.")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_tickets":    summary.TicketCount,
		"checked_in_count": summary.CheckedInCount,
		"event_name":       event.Name,
	})
}
