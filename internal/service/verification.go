package service

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acarlier/ticketeer/internal/models"
)

// VerifyOutcome is a domain-level scan result. All outcomes other than
// OutcomeValid leave the ticket untouched.
type VerifyOutcome string

const (
	OutcomeValid           VerifyOutcome = "ok"
	OutcomeNotFound        VerifyOutcome = "not_found"
	OutcomeForbidden       VerifyOutcome = "forbidden"
	OutcomeAlreadyRedeemed VerifyOutcome = "already_redeemed"
)

type VerifyResult struct {
	Outcome VerifyOutcome
	Ticket  *models.Ticket
}

// VerifyTicket checks a scanned code on behalf of the calling organizer,
// passed explicitly. Only the owner of the ticket's event may redeem it, and
// the Issued -> Redeemed transition fires at most once.
func VerifyTicket(db *gorm.DB, code string, organizerID uuid.UUID) (*VerifyResult, error) {
	var ticket models.Ticket
	err := db.Preload("Event").Preload("Participant").Where("code = ?", code).First(&ticket).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &VerifyResult{Outcome: OutcomeNotFound}, nil
		}
		return nil, err
	}

	if ticket.Event.UserID != organizerID {
		return &VerifyResult{Outcome: OutcomeForbidden}, nil
	}

	if ticket.CheckedIn {
		return &VerifyResult{Outcome: OutcomeAlreadyRedeemed, Ticket: &ticket}, nil
	}

	now := time.Now().UTC()
	updates := map[string]interface{}{"checked_in": true, "redeemed_at": now}
	if err := db.Model(&ticket).Updates(updates).Error; err != nil {
		return nil, err
	}
	ticket.CheckedIn = true
	ticket.RedeemedAt = &now

	return &VerifyResult{Outcome: OutcomeValid, Ticket: &ticket}, nil
}
