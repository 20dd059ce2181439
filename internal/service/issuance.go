package service

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/acarlier/ticketeer/internal/documents"
	"github.com/acarlier/ticketeer/internal/models"
)

const (
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength   = 8
	codeRetries  = 5
)

type IssueInput struct {
	EventID          uuid.UUID
	ParticipantName  string
	ParticipantEmail string
}

type IssueResult struct {
	Ticket      models.Ticket
	Event       models.Event
	Participant models.Participant
	Reused      bool
}

// IssueTicket registers a participant for an event. Registering the same
// email twice for one event replays the existing ticket (Reused=true) with
// no capacity check and no new rows. New registrations run inside a
// transaction that locks the event row, so the ceiling check and the
// sequential number cannot race with concurrent registrations.
func IssueTicket(db *gorm.DB, in IssueInput) (*IssueResult, error) {
	var participant models.Participant
	if err := db.Where("email = ?", in.ParticipantEmail).
		FirstOrCreate(&participant, models.Participant{Name: in.ParticipantName, Email: in.ParticipantEmail}).Error; err != nil {
		return nil, err
	}

	var event models.Event
	if err := db.Where("id = ?", in.EventID).First(&event).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}

	var existing models.Ticket
	err := db.Where("event_id = ? AND participant_id = ?", event.ID, participant.ID).First(&existing).Error
	if err == nil {
		return &IssueResult{Ticket: existing, Event: event, Participant: participant, Reused: true}, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	var ticket models.Ticket
	err = db.Transaction(func(tx *gorm.DB) error {
		// Touching the event row takes its write lock, serializing
		// concurrent registrations for the same event.
		if err := tx.Model(&models.Event{}).Where("id = ?", event.ID).
			UpdateColumn("updated_at", time.Now()).Error; err != nil {
			return err
		}

		var issued int64
		if err := tx.Model(&models.Ticket{}).Where("event_id = ?", event.ID).Count(&issued).Error; err != nil {
			return err
		}
		if event.MaxTickets != nil && issued >= int64(*event.MaxTickets) {
			return ErrCapacityExceeded
		}

		for attempt := 0; attempt < codeRetries; attempt++ {
			code, err := generateTicketCode()
			if err != nil {
				return err
			}
			qr, err := documents.GenerateQRCode(code)
			if err != nil {
				return err
			}

			ticket = models.Ticket{
				Code:          code,
				Number:        int(issued) + 1,
				QRCode:        qr,
				EventID:       event.ID,
				ParticipantID: participant.ID,
			}
			err = tx.Create(&ticket).Error
			if err == nil {
				return nil
			}
			if !errors.Is(err, gorm.ErrDuplicatedKey) {
				return err
			}
			// Code collision: regenerate.
		}
		return ErrCodeExhausted
	})
	if err != nil {
		return nil, err
	}

	return &IssueResult{Ticket: ticket, Event: event, Participant: participant, Reused: false}, nil
}

func generateTicketCode() (string, error) {
	buf := make([]byte, codeLength)
	max := big.NewInt(int64(len(codeAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return fmt.Sprintf("TICKET-%s", buf), nil
}
