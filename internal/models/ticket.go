package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket binds one participant to one event. Code is globally unique and the
// (event, participant) pair is unique, so a repeat registration replays the
// existing ticket instead of minting a second one. CheckedIn is true iff
// RedeemedAt is set; the transition fires at most once.
type Ticket struct {
	ID            uuid.UUID   `gorm:"type:uuid;primary_key" json:"id"`
	Code          string      `gorm:"uniqueIndex;not null" json:"code"`
	Number        int         `gorm:"not null" json:"number"`
	QRCode        string      `gorm:"not null" json:"qr_code"`
	CheckedIn     bool        `gorm:"not null;default:false" json:"checked_in"`
	RedeemedAt    *time.Time  `json:"redeemed_at"`
	EventID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_tickets_event_participant" json:"event_id"`
	Event         Event       `json:"-"`
	ParticipantID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_tickets_event_participant" json:"participant_id"`
	Participant   Participant `json:"-"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
}

func (ticket *Ticket) BeforeCreate(tx *gorm.DB) (err error) {
	if ticket.ID == uuid.Nil {
		ticket.ID = uuid.New()
	}
	return
}
