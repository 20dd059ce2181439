package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant is an attendee, identified by email across all events. Created
// lazily on first registration and never deleted by the ticketing flows.
type Participant struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Tickets   []Ticket  `json:"-"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (participant *Participant) BeforeCreate(tx *gorm.DB) (err error) {
	if participant.ID == uuid.Nil {
		participant.ID = uuid.New()
	}
	return
}
