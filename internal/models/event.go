package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Event belongs to the organizer who created it; only the owner may mutate
// or delete it. A nil MaxTickets means unlimited capacity. Show controls
// visibility on the public listing.
type Event struct {
	ID          uuid.UUID  `gorm:"type:uuid;primary_key" json:"id"`
	Name        string     `gorm:"not null" json:"name"`
	Date        time.Time  `gorm:"not null" json:"date"`
	Location    *string    `json:"location"`
	Description *string    `json:"description"`
	LogoURL     *string    `json:"logo_url"`
	Image       *string    `json:"image"`
	MaxTickets  *int       `json:"max_tickets"`
	Show        bool       `gorm:"not null;default:false" json:"show"`
	UserID      uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	User        User       `json:"-"`
	Tickets     []Ticket   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (event *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if event.ID == uuid.Nil {
		event.ID = uuid.New()
	}
	return
}
