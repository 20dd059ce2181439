package service

import (
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"github.com/acarlier/ticketeer/internal/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("get sql.DB: %v", err)
	}
	// A single connection keeps every session on the same in-memory database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&models.User{}, &models.Event{}, &models.Participant{}, &models.Ticket{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func createOrganizer(t *testing.T, db *gorm.DB, email string) models.User {
	t.Helper()
	user := models.User{Name: "Organizer", Email: email, Password: "x"}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("create organizer: %v", err)
	}
	return user
}

func createEvent(t *testing.T, db *gorm.DB, owner models.User, maxTickets *int) models.Event {
	t.Helper()
	event := models.Event{
		Name:       "Launch Party",
		Date:       time.Date(2026, 10, 12, 19, 0, 0, 0, time.UTC),
		MaxTickets: maxTickets,
		UserID:     owner.ID,
	}
	if err := db.Create(&event).Error; err != nil {
		t.Fatalf("create event: %v", err)
	}
	return event
}

func intPtr(n int) *int { return &n }
