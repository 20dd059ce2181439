package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/acarlier/ticketeer/internal/models"
)

func TestIssueTicket_SequentialNumbers(t *testing.T) {
	db := newTestDB(t)
	owner := createOrganizer(t, db, "owner@example.com")
	event := createEvent(t, db, owner, nil)

	emails := []string{"a@example.com", "b@example.com", "c@example.com"}
	codes := map[string]bool{}

	for i, email := range emails {
		result, err := IssueTicket(db, IssueInput{
			EventID:          event.ID,
			ParticipantName:  "Attendee",
			ParticipantEmail: email,
		})
		if err != nil {
			t.Fatalf("issue %s: %v", email, err)
		}
		if result.Reused {
			t.Errorf("issue %s: expected a fresh ticket, got reused", email)
		}
		if result.Ticket.Number != i+1 {
			t.Errorf("issue %s: expected number %d, got %d", email, i+1, result.Ticket.Number)
		}
		if !strings.HasPrefix(result.Ticket.Code, "TICKET-") {
			t.Errorf("issue %s: unexpected code format %q", email, result.Ticket.Code)
		}
		if codes[result.Ticket.Code] {
			t.Errorf("issue %s: duplicate code %q", email, result.Ticket.Code)
		}
		codes[result.Ticket.Code] = true
		if result.Ticket.QRCode == "" {
			t.Errorf("issue %s: empty QR payload", email)
		}
	}
}

func TestIssueTicket_CapacityCeiling(t *testing.T) {
	db := newTestDB(t)
	owner := createOrganizer(t, db, "owner@example.com")
	event := createEvent(t, db, owner, intPtr(1))

	if _, err := IssueTicket(db, IssueInput{EventID: event.ID, ParticipantName: "A", ParticipantEmail: "a@example.com"}); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, err := IssueTicket(db, IssueInput{EventID: event.ID, ParticipantName: "B", ParticipantEmail: "b@example.com"})
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Fatalf("expected ErrCapacityExceeded, got %v", err)
	}

	var count int64
	db.Model(&models.Ticket{}).Where("event_id = ?", event.ID).Count(&count)
	if count != 1 {
		t.Errorf("expected 1 ticket after rejection, got %d", count)
	}
}

func TestIssueTicket_IdempotentReplay(t *testing.T) {
	db := newTestDB(t)
	owner := createOrganizer(t, db, "owner@example.com")
	// Capacity 1 so the replay also proves capacity is not rechecked.
	event := createEvent(t, db, owner, intPtr(1))

	first, err := IssueTicket(db, IssueInput{EventID: event.ID, ParticipantName: "Ada", ParticipantEmail: "ada@example.com"})
	if err != nil {
		t.Fatalf("first registration: %v", err)
	}

	second, err := IssueTicket(db, IssueInput{EventID: event.ID, ParticipantName: "Ada Again", ParticipantEmail: "ada@example.com"})
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	if !second.Reused {
		t.Error("expected reused=true on replay")
	}
	if second.Ticket.Code != first.Ticket.Code {
		t.Errorf("expected same code, got %q and %q", first.Ticket.Code, second.Ticket.Code)
	}
	if second.Ticket.Number != first.Ticket.Number {
		t.Errorf("expected same number, got %d and %d", first.Ticket.Number, second.Ticket.Number)
	}
	// Name is not re-validated on repeat registration.
	if second.Participant.Name != "Ada" {
		t.Errorf("expected original participant name, got %q", second.Participant.Name)
	}

	var tickets, participants int64
	db.Model(&models.Ticket{}).Count(&tickets)
	db.Model(&models.Participant{}).Count(&participants)
	if tickets != 1 || participants != 1 {
		t.Errorf("expected 1 ticket and 1 participant, got %d and %d", tickets, participants)
	}
}

func TestIssueTicket_EventNotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := IssueTicket(db, IssueInput{EventID: uuid.New(), ParticipantName: "A", ParticipantEmail: "a@example.com"})
	if !errors.Is(err, ErrEventNotFound) {
		t.Fatalf("expected ErrEventNotFound, got %v", err)
	}

	// Participant creation happens before the event lookup; the ticket table
	// must stay untouched.
	var tickets int64
	db.Model(&models.Ticket{}).Count(&tickets)
	if tickets != 0 {
		t.Errorf("expected no tickets, got %d", tickets)
	}
}

func TestIssueTicket_ParticipantSharedAcrossEvents(t *testing.T) {
	db := newTestDB(t)
	owner := createOrganizer(t, db, "owner@example.com")
	first := createEvent(t, db, owner, nil)
	second := createEvent(t, db, owner, nil)

	resA, err := IssueTicket(db, IssueInput{EventID: first.ID, ParticipantName: "Ada", ParticipantEmail: "ada@example.com"})
	if err != nil {
		t.Fatalf("first event: %v", err)
	}
	resB, err := IssueTicket(db, IssueInput{EventID: second.ID, ParticipantName: "Ada", ParticipantEmail: "ada@example.com"})
	if err != nil {
		t.Fatalf("second event: %v", err)
	}

	if resB.Reused {
		t.Error("registration for a different event must not replay")
	}
	if resA.Participant.ID != resB.Participant.ID {
		t.Error("expected the same participant row across events")
	}

	var participants int64
	db.Model(&models.Participant{}).Count(&participants)
	if participants != 1 {
		t.Errorf("expected 1 participant, got %d", participants)
	}
}
