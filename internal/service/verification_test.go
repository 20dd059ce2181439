package service

import (
	"testing"

	"github.com/acarlier/ticketeer/internal/models"
)

func TestVerifyTicket_SingleFire(t *testing.T) {
	db := newTestDB(t)
	owner := createOrganizer(t, db, "owner@example.com")
	event := createEvent(t, db, owner, nil)

	issued, err := IssueTicket(db, IssueInput{EventID: event.ID, ParticipantName: "Ada", ParticipantEmail: "ada@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	first, err := VerifyTicket(db, issued.Ticket.Code, owner.ID)
	if err != nil {
		t.Fatalf("first scan: %v", err)
	}
	if first.Outcome != OutcomeValid {
		t.Fatalf("expected %s, got %s", OutcomeValid, first.Outcome)
	}
	if !first.Ticket.CheckedIn || first.Ticket.RedeemedAt == nil {
		t.Fatal("expected ticket marked as redeemed")
	}
	redeemedAt := *first.Ticket.RedeemedAt

	second, err := VerifyTicket(db, issued.Ticket.Code, owner.ID)
	if err != nil {
		t.Fatalf("second scan: %v", err)
	}
	if second.Outcome != OutcomeAlreadyRedeemed {
		t.Fatalf("expected %s, got %s", OutcomeAlreadyRedeemed, second.Outcome)
	}
	if second.Ticket.RedeemedAt == nil || !second.Ticket.RedeemedAt.Equal(redeemedAt) {
		t.Error("expected the original redemption timestamp to be preserved")
	}
}

func TestVerifyTicket_Forbidden(t *testing.T) {
	db := newTestDB(t)
	owner := createOrganizer(t, db, "owner@example.com")
	other := createOrganizer(t, db, "other@example.com")
	event := createEvent(t, db, owner, nil)

	issued, err := IssueTicket(db, IssueInput{EventID: event.ID, ParticipantName: "Ada", ParticipantEmail: "ada@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	result, err := VerifyTicket(db, issued.Ticket.Code, other.ID)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if result.Outcome != OutcomeForbidden {
		t.Fatalf("expected %s, got %s", OutcomeForbidden, result.Outcome)
	}

	var ticket models.Ticket
	if err := db.Where("code = ?", issued.Ticket.Code).First(&ticket).Error; err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if ticket.CheckedIn || ticket.RedeemedAt != nil {
		t.Error("a forbidden scan must not change ticket state")
	}
}

func TestVerifyTicket_UnknownCode(t *testing.T) {
	db := newTestDB(t)
	owner := createOrganizer(t, db, "owner@example.com")
	event := createEvent(t, db, owner, nil)

	issued, err := IssueTicket(db, IssueInput{EventID: event.ID, ParticipantName: "Ada", ParticipantEmail: "ada@example.com"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	result, err := VerifyTicket(db, "TICKET-NOPE1234", owner.ID)
	if err != nil {
		t.Fatalf("scan: %v", err)
	}
	if result.Outcome != OutcomeNotFound {
		t.Fatalf("expected %s, got %s", OutcomeNotFound, result.Outcome)
	}

	var ticket models.Ticket
	if err := db.Where("code = ?", issued.Ticket.Code).First(&ticket).Error; err != nil {
		t.Fatalf("reload ticket: %v", err)
	}
	if ticket.CheckedIn {
		t.Error("an unknown-code scan must not touch existing tickets")
	}
}
