package service

import "errors"

var (
	// ErrEventNotFound means the event id did not resolve; nothing was written.
	ErrEventNotFound = errors.New("event not found")

	// ErrCapacityExceeded means the event's ticket ceiling is reached; it only
	// applies to new registrations, never to replays of an existing ticket.
	ErrCapacityExceeded = errors.New("event capacity exceeded")

	// ErrCodeExhausted means code generation kept colliding with existing
	// tickets, which should not happen in practice.
	ErrCodeExhausted = errors.New("could not generate a unique ticket code")
)
