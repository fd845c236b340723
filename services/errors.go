// Package services holds the business logic of the hotel operations
// backend. Sentinel errors defined here are the contract with the
// controllers: services wrap them with context via fmt.Errorf("...%w..."),
// controllers translate them into HTTP responses exactly once.
package services

import "errors"

var (
	// ErrNotFound signals that a room, reservation, stay or user does
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict signals that an operation cannot proceed because of
	// existing state: overlapping reservations, double check-in, a room
	// under maintenance.
	ErrConflict = errors.New("conflict")

	// ErrInvalidTransition signals a room status change outside the
	// permitted state machine.
	ErrInvalidTransition = errors.New("invalid state transition")

	// ErrDataIntegrity signals a violated invariant, e.g. more than one
	// active stay on a single room. Never resolved by silently picking
	// one record.
	ErrDataIntegrity = errors.New("data integrity violation")

	// ErrValidation signals a malformed or incomplete request.
	ErrValidation = errors.New("validation failed")

	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
)
