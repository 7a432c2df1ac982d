// Package repository defines the data access layer over MySQL plus the
// sentinel errors shared across repositories.  The sentinels let handlers
// map storage outcomes onto the HTTP taxonomy with errors.Is instead of
// inspecting driver errors.
package repository

import "errors"

// ErrSessionNotFound is returned when no session exists for the requested
// identifier.  Handlers translate it into HTTP 404.
var ErrSessionNotFound = errors.New("session not found")

// ErrBookingNotFound is returned when a booking code has not been seen for a
// session yet.  The scan path treats this as a signal to create the booking,
// not as a failure.
var ErrBookingNotFound = errors.New("booking not found")

// ErrSeatTaken is returned when a conditional occupy update finds the seat
// already occupied, i.e. a concurrent scan won the race for it.
var ErrSeatTaken = errors.New("seat already occupied")

// ErrEmailExists is returned when staff registration hits the unique email
// constraint.  Handlers translate it into HTTP 409.
var ErrEmailExists = errors.New("email already exists")
