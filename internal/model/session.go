package model

import "time"

// Session status values.  A session starts active and moves to ended exactly
// once; the transition is irreversible and blocks further scans.
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// Session represents one scheduled event window during which scanning is
// permitted.  Scheduling fields are stored as strings in the fixed formats
// the scanners and the dashboard exchange.  This struct corresponds to a row
// in the `sessions` table; Bookings is populated when the aggregate is
// loaded.
//
// Fields:
//  ID           – primary key identifier.
//  EventName    – display name of the event.
//  SessionDate  – calendar date, "YYYY-MM-DD".
//  SessionStart – start time of day, zero-padded "HH:MM".
//  SessionEnd   – end time of day, zero-padded "HH:MM".
//  GraceMinutes – configured buffer after session end (currently inert).
//  Status       – "active" or "ended".
//  Bookings     – ordered bookings, oldest first.
//  CreatedAt    – timestamp when the session was created.
type Session struct {
	ID           uint64    `json:"id"`
	EventName    string    `json:"eventName"`
	SessionDate  string    `json:"sessionDate"`
	SessionStart string    `json:"sessionStart"`
	SessionEnd   string    `json:"sessionEnd"`
	GraceMinutes int       `json:"graceMinutes"`
	Status       string    `json:"status"`
	Bookings     []Booking `json:"bookings"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Booking is a ticket group covering one or more seats, identified by the
// booking code printed in the QR payload.  Bookings are not pre-registered;
// they materialize the first time a QR referencing an unseen code is
// scanned.  Owned exclusively by its Session.
//
// Fields:
//  ID          – primary key identifier.
//  SessionID   – owning session.
//  BookingCode – external booking identifier from the QR payload.
//  Seats       – ordered seats, in the order the QR listed them.
type Booking struct {
	ID          uint64 `json:"-"`
	SessionID   uint64 `json:"-"`
	BookingCode string `json:"bookingId"`
	Seats       []Seat `json:"seats"`
}

// Seat is one ticketed position, independently occupiable.  Once occupied a
// seat is never released; there is no un-scan operation.
//
// Fields:
//  ID        – primary key identifier.
//  BookingID – owning booking.
//  SeatLabel – printed seat label, e.g. "D1".
//  Occupied  – whether a scan has claimed the seat.
//  ScannedAt – when the claiming scan happened (nil until occupied).
//  Late      – whether that scan arrived after the session end time.
type Seat struct {
	ID        uint64     `json:"-"`
	BookingID uint64     `json:"-"`
	SeatLabel string     `json:"seatId"`
	Occupied  bool       `json:"occupied"`
	ScannedAt *time.Time `json:"scannedAt"`
	Late      bool       `json:"late"`
}
