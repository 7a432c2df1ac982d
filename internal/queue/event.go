// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// SeatScannedEvent is published after every successful scan.  It carries
// enough context for downstream consumers (attendance logs, notifications,
// analytics) to act without querying the primary database.
type SeatScannedEvent struct {
	SessionID   uint64 `json:"session_id"`
	EventName   string `json:"event_name"`
	BookingCode string `json:"booking_id"`
	SeatLabel   string `json:"seat_id"`
	Late        bool   `json:"late"`
	ScannedAt   string `json:"scanned_at"`
}
