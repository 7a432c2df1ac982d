package model

import "time"

// Staff is a dashboard account that can sign in to review sessions.  The
// scan and session endpoints themselves are open so that entrance devices
// need no credentials.
type Staff struct {
	ID           uint64
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}
