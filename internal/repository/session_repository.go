package repository

// This file covers the sessions table: creation, lookups, the active-overlap
// query used by the creation check, the ended-session search, updates and
// lifecycle transitions.  Bookings and seats have their own repositories;
// aggregate loading stitches the three tables together here.

import (
	"context"      // context for controlling query lifetime
	"database/sql" // sql provides DB abstraction
	"errors"       // errors for sentinel comparisons
	"strings"      // strings builds IN-clause placeholders

	"github.com/sahithiburada/seat-occupancy-system/internal/model"
)

// SessionRepo manages persistence for sessions.
type SessionRepo struct {
	db *sql.DB
}

// NewSessionRepo constructs a SessionRepo with the given DB handle.
func NewSessionRepo(db *sql.DB) *SessionRepo {
	return &SessionRepo{db: db}
}

// DB exposes the underlying sql.DB.  The scan handler uses it to begin a
// transaction spanning the session, booking and seat repositories.
func (r *SessionRepo) DB() *sql.DB {
	return r.db
}

const sessionCols = `id, event_name, session_date, session_start, session_end, grace_minutes, status, created_at`

func scanSessionRow(row interface {
	Scan(dest ...any) error
}, s *model.Session) error {
	return row.Scan(&s.ID, &s.EventName, &s.SessionDate, &s.SessionStart,
		&s.SessionEnd, &s.GraceMinutes, &s.Status, &s.CreatedAt)
}

// Create inserts a new session and reads the row back so that DB defaults
// (status, created_at) are populated on the struct.  The overlap check runs
// in the handler before this is called; Create itself is unconditional.
func (r *SessionRepo) Create(ctx context.Context, s *model.Session) error {
	const q = `INSERT INTO sessions (event_name, session_date, session_start, session_end, grace_minutes)
	           VALUES (?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, q, s.EventName, s.SessionDate, s.SessionStart, s.SessionEnd, s.GraceMinutes)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	s.ID = uint64(id)
	const sel = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ?`
	return scanSessionRow(r.db.QueryRowContext(ctx, sel, s.ID), s)
}

// GetByID retrieves a session row without its bookings.  It returns
// ErrSessionNotFound when there is no matching row.
func (r *SessionRepo) GetByID(ctx context.Context, id uint64) (*model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ?`
	var s model.Session
	if err := scanSessionRow(r.db.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetForUpdateTx loads a session row inside tx with a row lock.  Concurrent
// scans against the same session serialize on this lock, which is what makes
// the choose-then-occupy sequence in the scan handler safe.
func (r *SessionRepo) GetForUpdateTx(ctx context.Context, tx *sql.Tx, id uint64) (*model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions WHERE id = ? FOR UPDATE`
	var s model.Session
	if err := scanSessionRow(tx.QueryRowContext(ctx, q, id), &s); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return &s, nil
}

// GetAggregate retrieves a session together with its ordered bookings and
// seats.  Ordering by auto-increment id reproduces insertion order for both
// levels of the aggregate.
func (r *SessionRepo) GetAggregate(ctx context.Context, id uint64) (*model.Session, error) {
	s, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	sessions := []model.Session{*s}
	if err := r.attachBookings(ctx, sessions); err != nil {
		return nil, err
	}
	return &sessions[0], nil
}

// FindOverlappingActive returns active sessions on the given date whose
// [start, end) range intersects the proposed one.  Times are zero-padded
// "HH:MM" strings, so the SQL string comparison is a valid interval test.
func (r *SessionRepo) FindOverlappingActive(ctx context.Context, date, start, end string) ([]model.Session, error) {
	const q = `SELECT ` + sessionCols + ` FROM sessions
	           WHERE session_date = ? AND status = 'active'
	             AND session_start < ? AND session_end > ?`
	rows, err := r.db.QueryContext(ctx, q, date, end, start)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []model.Session
	for rows.Next() {
		var s model.Session
		if err := scanSessionRow(rows, &s); err != nil {
			return nil, err
		}
		result = append(result, s)
	}
	return result, rows.Err()
}

// SearchEnded returns ended sessions filtered by an optional case-insensitive
// event name fragment and an optional exact date, newest-created first.  The
// full aggregate is returned for each hit because the dashboard renders seat
// detail straight from the search results.
func (r *SessionRepo) SearchEnded(ctx context.Context, eventName, date string) ([]model.Session, error) {
	q := `SELECT ` + sessionCols + ` FROM sessions WHERE status = 'ended'`
	args := []any{}
	if eventName != "" {
		q += ` AND LOWER(event_name) LIKE ?`
		args = append(args, "%"+strings.ToLower(eventName)+"%")
	}
	if date != "" {
		q += ` AND session_date = ?`
		args = append(args, date)
	}
	q += ` ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	sessions := make([]model.Session, 0)
	for rows.Next() {
		var s model.Session
		if err := scanSessionRow(rows, &s); err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachBookings(ctx, sessions); err != nil {
		return nil, err
	}
	return sessions, nil
}

// attachBookings populates Bookings (and their Seats) for every session in
// the slice using two IN queries, keeping search away from N+1 round trips.
func (r *SessionRepo) attachBookings(ctx context.Context, sessions []model.Session) error {
	if len(sessions) == 0 {
		return nil
	}
	ids := make([]any, 0, len(sessions))
	ph := make([]string, 0, len(sessions))
	sessionIdx := make(map[uint64]int, len(sessions))
	for i := range sessions {
		sessions[i].Bookings = []model.Booking{}
		ids = append(ids, sessions[i].ID)
		ph = append(ph, "?")
		sessionIdx[sessions[i].ID] = i
	}
	bq := `SELECT id, session_id, booking_code FROM bookings
	       WHERE session_id IN (` + strings.Join(ph, ",") + `) ORDER BY id`
	rows, err := r.db.QueryContext(ctx, bq, ids...)
	if err != nil {
		return err
	}
	defer rows.Close()
	bookingIdx := make(map[uint64][2]int) // booking id -> (session index, booking index)
	for rows.Next() {
		var b model.Booking
		if err := rows.Scan(&b.ID, &b.SessionID, &b.BookingCode); err != nil {
			return err
		}
		b.Seats = []model.Seat{}
		si := sessionIdx[b.SessionID]
		bookingIdx[b.ID] = [2]int{si, len(sessions[si].Bookings)}
		sessions[si].Bookings = append(sessions[si].Bookings, b)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(bookingIdx) == 0 {
		return nil
	}
	bids := make([]any, 0, len(bookingIdx))
	bph := make([]string, 0, len(bookingIdx))
	for id := range bookingIdx {
		bids = append(bids, id)
		bph = append(bph, "?")
	}
	sq := `SELECT id, booking_id, seat_label, occupied, scanned_at, late FROM seats
	       WHERE booking_id IN (` + strings.Join(bph, ",") + `) ORDER BY id`
	srows, err := r.db.QueryContext(ctx, sq, bids...)
	if err != nil {
		return err
	}
	defer srows.Close()
	for srows.Next() {
		var seat model.Seat
		var scannedAt sql.NullTime
		if err := srows.Scan(&seat.ID, &seat.BookingID, &seat.SeatLabel, &seat.Occupied, &scannedAt, &seat.Late); err != nil {
			return err
		}
		if scannedAt.Valid {
			t := scannedAt.Time
			seat.ScannedAt = &t
		}
		pos := bookingIdx[seat.BookingID]
		b := &sessions[pos[0]].Bookings[pos[1]]
		b.Seats = append(b.Seats, seat)
	}
	return srows.Err()
}

// Update rewrites the mutable scheduling fields of a session.  Status and
// bookings are untouched; callers enforce the active-only rule, and no
// overlap re-check happens here.
func (r *SessionRepo) Update(ctx context.Context, s *model.Session) error {
	const q = `UPDATE sessions
	           SET event_name = ?, session_start = ?, session_end = ?, grace_minutes = ?
	           WHERE id = ?`
	_, err := r.db.ExecContext(ctx, q, s.EventName, s.SessionStart, s.SessionEnd, s.GraceMinutes, s.ID)
	return err
}

// End transitions a session to ended.  The transition is irreversible; an
// already-ended session stays ended and the call still succeeds.  Returns
// ErrSessionNotFound when the id matches nothing.
func (r *SessionRepo) End(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `UPDATE sessions SET status = 'ended' WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n > 0 {
		return nil
	}
	// Zero rows affected is either "missing" or "already ended"; tell them apart.
	var one int
	if err := r.db.QueryRowContext(ctx, `SELECT 1 FROM sessions WHERE id = ? LIMIT 1`, id).Scan(&one); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrSessionNotFound
		}
		return err
	}
	return nil
}

// Delete removes a session by id.  Bookings and seats go with it via the
// foreign key cascade.  Returns ErrSessionNotFound when nothing was deleted.
func (r *SessionRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSessionNotFound
	}
	return nil
}
