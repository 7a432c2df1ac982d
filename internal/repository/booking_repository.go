package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/sahithiburada/seat-occupancy-system/internal/model"
)

// BookingRepo provides booking lookup and creation inside the scan
// transaction.  Bookings are never created through a dedicated endpoint;
// they materialize when a QR referencing an unseen booking code is scanned.
type BookingRepo struct {
	db *sql.DB
}

// NewBookingRepo returns a BookingRepo bound to the given database.
func NewBookingRepo(db *sql.DB) *BookingRepo { return &BookingRepo{db: db} }

// GetByCodeTx loads a booking and its seats (in stored order) for a session
// within tx.  Returns ErrBookingNotFound when the code is unseen, which the
// scan path treats as the cue to create the booking.
func (r *BookingRepo) GetByCodeTx(ctx context.Context, tx *sql.Tx, sessionID uint64, code string) (*model.Booking, error) {
	const q = `SELECT id, session_id, booking_code FROM bookings
	           WHERE session_id = ? AND booking_code = ? LIMIT 1`
	var b model.Booking
	if err := tx.QueryRowContext(ctx, q, sessionID, code).Scan(&b.ID, &b.SessionID, &b.BookingCode); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrBookingNotFound
		}
		return nil, err
	}
	seats, err := seatsForBookingTx(ctx, tx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Seats = seats
	return &b, nil
}

// CreateWithSeatsTx inserts a booking seeded with one unoccupied seat per
// label, in payload order, and returns the populated aggregate.  The seat
// bulk insert runs as a single statement.
func (r *BookingRepo) CreateWithSeatsTx(ctx context.Context, tx *sql.Tx, sessionID uint64, code string, seatLabels []string) (*model.Booking, error) {
	res, err := tx.ExecContext(ctx,
		`INSERT INTO bookings (session_id, booking_code) VALUES (?, ?)`,
		sessionID, code)
	if err != nil {
		return nil, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, err
	}
	b := &model.Booking{ID: uint64(id), SessionID: sessionID, BookingCode: code, Seats: []model.Seat{}}
	if len(seatLabels) > 0 {
		q := `INSERT INTO seats (booking_id, seat_label) VALUES `
		args := make([]any, 0, len(seatLabels)*2)
		ph := make([]string, 0, len(seatLabels))
		for _, label := range seatLabels {
			ph = append(ph, "(?, ?)")
			args = append(args, b.ID, label)
		}
		if _, err := tx.ExecContext(ctx, q+strings.Join(ph, ","), args...); err != nil {
			return nil, err
		}
		seats, err := seatsForBookingTx(ctx, tx, b.ID)
		if err != nil {
			return nil, err
		}
		b.Seats = seats
	}
	return b, nil
}

// seatsForBookingTx loads a booking's seats ordered by insertion.
func seatsForBookingTx(ctx context.Context, tx *sql.Tx, bookingID uint64) ([]model.Seat, error) {
	const q = `SELECT id, booking_id, seat_label, occupied, scanned_at, late
	           FROM seats WHERE booking_id = ? ORDER BY id`
	rows, err := tx.QueryContext(ctx, q, bookingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	seats := make([]model.Seat, 0)
	for rows.Next() {
		var s model.Seat
		var scannedAt sql.NullTime
		if err := rows.Scan(&s.ID, &s.BookingID, &s.SeatLabel, &s.Occupied, &scannedAt, &s.Late); err != nil {
			return nil, err
		}
		if scannedAt.Valid {
			t := scannedAt.Time
			s.ScannedAt = &t
		}
		seats = append(seats, s)
	}
	return seats, rows.Err()
}
