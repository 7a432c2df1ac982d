package repository

import (
	"context"
	"database/sql"
	"time"

	"github.com/sahithiburada/seat-occupancy-system/internal/model"
)

// SeatRepo mutates and aggregates seat state.  Occupancy is monotonic: the
// only write this repository offers sets occupied from false to true, and no
// operation anywhere reverses it.
type SeatRepo struct {
	db *sql.DB
}

// NewSeatRepo returns a SeatRepo bound to the given database.
func NewSeatRepo(db *sql.DB) *SeatRepo { return &SeatRepo{db: db} }

// OccupyTx marks a seat occupied within tx, recording the scan time and the
// late flag.  The update is conditional on the seat still being free; if a
// concurrent scan got there first the statement affects no rows and
// ErrSeatTaken is returned.  Together with the session row lock taken by the
// scan handler this closes the last-seat race.
func (r *SeatRepo) OccupyTx(ctx context.Context, tx *sql.Tx, seatID uint64, at time.Time, late bool) error {
	const q = `UPDATE seats SET occupied = 1, scanned_at = ?, late = ? WHERE id = ? AND occupied = 0`
	res, err := tx.ExecContext(ctx, q, at, late, seatID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrSeatTaken
	}
	return nil
}

// ListBySessionTx returns every seat of every booking in the session, in
// booking order then seat order.  The scan response aggregates occupied and
// late labels from this list.
func (r *SeatRepo) ListBySessionTx(ctx context.Context, tx *sql.Tx, sessionID uint64) ([]model.Seat, error) {
	const q = `SELECT s.id, s.booking_id, s.seat_label, s.occupied, s.scanned_at, s.late
	           FROM seats s
	           JOIN bookings b ON b.id = s.booking_id
	           WHERE b.session_id = ?
	           ORDER BY b.id, s.id`
	rows, err := tx.QueryContext(ctx, q, sessionID)
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
