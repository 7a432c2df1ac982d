package handler

import (
	"context"
	"database/sql"
	"time"

	"github.com/sahithiburada/seat-occupancy-system/internal/model"
	"github.com/sahithiburada/seat-occupancy-system/internal/repository"
)

// sqlScanStore implements ScanStore over the MySQL repositories.  A scan
// transaction spans the session row lock, booking creation and the seat
// write, so all three repositories operate on the same *sql.Tx.
type sqlScanStore struct {
	sessions *repository.SessionRepo
	bookings *repository.BookingRepo
	seats    *repository.SeatRepo
}

func (s *sqlScanStore) BeginScan(ctx context.Context) (ScanTx, error) {
	tx, err := s.sessions.DB().BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqlScanTx{store: s, tx: tx}, nil
}

type sqlScanTx struct {
	store *sqlScanStore
	tx    *sql.Tx
}

func (t *sqlScanTx) SessionForUpdate(ctx context.Context, id uint64) (*model.Session, error) {
	return t.store.sessions.GetForUpdateTx(ctx, t.tx, id)
}

func (t *sqlScanTx) BookingByCode(ctx context.Context, sessionID uint64, code string) (*model.Booking, error) {
	return t.store.bookings.GetByCodeTx(ctx, t.tx, sessionID, code)
}

func (t *sqlScanTx) CreateBookingWithSeats(ctx context.Context, sessionID uint64, code string, seatLabels []string) (*model.Booking, error) {
	return t.store.bookings.CreateWithSeatsTx(ctx, t.tx, sessionID, code, seatLabels)
}

func (t *sqlScanTx) OccupySeat(ctx context.Context, seatID uint64, at time.Time, late bool) error {
	return t.store.seats.OccupyTx(ctx, t.tx, seatID, at, late)
}

func (t *sqlScanTx) SeatsBySession(ctx context.Context, sessionID uint64) ([]model.Seat, error) {
	return t.store.seats.ListBySessionTx(ctx, t.tx, sessionID)
}

func (t *sqlScanTx) Commit() error   { return t.tx.Commit() }
func (t *sqlScanTx) Rollback() error { return t.tx.Rollback() }
