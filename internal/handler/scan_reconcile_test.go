package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahithiburada/seat-occupancy-system/internal/model"
	"github.com/sahithiburada/seat-occupancy-system/internal/repository"
)

// memScanStore is an in-memory ScanStore holding one session and its
// bookings.  Mutations apply immediately; the commit and rollback counters
// let tests assert which way each scan transaction finished.
type memScanStore struct {
	session   model.Session
	bookings  map[string]*model.Booking
	order     []string
	nextSeat  uint64
	commits   int
	rollbacks int
}

func newMemScanStore(s model.Session) *memScanStore {
	return &memScanStore{session: s, bookings: map[string]*model.Booking{}, nextSeat: 1}
}

func (f *memScanStore) BeginScan(ctx context.Context) (ScanTx, error) {
	return &memScanTx{f: f}, nil
}

type memScanTx struct{ f *memScanStore }

func (t *memScanTx) SessionForUpdate(ctx context.Context, id uint64) (*model.Session, error) {
	if id != t.f.session.ID {
		return nil, repository.ErrSessionNotFound
	}
	s := t.f.session
	return &s, nil
}

func (t *memScanTx) BookingByCode(ctx context.Context, sessionID uint64, code string) (*model.Booking, error) {
	b, ok := t.f.bookings[code]
	if !ok {
		return nil, repository.ErrBookingNotFound
	}
	return b, nil
}

func (t *memScanTx) CreateBookingWithSeats(ctx context.Context, sessionID uint64, code string, seatLabels []string) (*model.Booking, error) {
	b := &model.Booking{ID: uint64(len(t.f.bookings) + 1), SessionID: sessionID, BookingCode: code, Seats: []model.Seat{}}
	for _, label := range seatLabels {
		b.Seats = append(b.Seats, model.Seat{ID: t.f.nextSeat, BookingID: b.ID, SeatLabel: label})
		t.f.nextSeat++
	}
	t.f.bookings[code] = b
	t.f.order = append(t.f.order, code)
	return b, nil
}

func (t *memScanTx) OccupySeat(ctx context.Context, seatID uint64, at time.Time, late bool) error {
	for _, b := range t.f.bookings {
		for i := range b.Seats {
			if b.Seats[i].ID != seatID {
				continue
			}
			if b.Seats[i].Occupied {
				return repository.ErrSeatTaken
			}
			ts := at
			b.Seats[i].Occupied = true
			b.Seats[i].ScannedAt = &ts
			b.Seats[i].Late = late
			return nil
		}
	}
	return repository.ErrSeatTaken
}

func (t *memScanTx) SeatsBySession(ctx context.Context, sessionID uint64) ([]model.Seat, error) {
	seats := make([]model.Seat, 0)
	for _, code := range t.f.order {
		seats = append(seats, t.f.bookings[code].Seats...)
	}
	return seats, nil
}

func (t *memScanTx) Commit() error   { t.f.commits++; return nil }
func (t *memScanTx) Rollback() error { t.f.rollbacks++; return nil }

func launchSession() model.Session {
	return model.Session{
		ID:           1,
		EventName:    "Product Launch",
		SessionDate:  "2025-06-01",
		SessionStart: "18:00",
		SessionEnd:   "20:00",
		GraceMinutes: 10,
		Status:       model.StatusActive,
	}
}

func at(hh, mm int) func() time.Time {
	return func() time.Time {
		return time.Date(2025, time.June, 1, hh, mm, 0, 0, time.Local)
	}
}

func performScan(t *testing.T, h *ScanHandler, qr string) *httptest.ResponseRecorder {
	t.Helper()
	c, rec := newJSONContext(t, http.MethodPost, "/api/scan", `{"sessionId":"1","qrData":"`+qr+`"}`)
	require.NoError(t, h.Scan(c))
	return rec
}

func TestScanAgainstEndedSessionIsForbidden(t *testing.T) {
	s := launchSession()
	s.Status = model.StatusEnded
	store := newMemScanStore(s)
	h := &ScanHandler{Store: store, Now: at(19, 0)}

	rec := performScan(t, h, "A1|BK-001")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, "Session ended", decodeBody(t, rec)["message"])

	// The transaction rolled back and no booking materialized.
	assert.Equal(t, 0, store.commits)
	assert.Equal(t, 1, store.rollbacks)
	assert.Empty(t, store.bookings)
}

func TestScanCreatesBookingWithPayloadSeatsOnFirstSight(t *testing.T) {
	store := newMemScanStore(launchSession())
	h := &ScanHandler{Store: store, Now: at(19, 0)}

	rec := performScan(t, h, "D1,D2|BK-002")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Seat D1 occupied", body["message"])
	assert.Equal(t, []any{"D1"}, body["occupiedSeats"])
	assert.Equal(t, []any{}, body["lateSeats"])
	assert.Equal(t, 1, store.commits)

	b := store.bookings["BK-002"]
	require.NotNil(t, b)
	require.Len(t, b.Seats, 2)
	assert.Equal(t, "D1", b.Seats[0].SeatLabel)
	assert.Equal(t, "D2", b.Seats[1].SeatLabel)
	assert.True(t, b.Seats[0].Occupied)
	assert.False(t, b.Seats[1].Occupied, "only the first seat is claimed per scan")
}

func TestScanSecondScanTakesNextSeatAndFlagsLate(t *testing.T) {
	store := newMemScanStore(launchSession())
	h := &ScanHandler{Store: store, Now: at(19, 0)}

	rec := performScan(t, h, "D1,D2|BK-002")
	require.Equal(t, http.StatusOK, rec.Code)

	// Same QR again, after the session end: the next free seat is taken and
	// flagged late; the first seat's verdict is untouched.
	h.Now = at(20, 5)
	rec = performScan(t, h, "D1,D2|BK-002")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "Seat D2 occupied", body["message"])
	assert.Equal(t, []any{"D1", "D2"}, body["occupiedSeats"])
	assert.Equal(t, []any{"D2"}, body["lateSeats"])

	b := store.bookings["BK-002"]
	assert.False(t, b.Seats[0].Late)
	assert.True(t, b.Seats[1].Late)
}

func TestScanFullBookingConflictLeavesStateUnchanged(t *testing.T) {
	store := newMemScanStore(launchSession())
	h := &ScanHandler{Store: store, Now: at(19, 0)}

	rec := performScan(t, h, "A1|BK-009")
	require.Equal(t, http.StatusOK, rec.Code)
	firstScanAt := *store.bookings["BK-009"].Seats[0].ScannedAt

	rec = performScan(t, h, "A1|BK-009")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "All seats occupied", decodeBody(t, rec)["message"])

	// Occupancy is monotonic and the losing scan changed nothing.
	b := store.bookings["BK-009"]
	require.Len(t, b.Seats, 1)
	assert.True(t, b.Seats[0].Occupied)
	assert.Equal(t, firstScanAt, *b.Seats[0].ScannedAt)
	assert.Equal(t, 1, store.commits)
	assert.Equal(t, 1, store.rollbacks)
}

func TestScanAggregatesAcrossBookings(t *testing.T) {
	store := newMemScanStore(launchSession())
	h := &ScanHandler{Store: store, Now: at(19, 0)}

	rec := performScan(t, h, "A1|BK-001")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = performScan(t, h, "B1,B2|BK-002")
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, []any{"A1", "B1"}, body["occupiedSeats"])
}
