package handler

import (
	"context"  // background context for best-effort event publishing
	"errors"   // errors.Is comparisons against repository sentinels
	"fmt"      // confirmation message formatting
	"log"      // server-side logging of unexpected failures
	"net/http" // HTTP status codes
	"strconv"  // session id parsing
	"strings"  // input trimming
	"time"     // scan timestamps

	"github.com/labstack/echo/v4"

	"github.com/sahithiburada/seat-occupancy-system/internal/model"
	"github.com/sahithiburada/seat-occupancy-system/internal/occupancy"
	"github.com/sahithiburada/seat-occupancy-system/internal/queue"
	"github.com/sahithiburada/seat-occupancy-system/internal/repository"
	queue_publisher "github.com/sahithiburada/seat-occupancy-system/internal/service"
)

// ScanStore opens the transactional unit of work the scan flow runs in.
// The production implementation wraps the MySQL repositories; see
// scan_store.go.
type ScanStore interface {
	BeginScan(ctx context.Context) (ScanTx, error)
}

// ScanTx is one scan transaction.  Everything between BeginScan and Commit
// observes and mutates a single isolated view of the session aggregate;
// Rollback discards the mutations.
type ScanTx interface {
	// SessionForUpdate loads the session with mutual exclusion against
	// concurrent scans of the same session.
	SessionForUpdate(ctx context.Context, id uint64) (*model.Session, error)
	// BookingByCode returns repository.ErrBookingNotFound for unseen codes.
	BookingByCode(ctx context.Context, sessionID uint64, code string) (*model.Booking, error)
	CreateBookingWithSeats(ctx context.Context, sessionID uint64, code string, seatLabels []string) (*model.Booking, error)
	// OccupySeat returns repository.ErrSeatTaken when the seat is already
	// occupied; occupancy is never reversed.
	OccupySeat(ctx context.Context, seatID uint64, at time.Time, late bool) error
	SeatsBySession(ctx context.Context, sessionID uint64) ([]model.Seat, error)
	Commit() error
	Rollback() error
}

// ScanHandler reconciles incoming QR scans against a session's bookings and
// seats.  The whole mutation runs in one transaction that locks the session
// row, so two scanners racing for the last free seat of a booking serialize
// instead of double-occupying it.
type ScanHandler struct {
	Store ScanStore
	// Now supplies scan timestamps; nil means time.Now.
	Now func() time.Time
}

// NewScanHandler constructs a ScanHandler over the MySQL repositories.
// All dependencies must be non-nil.
func NewScanHandler(sessions *repository.SessionRepo, bookings *repository.BookingRepo, seats *repository.SeatRepo) *ScanHandler {
	if sessions == nil || bookings == nil || seats == nil {
		panic("nil repository passed to NewScanHandler")
	}
	return &ScanHandler{Store: &sqlScanStore{sessions: sessions, bookings: bookings, seats: seats}}
}

func (h *ScanHandler) clock() time.Time {
	if h.Now != nil {
		return h.Now()
	}
	return time.Now()
}

type scanReq struct {
	SessionID string `json:"sessionId"`
	QRData    string `json:"qrData"`
}

// Scan handles POST /api/scan.  Flow:
//
//  1. validate the request and parse the "seats|bookingCode" payload;
//  2. lock and load the session; reject ended sessions;
//  3. find the booking by code, creating it from the payload's seat list on
//     first sight (bookings are not pre-registered, they materialize here);
//  4. occupy the first unoccupied seat of the booking in stored order, with
//     the late flag from the minute-of-day evaluator;
//  5. return the session-wide occupied and late seat label lists.
//
// Re-scanning the same QR against a partially filled booking occupies the
// next free seat; against a full booking it returns 409.  The payload does
// not say which seat the holder meant, so the two cases cannot be told
// apart.
func (h *ScanHandler) Scan(c echo.Context) error {
	var req scanReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing data"})
	}
	req.SessionID = strings.TrimSpace(req.SessionID)
	req.QRData = strings.TrimSpace(req.QRData)
	if req.SessionID == "" || req.QRData == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing data"})
	}
	sessionID, err := strconv.ParseUint(req.SessionID, 10, 64)
	if err != nil || sessionID == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid session id"})
	}
	// QR format: D1,D2,D3|BK-002
	seatLabels, bookingCode, err := occupancy.ParseQR(req.QRData)
	if err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid QR format"})
	}

	ctx := c.Request().Context()
	tx, err := h.Store.BeginScan(ctx)
	if err != nil {
		log.Printf("scan: begin tx: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Scan failed"})
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	session, err := tx.SessionForUpdate(ctx, sessionID)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Session not found"})
		}
		log.Printf("scan: load session %d: %v", sessionID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Scan failed"})
	}
	if session.Status == model.StatusEnded {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Session ended"})
	}

	booking, err := tx.BookingByCode(ctx, sessionID, bookingCode)
	if errors.Is(err, repository.ErrBookingNotFound) {
		booking, err = tx.CreateBookingWithSeats(ctx, sessionID, bookingCode, seatLabels)
	}
	if err != nil {
		log.Printf("scan: booking %q in session %d: %v", bookingCode, sessionID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Scan failed"})
	}

	// First unoccupied seat in stored order.
	var seatID uint64
	var seatLabel string
	for i := range booking.Seats {
		if !booking.Seats[i].Occupied {
			seatID = booking.Seats[i].ID
			seatLabel = booking.Seats[i].SeatLabel
			break
		}
	}
	if seatID == 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "All seats occupied"})
	}

	now := h.clock()
	verdict, err := occupancy.Evaluate(session.SessionDate, session.SessionEnd, session.GraceMinutes, now)
	if err != nil {
		log.Printf("scan: evaluate session %d schedule: %v", sessionID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Scan failed"})
	}

	if err := tx.OccupySeat(ctx, seatID, now, verdict.Late); err != nil {
		if errors.Is(err, repository.ErrSeatTaken) {
			// Cannot happen while the session row lock is held; kept as a
			// backstop in case the lock is ever weakened.
			return c.JSON(http.StatusConflict, echo.Map{"message": "All seats occupied"})
		}
		log.Printf("scan: occupy seat %d: %v", seatID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Scan failed"})
	}

	// Aggregate across every booking in the session, not just this one.
	all, err := tx.SeatsBySession(ctx, sessionID)
	if err != nil {
		log.Printf("scan: list seats for session %d: %v", sessionID, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Scan failed"})
	}
	occupiedSeats := make([]string, 0, len(all))
	lateSeats := make([]string, 0)
	for _, s := range all {
		if s.Occupied {
			occupiedSeats = append(occupiedSeats, s.SeatLabel)
			if s.Late {
				lateSeats = append(lateSeats, s.SeatLabel)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		log.Printf("scan: commit: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Scan failed"})
	}
	committed = true

	// Best-effort fan-out; a broker outage must not fail the scan.
	ev := queue.SeatScannedEvent{
		SessionID:   sessionID,
		EventName:   session.EventName,
		BookingCode: bookingCode,
		SeatLabel:   seatLabel,
		Late:        verdict.Late,
		ScannedAt:   now.Format(time.RFC3339),
	}
	go func() { _ = queue_publisher.PublishSeatScanned(context.Background(), ev) }()

	return c.JSON(http.StatusOK, echo.Map{
		"message":       fmt.Sprintf("Seat %s occupied", seatLabel),
		"occupiedSeats": occupiedSeats,
		"lateSeats":     lateSeats,
	})
}
