package handler

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sahithiburada/seat-occupancy-system/internal/model"
	"github.com/sahithiburada/seat-occupancy-system/internal/occupancy"
	"github.com/sahithiburada/seat-occupancy-system/internal/repository"
)

// SessionHandler exposes the session lifecycle: create with the overlap
// check, read with derived occupancy, partial update while active, the
// irreversible end transition and deletion.
type SessionHandler struct {
	Sessions *repository.SessionRepo
}

// NewSessionHandler constructs a SessionHandler.  The repository must be
// non-nil.
func NewSessionHandler(sessions *repository.SessionRepo) *SessionHandler {
	if sessions == nil {
		panic("nil repository passed to NewSessionHandler")
	}
	return &SessionHandler{Sessions: sessions}
}

type createSessionReq struct {
	EventName    string `json:"eventName"`
	SessionDate  string `json:"sessionDate"`
	SessionStart string `json:"sessionStart"`
	SessionEnd   string `json:"sessionEnd"`
	GraceMinutes int    `json:"graceMinutes"`
}

// CreateSession handles POST /api/session/create.  The schedule fields must
// be zero-padded "YYYY-MM-DD" and "HH:MM"; anything else is rejected up
// front, because the late evaluator and the lexicographic overlap query both
// assume those fixed-width formats.  Before inserting it checks active
// sessions on the same date for a time overlap (half-open intervals, so
// abutting sessions are allowed) and rejects with 409 when one exists.  This
// is the only place the overlap invariant is enforced; UpdateSession
// deliberately does not re-run it.
func (h *SessionHandler) CreateSession(c echo.Context) error {
	var req createSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing required fields"})
	}
	req.EventName = strings.TrimSpace(req.EventName)
	if req.EventName == "" || req.SessionDate == "" || req.SessionStart == "" || req.SessionEnd == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Missing required fields"})
	}
	if !occupancy.ValidDate(req.SessionDate) || !occupancy.ValidClock(req.SessionStart) || !occupancy.ValidClock(req.SessionEnd) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date or time format"})
	}

	ctx := c.Request().Context()
	overlapping, err := h.Sessions.FindOverlappingActive(ctx, req.SessionDate, req.SessionStart, req.SessionEnd)
	if err != nil {
		log.Printf("session: overlap check: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Create session failed"})
	}
	if len(overlapping) > 0 {
		return c.JSON(http.StatusConflict, echo.Map{"message": "Another active session overlaps this time slot"})
	}

	s := &model.Session{
		EventName:    req.EventName,
		SessionDate:  req.SessionDate,
		SessionStart: req.SessionStart,
		SessionEnd:   req.SessionEnd,
		GraceMinutes: req.GraceMinutes,
	}
	if err := h.Sessions.Create(ctx, s); err != nil {
		log.Printf("session: create: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Create session failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"message":   "Session created successfully",
		"sessionId": s.ID,
	})
}

// sessionWithOccupancy is the read model returned by GetSession: the full
// session document plus the occupied seat labels flattened from every
// booking.  Late labels are intentionally absent here; only the scan
// response carries lateSeats.
type sessionWithOccupancy struct {
	model.Session
	OccupiedSeats []string `json:"occupiedSeats"`
}

// GetSession handles GET /api/session/:id.
func (h *SessionHandler) GetSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid session id"})
	}
	s, err := h.Sessions.GetAggregate(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Session not found"})
		}
		log.Printf("session: get %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to fetch session"})
	}
	occupied := make([]string, 0)
	for _, b := range s.Bookings {
		for _, seat := range b.Seats {
			if seat.Occupied {
				occupied = append(occupied, seat.SeatLabel)
			}
		}
	}
	return c.JSON(http.StatusOK, sessionWithOccupancy{Session: *s, OccupiedSeats: occupied})
}

type updateSessionReq struct {
	EventName    string `json:"eventName"`
	SessionStart string `json:"sessionStart"`
	SessionEnd   string `json:"sessionEnd"`
	GraceMinutes *int   `json:"graceMinutes"`
}

// UpdateSession handles PUT /api/session/:id.  Only provided fields change;
// empty strings leave the current value alone, and provided times must be
// zero-padded "HH:MM" like at creation.  Updates are rejected once a session
// has ended.  No overlap re-check happens here, so an edited active session
// can drift into overlap with another; creation is the only gate.
func (h *SessionHandler) UpdateSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid session id"})
	}
	var req updateSessionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid request body"})
	}
	if (req.SessionStart != "" && !occupancy.ValidClock(req.SessionStart)) ||
		(req.SessionEnd != "" && !occupancy.ValidClock(req.SessionEnd)) {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid date or time format"})
	}

	ctx := c.Request().Context()
	s, err := h.Sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Session not found"})
		}
		log.Printf("session: load %d for update: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Update failed"})
	}
	if s.Status == model.StatusEnded {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Session already ended"})
	}

	if name := strings.TrimSpace(req.EventName); name != "" {
		s.EventName = name
	}
	if req.SessionStart != "" {
		s.SessionStart = req.SessionStart
	}
	if req.SessionEnd != "" {
		s.SessionEnd = req.SessionEnd
	}
	if req.GraceMinutes != nil {
		s.GraceMinutes = *req.GraceMinutes
	}
	if err := h.Sessions.Update(ctx, s); err != nil {
		log.Printf("session: update %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Update failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Session updated successfully"})
}

// EndSession handles POST /api/session/end/:id.  The transition is
// irreversible; ending an already-ended session is a no-op that still
// reports success.
func (h *SessionHandler) EndSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid session id"})
	}
	if err := h.Sessions.End(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Session not found"})
		}
		log.Printf("session: end %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "End session failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "Session ended successfully"})
}

// DeleteSession handles DELETE /api/session/:id.  Removal is unconditional:
// active sessions delete just as readily as ended ones.
func (h *SessionHandler) DeleteSession(c echo.Context) error {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid session id"})
	}
	if err := h.Sessions.Delete(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Session not found"})
		}
		log.Printf("session: delete %d: %v", id, err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"message": "Session deleted successfully",
	})
}
