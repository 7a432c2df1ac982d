package handler

import (
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/sahithiburada/seat-occupancy-system/internal/occupancy"
	"github.com/sahithiburada/seat-occupancy-system/internal/repository"
)

// SearchHandler serves the ended-session archive lookup.
type SearchHandler struct {
	Sessions *repository.SessionRepo
}

// NewSearchHandler constructs a SearchHandler.
func NewSearchHandler(sessions *repository.SessionRepo) *SearchHandler {
	if sessions == nil {
		panic("nil repository passed to NewSearchHandler")
	}
	return &SearchHandler{Sessions: sessions}
}

// Search handles GET /api/session/search.  Both query parameters are
// optional: eventName matches case-insensitively as a substring, date
// matches exactly after normalization (DD-MM-YYYY input is rewritten to
// YYYY-MM-DD).  Only ended sessions are returned; with no parameters the
// whole archive comes back, newest first.
func (h *SearchHandler) Search(c echo.Context) error {
	name := strings.TrimSpace(c.QueryParam("eventName"))
	date := occupancy.NormalizeDate(strings.TrimSpace(c.QueryParam("date")))

	sessions, err := h.Sessions.SearchEnded(c.Request().Context(), name, date)
	if err != nil {
		log.Printf("search: query ended sessions: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"success": false})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"success":  true,
		"sessions": sessions,
	})
}
