package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateSessionRejectsMissingFields(t *testing.T) {
	h := &SessionHandler{}

	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"no event name", `{"sessionDate":"2026-03-01","sessionStart":"10:00","sessionEnd":"12:00"}`},
		{"blank event name", `{"eventName":"   ","sessionDate":"2026-03-01","sessionStart":"10:00","sessionEnd":"12:00"}`},
		{"no date", `{"eventName":"Expo","sessionStart":"10:00","sessionEnd":"12:00"}`},
		{"no end", `{"eventName":"Expo","sessionDate":"2026-03-01","sessionStart":"10:00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/session/create", tc.body)
			require.NoError(t, h.CreateSession(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Missing required fields", decodeBody(t, rec)["message"])
		})
	}
}

// Malformed schedules must be rejected at creation, otherwise every later
// scan of the session would fail when the late evaluator parses them.
func TestCreateSessionRejectsMalformedSchedule(t *testing.T) {
	h := &SessionHandler{}

	cases := []struct {
		name string
		body string
	}{
		{"day-first date", `{"eventName":"Expo","sessionDate":"01-06-2025","sessionStart":"10:00","sessionEnd":"12:00"}`},
		{"unpadded date", `{"eventName":"Expo","sessionDate":"2025-6-01","sessionStart":"10:00","sessionEnd":"12:00"}`},
		{"unpadded start", `{"eventName":"Expo","sessionDate":"2025-06-01","sessionStart":"9:00","sessionEnd":"12:00"}`},
		{"hour out of range", `{"eventName":"Expo","sessionDate":"2025-06-01","sessionStart":"10:00","sessionEnd":"25:00"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/session/create", tc.body)
			require.NoError(t, h.CreateSession(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid date or time format", decodeBody(t, rec)["message"])
		})
	}
}

func TestUpdateSessionRejectsMalformedTimes(t *testing.T) {
	h := &SessionHandler{}

	for _, body := range []string{
		`{"sessionStart":"9:00"}`,
		`{"sessionEnd":"26:00"}`,
	} {
		c, rec := newIDContext(t, http.MethodPut, "7", body)
		require.NoError(t, h.UpdateSession(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "body %s", body)
		assert.Equal(t, "Invalid date or time format", decodeBody(t, rec)["message"])
	}
}

// newIDContext builds a context with the :id path parameter set, the way
// Echo's router would after matching /api/session/:id.
func newIDContext(t *testing.T, method, id, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, "/", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("id")
	c.SetParamValues(id)
	return c, rec
}

func TestSessionEndpointsRejectBadID(t *testing.T) {
	h := &SessionHandler{}

	endpoints := []struct {
		name string
		call func(echo.Context) error
	}{
		{"get", h.GetSession},
		{"update", h.UpdateSession},
		{"end", h.EndSession},
		{"delete", h.DeleteSession},
	}
	for _, ep := range endpoints {
		for _, id := range []string{"abc", "0", "-3", ""} {
			c, rec := newIDContext(t, http.MethodGet, id, "")
			require.NoError(t, ep.call(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code, "%s with id %q", ep.name, id)
			assert.Equal(t, "Invalid session id", decodeBody(t, rec)["message"])
		}
	}
}
