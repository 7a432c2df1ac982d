package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newJSONContext builds an Echo context around a JSON request body.  The
// recorder captures whatever the handler writes.
func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &m))
	return m
}

// Validation runs before any database work, so these cases exercise the
// handler with nil repositories.
func TestScanRejectsMissingData(t *testing.T) {
	h := &ScanHandler{}

	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing qrData", `{"sessionId":"1"}`},
		{"missing sessionId", `{"qrData":"A1|BK-001"}`},
		{"whitespace only", `{"sessionId":"  ","qrData":"  "}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newJSONContext(t, http.MethodPost, "/api/scan", tc.body)
			require.NoError(t, h.Scan(c))
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Missing data", decodeBody(t, rec)["message"])
		})
	}
}

func TestScanRejectsNonNumericSessionID(t *testing.T) {
	h := &ScanHandler{}

	for _, id := range []string{"abc", "-1", "0", "1.5"} {
		c, rec := newJSONContext(t, http.MethodPost, "/api/scan",
			`{"sessionId":"`+id+`","qrData":"A1|BK-001"}`)
		require.NoError(t, h.Scan(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "sessionId %q", id)
		assert.Equal(t, "Invalid session id", decodeBody(t, rec)["message"])
	}
}

func TestScanRejectsMalformedQR(t *testing.T) {
	h := &ScanHandler{}

	for _, qr := range []string{"no-separator", "|BK-001", "A1,A2|", "|"} {
		c, rec := newJSONContext(t, http.MethodPost, "/api/scan",
			`{"sessionId":"1","qrData":"`+qr+`"}`)
		require.NoError(t, h.Scan(c))
		assert.Equal(t, http.StatusBadRequest, rec.Code, "qrData %q", qr)
		assert.Equal(t, "Invalid QR format", decodeBody(t, rec)["message"])
	}
}

func TestNewScanHandlerPanicsOnNilRepos(t *testing.T) {
	assert.Panics(t, func() { NewScanHandler(nil, nil, nil) })
}
