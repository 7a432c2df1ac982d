package occupancy

import (
	"errors"
	"strings"
)

// ErrBadPayload is returned when a scanned QR string does not match the
// expected "seat,seat,...|bookingCode" shape.  Handlers translate it into an
// HTTP 400 response.
var ErrBadPayload = errors.New("invalid QR format")

// ParseQR splits a raw QR payload into its seat labels and booking code.
// The wire format is a comma-separated list of seat labels, a pipe, then the
// booking code, e.g. "D1,D2,D3|BK-002".  The pipe must be present and both
// the seat list and the booking code must be non-empty; anything after a
// second pipe is discarded.  Seat labels are passed through verbatim; no
// trimming or de-duplication happens here because the printed tickets are
// the source of truth for labels.
func ParseQR(raw string) ([]string, string, error) {
	parts := strings.Split(raw, "|")
	if len(parts) < 2 {
		return nil, "", ErrBadPayload
	}
	seatPart, bookingCode := parts[0], parts[1]
	if seatPart == "" || bookingCode == "" {
		return nil, "", ErrBadPayload
	}
	return strings.Split(seatPart, ","), bookingCode, nil
}
