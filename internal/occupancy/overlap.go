package occupancy

import "strings"

// Overlaps reports whether two half-open time-of-day ranges [aStart, aEnd)
// and [bStart, bEnd) intersect.  Inputs are zero-padded "HH:MM" strings, so
// plain lexicographic comparison orders them correctly; that shortcut is
// only safe because the format is fixed-width.  Abutting ranges (one ends
// exactly when the other starts) do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd string) bool {
	return aStart < bEnd && aEnd > bStart
}

// NormalizeDate accepts a date in either "YYYY-MM-DD" or "DD-MM-YYYY" and
// returns the former.  The two formats are told apart by the width of the
// first dash-separated segment, so anything that is not three segments with
// a two-character head passes through unchanged.
func NormalizeDate(raw string) string {
	parts := strings.Split(raw, "-")
	if len(parts) == 3 && len(parts[0]) == 2 {
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	}
	return raw
}
