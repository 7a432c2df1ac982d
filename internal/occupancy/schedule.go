package occupancy

import "time"

// ValidDate reports whether raw is a real calendar date in the stored
// zero-padded "YYYY-MM-DD" format.  The length check matters: time.Parse
// accepts unpadded components, but the lexicographic comparisons in the
// overlap and search queries require fixed width.
func ValidDate(raw string) bool {
	if len(raw) != len(dateLayout) {
		return false
	}
	_, err := time.Parse(dateLayout, raw)
	return err == nil
}

// ValidClock reports whether raw is a time of day in the stored zero-padded
// "HH:MM" format.
func ValidClock(raw string) bool {
	if len(raw) != len(clockLayout) {
		return false
	}
	_, err := time.Parse(clockLayout, raw)
	return err == nil
}
