// Package occupancy holds the pure decision logic of the scanning flow: the
// late-arrival evaluator, the QR payload parser and the schedule overlap
// test.  Nothing in this package touches storage or transport, which keeps
// the rules testable without a database.
package occupancy

import "time"

// dateLayout and clockLayout are the stored formats for session scheduling
// fields.  Dates are "YYYY-MM-DD" and times of day are zero-padded "HH:MM".
const (
	dateLayout  = "2006-01-02"
	clockLayout = "15:04"
)

// Verdict is the outcome of evaluating a scan against a session schedule.
// GraceUntil is the session end pushed out by the configured grace minutes.
// It is carried for observability but the Late decision does not consult it:
// the grace period is inert configuration kept from an earlier design and
// scans are never rejected for arriving after it.
type Verdict struct {
	Late       bool
	EndsAt     time.Time
	GraceUntil time.Time
}

// Evaluate decides whether a scan at scannedAt counts as late for a session
// on sessionDate ending at sessionEnd.  The session end timestamp is built
// in the server's local timezone, then only the hour-and-minute components
// of both sides are compared: a scan is late strictly when its minute of day
// is greater than the end minute of day.  Consequences of that rule:
//
//   - a scan at exactly the end minute is not late, whatever its seconds;
//   - a scan on a later calendar day that happens to fall inside the same
//     clock minute as the end time still reads as not late.  The date is
//     discarded by the comparison; a known blind spot, not an intended rule.
func Evaluate(sessionDate, sessionEnd string, graceMinutes int, scannedAt time.Time) (Verdict, error) {
	day, err := time.ParseInLocation(dateLayout, sessionDate, time.Local)
	if err != nil {
		return Verdict{}, err
	}
	clock, err := time.Parse(clockLayout, sessionEnd)
	if err != nil {
		return Verdict{}, err
	}
	endsAt := time.Date(day.Year(), day.Month(), day.Day(), clock.Hour(), clock.Minute(), 0, 0, time.Local)
	if graceMinutes < 0 {
		graceMinutes = 0
	}
	return Verdict{
		Late:       minuteOfDay(scannedAt.In(time.Local)) > minuteOfDay(endsAt),
		EndsAt:     endsAt,
		GraceUntil: endsAt.Add(time.Duration(graceMinutes) * time.Minute),
	}, nil
}

// minuteOfDay collapses a timestamp to minutes since local midnight,
// discarding seconds and the calendar date.
func minuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}
