package occupancy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func localTime(y int, m time.Month, d, hh, mm, ss int) time.Time {
	return time.Date(y, m, d, hh, mm, ss, 0, time.Local)
}

func TestEvaluate_BeforeEndIsNotLate(t *testing.T) {
	v, err := Evaluate("2025-06-01", "20:00", 15, localTime(2025, time.June, 1, 18, 30, 0))
	require.NoError(t, err)
	assert.False(t, v.Late)
}

func TestEvaluate_ExactEndMinuteIsNotLate(t *testing.T) {
	// Seconds inside the end minute must not tip the decision.
	for _, sec := range []int{0, 1, 59} {
		v, err := Evaluate("2025-06-01", "20:00", 0, localTime(2025, time.June, 1, 20, 0, sec))
		require.NoError(t, err)
		assert.False(t, v.Late, "scan at 20:00:%02d should not be late", sec)
	}
}

func TestEvaluate_OneMinutePastEndIsLate(t *testing.T) {
	v, err := Evaluate("2025-06-01", "20:00", 0, localTime(2025, time.June, 1, 20, 1, 0))
	require.NoError(t, err)
	assert.True(t, v.Late)
}

func TestEvaluate_GraceMinutesDoNotAffectLateness(t *testing.T) {
	at := localTime(2025, time.June, 1, 20, 5, 0)
	withGrace, err := Evaluate("2025-06-01", "20:00", 15, at)
	require.NoError(t, err)
	withoutGrace, err := Evaluate("2025-06-01", "20:00", 0, at)
	require.NoError(t, err)
	assert.True(t, withGrace.Late)
	assert.Equal(t, withoutGrace.Late, withGrace.Late)
	assert.Equal(t, withGrace.EndsAt.Add(15*time.Minute), withGrace.GraceUntil)
}

func TestEvaluate_SameMinuteOfDayYieldsSameVerdict(t *testing.T) {
	a, err := Evaluate("2025-06-01", "20:00", 10, localTime(2025, time.June, 1, 20, 30, 2))
	require.NoError(t, err)
	b, err := Evaluate("2025-06-01", "20:00", 10, localTime(2025, time.June, 1, 20, 30, 58))
	require.NoError(t, err)
	assert.Equal(t, a.Late, b.Late)
}

func TestEvaluate_DateRolloverBlindSpot(t *testing.T) {
	// A scan the following day inside the same clock minute as the session
	// end still reads as not late.  This pins the current minute-of-day
	// behavior; changing the rule should force a deliberate edit here.
	v, err := Evaluate("2025-06-01", "20:00", 0, localTime(2025, time.June, 2, 20, 0, 30))
	require.NoError(t, err)
	assert.False(t, v.Late)

	// Earlier clock times on a later day are likewise not late.
	v, err = Evaluate("2025-06-01", "20:00", 0, localTime(2025, time.June, 2, 9, 0, 0))
	require.NoError(t, err)
	assert.False(t, v.Late)
}

func TestEvaluate_RejectsMalformedSchedule(t *testing.T) {
	_, err := Evaluate("01-06-2025", "20:00", 0, time.Now())
	assert.Error(t, err)
	_, err = Evaluate("2025-06-01", "8pm", 0, time.Now())
	assert.Error(t, err)
}
