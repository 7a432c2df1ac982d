package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name                           string
		aStart, aEnd, bStart, bEnd     string
		want                           bool
	}{
		{name: "contained", aStart: "09:00", aEnd: "10:00", bStart: "09:30", bEnd: "09:45", want: true},
		{name: "partial tail", aStart: "09:00", aEnd: "10:00", bStart: "09:45", bEnd: "10:30", want: true},
		{name: "identical", aStart: "09:00", aEnd: "10:00", bStart: "09:00", bEnd: "10:00", want: true},
		{name: "abutting before", aStart: "09:00", aEnd: "10:00", bStart: "08:00", bEnd: "09:00", want: false},
		{name: "abutting after", aStart: "09:00", aEnd: "10:00", bStart: "10:00", bEnd: "11:00", want: false},
		{name: "disjoint", aStart: "09:00", aEnd: "10:00", bStart: "14:00", bEnd: "15:00", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Overlaps(tc.aStart, tc.aEnd, tc.bStart, tc.bEnd))
			// Overlap is symmetric; the creation check relies on that.
			assert.Equal(t, tc.want, Overlaps(tc.bStart, tc.bEnd, tc.aStart, tc.aEnd))
		})
	}
}

func TestNormalizeDate(t *testing.T) {
	assert.Equal(t, "2025-06-01", NormalizeDate("01-06-2025"))
	assert.Equal(t, "2025-06-01", NormalizeDate("2025-06-01"))
	assert.Equal(t, "junk", NormalizeDate("junk"))
	assert.Equal(t, "1-2", NormalizeDate("1-2"))
}
