package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQR(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		seats   []string
		booking string
		wantErr bool
	}{
		{name: "multiple seats", raw: "D1,D2,D3|BK-002", seats: []string{"D1", "D2", "D3"}, booking: "BK-002"},
		{name: "single seat", raw: "A1|BK-1", seats: []string{"A1"}, booking: "BK-1"},
		{name: "extra pipe segments discarded", raw: "A1|BK|X", seats: []string{"A1"}, booking: "BK"},
		{name: "empty middle segment", raw: "A1||X", wantErr: true},
		{name: "missing pipe", raw: "A1,A2", wantErr: true},
		{name: "empty seat side", raw: "|BK-1", wantErr: true},
		{name: "empty booking side", raw: "A1,A2|", wantErr: true},
		{name: "empty payload", raw: "", wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seats, booking, err := ParseQR(tc.raw)
			if tc.wantErr {
				require.ErrorIs(t, err, ErrBadPayload)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.seats, seats)
			assert.Equal(t, tc.booking, booking)
		})
	}
}
