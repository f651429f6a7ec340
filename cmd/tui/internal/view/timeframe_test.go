package view_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/till/cmd/tui/internal/view"
)

func TestTimeframeRange(t *testing.T) {
	art := time.FixedZone("ART", -3*60*60)
	// Wednesday 2024-03-13 22:00 in ART, already Thursday in UTC.
	now := time.Date(2024, 3, 14, 1, 0, 0, 0, time.UTC)

	tests := []struct {
		tf         view.Timeframe
		now        time.Time
		start, end string
	}{
		{tf: view.TimeframeToday, now: now, start: "2024-03-13", end: "2024-03-13"},
		{tf: view.TimeframeThisWeek, now: now, start: "2024-03-11", end: "2024-03-13"},
		{tf: view.TimeframeLastWeek, now: now, start: "2024-03-04", end: "2024-03-10"},
		{tf: view.TimeframeThisMonth, now: now, start: "2024-03-01", end: "2024-03-13"},
		{tf: view.TimeframeLastMonth, now: now, start: "2024-02-01", end: "2024-02-29"},
		{tf: view.TimeframeThisWeek, now: time.Date(2024, 3, 17, 12, 0, 0, 0, art), start: "2024-03-11", end: "2024-03-17"},
	}

	for _, tt := range tests {
		t.Run(tt.tf.String(), func(t *testing.T) {
			r := view.TimeframeRange(tt.tf, tt.now, art)

			assert.Equal(t, tt.start, r.Start.Format(time.DateOnly))
			assert.Equal(t, tt.end, r.End.Format(time.DateOnly))
			assert.Equal(t, art, r.Location)
			assert.True(t, r.Valid())
		})
	}
}
