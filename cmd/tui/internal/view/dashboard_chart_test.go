package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/MrJamesThe3rd/till/internal/ledger"
)

func TestDailyChart_CountsDaysOfRange(t *testing.T) {
	r := ledger.NewDateRange(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC), time.UTC)
	series := []ledger.DailyTotal{
		{Day: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), Amount: 5000},
		{Day: time.Date(2024, 3, 5, 0, 0, 0, 0, time.UTC), Amount: 2500},
	}

	out := dailyChart(series, r)
	assert.Contains(t, out, "Daily sales (2 of 7 days)")
	assert.Contains(t, out, "03-05")

	assert.Contains(t, dailyChart(nil, r), "Daily sales (0 of 7 days)")
}
