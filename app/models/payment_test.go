package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestComputeDerived(t *testing.T) {
	today := date("2024-06-15")

	tests := []struct {
		name        string
		totalFee    float64
		totalPaid   float64
		dueDate     *time.Time
		wantBalance float64
		wantOverdue bool
	}{
		{"fully paid", 5000, 5000, ptr(date("2024-01-01")), 0, false},
		{"unpaid past due", 5000, 2000, ptr(date("2024-06-01")), 3000, true},
		{"unpaid before due", 5000, 2000, ptr(date("2024-07-01")), 3000, false},
		{"unpaid due today", 5000, 2000, ptr(date("2024-06-15")), 3000, false},
		{"no due date", 5000, 0, nil, 5000, false},
		{"overpaid past due", 5000, 6000, ptr(date("2024-01-01")), -1000, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Payment{TotalFee: tt.totalFee, TotalPaid: tt.totalPaid, DueDate: tt.dueDate}
			p.ComputeDerived(today)
			assert.Equal(t, tt.wantBalance, p.Balance)
			assert.Equal(t, tt.wantOverdue, p.IsOverdue)
		})
	}
}

func ptr(t time.Time) *time.Time { return &t }

// DATE columns come back from the driver as midnight UTC, while Today() is
// midnight in the process's local zone. West of UTC those instants differ
// even on the same calendar day; the overdue flag must not care.
func TestComputeDerivedComparesCalendarDates(t *testing.T) {
	west := time.FixedZone("UTC-5", -5*60*60)
	today := time.Date(2024, 6, 15, 0, 0, 0, 0, west)

	dueToday := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	p := Payment{TotalFee: 5000, TotalPaid: 2000, DueDate: &dueToday}
	p.ComputeDerived(today)
	assert.False(t, p.IsOverdue, "due today must not be overdue in a zone west of UTC")

	dueYesterday := time.Date(2024, 6, 14, 0, 0, 0, 0, time.UTC)
	p.DueDate = &dueYesterday
	p.ComputeDerived(today)
	assert.True(t, p.IsOverdue)

	east := time.FixedZone("UTC+9", 9*60*60)
	p.DueDate = &dueToday
	p.ComputeDerived(time.Date(2024, 6, 15, 0, 0, 0, 0, east))
	assert.False(t, p.IsOverdue, "due today must not be overdue east of UTC either")
}

func TestComputePercentage(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		maxScore float64
		want     float64
	}{
		{"out of 100", 85, 100, 85},
		{"out of 50", 40, 50, 80},
		{"zero max", 10, 0, 0},
		{"full marks", 50, 50, 100},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := Grade{Score: tt.score, MaxScore: tt.maxScore}
			g.ComputePercentage()
			assert.InDelta(t, tt.want, g.Percentage, 0.0001)
		})
	}
}
