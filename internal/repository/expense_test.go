package repository

import (
	"strings"
	"testing"
	"time"

	"github.com/spendwise/spendwise/internal/model"
)

func TestTruncUnit(t *testing.T) {
	tests := []struct {
		timeframe string
		want      string
	}{
		{"daily", "day"},
		{"weekly", "week"},
		{"monthly", "month"},
		{"", "day"},
		{"hourly", "day"},
		{"MONTHLY", "day"},
	}

	for _, test := range tests {
		t.Run(test.timeframe, func(t *testing.T) {
			if got := truncUnit(test.timeframe); got != test.want {
				t.Errorf("truncUnit(%q) = %q, want %q", test.timeframe, got, test.want)
			}
		})
	}
}

func TestBuildTrendQuery_ExplicitRange(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 3, 31, 0, 0, 0, 0, time.UTC)

	query, args, descending := buildTrendQuery("user-1", TrendFilter{
		Timeframe: "monthly",
		StartDate: &start,
		EndDate:   &end,
	})

	if descending {
		t.Error("explicit range should not need reversal")
	}
	if !strings.Contains(query, "DATE_TRUNC('month'") {
		t.Errorf("expected month truncation, got: %s", query)
	}
	if !strings.Contains(query, "ORDER BY period ASC") {
		t.Errorf("expected ascending order, got: %s", query)
	}
	if strings.Contains(query, "LIMIT") {
		t.Errorf("explicit range should not be limited, got: %s", query)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args (user, start, end), got %d", len(args))
	}
}

func TestBuildTrendQuery_RollingWindow(t *testing.T) {
	query, args, descending := buildTrendQuery("user-1", TrendFilter{Timeframe: "daily"})

	if !descending {
		t.Error("rolling window result should be marked for reversal")
	}
	if !strings.Contains(query, "ORDER BY period DESC") {
		t.Errorf("expected descending order, got: %s", query)
	}
	if !strings.Contains(query, "LIMIT") {
		t.Errorf("expected a window limit, got: %s", query)
	}
	if len(args) != 2 {
		t.Errorf("expected 2 args (user, limit), got %d", len(args))
	}
	if args[len(args)-1] != trendWindowSize {
		t.Errorf("expected window size %d, got %v", trendWindowSize, args[len(args)-1])
	}
}

func TestBuildTrendQuery_EndDateOnly(t *testing.T) {
	end := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	query, args, descending := buildTrendQuery("user-1", TrendFilter{
		Timeframe: "weekly",
		EndDate:   &end,
	})

	if !descending {
		t.Error("end-only filter still uses the rolling window")
	}
	if !strings.Contains(query, "created_at <= $2") {
		t.Errorf("expected upper bound on created_at, got: %s", query)
	}
	if strings.Contains(query, "created_at >= ") {
		t.Errorf("expected no lower bound, got: %s", query)
	}
	if len(args) != 3 {
		t.Errorf("expected 3 args (user, end, limit), got %d", len(args))
	}
}

func TestBuildTrendQuery_StartDateOnlyIgnored(t *testing.T) {
	start := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	query, _, descending := buildTrendQuery("user-1", TrendFilter{
		Timeframe: "daily",
		StartDate: &start,
	})

	// A lone start date does not form a range; the rolling window applies.
	if !descending {
		t.Error("expected rolling window branch")
	}
	if strings.Contains(query, "created_at >=") {
		t.Errorf("lone start date should be ignored, got: %s", query)
	}
}

func TestReverseTrendPoints(t *testing.T) {
	day := func(d int) time.Time {
		return time.Date(2025, 5, d, 0, 0, 0, 0, time.UTC)
	}

	points := []*model.TrendPoint{
		{Period: day(3), TotalAmount: 30},
		{Period: day(2), TotalAmount: 20},
		{Period: day(1), TotalAmount: 10},
	}

	reverseTrendPoints(points)

	for i := 1; i < len(points); i++ {
		if !points[i-1].Period.Before(points[i].Period) {
			t.Fatalf("points not ascending after reversal: %v then %v",
				points[i-1].Period, points[i].Period)
		}
	}

	if points[0].TotalAmount != 10 || points[2].TotalAmount != 30 {
		t.Error("amounts not carried through reversal")
	}
}

func TestReverseTrendPoints_EmptyAndSingle(t *testing.T) {
	reverseTrendPoints(nil)

	single := []*model.TrendPoint{{TotalAmount: 1}}
	reverseTrendPoints(single)
	if single[0].TotalAmount != 1 {
		t.Error("single element slice should be unchanged")
	}
}
