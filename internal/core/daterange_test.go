package core

import (
	"errors"
	"testing"
	"time"
)

func TestMonthRange(t *testing.T) {
	cases := []struct {
		name  string
		year  int
		month int
		start string
		end   string
	}{
		{"mid year", 2025, 3, "2025-02-28T12:00:00Z", "2025-03-31T11:59:59.999Z"},
		{"january rolls into prior year via widening only", 2025, 1, "2024-12-31T12:00:00Z", "2025-02-01T11:59:59.999Z"},
		{"december rolls into next year via day-0 arithmetic", 2024, 12, "2024-11-30T12:00:00Z", "2025-01-01T11:59:59.999Z"},
		{"leap february", 2024, 2, "2024-01-31T12:00:00Z", "2024-03-01T11:59:59.999Z"},
		{"non-leap february", 2025, 2, "2025-01-31T12:00:00Z", "2025-03-01T11:59:59.999Z"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, end, err := MonthRange(tc.year, tc.month)
			if err != nil {
				t.Fatalf("MonthRange(%d, %d): %v", tc.year, tc.month, err)
			}
			wantStart, _ := time.Parse(time.RFC3339Nano, tc.start)
			wantEnd, _ := time.Parse(time.RFC3339Nano, tc.end)
			if !start.Equal(wantStart) {
				t.Errorf("start = %v, want %v", start, wantStart)
			}
			if !end.Equal(wantEnd) {
				t.Errorf("end = %v, want %v", end, wantEnd)
			}
		})
	}
}

func TestMonthRangeWideningInvariant(t *testing.T) {
	// For every month the widened interval must be the exact interval
	// stretched by exactly 12 hours on each side.
	for year := 2023; year <= 2026; year++ {
		for month := 1; month <= 12; month++ {
			start, end, err := MonthRange(year, month)
			if err != nil {
				t.Fatalf("MonthRange(%d, %d): %v", year, month, err)
			}
			exactStart, exactEnd, err := ExactMonthRange(year, month)
			if err != nil {
				t.Fatalf("ExactMonthRange(%d, %d): %v", year, month, err)
			}
			if got := exactStart.Sub(start); got != BoundaryWidening {
				t.Errorf("%d-%02d: start widened by %v, want %v", year, month, got, BoundaryWidening)
			}
			if got := end.Sub(exactEnd); got != BoundaryWidening {
				t.Errorf("%d-%02d: end widened by %v, want %v", year, month, got, BoundaryWidening)
			}
			// Exact boundaries sanity: first instant of day 1, last milli
			// of the last day.
			if exactStart.Day() != 1 || exactStart.Hour() != 0 {
				t.Errorf("%d-%02d: exact start %v is not first instant of month", year, month, exactStart)
			}
			if exactEnd.Hour() != 23 || exactEnd.Minute() != 59 {
				t.Errorf("%d-%02d: exact end %v is not last instant of month", year, month, exactEnd)
			}
		}
	}
}

func TestMonthRangeCoversOffsetEntries(t *testing.T) {
	// An entry recorded at any offset within ±12h of UTC whose local
	// calendar day is inside month M must land inside the M interval.
	start, end, err := MonthRange(2025, 6)
	if err != nil {
		t.Fatal(err)
	}
	for offsetHours := -12; offsetHours <= 12; offsetHours++ {
		zone := time.FixedZone("test", offsetHours*3600)
		for _, local := range []time.Time{
			time.Date(2025, 6, 1, 0, 0, 0, 0, zone),
			time.Date(2025, 6, 15, 12, 30, 0, 0, zone),
			time.Date(2025, 6, 30, 23, 59, 59, 0, zone),
		} {
			utc := local.UTC()
			if utc.Before(start) || utc.After(end) {
				t.Errorf("offset %+dh: %v (utc %v) outside [%v, %v]", offsetHours, local, utc, start, end)
			}
		}
	}
}

func TestMonthRangeInvalidMonth(t *testing.T) {
	for _, month := range []int{0, 13, -1, 99} {
		if _, _, err := MonthRange(2025, month); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("MonthRange(2025, %d): expected invalid argument, got %v", month, err)
		}
	}
}

func TestMonthRangeAcceptsAnyYear(t *testing.T) {
	for _, year := range []int{0, -44, 1899, 9999} {
		if _, _, err := MonthRange(year, 6); err != nil {
			t.Errorf("MonthRange(%d, 6): unexpected error %v", year, err)
		}
	}
}

func TestDaysInMonth(t *testing.T) {
	cases := []struct {
		year, month, want int
	}{
		{2025, 1, 31}, {2025, 2, 28}, {2024, 2, 29},
		{2025, 4, 30}, {2025, 12, 31}, {2000, 2, 29}, {1900, 2, 28},
	}
	for _, tc := range cases {
		if got := DaysInMonth(tc.year, tc.month); got != tc.want {
			t.Errorf("DaysInMonth(%d, %d) = %d, want %d", tc.year, tc.month, got, tc.want)
		}
	}
}
