package core

import (
	"fmt"
	"time"
)

// BoundaryWidening is how far the month query range is stretched on each
// side. Entries are recorded from arbitrary time zones, so an instant a
// user thinks of as "in this month" can sit up to 12 hours outside the
// strict UTC month boundary. The query over-includes on purpose; the day
// grouper re-filters with local calendar-day semantics on the way out.
// Do not narrow this back to the exact boundary.
const BoundaryWidening = 12 * time.Hour

// MonthRange resolves (month, year) to the closed UTC interval used to
// filter expenses. The interval is the exact calendar month widened by
// BoundaryWidening on both ends.
func MonthRange(year, month int) (start, end time.Time, err error) {
	if month < 1 || month > 12 {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: month %d out of range", ErrInvalidArgument, month)
	}
	// Any year is accepted; an implausible one just yields an empty result.
	start = time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC)
	// Day 0 of month+1 is the last day of this month. time.Date normalizes
	// month 13, so December needs no year-rollover branch.
	end = time.Date(year, time.Month(month)+1, 0, 23, 59, 59, int(999*time.Millisecond), time.UTC)
	return start.Add(-BoundaryWidening), end.Add(BoundaryWidening), nil
}

// ExactMonthRange returns the unwidened calendar-month interval. The query
// path never uses it; it exists for the summary view and for asserting the
// widening invariant.
func ExactMonthRange(year, month int) (start, end time.Time, err error) {
	start, end, err = MonthRange(year, month)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start.Add(BoundaryWidening), end.Add(-BoundaryWidening), nil
}

// DaysInMonth returns the number of calendar days in the given month.
func DaysInMonth(year, month int) int {
	return time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
