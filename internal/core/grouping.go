package core

import "time"

// DayGroup is one calendar day of the active month together with the
// expenses whose instant falls on that day in the viewer's zone.
type DayGroup struct {
	Day      time.Time
	Expenses []Expense
}

// MonthSummary carries the derived totals for one month of expenses.
type MonthSummary struct {
	Total        Money
	DailyAverage float64
	DaysLogged   int
}

// MonthDays returns the ordered midnight-anchored days of the month in loc.
func MonthDays(year, month int, loc *time.Location) []time.Time {
	if loc == nil {
		loc = time.UTC
	}
	n := DaysInMonth(year, month)
	days := make([]time.Time, n)
	for i := 0; i < n; i++ {
		days[i] = time.Date(year, time.Month(month), i+1, 0, 0, 0, 0, loc)
	}
	return days
}

// sameDay reports whether two instants fall on the same calendar day in loc.
func sameDay(a, b time.Time, loc *time.Location) bool {
	ay, am, ad := a.In(loc).Date()
	by, bm, bd := b.In(loc).Date()
	return ay == by && am == bm && ad == bd
}

// GroupByDay partitions expenses over the given calendar days using local
// calendar-day equality. Every day appears exactly once, days with no
// entries included. Expenses whose local day falls outside the month (the
// strays the widened query deliberately admits) land in no group.
func GroupByDay(days []time.Time, expenses []Expense, loc *time.Location) []DayGroup {
	if loc == nil {
		loc = time.UTC
	}
	groups := make([]DayGroup, len(days))
	for i, day := range days {
		groups[i] = DayGroup{Day: day, Expenses: []Expense{}}
		for _, e := range expenses {
			if sameDay(e.Date.Time, day, loc) {
				groups[i].Expenses = append(groups[i].Expenses, e)
			}
		}
	}
	return groups
}

// Summarize computes the monthly totals over the full fetched list. The
// total is a single sum over everything the range query returned, not a sum
// of per-day subtotals, so it does not depend on how days partition the
// data. The average divides by calendar days in the month, not by days with
// entries.
func Summarize(expenses []Expense, daysInMonth int, loc *time.Location) MonthSummary {
	if loc == nil {
		loc = time.UTC
	}
	var total int64
	seen := make(map[string]struct{})
	for _, e := range expenses {
		total += e.Amount.Cents
		seen[e.Date.In(loc).Format(dateOnlyLayout)] = struct{}{}
	}
	s := MonthSummary{
		Total:      Money{Cents: total},
		DaysLogged: len(seen),
	}
	if daysInMonth > 0 {
		s.DailyAverage = float64(total) / 100.0 / float64(daysInMonth)
	}
	return s
}
