// Package period resolves relative period tokens into date ranges.
package period

import (
	"github.com/easyfinances/backend/internal/types"
)

// Token names a period relative to a reference date.
type Token string

const (
	ThisMonth  Token = "this_month"
	LastMonth  Token = "last_month"
	Last90Days Token = "last_90_days"
	ThisYear   Token = "this_year"
)

// Range is a resolved period together with the period it is compared to.
// All bounds are inclusive.
type Range struct {
	Token     Token
	Start     types.Date
	End       types.Date
	PrevStart types.Date
	PrevEnd   types.Date
}

// Days returns the number of days in the period, including both bounds.
func (r Range) Days() int {
	return r.Start.DaysUntil(r.End) + 1
}

// Contains reports if the date is within the period.
func (r Range) Contains(d types.Date) bool {
	return !d.Before(r.Start) && !d.After(r.End)
}

// ContainsPrevious reports if the date is within the comparison period.
func (r Range) ContainsPrevious(d types.Date) bool {
	return !d.Before(r.PrevStart) && !d.After(r.PrevEnd)
}

// Resolve returns the range for the token relative to the reference date.
// Unknown and empty tokens resolve as ThisMonth.
func Resolve(token string, reference types.Date) Range {
	switch Token(token) {
	case LastMonth:
		start := reference.MonthStart().AddDate(0, -1, 0)
		return Range{
			Token:     LastMonth,
			Start:     start,
			End:       start.MonthEnd(),
			PrevStart: start.AddDate(0, -1, 0),
			PrevEnd:   start.AddDays(-1),
		}

	case Last90Days:
		start := reference.AddDays(-89)
		return Range{
			Token:     Last90Days,
			Start:     start,
			End:       reference,
			PrevStart: start.AddDays(-90),
			PrevEnd:   start.AddDays(-1),
		}

	case ThisYear:
		start := reference.YearStart()
		return Range{
			Token:     ThisYear,
			Start:     start,
			End:       reference.YearEnd(),
			PrevStart: start.AddDate(-1, 0, 0),
			PrevEnd:   start.AddDays(-1),
		}

	default:
		start := reference.MonthStart()
		return Range{
			Token:     ThisMonth,
			Start:     start,
			End:       reference.MonthEnd(),
			PrevStart: start.AddDate(0, -1, 0),
			PrevEnd:   start.AddDays(-1),
		}
	}
}
