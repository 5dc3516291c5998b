package analytics

import (
	"strings"
	"time"

	"github.com/easyfinances/backend/internal/models"
	"github.com/easyfinances/backend/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/exp/slices"
)

var hundred = decimal.NewFromInt(100)

// Variation returns the change from previous to current in percent of
// the absolute previous value, rounded to 2 places.
//
// Without a previous value, any positive current value is a variation
// of 100 and everything else 0.
func Variation(current, previous decimal.Decimal) decimal.Decimal {
	if previous.IsZero() {
		if current.IsPositive() {
			return hundred
		}
		return decimal.Zero
	}

	return current.Sub(previous).Div(previous.Abs()).Mul(hundred).Round(2)
}

// Percentage returns part of total in percent rounded to 2 places,
// 0 when total is 0.
func Percentage(part, total decimal.Decimal) decimal.Decimal {
	if total.IsZero() {
		return decimal.Zero
	}

	return part.Div(total).Mul(hundred).Round(2)
}

// CategoryTotal is the sum of the transactions of one category.
type CategoryTotal struct {
	Name  string          `json:"name" example:"Rent"`
	Total decimal.Decimal `json:"total" example:"1200"`
}

// composition groups entries by category name, ordered by total
// descending and name ascending. Entries without a category name are
// skipped.
func composition(entries []models.LedgerEntry) []CategoryTotal {
	totals := make(map[string]decimal.Decimal)
	for _, e := range entries {
		if e.CategoryName == "" {
			continue
		}
		totals[e.CategoryName] = totals[e.CategoryName].Add(e.Amount)
	}

	result := make([]CategoryTotal, 0, len(totals))
	for name, total := range totals {
		result = append(result, CategoryTotal{Name: name, Total: total})
	}

	slices.SortFunc(result, func(a, b CategoryTotal) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Name, b.Name)
	})

	return result
}

// Granularity is the width of a time series bucket.
type Granularity string

const (
	Weekly  Granularity = "week"
	Monthly Granularity = "month"
)

func (g Granularity) bucket(d types.Date) types.Date {
	if g == Monthly {
		return d.MonthStart()
	}
	return d.WeekStart()
}

func (g Granularity) label(d types.Date) string {
	if g == Monthly {
		return d.Time().Format("Jan")
	}
	return d.Time().Format("02/01")
}

// TimeSeries holds income and expenses per bucket. All slices have the
// same length.
type TimeSeries struct {
	Granularity Granularity       `json:"granularity" example:"week"`
	Labels      []string          `json:"labels"`
	Income      []decimal.Decimal `json:"income"`
	Expenses    []decimal.Decimal `json:"expenses"`
}

// timeSeries buckets the entries. Only buckets with at least one entry
// are present, buckets missing in one series are zero in it.
func timeSeries(entries []models.LedgerEntry, g Granularity) TimeSeries {
	income := make(map[time.Time]decimal.Decimal)
	expenses := make(map[time.Time]decimal.Decimal)

	var keys []types.Date
	seen := make(map[time.Time]bool)

	for _, e := range entries {
		key := g.bucket(e.Date)
		t := key.Time()

		if !seen[t] {
			seen[t] = true
			keys = append(keys, key)
		}

		switch e.CategoryType {
		case models.CategoryTypeIncome:
			income[t] = income[t].Add(e.Amount)
		case models.CategoryTypeExpense:
			expenses[t] = expenses[t].Add(e.Amount)
		}
	}

	slices.SortFunc(keys, func(a, b types.Date) int { return a.Time().Compare(b.Time()) })

	series := TimeSeries{
		Granularity: g,
		Labels:      make([]string, 0, len(keys)),
		Income:      make([]decimal.Decimal, 0, len(keys)),
		Expenses:    make([]decimal.Decimal, 0, len(keys)),
	}

	for _, k := range keys {
		series.Labels = append(series.Labels, g.label(k))
		series.Income = append(series.Income, income[k.Time()])
		series.Expenses = append(series.Expenses, expenses[k.Time()])
	}

	return series
}
