package analytics

import (
	"context"

	"github.com/easyfinances/backend/internal/models"
	"github.com/easyfinances/backend/internal/period"
	"github.com/easyfinances/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Period echoes the resolved period of an aggregation.
type Period struct {
	Token     period.Token `json:"token" example:"this_month"`
	Start     types.Date   `json:"start" example:"2024-03-01"`
	End       types.Date   `json:"end" example:"2024-03-31"`
	PrevStart types.Date   `json:"previousStart" example:"2024-02-01"`
	PrevEnd   types.Date   `json:"previousEnd" example:"2024-02-29"`
}

func newPeriod(r period.Range) Period {
	return Period(r)
}

// KPIs are the key figures of a period.
type KPIs struct {
	Income              decimal.Decimal `json:"income" example:"3000"`
	Expenses            decimal.Decimal `json:"expenses" example:"1245.30"`
	IncomeCount         int             `json:"incomeCount" example:"1"`
	ExpenseCount        int             `json:"expenseCount" example:"12"`
	NetProfit           decimal.Decimal `json:"netProfit" example:"1754.70"`
	AverageDailyExpense decimal.Decimal `json:"averageDailyExpense" example:"83.02"` // Expenses until today divided by the elapsed days of the period
	TopExpenseCategory  *CategoryTotal  `json:"topExpenseCategory"`                  // The category with the highest expenses, null without expenses
}

// Comparison compares a period to the previous one.
type Comparison struct {
	PreviousIncome   decimal.Decimal `json:"previousIncome" example:"2800"`
	PreviousExpenses decimal.Decimal `json:"previousExpenses" example:"1400"`
	IncomeVariation  decimal.Decimal `json:"incomeVariation" example:"7.14"`
	ExpenseVariation decimal.Decimal `json:"expenseVariation" example:"-11.05"`
}

// Analytics are the aggregations of a period.
type Analytics struct {
	Period             Period          `json:"period"`
	KPIs               KPIs            `json:"kpis"`
	IncomeComposition  []CategoryTotal `json:"incomeComposition"`
	ExpenseComposition []CategoryTotal `json:"expenseComposition"`
	Comparison         Comparison      `json:"comparison"`
	TimeSeries         TimeSeries      `json:"timeSeries"`
}

// PeriodAnalytics computes the analytics of the period named by the token,
// relative to today.
func (e Engine) PeriodAnalytics(ctx context.Context, userID uuid.UUID, token string, today types.Date) (Analytics, error) {
	r := period.Resolve(token, today)

	var current, previous []models.LedgerEntry
	err := e.snapshot(ctx, func(tx *gorm.DB) (err error) {
		current, err = models.Ledger(tx, userID, models.Between(r.Start, r.End))
		if err != nil {
			return err
		}

		previous, err = models.Ledger(tx, userID, models.Between(r.PrevStart, r.PrevEnd))
		return err
	})
	if err != nil {
		return Analytics{}, err
	}

	return periodAnalytics(r, current, previous, today), nil
}

func periodAnalytics(r period.Range, current, previous []models.LedgerEntry, today types.Date) Analytics {
	incomeEntries := models.Filter(current, func(e models.LedgerEntry) bool { return e.CategoryType == models.CategoryTypeIncome })
	expenseEntries := models.Filter(current, func(e models.LedgerEntry) bool { return e.CategoryType == models.CategoryTypeExpense })

	income, expenses := models.Sum(incomeEntries), models.Sum(expenseEntries)
	prevIncome, prevExpenses := models.Totals(previous)

	expenseComposition := composition(expenseEntries)

	kpis := KPIs{
		Income:              income,
		Expenses:            expenses,
		IncomeCount:         len(incomeEntries),
		ExpenseCount:        len(expenseEntries),
		NetProfit:           income.Sub(expenses),
		AverageDailyExpense: averageDailyExpense(r, expenseEntries, today),
	}

	if len(expenseComposition) > 0 {
		top := expenseComposition[0]
		kpis.TopExpenseCategory = &top
	}

	granularity := Weekly
	if r.Token == period.ThisYear {
		granularity = Monthly
	}

	return Analytics{
		Period:             newPeriod(r),
		KPIs:               kpis,
		IncomeComposition:  composition(incomeEntries),
		ExpenseComposition: expenseComposition,
		Comparison: Comparison{
			PreviousIncome:   prevIncome,
			PreviousExpenses: prevExpenses,
			IncomeVariation:  Variation(income, prevIncome),
			ExpenseVariation: Variation(expenses, prevExpenses),
		},
		TimeSeries: timeSeries(current, granularity),
	}
}

// averageDailyExpense divides the expenses from the start of the period
// until today, or its end if that is earlier, by the number of days elapsed.
func averageDailyExpense(r period.Range, expenses []models.LedgerEntry, today types.Date) decimal.Decimal {
	until := types.MinDate(r.End, today)

	elapsed := r.Start.DaysUntil(until) + 1
	if elapsed < 1 {
		elapsed = 1
	}

	sum := models.Sum(models.Filter(expenses, func(e models.LedgerEntry) bool { return !e.Date.After(until) }))
	return sum.Div(decimal.NewFromInt(int64(elapsed))).Round(2)
}

// CategoryDetail is the total of one category in a period and its share
// of all totals of the same type.
type CategoryDetail struct {
	ID         uuid.UUID           `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Name       string              `json:"name" example:"Rent"`
	Type       models.CategoryType `json:"type" example:"expense"`
	Period     Period              `json:"period"`
	Income     decimal.Decimal     `json:"income" example:"0"`
	Expenses   decimal.Decimal     `json:"expenses" example:"300"`
	Percentage decimal.Decimal     `json:"percentage" example:"25"` // Share of the category in all income or expenses of the period
}

// CategoryDetail computes the detail of the category with the name in the
// period named by the token, relative to today.
func (e Engine) CategoryDetail(ctx context.Context, userID uuid.UUID, name, token string, today types.Date) (CategoryDetail, error) {
	r := period.Resolve(token, today)

	var category models.Category
	var entries []models.LedgerEntry

	err := e.snapshot(ctx, func(tx *gorm.DB) (err error) {
		category, err = models.FindCategoryByName(tx, userID, name)
		if err != nil {
			return err
		}

		entries, err = models.Ledger(tx, userID, models.Between(r.Start, r.End), models.OfType(category.Type))
		return err
	})
	if err != nil {
		return CategoryDetail{}, err
	}

	total := models.Sum(models.Filter(entries, func(e models.LedgerEntry) bool { return e.CategoryID == category.ID }))

	detail := CategoryDetail{
		ID:         category.ID,
		Name:       category.Name,
		Type:       category.Type,
		Period:     newPeriod(r),
		Income:     decimal.Zero,
		Expenses:   decimal.Zero,
		Percentage: Percentage(total, models.Sum(entries)),
	}

	if category.Type == models.CategoryTypeIncome {
		detail.Income = total
	} else {
		detail.Expenses = total
	}

	return detail, nil
}
