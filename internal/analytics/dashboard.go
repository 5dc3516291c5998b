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

// Dashboard is the summary of a user's finances on a day.
type Dashboard struct {
	OpeningTotal       decimal.Decimal       `json:"openingTotal" example:"1000"`       // Sum of the opening balances of all accounts
	ActualBalance      decimal.Decimal       `json:"actualBalance" example:"1500"`      // Balance including all transactions until today
	ProjectedBalance   decimal.Decimal       `json:"projectedBalance" example:"1300"`   // Balance including all transactions
	MonthlyIncome      decimal.Decimal       `json:"monthlyIncome" example:"500"`       // Income of the current month until today
	MonthlyExpenses    decimal.Decimal       `json:"monthlyExpenses" example:"200"`     // All expenses of the current month, including future ones
	NetProfit          decimal.Decimal       `json:"netProfit" example:"500"`           // Income minus expenses of the current month until today
	NetProfitVariation decimal.Decimal       `json:"netProfitVariation" example:"12.5"` // Change of the net profit compared to the previous month, in percent
	ExpenseChart       Chart                 `json:"expenseChart"`                      // Expenses of the current month until today per category
	Upcoming           []UpcomingTransaction `json:"upcomingTransactions"`              // Transactions due today or later
}

// Chart is a labeled series of values.
type Chart struct {
	Labels []string          `json:"labels"`
	Data   []decimal.Decimal `json:"data"`
}

// UpcomingTransaction is a transaction due today or later.
type UpcomingTransaction struct {
	ID           uuid.UUID           `json:"id" example:"65392deb-5e92-4268-b114-297faad6cdce"`
	Description  string              `json:"description" example:"Rent"`
	Amount       decimal.Decimal     `json:"amount" example:"1200"`
	Date         types.Date          `json:"date" example:"2024-03-05"`
	Type         models.CategoryType `json:"type" example:"expense"`
	CategoryName string              `json:"categoryName" example:"Housing"`
	AccountName  string              `json:"accountName" example:"Checking"`
	Paid         bool                `json:"paid" example:"false"`
}

// Dashboard computes the dashboard for the user on the day today.
// A positive limit caps the number of upcoming transactions.
func (e Engine) Dashboard(ctx context.Context, userID uuid.UUID, today types.Date, limit int) (Dashboard, error) {
	var d Dashboard

	err := e.snapshot(ctx, func(tx *gorm.DB) error {
		opening, err := models.OpeningTotal(tx, userID)
		if err != nil {
			return err
		}

		past, err := models.Ledger(tx, userID, models.OnOrBefore(today))
		if err != nil {
			return err
		}

		future, err := models.Ledger(tx, userID, models.After(today))
		if err != nil {
			return err
		}

		upcoming, err := models.UpcomingTransactions(tx, userID, today, limit)
		if err != nil {
			return err
		}

		d = dashboard(opening, past, future, upcoming, today)
		return nil
	})
	if err != nil {
		return Dashboard{}, err
	}

	return d, nil
}

// dashboard computes the figures from the entries until today and the
// entries after today.
func dashboard(opening decimal.Decimal, past, future []models.LedgerEntry, upcoming []models.Upcoming, today types.Date) Dashboard {
	actual := opening.Add(models.Net(past))
	projected := actual.Add(models.Net(future))

	month := period.Resolve(string(period.ThisMonth), today)
	inMonth := func(e models.LedgerEntry) bool { return month.Contains(e.Date) }
	inPreviousMonth := func(e models.LedgerEntry) bool { return month.ContainsPrevious(e.Date) }

	monthToDate := models.Filter(past, inMonth)
	income, expensesToDate := models.Totals(monthToDate)
	_, futureExpenses := models.Totals(models.Filter(future, inMonth))
	monthlyExpenses := expensesToDate.Add(futureExpenses)
	net := income.Sub(expensesToDate)

	previous := models.Filter(past, inPreviousMonth)

	expenses := models.Filter(monthToDate, func(e models.LedgerEntry) bool { return e.CategoryType == models.CategoryTypeExpense })
	chart := Chart{Labels: []string{}, Data: []decimal.Decimal{}}
	for _, c := range composition(expenses) {
		chart.Labels = append(chart.Labels, c.Name)
		chart.Data = append(chart.Data, c.Total)
	}

	d := Dashboard{
		OpeningTotal:       opening,
		ActualBalance:      actual,
		ProjectedBalance:   projected,
		MonthlyIncome:      income,
		MonthlyExpenses:    monthlyExpenses,
		NetProfit:          net,
		NetProfitVariation: Variation(net, models.Net(previous)),
		ExpenseChart:       chart,
		Upcoming:           make([]UpcomingTransaction, 0, len(upcoming)),
	}

	for _, u := range upcoming {
		d.Upcoming = append(d.Upcoming, UpcomingTransaction(u))
	}

	return d
}
