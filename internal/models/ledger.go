package models

import (
	"github.com/easyfinances/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// LedgerEntry is a transaction reduced to the values needed for
// aggregations.
type LedgerEntry struct {
	CategoryID   uuid.UUID
	Amount       decimal.Decimal
	Date         types.Date
	CategoryName string
	CategoryType CategoryType
}

// Scope restricts the ledger entries returned by Ledger.
type Scope func(*gorm.DB) *gorm.DB

// Ledger returns the ledger entries of the user matching all scopes,
// ordered by date.
//
// Amounts are summed in Go so that no value passes through a floating
// point representation of the database.
func Ledger(db *gorm.DB, userID uuid.UUID, scopes ...Scope) ([]LedgerEntry, error) {
	q := db.Table("transactions").
		Select("transactions.category_id AS category_id, transactions.amount AS amount, transactions.date AS date, categories.name AS category_name, categories.type AS category_type").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Where("transactions.user_id = ?", userID)

	for _, s := range scopes {
		q = s(q)
	}

	var entries []LedgerEntry
	err := q.Order("transactions.date ASC").Find(&entries).Error
	if err != nil {
		return nil, err
	}

	return entries, nil
}

// Between selects entries dated from start to end, both inclusive.
func Between(start, end types.Date) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("transactions.date >= ? AND transactions.date <= ?", start, end)
	}
}

// OnOrBefore selects entries dated on or before the date.
func OnOrBefore(date types.Date) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("transactions.date <= ?", date)
	}
}

// After selects entries dated after the date.
func After(date types.Date) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("transactions.date > ?", date)
	}
}

// OfType selects entries whose category is of the type.
func OfType(t CategoryType) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("categories.type = ?", t)
	}
}

// InCategory selects entries of one category.
func InCategory(id uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("transactions.category_id = ?", id)
	}
}

// InAccount selects entries of one account.
func InAccount(id uuid.UUID) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("transactions.account_id = ?", id)
	}
}

// Sum returns the sum of the amounts of all entries.
func Sum(entries []LedgerEntry) decimal.Decimal {
	sum := decimal.Zero
	for _, e := range entries {
		sum = sum.Add(e.Amount)
	}
	return sum
}

// Totals returns the income and expense sums of the entries.
func Totals(entries []LedgerEntry) (income, expenses decimal.Decimal) {
	income, expenses = decimal.Zero, decimal.Zero
	for _, e := range entries {
		switch e.CategoryType {
		case CategoryTypeIncome:
			income = income.Add(e.Amount)
		case CategoryTypeExpense:
			expenses = expenses.Add(e.Amount)
		}
	}
	return income, expenses
}

// Net returns income minus expenses of the entries.
func Net(entries []LedgerEntry) decimal.Decimal {
	income, expenses := Totals(entries)
	return income.Sub(expenses)
}

// Filter returns the entries for which keep returns true.
func Filter(entries []LedgerEntry, keep func(LedgerEntry) bool) []LedgerEntry {
	var kept []LedgerEntry
	for _, e := range entries {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	return kept
}

// Upcoming is a transaction due on or after a date, with the names of
// its category and account.
type Upcoming struct {
	ID           uuid.UUID
	Description  string
	Amount       decimal.Decimal
	Date         types.Date
	Type         CategoryType
	CategoryName string
	AccountName  string
	Paid         bool
}

// UpcomingTransactions returns the transactions of the user dated on or
// after the date, earliest first. A positive limit caps the number of
// transactions returned.
func UpcomingTransactions(db *gorm.DB, userID uuid.UUID, from types.Date, limit int) ([]Upcoming, error) {
	q := db.Table("transactions").
		Select("transactions.id AS id, transactions.description AS description, transactions.amount AS amount, transactions.date AS date, categories.type AS type, categories.name AS category_name, accounts.name AS account_name, transactions.paid AS paid").
		Joins("JOIN categories ON categories.id = transactions.category_id").
		Joins("JOIN accounts ON accounts.id = transactions.account_id").
		Where("transactions.user_id = ?", userID).
		Where("transactions.date >= ?", from).
		Order("transactions.date ASC, transactions.description ASC")

	if limit > 0 {
		q = q.Limit(limit)
	}

	var upcoming []Upcoming
	err := q.Find(&upcoming).Error
	if err != nil {
		return nil, err
	}

	return upcoming, nil
}
