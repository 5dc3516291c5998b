package models

import (
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultAccountKind is the kind of accounts created without one.
const DefaultAccountKind = "Conta Corrente"

// Account is a place where money is kept, e.g. a bank account or a wallet.
type Account struct {
	DefaultModel
	UserID  uuid.UUID `gorm:"index"`
	User    User      `gorm:"constraint:OnDelete:CASCADE"`
	Name    string
	Kind    string
	Balance decimal.Decimal `gorm:"type:DECIMAL(12,2)"` // The opening balance
}

func (a *Account) BeforeSave(_ *gorm.DB) error {
	a.Name = strings.TrimSpace(a.Name)
	a.Kind = strings.TrimSpace(a.Kind)

	if a.Name == "" {
		return ErrAccountNameEmpty
	}

	if a.Kind == "" {
		a.Kind = DefaultAccountKind
	}

	if !ValidMoney(a.Balance) {
		return ErrAmountPrecision
	}

	return nil
}

// CurrentBalance returns the opening balance plus all income minus all
// expenses booked on the account, regardless of their date.
func (a Account) CurrentBalance(db *gorm.DB) (decimal.Decimal, error) {
	entries, err := Ledger(db, a.UserID, InAccount(a.ID))
	if err != nil {
		return decimal.Zero, err
	}

	return a.Balance.Add(Net(entries)), nil
}

// OpeningTotal returns the sum of the opening balances of all accounts
// of the user.
func OpeningTotal(db *gorm.DB, userID uuid.UUID) (decimal.Decimal, error) {
	var balances []decimal.Decimal
	err := db.Model(&Account{}).Where("user_id = ?", userID).Pluck("balance", &balances).Error
	if err != nil {
		return decimal.Zero, err
	}

	return decimal.Sum(decimal.Zero, balances...), nil
}
