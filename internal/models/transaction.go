package models

import (
	"strings"

	"github.com/easyfinances/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// RecurrenceInterval is the interval in which a recurring transaction repeats.
type RecurrenceInterval string

const RecurrenceMonthly RecurrenceInterval = "monthly"

// Transaction is a movement of money on an account. Its direction is
// the type of its category and never stored on the transaction itself.
type Transaction struct {
	DefaultModel
	UserID              uuid.UUID `gorm:"index"`
	User                User      `gorm:"constraint:OnDelete:CASCADE"`
	Description         string
	Amount              decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
	Date                types.Date      `gorm:"index"`
	CategoryID          uuid.UUID       `gorm:"index"`
	Category            Category        `gorm:"constraint:OnDelete:RESTRICT"`
	AccountID           uuid.UUID       `gorm:"index"`
	Account             Account         `gorm:"constraint:OnDelete:CASCADE"`
	Paid                bool
	IsRecurring         bool
	RecurrenceInterval  RecurrenceInterval
	RecurrenceEndDate   *types.Date
	ParentTransactionID *uuid.UUID
	ParentTransaction   *Transaction `gorm:"constraint:OnDelete:CASCADE"`
}

// BeforeSave validates the transaction and makes sure that all
// referenced resources belong to the same user.
func (t *Transaction) BeforeSave(tx *gorm.DB) error {
	t.Description = strings.TrimSpace(t.Description)

	if t.Description == "" {
		return ErrTransactionDescriptionEmpty
	}

	if t.Amount.IsNegative() {
		return ErrTransactionAmountNegative
	}

	if !ValidMoney(t.Amount) {
		return ErrAmountPrecision
	}

	if t.Date.IsZero() {
		t.Date = types.Today()
	}

	if t.IsRecurring {
		if t.RecurrenceInterval == "" {
			t.RecurrenceInterval = RecurrenceMonthly
		}

		if t.RecurrenceInterval != RecurrenceMonthly {
			return ErrRecurrenceIntervalInvalid
		}

		if t.RecurrenceEndDate != nil && t.RecurrenceEndDate.IsZero() {
			t.RecurrenceEndDate = nil
		}

		if t.RecurrenceEndDate != nil && t.RecurrenceEndDate.Before(t.Date) {
			return ErrRecurrenceEndBeforeDate
		}
	} else {
		t.RecurrenceInterval = ""
		t.RecurrenceEndDate = nil
	}

	// A pointer to a nil UUID means "no parent"
	if t.ParentTransactionID != nil && *t.ParentTransactionID == uuid.Nil {
		t.ParentTransactionID = nil
	}

	if t.CategoryID == uuid.Nil {
		return ErrTransactionCategoryMissing
	}

	if err := ownedBy(tx, &Category{}, t.CategoryID, t.UserID, ErrTransactionCategoryInvalid); err != nil {
		return err
	}

	if t.AccountID == uuid.Nil {
		return ErrTransactionAccountMissing
	}

	if err := ownedBy(tx, &Account{}, t.AccountID, t.UserID, ErrTransactionAccountInvalid); err != nil {
		return err
	}

	if t.ParentTransactionID != nil {
		if *t.ParentTransactionID == t.ID {
			return ErrTransactionParentInvalid
		}

		if err := ownedBy(tx, &Transaction{}, *t.ParentTransactionID, t.UserID, ErrTransactionParentInvalid); err != nil {
			return err
		}
	}

	return nil
}

// ownedBy verifies that the resource with the id exists and belongs to the user.
// If it does not, errNotFound is returned.
func ownedBy(tx *gorm.DB, model any, id, userID uuid.UUID, errNotFound error) error {
	var count int64
	err := tx.Model(model).Where("id = ? AND user_id = ?", id, userID).Count(&count).Error
	if err != nil {
		return err
	}

	if count == 0 {
		return errNotFound
	}

	return nil
}
