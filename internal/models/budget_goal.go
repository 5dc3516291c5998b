package models

import (
	"errors"
	"strings"

	"github.com/easyfinances/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GoalType selects how the progress of a budget goal is determined.
type GoalType string

const (
	// GoalTypeSpendingLimit goals track expenses in a category against a limit.
	// Their progress is always computed from the ledger.
	GoalTypeSpendingLimit GoalType = "spending_limit"

	// GoalTypeSavingGoal goals track money put aside. Their progress is
	// the stored current amount.
	GoalTypeSavingGoal GoalType = "saving_goal"
)

type BudgetGoal struct {
	DefaultModel
	UserID        uuid.UUID `gorm:"index"`
	User          User      `gorm:"constraint:OnDelete:CASCADE"`
	Name          string
	GoalType      GoalType
	TargetAmount  decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
	CurrentAmount decimal.Decimal `gorm:"type:DECIMAL(12,2)"`
	CategoryID    *uuid.UUID      `gorm:"index"`
	Category      *Category       `gorm:"constraint:OnDelete:RESTRICT"`
	StartDate     types.Date
	EndDate       types.Date
}

func (g *BudgetGoal) BeforeSave(tx *gorm.DB) error {
	g.Name = strings.TrimSpace(g.Name)

	if g.GoalType != GoalTypeSpendingLimit && g.GoalType != GoalTypeSavingGoal {
		return ErrGoalTypeInvalid
	}

	if !g.TargetAmount.IsPositive() {
		return ErrGoalTargetNotPositive
	}

	if !ValidMoney(g.TargetAmount, g.CurrentAmount) {
		return ErrAmountPrecision
	}

	if g.StartDate.IsZero() || g.EndDate.IsZero() {
		return ErrGoalDatesMissing
	}

	if g.EndDate.Before(g.StartDate) {
		return ErrGoalEndBeforeStart
	}

	if g.CategoryID != nil && *g.CategoryID == uuid.Nil {
		g.CategoryID = nil
	}

	switch g.GoalType {
	case GoalTypeSpendingLimit:
		if g.CategoryID == nil {
			return ErrGoalCategoryMissing
		}

		// Progress of spending limits is computed, never stored
		g.CurrentAmount = decimal.Zero
	case GoalTypeSavingGoal:
		if g.CurrentAmount.IsNegative() {
			return ErrGoalCurrentAmountNegative
		}
	}

	if g.CategoryID == nil {
		return nil
	}

	var category Category
	err := tx.Where("id = ? AND user_id = ?", *g.CategoryID, g.UserID).First(&category).Error
	if errors.Is(err, ErrResourceNotFound) {
		return ErrGoalCategoryNotExpense
	} else if err != nil {
		return err
	}

	if category.Type != CategoryTypeExpense {
		return ErrGoalCategoryNotExpense
	}

	return nil
}
