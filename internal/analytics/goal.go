package analytics

import (
	"context"
	"fmt"

	"github.com/easyfinances/backend/internal/models"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GoalProgress is the evaluated state of a budget goal.
//
// Exceeded is only set for spending limits, Reached only for saving goals.
type GoalProgress struct {
	Progress   decimal.Decimal `json:"progress" example:"120"`  // Expenses in the goal period for spending limits, the saved amount for saving goals
	Remaining  decimal.Decimal `json:"remaining" example:"180"` // Amount left until the target, never negative
	Percentage decimal.Decimal `json:"percentage" example:"40"` // Progress in percent of the target
	Exceeded   *bool           `json:"exceeded,omitempty"`      // Spending limits: progress is more than the target
	Reached    *bool           `json:"reached,omitempty"`       // Saving goals: progress is at least the target
}

// EvaluateGoal computes the progress of a goal.
func (e Engine) EvaluateGoal(ctx context.Context, goal models.BudgetGoal) (GoalProgress, error) {
	var progress GoalProgress

	err := e.snapshot(ctx, func(tx *gorm.DB) (err error) {
		progress, err = evaluate(tx, goal)
		return err
	})
	if err != nil {
		return GoalProgress{}, err
	}

	return progress, nil
}

// EvaluateGoals computes the progress of all goals on the same snapshot.
// The result is in the order of the goals.
func (e Engine) EvaluateGoals(ctx context.Context, goals []models.BudgetGoal) ([]GoalProgress, error) {
	progress := make([]GoalProgress, 0, len(goals))

	err := e.snapshot(ctx, func(tx *gorm.DB) error {
		for _, goal := range goals {
			p, err := evaluate(tx, goal)
			if err != nil {
				return err
			}
			progress = append(progress, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return progress, nil
}

func evaluate(tx *gorm.DB, goal models.BudgetGoal) (GoalProgress, error) {
	switch goal.GoalType {
	case models.GoalTypeSpendingLimit:
		if goal.CategoryID == nil {
			return GoalProgress{}, models.ErrGoalCategoryMissing
		}

		entries, err := models.Ledger(tx, goal.UserID,
			models.InCategory(*goal.CategoryID),
			models.Between(goal.StartDate, goal.EndDate),
		)
		if err != nil {
			return GoalProgress{}, err
		}

		p := newProgress(models.Sum(entries), goal.TargetAmount)
		exceeded := p.Progress.GreaterThan(goal.TargetAmount)
		p.Exceeded = &exceeded
		return p, nil

	case models.GoalTypeSavingGoal:
		p := newProgress(goal.CurrentAmount, goal.TargetAmount)
		reached := p.Progress.GreaterThanOrEqual(goal.TargetAmount)
		p.Reached = &reached
		return p, nil
	}

	return GoalProgress{}, fmt.Errorf("%w: %s", models.ErrGoalTypeInvalid, goal.GoalType)
}

func newProgress(progress, target decimal.Decimal) GoalProgress {
	remaining := target.Sub(progress)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}

	return GoalProgress{
		Progress:   progress,
		Remaining:  remaining,
		Percentage: Percentage(progress, target),
	}
}

// AddProgress adds the amount to the current amount of a saving goal of
// the user and returns the updated goal.
//
// The goal row is locked for the read-modify-write. SQLite ignores the
// lock as it serializes all writers.
func (e Engine) AddProgress(ctx context.Context, userID, goalID uuid.UUID, amount string) (models.BudgetGoal, error) {
	a, err := decimal.NewFromString(amount)
	if err != nil || !a.IsPositive() {
		return models.BudgetGoal{}, models.ErrProgressNotPositive
	}

	if !models.ValidMoney(a) {
		return models.BudgetGoal{}, models.ErrAmountPrecision
	}

	var goal models.BudgetGoal
	err = models.RunInTransaction(e.db.WithContext(ctx), func(tx *gorm.DB) error {
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ? AND user_id = ?", goalID, userID).
			First(&goal).Error
		if err != nil {
			return err
		}

		if goal.GoalType != models.GoalTypeSavingGoal {
			return models.ErrGoalNotSaving
		}

		goal.CurrentAmount = goal.CurrentAmount.Add(a)
		return tx.Omit(clause.Associations).Save(&goal).Error
	})
	if err != nil {
		return models.BudgetGoal{}, err
	}

	return goal, nil
}
