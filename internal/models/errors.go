package models

import (
	"errors"
)

var (
	ErrGeneral          = errors.New("an error occurred on the server during your request")
	ErrResourceNotFound = errors.New("there is no")
	ErrReferenceInvalid = errors.New("a resource ID you specified does not identify an existing resource")
	ErrAmountPrecision  = errors.New("amounts must not have more than 2 decimal places")
)

// Account errors
var ErrAccountNameEmpty = errors.New("the account name must not be empty")

// Category errors
var (
	ErrCategoryInUse         = errors.New("the category is referenced by transactions or goals and cannot be deleted or change its type")
	ErrCategoryNameEmpty     = errors.New("the category name must not be empty")
	ErrCategoryNameNotUnique = errors.New("you already have a category with this name")
	ErrCategoryTypeInvalid   = errors.New("the category type must be one of 'income' or 'expense'")
)

// Transaction errors
var (
	ErrTransactionDescriptionEmpty = errors.New("the transaction description must not be empty")
	ErrTransactionAmountNegative   = errors.New("the transaction amount must not be negative")
	ErrTransactionCategoryMissing  = errors.New("a transaction needs a category")
	ErrTransactionCategoryInvalid  = errors.New("the category of the transaction does not exist")
	ErrTransactionAccountMissing   = errors.New("a transaction needs an account")
	ErrTransactionAccountInvalid   = errors.New("the account of the transaction does not exist")
	ErrTransactionParentInvalid    = errors.New("the parent transaction does not exist")
	ErrRecurrenceIntervalInvalid   = errors.New("the only supported recurrence interval is 'monthly'")
	ErrRecurrenceEndBeforeDate     = errors.New("the recurrence end date must not be before the transaction date")
)

// Budget goal errors
var (
	ErrGoalTypeInvalid           = errors.New("the goal type must be one of 'spending_limit' or 'saving_goal'")
	ErrGoalTargetNotPositive     = errors.New("the goal target amount must be positive")
	ErrGoalCurrentAmountNegative = errors.New("the current amount of a saving goal must not be negative")
	ErrGoalDatesMissing          = errors.New("a goal needs a start and an end date")
	ErrGoalEndBeforeStart        = errors.New("the goal end date must not be before its start date")
	ErrGoalCategoryMissing       = errors.New("a spending limit needs a category")
	ErrGoalCategoryNotExpense    = errors.New("the goal category must be one of your expense categories")
	ErrGoalNotSaving             = errors.New("progress can only be added to saving goals")
	ErrProgressNotPositive       = errors.New("the progress amount must be a positive number")
)
