package models_test

import (
	"github.com/easyfinances/backend/internal/models"
	"github.com/easyfinances/backend/internal/types"
	"github.com/google/uuid"
)

func (suite *TestSuiteStandard) TestTransactionValidation() {
	user := suite.createTestUser()
	other := suite.createTestUser()

	account := suite.createTestAccount(user.ID, "0")
	category := suite.createTestCategory(user.ID, "Salary", models.CategoryTypeIncome)
	foreignAccount := suite.createTestAccount(other.ID, "0")
	foreignCategory := suite.createTestCategory(other.ID, "Salary", models.CategoryTypeIncome)

	unknown := uuid.New()
	date := types.NewDate(2024, 3, 15)
	before := date.AddDays(-1)

	tests := []struct {
		name   string
		modify func(*models.Transaction)
		err    error
	}{
		{"Empty description", func(t *models.Transaction) { t.Description = " " }, models.ErrTransactionDescriptionEmpty},
		{"Negative amount", func(t *models.Transaction) { t.Amount = decimalFromString("-0.01") }, models.ErrTransactionAmountNegative},
		{"Sub-cent amount", func(t *models.Transaction) { t.Amount = decimalFromString("0.004") }, models.ErrAmountPrecision},
		{"No category", func(t *models.Transaction) { t.CategoryID = uuid.Nil }, models.ErrTransactionCategoryMissing},
		{"Foreign category", func(t *models.Transaction) { t.CategoryID = foreignCategory.ID }, models.ErrTransactionCategoryInvalid},
		{"No account", func(t *models.Transaction) { t.AccountID = uuid.Nil }, models.ErrTransactionAccountMissing},
		{"Foreign account", func(t *models.Transaction) { t.AccountID = foreignAccount.ID }, models.ErrTransactionAccountInvalid},
		{"Unknown parent", func(t *models.Transaction) { t.ParentTransactionID = &unknown }, models.ErrTransactionParentInvalid},
		{"Weekly recurrence", func(t *models.Transaction) {
			t.IsRecurring = true
			t.RecurrenceInterval = "weekly"
		}, models.ErrRecurrenceIntervalInvalid},
		{"Recurrence ends before date", func(t *models.Transaction) {
			t.IsRecurring = true
			t.RecurrenceEndDate = &before
		}, models.ErrRecurrenceEndBeforeDate},
	}

	for _, tt := range tests {
		suite.Run(tt.name, func() {
			transaction := models.Transaction{
				UserID:      user.ID,
				Description: "Paycheck",
				Amount:      decimalFromString("100"),
				Date:        date,
				CategoryID:  category.ID,
				AccountID:   account.ID,
			}
			tt.modify(&transaction)

			err := models.DB.Create(&transaction).Error
			suite.Assert().ErrorIs(err, tt.err)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionRecurrence() {
	user := suite.createTestUser()
	account := suite.createTestAccount(user.ID, "0")
	category := suite.createTestCategory(user.ID, "Rent", models.CategoryTypeExpense)

	end := types.NewDate(2024, 12, 31)
	parent := models.Transaction{
		UserID:            user.ID,
		Description:       "Rent",
		Amount:            decimalFromString("1200"),
		Date:              types.NewDate(2024, 1, 5),
		CategoryID:        category.ID,
		AccountID:         account.ID,
		IsRecurring:       true,
		RecurrenceEndDate: &end,
	}
	suite.Require().Nil(models.DB.Create(&parent).Error)
	suite.Assert().Equal(models.RecurrenceMonthly, parent.RecurrenceInterval, "Interval defaults to monthly")

	child := models.Transaction{
		UserID:              user.ID,
		Description:         "Rent",
		Amount:              decimalFromString("1200"),
		Date:                types.NewDate(2024, 2, 5),
		CategoryID:          category.ID,
		AccountID:           account.ID,
		ParentTransactionID: &parent.ID,
	}
	suite.Require().Nil(models.DB.Create(&child).Error)

	var stored models.Transaction
	suite.Require().Nil(models.DB.First(&stored, "id = ?", parent.ID).Error)
	suite.Assert().Equal("2024-12-31", stored.RecurrenceEndDate.String())
	suite.Assert().Equal("2024-01-05", stored.Date.String())

	// Deleting the parent deletes the children
	suite.Require().Nil(models.DB.Delete(&parent).Error)
	err := models.DB.First(&models.Transaction{}, "id = ?", child.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)
}

func (suite *TestSuiteStandard) TestTransactionNotRecurringClearsRecurrence() {
	user := suite.createTestUser()
	account := suite.createTestAccount(user.ID, "0")
	category := suite.createTestCategory(user.ID, "Rent", models.CategoryTypeExpense)

	end := types.NewDate(2024, 12, 31)
	transaction := models.Transaction{
		UserID:             user.ID,
		Description:        "Rent",
		Amount:             decimalFromString("1200"),
		Date:               types.NewDate(2024, 1, 5),
		CategoryID:         category.ID,
		AccountID:          account.ID,
		RecurrenceInterval: models.RecurrenceMonthly,
		RecurrenceEndDate:  &end,
	}
	suite.Require().Nil(models.DB.Create(&transaction).Error)

	suite.Assert().Empty(transaction.RecurrenceInterval)
	suite.Assert().Nil(transaction.RecurrenceEndDate)
}

func (suite *TestSuiteStandard) TestTransactionDateDefaultsToToday() {
	user := suite.createTestUser()
	account := suite.createTestAccount(user.ID, "0")
	category := suite.createTestCategory(user.ID, "Rent", models.CategoryTypeExpense)

	transaction := suite.createTestTransaction(category, account, "1", types.Date{})
	suite.Assert().Equal(types.Today(), transaction.Date)
}
