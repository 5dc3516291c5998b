package models_test

import (
	"github.com/easyfinances/backend/internal/models"
	"github.com/easyfinances/backend/internal/types"
)

func (suite *TestSuiteStandard) TestAccountDefaults() {
	user := suite.createTestUser()

	account := models.Account{UserID: user.ID, Name: "  Nubank "}
	suite.Require().Nil(models.DB.Create(&account).Error)

	suite.Assert().Equal("Nubank", account.Name)
	suite.Assert().Equal(models.DefaultAccountKind, account.Kind)
	suite.Assert().True(account.Balance.IsZero())

	err := models.DB.Create(&models.Account{UserID: user.ID}).Error
	suite.Assert().ErrorIs(err, models.ErrAccountNameEmpty)

	err = models.DB.Create(&models.Account{UserID: user.ID, Name: "Wallet", Balance: decimalFromString("12.345")}).Error
	suite.Assert().ErrorIs(err, models.ErrAmountPrecision)

	// Trailing zeros are no extra precision
	account = models.Account{UserID: user.ID, Name: "Wallet", Balance: decimalFromString("12.340")}
	suite.Assert().Nil(models.DB.Create(&account).Error)
}

func (suite *TestSuiteStandard) TestAccountCurrentBalance() {
	user := suite.createTestUser()
	account := suite.createTestAccount(user.ID, "1000")
	other := suite.createTestAccount(user.ID, "50")
	income := suite.createTestCategory(user.ID, "Salary", models.CategoryTypeIncome)
	expense := suite.createTestCategory(user.ID, "Rent", models.CategoryTypeExpense)

	suite.createTestTransaction(income, account, "500", types.NewDate(2024, 3, 1))
	suite.createTestTransaction(expense, account, "200.25", types.NewDate(2099, 1, 1))
	suite.createTestTransaction(expense, other, "10", types.NewDate(2024, 3, 1))

	balance, err := account.CurrentBalance(models.DB)
	suite.Require().Nil(err)
	suite.Assert().True(decimalFromString("1299.75").Equal(balance), "Balance is %s", balance)

	total, err := models.OpeningTotal(models.DB, user.ID)
	suite.Require().Nil(err)
	suite.Assert().True(decimalFromString("1050").Equal(total), "Total is %s", total)
}

func (suite *TestSuiteStandard) TestAccountDeleteCascades() {
	user := suite.createTestUser()
	account := suite.createTestAccount(user.ID, "0")
	category := suite.createTestCategory(user.ID, "Salary", models.CategoryTypeIncome)
	transaction := suite.createTestTransaction(category, account, "1", types.NewDate(2024, 3, 1))

	suite.Require().Nil(models.DB.Delete(&account).Error)

	err := models.DB.First(&models.Transaction{}, "id = ?", transaction.ID).Error
	suite.Assert().ErrorIs(err, models.ErrResourceNotFound)

	// The category is free now
	suite.Assert().Nil(models.DB.Delete(&category).Error)
}
