package analytics_test

import (
	"context"

	"github.com/easyfinances/backend/internal/models"
	"github.com/easyfinances/backend/internal/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var today = types.NewDate(2024, 3, 15)

func (suite *TestSuiteStandard) TestDashboardEmpty() {
	suite.createTestAccount("1000")
	suite.createTestAccount("250.50")

	d, err := suite.engine.Dashboard(context.Background(), suite.user.ID, today, 0)
	suite.Require().Nil(err)

	suite.assertDecimal("1250.50", d.OpeningTotal)
	suite.assertDecimal("1250.50", d.ActualBalance)
	suite.assertDecimal("1250.50", d.ProjectedBalance)
	suite.assertDecimal("0", d.NetProfit)
	suite.assertDecimal("0", d.NetProfitVariation)
	suite.Assert().Len(d.ExpenseChart.Labels, 0)
	suite.Assert().NotNil(d.ExpenseChart.Data)
	suite.Assert().Len(d.Upcoming, 0)
}

func (suite *TestSuiteStandard) TestDashboard() {
	account := suite.createTestAccount("1000")
	salary := suite.createTestCategory("Salary", models.CategoryTypeIncome)
	rent := suite.createTestCategory("Rent", models.CategoryTypeExpense)
	food := suite.createTestCategory("Food", models.CategoryTypeExpense)

	suite.createTestTransaction(salary, account, "Salary", "500", today)
	suite.createTestTransaction(rent, account, "Rent", "200", today.AddDays(1))
	suite.createTestTransaction(food, account, "Groceries", "40", today.AddDays(-3))
	suite.createTestTransaction(rent, account, "Rent", "50", types.NewDate(2024, 4, 2))

	// Previous month
	suite.createTestTransaction(salary, account, "Salary", "400", types.NewDate(2024, 2, 15))
	suite.createTestTransaction(food, account, "Groceries", "200", types.NewDate(2024, 2, 20))

	d, err := suite.engine.Dashboard(context.Background(), suite.user.ID, today, 0)
	suite.Require().Nil(err)

	suite.assertDecimal("1000", d.OpeningTotal)
	suite.assertDecimal("1660", d.ActualBalance, "opening + 900 income - 240 expenses until today")
	suite.assertDecimal("1410", d.ProjectedBalance, "actual - 200 for tomorrow's rent - 50 in April")
	suite.assertDecimal("500", d.MonthlyIncome)
	suite.assertDecimal("240", d.MonthlyExpenses, "monthly expenses include future ones of this month only")
	suite.assertDecimal("460", d.NetProfit)
	suite.assertDecimal("130", d.NetProfitVariation, "(460 - 200) / 200")

	suite.Assert().Equal([]string{"Food"}, d.ExpenseChart.Labels)
	suite.Require().Len(d.ExpenseChart.Data, 1)
	suite.assertDecimal("40", d.ExpenseChart.Data[0])

	suite.Require().Len(d.Upcoming, 3)
	suite.Assert().Equal("Salary", d.Upcoming[0].Description)
	suite.Assert().Equal(models.CategoryTypeIncome, d.Upcoming[0].Type)
	suite.Assert().Equal("Rent", d.Upcoming[1].Description)
	suite.Assert().Equal("Rent", d.Upcoming[1].CategoryName)
	suite.Assert().Equal("Checking", d.Upcoming[1].AccountName)
}

func (suite *TestSuiteStandard) TestDashboardUpcomingLimit() {
	account := suite.createTestAccount("0")
	rent := suite.createTestCategory("Rent", models.CategoryTypeExpense)

	for i := 0; i < 6; i++ {
		suite.createTestTransaction(rent, account, "Rent", "10", today.AddDays(i))
	}

	d, err := suite.engine.Dashboard(context.Background(), suite.user.ID, today, 4)
	suite.Require().Nil(err)
	suite.Require().Len(d.Upcoming, 4)
	suite.Assert().True(d.Upcoming[0].Date.Equal(today))
	suite.Assert().True(d.Upcoming[3].Date.Equal(today.AddDays(3)))
}

func (suite *TestSuiteStandard) TestDashboardIgnoresOtherUsers() {
	suite.createTestAccount("100")

	other, err := models.ProvisionUser(models.DB, uuid.New(), "other")
	suite.Require().Nil(err)

	category := models.Category{UserID: other.ID, Name: "Salary", Type: models.CategoryTypeIncome}
	suite.Require().Nil(models.DB.Create(&category).Error)
	otherAccount := models.Account{UserID: other.ID, Name: "Savings"}
	suite.Require().Nil(models.DB.Create(&otherAccount).Error)
	suite.Require().Nil(models.DB.Create(&models.Transaction{
		UserID:      other.ID,
		Description: "Salary",
		Amount:      decimal.NewFromInt(999),
		Date:        today,
		CategoryID:  category.ID,
		AccountID:   otherAccount.ID,
	}).Error)

	d, err := suite.engine.Dashboard(context.Background(), suite.user.ID, today, 0)
	suite.Require().Nil(err)
	suite.assertDecimal("100", d.ActualBalance)
	suite.Assert().Len(d.Upcoming, 0)
}

func (suite *TestSuiteStandard) TestDashboardDBError() {
	suite.CloseDB()

	_, err := suite.engine.Dashboard(context.Background(), suite.user.ID, today, 0)
	suite.Assert().ErrorIs(err, models.ErrGeneral)
}
