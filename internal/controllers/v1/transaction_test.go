package v1_test

import (
	"fmt"
	"net/http"
	"testing"

	v1 "github.com/easyfinances/backend/internal/controllers/v1"
	"github.com/easyfinances/backend/internal/models"
	"github.com/easyfinances/backend/internal/types"
	"github.com/easyfinances/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func (suite *TestSuiteStandard) TestTransactionsCreate() {
	account := suite.createTestAccount(v1.AccountEditable{Name: "Wallet"})
	category := suite.createTestCategory(v1.CategoryEditable{Name: "Rent", Type: models.CategoryTypeExpense})

	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/transactions", `[{
		"description": "March rent",
		"amount": 1200,
		"categoryId": "`+category.Data.ID.String()+`",
		"accountId": "`+account.Data.ID.String()+`"
	}]`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)

	var response v1.TransactionCreateResponse
	test.DecodeResponse(suite.T(), &r, &response)
	transaction := response.Data[0].Data

	suite.assertDecimal("1200", transaction.Amount)
	suite.Assert().Equal(models.CategoryTypeExpense, transaction.Type)
	suite.Assert().Equal("Rent", transaction.CategoryName)
	suite.Assert().Equal("Wallet", transaction.AccountName)
	suite.Assert().Equal(types.Today().String(), transaction.Date.String(), "Date must default to today")
	suite.Assert().False(transaction.Paid)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/accounts/%s", account.Data.ID), transaction.Links.Account)
}

func (suite *TestSuiteStandard) TestTransactionsCreateInvalid() {
	account := suite.createTestAccount(v1.AccountEditable{})
	category := suite.createTestCategory(v1.CategoryEditable{})

	other := uuid.New()
	r := test.Request(suite.T(), http.MethodPost, "http://example.com/v1/categories", []v1.CategoryEditable{{Name: "Foreign", Type: models.CategoryTypeExpense}}, test.Authorization(suite.T(), other))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusCreated)
	var foreign v1.CategoryCreateResponse
	test.DecodeResponse(suite.T(), &r, &foreign)

	end := types.Today().AddDays(-1)

	tests := []struct {
		name        string
		transaction v1.TransactionEditable
		err         error
	}{
		{"Negative amount", v1.TransactionEditable{Description: "x", Amount: decimal.NewFromInt(-1), CategoryID: category.Data.ID, AccountID: account.Data.ID}, models.ErrTransactionAmountNegative},
		{"Empty description", v1.TransactionEditable{Description: " ", CategoryID: category.Data.ID, AccountID: account.Data.ID}, models.ErrTransactionDescriptionEmpty},
		{"No category", v1.TransactionEditable{Description: "x", AccountID: account.Data.ID}, models.ErrTransactionCategoryMissing},
		{"No account", v1.TransactionEditable{Description: "x", CategoryID: category.Data.ID}, models.ErrTransactionAccountMissing},
		{"Foreign category", v1.TransactionEditable{Description: "x", CategoryID: foreign.Data[0].Data.ID, AccountID: account.Data.ID}, models.ErrTransactionCategoryInvalid},
		{"Unknown account", v1.TransactionEditable{Description: "x", CategoryID: category.Data.ID, AccountID: uuid.New()}, models.ErrTransactionAccountInvalid},
		{"Recurrence end before date", v1.TransactionEditable{Description: "x", CategoryID: category.Data.ID, AccountID: account.Data.ID, IsRecurring: true, RecurrenceEndDate: &end}, models.ErrRecurrenceEndBeforeDate},
		{"Weekly recurrence", v1.TransactionEditable{Description: "x", CategoryID: category.Data.ID, AccountID: account.Data.ID, IsRecurring: true, RecurrenceInterval: "weekly"}, models.ErrRecurrenceIntervalInvalid},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/transactions", []v1.TransactionEditable{tt.transaction})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.TransactionCreateResponse
			test.DecodeResponse(t, &r, &response)
			suite.Assert().Equal(tt.err.Error(), *response.Data[0].Error)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsRecurring() {
	t := suite.createTestTransaction(v1.TransactionEditable{IsRecurring: true, Amount: decimal.NewFromInt(30)})
	suite.Assert().Equal(models.RecurrenceMonthly, t.Data.RecurrenceInterval, "Interval must default to monthly")

	child := suite.createTestTransaction(v1.TransactionEditable{
		CategoryID:          t.Data.CategoryID,
		AccountID:           t.Data.AccountID,
		ParentTransactionID: &t.Data.ID,
		Amount:              decimal.NewFromInt(30),
	})

	// Deleting the parent deletes the children
	r := test.Request(suite.T(), http.MethodDelete, t.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, child.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestTransactionsGetFilter() {
	today := types.Today()

	checking := suite.createTestAccount(v1.AccountEditable{Name: "Checking"})
	wallet := suite.createTestAccount(v1.AccountEditable{Name: "Wallet"})
	salary := suite.createTestCategory(v1.CategoryEditable{Name: "Salary", Type: models.CategoryTypeIncome})
	rent := suite.createTestCategory(v1.CategoryEditable{Name: "Rent", Type: models.CategoryTypeExpense})

	parent := suite.createTestTransaction(v1.TransactionEditable{
		Description: "Salary",
		Amount:      decimal.NewFromInt(3000),
		Date:        today.AddDays(-10),
		CategoryID:  salary.Data.ID,
		AccountID:   checking.Data.ID,
		Paid:        true,
		IsRecurring: true,
	})

	suite.createTestTransaction(v1.TransactionEditable{
		Description:         "Salary next month",
		Amount:              decimal.NewFromInt(3000),
		Date:                today.AddDays(20),
		CategoryID:          salary.Data.ID,
		AccountID:           checking.Data.ID,
		ParentTransactionID: &parent.Data.ID,
	})

	suite.createTestTransaction(v1.TransactionEditable{
		Description: "Rent",
		Amount:      decimal.NewFromInt(900),
		Date:        today,
		CategoryID:  rent.Data.ID,
		AccountID:   wallet.Data.ID,
		Paid:        true,
	})

	tests := []struct {
		name  string
		query string
		len   int
	}{
		{"All", "", 3},
		{"Account", fmt.Sprintf("account=%s", wallet.Data.ID), 1},
		{"Category", fmt.Sprintf("category=%s", salary.Data.ID), 2},
		{"Income", "type=income", 2},
		{"Expense", "type=expense", 1},
		{"Paid", "paid=true", 2},
		{"Not paid", "paid=false", 1},
		{"Recurring", "isRecurring=true", 1},
		{"Parent", fmt.Sprintf("parent=%s", parent.Data.ID), 1},
		{"No parent", "parent=", 2},
		{"From today", fmt.Sprintf("fromDate=%s", today), 2},
		{"Until today", fmt.Sprintf("untilDate=%s", today), 2},
		{"Date range", fmt.Sprintf("fromDate=%s&untilDate=%s", today, today), 1},
		{"Search", "search=month", 1},
		{"Type and account", fmt.Sprintf("type=income&account=%s", wallet.Data.ID), 0},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusOK)

			var response v1.TransactionListResponse
			test.DecodeResponse(t, &r, &response)
			suite.Assert().Len(response.Data, tt.len)
			suite.Assert().Equal(int64(tt.len), response.Pagination.Total)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsGetOrder() {
	today := types.Today()
	category := suite.createTestCategory(v1.CategoryEditable{})
	account := suite.createTestAccount(v1.AccountEditable{})

	for i, offset := range []int{-3, 5, 0} {
		suite.createTestTransaction(v1.TransactionEditable{
			Description: fmt.Sprintf("Transaction %d", i),
			Date:        today.AddDays(offset),
			CategoryID:  category.Data.ID,
			AccountID:   account.Data.ID,
		})
	}

	r := test.Request(suite.T(), http.MethodGet, "http://example.com/v1/transactions", "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionListResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Require().Len(response.Data, 3)
	suite.Assert().Equal("Transaction 1", response.Data[0].Description)
	suite.Assert().Equal("Transaction 2", response.Data[1].Description)
	suite.Assert().Equal("Transaction 0", response.Data[2].Description)

	// List responses carry the read only fields, too
	suite.Assert().Equal(category.Data.Name, response.Data[0].CategoryName)
	suite.Assert().Equal(account.Data.Name, response.Data[0].AccountName)
}

func (suite *TestSuiteStandard) TestTransactionsGetInvalid() {
	tests := []struct {
		name  string
		query string
	}{
		{"Invalid type", "type=transfer"},
		{"Invalid account", "account=NotAUUID"},
		{"Invalid date", "fromDate=yesterday"},
		{"Invalid paid", "paid=maybe"},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/transactions?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsUpdate() {
	end := types.Today().AddDate(0, 6, 0)
	t := suite.createTestTransaction(v1.TransactionEditable{
		Description:       "Gym",
		Amount:            decimal.NewFromInt(50),
		IsRecurring:       true,
		RecurrenceEndDate: &end,
	})

	income := suite.createTestCategory(v1.CategoryEditable{Type: models.CategoryTypeIncome})

	r := test.Request(suite.T(), http.MethodPatch, t.Data.Links.Self, fmt.Sprintf(`{
		"paid": true,
		"categoryId": "%s",
		"recurrenceEndDate": null
	}`, income.Data.ID))
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.TransactionResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().True(response.Data.Paid)
	suite.Assert().Equal("Gym", response.Data.Description)
	suite.assertDecimal("50", response.Data.Amount)
	suite.Assert().Nil(response.Data.RecurrenceEndDate, "null must clear the end date")
	suite.Assert().Equal(models.CategoryTypeIncome, response.Data.Type, "The type follows the category")
}

func (suite *TestSuiteStandard) TestTransactionsUpdateFails() {
	t := suite.createTestTransaction(v1.TransactionEditable{})

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"Negative amount", `{ "amount": -5 }`, http.StatusBadRequest},
		{"Sub-cent amount", `{ "amount": "12.345" }`, http.StatusBadRequest},
		{"Own parent", fmt.Sprintf(`{ "parentTransactionId": "%s" }`, t.Data.ID), http.StatusBadRequest},
		{"Unknown account", fmt.Sprintf(`{ "accountId": "%s" }`, uuid.New()), http.StatusBadRequest},
		{"Invalid date", `{ "date": "yesterday" }`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t2 *testing.T) {
			r := test.Request(t2, http.MethodPatch, t.Data.Links.Self, tt.body)
			test.AssertHTTPStatus(t2, &r, tt.status)
		})
	}
}

func (suite *TestSuiteStandard) TestTransactionsOtherUser() {
	t := suite.createTestTransaction(v1.TransactionEditable{})
	other := test.Authorization(suite.T(), uuid.New())

	for _, method := range []string{http.MethodGet, http.MethodPatch, http.MethodDelete, http.MethodOptions} {
		r := test.Request(suite.T(), method, t.Data.Links.Self, `{ "paid": true }`, other)
		test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
	}
}

func (suite *TestSuiteStandard) TestTransactionsDBClosed() {
	t := suite.createTestTransaction(v1.TransactionEditable{})
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodGet, t.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
