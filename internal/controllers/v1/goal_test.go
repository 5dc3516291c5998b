package v1_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	v1 "github.com/easyfinances/backend/internal/controllers/v1"
	"github.com/easyfinances/backend/internal/models"
	"github.com/easyfinances/backend/internal/router"
	"github.com/easyfinances/backend/internal/types"
	"github.com/easyfinances/backend/test"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

func (suite *TestSuiteStandard) TestGoalsCreateSaving() {
	g := suite.createTestGoal(v1.GoalEditable{Name: "Vacation", CurrentAmount: decimal.NewFromInt(250)})

	suite.Assert().Equal(models.GoalTypeSavingGoal, g.Data.GoalType)
	suite.assertDecimal("250", g.Data.Evaluation.Progress)
	suite.assertDecimal("750", g.Data.Evaluation.Remaining)
	suite.assertDecimal("25", g.Data.Evaluation.Percentage)
	suite.Require().NotNil(g.Data.Evaluation.Reached)
	suite.Assert().False(*g.Data.Evaluation.Reached)
	suite.Assert().Nil(g.Data.Evaluation.Exceeded)
	suite.Assert().Equal(fmt.Sprintf("http://example.com/v1/goals/%s/progress", g.Data.ID), g.Data.Links.Progress)
}

func (suite *TestSuiteStandard) TestGoalsSpendingLimit() {
	category := suite.createTestCategory(v1.CategoryEditable{Type: models.CategoryTypeExpense})
	suite.createTestTransaction(v1.TransactionEditable{CategoryID: category.Data.ID, Amount: decimal.NewFromInt(120)})

	// Outside of the goal period
	suite.createTestTransaction(v1.TransactionEditable{
		CategoryID: category.Data.ID,
		Amount:     decimal.NewFromInt(1000),
		Date:       types.Today().MonthStart().AddDays(-1),
	})

	g := suite.createTestGoal(v1.GoalEditable{
		GoalType:      models.GoalTypeSpendingLimit,
		TargetAmount:  decimal.NewFromInt(300),
		CurrentAmount: decimal.NewFromInt(999),
		CategoryID:    &category.Data.ID,
	})

	suite.assertDecimal("0", g.Data.CurrentAmount, "Spending limits never store progress")
	suite.assertDecimal("120", g.Data.Evaluation.Progress)
	suite.assertDecimal("180", g.Data.Evaluation.Remaining)
	suite.assertDecimal("40", g.Data.Evaluation.Percentage)
	suite.Require().NotNil(g.Data.Evaluation.Exceeded)
	suite.Assert().False(*g.Data.Evaluation.Exceeded)

	suite.createTestTransaction(v1.TransactionEditable{CategoryID: category.Data.ID, Amount: decimal.NewFromInt(250)})

	r := test.Request(suite.T(), http.MethodGet, g.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.assertDecimal("370", response.Data.Evaluation.Progress)
	suite.assertDecimal("0", response.Data.Evaluation.Remaining)
	suite.Assert().True(*response.Data.Evaluation.Exceeded)
}

func (suite *TestSuiteStandard) TestGoalsCreateInvalid() {
	income := suite.createTestCategory(v1.CategoryEditable{Type: models.CategoryTypeIncome})
	today := types.Today()

	tests := []struct {
		name string
		goal v1.GoalEditable
		err  error
	}{
		{"Unknown type", v1.GoalEditable{GoalType: "dream"}, models.ErrGoalTypeInvalid},
		{"Negative target", v1.GoalEditable{TargetAmount: decimal.NewFromInt(-5)}, models.ErrGoalTargetNotPositive},
		{"End before start", v1.GoalEditable{StartDate: today, EndDate: today.AddDays(-1)}, models.ErrGoalEndBeforeStart},
		{"Limit without category", v1.GoalEditable{GoalType: models.GoalTypeSpendingLimit}, models.ErrGoalCategoryMissing},
		{"Limit on income", v1.GoalEditable{GoalType: models.GoalTypeSpendingLimit, CategoryID: &income.Data.ID}, models.ErrGoalCategoryNotExpense},
		{"Negative saved amount", v1.GoalEditable{CurrentAmount: decimal.NewFromInt(-1)}, models.ErrGoalCurrentAmountNegative},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, "http://example.com/v1/goals", []v1.GoalEditable{withGoalDefaults(tt.goal)})
			test.AssertHTTPStatus(t, &r, http.StatusBadRequest)

			var response v1.GoalCreateResponse
			test.DecodeResponse(t, &r, &response)
			suite.Assert().Equal(tt.err.Error(), *response.Data[0].Error)
		})
	}
}

// withGoalDefaults sets the fields of the goal that are not under test.
func withGoalDefaults(g v1.GoalEditable) v1.GoalEditable {
	if g.GoalType == "" {
		g.GoalType = models.GoalTypeSavingGoal
	}

	if g.TargetAmount.IsZero() {
		g.TargetAmount = decimal.NewFromInt(100)
	}

	if g.StartDate.IsZero() {
		g.StartDate = types.Today().MonthStart()
	}

	if g.EndDate.IsZero() {
		g.EndDate = types.Today().MonthEnd()
	}

	return g
}

func (suite *TestSuiteStandard) TestGoalsGetFilter() {
	category := suite.createTestCategory(v1.CategoryEditable{})
	suite.createTestGoal(v1.GoalEditable{Name: "Vacation"})
	suite.createTestGoal(v1.GoalEditable{Name: "New car"})
	suite.createTestGoal(v1.GoalEditable{Name: "Groceries limit", GoalType: models.GoalTypeSpendingLimit, CategoryID: &category.Data.ID})

	tests := []struct {
		name   string
		query  string
		len    int
		status int
	}{
		{"All", "", 3, http.StatusOK},
		{"Saving goals", "goalType=saving_goal", 2, http.StatusOK},
		{"Spending limits", "goalType=spending_limit", 1, http.StatusOK},
		{"Invalid type", "goalType=dream", 0, http.StatusBadRequest},
		{"Category", fmt.Sprintf("category=%s", category.Data.ID), 1, http.StatusOK},
		{"No category", "category=", 2, http.StatusOK},
		{"Search", "search=car", 1, http.StatusOK},
		{"Limit", "limit=2", 2, http.StatusOK},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodGet, fmt.Sprintf("http://example.com/v1/goals?%s", tt.query), "")
			test.AssertHTTPStatus(t, &r, tt.status)

			var response v1.GoalListResponse
			test.DecodeResponse(t, &r, &response)
			suite.Assert().Len(response.Data, tt.len)

			for _, g := range response.Data {
				suite.Assert().False(g.Evaluation.Percentage.IsNegative())
			}
		})
	}
}

func (suite *TestSuiteStandard) TestGoalsUpdate() {
	g := suite.createTestGoal(v1.GoalEditable{Name: "Vacation"})

	r := test.Request(suite.T(), http.MethodPatch, g.Data.Links.Self, `{ "targetAmount": "500", "currentAmount": "500" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Vacation", response.Data.Name)
	suite.assertDecimal("100", response.Data.Evaluation.Percentage)
	suite.Assert().True(*response.Data.Evaluation.Reached)

	r = test.Request(suite.T(), http.MethodPatch, g.Data.Links.Self, `{ "goalType": "spending_limit" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusBadRequest)
	suite.Assert().Equal(models.ErrGoalCategoryMissing.Error(), test.DecodeError(suite.T(), r.Body.Bytes()))
}

// Renaming a goal must not reset progress that was added after the
// goal was created.
func (suite *TestSuiteStandard) TestGoalsUpdateKeepsProgress() {
	g := suite.createTestGoal(v1.GoalEditable{Name: "Vacation", CurrentAmount: decimal.NewFromInt(10)})

	r := test.Request(suite.T(), http.MethodPost, g.Data.Links.Progress, `{ "amount": 5 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	r = test.Request(suite.T(), http.MethodPatch, g.Data.Links.Self, `{ "name": "Holidays" }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.Assert().Equal("Holidays", response.Data.Name)
	suite.assertDecimal("15", response.Data.CurrentAmount)
}

func (suite *TestSuiteStandard) TestGoalsUpdateConcurrentProgress() {
	g := suite.createTestGoal(v1.GoalEditable{Name: "Vacation", CurrentAmount: decimal.NewFromInt(10)})

	// All requests go through one router, building a router per request
	// registers the metrics more than once
	engine, teardown, err := router.Config(test.Config())
	suite.Require().Nil(err)
	defer teardown()
	router.AttachRoutes(engine.Group("/"), test.Config())

	token := test.Token(suite.T(), test.UserID)
	send := func(method, url, body string) error {
		req := httptest.NewRequest(method, url, strings.NewReader(body))
		req.Header.Set("Authorization", "Bearer "+token)

		recorder := httptest.NewRecorder()
		engine.ServeHTTP(recorder, req)
		if recorder.Code != http.StatusOK {
			return fmt.Errorf("%s %s: status %d, %s", method, url, recorder.Code, recorder.Body.String())
		}
		return nil
	}

	var eg errgroup.Group
	for i := 0; i < 10; i++ {
		i := i
		eg.Go(func() error {
			return send(http.MethodPost, g.Data.Links.Progress, `{ "amount": 1 }`)
		})
		eg.Go(func() error {
			return send(http.MethodPatch, g.Data.Links.Self, fmt.Sprintf(`{ "name": "Vacation %d" }`, i))
		})
	}
	suite.Require().Nil(eg.Wait())

	var stored models.BudgetGoal
	suite.Require().Nil(models.DB.First(&stored, "id = ?", g.Data.ID).Error)
	suite.assertDecimal("20", stored.CurrentAmount)
}

func (suite *TestSuiteStandard) TestGoalsDelete() {
	g := suite.createTestGoal(v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodDelete, g.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)

	r = test.Request(suite.T(), http.MethodGet, g.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)
}

func (suite *TestSuiteStandard) TestGoalsAddProgress() {
	g := suite.createTestGoal(v1.GoalEditable{CurrentAmount: decimal.NewFromInt(100)})

	r := test.Request(suite.T(), http.MethodPost, g.Data.Links.Progress, `{ "amount": 150.25 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusOK)

	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.assertDecimal("250.25", response.Data.CurrentAmount)
	suite.assertDecimal("250.25", response.Data.Evaluation.Progress)
}

func (suite *TestSuiteStandard) TestGoalsAddProgressFails() {
	saving := suite.createTestGoal(v1.GoalEditable{CurrentAmount: decimal.NewFromInt(100)})
	category := suite.createTestCategory(v1.CategoryEditable{})
	limit := suite.createTestGoal(v1.GoalEditable{GoalType: models.GoalTypeSpendingLimit, CategoryID: &category.Data.ID})

	tests := []struct {
		name   string
		url    string
		body   string
		status int
	}{
		{"Zero", saving.Data.Links.Progress, `{ "amount": 0 }`, http.StatusBadRequest},
		{"Negative", saving.Data.Links.Progress, `{ "amount": -5 }`, http.StatusBadRequest},
		{"Missing amount", saving.Data.Links.Progress, `{}`, http.StatusBadRequest},
		{"Not a number", saving.Data.Links.Progress, `{ "amount": "abc" }`, http.StatusBadRequest},
		{"Sub-cent amount", saving.Data.Links.Progress, `{ "amount": 0.001 }`, http.StatusBadRequest},
		{"Empty body", saving.Data.Links.Progress, "", http.StatusBadRequest},
		{"Spending limit", limit.Data.Links.Progress, `{ "amount": 10 }`, http.StatusBadRequest},
		{"Unknown goal", fmt.Sprintf("http://example.com/v1/goals/%s/progress", uuid.New()), `{ "amount": 10 }`, http.StatusNotFound},
	}

	for _, tt := range tests {
		suite.T().Run(tt.name, func(t *testing.T) {
			r := test.Request(t, http.MethodPost, tt.url, tt.body)
			test.AssertHTTPStatus(t, &r, tt.status)
		})
	}

	// Failed requests must not change the goal
	r := test.Request(suite.T(), http.MethodGet, saving.Data.Links.Self, "")
	var response v1.GoalResponse
	test.DecodeResponse(suite.T(), &r, &response)
	suite.assertDecimal("100", response.Data.CurrentAmount)
}

func (suite *TestSuiteStandard) TestGoalsOptions() {
	g := suite.createTestGoal(v1.GoalEditable{})

	r := test.Request(suite.T(), http.MethodOptions, g.Data.Links.Progress, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, POST", r.Header().Get("allow"))

	r = test.Request(suite.T(), http.MethodOptions, fmt.Sprintf("http://example.com/v1/goals/%s/progress", uuid.New()), "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNotFound)

	r = test.Request(suite.T(), http.MethodOptions, g.Data.Links.Self, "")
	test.AssertHTTPStatus(suite.T(), &r, http.StatusNoContent)
	suite.Assert().Equal("OPTIONS, GET, PATCH, DELETE", r.Header().Get("allow"))
}

func (suite *TestSuiteStandard) TestGoalsDBClosed() {
	g := suite.createTestGoal(v1.GoalEditable{})
	suite.CloseDB()

	r := test.Request(suite.T(), http.MethodPost, g.Data.Links.Progress, `{ "amount": 10 }`)
	test.AssertHTTPStatus(suite.T(), &r, http.StatusInternalServerError)
}
