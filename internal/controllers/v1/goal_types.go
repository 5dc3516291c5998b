package v1

import (
	"encoding/json"
	"fmt"

	"github.com/easyfinances/backend/internal/analytics"
	"github.com/easyfinances/backend/internal/models"
	"github.com/easyfinances/backend/internal/types"
	ez_uuid "github.com/easyfinances/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type GoalEditable struct {
	Name          string          `json:"name" example:"Vacation" default:""`                        // Name of the goal
	GoalType      models.GoalType `json:"goalType" example:"saving_goal"`                            // Either "spending_limit" or "saving_goal"
	TargetAmount  decimal.Decimal `json:"targetAmount" example:"2000" minimum:"0.01"`                // The limit or the amount to save
	CurrentAmount decimal.Decimal `json:"currentAmount" example:"150" default:"0"`                   // Amount saved so far. Ignored for spending limits.
	CategoryID    *uuid.UUID      `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"` // Expense category. Required for spending limits.
	StartDate     types.Date      `json:"startDate" example:"2024-03-01"`                            // First day of the goal
	EndDate       types.Date      `json:"endDate" example:"2024-03-31"`                              // Last day of the goal
}

// model returns the database resource for the editable fields
func (editable GoalEditable) model() models.BudgetGoal {
	return models.BudgetGoal{
		Name:          editable.Name,
		GoalType:      editable.GoalType,
		TargetAmount:  editable.TargetAmount,
		CurrentAmount: editable.CurrentAmount,
		CategoryID:    editable.CategoryID,
		StartDate:     editable.StartDate,
		EndDate:       editable.EndDate,
	}
}

type GoalLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/goals/438cc6c0-9baf-47fc-8b1d-de852d2df3b2"`              // The goal itself
	Progress string `json:"progress" example:"https://example.com/api/v1/goals/438cc6c0-9baf-47fc-8b1d-de852d2df3b2/progress"` // Endpoint to add progress to saving goals
}

// Goal is the API v1 representation of a BudgetGoal.
type Goal struct {
	models.DefaultModel
	GoalEditable
	Evaluation analytics.GoalProgress `json:"evaluation"` // Progress of the goal, computed at read time for spending limits
	Links      GoalLinks              `json:"links"`
}

func newGoal(c *gin.Context, model models.BudgetGoal, evaluation analytics.GoalProgress) Goal {
	url := c.GetString(string(models.DBContextURL))

	return Goal{
		DefaultModel: model.DefaultModel,
		GoalEditable: GoalEditable{
			Name:          model.Name,
			GoalType:      model.GoalType,
			TargetAmount:  model.TargetAmount,
			CurrentAmount: model.CurrentAmount,
			CategoryID:    model.CategoryID,
			StartDate:     model.StartDate,
			EndDate:       model.EndDate,
		},
		Evaluation: evaluation,
		Links: GoalLinks{
			Self:     fmt.Sprintf("%s/v1/goals/%s", url, model.ID),
			Progress: fmt.Sprintf("%s/v1/goals/%s/progress", url, model.ID),
		},
	}
}

// evaluatedGoal evaluates the goal and returns its API representation.
func evaluatedGoal(c *gin.Context, model models.BudgetGoal) (Goal, error) {
	evaluation, err := engine().EvaluateGoal(c.Request.Context(), model)
	if err != nil {
		return Goal{}, err
	}

	return newGoal(c, model, evaluation), nil
}

type GoalListResponse struct {
	Data       []Goal      `json:"data"`                                                          // List of goals
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type GoalCreateResponse struct {
	Error *string        `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []GoalResponse `json:"data"`                                                          // List of created Goals
}

func (g *GoalCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	g.Data = append(g.Data, GoalResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type GoalResponse struct {
	Data  *Goal   `json:"data"`                                                          // Data for the goal
	Error *string `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this goal
}

// GoalProgressEditable is the body for adding progress to a saving goal.
//
// The amount is kept as the literal from the request so that it is parsed
// as a decimal without a detour through float64.
type GoalProgressEditable struct {
	Amount json.Number `json:"amount" example:"150.25"` // Amount to add, must be positive
}

type GoalQueryFilter struct {
	Name       string          `form:"name" filterField:"false"`   // Fuzzy filter for the goal name
	GoalType   models.GoalType `form:"goalType"`                   // By goal type
	CategoryID ez_uuid.UUID    `form:"category"`                   // By category ID
	Search     string          `form:"search" filterField:"false"` // By string in name
	Offset     uint            `form:"offset" filterField:"false"` // The offset of the first Goal returned. Defaults to 0.
	Limit      int             `form:"limit" filterField:"false"`  // Maximum number of Goals to return. Defaults to 50.
}

func (f GoalQueryFilter) model() models.BudgetGoal {
	goal := models.BudgetGoal{
		GoalType: f.GoalType,
	}

	if f.CategoryID.IsSet() {
		goal.CategoryID = &f.CategoryID.UUID
	}

	return goal
}
