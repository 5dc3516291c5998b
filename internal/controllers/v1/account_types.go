package v1

import (
	"fmt"

	"github.com/easyfinances/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type AccountEditable struct {
	Name    string          `json:"name" example:"Checking" default:""`       // Name of the account
	Kind    string          `json:"kind" example:"Conta Corrente" default:""` // Free text kind of the account. Defaults to "Conta Corrente".
	Balance decimal.Decimal `json:"balance" example:"1000" default:"0"`       // Balance of the account before any transactions were recorded
}

// model returns the database resource for the editable fields
func (editable AccountEditable) model() models.Account {
	return models.Account{
		Name:    editable.Name,
		Kind:    editable.Kind,
		Balance: editable.Balance,
	}
}

type AccountLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`                     // The account itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?account=af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"` // Transactions on the account
}

// Account is the API v1 representation of an Account.
type Account struct {
	models.DefaultModel
	AccountEditable
	CurrentBalance decimal.Decimal `json:"currentBalance" example:"1499.90"` // The balance plus all income minus all expenses on the account
	Links          AccountLinks    `json:"links"`
}

func newAccount(c *gin.Context, model models.Account) (Account, error) {
	url := c.GetString(string(models.DBContextURL))

	balance, err := model.CurrentBalance(models.DB.WithContext(c.Request.Context()))
	if err != nil {
		return Account{}, err
	}

	return Account{
		DefaultModel: model.DefaultModel,
		AccountEditable: AccountEditable{
			Name:    model.Name,
			Kind:    model.Kind,
			Balance: model.Balance,
		},
		CurrentBalance: balance,
		Links: AccountLinks{
			Self:         fmt.Sprintf("%s/v1/accounts/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?account=%s", url, model.ID),
		},
	}, nil
}

type AccountListResponse struct {
	Data       []Account   `json:"data"`                                                          // List of accounts
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type AccountCreateResponse struct {
	Error *string           `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []AccountResponse `json:"data"`                                                          // List of created Accounts
}

func (a *AccountCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	a.Data = append(a.Data, AccountResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type AccountResponse struct {
	Data  *Account `json:"data"`                                                          // Data for the account
	Error *string  `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this account
}

type AccountQueryFilter struct {
	Name   string `form:"name" filterField:"false"`   // Fuzzy filter for the account name
	Kind   string `form:"kind"`                       // By kind
	Search string `form:"search" filterField:"false"` // By string in name or kind
	Offset uint   `form:"offset" filterField:"false"` // The offset of the first Account returned. Defaults to 0.
	Limit  int    `form:"limit" filterField:"false"`  // Maximum number of Accounts to return. Defaults to 50.
}

func (f AccountQueryFilter) model() models.Account {
	return models.Account{
		Kind: f.Kind,
	}
}
