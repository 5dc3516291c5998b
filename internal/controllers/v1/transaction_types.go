package v1

import (
	"fmt"

	"github.com/easyfinances/backend/internal/models"
	"github.com/easyfinances/backend/internal/types"
	ez_uuid "github.com/easyfinances/backend/internal/uuid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TransactionEditable struct {
	Description         string                    `json:"description" example:"Rent" default:""`                              // What the transaction was for
	Amount              decimal.Decimal           `json:"amount" example:"1200" minimum:"0"`                                  // The amount, never negative. The direction is the type of the category.
	Date                types.Date                `json:"date" example:"2024-03-05"`                                          // Date of the transaction. Defaults to today.
	CategoryID          uuid.UUID                 `json:"categoryId" example:"3b1ea324-d438-4419-882a-2fc91d71772f"`          // ID of the category
	AccountID           uuid.UUID                 `json:"accountId" example:"af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`           // ID of the account
	Paid                bool                      `json:"paid" example:"true" default:"false"`                                // Has the transaction been settled?
	IsRecurring         bool                      `json:"isRecurring" example:"false" default:"false"`                        // Does the transaction repeat?
	RecurrenceInterval  models.RecurrenceInterval `json:"recurrenceInterval" example:"monthly" default:""`                    // Interval of the recurrence. Only "monthly" is supported.
	RecurrenceEndDate   *types.Date               `json:"recurrenceEndDate" example:"2024-12-31"`                             // Last date of the recurrence, null for no end
	ParentTransactionID *uuid.UUID                `json:"parentTransactionId" example:"d430d7c3-d14c-4712-9336-ee56965a6673"` // ID of the transaction this one was generated from
}

// model returns the database resource for the editable fields
func (editable TransactionEditable) model() models.Transaction {
	return models.Transaction{
		Description:         editable.Description,
		Amount:              editable.Amount,
		Date:                editable.Date,
		CategoryID:          editable.CategoryID,
		AccountID:           editable.AccountID,
		Paid:                editable.Paid,
		IsRecurring:         editable.IsRecurring,
		RecurrenceInterval:  editable.RecurrenceInterval,
		RecurrenceEndDate:   editable.RecurrenceEndDate,
		ParentTransactionID: editable.ParentTransactionID,
	}
}

type TransactionLinks struct {
	Self     string `json:"self" example:"https://example.com/api/v1/transactions/d430d7c3-d14c-4712-9336-ee56965a6673"`   // The transaction itself
	Category string `json:"category" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"` // The category of the transaction
	Account  string `json:"account" example:"https://example.com/api/v1/accounts/af892e10-7e0a-4fb8-b1bc-4b6d88401ed2"`    // The account of the transaction
}

// Transaction is the API v1 representation of a Transaction.
type Transaction struct {
	models.DefaultModel
	TransactionEditable
	Type         models.CategoryType `json:"type" example:"expense"`         // The type of the category, read only
	CategoryName string              `json:"categoryName" example:"Housing"` // The name of the category, read only
	AccountName  string              `json:"accountName" example:"Checking"` // The name of the account, read only
	Links        TransactionLinks    `json:"links"`
}

// newTransaction returns the API v1 representation of the resource.
// Category and account are loaded unless they are set already.
func newTransaction(c *gin.Context, model models.Transaction) (Transaction, error) {
	url := c.GetString(string(models.DBContextURL))
	db := models.DB.WithContext(c.Request.Context())

	if model.Category.ID != model.CategoryID {
		err := db.First(&model.Category, "id = ?", model.CategoryID).Error
		if err != nil {
			return Transaction{}, err
		}
	}

	if model.Account.ID != model.AccountID {
		err := db.First(&model.Account, "id = ?", model.AccountID).Error
		if err != nil {
			return Transaction{}, err
		}
	}

	return Transaction{
		DefaultModel: model.DefaultModel,
		TransactionEditable: TransactionEditable{
			Description:         model.Description,
			Amount:              model.Amount,
			Date:                model.Date,
			CategoryID:          model.CategoryID,
			AccountID:           model.AccountID,
			Paid:                model.Paid,
			IsRecurring:         model.IsRecurring,
			RecurrenceInterval:  model.RecurrenceInterval,
			RecurrenceEndDate:   model.RecurrenceEndDate,
			ParentTransactionID: model.ParentTransactionID,
		},
		Type:         model.Category.Type,
		CategoryName: model.Category.Name,
		AccountName:  model.Account.Name,
		Links: TransactionLinks{
			Self:     fmt.Sprintf("%s/v1/transactions/%s", url, model.ID),
			Category: fmt.Sprintf("%s/v1/categories/%s", url, model.CategoryID),
			Account:  fmt.Sprintf("%s/v1/accounts/%s", url, model.AccountID),
		},
	}, nil
}

type TransactionListResponse struct {
	Data       []Transaction `json:"data"`                                                          // List of transactions
	Error      *string       `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination   `json:"pagination"`                                                    // Pagination information
}

type TransactionCreateResponse struct {
	Error *string               `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []TransactionResponse `json:"data"`                                                          // List of created Transactions
}

func (t *TransactionCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	t.Data = append(t.Data, TransactionResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type TransactionResponse struct {
	Data  *Transaction `json:"data"`                                                          // Data for the transaction
	Error *string      `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this transaction
}

type TransactionQueryFilter struct {
	AccountID   ez_uuid.UUID        `form:"account"`                       // By account ID
	CategoryID  ez_uuid.UUID        `form:"category"`                      // By category ID
	Type        models.CategoryType `form:"type" filterField:"false"`      // By type of the category
	Paid        bool                `form:"paid"`                          // By paid state
	IsRecurring bool                `form:"isRecurring"`                   // Recurring or not
	ParentID    ez_uuid.UUID        `form:"parent" filterField:"false"`    // By parent transaction. An empty value matches transactions without parent.
	FromDate    types.Date          `form:"fromDate" filterField:"false"`  // Transactions at or after this date
	UntilDate   types.Date          `form:"untilDate" filterField:"false"` // Transactions at or before this date
	Search      string              `form:"search" filterField:"false"`    // By string in the description
	Offset      uint                `form:"offset" filterField:"false"`    // The offset of the first Transaction returned. Defaults to 0.
	Limit       int                 `form:"limit" filterField:"false"`     // Maximum number of Transactions to return. Defaults to 50.
}

func (f TransactionQueryFilter) model() models.Transaction {
	return models.Transaction{
		AccountID:   f.AccountID.UUID,
		CategoryID:  f.CategoryID.UUID,
		Paid:        f.Paid,
		IsRecurring: f.IsRecurring,
	}
}
