package v1

import (
	"fmt"

	"github.com/easyfinances/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type CategoryEditable struct {
	Name string              `json:"name" example:"Groceries" default:""` // Name of the category, unique per user
	Type models.CategoryType `json:"type" example:"expense"`              // Either "income" or "expense". Cannot change while transactions use the category.
}

// model returns the database resource for the editable fields
func (editable CategoryEditable) model() models.Category {
	return models.Category{
		Name: editable.Name,
		Type: editable.Type,
	}
}

type CategoryLinks struct {
	Self         string `json:"self" example:"https://example.com/api/v1/categories/3b1ea324-d438-4419-882a-2fc91d71772f"`                    // The category itself
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions?category=3b1ea324-d438-4419-882a-2fc91d71772f"` // Transactions in the category
	Detail       string `json:"detail" example:"https://example.com/api/v1/analytics/categories/Groceries"`                                   // Analytics for the category
}

// Category is the API v1 representation of a Category.
type Category struct {
	models.DefaultModel
	CategoryEditable
	Links CategoryLinks `json:"links"`
}

func newCategory(c *gin.Context, model models.Category) Category {
	url := c.GetString(string(models.DBContextURL))

	return Category{
		DefaultModel: model.DefaultModel,
		CategoryEditable: CategoryEditable{
			Name: model.Name,
			Type: model.Type,
		},
		Links: CategoryLinks{
			Self:         fmt.Sprintf("%s/v1/categories/%s", url, model.ID),
			Transactions: fmt.Sprintf("%s/v1/transactions?category=%s", url, model.ID),
			Detail:       fmt.Sprintf("%s/v1/analytics/categories/%s", url, model.Name),
		},
	}
}

type CategoryListResponse struct {
	Data       []Category  `json:"data"`                                                          // List of categories
	Error      *string     `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Pagination *Pagination `json:"pagination"`                                                    // Pagination information
}

type CategoryCreateResponse struct {
	Error *string            `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred
	Data  []CategoryResponse `json:"data"`                                                          // List of created Categories
}

func (c *CategoryCreateResponse) appendError(err error, currentStatus int) int {
	s := err.Error()
	c.Data = append(c.Data, CategoryResponse{Error: &s})

	// The final status code is the highest HTTP status code number
	newStatus := status(err)
	if newStatus > currentStatus {
		return newStatus
	}

	return currentStatus
}

type CategoryResponse struct {
	Data  *Category `json:"data"`                                                          // Data for the category
	Error *string   `json:"error" example:"the specified resource ID is not a valid UUID"` // The error, if any occurred for this category
}

type CategoryQueryFilter struct {
	Name   string              `form:"name" filterField:"false"`   // Fuzzy filter for the category name
	Type   models.CategoryType `form:"type"`                       // By type
	Search string              `form:"search" filterField:"false"` // By string in name
	Offset uint                `form:"offset" filterField:"false"` // The offset of the first Category returned. Defaults to 0.
	Limit  int                 `form:"limit" filterField:"false"`  // Maximum number of Categories to return. Defaults to 50.
}

func (f CategoryQueryFilter) model() models.Category {
	return models.Category{
		Type: f.Type,
	}
}
