package v1

import (
	"net/http"

	"github.com/easyfinances/backend/internal/analytics"
	"github.com/easyfinances/backend/internal/httputil"
	"github.com/easyfinances/backend/internal/models"
	"github.com/gin-gonic/gin"
)

// RegisterRoutes registers all v1 routes on the group.
func RegisterRoutes(r *gin.RouterGroup) {
	r.GET("", Get)
	r.OPTIONS("", Options)

	RegisterAccountRoutes(r.Group("/accounts"))
	RegisterCategoryRoutes(r.Group("/categories"))
	RegisterTransactionRoutes(r.Group("/transactions"))
	RegisterGoalRoutes(r.Group("/goals"))
	RegisterDashboardRoutes(r.Group("/dashboard"))
	RegisterAnalyticsRoutes(r.Group("/analytics"))
	RegisterUserRoutes(r.Group("/user"))
}

// engine returns the aggregation engine on the current database.
func engine() analytics.Engine {
	return analytics.New(models.DB)
}

type Response struct {
	Links Links `json:"links"` // Links for the v1 API
}

type Links struct {
	Accounts     string `json:"accounts" example:"https://example.com/api/v1/accounts"`         // URL of Account collection endpoint
	Analytics    string `json:"analytics" example:"https://example.com/api/v1/analytics"`       // URL of the period analytics endpoint
	Categories   string `json:"categories" example:"https://example.com/api/v1/categories"`     // URL of Category collection endpoint
	Dashboard    string `json:"dashboard" example:"https://example.com/api/v1/dashboard"`       // URL of the dashboard endpoint
	Goals        string `json:"goals" example:"https://example.com/api/v1/goals"`               // URL of Goal collection endpoint
	Transactions string `json:"transactions" example:"https://example.com/api/v1/transactions"` // URL of Transaction collection endpoint
	User         string `json:"user" example:"https://example.com/api/v1/user"`                 // URL of the profile of the authenticated user
}

// Get returns the link list for v1
//
//	@Summary		v1 API
//	@Description	Returns general information about the v1 API
//	@Tags			v1
//	@Success		200	{object}	Response
//	@Router			/v1 [get]
func Get(c *gin.Context) {
	url := c.GetString(string(models.DBContextURL))

	c.JSON(http.StatusOK, Response{
		Links: Links{
			Accounts:     url + "/v1/accounts",
			Analytics:    url + "/v1/analytics",
			Categories:   url + "/v1/categories",
			Dashboard:    url + "/v1/dashboard",
			Goals:        url + "/v1/goals",
			Transactions: url + "/v1/transactions",
			User:         url + "/v1/user",
		},
	})
}

// Options returns the allowed HTTP methods
//
//	@Summary		Allowed HTTP verbs
//	@Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
//	@Tags			v1
//	@Success		204
//	@Router			/v1 [options]
func Options(c *gin.Context) {
	httputil.OptionsGet(c)
}
