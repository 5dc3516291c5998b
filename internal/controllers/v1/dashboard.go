package v1

import (
	"net/http"

	"github.com/easyfinances/backend/internal/analytics"
	"github.com/easyfinances/backend/internal/auth"
	"github.com/easyfinances/backend/internal/httputil"
	"github.com/easyfinances/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type DashboardResponse struct {
	Data  *analytics.Dashboard `json:"data"`                                                     // The dashboard summary
	Error *string              `json:"error" example:"the limit parameter must not be negative"` // The error, if any occurred
}

type DashboardQueryFilter struct {
	Limit int `form:"limit"` // Maximum number of upcoming transactions. 0 or unset returns all of them.
}

// RegisterDashboardRoutes registers the routes for the dashboard with
// the RouterGroup that is passed.
func RegisterDashboardRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsDashboard)
	r.GET("", GetDashboard)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Dashboard
// @Success		204
// @Router			/v1/dashboard [options]
func OptionsDashboard(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get dashboard
// @Description	Returns balances, the figures of the current month and upcoming transactions
// @Tags			Dashboard
// @Produce		json
// @Success		200		{object}	DashboardResponse
// @Failure		400		{object}	DashboardResponse
// @Failure		500		{object}	DashboardResponse
// @Param			limit	query		int	false	"Maximum number of upcoming transactions"
// @Router			/v1/dashboard [get]
func GetDashboard(c *gin.Context) {
	var filter DashboardQueryFilter
	if err := c.Bind(&filter); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{
			Error: &s,
		})
		return
	}

	if filter.Limit < 0 {
		s := errLimitInvalid.Error()
		c.JSON(http.StatusBadRequest, DashboardResponse{
			Error: &s,
		})
		return
	}

	dashboard, err := engine().Dashboard(c.Request.Context(), auth.UserID(c), types.Today(), filter.Limit)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), DashboardResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, DashboardResponse{Data: &dashboard})
}
