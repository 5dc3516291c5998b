package v1

import (
	"net/http"

	"github.com/easyfinances/backend/internal/analytics"
	"github.com/easyfinances/backend/internal/auth"
	"github.com/easyfinances/backend/internal/httputil"
	"github.com/easyfinances/backend/internal/types"
	"github.com/gin-gonic/gin"
)

type AnalyticsResponse struct {
	Data  *analytics.Analytics `json:"data"`                                            // Analytics for the period
	Error *string              `json:"error" example:"an error occurred on the server"` // The error, if any occurred
}

type CategoryDetailResponse struct {
	Data  *analytics.CategoryDetail `json:"data"`                                                     // Figures of the category in the period
	Error *string                   `json:"error" example:"there is no category matching your query"` // The error, if any occurred
}

// RegisterAnalyticsRoutes registers the routes for period analytics with
// the RouterGroup that is passed.
func RegisterAnalyticsRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsAnalytics)
	r.GET("", GetAnalytics)
	r.OPTIONS("/categories/:name", OptionsAnalytics)
	r.GET("/categories/:name", GetCategoryDetail)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Analytics
// @Success		204
// @Router			/v1/analytics [options]
// @Router			/v1/analytics/categories/{name} [options]
func OptionsAnalytics(c *gin.Context) {
	httputil.OptionsGet(c)
}

// @Summary		Get period analytics
// @Description	Returns KPIs, compositions, the comparison with the previous period and a time series.
// @Description	Unknown period names fall back to "this_month".
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	AnalyticsResponse
// @Failure		400		{object}	AnalyticsResponse
// @Failure		500		{object}	AnalyticsResponse
// @Param			period	query		string	false	"One of this_month, last_month, last_90_days, this_year"
// @Router			/v1/analytics [get]
func GetAnalytics(c *gin.Context) {
	var query QueryPeriod
	if err := c.Bind(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, AnalyticsResponse{
			Error: &s,
		})
		return
	}

	a, err := engine().PeriodAnalytics(c.Request.Context(), auth.UserID(c), query.Period, types.Today())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), AnalyticsResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, AnalyticsResponse{Data: &a})
}

// @Summary		Get category detail
// @Description	Returns the total of a category in the period and its share of all income or expenses.
// @Description	The name is matched exactly first, then case-insensitively.
// @Tags			Analytics
// @Produce		json
// @Success		200		{object}	CategoryDetailResponse
// @Failure		400		{object}	CategoryDetailResponse
// @Failure		404		{object}	CategoryDetailResponse
// @Failure		500		{object}	CategoryDetailResponse
// @Param			name	path		string	true	"Name of the category"
// @Param			period	query		string	false	"One of this_month, last_month, last_90_days, this_year"
// @Router			/v1/analytics/categories/{name} [get]
func GetCategoryDetail(c *gin.Context) {
	var uri URIName
	if err := c.ShouldBindUri(&uri); err != nil {
		s := err.Error()
		c.JSON(http.StatusBadRequest, CategoryDetailResponse{
			Error: &s,
		})
		return
	}

	var query QueryPeriod
	if err := c.Bind(&query); err != nil {
		s := httputil.ErrInvalidQueryString.Error()
		c.JSON(http.StatusBadRequest, CategoryDetailResponse{
			Error: &s,
		})
		return
	}

	detail, err := engine().CategoryDetail(c.Request.Context(), auth.UserID(c), uri.Name, query.Period, types.Today())
	if err != nil {
		s := err.Error()
		c.JSON(status(err), CategoryDetailResponse{
			Error: &s,
		})
		return
	}

	c.JSON(http.StatusOK, CategoryDetailResponse{Data: &detail})
}
