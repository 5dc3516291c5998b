package v1

import (
	"github.com/easyfinances/backend/internal/auth"
	"github.com/easyfinances/backend/internal/httputil"
	"github.com/easyfinances/backend/internal/models"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

// owned returns the database scoped to the resources of the authenticated user.
func owned(c *gin.Context) *gorm.DB {
	return models.DB.WithContext(c.Request.Context()).Where("user_id = ?", auth.UserID(c))
}

// getResource loads the resource of the authenticated user with the ID.
// Resources of other users are not found.
func getResource[R models.Account | models.Category | models.Transaction | models.BudgetGoal](c *gin.Context, id uuid.UUID) (R, error) {
	var resource R
	err := owned(c).First(&resource, "id = ?", id).Error
	return resource, err
}

// resourceOptionsDetail returns the appropriate response for an HTTP OPTIONS
// request for a specific resource.
func resourceOptionsDetail[R models.Account | models.Category | models.Transaction | models.BudgetGoal](c *gin.Context) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	_, err = getResource[R](c, uri.ID.UUID)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// paginate applies offset and limit to the query and returns the limit used.
func paginate(q *gorm.DB, setFields []string, offset uint, limit int) (*gorm.DB, int) {
	if !slices.Contains(setFields, "Limit") {
		limit = defaultLimit
	}

	return q.Offset(int(offset)).Limit(limit), limit
}
