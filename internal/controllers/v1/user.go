package v1

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/easyfinances/backend/internal/auth"
	"github.com/easyfinances/backend/internal/httputil"
	"github.com/easyfinances/backend/internal/models"
	"github.com/gin-gonic/gin"
)

type UserEditable struct {
	Username string `json:"username" example:"alice"` // Display name of the user
}

type UserLinks struct {
	Self      string `json:"self" example:"https://example.com/api/v1/user"`           // The profile itself
	Dashboard string `json:"dashboard" example:"https://example.com/api/v1/dashboard"` // The dashboard of the user
}

// User is the API v1 representation of the authenticated user.
type User struct {
	models.DefaultModel
	UserEditable
	Links UserLinks `json:"links"`
}

func newUser(c *gin.Context, model models.User) User {
	url := c.GetString(string(models.DBContextURL))

	return User{
		DefaultModel: model.DefaultModel,
		UserEditable: UserEditable{
			Username: model.Username,
		},
		Links: UserLinks{
			Self:      fmt.Sprintf("%s/v1/user", url),
			Dashboard: fmt.Sprintf("%s/v1/dashboard", url),
		},
	}
}

type UserResponse struct {
	Data  *User   `json:"data"`                                           // Data for the user
	Error *string `json:"error" example:"the username must not be empty"` // The error, if any occurred
}

// RegisterUserRoutes registers the routes for the profile of the
// authenticated user with the RouterGroup that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	r.OPTIONS("", OptionsUser)
	r.GET("", GetUser)
	r.PATCH("", UpdateUser)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			User
// @Success		204
// @Router			/v1/user [options]
func OptionsUser(c *gin.Context) {
	httputil.OptionsGetPatch(c)
}

// @Summary		Get user
// @Description	Returns the profile of the authenticated user
// @Tags			User
// @Produce		json
// @Success		200	{object}	UserResponse
// @Router			/v1/user [get]
func GetUser(c *gin.Context) {
	data := newUser(c, auth.User(c))
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Update user
// @Description	Updates the profile of the authenticated user
// @Tags			User
// @Accept			json
// @Produce		json
// @Success		200		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/user [patch]
func UpdateUser(c *gin.Context) {
	user := auth.User(c)

	data := UserEditable{
		Username: user.Username,
	}
	err := httputil.BindData(c, &data)
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	if strings.TrimSpace(data.Username) == "" {
		s := errUsernameEmpty.Error()
		c.JSON(http.StatusBadRequest, UserResponse{
			Error: &s,
		})
		return
	}

	user.Username = data.Username
	err = models.DB.WithContext(c.Request.Context()).Save(&user).Error
	if err != nil {
		s := err.Error()
		c.JSON(status(err), UserResponse{
			Error: &s,
		})
		return
	}

	apiResource := newUser(c, user)
	c.JSON(http.StatusOK, UserResponse{Data: &apiResource})
}
