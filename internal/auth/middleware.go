package auth

import (
	"errors"
	"net/http"

	"github.com/easyfinances/backend/internal/models"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const contextUser = "easyfinances-user"

type httpError struct {
	Error string `json:"error" example:"the bearer token is invalid"`
}

// Middleware authenticates requests with the bearer token and provisions
// the user on first use. Requests without a valid token are aborted with 401.
func Middleware(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := BearerToken(c.GetHeader("Authorization"))
		if err != nil {
			abort(c, err)
			return
		}

		identity, err := Verify(secret, token)
		if err != nil {
			log.Debug().Str("request-id", requestid.Get(c)).Err(err).Msg("Authentication")
			abort(c, ErrInvalidToken)
			return
		}

		user, err := models.ProvisionUser(models.DB.WithContext(c.Request.Context()), identity.UserID, identity.Username)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(contextUser, user)
		c.Next()
	}
}

func abort(c *gin.Context, err error) {
	status := http.StatusUnauthorized
	if errors.Is(err, models.ErrGeneral) {
		status = http.StatusInternalServerError
	}

	c.AbortWithStatusJSON(status, httpError{Error: err.Error()})
}

// User returns the authenticated user of the request.
func User(c *gin.Context) models.User {
	user, _ := c.Get(contextUser)
	u, _ := user.(models.User)
	return u
}

// UserID returns the ID of the authenticated user of the request.
func UserID(c *gin.Context) uuid.UUID {
	return User(c).ID
}
