package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-user-auth-api/internal/application"
	"github.com/oksasatya/go-user-auth-api/pkg/response"
	"github.com/oksasatya/go-user-auth-api/pkg/validation"
)

// respondError maps workflow errors to HTTP responses. notFound is the
// message used for application.ErrNotFound. Anything unrecognised is a 500
// whose cause goes to the log only.
func respondError(c *gin.Context, logger *logrus.Logger, err error, notFound string) {
	switch {
	case errors.Is(err, application.ErrNotFound):
		response.Error[any](c, http.StatusNotFound, notFound, nil)
	case errors.Is(err, application.ErrDuplicateEmail):
		response.Error[any](c, http.StatusConflict, "Email already registered", nil)
	case errors.Is(err, application.ErrInvalidCredentials):
		response.Error[any](c, http.StatusUnauthorized, "Invalid password", nil)
	case errors.Is(err, application.ErrEmailNotVerified):
		response.Error[any](c, http.StatusUnauthorized, "Email not verified", nil)
	case errors.Is(err, application.ErrPasswordTooLong):
		response.Error[any](c, http.StatusBadRequest, "invalid payload",
			map[string]string{"password": fmt.Sprintf("must be at most %d bytes long", validation.MaxPasswordBytes)})
	case errors.Is(err, application.ErrInvalidToken):
		response.Error[any](c, http.StatusUnauthorized, "invalid access token", nil)
	default:
		logger.WithError(err).WithFields(logrus.Fields{
			"route":      c.FullPath(),
			"request_id": c.GetString(response.RequestIDKey),
		}).Error("request failed")
		response.Error[any](c, http.StatusInternalServerError, "internal server error", nil)
	}
}
