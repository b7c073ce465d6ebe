package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"vivaha-be/internal/middleware"
	"vivaha-be/internal/models"
	"vivaha-be/internal/service"
)

// respondError maps service errors onto HTTP statuses. Anything unknown is a
// 500 with a generic body; the cause is attached to the context for the
// request logger.
func respondError(c *gin.Context, err error) {
	var validationErr *service.ValidationError
	switch {
	case errors.As(err, &validationErr):
		c.JSON(http.StatusBadRequest, models.Fail(validationErr.Message))
	case errors.Is(err, service.ErrEmailTaken):
		c.JSON(http.StatusConflict, models.Fail(err.Error()))
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, models.Fail(err.Error()))
	case errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrShareLinkNotFound),
		errors.Is(err, service.ErrTripNotFound):
		c.JSON(http.StatusNotFound, models.Fail(err.Error()))
	case errors.Is(err, service.ErrShareLinkExpired):
		c.JSON(http.StatusForbidden, models.Fail(err.Error()))
	default:
		_ = c.Error(err)
		c.JSON(http.StatusInternalServerError, models.Fail("Internal server error"))
	}
}

func respondBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, models.APIResponse[struct{}]{
		Error:   "Invalid request body",
		Message: err.Error(),
	})
}

// currentUser returns the authenticated user ID, answering 401 when missing.
func currentUser(c *gin.Context) (string, bool) {
	userID, ok := middleware.UserID(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, models.Fail("User ID not found in token"))
	}
	return userID, ok
}
