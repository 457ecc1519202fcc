package controllers

import (
	"errors"

	"foodhub/pkg/resp"
	"foodhub/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// writeServiceError maps the service error taxonomy onto HTTP responses.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		resp.NotFound(c, "not found")
	case errors.Is(err, services.ErrForbidden):
		resp.Forbidden(c, err.Error())
	case errors.Is(err, services.ErrDuplicateItem),
		errors.Is(err, services.ErrInsufficientStock),
		errors.Is(err, services.ErrDuplicateReview),
		errors.Is(err, services.ErrVersionConflict):
		resp.Conflict(c, err.Error())
	case errors.Is(err, services.ErrEmptyCart),
		errors.Is(err, services.ErrInvalidAddress),
		errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrPaymentIncomplete),
		errors.Is(err, services.ErrInvalidInput):
		resp.BadRequest(c, err.Error())
	default:
		resp.ServerError(c, err)
	}
}
