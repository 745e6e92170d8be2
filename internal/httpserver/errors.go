package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktailhaven/internal/domain"
	"cocktailhaven/internal/service/checkout"
)

// respondError maps domain errors onto HTTP statuses. Anything unmapped is
// an internal error and deliberately unexposed.
func respondError(c *gin.Context, err error) {
	var v *domain.ValidationError
	switch {
	case errors.As(err, &v):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": v.Message, "field": v.Field})
	case errors.Is(err, domain.ErrEmailTaken):
		c.JSON(http.StatusConflict, gin.H{"error": "email already registered"})
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	case errors.Is(err, domain.ErrLineNotFound), errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, domain.ErrConfirmRemoval):
		c.JSON(http.StatusConflict, gin.H{
			"error":                "removing the last unit deletes the line",
			"confirmationRequired": true,
		})
	case errors.Is(err, domain.ErrEmptyCart):
		c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
	case errors.Is(err, checkout.ErrCheckoutActive):
		c.JSON(http.StatusConflict, gin.H{"error": "checkout already in progress"})
	case errors.Is(err, checkout.ErrNoCheckout):
		c.JSON(http.StatusConflict, gin.H{"error": "no checkout in progress"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
