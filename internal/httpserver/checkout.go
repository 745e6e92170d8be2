package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktailhaven/internal/domain"
)

func checkoutSessionHandler(c *gin.Context) {
	snap := currentEngine(c).Session()
	c.JSON(http.StatusOK, gin.H{
		"state":  snap.State,
		"method": snap.Method,
		"total":  snap.Total,
	})
}

func beginCheckoutHandler(c *gin.Context) {
	total, err := currentEngine(c).BeginCheckout()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": "MethodSelection", "total": total})
}

type methodRequest struct {
	Method string `json:"method"`
}

func selectMethodHandler(c *gin.Context) {
	var in methodRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := currentEngine(c).SelectMethod(domain.PaymentMethod(in.Method)); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"state": "FieldEntry", "method": in.Method})
}

func updateDetailsHandler(c *gin.Context) {
	var in domain.PaymentDetails
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if err := currentEngine(c).UpdateDetails(in); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func submitPaymentHandler(c *gin.Context) {
	conf, err := currentEngine(c).SubmitPayment(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"state":  "Confirmed",
		"method": conf.Method,
		"total":  conf.Total,
	})
}

func cancelCheckoutHandler(c *gin.Context) {
	currentEngine(c).Cancel()
	c.Status(http.StatusNoContent)
}
