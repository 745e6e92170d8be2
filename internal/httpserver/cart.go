package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktailhaven/internal/domain"
	"cocktailhaven/internal/service/checkout"
)

func cartHandler(c *gin.Context) {
	engine := currentEngine(c)
	cart := engine.Cart()
	if cart.Lines == nil {
		cart.Lines = []domain.CartLine{}
	}
	subtotal := checkout.Subtotal(cart)
	tax := checkout.Tax(subtotal)
	c.JSON(http.StatusOK, gin.H{
		"items":    cart.Lines,
		"subtotal": subtotal,
		"tax":      tax,
		"total":    subtotal.Add(tax),
	})
}

func addItemHandler(c *gin.Context) {
	var in domain.DrinkSummary
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if in.ID == "" || in.Name == "" {
		respondError(c, domain.Validation("idDrink", "drink id and name are required"))
		return
	}
	line, err := currentEngine(c).AddItem(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": line})
}

type quantityRequest struct {
	Delta int `json:"delta"`
}

func changeQuantityHandler(c *gin.Context) {
	var in quantityRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if in.Delta == 0 {
		respondError(c, domain.Validation("delta", "delta must be non-zero"))
		return
	}
	line, err := currentEngine(c).ChangeQuantity(c.Request.Context(), c.Param("lineId"), in.Delta)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": line})
}

func removeLineHandler(c *gin.Context) {
	if err := currentEngine(c).RemoveLine(c.Request.Context(), c.Param("lineId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
