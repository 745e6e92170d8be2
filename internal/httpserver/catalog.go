package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cocktailhaven/internal/catalog"
	"cocktailhaven/internal/domain"
)

// Listing endpoints degrade to an empty result when the remote catalog is
// unreachable; the storefront stays browsable instead of erroring out.

func categoriesHandler(cat CatalogClient, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		names, err := cat.Categories(c.Request.Context())
		if err != nil {
			logger.Warn("category listing failed", zap.Error(err))
			names = nil
		}
		out := make([]string, 0, len(names)+1)
		out = append(out, catalog.CategoryAll)
		out = append(out, names...)
		c.JSON(http.StatusOK, gin.H{"categories": out})
	}
}

func drinksHandler(cat CatalogClient, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		category := c.DefaultQuery("category", catalog.CategoryAll)
		drinks, err := cat.DrinksByCategory(c.Request.Context(), category)
		if err != nil {
			logger.Warn("drink listing failed", zap.String("category", category), zap.Error(err))
			drinks = nil
		}
		if drinks == nil {
			drinks = []domain.DrinkSummary{}
		}
		c.JSON(http.StatusOK, gin.H{"drinks": drinks})
	}
}

func drinkDetailHandler(cat CatalogClient, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		drink, err := cat.DrinkByID(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				respondError(c, err)
				return
			}
			logger.Warn("drink lookup failed", zap.String("id", id), zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"drink": drink})
	}
}
