package httpserver

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cocktailhaven/internal/domain"
	"cocktailhaven/internal/service/checkout"
	"cocktailhaven/internal/service/session"
)

// SessionService is the slice of the session service the handlers need.
type SessionService interface {
	Register(ctx context.Context, in session.RegisterInput) (*domain.UserAccount, error)
	Login(ctx context.Context, email, password string) (*domain.UserAccount, error)
	IssueToken(account domain.UserAccount) (string, error)
	LookupByToken(ctx context.Context, token string) (*domain.UserAccount, error)
	Logout(token string)
}

// CatalogClient fetches categories and drinks from the remote catalog.
type CatalogClient interface {
	Categories(ctx context.Context) ([]string, error)
	DrinksByCategory(ctx context.Context, category string) ([]domain.DrinkSummary, error)
	DrinkByID(ctx context.Context, id string) (*domain.Drink, error)
}

// EngineProvider yields the per-account cart engine.
type EngineProvider interface {
	For(ctx context.Context, email string) (*checkout.Engine, error)
}

// Pinger checks backing-store reachability for the readiness probe.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Deps are the wired services handed to the router.
type Deps struct {
	Sessions SessionService
	Catalog  CatalogClient
	Engines  EngineProvider
	Ready    Pinger // nil means always ready
}

const accountKey = "account"

// buildRouter wires routes for the storefront API.
func buildRouter(logger *zap.Logger, deps Deps) (*gin.Engine, error) {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery(), requestLogger(logger))
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(deps.Ready))

	router.POST("/signup", signupHandler(deps.Sessions))
	router.POST("/login", loginHandler(deps.Sessions))

	authed := router.Group("")
	authed.Use(authRequired(deps.Sessions))
	{
		authed.POST("/logout", logoutHandler(deps.Sessions))
		authed.GET("/me", meHandler)

		authed.GET("/categories", categoriesHandler(deps.Catalog, logger))
		authed.GET("/drinks", drinksHandler(deps.Catalog, logger))
		authed.GET("/drinks/:id", drinkDetailHandler(deps.Catalog, logger))

		cart := authed.Group("")
		cart.Use(withEngine(deps.Engines, logger))
		{
			cart.GET("/cart", cartHandler)
			cart.POST("/cart/items", addItemHandler)
			cart.PATCH("/cart/items/:lineId", changeQuantityHandler)
			cart.DELETE("/cart/items/:lineId", removeLineHandler)

			cart.GET("/checkout", checkoutSessionHandler)
			cart.POST("/checkout", beginCheckoutHandler)
			cart.POST("/checkout/method", selectMethodHandler)
			cart.POST("/checkout/details", updateDetailsHandler)
			cart.POST("/checkout/submit", submitPaymentHandler)
			cart.DELETE("/checkout", cancelCheckoutHandler)
		}
	}

	return router, nil
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)),
		)
	}
}

func authRequired(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}
		account, err := sessions.LookupByToken(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}
		c.Set(accountKey, *account)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}

func currentAccount(c *gin.Context) domain.UserAccount {
	return c.MustGet(accountKey).(domain.UserAccount)
}

const engineKey = "engine"

func withEngine(engines EngineProvider, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		account := currentAccount(c)
		engine, err := engines.For(c.Request.Context(), account.Email)
		if err != nil {
			logger.Error("engine init failed", zap.String("email", account.Email), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		c.Set(engineKey, engine)
		c.Next()
	}
}

func currentEngine(c *gin.Context) *checkout.Engine {
	return c.MustGet(engineKey).(*checkout.Engine)
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(ready Pinger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ready == nil {
			c.JSON(http.StatusOK, gin.H{"status": "ready"})
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()
		if err := ready.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "store not reachable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
