package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cocktailhaven/internal/domain"
	"cocktailhaven/internal/service/session"
)

type userView struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

func viewOf(account domain.UserAccount) userView {
	return userView{
		Email:     account.Email,
		FirstName: account.FirstName,
		LastName:  account.LastName,
	}
}

func signupHandler(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in session.RegisterInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		account, err := sessions.Register(c.Request.Context(), in)
		if err != nil {
			respondError(c, err)
			return
		}
		token, err := sessions.IssueToken(*account)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"token": token, "user": viewOf(*account)})
	}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func loginHandler(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in loginRequest
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
		account, err := sessions.Login(c.Request.Context(), in.Email, in.Password)
		if err != nil {
			respondError(c, err)
			return
		}
		token, err := sessions.IssueToken(*account)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"token": token, "user": viewOf(*account)})
	}
}

func logoutHandler(sessions SessionService) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessions.Logout(bearerToken(c))
		c.Status(http.StatusNoContent)
	}
}

func meHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"user": viewOf(currentAccount(c))})
}
