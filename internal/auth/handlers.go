package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Controller handles the login and logout endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
}

// NewController creates the auth controller.
func NewController(service *Service, sessionManager *SessionManager) *Controller {
	return &Controller{service: service, sessionManager: sessionManager}
}

// RegisterRoutes registers authentication routes on the router.
func (ac *Controller) RegisterRoutes(router *gin.Engine) {
	router.GET("/login", ac.LoginStatus)
	router.POST("/login", ac.Login)
	router.POST("/logout", ac.Logout)
}

type loginRequest struct {
	Password string `json:"password" form:"password"`
}

// LoginStatus reports whether the current session is unlocked, so the
// presentation layer knows whether to prompt.
func (ac *Controller) LoginStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"authenticated": ac.sessionManager.IsAuthenticated(c.Request),
		"csrf_token":    GetCSRFToken(c),
	})
}

// Login verifies the gate password and unlocks the session.
func (ac *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBind(&req); err != nil || req.Password == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "password is required"})
		return
	}

	if err := ac.service.Authenticate(req.Password); err != nil {
		if errors.Is(err, ErrInvalidPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid password"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "login failed"})
		return
	}

	if err := ac.sessionManager.CreateSession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "logged in"})
}

// Logout destroys the session.
func (ac *Controller) Logout(c *gin.Context) {
	if err := ac.sessionManager.DestroySession(c.Request); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to destroy session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "logged out"})
}
