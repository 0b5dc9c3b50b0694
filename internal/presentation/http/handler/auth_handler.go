package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/nota-perusahaan/internal/application/service"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/dto/request"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/dto/response"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/middleware"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
)

// AuthHandler handles login, registration and logout
type AuthHandler struct {
	authService  *service.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie marks the session
// cookie HTTPS-only.
func NewAuthHandler(authService *service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// LoginPage renders the login form
func (h *AuthHandler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{"Title": "Login"})
}

// Login checks credentials and starts a session
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		if !wantsJSON(c) {
			c.HTML(apperror.GetAppError(err).Code, "login.html", gin.H{"Title": "Login", "Error": apperror.GetAppError(err).Message})
			return
		}
		response.Error(c, err)
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, output.Token, h.authService.SessionTTLSeconds(), "/", "", h.secureCookie, true)

	if !wantsJSON(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	response.OK(c, gin.H{
		"message":  "Login successful",
		"redirect": "/",
		"token":    output.Token,
		"user":     output.User,
	})
}

// RegisterPage renders the registration form
func (h *AuthHandler) RegisterPage(c *gin.Context) {
	c.HTML(http.StatusOK, "register.html", gin.H{"Title": "Daftar"})
}

// Register creates an account
func (h *AuthHandler) Register(c *gin.Context) {
	var req request.RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), &service.RegisterInput{
		FullName:        req.FullName,
		Username:        req.Username,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, gin.H{
		"message": "Registrasi berhasil! Silakan login.",
		"user":    user,
	})
}

// Logout clears the session cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, "", -1, "/", "", h.secureCookie, true)
	c.Redirect(http.StatusFound, "/login")
}

// Me returns the signed-in user
func (h *AuthHandler) Me(c *gin.Context) {
	userID := middleware.GetUserID(c)
	if userID == nil {
		response.Error(c, apperror.ErrUnauthorized)
		return
	}
	user, err := h.authService.CurrentUser(c.Request.Context(), *userID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}
