package controllers

import (
	"net/http"
	"time"

	apperrors "github.com/Maharshi2203/Sattys-main/common/errors"
	"github.com/Maharshi2203/Sattys-main/middleware"
	"github.com/Maharshi2203/Sattys-main/models"
	"github.com/Maharshi2203/Sattys-main/services"
	"github.com/gin-gonic/gin"
)

// AuthController handles the admin session.
type AuthController struct {
	auth         services.AuthService
	validator    *RequestValidator
	sessionTTL   time.Duration
	secureCookie bool
}

func NewAuthController(auth services.AuthService, validator *RequestValidator, sessionTTL time.Duration, secureCookie bool) *AuthController {
	if sessionTTL <= 0 {
		sessionTTL = services.AdminTokenTTL
	}
	return &AuthController{auth: auth, validator: validator, sessionTTL: sessionTTL, secureCookie: secureCookie}
}

// Login handles POST /api/auth/login.
func (ac *AuthController) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := ac.validator.BindJSON(c, &req); err != nil {
		_ = c.Error(apperrors.New(http.StatusBadRequest, "Username and password are required", err))
		return
	}

	ctx, cancel := requestContext(c, DefaultContextTimeout)
	defer cancel()

	token, session, svcErr := ac.auth.Login(ctx, &req)
	if svcErr != nil {
		if svcErr.StatusCode == http.StatusUnauthorized {
			_ = c.Error(apperrors.ErrInvalidCredentials)
			return
		}
		respondError(c, svcErr)
		return
	}

	ac.setSessionCookie(c, token, int(ac.sessionTTL.Seconds()))
	c.JSON(http.StatusOK, gin.H{"success": true, "user": session})
}

// Logout handles POST /api/auth/logout.
func (ac *AuthController) Logout(c *gin.Context) {
	ac.setSessionCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Me handles GET /api/auth/me.
func (ac *AuthController) Me(c *gin.Context) {
	claims, err := middleware.GetAdminClaims(c)
	if err != nil {
		_ = c.Error(apperrors.ErrUnauthorized.Wrap(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": models.AdminSession{ID: claims.UserID, Username: claims.Username, Role: claims.Role}})
}

func (ac *AuthController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.AdminCookieName, value, maxAge, "/", "", ac.secureCookie, true)
}
