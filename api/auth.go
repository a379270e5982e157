package api

import (
	"net/http"

	"fintrack/config"
	"fintrack/middleware"

	"github.com/gin-gonic/gin"
)

// AuthHandler issues and clears the session cookie.
type AuthHandler struct {
	cfg *config.Config
}

func NewAuthHandler(cfg *config.Config) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

type LoginRequest struct {
	Password string `json:"password" binding:"required"`
}

// cookieOptions returns the cookie security flags for the current mode.
func (h *AuthHandler) cookieOptions() (secure bool) {
	return h.cfg.Server.Mode == "release"
}

// Login verifies the shared password and sets the signed session cookie.
// @Summary Log in with the shared password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "credentials"
// @Success 200 {object} Response
// @Failure 401 {object} Response
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if !middleware.CheckPassword(req.Password) {
		Unauthorized(c, "Unauthorized")
		return
	}

	token, err := middleware.GenerateSessionToken(h.cfg.Auth.SessionTTL)
	if err != nil {
		InternalError(c, SafeErrorMessage(err, "Failed to create session"))
		return
	}

	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, token,
		int(h.cfg.Auth.SessionTTL.Seconds()), "/", "", h.cookieOptions(), true)
	Success(c, nil)
}

// Logout clears the session cookie.
// @Summary Log out
// @Tags auth
// @Produce json
// @Success 200 {object} Response
// @Router /api/auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(middleware.SessionCookieName, "", -1, "/", "", h.cookieOptions(), true)
	SuccessWithMessage(c, "Logged out", nil)
}
