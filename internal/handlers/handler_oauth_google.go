package handlers

import (
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/cleanit/cleanit_admin/internal/core/domain"
	portssvc "github.com/cleanit/cleanit_admin/internal/core/ports/services"
	"github.com/cleanit/cleanit_admin/internal/dto"
	"github.com/cleanit/cleanit_admin/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	oauthStateCookie = "cleanit_oauth_state"
	oauthStateMaxAge = 600 // seconds
	oauthCookiePath  = "/api/v1/auth/google"
)

// googleOAuthHandler signs managers in through Google.
type googleOAuthHandler struct {
	googleService portssvc.GoogleSignInSvc
	authService   portssvc.AuthSvc
	secureCookie  bool
}

func newGoogleOAuthHandler(gs portssvc.GoogleSignInSvc, as portssvc.AuthSvc, secureCookie bool) *googleOAuthHandler {
	return &googleOAuthHandler{googleService: gs, authService: as, secureCookie: secureCookie}
}

func (h *googleOAuthHandler) available(c *gin.Context) bool {
	if h.googleService == nil || !h.googleService.Enabled() {
		c.JSON(http.StatusServiceUnavailable, ErrorResponse{Error: "Google sign-in is not configured"})
		return false
	}
	return true
}

// login godoc
// @Summary Start Google sign-in
// @Description Redirects to Google's consent screen and remembers the OAuth state in a cookie.
// @Tags auth
// @Success 302 "Redirect to Google"
// @Failure 503 {object} ErrorResponse "Google sign-in is not configured"
// @Router /auth/google/login [get]
func (h *googleOAuthHandler) login(c *gin.Context) {
	if !h.available(c) {
		return
	}
	state, err := utils.GenerateSecureRandomString(16)
	if err != nil {
		loggerFor(c).Error("Failed to generate OAuth state", slog.String("error", err.Error()))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to start Google sign-in"})
		return
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, oauthCookiePath, "", h.secureCookie, true)
	c.Redirect(http.StatusFound, h.googleService.LoginURL(state))
}

// callback godoc
// @Summary Finish Google sign-in
// @Description Checks the OAuth state, exchanges the code and signs in the manager whose verified email Google returned.
// @Tags auth
// @Produce json
// @Param code query string true "Authorization code"
// @Param state query string true "OAuth state"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Missing code or state mismatch"
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account may not use the console"
// @Failure 503 {object} ErrorResponse "Google sign-in is not configured"
// @Router /auth/google/callback [get]
func (h *googleOAuthHandler) callback(c *gin.Context) {
	if !h.available(c) {
		return
	}
	if msg := c.Query("error"); msg != "" {
		loggerFor(c).Warn("Google sign-in cancelled", slog.String("error", msg))
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Google sign-in was cancelled"})
		return
	}

	cookieState, err := c.Cookie(oauthStateCookie)
	state := c.Query("state")
	if err != nil || state == "" || subtle.ConstantTimeCompare([]byte(cookieState), []byte(state)) != 1 {
		loggerFor(c).Warn("OAuth state mismatch")
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid OAuth state"})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, oauthCookiePath, "", h.secureCookie, true)

	code := c.Query("code")
	if code == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Authorization code is required"})
		return
	}
	h.signIn(c, code)
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code
// @Description For clients that run the Google redirect themselves and post back the code.
// @Tags auth
// @Accept json
// @Produce json
// @Param code body dto.ExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse "Account may not use the console"
// @Failure 503 {object} ErrorResponse "Google sign-in is not configured"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	if !h.available(c) {
		return
	}
	var req dto.ExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	h.signIn(c, req.Code)
}

func (h *googleOAuthHandler) signIn(c *gin.Context, code string) {
	ctx := c.Request.Context()
	identity, err := h.googleService.Exchange(ctx, code)
	if err != nil {
		respondError(c, err, "Failed to complete Google sign-in")
		return
	}
	resp, err := h.authService.LoginWithIdentity(ctx, identity)
	if err != nil {
		respondError(c, err, "Login failed")
		return
	}

	loggerFor(c).Info("Manager logged in",
		slog.String("user_id", resp.User.UserID),
		slog.String("provider", string(domain.ProviderGoogle)))
	c.JSON(http.StatusOK, resp)
}
