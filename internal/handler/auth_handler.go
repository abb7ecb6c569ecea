package handler

import (
	"errors"
	"log"
	"net/http"
	"net/url"

	"taskboard/internal/auth"
	"taskboard/internal/middleware"
	"taskboard/internal/model"
	"taskboard/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const oauthStateCookie = "oauth_state"

type AuthHandler struct {
	tokens      *auth.TokenService
	users       repository.UserRepositoryInterface
	google      *auth.GoogleProvider
	frontendURL string
}

func NewAuthHandler(tokens *auth.TokenService, users repository.UserRepositoryInterface, google *auth.GoogleProvider, frontendURL string) *AuthHandler {
	return &AuthHandler{
		tokens:      tokens,
		users:       users,
		google:      google,
		frontendURL: frontendURL,
	}
}

type LoginRequest struct {
	Email string `json:"email" binding:"required,email"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// Login authenticates a registered email and returns a token pair.
// @Summary      Log in with a registered email
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login payload"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]interface{}
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "A valid email is required")
		return
	}

	user, pair, err := h.tokens.Login(c.Request.Context(), req.Email)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid credentials")
			return
		}
		log.Printf("❌ Login failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"user":         user,
		"accessToken":  pair.AccessToken,
		"refreshToken": pair.RefreshToken,
	})
}

// Refresh rotates a refresh token for a fresh pair.
// @Summary      Exchange a refresh token for fresh tokens
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh payload"
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]interface{}
// @Router       /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	_, pair, err := h.tokens.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidRefreshToken) {
			respondError(c, http.StatusUnauthorized, "Invalid refresh token")
			return
		}
		log.Printf("❌ Refresh failed: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}

	respondOK(c, http.StatusOK, pair)
}

// Logout revokes a refresh token. Revoking an unknown token still succeeds.
// @Summary      Revoke a refresh token
// @Tags         Auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Logout payload"
// @Success      200 {object} map[string]interface{}
// @Router       /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	var req RefreshRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Refresh token is required")
		return
	}

	h.tokens.Logout(req.RefreshToken)
	respondOK(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// Me returns the user behind the presented access token.
// @Summary      Retrieve the current authenticated user
// @Tags         Auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} map[string]interface{}
// @Failure      401 {object} map[string]interface{}
// @Router       /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	userID, exists := c.Get(middleware.UserIDKey)
	if !exists {
		respondError(c, http.StatusUnauthorized, "Not authenticated")
		return
	}

	id, ok := userID.(uuid.UUID)
	if !ok {
		respondError(c, http.StatusInternalServerError, "Invalid user ID format")
		return
	}

	user, err := h.users.GetByID(c.Request.Context(), id)
	if err != nil {
		log.Printf("❌ Failed to load user: %v", err)
		respondError(c, http.StatusInternalServerError, "Internal server error")
		return
	}
	if user == nil {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	respondOK(c, http.StatusOK, user)
}

// GoogleLogin redirects to the Google consent screen.
// @Summary      Start the Google OAuth flow
// @Tags         Auth
// @Success      307
// @Router       /auth/google [get]
func (h *AuthHandler) GoogleLogin(c *gin.Context) {
	if !h.google.Enabled() {
		respondError(c, http.StatusServiceUnavailable, "Google login is not configured")
		return
	}

	state := uuid.NewString()
	c.SetCookie(oauthStateCookie, state, 600, "/", "", false, true)
	c.Redirect(http.StatusTemporaryRedirect, h.google.LoginURL(state))
}

// GoogleCallback exchanges the provider profile for a local user and token
// pair, then redirects to the frontend with the tokens as query parameters
// (or an error parameter on failure).
// @Summary      Complete the Google OAuth flow
// @Tags         Auth
// @Success      307
// @Router       /auth/google/callback [get]
func (h *AuthHandler) GoogleCallback(c *gin.Context) {
	if !h.google.Enabled() {
		h.redirectFrontend(c, url.Values{"error": {"Google login is not configured"}})
		return
	}

	if errParam := c.Query("error"); errParam != "" {
		h.redirectFrontend(c, url.Values{"error": {errParam}})
		return
	}

	state, err := c.Cookie(oauthStateCookie)
	if err != nil || state == "" || state != c.Query("state") {
		h.redirectFrontend(c, url.Values{"error": {"Invalid OAuth state"}})
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", false, true)

	code := c.Query("code")
	if code == "" {
		h.redirectFrontend(c, url.Values{"error": {"Missing authorization code"}})
		return
	}

	profile, err := h.google.ExchangeCode(c.Request.Context(), code)
	if err != nil {
		log.Printf("❌ Google code exchange failed: %v", err)
		h.redirectFrontend(c, url.Values{"error": {"Google authentication failed"}})
		return
	}

	user, err := h.users.FindByEmail(c.Request.Context(), profile.Email)
	if err != nil {
		log.Printf("❌ Failed to look up user: %v", err)
		h.redirectFrontend(c, url.Values{"error": {"Google authentication failed"}})
		return
	}
	if user == nil {
		user = &model.User{Name: profile.Name, Email: profile.Email}
		if err := h.users.Create(c.Request.Context(), user); err != nil {
			log.Printf("❌ Failed to create user from Google profile: %v", err)
			h.redirectFrontend(c, url.Values{"error": {"Google authentication failed"}})
			return
		}
	}

	pair, err := h.tokens.IssueTokens(user)
	if err != nil {
		log.Printf("❌ Failed to issue tokens: %v", err)
		h.redirectFrontend(c, url.Values{"error": {"Google authentication failed"}})
		return
	}

	h.redirectFrontend(c, url.Values{
		"accessToken":  {pair.AccessToken},
		"refreshToken": {pair.RefreshToken},
	})
}

func (h *AuthHandler) redirectFrontend(c *gin.Context, params url.Values) {
	target, err := url.Parse(h.frontendURL)
	if err != nil {
		respondError(c, http.StatusInternalServerError, "Invalid frontend URL")
		return
	}
	target.RawQuery = params.Encode()
	c.Redirect(http.StatusTemporaryRedirect, target.String())
}
