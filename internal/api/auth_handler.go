package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"wellvantage/fitness-app/internal/domain"
	"wellvantage/fitness-app/internal/service"
)

// AuthHandler holds the authentication service dependency.
type AuthHandler struct {
	authService service.AuthService
	logger      zerolog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// --- Request Structs ---

type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type GoogleVerifyRequest struct {
	IDToken        string `json:"idToken" binding:"required"`
	GoogleID       string `json:"googleId"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	ProfilePicture string `json:"profilePicture"`
}

// --- Handler Methods ---

// Register godoc
// @Summary Register an email/password account
// @Tags Auth
// @Accept json
// @Produce json
// @Param user body RegisterRequest true "Registration details"
// @Success 201 {object} domain.AuthResponse "Account created and signed in"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 409 {object} gin.H "Conflict (email already exists)"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.authService.Register(c.Request.Context(), domain.Credentials{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		respondError(c, h.logger, err, "Could not process registration")
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// Login godoc
// @Summary Log in with email and password
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body LoginRequest true "Login credentials"
// @Success 200 {object} domain.AuthResponse "Login successful"
// @Failure 400 {object} gin.H "Invalid input (validation error)"
// @Failure 401 {object} gin.H "Unauthorized (invalid credentials)"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.authService.Login(c.Request.Context(), domain.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		respondError(c, h.logger, err, "Could not process login")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// VerifyGoogle godoc
// @Summary Exchange a Google ID token for an API token
// @Description Verifies the token, then signs in the matching user or creates one.
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body GoogleVerifyRequest true "Google identity token and profile"
// @Success 200 {object} domain.AuthResponse "Signed in"
// @Failure 401 {object} gin.H "Invalid identity token"
// @Failure 503 {object} gin.H "Google sign-in not configured"
// @Router /auth/google/verify [post]
func (h *AuthHandler) VerifyGoogle(c *gin.Context) {
	var req GoogleVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	resp, err := h.authService.SignInWithGoogle(c.Request.Context(), domain.GoogleSignIn{
		IDToken:        req.IDToken,
		GoogleID:       req.GoogleID,
		Email:          req.Email,
		Name:           req.Name,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		respondError(c, h.logger, err, "Could not complete Google sign-in")
		return
	}
	c.JSON(http.StatusOK, resp)
}
