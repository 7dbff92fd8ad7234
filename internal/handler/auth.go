package handler

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lawrenceli7/spark-bytes/internal/model"
	"github.com/lawrenceli7/spark-bytes/internal/service"
)

type AuthHandler struct {
	svc *service.AuthService
}

func NewAuthHandler(svc *service.AuthService) *AuthHandler {
	return &AuthHandler{svc: svc}
}

// Signup godoc
// @Summary Register a new user
// @Description Creates an account with default permissions and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.SignupRequest true "Name, email and password"
// @Success 201 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 409 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req model.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.svc.Signup(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, model.TokenResponse{Success: true, Token: token})
}

// Login godoc
// @Summary Login
// @Description Verifies credentials and mints a token from current permission flags.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Email and password"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	token, err := h.svc.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TokenResponse{Success: true, Token: token})
}

// writeServiceError maps service sentinel errors onto the HTTP error
// taxonomy. Anything unexpected is logged and collapsed to a generic 500 so
// internals never leak to the client.
func writeServiceError(c *gin.Context, err error) {
	switch err {
	case service.ErrMissingField:
		c.JSON(http.StatusBadRequest, gin.H{"error": "Required field missing"})
	case service.ErrDuplicateUser:
		c.JSON(http.StatusConflict, gin.H{"error": "User already exists"})
	case service.ErrInvalidCredentials:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case service.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
	case service.ErrForbidden:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case service.ErrValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	case service.ErrNotFound:
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found."})
	default:
		log.Printf("unexpected service error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error"})
	}
}
