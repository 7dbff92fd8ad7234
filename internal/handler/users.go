package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lawrenceli7/spark-bytes/internal/model"
	"github.com/lawrenceli7/spark-bytes/internal/service"
)

type UserHandler struct {
	svc *service.UserService
}

func NewUserHandler(svc *service.UserService) *UserHandler {
	return &UserHandler{svc: svc}
}

// GetUsers godoc
// @Summary List users
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.UserResponse
// @Failure 401 {object} model.ErrorResponse
// @Failure 403 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/user [get]
func (h *UserHandler) GetUsers(c *gin.Context) {
	user := GetAuthUser(c)
	if user == nil || !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		return
	}

	users, err := h.svc.ListUsers(c.Request.Context())
	if err != nil {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// UpdateUser godoc
// @Summary Update a single profile field
// @Description Field must be one of name, email or password. A fresh token
// @Description for the updated user is always returned; the caller must
// @Description replace its cached token or keep sending stale identity.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "User ID"
// @Param request body model.UpdateUserRequest true "Field and value"
// @Success 200 {object} model.TokenResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/user/update/{userId} [post]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")

	var req model.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	token, err := h.svc.UpdateField(c.Request.Context(), userID, req.Field, req.Value)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.TokenResponse{Success: true, Token: token})
}

// UpdatePermissions godoc
// @Summary Update a user's permission flags
// @Description Persists both flags on the target user. When the acting user
// @Description targets themselves the response carries a fresh token; any
// @Description other target keeps their previously issued token, with its old
// @Description claims, until it expires or they log in again.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userId path string true "Target user ID"
// @Param request body model.UpdatePermissionsRequest true "Permission flags"
// @Success 200 {object} model.UpdatePermissionsResponse
// @Failure 400 {object} model.ErrorResponse
// @Failure 404 {object} model.ErrorResponse
// @Failure 500 {object} model.ErrorResponse
// @Router /api/user/update/permissions/{userId} [patch]
func (h *UserHandler) UpdatePermissions(c *gin.Context) {
	targetID := c.Param("userId")
	acting := GetAuthUser(c)
	if acting == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req model.UpdatePermissionsRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.IsAdmin == nil || req.CanPostEvents == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
		return
	}

	token, err := h.svc.UpdatePermissions(c.Request.Context(), targetID, acting.ID, *req.IsAdmin, *req.CanPostEvents)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, model.UpdatePermissionsResponse{Success: true, Token: token})
}
