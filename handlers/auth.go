package handlers

import (
	"net/http"

	"clinicbook/middleware"
	"clinicbook/services/user"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AuthHandler serves registration, login and profile endpoints.
type AuthHandler struct {
	UserService user.UserService
}

func NewAuthHandler(svc user.UserService) *AuthHandler {
	return &AuthHandler{UserService: svc}
}

// SignupHandler handles POST /auth/signup.
func (h *AuthHandler) SignupHandler(c *gin.Context) {
	var input user.RegistrationInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.UserService.Register(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// LoginHandler handles POST /auth/login.
func (h *AuthHandler) LoginHandler(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.UserService.Authenticate(req.Email, req.Password)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetProfileHandler handles GET /auth/profile/:id. Accounts may only read
// their own profile.
func (h *AuthHandler) GetProfileHandler(c *gin.Context) {
	id := c.Param("id")
	if id != c.GetString(middleware.CtxUserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot access another account's profile"})
		return
	}

	usr, err := h.UserService.GetProfile(id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// UpdateProfileHandler handles PATCH /auth/profile/:id.
func (h *AuthHandler) UpdateProfileHandler(c *gin.Context) {
	id := c.Param("id")
	if id != c.GetString(middleware.CtxUserID) {
		c.JSON(http.StatusForbidden, gin.H{"error": "Cannot modify another account's profile"})
		return
	}

	var update user.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	usr, err := h.UserService.UpdateProfile(id, update)
	if err != nil {
		utils.GetLogger().Error("Failed to update profile", zap.String("id", id), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, usr)
}

// ChangePasswordHandler handles POST /auth/change-password.
func (h *AuthHandler) ChangePasswordHandler(c *gin.Context) {
	var req struct {
		CurrentPassword string `json:"currentPassword" binding:"required"`
		NewPassword     string `json:"newPassword" binding:"required,min=8"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id := c.GetString(middleware.CtxUserID)
	if err := h.UserService.ChangePassword(id, req.CurrentPassword, req.NewPassword); err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}
