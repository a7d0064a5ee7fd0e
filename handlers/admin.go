package handlers

import (
	"net/http"
	"strconv"

	"clinicbook/services/admin"
	"clinicbook/services/storage"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// AdminHandler serves doctor onboarding/removal and read-only listings.
type AdminHandler struct {
	AdminService admin.AdminService
	Storage      storage.StorageService
}

func NewAdminHandler(adminSvc admin.AdminService, storageSvc storage.StorageService) *AdminHandler {
	return &AdminHandler{AdminService: adminSvc, Storage: storageSvc}
}

// AddDoctorHandler handles POST /admin/add-doctor (multipart). The avatar
// image is uploaded to the media host first; its URL is stored verbatim.
func (h *AdminHandler) AddDoctorHandler(c *gin.Context) {
	logger := utils.GetLogger()

	input := admin.OnboardInput{
		Name:           c.PostForm("name"),
		Email:          c.PostForm("email"),
		Password:       c.PostForm("password"),
		Phone:          c.PostForm("phone"),
		Specialization: c.PostForm("specialization"),
	}
	if input.Name == "" || input.Email == "" || input.Password == "" || input.Specialization == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name, email, password and specialization are required"})
		return
	}

	if v := c.PostForm("experience_years"); v != "" {
		years, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid experience_years"})
			return
		}
		input.ExperienceYrs = years
	}
	if v := c.PostForm("fee"); v != "" {
		fee, err := strconv.ParseFloat(v, 64)
		if err != nil || fee < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid fee"})
			return
		}
		input.Fee = fee
	}

	if fileHeader, err := c.FormFile("image"); err == nil {
		file, err := fileHeader.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "failed to read image"})
			return
		}
		defer file.Close()

		url, err := h.Storage.UploadImage(c.Request.Context(), file, "doctors")
		if err != nil {
			logger.Error("avatar upload failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload image"})
			return
		}
		input.AvatarURL = url
	}

	profile, err := h.AdminService.AddDoctor(input)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, profile)
}

// RemoveDoctorHandler handles DELETE /admin/doctors/:id.
func (h *AdminHandler) RemoveDoctorHandler(c *gin.Context) {
	id := c.Param("id")
	if err := h.AdminService.RemoveDoctor(id); err != nil {
		utils.GetLogger().Error("doctor removal failed", zap.String("id", id), zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Doctor removed"})
}

// ListUsersHandler handles GET /admin/users.
func (h *AdminHandler) ListUsersHandler(c *gin.Context) {
	users, err := h.AdminService.ListUsers()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

// ListDoctorsHandler handles GET /admin/doctors.
func (h *AdminHandler) ListDoctorsHandler(c *gin.Context) {
	doctors, err := h.AdminService.ListDoctors()
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctors)
}
