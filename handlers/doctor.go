package handlers

import (
	"net/http"

	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/doctor"

	"github.com/gin-gonic/gin"
)

// DoctorHandler serves the directory and slot management endpoints.
type DoctorHandler struct {
	DoctorService doctor.DoctorService
}

func NewDoctorHandler(svc doctor.DoctorService) *DoctorHandler {
	return &DoctorHandler{DoctorService: svc}
}

// ListDoctorsHandler handles GET /doctors. Optional query filters: name
// (substring) and specialization (exact).
func (h *DoctorHandler) ListDoctorsHandler(c *gin.Context) {
	profiles, err := h.DoctorService.ListDoctors(c.Query("name"), c.Query("specialization"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profiles)
}

// GetDoctorHandler handles GET /doctors/:id.
func (h *DoctorHandler) GetDoctorHandler(c *gin.Context) {
	profile, err := h.DoctorService.GetDoctor(c.Param("id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateSlotsHandler handles PUT /doctors/update-slots for the doctor role.
func (h *DoctorHandler) UpdateSlotsHandler(c *gin.Context) {
	var req struct {
		Slots []models.Slot `json:"slots" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	doc, err := h.DoctorService.UpdateSlots(c.GetString(middleware.CtxUserID), req.Slots)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}
