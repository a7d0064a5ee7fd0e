package handlers

import (
	"net/http"

	"clinicbook/middleware"
	"clinicbook/services/booking"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BookingHandler serves the appointment lifecycle endpoints.
type BookingHandler struct {
	BookingService booking.BookingService
}

func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{BookingService: svc}
}

// BookHandler handles POST /appointments/book. The patient id comes from the
// authenticated context.
func (h *BookingHandler) BookHandler(c *gin.Context) {
	var req booking.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.BookingService.Book(c.Request.Context(), c.GetString(middleware.CtxUserID), req)
	if err != nil {
		utils.GetLogger().Warn("booking rejected", zap.Error(err))
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// CreatePaymentIntentHandler handles POST /appointments/payment/create-intent.
func (h *BookingHandler) CreatePaymentIntentHandler(c *gin.Context) {
	var req struct {
		AppointmentID string `json:"appointment_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.BookingService.CreatePaymentIntent(c.Request.Context(), c.GetString(middleware.CtxUserID), req.AppointmentID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// ConfirmPaymentHandler handles POST /appointments/payment/confirm.
func (h *BookingHandler) ConfirmPaymentHandler(c *gin.Context) {
	var req struct {
		PaymentRef string `json:"payment_ref" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.BookingService.ConfirmPayment(c.Request.Context(), req.PaymentRef)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}

// MyAppointmentsHandler handles GET /appointments/my-appointments for both
// the patient and the doctor view.
func (h *BookingHandler) MyAppointmentsHandler(c *gin.Context) {
	views, err := h.BookingService.MyAppointments(
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxRole),
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

// ChangeStatusHandler handles PATCH /appointments/:id/status.
func (h *BookingHandler) ChangeStatusHandler(c *gin.Context) {
	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	appt, err := h.BookingService.ChangeStatus(
		c.GetString(middleware.CtxUserID),
		c.GetString(middleware.CtxRole),
		c.Param("id"),
		req.Status,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, appt)
}
