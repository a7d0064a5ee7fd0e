package handlers

import (
	"errors"
	"net/http"

	"clinicbook/services/booking"
	"clinicbook/services/doctor"
	"clinicbook/services/user"
	"clinicbook/utils"

	"github.com/gin-gonic/gin"
)

// respondServiceError maps service errors onto the HTTP error taxonomy:
// validation 400, unauthenticated 401, forbidden 403, not-found 404,
// conflict 409, everything else 500 with a generic message.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, user.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrNotYours):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrNotFound),
		errors.Is(err, booking.ErrNotFound),
		errors.Is(err, booking.ErrDoctorNotFound),
		errors.Is(err, booking.ErrSlotNotFound),
		errors.Is(err, doctor.ErrNotFound),
		errors.Is(err, doctor.ErrNoProfile):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, user.ErrDuplicateEmail),
		errors.Is(err, booking.ErrSlotConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, booking.ErrInvalidTransition),
		errors.Is(err, booking.ErrPaymentIncomplete),
		errors.Is(err, booking.ErrInvalidDate),
		errors.Is(err, booking.ErrSlotDayMismatch),
		errors.Is(err, booking.ErrNotPayable),
		errors.Is(err, doctor.ErrInvalidSlot):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		utils.JSONError(c, http.StatusInternalServerError, "Internal Server Error", err.Error())
	}
}
