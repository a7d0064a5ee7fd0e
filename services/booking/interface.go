package booking

import (
	"context"

	"clinicbook/models"
)

// BookingRequest carries the inputs for a booking attempt. The patient id
// comes from the authenticated context, never from the request body.
type BookingRequest struct {
	DoctorID string `json:"doctor_id" binding:"required"`
	SlotID   string `json:"slot_id" binding:"required"`
	Date     string `json:"date" binding:"required"` // "YYYY-MM-DD"
}

// PaymentIntentResult is returned to the client to drive the hosted checkout.
type PaymentIntentResult struct {
	PaymentRef   string  `json:"payment_ref"`
	ClientSecret string  `json:"client_secret"`
	Amount       float64 `json:"amount"`
}

// BookingService manages the appointment lifecycle.
type BookingService interface {
	Book(ctx context.Context, patientID string, req BookingRequest) (*models.Appointment, error)
	CreatePaymentIntent(ctx context.Context, patientID, appointmentID string) (*PaymentIntentResult, error)
	ConfirmPayment(ctx context.Context, paymentRef string) (*models.Appointment, error)
	MyAppointments(userID, role string) ([]models.AppointmentView, error)
	ChangeStatus(userID, role, appointmentID, newStatus string) (*models.Appointment, error)
}

// PaymentGateway abstracts the external payment provider.
type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency, appointmentID string) (ref, clientSecret string, err error)
	IntentSucceeded(ctx context.Context, ref string) (bool, error)
}

// ReminderScheduler enqueues an appointment reminder for later delivery.
type ReminderScheduler interface {
	ScheduleReminder(appt *models.Appointment, slot models.Slot) error
}
