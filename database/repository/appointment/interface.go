package appointmentRepo

import (
	"errors"

	"clinicbook/models"
)

// ErrSlotTaken signals that a non-cancelled appointment already occupies the
// (doctor, date, slot) tuple. Raised by the partial unique index on insert.
var ErrSlotTaken = errors.New("slot already booked for this doctor and date")

// ErrStaleStatus signals that a conditional status update matched no document,
// i.e. the appointment was not in the expected current status.
var ErrStaleStatus = errors.New("appointment not in expected status")

// AppointmentRepository defines persistence operations for appointments.
type AppointmentRepository interface {
	// Create inserts the appointment. The conflict check and the insert are a
	// single atomic operation; ErrSlotTaken is returned when the slot is occupied.
	Create(appt *models.Appointment) error
	GetByID(id string) (*models.Appointment, error)
	GetByPaymentRef(ref string) (*models.Appointment, error)
	SetPaymentRef(id, ref string) error

	// UpdateStatus transitions the appointment from the expected current
	// status to the new one, returning ErrStaleStatus on a mismatch.
	UpdateStatus(id, from, to string) error
	// SetPaymentStatus records the payment outcome.
	SetPaymentStatus(id, paymentStatus string) error

	ListByPatient(patientID string) ([]models.AppointmentView, error)
	ListByDoctor(doctorID string) ([]models.AppointmentView, error)
}
