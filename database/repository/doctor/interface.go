package doctorRepo

import (
	"errors"

	"clinicbook/models"
)

// ErrNotFound signals an unknown doctor id.
var ErrNotFound = errors.New("doctor not found")

// DoctorRepository defines persistence operations for doctor profiles.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	Update(doctor *models.Doctor) error
	GetByID(id string) (*models.Doctor, error)
	GetByUserID(userID string) (*models.Doctor, error)
	GetAllProfiles() ([]models.DoctorProfile, error)

	// SetSlots replaces the doctor's availability list.
	SetSlots(doctorID string, slots []models.Slot) error
	// SetSlotBooked flips the booked flag on one embedded slot.
	SetSlotBooked(doctorID, slotID string, booked bool) error

	// CreateWithUser persists the account and the linked doctor profile in a
	// single transaction (admin onboarding).
	CreateWithUser(user *models.User, doctor *models.Doctor) error
	// DeleteWithUser removes the doctor profile together with its account so
	// no orphaned profile can exist.
	DeleteWithUser(doctorID string) error
}
