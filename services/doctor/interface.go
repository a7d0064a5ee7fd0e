package doctor

import "clinicbook/models"

// DoctorService exposes the practitioner directory and slot management.
type DoctorService interface {
	// ListDoctors returns the directory, optionally filtered by a name
	// substring and an exact specialization.
	ListDoctors(name, specialization string) ([]models.DoctorProfile, error)
	GetDoctor(id string) (*models.DoctorProfile, error)

	// UpdateSlots replaces the availability list of the doctor owned by the
	// authenticated account.
	UpdateSlots(userID string, slots []models.Slot) (*models.Doctor, error)

	// InvalidateDirectory drops the cached directory listing. Called after
	// any mutation that changes what the directory shows.
	InvalidateDirectory()
}
