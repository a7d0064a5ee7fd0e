package models

import "time"

// Appointment status values. Cancelled and completed are terminal.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCancelled = "cancelled"
	StatusCompleted = "completed"
)

// Payment status values.
const (
	PaymentPending   = "pending"
	PaymentCompleted = "completed"
	PaymentFailed    = "failed"
)

// statusTransitions is the full set of allowed status edges.
var statusTransitions = map[string][]string{
	StatusPending:   {StatusConfirmed, StatusCancelled},
	StatusConfirmed: {StatusCompleted, StatusCancelled},
}

// CanTransition reports whether an appointment may move from one status to another.
func CanTransition(from, to string) bool {
	for _, next := range statusTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Appointment is a patient's reservation of one doctor-slot-date combination.
// Appointments are never physically deleted, only transitioned to cancelled.
type Appointment struct {
	ID            string  `bson:"id" json:"id"`
	DoctorID      string  `bson:"doctor_id" json:"doctor_id"`
	PatientID     string  `bson:"patient_id" json:"patient_id"`
	SlotID        string  `bson:"slot_id" json:"slot_id"`
	Date          string  `bson:"date" json:"date"` // "YYYY-MM-DD"
	Status        string  `bson:"status" json:"status"`
	PaymentStatus string  `bson:"payment_status" json:"payment_status"`
	PaymentRef    string  `bson:"payment_ref,omitempty" json:"payment_ref,omitempty"` // Stripe PaymentIntent id
	Amount        float64 `bson:"amount" json:"amount"`

	// Active mirrors status != cancelled and backs the partial unique index
	// that prevents double-booking a (doctor, date, slot) tuple.
	Active    bool      `bson:"active" json:"-"`
	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// AppointmentView is an appointment joined with counterpart display fields
// for the my-appointments listing.
type AppointmentView struct {
	Appointment    `bson:",inline"`
	DoctorName     string `bson:"doctor_name,omitempty" json:"doctor_name,omitempty"`
	Specialization string `bson:"specialization,omitempty" json:"specialization,omitempty"`
	PatientName    string `bson:"patient_name,omitempty" json:"patient_name,omitempty"`
}
