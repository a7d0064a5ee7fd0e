package models

import "time"

// Slot is a doctor-defined recurring weekly time window available for booking.
type Slot struct {
	ID     string `bson:"id" json:"id"`
	Day    string `bson:"day" json:"day"`       // Weekday label, e.g. "Monday"
	Start  string `bson:"start" json:"start"`   // "HH:MM"
	End    string `bson:"end" json:"end"`       // "HH:MM"
	Booked bool   `bson:"booked" json:"booked"` // Consumed by a confirmed appointment
}

// Doctor is the practitioner profile linked to a user account with role "doctor".
// At most one Doctor record exists per user (unique index on user_id).
type Doctor struct {
	ID             string    `bson:"id" json:"id"`
	UserID         string    `bson:"user_id" json:"user_id"`
	Specialization string    `bson:"specialization" json:"specialization"`
	ExperienceYrs  int       `bson:"experience_years" json:"experience_years"`
	Fee            float64   `bson:"fee" json:"fee"` // Consultation fee charged per appointment
	Slots          []Slot    `bson:"slots" json:"slots"`
	CreatedAt      time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt      time.Time `bson:"updated_at" json:"updated_at"`
}

// DoctorProfile is the directory view joining the doctor record with its
// account display fields.
type DoctorProfile struct {
	Doctor    `bson:",inline"`
	Name      string `bson:"name" json:"name"`
	Email     string `bson:"email" json:"email"`
	AvatarURL string `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
}
