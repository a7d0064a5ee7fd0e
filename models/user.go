package models

import "time"

// Roles carried in the JWT role claim and stored on the user record.
const (
	RoleUser   = "user"
	RoleDoctor = "doctor"
	RoleAdmin  = "admin"
)

// User represents a platform account (patient, doctor or admin).
type User struct {
	ID           string    `bson:"id" json:"id"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email"`
	PasswordHash string    `bson:"password_hash" json:"-"`
	Role         string    `bson:"role" json:"role"`
	Phone        string    `bson:"phone,omitempty" json:"phone,omitempty"`
	Address      string    `bson:"address,omitempty" json:"address,omitempty"`
	AvatarURL    string    `bson:"avatar_url,omitempty" json:"avatar_url,omitempty"`
	CreatedAt    time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt    time.Time `bson:"updated_at" json:"updated_at"`
}
