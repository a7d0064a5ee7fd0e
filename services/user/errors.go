package user

import "errors"

var (
	// ErrDuplicateEmail signals a signup or onboarding attempt with an email
	// that already has an account.
	ErrDuplicateEmail = errors.New("an account with this email already exists")

	// ErrInvalidCredentials covers both unknown email and wrong password.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrNotFound signals an unknown user id.
	ErrNotFound = errors.New("user not found")
)
