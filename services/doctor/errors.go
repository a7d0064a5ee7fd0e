package doctor

import "errors"

var (
	// ErrNotFound signals an unknown doctor id.
	ErrNotFound = errors.New("doctor not found")

	// ErrNoProfile signals that the authenticated account owns no doctor profile.
	ErrNoProfile = errors.New("no doctor profile for this account")

	// ErrInvalidSlot signals a malformed availability slot.
	ErrInvalidSlot = errors.New("invalid availability slot")
)
