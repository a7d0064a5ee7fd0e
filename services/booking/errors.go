package booking

import "errors"

var (
	// ErrDoctorNotFound signals a booking request for an unknown doctor.
	ErrDoctorNotFound = errors.New("doctor not found")

	// ErrSlotNotFound signals a booking request naming a slot the doctor does not offer.
	ErrSlotNotFound = errors.New("slot not found for this doctor")

	// ErrSlotConflict signals that a non-cancelled appointment already holds
	// the (doctor, date, slot) tuple.
	ErrSlotConflict = errors.New("slot already booked")

	// ErrInvalidDate signals a booking date outside the YYYY-MM-DD format.
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

	// ErrSlotDayMismatch signals a booking date that does not fall on the
	// slot's weekday.
	ErrSlotDayMismatch = errors.New("date does not fall on the slot's weekday")

	// ErrNotPayable signals a payment-intent request for an appointment that
	// is not awaiting payment.
	ErrNotPayable = errors.New("appointment is not awaiting payment")

	// ErrNotFound signals an unknown appointment id or payment reference.
	ErrNotFound = errors.New("appointment not found")

	// ErrInvalidTransition signals a status change outside the allowed edges.
	ErrInvalidTransition = errors.New("status transition not allowed")

	// ErrPaymentIncomplete signals a confirmation attempt for a payment the
	// provider does not report as succeeded.
	ErrPaymentIncomplete = errors.New("payment has not completed")

	// ErrNotYours signals a doctor acting on an appointment that is not theirs.
	ErrNotYours = errors.New("appointment does not belong to this doctor")
)
