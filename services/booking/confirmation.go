package booking

import (
	"context"
	"errors"
	"fmt"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// ConfirmPayment verifies the referenced payment with the provider and, on
// success, transitions the appointment to confirmed, records the payment and
// marks the slot booked. Confirming the same reference twice is idempotent:
// the already-confirmed appointment is returned unchanged.
func (s *DefaultBookingService) ConfirmPayment(ctx context.Context, paymentRef string) (*models.Appointment, error) {
	appt, err := s.ApptRepo.GetByPaymentRef(paymentRef)
	if err != nil {
		utils.GetLogger().Error("ConfirmPayment: failed to fetch appointment", zap.Error(err))
		return nil, fmt.Errorf("payment confirmation failed, please try again")
	}
	if appt == nil {
		return nil, ErrNotFound
	}

	if appt.Status == models.StatusConfirmed && appt.PaymentStatus == models.PaymentCompleted {
		return appt, nil
	}

	succeeded, err := s.Payments.IntentSucceeded(ctx, paymentRef)
	if err != nil {
		utils.GetLogger().Error("ConfirmPayment: provider query failed", zap.String("ref", paymentRef), zap.Error(err))
		return nil, fmt.Errorf("payment confirmation failed, please try again")
	}
	if !succeeded {
		if err := s.ApptRepo.SetPaymentStatus(appt.ID, models.PaymentFailed); err != nil {
			utils.GetLogger().Error("ConfirmPayment: failed to record failed payment", zap.Error(err))
		}
		return nil, ErrPaymentIncomplete
	}

	if err := s.ApptRepo.UpdateStatus(appt.ID, models.StatusPending, models.StatusConfirmed); err != nil {
		if errors.Is(err, appointmentRepo.ErrStaleStatus) {
			// A concurrent confirmation won; re-read and report its outcome.
			current, rerr := s.ApptRepo.GetByID(appt.ID)
			if rerr == nil && current != nil && current.Status == models.StatusConfirmed {
				return current, nil
			}
			return nil, ErrInvalidTransition
		}
		utils.GetLogger().Error("ConfirmPayment: failed to confirm appointment", zap.Error(err))
		return nil, fmt.Errorf("payment confirmation failed, please try again")
	}

	if err := s.ApptRepo.SetPaymentStatus(appt.ID, models.PaymentCompleted); err != nil {
		utils.GetLogger().Error("ConfirmPayment: failed to record payment", zap.Error(err))
	}
	appt.Status = models.StatusConfirmed
	appt.PaymentStatus = models.PaymentCompleted

	if err := s.DoctorRepo.SetSlotBooked(appt.DoctorID, appt.SlotID, true); err != nil {
		utils.GetLogger().Warn("ConfirmPayment: failed to mark slot booked", zap.Error(err))
	}

	if s.Reminders != nil {
		if doc, derr := s.DoctorRepo.GetByID(appt.DoctorID); derr == nil && doc != nil {
			for _, slot := range doc.Slots {
				if slot.ID == appt.SlotID {
					if err := s.Reminders.ScheduleReminder(appt, slot); err != nil {
						utils.GetLogger().Warn("ConfirmPayment: failed to schedule reminder", zap.Error(err))
					}
					break
				}
			}
		}
	}

	utils.GetLogger().Info("appointment confirmed",
		zap.String("appointmentID", appt.ID),
		zap.String("paymentRef", paymentRef),
	)
	return appt, nil
}
