package booking

import (
	"errors"
	"fmt"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
)

// MyAppointments lists appointments for the authenticated requester. Doctors
// see their practice calendar, patients see their own bookings.
func (s *DefaultBookingService) MyAppointments(userID, role string) ([]models.AppointmentView, error) {
	if role == models.RoleDoctor {
		doc, err := s.DoctorRepo.GetByUserID(userID)
		if err != nil {
			utils.GetLogger().Error("MyAppointments: failed to fetch doctor", zap.Error(err))
			return nil, fmt.Errorf("failed to list appointments")
		}
		if doc == nil {
			return nil, ErrDoctorNotFound
		}
		return s.ApptRepo.ListByDoctor(doc.ID)
	}
	return s.ApptRepo.ListByPatient(userID)
}

// ChangeStatus applies one of the allowed lifecycle edges:
// pending→{confirmed,cancelled}, confirmed→{completed,cancelled}. Terminal
// states stay terminal. Doctors may only act on their own appointments;
// admins may act on any. Cancelling frees the slot for rebooking.
func (s *DefaultBookingService) ChangeStatus(userID, role, appointmentID, newStatus string) (*models.Appointment, error) {
	appt, err := s.ApptRepo.GetByID(appointmentID)
	if err != nil {
		utils.GetLogger().Error("ChangeStatus: failed to fetch appointment", zap.Error(err))
		return nil, fmt.Errorf("failed to change status")
	}
	if appt == nil {
		return nil, ErrNotFound
	}

	if role == models.RoleDoctor {
		doc, err := s.DoctorRepo.GetByUserID(userID)
		if err != nil {
			return nil, fmt.Errorf("failed to change status")
		}
		if doc == nil || doc.ID != appt.DoctorID {
			return nil, ErrNotYours
		}
	}

	if !models.CanTransition(appt.Status, newStatus) {
		return nil, ErrInvalidTransition
	}

	if err := s.ApptRepo.UpdateStatus(appt.ID, appt.Status, newStatus); err != nil {
		if errors.Is(err, appointmentRepo.ErrStaleStatus) {
			return nil, ErrInvalidTransition
		}
		utils.GetLogger().Error("ChangeStatus: failed to update status", zap.Error(err))
		return nil, fmt.Errorf("failed to change status")
	}

	if newStatus == models.StatusCancelled {
		if err := s.DoctorRepo.SetSlotBooked(appt.DoctorID, appt.SlotID, false); err != nil {
			utils.GetLogger().Warn("ChangeStatus: failed to free slot", zap.Error(err))
		}
	}

	appt.Status = newStatus
	utils.GetLogger().Info("appointment status changed",
		zap.String("appointmentID", appt.ID),
		zap.String("status", newStatus),
	)
	return appt, nil
}
