package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	appointmentRepo "clinicbook/database/repository/appointment"
	doctorRepo "clinicbook/database/repository/doctor"
	"clinicbook/models"
	"clinicbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultBookingService is the production BookingService implementation.
type DefaultBookingService struct {
	ApptRepo   appointmentRepo.AppointmentRepository
	DoctorRepo doctorRepo.DoctorRepository
	Payments   PaymentGateway
	Reminders  ReminderScheduler
}

// Book validates the doctor and slot, then inserts a pending appointment
// charged at the doctor's current fee. The store's partial unique index is
// the conflict check: there is no separate lookup to race against.
func (s *DefaultBookingService) Book(ctx context.Context, patientID string, req BookingRequest) (*models.Appointment, error) {
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, req.Date)
	}

	doc, err := s.DoctorRepo.GetByID(req.DoctorID)
	if err != nil {
		utils.GetLogger().Error("Book: failed to fetch doctor", zap.String("doctorID", req.DoctorID), zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}
	if doc == nil {
		return nil, ErrDoctorNotFound
	}

	var slot *models.Slot
	for i := range doc.Slots {
		if doc.Slots[i].ID == req.SlotID {
			slot = &doc.Slots[i]
			break
		}
	}
	if slot == nil {
		return nil, ErrSlotNotFound
	}
	// Slots are recurring weekly windows; the requested date must land on
	// the slot's weekday.
	if date.Weekday().String() != slot.Day {
		return nil, fmt.Errorf("%w: %s is a %s, slot is on %s", ErrSlotDayMismatch, req.Date, date.Weekday(), slot.Day)
	}

	appt := &models.Appointment{
		ID:            uuid.New().String(),
		DoctorID:      doc.ID,
		PatientID:     patientID,
		SlotID:        slot.ID,
		Date:          req.Date,
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		Amount:        doc.Fee,
	}

	if err := s.ApptRepo.Create(appt); err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			return nil, ErrSlotConflict
		}
		utils.GetLogger().Error("Book: failed to create appointment", zap.Error(err))
		return nil, fmt.Errorf("booking failed, please try again")
	}

	utils.GetLogger().Info("appointment booked",
		zap.String("appointmentID", appt.ID),
		zap.String("doctorID", doc.ID),
		zap.String("date", appt.Date),
		zap.String("slotID", slot.ID),
	)
	return appt, nil
}
