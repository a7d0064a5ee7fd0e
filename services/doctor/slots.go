package doctor

import (
	"fmt"

	"clinicbook/models"
	"clinicbook/utils"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var weekdays = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// UpdateSlots replaces the availability list of the doctor owned by userID.
// Slots without an id are assigned one; booked flags are reset, since a
// replaced slot list defines fresh availability.
func (s *DefaultDoctorService) UpdateSlots(userID string, slots []models.Slot) (*models.Doctor, error) {
	doc, err := s.Repo.GetByUserID(userID)
	if err != nil {
		utils.GetLogger().Error("UpdateSlots: failed to fetch doctor", zap.String("userID", userID), zap.Error(err))
		return nil, fmt.Errorf("failed to update slots")
	}
	if doc == nil {
		return nil, ErrNoProfile
	}

	for i := range slots {
		if !weekdays[slots[i].Day] || slots[i].Start == "" || slots[i].End == "" || slots[i].Start >= slots[i].End {
			return nil, ErrInvalidSlot
		}
		if slots[i].ID == "" {
			slots[i].ID = uuid.New().String()
		}
		slots[i].Booked = false
	}

	if err := s.Repo.SetSlots(doc.ID, slots); err != nil {
		utils.GetLogger().Error("UpdateSlots: failed to persist slots", zap.String("doctorID", doc.ID), zap.Error(err))
		return nil, fmt.Errorf("failed to update slots")
	}
	doc.Slots = slots

	s.InvalidateDirectory()
	return doc, nil
}
