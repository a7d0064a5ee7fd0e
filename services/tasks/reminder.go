package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"clinicbook/models"

	"github.com/hibiken/asynq"
)

const TypeAppointmentReminder = "appointment:reminder"

// Reminders fire this long before the slot's start time.
const reminderLead = time.Hour

// ReminderPayload is the task body for a scheduled appointment reminder.
type ReminderPayload struct {
	AppointmentID string `json:"appointmentId"`
	PatientID     string `json:"patientId"`
	DoctorID      string `json:"doctorId"`
	Date          string `json:"date"`
	Start         string `json:"start"`
}

// AsynqReminderScheduler enqueues reminder tasks on the Redis-backed queue.
type AsynqReminderScheduler struct {
	Client *asynq.Client
}

// ScheduleReminder enqueues a reminder ahead of the appointment's start time.
// Appointments starting too soon for the lead window get no reminder.
func (s *AsynqReminderScheduler) ScheduleReminder(appt *models.Appointment, slot models.Slot) error {
	startAt, err := time.ParseInLocation("2006-01-02 15:04", appt.Date+" "+slot.Start, time.Local)
	if err != nil {
		return fmt.Errorf("invalid appointment start time: %w", err)
	}

	fireAt := startAt.Add(-reminderLead)
	if fireAt.Before(time.Now()) {
		return nil
	}

	payload := ReminderPayload{
		AppointmentID: appt.ID,
		PatientID:     appt.PatientID,
		DoctorID:      appt.DoctorID,
		Date:          appt.Date,
		Start:         slot.Start,
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	task := asynq.NewTask(TypeAppointmentReminder, b)
	if _, err := s.Client.Enqueue(task, asynq.ProcessAt(fireAt)); err != nil {
		return fmt.Errorf("failed to enqueue reminder: %w", err)
	}
	return nil
}
