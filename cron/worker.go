package cron

import (
	"context"
	"encoding/json"

	"clinicbook/config"
	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"
	"clinicbook/services/tasks"
	"clinicbook/utils"

	"github.com/hibiken/asynq"
	"go.uber.org/zap"
)

// StartReminderWorker runs the asynq worker consuming scheduled appointment
// reminders. The worker never mutates appointment status; stale pending
// appointments are left for manual cleanup.
func StartReminderWorker(apptRepo appointmentRepo.AppointmentRepository) {
	redisOpts := asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisReminderDB,
	}

	srv := asynq.NewServer(
		redisOpts,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"default": 1,
			},
		},
	)

	mux := asynq.NewServeMux()
	mux.HandleFunc(tasks.TypeAppointmentReminder, handleReminderTask(apptRepo))

	go func() {
		utils.GetLogger().Info("starting reminder worker")
		if err := srv.Run(mux); err != nil {
			utils.GetLogger().Error("reminder worker stopped", zap.Error(err))
		}
	}()
}

func handleReminderTask(apptRepo appointmentRepo.AppointmentRepository) asynq.HandlerFunc {
	return func(ctx context.Context, task *asynq.Task) error {
		logger := utils.GetLogger()

		var p tasks.ReminderPayload
		if err := json.Unmarshal(task.Payload(), &p); err != nil {
			logger.Error("reminder task has invalid payload", zap.Error(err))
			return err
		}

		// Reminders for appointments cancelled after scheduling are dropped.
		appt, err := apptRepo.GetByID(p.AppointmentID)
		if err != nil {
			return err
		}
		if appt == nil || appt.Status != models.StatusConfirmed {
			logger.Debug("skipping reminder for non-confirmed appointment",
				zap.String("appointmentID", p.AppointmentID))
			return nil
		}

		logger.Info("appointment reminder due",
			zap.String("appointmentID", p.AppointmentID),
			zap.String("patientID", p.PatientID),
			zap.String("doctorID", p.DoctorID),
			zap.String("date", p.Date),
			zap.String("start", p.Start),
		)
		return nil
	}
}
