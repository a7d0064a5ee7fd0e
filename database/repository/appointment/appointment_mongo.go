package appointmentRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoAppointmentRepo implements AppointmentRepository using MongoDB.
type MongoAppointmentRepo struct {
	coll *mongo.Collection
}

// NewMongoAppointmentRepo creates a new instance of AppointmentRepository using MongoDB.
func NewMongoAppointmentRepo() AppointmentRepository {
	coll := database.DB().Collection("appointments")
	repo := &MongoAppointmentRepo{coll: coll}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create appointment indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts the appointment. The partial unique index on
// (doctor_id, date, slot_id) over active documents makes the insert atomic:
// two concurrent requests for the same tuple cannot both succeed.
func (r *MongoAppointmentRepo) Create(appt *models.Appointment) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	appt.CreatedAt = now
	appt.UpdatedAt = now
	appt.Active = appt.Status != models.StatusCancelled

	if _, err := r.coll.InsertOne(ctx, appt); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrSlotTaken
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

// GetByID retrieves an appointment by its unique ID.
func (r *MongoAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with id %s: %w", id, err)
	}
	return &appt, nil
}

// GetByPaymentRef retrieves an appointment by its external payment reference.
func (r *MongoAppointmentRepo) GetByPaymentRef(ref string) (*models.Appointment, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var appt models.Appointment
	if err := r.coll.FindOne(ctx, bson.M{"payment_ref": ref}).Decode(&appt); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch appointment with payment ref %s: %w", ref, err)
	}
	return &appt, nil
}

// SetPaymentRef stores the external payment reference on the appointment.
func (r *MongoAppointmentRepo) SetPaymentRef(id, ref string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"payment_ref": ref, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set payment ref on appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

// UpdateStatus transitions the appointment conditionally on its current
// status. The filter makes concurrent conflicting transitions lose cleanly.
func (r *MongoAppointmentRepo) UpdateStatus(id, from, to string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"active":     to != models.StatusCancelled,
		"updated_at": time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update status of appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return ErrStaleStatus
	}
	return nil
}

// SetPaymentStatus records the payment outcome on the appointment.
func (r *MongoAppointmentRepo) SetPaymentStatus(id, paymentStatus string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"payment_status": paymentStatus, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": id}, update)
	if err != nil {
		return fmt.Errorf("failed to set payment status on appointment %s: %w", id, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("appointment with id %s not found", id)
	}
	return nil
}

// list runs the my-appointments aggregation joining counterpart display fields.
func (r *MongoAppointmentRepo) list(filter bson.M) ([]models.AppointmentView, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$match", Value: filter}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "doctors",
			"localField":   "doctor_id",
			"foreignField": "id",
			"as":           "doctor",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$doctor", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "doctor.user_id",
			"foreignField": "id",
			"as":           "doctor_account",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$doctor_account", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "patient_id",
			"foreignField": "id",
			"as":           "patient",
		}}},
		bson.D{{Key: "$unwind", Value: bson.M{"path": "$patient", "preserveNullAndEmptyArrays": true}}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"doctor_name":    "$doctor_account.name",
			"specialization": "$doctor.specialization",
			"patient_name":   "$patient.name",
		}}},
		bson.D{{Key: "$project", Value: bson.M{"doctor": 0, "doctor_account": 0, "patient": 0}}},
		bson.D{{Key: "$sort", Value: bson.D{{Key: "date", Value: -1}, {Key: "created_at", Value: -1}}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	defer cursor.Close(ctx)

	var views []models.AppointmentView
	if err := cursor.All(ctx, &views); err != nil {
		return nil, fmt.Errorf("failed to decode appointments: %w", err)
	}
	return views, nil
}

// ListByPatient returns the patient's appointments, newest date first.
func (r *MongoAppointmentRepo) ListByPatient(patientID string) ([]models.AppointmentView, error) {
	return r.list(bson.M{"patient_id": patientID})
}

// ListByDoctor returns the doctor's appointments, newest date first.
func (r *MongoAppointmentRepo) ListByDoctor(doctorID string) ([]models.AppointmentView, error) {
	return r.list(bson.M{"doctor_id": doctorID})
}
