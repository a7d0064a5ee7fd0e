package appointmentRepo

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ensureIndexes creates query indexes plus the booking guard: a unique index
// on (doctor_id, date, slot_id) restricted to active (non-cancelled)
// appointments. Cancelling an appointment clears the active flag and frees
// the tuple for rebooking.
func (r *MongoAppointmentRepo) ensureIndexes() error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{
			Keys: bson.D{
				{Key: "doctor_id", Value: 1},
				{Key: "date", Value: 1},
				{Key: "slot_id", Value: 1},
			},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"active": true}),
		},
		{Keys: bson.D{{Key: "patient_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "doctor_id", Value: 1}, {Key: "date", Value: -1}}},
		{Keys: bson.D{{Key: "payment_ref", Value: 1}}},
	}

	if _, err := r.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}
	return nil
}
