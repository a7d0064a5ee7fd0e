package doctorRepo

import (
	"context"
	"fmt"
	"time"

	"clinicbook/database"
	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDoctorRepo implements DoctorRepository using MongoDB.
type MongoDoctorRepo struct {
	coll     *mongo.Collection
	userColl *mongo.Collection
}

// NewMongoDoctorRepo creates a new instance of DoctorRepository using MongoDB.
func NewMongoDoctorRepo() DoctorRepository {
	db := database.DB()
	repo := &MongoDoctorRepo{
		coll:     db.Collection("doctors"),
		userColl: db.Collection("users"),
	}

	if err := repo.ensureIndexes(); err != nil {
		fmt.Printf("failed to create doctor indexes: %v\n", err)
	}
	return repo
}

func newContext(timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), timeout)
}

// Create inserts a new doctor document.
func (r *MongoDoctorRepo) Create(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	now := time.Now()
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	if _, err := r.coll.InsertOne(ctx, doctor); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("doctor profile for user %s already exists: %w", doctor.UserID, err)
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

// Update modifies an existing doctor document.
func (r *MongoDoctorRepo) Update(doctor *models.Doctor) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	doctor.UpdatedAt = time.Now()
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": doctor.ID}, bson.M{"$set": doctor})
	if err != nil {
		return fmt.Errorf("failed to update doctor with id %s: %w", doctor.ID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", doctor.ID)
	}
	return nil
}

// GetByID retrieves a doctor by its unique ID.
func (r *MongoDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": id}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor with id %s: %w", id, err)
	}
	return &doctor, nil
}

// GetByUserID retrieves the doctor profile owned by the given account.
func (r *MongoDoctorRepo) GetByUserID(userID string) (*models.Doctor, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"user_id": userID}).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch doctor for user %s: %w", userID, err)
	}
	return &doctor, nil
}

// GetAllProfiles retrieves all doctors joined with their account display fields.
func (r *MongoDoctorRepo) GetAllProfiles() ([]models.DoctorProfile, error) {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	pipeline := mongo.Pipeline{
		bson.D{{Key: "$lookup", Value: bson.M{
			"from":         "users",
			"localField":   "user_id",
			"foreignField": "id",
			"as":           "account",
		}}},
		bson.D{{Key: "$unwind", Value: "$account"}},
		bson.D{{Key: "$addFields", Value: bson.M{
			"name":       "$account.name",
			"email":      "$account.email",
			"avatar_url": "$account.avatar_url",
		}}},
		bson.D{{Key: "$project", Value: bson.M{"account": 0}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor profiles: %w", err)
	}
	defer cursor.Close(ctx)

	var profiles []models.DoctorProfile
	if err := cursor.All(ctx, &profiles); err != nil {
		return nil, fmt.Errorf("failed to decode doctor profiles: %w", err)
	}
	return profiles, nil
}

// SetSlots replaces the doctor's availability list.
func (r *MongoDoctorRepo) SetSlots(doctorID string, slots []models.Slot) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	update := bson.M{"$set": bson.M{"slots": slots, "updated_at": time.Now()}}
	result, err := r.coll.UpdateOne(ctx, bson.M{"id": doctorID}, update)
	if err != nil {
		return fmt.Errorf("failed to update slots for doctor %s: %w", doctorID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", doctorID)
	}
	return nil
}

// SetSlotBooked flips the booked flag on the embedded slot.
func (r *MongoDoctorRepo) SetSlotBooked(doctorID, slotID string, booked bool) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{
		"id":    doctorID,
		"slots": bson.M{"$elemMatch": bson.M{"id": slotID}},
	}
	update := bson.M{"$set": bson.M{
		"slots.$.booked": booked,
		"updated_at":     time.Now(),
	}}
	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update booked flag for slot %s: %w", slotID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("slot %s not found on doctor %s", slotID, doctorID)
	}
	return nil
}
