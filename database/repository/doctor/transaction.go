package doctorRepo

import (
	"fmt"
	"time"

	"clinicbook/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// CreateWithUser persists the account and the linked doctor profile inside a
// single Mongo transaction so onboarding cannot leave a half-created pair.
func (r *MongoDoctorRepo) CreateWithUser(user *models.User, doctor *models.Doctor) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	doctor.CreatedAt = now
	doctor.UpdatedAt = now

	txnFn := func(sc mongo.SessionContext) error {
		if _, err := r.userColl.InsertOne(sc, user); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				return fmt.Errorf("user with email %s already exists: %w", user.Email, err)
			}
			return fmt.Errorf("insert user failed: %w", err)
		}
		if _, err := r.coll.InsertOne(sc, doctor); err != nil {
			return fmt.Errorf("insert doctor failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("doctor onboarding transaction failed: %w", err)
	}

	return nil
}

// DeleteWithUser removes the doctor profile and its account together.
// Historical appointments keep their doctor_id reference.
func (r *MongoDoctorRepo) DeleteWithUser(doctorID string) error {
	ctx, cancel := newContext(10 * time.Second)
	defer cancel()

	doctor, err := r.GetByID(doctorID)
	if err != nil {
		return err
	}
	if doctor == nil {
		return fmt.Errorf("doctor %s: %w", doctorID, ErrNotFound)
	}

	client := r.coll.Database().Client()
	sess, err := client.StartSession()
	if err != nil {
		return fmt.Errorf("could not start mongo session: %w", err)
	}
	defer sess.EndSession(ctx)

	txnFn := func(sc mongo.SessionContext) error {
		res, err := r.coll.DeleteOne(sc, bson.M{"id": doctorID})
		if err != nil {
			return fmt.Errorf("delete doctor failed: %w", err)
		}
		if res.DeletedCount == 0 {
			return fmt.Errorf("doctor %s: %w", doctorID, ErrNotFound)
		}
		if _, err := r.userColl.DeleteOne(sc, bson.M{"id": doctor.UserID}); err != nil {
			return fmt.Errorf("delete user failed: %w", err)
		}
		return nil
	}

	if err := mongo.WithSession(ctx, sess, func(sc mongo.SessionContext) error {
		if err := sc.StartTransaction(); err != nil {
			return err
		}
		if err := txnFn(sc); err != nil {
			_ = sc.AbortTransaction(sc)
			return err
		}
		return sc.CommitTransaction(sc)
	}); err != nil {
		return fmt.Errorf("doctor removal transaction failed: %w", err)
	}

	return nil
}
