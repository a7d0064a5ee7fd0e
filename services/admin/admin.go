package admin

import (
	"errors"
	"fmt"

	doctorRepo "clinicbook/database/repository/doctor"
	userRepo "clinicbook/database/repository/user"
	"clinicbook/models"
	"clinicbook/services/doctor"
	"clinicbook/services/user"
	"clinicbook/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// OnboardInput carries the fields for admin-driven doctor onboarding.
type OnboardInput struct {
	Name           string
	Email          string
	Password       string
	Phone          string
	Specialization string
	ExperienceYrs  int
	Fee            float64
	AvatarURL      string
}

// AdminService manages doctor onboarding and removal plus read-only listings.
type AdminService interface {
	AddDoctor(input OnboardInput) (*models.DoctorProfile, error)
	RemoveDoctor(doctorID string) error
	ListUsers() ([]models.User, error)
	ListDoctors() ([]models.DoctorProfile, error)
}

// DefaultAdminService is the production AdminService implementation.
type DefaultAdminService struct {
	Users     userRepo.UserRepository
	Doctors   doctorRepo.DoctorRepository
	Directory doctor.DoctorService
}

// AddDoctor creates the doctor account and its profile as one logical
// operation. A duplicate email rejects the whole onboarding.
func (s *DefaultAdminService) AddDoctor(input OnboardInput) (*models.DoctorProfile, error) {
	existing, err := s.Users.GetByEmailWithProjection(input.Email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("AddDoctor: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("onboarding failed, please try again")
	}
	if existing != nil {
		return nil, user.ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("AddDoctor: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("onboarding failed, please try again")
	}

	account := models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleDoctor,
		Phone:        input.Phone,
		AvatarURL:    input.AvatarURL,
	}
	profile := models.Doctor{
		ID:             uuid.New().String(),
		UserID:         account.ID,
		Specialization: input.Specialization,
		ExperienceYrs:  input.ExperienceYrs,
		Fee:            input.Fee,
		Slots:          []models.Slot{},
	}

	if err := s.Doctors.CreateWithUser(&account, &profile); err != nil {
		utils.GetLogger().Error("AddDoctor: onboarding transaction failed", zap.Error(err))
		if mongo.IsDuplicateKeyError(err) {
			return nil, user.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("onboarding failed, please try again")
	}

	if s.Directory != nil {
		s.Directory.InvalidateDirectory()
	}

	utils.GetLogger().Info("doctor onboarded",
		zap.String("doctorID", profile.ID),
		zap.String("userID", account.ID),
	)
	return &models.DoctorProfile{
		Doctor:    profile,
		Name:      account.Name,
		Email:     account.Email,
		AvatarURL: account.AvatarURL,
	}, nil
}

// RemoveDoctor deletes both the profile and its account. Historical
// appointments keep their doctor_id reference and are not touched.
func (s *DefaultAdminService) RemoveDoctor(doctorID string) error {
	if err := s.Doctors.DeleteWithUser(doctorID); err != nil {
		if errors.Is(err, doctorRepo.ErrNotFound) {
			return doctor.ErrNotFound
		}
		utils.GetLogger().Error("RemoveDoctor: removal failed", zap.String("doctorID", doctorID), zap.Error(err))
		return fmt.Errorf("doctor removal failed, please try again")
	}
	if s.Directory != nil {
		s.Directory.InvalidateDirectory()
	}
	return nil
}

// ListUsers returns all accounts.
func (s *DefaultAdminService) ListUsers() ([]models.User, error) {
	return s.Users.GetAll()
}

// ListDoctors returns all doctor profiles with account display fields.
func (s *DefaultAdminService) ListDoctors() ([]models.DoctorProfile, error) {
	return s.Doctors.GetAllProfiles()
}
