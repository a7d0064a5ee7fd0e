package user

import (
	"fmt"
	"time"

	"clinicbook/models"
	"clinicbook/utils"

	userRepo "clinicbook/database/repository/user"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// TokenTTL is the lifetime of issued auth tokens.
const TokenTTL = 24 * time.Hour

// DefaultUserService is the production UserService implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
}

// Register creates a new patient account. The password is stored only as a
// bcrypt hash, never in plaintext.
func (s *DefaultUserService) Register(input RegistrationInput) (*AuthResponse, error) {
	existing, err := s.Repo.GetByEmailWithProjection(input.Email, bson.M{"id": 1})
	if err != nil {
		utils.GetLogger().Error("Register: failed to check for existing user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("Register: failed to hash password", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	userObj := models.User{
		ID:           uuid.New().String(),
		Name:         input.Name,
		Email:        input.Email,
		PasswordHash: string(hashed),
		Role:         models.RoleUser,
		Phone:        input.Phone,
		Address:      input.Address,
	}

	if err := s.Repo.Create(&userObj); err != nil {
		// The unique email index closes the race between the check and the insert.
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		utils.GetLogger().Error("Register: failed to create user", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	token, err := utils.GenerateToken(userObj.ID, userObj.Role, userObj.Email, TokenTTL)
	if err != nil {
		utils.GetLogger().Error("Register: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("registration failed, please try again")
	}

	return &AuthResponse{
		ID:    userObj.ID,
		Token: token,
		Name:  userObj.Name,
		Email: userObj.Email,
		Role:  userObj.Role,
	}, nil
}

// Authenticate verifies the credentials and issues a fresh token carrying the
// account's role claim.
func (s *DefaultUserService) Authenticate(email, password string) (*AuthResponse, error) {
	userRec, err := s.Repo.GetByEmail(email)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to fetch user", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}
	if userRec == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	token, err := utils.GenerateToken(userRec.ID, userRec.Role, userRec.Email, TokenTTL)
	if err != nil {
		utils.GetLogger().Error("Authenticate: failed to generate auth token", zap.Error(err))
		return nil, fmt.Errorf("authentication failed, please try again")
	}

	return &AuthResponse{
		ID:        userRec.ID,
		Token:     token,
		Name:      userRec.Name,
		Email:     userRec.Email,
		Role:      userRec.Role,
		AvatarURL: userRec.AvatarURL,
	}, nil
}
