package user

import (
	"fmt"

	"clinicbook/models"
	"clinicbook/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// GetProfile returns the account for the given id.
func (s *DefaultUserService) GetProfile(id string) (*models.User, error) {
	userRec, err := s.Repo.GetByID(id)
	if err != nil {
		utils.GetLogger().Error("GetProfile: failed to fetch user", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to fetch profile")
	}
	if userRec == nil {
		return nil, ErrNotFound
	}
	return userRec, nil
}

// UpdateProfile applies the provided mutable fields and returns the updated record.
func (s *DefaultUserService) UpdateProfile(id string, update ProfileUpdate) (*models.User, error) {
	userRec, err := s.Repo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch profile")
	}
	if userRec == nil {
		return nil, ErrNotFound
	}

	if update.Name != nil {
		userRec.Name = *update.Name
	}
	if update.Phone != nil {
		userRec.Phone = *update.Phone
	}
	if update.Address != nil {
		userRec.Address = *update.Address
	}

	if err := s.Repo.Update(userRec); err != nil {
		utils.GetLogger().Error("UpdateProfile: failed to update user", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update profile")
	}
	return userRec, nil
}

// ChangePassword verifies the current password before storing a new hash.
func (s *DefaultUserService) ChangePassword(id, currentPassword, newPassword string) error {
	userRec, err := s.Repo.GetByID(id)
	if err != nil {
		return fmt.Errorf("failed to fetch account")
	}
	if userRec == nil {
		return ErrNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(userRec.PasswordHash), []byte(currentPassword)); err != nil {
		return ErrInvalidCredentials
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		utils.GetLogger().Error("ChangePassword: failed to hash password", zap.Error(err))
		return fmt.Errorf("failed to change password")
	}

	userRec.PasswordHash = string(hashed)
	if err := s.Repo.Update(userRec); err != nil {
		utils.GetLogger().Error("ChangePassword: failed to update user", zap.String("id", id), zap.Error(err))
		return fmt.Errorf("failed to change password")
	}
	return nil
}
