package doctor

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	doctorRepo "clinicbook/database/repository/doctor"
	"clinicbook/models"
	"clinicbook/utils"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

const (
	directoryCacheKey = "doctors:directory"
	directoryCacheTTL = 5 * time.Minute
)

// DefaultDoctorService is the production DoctorService implementation.
type DefaultDoctorService struct {
	Repo  doctorRepo.DoctorRepository
	Cache *redis.Client
}

// directory returns the full joined listing, from cache when possible.
func (s *DefaultDoctorService) directory() ([]models.DoctorProfile, error) {
	ctx := context.Background()

	if s.Cache != nil {
		cached, err := s.Cache.Get(ctx, directoryCacheKey).Result()
		if err == nil {
			var profiles []models.DoctorProfile
			if err := json.Unmarshal([]byte(cached), &profiles); err == nil {
				return profiles, nil
			}
		} else if err != redis.Nil {
			utils.GetLogger().Warn("directory cache read failed, falling back to store", zap.Error(err))
		}
	}

	profiles, err := s.Repo.GetAllProfiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load doctor directory: %w", err)
	}

	if s.Cache != nil {
		if data, err := json.Marshal(profiles); err == nil {
			_ = s.Cache.Set(ctx, directoryCacheKey, data, directoryCacheTTL).Err()
		}
	}
	return profiles, nil
}

// ListDoctors returns the directory, filtered server-side by name substring
// and exact specialization when provided.
func (s *DefaultDoctorService) ListDoctors(name, specialization string) ([]models.DoctorProfile, error) {
	profiles, err := s.directory()
	if err != nil {
		return nil, err
	}
	if name == "" && specialization == "" {
		return profiles, nil
	}

	filtered := make([]models.DoctorProfile, 0, len(profiles))
	nameLower := strings.ToLower(name)
	for _, p := range profiles {
		if name != "" && !strings.Contains(strings.ToLower(p.Name), nameLower) {
			continue
		}
		if specialization != "" && p.Specialization != specialization {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered, nil
}

// GetDoctor returns one directory profile by doctor id.
func (s *DefaultDoctorService) GetDoctor(id string) (*models.DoctorProfile, error) {
	profiles, err := s.directory()
	if err != nil {
		return nil, err
	}
	for i := range profiles {
		if profiles[i].ID == id {
			return &profiles[i], nil
		}
	}
	return nil, ErrNotFound
}

// InvalidateDirectory drops the cached listing.
func (s *DefaultDoctorService) InvalidateDirectory() {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Del(context.Background(), directoryCacheKey).Err(); err != nil {
		utils.GetLogger().Warn("failed to invalidate directory cache", zap.Error(err))
	}
}
