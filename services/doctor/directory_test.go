package doctor

import (
	"testing"

	"clinicbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockDoctorRepo is a mock implementation of doctorRepo.DoctorRepository.
type MockDoctorRepo struct {
	mock.Mock
}

func (m *MockDoctorRepo) Create(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepo) Update(doctor *models.Doctor) error {
	args := m.Called(doctor)
	return args.Error(0)
}

func (m *MockDoctorRepo) GetByID(id string) (*models.Doctor, error) {
	args := m.Called(id)
	if doc, ok := args.Get(0).(*models.Doctor); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) GetByUserID(userID string) (*models.Doctor, error) {
	args := m.Called(userID)
	if doc, ok := args.Get(0).(*models.Doctor); ok {
		return doc, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockDoctorRepo) GetAllProfiles() ([]models.DoctorProfile, error) {
	args := m.Called()
	return args.Get(0).([]models.DoctorProfile), args.Error(1)
}

func (m *MockDoctorRepo) SetSlots(doctorID string, slots []models.Slot) error {
	args := m.Called(doctorID, slots)
	return args.Error(0)
}

func (m *MockDoctorRepo) SetSlotBooked(doctorID, slotID string, booked bool) error {
	args := m.Called(doctorID, slotID, booked)
	return args.Error(0)
}

func (m *MockDoctorRepo) CreateWithUser(user *models.User, doctor *models.Doctor) error {
	args := m.Called(user, doctor)
	return args.Error(0)
}

func (m *MockDoctorRepo) DeleteWithUser(doctorID string) error {
	args := m.Called(doctorID)
	return args.Error(0)
}

func directoryFixture() []models.DoctorProfile {
	return []models.DoctorProfile{
		{Doctor: models.Doctor{ID: "d1", Specialization: "Cardiology"}, Name: "Dr. Alice Smith"},
		{Doctor: models.Doctor{ID: "d2", Specialization: "Dermatology"}, Name: "Dr. Bob Jones"},
		{Doctor: models.Doctor{ID: "d3", Specialization: "Cardiology"}, Name: "Dr. Carol Smithers"},
	}
}

func TestListDoctors_NoFilterReturnsAll(t *testing.T) {
	repo := new(MockDoctorRepo)
	repo.On("GetAllProfiles").Return(directoryFixture(), nil)

	svc := &DefaultDoctorService{Repo: repo}
	profiles, err := svc.ListDoctors("", "")

	require.NoError(t, err)
	assert.Len(t, profiles, 3)
}

func TestListDoctors_NameSubstringFilterIsCaseInsensitive(t *testing.T) {
	repo := new(MockDoctorRepo)
	repo.On("GetAllProfiles").Return(directoryFixture(), nil)

	svc := &DefaultDoctorService{Repo: repo}
	profiles, err := svc.ListDoctors("smith", "")

	require.NoError(t, err)
	require.Len(t, profiles, 2)
	assert.Equal(t, "d1", profiles[0].ID)
	assert.Equal(t, "d3", profiles[1].ID)
}

func TestListDoctors_SpecializationIsExactMatch(t *testing.T) {
	repo := new(MockDoctorRepo)
	repo.On("GetAllProfiles").Return(directoryFixture(), nil)

	svc := &DefaultDoctorService{Repo: repo}
	profiles, err := svc.ListDoctors("", "Cardiology")

	require.NoError(t, err)
	assert.Len(t, profiles, 2)

	profiles, err = svc.ListDoctors("", "Cardio")
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

func TestGetDoctor_UnknownID(t *testing.T) {
	repo := new(MockDoctorRepo)
	repo.On("GetAllProfiles").Return(directoryFixture(), nil)

	svc := &DefaultDoctorService{Repo: repo}
	_, err := svc.GetDoctor("d404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateSlots_AssignsIDsAndResetsBookedFlags(t *testing.T) {
	repo := new(MockDoctorRepo)
	repo.On("GetByUserID", "user-1").Return(&models.Doctor{ID: "d1", UserID: "user-1"}, nil)
	repo.On("SetSlots", "d1", mock.Anything).Return(nil)

	svc := &DefaultDoctorService{Repo: repo}
	doc, err := svc.UpdateSlots("user-1", []models.Slot{
		{Day: "Monday", Start: "09:00", End: "10:00", Booked: true},
	})

	require.NoError(t, err)
	require.Len(t, doc.Slots, 1)
	assert.NotEmpty(t, doc.Slots[0].ID)
	assert.False(t, doc.Slots[0].Booked)
}

func TestUpdateSlots_RejectsInvalidSlots(t *testing.T) {
	repo := new(MockDoctorRepo)
	repo.On("GetByUserID", "user-1").Return(&models.Doctor{ID: "d1", UserID: "user-1"}, nil)

	svc := &DefaultDoctorService{Repo: repo}

	cases := []models.Slot{
		{Day: "Funday", Start: "09:00", End: "10:00"},
		{Day: "Monday", Start: "", End: "10:00"},
		{Day: "Monday", Start: "11:00", End: "10:00"},
	}
	for _, slot := range cases {
		_, err := svc.UpdateSlots("user-1", []models.Slot{slot})
		assert.ErrorIs(t, err, ErrInvalidSlot)
	}
	repo.AssertNotCalled(t, "SetSlots", mock.Anything, mock.Anything)
}

func TestUpdateSlots_NoProfile(t *testing.T) {
	repo := new(MockDoctorRepo)
	repo.On("GetByUserID", "user-2").Return(nil, nil)

	svc := &DefaultDoctorService{Repo: repo}
	_, err := svc.UpdateSlots("user-2", nil)
	assert.ErrorIs(t, err, ErrNoProfile)
}
