package booking

import (
	"context"
	"testing"

	appointmentRepo "clinicbook/database/repository/appointment"
	"clinicbook/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockAppointmentRepo is a mock implementation of AppointmentRepository.
type MockAppointmentRepo struct {
	mock.Mock
}

func (m *MockAppointmentRepo) Create(appt *models.Appointment) error {
	args := m.Called(appt)
	return args.Error(0)
}

func (m *MockAppointmentRepo) GetByID(id string) (*models.Appointment, error) {
	args := m.Called(id)
	if appt, ok := args.Get(0).(*models.Appointment); ok {
		return appt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepo) GetByPaymentRef(ref string) (*models.Appointment, error) {
	args := m.Called(ref)
	if appt, ok := args.Get(0).(*models.Appointment); ok {
		return appt, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockAppointmentRepo) SetPaymentRef(id, ref string) error {
	args := m.Called(id, ref)
	return args.Error(0)
}

func (m *MockAppointmentRepo) UpdateStatus(id, from, to string) error {
	args := m.Called(id, from, to)
	return args.Error(0)
}

func (m *MockAppointmentRepo) SetPaymentStatus(id, paymentStatus string) error {
	args := m.Called(id, paymentStatus)
	return args.Error(0)
}

func (m *MockAppointmentRepo) ListByPatient(patientID string) ([]models.AppointmentView, error) {
	args := m.Called(patientID)
	return args.Get(0).([]models.AppointmentView), args.Error(1)
}

func (m *MockAppointmentRepo) ListByDoctor(doctorID string) ([]models.AppointmentView, error) {
	args := m.Called(doctorID)
	return args.Get(0).([]models.AppointmentView), args.Error(1)
}

// MockDoctorRepo is a mock implementation of DoctorRepository.
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

// MockPaymentGateway is a mock implementation of PaymentGateway.
type MockPaymentGateway struct {
	mock.Mock
}

func (m *MockPaymentGateway) CreateIntent(ctx context.Context, amount float64, currency, appointmentID string) (string, string, error) {
	args := m.Called(ctx, amount, currency, appointmentID)
	return args.String(0), args.String(1), args.Error(2)
}

func (m *MockPaymentGateway) IntentSucceeded(ctx context.Context, ref string) (bool, error) {
	args := m.Called(ctx, ref)
	return args.Bool(0), args.Error(1)
}

// MockReminderScheduler is a mock implementation of ReminderScheduler.
type MockReminderScheduler struct {
	mock.Mock
}

func (m *MockReminderScheduler) ScheduleReminder(appt *models.Appointment, slot models.Slot) error {
	args := m.Called(appt, slot)
	return args.Error(0)
}

func testDoctor() *models.Doctor {
	return &models.Doctor{
		ID:             "doc-1",
		UserID:         "user-doc-1",
		Specialization: "Cardiology",
		Fee:            150,
		Slots: []models.Slot{
			{ID: "slot-1", Day: "Monday", Start: "09:00", End: "10:00"},
		},
	}
}

func newService(apptRepo *MockAppointmentRepo, docRepo *MockDoctorRepo, gw *MockPaymentGateway, rem *MockReminderScheduler) *DefaultBookingService {
	svc := &DefaultBookingService{
		ApptRepo:   apptRepo,
		DoctorRepo: docRepo,
	}
	if gw != nil {
		svc.Payments = gw
	}
	if rem != nil {
		svc.Reminders = rem
	}
	return svc
}

func TestBook_CreatesPendingAppointmentAtDoctorFee(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	docRepo.On("GetByID", "doc-1").Return(testDoctor(), nil)
	apptRepo.On("Create", mock.AnythingOfType("*models.Appointment")).Return(nil)

	svc := newService(apptRepo, docRepo, nil, nil)
	appt, err := svc.Book(context.Background(), "patient-1", BookingRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
		Date:     "2024-06-03",
	})

	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, appt.Status)
	assert.Equal(t, models.PaymentPending, appt.PaymentStatus)
	assert.Equal(t, 150.0, appt.Amount)
	assert.Equal(t, "patient-1", appt.PatientID)
	assert.NotEmpty(t, appt.ID)
	apptRepo.AssertExpectations(t)
}

func TestBook_SlotConflict(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	docRepo.On("GetByID", "doc-1").Return(testDoctor(), nil)
	apptRepo.On("Create", mock.Anything).Return(appointmentRepo.ErrSlotTaken)

	svc := newService(apptRepo, docRepo, nil, nil)
	_, err := svc.Book(context.Background(), "patient-2", BookingRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
		Date:     "2024-06-03",
	})

	assert.ErrorIs(t, err, ErrSlotConflict)
}

func TestBook_UnknownDoctor(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	docRepo.On("GetByID", "nope").Return(nil, nil)

	svc := newService(apptRepo, docRepo, nil, nil)
	_, err := svc.Book(context.Background(), "patient-1", BookingRequest{
		DoctorID: "nope",
		SlotID:   "slot-1",
		Date:     "2024-06-03",
	})

	assert.ErrorIs(t, err, ErrDoctorNotFound)
}

func TestBook_UnknownSlot(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	docRepo.On("GetByID", "doc-1").Return(testDoctor(), nil)

	svc := newService(apptRepo, docRepo, nil, nil)
	_, err := svc.Book(context.Background(), "patient-1", BookingRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-404",
		Date:     "2024-06-03",
	})

	assert.ErrorIs(t, err, ErrSlotNotFound)
}

func TestBook_RejectsMalformedDate(t *testing.T) {
	svc := newService(new(MockAppointmentRepo), new(MockDoctorRepo), nil, nil)
	_, err := svc.Book(context.Background(), "patient-1", BookingRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
		Date:     "03/06/2024",
	})
	assert.ErrorIs(t, err, ErrInvalidDate)
}

func TestBook_RejectsDateOffSlotWeekday(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	docRepo.On("GetByID", "doc-1").Return(testDoctor(), nil)

	// 2024-06-04 is a Tuesday; the slot recurs on Mondays.
	svc := newService(apptRepo, docRepo, nil, nil)
	_, err := svc.Book(context.Background(), "patient-1", BookingRequest{
		DoctorID: "doc-1",
		SlotID:   "slot-1",
		Date:     "2024-06-04",
	})

	assert.ErrorIs(t, err, ErrSlotDayMismatch)
	apptRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestConfirmPayment_TransitionsAndMarksSlot(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	gw := new(MockPaymentGateway)
	rem := new(MockReminderScheduler)

	pending := &models.Appointment{
		ID:            "appt-1",
		DoctorID:      "doc-1",
		PatientID:     "patient-1",
		SlotID:        "slot-1",
		Date:          "2024-06-03",
		Status:        models.StatusPending,
		PaymentStatus: models.PaymentPending,
		PaymentRef:    "pi_123",
		Amount:        150,
	}

	apptRepo.On("GetByPaymentRef", "pi_123").Return(pending, nil)
	gw.On("IntentSucceeded", mock.Anything, "pi_123").Return(true, nil)
	apptRepo.On("UpdateStatus", "appt-1", models.StatusPending, models.StatusConfirmed).Return(nil)
	apptRepo.On("SetPaymentStatus", "appt-1", models.PaymentCompleted).Return(nil)
	docRepo.On("SetSlotBooked", "doc-1", "slot-1", true).Return(nil)
	docRepo.On("GetByID", "doc-1").Return(testDoctor(), nil)
	rem.On("ScheduleReminder", mock.Anything, mock.Anything).Return(nil)

	svc := newService(apptRepo, docRepo, gw, rem)
	appt, err := svc.ConfirmPayment(context.Background(), "pi_123")

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appt.Status)
	assert.Equal(t, models.PaymentCompleted, appt.PaymentStatus)
	apptRepo.AssertExpectations(t)
	docRepo.AssertCalled(t, "SetSlotBooked", "doc-1", "slot-1", true)
}

func TestConfirmPayment_IdempotentOnRepeat(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	gw := new(MockPaymentGateway)

	confirmed := &models.Appointment{
		ID:            "appt-1",
		DoctorID:      "doc-1",
		SlotID:        "slot-1",
		Status:        models.StatusConfirmed,
		PaymentStatus: models.PaymentCompleted,
		PaymentRef:    "pi_123",
	}
	apptRepo.On("GetByPaymentRef", "pi_123").Return(confirmed, nil)

	svc := newService(apptRepo, docRepo, gw, nil)
	appt, err := svc.ConfirmPayment(context.Background(), "pi_123")

	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, appt.Status)
	// No second provider query, transition or slot write.
	gw.AssertNotCalled(t, "IntentSucceeded", mock.Anything, mock.Anything)
	apptRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	docRepo.AssertNotCalled(t, "SetSlotBooked", mock.Anything, mock.Anything, mock.Anything)
}

func TestConfirmPayment_IncompletePaymentRecordedAsFailed(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	gw := new(MockPaymentGateway)

	pending := &models.Appointment{
		ID:         "appt-1",
		DoctorID:   "doc-1",
		SlotID:     "slot-1",
		Status:     models.StatusPending,
		PaymentRef: "pi_123",
	}
	apptRepo.On("GetByPaymentRef", "pi_123").Return(pending, nil)
	gw.On("IntentSucceeded", mock.Anything, "pi_123").Return(false, nil)
	apptRepo.On("SetPaymentStatus", "appt-1", models.PaymentFailed).Return(nil)

	svc := newService(apptRepo, docRepo, gw, nil)
	_, err := svc.ConfirmPayment(context.Background(), "pi_123")

	assert.ErrorIs(t, err, ErrPaymentIncomplete)
	apptRepo.AssertCalled(t, "SetPaymentStatus", "appt-1", models.PaymentFailed)
}

func TestConfirmPayment_UnknownRef(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	apptRepo.On("GetByPaymentRef", "pi_missing").Return(nil, nil)

	svc := newService(apptRepo, new(MockDoctorRepo), new(MockPaymentGateway), nil)
	_, err := svc.ConfirmPayment(context.Background(), "pi_missing")

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestChangeStatus_RejectsPendingToCompleted(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	apptRepo.On("GetByID", "appt-1").Return(&models.Appointment{
		ID:       "appt-1",
		DoctorID: "doc-1",
		Status:   models.StatusPending,
	}, nil)

	svc := newService(apptRepo, new(MockDoctorRepo), nil, nil)
	_, err := svc.ChangeStatus("admin-1", models.RoleAdmin, "appt-1", models.StatusCompleted)

	assert.ErrorIs(t, err, ErrInvalidTransition)
	apptRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeStatus_TerminalStatesStayTerminal(t *testing.T) {
	for _, terminal := range []string{models.StatusCancelled, models.StatusCompleted} {
		apptRepo := new(MockAppointmentRepo)
		apptRepo.On("GetByID", "appt-1").Return(&models.Appointment{
			ID:       "appt-1",
			DoctorID: "doc-1",
			Status:   terminal,
		}, nil)

		svc := newService(apptRepo, new(MockDoctorRepo), nil, nil)
		_, err := svc.ChangeStatus("admin-1", models.RoleAdmin, "appt-1", models.StatusConfirmed)
		assert.ErrorIs(t, err, ErrInvalidTransition, "from %s", terminal)
	}
}

func TestChangeStatus_CancelFreesSlot(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	apptRepo.On("GetByID", "appt-1").Return(&models.Appointment{
		ID:       "appt-1",
		DoctorID: "doc-1",
		SlotID:   "slot-1",
		Status:   models.StatusConfirmed,
	}, nil)
	apptRepo.On("UpdateStatus", "appt-1", models.StatusConfirmed, models.StatusCancelled).Return(nil)
	docRepo.On("SetSlotBooked", "doc-1", "slot-1", false).Return(nil)

	svc := newService(apptRepo, docRepo, nil, nil)
	appt, err := svc.ChangeStatus("admin-1", models.RoleAdmin, "appt-1", models.StatusCancelled)

	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, appt.Status)
	docRepo.AssertCalled(t, "SetSlotBooked", "doc-1", "slot-1", false)
}

func TestChangeStatus_DoctorCannotTouchForeignAppointment(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	apptRepo.On("GetByID", "appt-1").Return(&models.Appointment{
		ID:       "appt-1",
		DoctorID: "doc-other",
		Status:   models.StatusPending,
	}, nil)
	docRepo.On("GetByUserID", "user-doc-1").Return(testDoctor(), nil)

	svc := newService(apptRepo, docRepo, nil, nil)
	_, err := svc.ChangeStatus("user-doc-1", models.RoleDoctor, "appt-1", models.StatusConfirmed)

	assert.ErrorIs(t, err, ErrNotYours)
}

func TestMyAppointments_DoctorView(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	docRepo := new(MockDoctorRepo)
	docRepo.On("GetByUserID", "user-doc-1").Return(testDoctor(), nil)
	apptRepo.On("ListByDoctor", "doc-1").Return([]models.AppointmentView{
		{Appointment: models.Appointment{ID: "appt-1"}, PatientName: "Alice"},
	}, nil)

	svc := newService(apptRepo, docRepo, nil, nil)
	views, err := svc.MyAppointments("user-doc-1", models.RoleDoctor)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Alice", views[0].PatientName)
}

func TestMyAppointments_PatientView(t *testing.T) {
	apptRepo := new(MockAppointmentRepo)
	apptRepo.On("ListByPatient", "patient-1").Return([]models.AppointmentView{
		{Appointment: models.Appointment{ID: "appt-1"}, DoctorName: "Dr. Smith", Specialization: "Cardiology"},
	}, nil)

	svc := newService(apptRepo, new(MockDoctorRepo), nil, nil)
	views, err := svc.MyAppointments("patient-1", models.RoleUser)

	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.Equal(t, "Dr. Smith", views[0].DoctorName)
}
