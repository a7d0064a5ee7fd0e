package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"clinicbook/middleware"
	"clinicbook/models"
	"clinicbook/services/booking"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockBookingService is a mock implementation of booking.BookingService.
type MockBookingService struct {
	mock.Mock
}

func (m *MockBookingService) Book(ctx context.Context, patientID string, req booking.BookingRequest) (*models.Appointment, error) {
	args := m.Called(ctx, patientID, req)
	if a, ok := args.Get(0).(*models.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) CreatePaymentIntent(ctx context.Context, patientID, appointmentID string) (*booking.PaymentIntentResult, error) {
	args := m.Called(ctx, patientID, appointmentID)
	if r, ok := args.Get(0).(*booking.PaymentIntentResult); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) ConfirmPayment(ctx context.Context, paymentRef string) (*models.Appointment, error) {
	args := m.Called(ctx, paymentRef)
	if a, ok := args.Get(0).(*models.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockBookingService) MyAppointments(userID, role string) ([]models.AppointmentView, error) {
	args := m.Called(userID, role)
	return args.Get(0).([]models.AppointmentView), args.Error(1)
}

func (m *MockBookingService) ChangeStatus(userID, role, appointmentID, newStatus string) (*models.Appointment, error) {
	args := m.Called(userID, role, appointmentID, newStatus)
	if a, ok := args.Get(0).(*models.Appointment); ok {
		return a, args.Error(1)
	}
	return nil, args.Error(1)
}

func bookingTestRouter(svc booking.BookingService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	// Stand-in for the auth gate: attach a fixed identity.
	r.Use(func(c *gin.Context) {
		c.Set(middleware.CtxUserID, "patient-1")
		c.Set(middleware.CtxRole, models.RoleUser)
	})
	h := NewBookingHandler(svc)
	r.POST("/appointments/book", h.BookHandler)
	r.POST("/appointments/payment/create-intent", h.CreatePaymentIntentHandler)
	r.PATCH("/appointments/:id/status", h.ChangeStatusHandler)
	return r
}

func TestBookHandler_ConflictMapsTo409(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Book", mock.Anything, "patient-1", mock.Anything).Return(nil, booking.ErrSlotConflict)

	r := bookingTestRouter(svc)
	body := `{"doctor_id":"d1","slot_id":"s1","date":"2024-06-03"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments/book", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestBookHandler_MissingFieldsMapTo400(t *testing.T) {
	svc := new(MockBookingService)
	r := bookingTestRouter(svc)

	req := httptest.NewRequest(http.MethodPost, "/appointments/book", strings.NewReader(`{"doctor_id":"d1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "Book", mock.Anything, mock.Anything, mock.Anything)
}

func TestBookHandler_CreatedOnSuccess(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Book", mock.Anything, "patient-1", mock.Anything).Return(&models.Appointment{
		ID:     "appt-1",
		Status: models.StatusPending,
	}, nil)

	r := bookingTestRouter(svc)
	body := `{"doctor_id":"d1","slot_id":"s1","date":"2024-06-03"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments/book", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"pending"`)
}

func TestBookHandler_InvalidDateMapsTo400(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("Book", mock.Anything, "patient-1", mock.Anything).
		Return(nil, fmt.Errorf("%w: %q", booking.ErrInvalidDate, "03/06/2024"))

	r := bookingTestRouter(svc)
	body := `{"doctor_id":"d1","slot_id":"s1","date":"03/06/2024"}`
	req := httptest.NewRequest(http.MethodPost, "/appointments/book", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCreatePaymentIntentHandler_NotPayableMapsTo400(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("CreatePaymentIntent", mock.Anything, "patient-1", "appt-1").
		Return(nil, booking.ErrNotPayable)

	r := bookingTestRouter(svc)
	req := httptest.NewRequest(http.MethodPost, "/appointments/payment/create-intent", strings.NewReader(`{"appointment_id":"appt-1"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestChangeStatusHandler_InvalidTransitionMapsTo400(t *testing.T) {
	svc := new(MockBookingService)
	svc.On("ChangeStatus", "patient-1", models.RoleUser, "appt-1", "completed").
		Return(nil, booking.ErrInvalidTransition)

	r := bookingTestRouter(svc)
	req := httptest.NewRequest(http.MethodPatch, "/appointments/appt-1/status", strings.NewReader(`{"status":"completed"}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
