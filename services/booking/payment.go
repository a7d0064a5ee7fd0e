package booking

import (
	"context"
	"fmt"

	"clinicbook/models"
	"clinicbook/utils"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/paymentintent"
	"go.uber.org/zap"
)

// StripeGateway implements PaymentGateway against Stripe PaymentIntents.
// The API key is set globally in main from configuration.
type StripeGateway struct{}

// CreateIntent creates a PaymentIntent for the given amount and returns its
// id (stored on the appointment as the external payment reference) and the
// client secret driving the hosted checkout.
func (g *StripeGateway) CreateIntent(ctx context.Context, amount float64, currency, appointmentID string) (string, string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(int64(amount * 100)),
		Currency: stripe.String(currency),
	}
	params.AddMetadata("appointment_id", appointmentID)

	pi, err := paymentintent.New(params)
	if err != nil {
		return "", "", fmt.Errorf("failed to create payment intent: %w", err)
	}
	return pi.ID, pi.ClientSecret, nil
}

// IntentSucceeded queries the provider for the intent's current status.
func (g *StripeGateway) IntentSucceeded(ctx context.Context, ref string) (bool, error) {
	pi, err := paymentintent.Get(ref, nil)
	if err != nil {
		return false, fmt.Errorf("failed to query payment intent %s: %w", ref, err)
	}
	return pi.Status == stripe.PaymentIntentStatusSucceeded, nil
}

// CreatePaymentIntent creates the provider-side intent for a pending
// appointment and stores the reference. Only the appointment's own patient
// may request it.
func (s *DefaultBookingService) CreatePaymentIntent(ctx context.Context, patientID, appointmentID string) (*PaymentIntentResult, error) {
	appt, err := s.ApptRepo.GetByID(appointmentID)
	if err != nil {
		utils.GetLogger().Error("CreatePaymentIntent: failed to fetch appointment", zap.Error(err))
		return nil, fmt.Errorf("payment setup failed, please try again")
	}
	if appt == nil || appt.PatientID != patientID {
		return nil, ErrNotFound
	}
	if appt.Status != models.StatusPending {
		return nil, ErrNotPayable
	}

	ref, clientSecret, err := s.Payments.CreateIntent(ctx, appt.Amount, "usd", appt.ID)
	if err != nil {
		utils.GetLogger().Error("CreatePaymentIntent: provider call failed", zap.Error(err))
		return nil, fmt.Errorf("payment setup failed, please try again")
	}

	if err := s.ApptRepo.SetPaymentRef(appt.ID, ref); err != nil {
		utils.GetLogger().Error("CreatePaymentIntent: failed to store payment ref", zap.Error(err))
		return nil, fmt.Errorf("payment setup failed, please try again")
	}

	return &PaymentIntentResult{PaymentRef: ref, ClientSecret: clientSecret, Amount: appt.Amount}, nil
}
