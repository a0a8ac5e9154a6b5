package services

import (
	"context"
	"encoding/json"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

type ChargeRequest struct {
	Token       string
	Amount      float64 // major currency units
	Description string
}

type PaymentService struct {
	api      *client.API
	currency string
}

// NewPaymentService builds a Stripe-backed charger. backends may be nil to use Stripe's defaults.
func NewPaymentService(secretKey, currency string, backends *stripe.Backends) *PaymentService {
	return &PaymentService{
		api:      client.New(secretKey, backends),
		currency: currency,
	}
}

// Charge creates a one-off charge and returns the processor's response body verbatim.
func (s *PaymentService) Charge(ctx context.Context, req ChargeRequest) (json.RawMessage, error) {
	params := &stripe.ChargeParams{
		Amount:      stripe.Int64(int64(math.Round(req.Amount * 100))),
		Currency:    stripe.String(s.currency),
		Description: stripe.String(req.Description),
	}
	params.Context = ctx
	if err := params.SetSource(req.Token); err != nil {
		return nil, fmt.Errorf("charge source: %w", err)
	}

	charge, err := s.api.Charges.New(params)
	if err != nil {
		return nil, fmt.Errorf("create charge: %w", err)
	}
	if charge.LastResponse != nil && len(charge.LastResponse.RawJSON) > 0 {
		return charge.LastResponse.RawJSON, nil
	}
	return json.Marshal(charge)
}
