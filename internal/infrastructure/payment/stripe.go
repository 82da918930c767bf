package payment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider creates card payment intents through the Stripe API.
type StripeProvider struct {
	api *client.API
}

// NewStripeProvider builds a provider for secretKey. backends may be nil to
// use the default Stripe endpoints.
func NewStripeProvider(secretKey string, backends *stripe.Backends) (*StripeProvider, error) {
	if strings.TrimSpace(secretKey) == "" {
		return nil, errors.New("stripe secret key is required")
	}
	return &StripeProvider{api: client.New(secretKey, backends)}, nil
}

// CreateIntent creates a card-only payment intent and returns its client secret.
func (p *StripeProvider) CreateIntent(ctx context.Context, amountCents int64, currency string) (string, error) {
	params := &stripe.PaymentIntentParams{
		Amount:             stripe.Int64(amountCents),
		Currency:           stripe.String(currency),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
	}
	params.Context = ctx

	pi, err := p.api.PaymentIntents.New(params)
	if err != nil {
		var serr *stripe.Error
		if errors.As(err, &serr) {
			return "", fmt.Errorf("stripe %s: %s", serr.Type, serr.Msg)
		}
		return "", fmt.Errorf("stripe: %w", err)
	}
	return pi.ClientSecret, nil
}
