package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
)

// StripeProvider runs hosted Checkout sessions. The merchant transaction
// id travels as the session's client reference and as payment intent
// metadata so Verify can find the charge again without storing any
// Stripe identifiers.
type StripeProvider struct {
	client *client.API
}

func NewStripeProvider(secretKey string) *StripeProvider {
	sc := &client.API{}
	sc.Init(secretKey, nil)
	return &StripeProvider{client: sc}
}

func (p *StripeProvider) Initiate(ctx context.Context, request *PaymentRequest) (*GatewayResponse, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		SuccessURL:        stripe.String(request.SuccessURL),
		CancelURL:         stripe.String(request.CancelURL),
		ClientReferenceID: stripe.String(request.TransactionID),
		CustomerEmail:     stripe.String(request.CustomerEmail),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(strings.ToLower(request.Currency)),
					UnitAmount: stripe.Int64(int64(request.Amount * 100)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(request.Description),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{
				"transaction_id": request.TransactionID,
				"booking_id":     request.BookingID,
			},
		},
	}
	params.Context = ctx

	session, err := p.client.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("payment initiation failed: %w", err)
	}

	return &GatewayResponse{
		TransactionID: request.TransactionID,
		PaymentURL:    session.URL,
		Provider:      "stripe",
	}, nil
}

func (p *StripeProvider) Verify(ctx context.Context, transactionID string) (*VerificationResult, error) {
	params := &stripe.PaymentIntentSearchParams{
		SearchParams: stripe.SearchParams{
			Query:   fmt.Sprintf("metadata['transaction_id']:'%s'", transactionID),
			Context: ctx,
		},
	}

	iter := p.client.PaymentIntents.Search(params)
	for iter.Next() {
		intent := iter.PaymentIntent()
		return &VerificationResult{
			TransactionID: transactionID,
			Verified:      intent.Status == stripe.PaymentIntentStatusSucceeded,
			Status:        string(intent.Status),
			Amount:        float64(intent.Amount) / 100,
			Currency:      strings.ToUpper(string(intent.Currency)),
		}, nil
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	return &VerificationResult{
		TransactionID: transactionID,
		Verified:      false,
		Status:        "not_found",
	}, nil
}
