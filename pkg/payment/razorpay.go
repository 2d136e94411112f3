package payment

import (
	"context"
	"fmt"
	"strings"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayProvider collects through payment links. The merchant
// transaction id is stored as the link's reference id, which is also the
// key Verify looks the link up by.
type RazorpayProvider struct {
	client *razorpay.Client
}

func NewRazorpayProvider(keyID, keySecret string) *RazorpayProvider {
	return &RazorpayProvider{
		client: razorpay.NewClient(keyID, keySecret),
	}
}

func (p *RazorpayProvider) Initiate(ctx context.Context, request *PaymentRequest) (*GatewayResponse, error) {
	data := map[string]interface{}{
		"amount":       int64(request.Amount * 100),
		"currency":     strings.ToUpper(request.Currency),
		"reference_id": request.TransactionID,
		"description":  request.Description,
		"customer": map[string]interface{}{
			"name":    request.CustomerName,
			"email":   request.CustomerEmail,
			"contact": request.CustomerPhone,
		},
		"callback_url":    request.SuccessURL,
		"callback_method": "get",
		"notes": map[string]interface{}{
			"booking_id": request.BookingID,
		},
	}

	link, err := p.client.PaymentLink.Create(data, nil)
	if err != nil {
		return nil, fmt.Errorf("payment initiation failed: %w", err)
	}

	shortURL, ok := link["short_url"].(string)
	if !ok || shortURL == "" {
		return nil, fmt.Errorf("payment initiation failed: gateway returned no payment url")
	}

	return &GatewayResponse{
		TransactionID: request.TransactionID,
		PaymentURL:    shortURL,
		Provider:      "razorpay",
	}, nil
}

func (p *RazorpayProvider) Verify(ctx context.Context, transactionID string) (*VerificationResult, error) {
	links, err := p.client.PaymentLink.All(map[string]interface{}{
		"reference_id": transactionID,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}

	items, ok := links["payment_links"].([]interface{})
	if !ok || len(items) == 0 {
		return &VerificationResult{
			TransactionID: transactionID,
			Verified:      false,
			Status:        "not_found",
		}, nil
	}

	link, ok := items[0].(map[string]interface{})
	if !ok {
		return nil, fmt.Errorf("payment verification failed: unexpected gateway response")
	}

	status, _ := link["status"].(string)
	amount, _ := link["amount_paid"].(float64)
	currency, _ := link["currency"].(string)

	return &VerificationResult{
		TransactionID: transactionID,
		Verified:      status == "paid",
		Status:        status,
		Amount:        amount / 100,
		Currency:      currency,
	}, nil
}
