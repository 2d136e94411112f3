package payment

import (
	"context"
)

// Gateway is the outbound payment collaborator. Initiate hands a
// merchant-generated transaction id to the provider and returns the URL
// the customer is redirected to; Verify re-checks a transaction with
// the provider after the redirect callback.
type Gateway interface {
	Initiate(ctx context.Context, request *PaymentRequest) (*GatewayResponse, error)
	Verify(ctx context.Context, transactionID string) (*VerificationResult, error)
}

type PaymentRequest struct {
	TransactionID   string  `json:"transaction_id"`
	BookingID       string  `json:"booking_id"`
	Amount          float64 `json:"amount"`
	Currency        string  `json:"currency"`
	Description     string  `json:"description"`
	CustomerName    string  `json:"customer_name"`
	CustomerEmail   string  `json:"customer_email"`
	CustomerPhone   string  `json:"customer_phone"`
	CustomerAddress string  `json:"customer_address"`
	SuccessURL      string  `json:"success_url"`
	FailURL         string  `json:"fail_url"`
	CancelURL       string  `json:"cancel_url"`
}

type GatewayResponse struct {
	TransactionID string `json:"transaction_id"`
	PaymentURL    string `json:"payment_url"`
	Provider      string `json:"provider"`
}

type VerificationResult struct {
	TransactionID string  `json:"transaction_id"`
	Verified      bool    `json:"verified"`
	Status        string  `json:"status"`
	Amount        float64 `json:"amount"`
	Currency      string  `json:"currency"`
}
