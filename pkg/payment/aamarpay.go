package payment

import (
	"context"
	"fmt"

	"github.com/go-resty/resty/v2"
)

// AamarPayProvider drives the hosted-checkout HTTP gateway: the
// merchant posts the transaction and gets back a payment URL, then
// re-verifies the transaction id after the customer is redirected.
type AamarPayProvider struct {
	client       *resty.Client
	storeID      string
	signatureKey string
	initiateURL  string
	verifyURL    string
}

type aamarPayInitResponse struct {
	Result     string `json:"result"`
	PaymentURL string `json:"payment_url"`
}

type aamarPayVerifyResponse struct {
	PayStatus     string `json:"pay_status"`
	StatusCode    string `json:"status_code"`
	StatusTitle   string `json:"status_title"`
	Amount        string `json:"amount"`
	Currency      string `json:"currency"`
	TransactionID string `json:"mer_txnid"`
}

func NewAamarPayProvider(storeID, signatureKey, initiateURL, verifyURL string) *AamarPayProvider {
	return &AamarPayProvider{
		client:       resty.New(),
		storeID:      storeID,
		signatureKey: signatureKey,
		initiateURL:  initiateURL,
		verifyURL:    verifyURL,
	}
}

func (p *AamarPayProvider) Initiate(ctx context.Context, request *PaymentRequest) (*GatewayResponse, error) {
	var result aamarPayInitResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetBody(map[string]interface{}{
			"store_id":      p.storeID,
			"signature_key": p.signatureKey,
			"tran_id":       request.TransactionID,
			"success_url":   request.SuccessURL,
			"fail_url":      request.FailURL,
			"cancel_url":    request.CancelURL,
			"amount":        fmt.Sprintf("%.2f", request.Amount),
			"currency":      request.Currency,
			"desc":          request.Description,
			"cus_name":      request.CustomerName,
			"cus_email":     request.CustomerEmail,
			"cus_add1":      request.CustomerAddress,
			"cus_phone":     request.CustomerPhone,
			"type":          "json",
		}).
		SetResult(&result).
		Post(p.initiateURL)
	if err != nil {
		return nil, fmt.Errorf("payment initiation failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("payment initiation failed: gateway returned %s", resp.Status())
	}
	if result.PaymentURL == "" {
		return nil, fmt.Errorf("payment initiation failed: gateway returned no payment url")
	}

	return &GatewayResponse{
		TransactionID: request.TransactionID,
		PaymentURL:    result.PaymentURL,
		Provider:      "aamarpay",
	}, nil
}

func (p *AamarPayProvider) Verify(ctx context.Context, transactionID string) (*VerificationResult, error) {
	var result aamarPayVerifyResponse

	resp, err := p.client.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"store_id":      p.storeID,
			"signature_key": p.signatureKey,
			"request_id":    transactionID,
			"type":          "json",
		}).
		SetResult(&result).
		Get(p.verifyURL)
	if err != nil {
		return nil, fmt.Errorf("payment verification failed: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("payment verification failed: gateway returned %s", resp.Status())
	}

	var amount float64
	fmt.Sscanf(result.Amount, "%f", &amount)

	return &VerificationResult{
		TransactionID: transactionID,
		Verified:      result.PayStatus == "Successful",
		Status:        result.PayStatus,
		Amount:        amount,
		Currency:      result.Currency,
	}, nil
}
