package config

type PaymentConfig struct {
	DefaultProvider string          `yaml:"default_provider"`
	AamarPay        *AamarPayConfig `yaml:"aamarpay"`
	Stripe          *StripeConfig   `yaml:"stripe"`
	Razorpay        *RazorpayConfig `yaml:"razorpay"`
	Currency        string          `yaml:"currency"`
	SuccessURL      string          `yaml:"success_url"`
	FailURL         string          `yaml:"fail_url"`
	CancelURL       string          `yaml:"cancel_url"`
}

type AamarPayConfig struct {
	StoreID      string `yaml:"store_id"`
	SignatureKey string `yaml:"signature_key"`
	InitiateURL  string `yaml:"initiate_url"`
	VerifyURL    string `yaml:"verify_url"`
}

type StripeConfig struct {
	PublishableKey string `yaml:"publishable_key"`
	SecretKey      string `yaml:"secret_key"`
	WebhookSecret  string `yaml:"webhook_secret"`
}

type RazorpayConfig struct {
	KeyID     string `yaml:"key_id"`
	KeySecret string `yaml:"key_secret"`
	Webhook   string `yaml:"webhook_secret"`
}

func loadPaymentConfig() *PaymentConfig {
	baseURL := getEnv("APP_BASE_URL", "http://localhost:8080")

	return &PaymentConfig{
		DefaultProvider: getEnv("PAYMENT_DEFAULT_PROVIDER", "aamarpay"),
		AamarPay: &AamarPayConfig{
			StoreID:      getEnv("AAMARPAY_STORE_ID", "aamarpaytest"),
			SignatureKey: getEnv("AAMARPAY_SIGNATURE_KEY", ""),
			InitiateURL:  getEnv("AAMARPAY_INITIATE_URL", "https://sandbox.aamarpay.com/jsonpost.php"),
			VerifyURL:    getEnv("AAMARPAY_VERIFY_URL", "https://sandbox.aamarpay.com/api/v1/trxcheck/request.php"),
		},
		Stripe: &StripeConfig{
			PublishableKey: getEnv("STRIPE_PUBLISHABLE_KEY", ""),
			SecretKey:      getEnv("STRIPE_SECRET_KEY", ""),
			WebhookSecret:  getEnv("STRIPE_WEBHOOK_SECRET", ""),
		},
		Razorpay: &RazorpayConfig{
			KeyID:     getEnv("RAZORPAY_KEY_ID", ""),
			KeySecret: getEnv("RAZORPAY_KEY_SECRET", ""),
			Webhook:   getEnv("RAZORPAY_WEBHOOK_SECRET", ""),
		},
		Currency:   getEnv("PAYMENT_CURRENCY", "BDT"),
		SuccessURL: getEnv("PAYMENT_SUCCESS_URL", baseURL+"/api/payment/confirmation"),
		FailURL:    getEnv("PAYMENT_FAIL_URL", baseURL+"/api/payment/confirmation"),
		CancelURL:  getEnv("PAYMENT_CANCEL_URL", baseURL+"/api/payment/confirmation"),
	}
}
