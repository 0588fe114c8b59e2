package dto

type PaymentRequest struct {
	Amount          float64 `json:"amount"`
	PaymentMethodID string  `json:"payment_method_id"`
	Email           string  `json:"email"`
}

type PaymentResponse struct {
	Success           bool   `json:"success"`
	Message           string `json:"message"`
	TransactionNumber string `json:"transaction_number,omitempty"`
}

type ChargeResult struct {
	TransactionStatus string
	ExpiryTime        int64
}

type PaymentNotification struct {
	TransactionType   string `json:"transaction_type"`
	TransactionTime   string `json:"transaction_time"`
	TransactionStatus string `json:"transaction_status"`
	TransactionID     string `json:"transaction_id"`
	StatusMessage     string `json:"status_message"`
	StatusCode        string `json:"status_code"`
	SignatureKey      string `json:"signature_key"`
	SettlementTime    string `json:"settlement_time"`
	PaymentType       string `json:"payment_type"`
	OrderID           string `json:"order_id"`
	MerchantID        string `json:"merchant_id"`
	GrossAmount       string `json:"gross_amount"`
	FraudStatus       string `json:"fraud_status"`
	Currency          string `json:"currency"`
}
