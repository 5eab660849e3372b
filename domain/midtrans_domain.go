package domain

import (
	"errors"
)

var (
	MessageSuccessProcessNotification = "notification processed successfully"

	MessageFailedProcessNotification = "failed to process notification"

	ErrTransactionNotFound = errors.New("payment transaction not found")
	ErrSignatureInvalid    = errors.New("invalid notification signature")
)

const (
	PaymentStatusPending    = "pending"
	PaymentStatusSettlement = "settlement"
	PaymentStatusFailed     = "failed"
)

type (
	MidtransPaymentRequest struct {
		OrderID string
		Amount  int64
		Email   string
	}

	MidtransPaymentResponse struct {
		Token   string `json:"token"`
		Invoice string `json:"invoice"`
	}

	// MidtransNotification carries the fields of a midtrans HTTP notification
	// that the webhook flow needs.
	MidtransNotification struct {
		OrderID           string `json:"order_id"`
		TransactionStatus string `json:"transaction_status"`
		FraudStatus       string `json:"fraud_status"`
		StatusCode        string `json:"status_code"`
		GrossAmount       string `json:"gross_amount"`
		SignatureKey      string `json:"signature_key"`
	}
)
