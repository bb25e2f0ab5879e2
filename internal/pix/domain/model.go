package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

type CreateChargeRequest struct {
	DonationID string
	Amount     decimal.Decimal
	DonorName  string
	DonorEmail string
	DonorPhone string
	DonorCPF   string
}

// Charge is a freshly created PIX transaction. QRImage is a rendered
// data URI and may be empty when rendering fails. A successful charge
// always carries a PayableCode (copy-and-paste payload) or a
// PaymentURL, never neither.
type Charge struct {
	ProviderChargeID string
	PayableCode      string
	PaymentURL       string
	QRImage          string
	ExpiresAt        *time.Time
	RawStatus        string
}

type ChargeStatus struct {
	Status string
	Paid   bool
}

type Gateway interface {
	CreateCharge(ctx context.Context, req CreateChargeRequest) (Charge, error)
	CheckStatus(ctx context.Context, chargeID string) (ChargeStatus, error)
}

var (
	ErrNotConfigured  = errors.New("gateway_not_configured")
	ErrInvalidRequest = errors.New("invalid_charge_request")
	ErrProvider       = errors.New("provider_error")
)
