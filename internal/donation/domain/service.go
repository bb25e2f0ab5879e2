package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
)

type CheckoutRequest struct {
	CampaignID      string          `json:"campaignId" binding:"required"`
	DonorName       string          `json:"donorName" binding:"required"`
	DonorEmail      string          `json:"donorEmail" binding:"required,email"`
	DonorPhone      string          `json:"donorPhone" binding:"required"`
	DonorCPF        string          `json:"donorCpf" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	NumberOfTickets int             `json:"numberOfTickets" binding:"required,gt=0"`
}

type GetDonationRequest struct {
	ID string
}

type UpdateStatusRequest struct {
	ID        string
	Status    Status
	PaymentID string
}

type Service interface {
	// Checkout records the donation as pending and opens a PIX charge
	// with the gateway. The pending row survives a gateway failure so
	// the attempt is auditable.
	Checkout(ctx context.Context, req CheckoutRequest) (Donation, error)
	// Get returns the donation, first reconciling a pending one against
	// the gateway. A gateway that cannot be reached does not fail the
	// read; the stored record is returned as-is.
	Get(ctx context.Context, req GetDonationRequest) (Donation, error)
	UpdateStatus(ctx context.Context, req UpdateStatusRequest) (Donation, error)
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidAmount       = errors.New("invalid_amount")
	ErrInvalidStatus       = errors.New("invalid_status")
	ErrNotFound            = errors.New("not_found")
	ErrCampaignNotFound    = errors.New("campaign_not_found")
	ErrPaymentCreateFailed = errors.New("payment_create_failed")
)
