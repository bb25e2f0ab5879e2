package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Status is the donation payment lifecycle state. The gateway reports a
// wider vocabulary; Normalize folds it into the three states we persist.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusFailed   Status = "failed"

	// legacyCompleted is accepted on the wire for backward compatibility
	// and is never written to storage.
	legacyCompleted Status = "completed"
)

// Normalize maps wire-level status values onto the persisted enum.
// Unknown values pass through unchanged so callers can reject them.
func Normalize(s Status) Status {
	if s == legacyCompleted {
		return StatusApproved
	}
	return s
}

// Valid reports whether s is one of the persisted states after
// normalization.
func (s Status) Valid() bool {
	switch Normalize(s) {
	case StatusPending, StatusApproved, StatusFailed:
		return true
	}
	return false
}

// Terminal reports whether the state admits no further transitions.
func (s Status) Terminal() bool {
	n := Normalize(s)
	return n == StatusApproved || n == StatusFailed
}

type Donation struct {
	ID              snowflake.ID      `json:"id" gorm:"primaryKey"`
	CampaignID      snowflake.ID      `json:"campaignId" gorm:"column:campaign_id;index"`
	DonorName       string            `json:"donorName" gorm:"column:donor_name"`
	DonorEmail      string            `json:"donorEmail" gorm:"column:donor_email"`
	DonorPhone      string            `json:"donorPhone" gorm:"column:donor_phone"`
	DonorCPF        string            `json:"donorCpf" gorm:"column:donor_cpf"`
	Amount          decimal.Decimal   `json:"amount" gorm:"type:decimal(10,2)"`
	NumberOfTickets int               `json:"numberOfTickets" gorm:"column:number_of_tickets"`
	PaymentStatus   Status            `json:"paymentStatus" gorm:"column:payment_status;index"`
	PaymentID       string            `json:"paymentId" gorm:"column:payment_id;index"`
	PixQRCode       string            `json:"pixQrCode" gorm:"column:pix_qr_code"`
	PixCopyPaste    string            `json:"pixCopyPaste" gorm:"column:pix_copy_paste"`
	PixExpiresAt    *time.Time        `json:"pixExpiresAt" gorm:"column:pix_expires_at"`
	GatewayPayload  datatypes.JSONMap `json:"-" gorm:"column:gateway_payload"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func (Donation) TableName() string { return "donations" }
