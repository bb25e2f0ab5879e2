package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

// Campaign is a fundraising goal with an associated pool of raffle numbers.
// CurrentAmount and DonorCount are derived from settled donations and are
// only ever written by Recompute.
type Campaign struct {
	ID            snowflake.ID    `gorm:"primaryKey" json:"id"`
	Name          string          `gorm:"not null" json:"name"`
	Description   string          `json:"description"`
	GoalAmount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"goalAmount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"currentAmount"`
	DonorCount    int             `gorm:"not null;default:0" json:"donorCount"`
	IsActive      bool            `gorm:"not null;default:true" json:"isActive"`
	Deadline      *time.Time      `json:"deadline,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"createdAt"`
	UpdatedAt     time.Time       `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updatedAt"`
}

// Stats is the progress-bar payload for a campaign.
type Stats struct {
	Raised     float64 `json:"raised"`
	Goal       float64 `json:"goal"`
	Donors     int     `json:"donors"`
	Percentage float64 `json:"percentage"`
}
