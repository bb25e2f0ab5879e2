package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
)

type RaffleNumber struct {
	ID          snowflake.ID `json:"id" gorm:"primaryKey"`
	CampaignID  snowflake.ID `json:"campaignId" gorm:"column:campaign_id;uniqueIndex:uq_raffle_campaign_number"`
	DonationID  snowflake.ID `json:"donationId" gorm:"column:donation_id;index"`
	NumberValue int          `json:"numberValue" gorm:"column:number_value;uniqueIndex:uq_raffle_campaign_number"`
	IsWinner    bool         `json:"isWinner" gorm:"column:is_winner"`
	CreatedAt   time.Time    `json:"createdAt"`
}

func (RaffleNumber) TableName() string { return "raffle_numbers" }
