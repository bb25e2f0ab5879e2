package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"gorm.io/gorm"
)

type Repository interface {
	// UsedNumbers returns every number already taken in the campaign,
	// in ascending order.
	UsedNumbers(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) ([]int, error)
	// InsertBatch writes the whole allocation in one transaction. The
	// unique index on (campaign_id, number_value) rejects collisions.
	InsertBatch(ctx context.Context, db *gorm.DB, numbers []RaffleNumber) error
	ListByDonation(ctx context.Context, db *gorm.DB, donationID snowflake.ID) ([]RaffleNumber, error)
	CountByDonation(ctx context.Context, db *gorm.DB, donationID snowflake.ID) (int64, error)
	MarkWinner(ctx context.Context, db *gorm.DB, id snowflake.ID) error
}
