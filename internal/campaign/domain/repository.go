package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, campaign *Campaign) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Campaign, error)
	FindActive(ctx context.Context, db *gorm.DB) ([]Campaign, error)
	// SettledTotals sums amount and counts rows over the campaign's
	// donations in the terminal success state.
	SettledTotals(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) (decimal.Decimal, int, error)
	UpdateStats(ctx context.Context, db *gorm.DB, campaignID snowflake.ID, total decimal.Decimal, donors int) error
}
