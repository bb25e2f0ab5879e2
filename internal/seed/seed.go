package seed

import (
	"context"
	"errors"
	"time"

	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/rifasolidaria/rifa/internal/campaign/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultCampaignName = "Salvar o Dudu - SPG50"
	defaultCampaignDesc = "Campanha para arrecadar fundos para o tratamento do Dudu contra SPG50, uma doença rara e degenerativa."
)

// EnsureDefaultCampaign seeds the fundraising campaign on first startup
// so the API is usable against an empty database, then recomputes its
// aggregates so the derived columns reflect any pre-existing donations.
func EnsureDefaultCampaign(db *gorm.DB, node *snowflake.Node, campaigns campaigndomain.Service) error {
	if db == nil {
		return errors.New("seed database handle is required")
	}
	if node == nil {
		return errors.New("seed id node is required")
	}

	ctx := context.Background()
	var campaignID snowflake.ID

	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&campaigndomain.Campaign{}).
			Where("is_active = ?", true).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return nil
		}

		deadline := time.Date(2025, time.October, 20, 0, 0, 0, 0, time.UTC)
		now := time.Now().UTC()
		campaign := campaigndomain.Campaign{
			ID:            node.Generate(),
			Name:          defaultCampaignName,
			Description:   defaultCampaignDesc,
			GoalAmount:    decimal.RequireFromString("24000000.00"),
			CurrentAmount: decimal.Zero,
			IsActive:      true,
			Deadline:      &deadline,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.Create(&campaign).Error; err != nil {
			return err
		}
		campaignID = campaign.ID
		return nil
	})
	if err != nil {
		return err
	}

	if campaignID == 0 || campaigns == nil {
		return nil
	}
	return campaigns.Recompute(ctx, campaignID)
}
