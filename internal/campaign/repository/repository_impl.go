package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rifasolidaria/rifa/internal/campaign/domain"
	donationdomain "github.com/rifasolidaria/rifa/internal/donation/domain"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, campaign *domain.Campaign) error {
	return db.WithContext(ctx).Create(campaign).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Campaign, error) {
	var campaign domain.Campaign
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&campaign).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &campaign, nil
}

func (r *repo) FindActive(ctx context.Context, db *gorm.DB) ([]domain.Campaign, error) {
	var campaigns []domain.Campaign
	err := db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at asc").
		Find(&campaigns).Error
	if err != nil {
		return nil, err
	}
	return campaigns, nil
}

func (r *repo) SettledTotals(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) (decimal.Decimal, int, error) {
	var row struct {
		Total  decimal.Decimal
		Donors int
	}
	err := db.WithContext(ctx).Raw(
		`SELECT COALESCE(SUM(amount), 0) AS total, COUNT(id) AS donors
		 FROM donations WHERE campaign_id = ? AND payment_status = ?`,
		campaignID,
		donationdomain.StatusApproved,
	).Scan(&row).Error
	if err != nil {
		return decimal.Zero, 0, err
	}
	return row.Total, row.Donors, nil
}

func (r *repo) UpdateStats(ctx context.Context, db *gorm.DB, campaignID snowflake.ID, total decimal.Decimal, donors int) error {
	return db.WithContext(ctx).Exec(
		`UPDATE campaigns SET current_amount = ?, donor_count = ?, updated_at = ? WHERE id = ?`,
		total,
		donors,
		time.Now().UTC(),
		campaignID,
	).Error
}
