package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/rifasolidaria/rifa/internal/raffle/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) UsedNumbers(ctx context.Context, db *gorm.DB, campaignID snowflake.ID) ([]int, error) {
	var numbers []int
	err := db.WithContext(ctx).Raw(
		`SELECT number_value FROM raffle_numbers WHERE campaign_id = ? ORDER BY number_value ASC`,
		campaignID,
	).Scan(&numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *repo) InsertBatch(ctx context.Context, db *gorm.DB, numbers []domain.RaffleNumber) error {
	if len(numbers) == 0 {
		return nil
	}
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&numbers).Error
	})
}

func (r *repo) ListByDonation(ctx context.Context, db *gorm.DB, donationID snowflake.ID) ([]domain.RaffleNumber, error) {
	var numbers []domain.RaffleNumber
	err := db.WithContext(ctx).
		Where("donation_id = ?", donationID).
		Order("number_value asc").
		Find(&numbers).Error
	if err != nil {
		return nil, err
	}
	return numbers, nil
}

func (r *repo) CountByDonation(ctx context.Context, db *gorm.DB, donationID snowflake.ID) (int64, error) {
	var count int64
	err := db.WithContext(ctx).
		Model(&domain.RaffleNumber{}).
		Where("donation_id = ?", donationID).
		Count(&count).Error
	return count, err
}

func (r *repo) MarkWinner(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).
		Model(&domain.RaffleNumber{}).
		Where("id = ?", id).
		Update("is_winner", true).Error
}
