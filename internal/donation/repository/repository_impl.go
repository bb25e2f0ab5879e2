package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rifasolidaria/rifa/internal/donation/domain"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, donation *domain.Donation) error {
	return db.WithContext(ctx).Create(donation).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Donation, error) {
	var donation domain.Donation
	err := db.WithContext(ctx).
		Where("id = ?", id).
		First(&donation).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &donation, nil
}

func (r *repo) UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status domain.Status) error {
	return db.WithContext(ctx).Exec(
		`UPDATE donations SET payment_status = ?, updated_at = ? WHERE id = ?`,
		status,
		time.Now().UTC(),
		id,
	).Error
}

func (r *repo) UpdatePaymentID(ctx context.Context, db *gorm.DB, id snowflake.ID, paymentID string) error {
	return db.WithContext(ctx).Exec(
		`UPDATE donations SET payment_id = ?, updated_at = ? WHERE id = ?`,
		paymentID,
		time.Now().UTC(),
		id,
	).Error
}

func (r *repo) UpdatePix(ctx context.Context, db *gorm.DB, id snowflake.ID, paymentID, qrCode, copyPaste string, expiresAt *time.Time, payload datatypes.JSONMap) error {
	return db.WithContext(ctx).
		Model(&domain.Donation{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"payment_id":      paymentID,
			"pix_qr_code":     qrCode,
			"pix_copy_paste":  copyPaste,
			"pix_expires_at":  expiresAt,
			"gateway_payload": payload,
			"updated_at":      time.Now().UTC(),
		}).Error
}
