package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, donation *Donation) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Donation, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status Status) error
	UpdatePaymentID(ctx context.Context, db *gorm.DB, id snowflake.ID, paymentID string) error
	// UpdatePix stores the gateway charge handle and the PIX payment
	// material produced at checkout.
	UpdatePix(ctx context.Context, db *gorm.DB, id snowflake.ID, paymentID, qrCode, copyPaste string, expiresAt *time.Time, payload datatypes.JSONMap) error
}
