package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type GetCampaignRequest struct {
	ID string
}

type Service interface {
	List(ctx context.Context) ([]Campaign, error)
	GetByID(ctx context.Context, req GetCampaignRequest) (Campaign, error)
	Stats(ctx context.Context, req GetCampaignRequest) (Stats, error)
	// Recompute overwrites the campaign's derived aggregates from the
	// current set of settled donations. Safe to call repeatedly.
	Recompute(ctx context.Context, campaignID snowflake.ID) error
}

var (
	ErrInvalidID = errors.New("invalid_id")
	ErrNotFound  = errors.New("not_found")
)
