package domain

import (
	"context"
	"errors"

	"github.com/bwmarrin/snowflake"
)

type AllocateRequest struct {
	CampaignID snowflake.ID
	DonationID snowflake.ID
	Count      int
}

type Service interface {
	// Allocate assigns Count new numbers to the donation, filling the
	// lowest free values first. Calling it again for a donation that
	// already holds numbers returns the existing set unchanged.
	Allocate(ctx context.Context, req AllocateRequest) ([]RaffleNumber, error)
	ListByDonation(ctx context.Context, donationID snowflake.ID) ([]RaffleNumber, error)
	MarkWinner(ctx context.Context, id snowflake.ID) error
}

var (
	ErrInvalidCount = errors.New("invalid_count")
	ErrInvalidID    = errors.New("invalid_id")
	ErrExhausted    = errors.New("allocation_exhausted")
)
