package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/rifasolidaria/rifa/internal/campaign/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB   *gorm.DB
	Log  *zap.Logger
	Repo domain.Repository
}

type Service struct {
	db   *gorm.DB
	log  *zap.Logger
	repo domain.Repository
}

func New(p Params) domain.Service {
	return &Service{
		db:   p.DB,
		log:  p.Log.Named("campaign.service"),
		repo: p.Repo,
	}
}

func (s *Service) List(ctx context.Context) ([]domain.Campaign, error) {
	return s.repo.FindActive(ctx, s.db)
}

func (s *Service) GetByID(ctx context.Context, req domain.GetCampaignRequest) (domain.Campaign, error) {
	id, err := s.parseID(req.ID)
	if err != nil {
		return domain.Campaign{}, err
	}

	item, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Campaign{}, err
	}
	if item == nil {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) Stats(ctx context.Context, req domain.GetCampaignRequest) (domain.Stats, error) {
	campaign, err := s.GetByID(ctx, req)
	if err != nil {
		return domain.Stats{}, err
	}

	raised, _ := campaign.CurrentAmount.Float64()
	goal, _ := campaign.GoalAmount.Float64()

	var percentage float64
	if campaign.GoalAmount.IsPositive() {
		pct, _ := campaign.CurrentAmount.
			Div(campaign.GoalAmount).
			Mul(decimal.NewFromInt(100)).
			Float64()
		percentage = pct
	}

	return domain.Stats{
		Raised:     raised,
		Goal:       goal,
		Donors:     campaign.DonorCount,
		Percentage: percentage,
	}, nil
}

func (s *Service) Recompute(ctx context.Context, campaignID snowflake.ID) error {
	if campaignID == 0 {
		return domain.ErrInvalidID
	}

	total, donors, err := s.repo.SettledTotals(ctx, s.db, campaignID)
	if err != nil {
		return err
	}

	if err := s.repo.UpdateStats(ctx, s.db, campaignID, total, donors); err != nil {
		return err
	}

	s.log.Debug("campaign stats recomputed",
		zap.String("campaign_id", campaignID.String()),
		zap.String("total", total.String()),
		zap.Int("donors", donors),
	)
	return nil
}

func (s *Service) parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
