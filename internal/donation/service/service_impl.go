package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	campaigndomain "github.com/rifasolidaria/rifa/internal/campaign/domain"
	"github.com/rifasolidaria/rifa/internal/donation/domain"
	pixdomain "github.com/rifasolidaria/rifa/internal/pix/domain"
	raffledomain "github.com/rifasolidaria/rifa/internal/raffle/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Node      *snowflake.Node
	Repo      domain.Repository
	Campaigns campaigndomain.Service
	Raffle    raffledomain.Service
	Gateway   pixdomain.Gateway
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	node      *snowflake.Node
	repo      domain.Repository
	campaigns campaigndomain.Service
	raffle    raffledomain.Service
	gateway   pixdomain.Gateway
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("donation.service"),
		node:      p.Node,
		repo:      p.Repo,
		campaigns: p.Campaigns,
		raffle:    p.Raffle,
		gateway:   p.Gateway,
	}
}

func (s *Service) Checkout(ctx context.Context, req domain.CheckoutRequest) (domain.Donation, error) {
	_, err := parseID(req.CampaignID)
	if err != nil {
		return domain.Donation{}, domain.ErrInvalidID
	}
	if !req.Amount.IsPositive() {
		return domain.Donation{}, domain.ErrInvalidAmount
	}
	if req.NumberOfTickets <= 0 {
		return domain.Donation{}, domain.ErrInvalidAmount
	}

	campaign, err := s.campaigns.GetByID(ctx, campaigndomain.GetCampaignRequest{ID: req.CampaignID})
	if err != nil {
		if err == campaigndomain.ErrNotFound || err == campaigndomain.ErrInvalidID {
			return domain.Donation{}, domain.ErrCampaignNotFound
		}
		return domain.Donation{}, err
	}

	donation := domain.Donation{
		ID:              s.node.Generate(),
		CampaignID:      campaign.ID,
		DonorName:       strings.TrimSpace(req.DonorName),
		DonorEmail:      strings.TrimSpace(req.DonorEmail),
		DonorPhone:      strings.TrimSpace(req.DonorPhone),
		DonorCPF:        strings.TrimSpace(req.DonorCPF),
		Amount:          req.Amount,
		NumberOfTickets: req.NumberOfTickets,
		PaymentStatus:   domain.StatusPending,
	}
	if err := s.repo.Insert(ctx, s.db, &donation); err != nil {
		return domain.Donation{}, err
	}

	charge, err := s.gateway.CreateCharge(ctx, pixdomain.CreateChargeRequest{
		DonationID: donation.ID.String(),
		Amount:     donation.Amount,
		DonorName:  donation.DonorName,
		DonorEmail: donation.DonorEmail,
		DonorPhone: donation.DonorPhone,
		DonorCPF:   donation.DonorCPF,
	})
	if err != nil {
		s.log.Error("pix charge creation failed",
			zap.String("donation_id", donation.ID.String()),
			zap.Error(err),
		)
		return domain.Donation{}, domain.ErrPaymentCreateFailed
	}

	payload := datatypes.JSONMap{
		"provider": "hypercash",
		"chargeId": charge.ProviderChargeID,
		"status":   charge.RawStatus,
	}
	if err := s.repo.UpdatePix(ctx, s.db, donation.ID, charge.ProviderChargeID, charge.QRImage, charge.PayableCode, charge.ExpiresAt, payload); err != nil {
		return domain.Donation{}, err
	}

	donation.PaymentID = charge.ProviderChargeID
	donation.PixQRCode = charge.QRImage
	donation.PixCopyPaste = charge.PayableCode
	donation.PixExpiresAt = charge.ExpiresAt
	donation.GatewayPayload = payload

	s.log.Info("donation created",
		zap.String("donation_id", donation.ID.String()),
		zap.String("campaign_id", campaign.ID.String()),
		zap.String("amount", donation.Amount.String()),
		zap.Int("tickets", donation.NumberOfTickets),
	)
	return donation, nil
}

func (s *Service) Get(ctx context.Context, req domain.GetDonationRequest) (domain.Donation, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Donation{}, domain.ErrInvalidID
	}

	donation, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Donation{}, err
	}
	if donation == nil {
		return domain.Donation{}, domain.ErrNotFound
	}

	if donation.PaymentStatus != domain.StatusPending || donation.PaymentID == "" {
		return *donation, nil
	}

	status, err := s.gateway.CheckStatus(ctx, donation.PaymentID)
	if err != nil {
		// Reads must not fail because the provider is briefly down.
		s.log.Warn("payment status check failed",
			zap.String("donation_id", donation.ID.String()),
			zap.Error(err),
		)
		return *donation, nil
	}
	if !status.Paid {
		return *donation, nil
	}

	if err := s.approve(ctx, donation); err != nil {
		return domain.Donation{}, err
	}
	return *donation, nil
}

func (s *Service) UpdateStatus(ctx context.Context, req domain.UpdateStatusRequest) (domain.Donation, error) {
	id, err := parseID(req.ID)
	if err != nil {
		return domain.Donation{}, domain.ErrInvalidID
	}
	status := domain.Normalize(req.Status)
	if !status.Valid() {
		return domain.Donation{}, domain.ErrInvalidStatus
	}

	donation, err := s.repo.FindByID(ctx, s.db, id)
	if err != nil {
		return domain.Donation{}, err
	}
	if donation == nil {
		return domain.Donation{}, domain.ErrNotFound
	}

	if donation.PaymentStatus == status {
		return *donation, nil
	}
	if donation.PaymentStatus.Terminal() {
		return domain.Donation{}, domain.ErrInvalidStatus
	}

	// Late charge id from a webhook-style caller.
	if paymentID := strings.TrimSpace(req.PaymentID); paymentID != "" && donation.PaymentID == "" {
		if err := s.repo.UpdatePaymentID(ctx, s.db, donation.ID, paymentID); err != nil {
			return domain.Donation{}, err
		}
		donation.PaymentID = paymentID
	}

	switch status {
	case domain.StatusApproved:
		if err := s.approve(ctx, donation); err != nil {
			return domain.Donation{}, err
		}
	default:
		if err := s.repo.UpdateStatus(ctx, s.db, donation.ID, status); err != nil {
			return domain.Donation{}, err
		}
		donation.PaymentStatus = status
	}
	return *donation, nil
}

// approve settles the donation: persist the terminal state, hand out
// raffle numbers, then refresh the campaign aggregates. Re-running it
// for an already settled donation allocates nothing new.
func (s *Service) approve(ctx context.Context, donation *domain.Donation) error {
	if err := s.repo.UpdateStatus(ctx, s.db, donation.ID, domain.StatusApproved); err != nil {
		return err
	}
	donation.PaymentStatus = domain.StatusApproved

	numbers, err := s.raffle.Allocate(ctx, raffledomain.AllocateRequest{
		CampaignID: donation.CampaignID,
		DonationID: donation.ID,
		Count:      donation.NumberOfTickets,
	})
	if err != nil {
		return err
	}

	if err := s.campaigns.Recompute(ctx, donation.CampaignID); err != nil {
		return err
	}

	s.log.Info("donation approved",
		zap.String("donation_id", donation.ID.String()),
		zap.String("campaign_id", donation.CampaignID.String()),
		zap.Int("numbers", len(numbers)),
	)
	return nil
}

func parseID(value string) (snowflake.ID, error) {
	id, err := snowflake.ParseString(strings.TrimSpace(value))
	if err != nil || id == 0 {
		return 0, domain.ErrInvalidID
	}
	return id, nil
}
