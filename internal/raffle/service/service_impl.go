package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rifasolidaria/rifa/internal/raffle/domain"
	"github.com/rifasolidaria/rifa/pkg/db"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	allocateLockTTL  = 10 * time.Second
	allocateAttempts = 3
)

type Params struct {
	fx.In

	DB     *gorm.DB
	Log    *zap.Logger
	Node   *snowflake.Node
	Repo   domain.Repository
	Locker *Locker `optional:"true"`
}

type Service struct {
	db     *gorm.DB
	log    *zap.Logger
	node   *snowflake.Node
	repo   domain.Repository
	locker *Locker

	mu    sync.Mutex
	locks map[snowflake.ID]*sync.Mutex
}

func New(p Params) domain.Service {
	return &Service{
		db:     p.DB,
		log:    p.Log.Named("raffle.service"),
		node:   p.Node,
		repo:   p.Repo,
		locker: p.Locker,
		locks:  make(map[snowflake.ID]*sync.Mutex),
	}
}

func (s *Service) Allocate(ctx context.Context, req domain.AllocateRequest) ([]domain.RaffleNumber, error) {
	if req.CampaignID == 0 || req.DonationID == 0 {
		return nil, domain.ErrInvalidID
	}
	if req.Count < 0 {
		return nil, domain.ErrInvalidCount
	}
	if req.Count == 0 {
		return []domain.RaffleNumber{}, nil
	}

	existing, err := s.repo.CountByDonation(ctx, s.db, req.DonationID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return s.repo.ListByDonation(ctx, s.db, req.DonationID)
	}

	unlock, err := s.lockCampaign(ctx, req.CampaignID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	// Re-check under the lock: a concurrent caller for the same donation
	// may have allocated between the fast path and lock acquisition.
	existing, err = s.repo.CountByDonation(ctx, s.db, req.DonationID)
	if err != nil {
		return nil, err
	}
	if existing > 0 {
		return s.repo.ListByDonation(ctx, s.db, req.DonationID)
	}

	var lastErr error
	for attempt := 0; attempt < allocateAttempts; attempt++ {
		numbers, err := s.tryAllocate(ctx, req)
		if err == nil {
			return numbers, nil
		}
		if !db.IsDuplicateKeyErr(err) {
			return nil, err
		}
		lastErr = err
		s.log.Warn("allocation collided, retrying",
			zap.String("campaign_id", req.CampaignID.String()),
			zap.String("donation_id", req.DonationID.String()),
			zap.Int("attempt", attempt+1),
		)
	}
	return nil, fmt.Errorf("%w: %v", domain.ErrExhausted, lastErr)
}

// tryAllocate reads the occupied numbers and claims the lowest free
// ones. The unique index turns a concurrent claim into a duplicate key
// error, which the caller retries.
func (s *Service) tryAllocate(ctx context.Context, req domain.AllocateRequest) ([]domain.RaffleNumber, error) {
	used, err := s.repo.UsedNumbers(ctx, s.db, req.CampaignID)
	if err != nil {
		return nil, err
	}

	taken := make(map[int]struct{}, len(used))
	for _, n := range used {
		taken[n] = struct{}{}
	}

	now := time.Now().UTC()
	numbers := make([]domain.RaffleNumber, 0, req.Count)
	for candidate := 1; len(numbers) < req.Count; candidate++ {
		if _, ok := taken[candidate]; ok {
			continue
		}
		numbers = append(numbers, domain.RaffleNumber{
			ID:          s.node.Generate(),
			CampaignID:  req.CampaignID,
			DonationID:  req.DonationID,
			NumberValue: candidate,
			CreatedAt:   now,
		})
	}

	if err := s.repo.InsertBatch(ctx, s.db, numbers); err != nil {
		return nil, err
	}
	return numbers, nil
}

func (s *Service) ListByDonation(ctx context.Context, donationID snowflake.ID) ([]domain.RaffleNumber, error) {
	if donationID == 0 {
		return nil, domain.ErrInvalidID
	}
	return s.repo.ListByDonation(ctx, s.db, donationID)
}

func (s *Service) MarkWinner(ctx context.Context, id snowflake.ID) error {
	if id == 0 {
		return domain.ErrInvalidID
	}
	return s.repo.MarkWinner(ctx, s.db, id)
}

// lockCampaign takes the distributed lock when redis is configured and
// always takes the in-process lock, so single-node deployments stay
// correct without redis.
func (s *Service) lockCampaign(ctx context.Context, campaignID snowflake.ID) (func(), error) {
	local := s.localLock(campaignID)
	local.Lock()

	if s.locker == nil {
		return local.Unlock, nil
	}

	key := fmt.Sprintf("raffle:allocate:%s", campaignID)
	for {
		token, ok, err := s.locker.TryLock(ctx, key, allocateLockTTL)
		if err != nil {
			local.Unlock()
			return nil, err
		}
		if ok {
			return func() {
				if err := s.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
					s.log.Warn("failed to release allocation lock", zap.Error(err))
				}
				local.Unlock()
			}, nil
		}
		select {
		case <-ctx.Done():
			local.Unlock()
			return nil, ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}

func (s *Service) localLock(campaignID snowflake.ID) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.locks[campaignID]
	if !ok {
		m = &sync.Mutex{}
		s.locks[campaignID] = m
	}
	return m
}
