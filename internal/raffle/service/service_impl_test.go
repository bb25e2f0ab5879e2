package service_test

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/rifasolidaria/rifa/internal/raffle/domain"
	"github.com/rifasolidaria/rifa/internal/raffle/repository"
	"github.com/rifasolidaria/rifa/internal/raffle/service"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestAllocateAssignsSequentialNumbers(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newService(t, db)

	campaignID := node.Generate()
	donationID := node.Generate()

	numbers, err := svc.Allocate(ctx, domain.AllocateRequest{
		CampaignID: campaignID,
		DonationID: donationID,
		Count:      5,
	})
	require.NoError(t, err)
	require.Len(t, numbers, 5)
	for i, n := range numbers {
		require.Equal(t, i+1, n.NumberValue)
		require.Equal(t, donationID, n.DonationID)
		require.Equal(t, campaignID, n.CampaignID)
	}
}

func TestAllocateFillsGaps(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newService(t, db)

	campaignID := node.Generate()
	otherDonation := node.Generate()

	// Another donation already holds 1 and 3.
	for _, v := range []int{1, 3} {
		err := db.Exec(
			`INSERT INTO raffle_numbers (id, campaign_id, donation_id, number_value, is_winner, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
			node.Generate(), campaignID, otherDonation, v, false, time.Now().UTC(),
		).Error
		require.NoError(t, err)
	}

	donationID := node.Generate()
	numbers, err := svc.Allocate(ctx, domain.AllocateRequest{
		CampaignID: campaignID,
		DonationID: donationID,
		Count:      3,
	})
	require.NoError(t, err)

	values := make([]int, 0, len(numbers))
	for _, n := range numbers {
		values = append(values, n.NumberValue)
	}
	require.Equal(t, []int{2, 4, 5}, values)
}

func TestAllocateIsIdempotentPerDonation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newService(t, db)

	req := domain.AllocateRequest{
		CampaignID: node.Generate(),
		DonationID: node.Generate(),
		Count:      4,
	}

	first, err := svc.Allocate(ctx, req)
	require.NoError(t, err)
	require.Len(t, first, 4)

	second, err := svc.Allocate(ctx, req)
	require.NoError(t, err)
	require.Len(t, second, 4)

	for i := range first {
		require.Equal(t, first[i].NumberValue, second[i].NumberValue)
	}

	var total int64
	require.NoError(t, db.Table("raffle_numbers").Count(&total).Error)
	require.EqualValues(t, 4, total)
}

func TestConcurrentAllocateForSameDonation(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newService(t, db)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	req := domain.AllocateRequest{
		CampaignID: node.Generate(),
		DonationID: node.Generate(),
		Count:      3,
	}

	var wg sync.WaitGroup
	errs := make(chan error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Allocate(ctx, req)
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	var total int64
	require.NoError(t, db.Table("raffle_numbers").Where("donation_id = ?", req.DonationID).Count(&total).Error)
	require.EqualValues(t, 3, total)
}

func TestAllocateZeroCountWritesNothing(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newService(t, db)

	numbers, err := svc.Allocate(ctx, domain.AllocateRequest{
		CampaignID: node.Generate(),
		DonationID: node.Generate(),
		Count:      0,
	})
	require.NoError(t, err)
	require.Empty(t, numbers)

	var total int64
	require.NoError(t, db.Table("raffle_numbers").Count(&total).Error)
	require.EqualValues(t, 0, total)
}

func TestAllocateRejectsNegativeCount(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newService(t, db)

	_, err := svc.Allocate(ctx, domain.AllocateRequest{
		CampaignID: node.Generate(),
		DonationID: node.Generate(),
		Count:      -1,
	})
	require.ErrorIs(t, err, domain.ErrInvalidCount)
}

func TestNumbersAreUniquePerCampaign(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	svc, node := newService(t, db)

	campaignID := node.Generate()
	seen := make(map[int]struct{})
	for i := 0; i < 6; i++ {
		numbers, err := svc.Allocate(ctx, domain.AllocateRequest{
			CampaignID: campaignID,
			DonationID: node.Generate(),
			Count:      3,
		})
		require.NoError(t, err)
		for _, n := range numbers {
			_, dup := seen[n.NumberValue]
			require.False(t, dup, "number %d allocated twice", n.NumberValue)
			seen[n.NumberValue] = struct{}{}
		}
	}
	require.Len(t, seen, 18)
}

func newService(t *testing.T, db *gorm.DB) (domain.Service, *snowflake.Node) {
	t.Helper()

	node, err := snowflake.NewNode(7)
	if err != nil {
		t.Fatalf("new node: %v", err)
	}

	svc := service.New(service.Params{
		DB:   db,
		Log:  zap.NewNop(),
		Node: node,
		Repo: repository.Provide(),
	})
	return svc, node
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:memdb_raffle_%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}

	schema := []string{
		`CREATE TABLE raffle_numbers (
			id BIGINT PRIMARY KEY,
			campaign_id BIGINT NOT NULL,
			donation_id BIGINT NOT NULL,
			number_value INTEGER NOT NULL,
			is_winner BOOLEAN NOT NULL DEFAULT FALSE,
			created_at DATETIME NOT NULL
		)`,
		`CREATE UNIQUE INDEX uq_raffle_campaign_number ON raffle_numbers(campaign_id, number_value)`,
	}
	for _, stmt := range schema {
		if err := db.Exec(stmt).Error; err != nil {
			t.Fatalf("create schema: %v", err)
		}
	}
	return db
}
