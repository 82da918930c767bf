package service

import (
	"context"
	"errors"
	"testing"

	"github.com/bistroboss/bistro-api/internal/core/domain"
)

type stubStatsRepo struct {
	revenue  float64
	countErr error
}

func (r *stubStatsRepo) EstimatedCounts(context.Context) (int64, int64, int64, error) {
	if r.countErr != nil {
		return 0, 0, 0, r.countErr
	}
	return 10, 25, 7, nil
}

func (r *stubStatsRepo) TotalRevenue(context.Context) (float64, error) { return r.revenue, nil }

func (r *stubStatsRepo) CategoryStats(context.Context) ([]domain.CategoryStat, error) {
	return []domain.CategoryStat{{Category: "pizza", Quantity: 3, Revenue: 42}}, nil
}

func TestStatsService_AdminStats(t *testing.T) {
	svc := NewStatsService(&stubStatsRepo{revenue: 123.4567})

	stats, err := svc.AdminStats(context.Background())
	if err != nil {
		t.Fatalf("AdminStats: %v", err)
	}
	want := domain.AdminStats{Users: 10, FoodItems: 25, Orders: 7, Revenue: 123.46}
	if *stats != want {
		t.Fatalf("expected %+v, got %+v", want, *stats)
	}
}

func TestStatsService_AdminStats_StoreFailure(t *testing.T) {
	svc := NewStatsService(&stubStatsRepo{countErr: errors.New("db down")})

	if _, err := svc.AdminStats(context.Background()); !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}
