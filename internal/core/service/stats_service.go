package service

import (
	"context"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/bistroboss/bistro-api/internal/core/domain"
	"github.com/bistroboss/bistro-api/internal/core/ports"
)

// StatsService aggregates the admin dashboard figures.
type StatsService struct {
	repo ports.StatsRepository
}

func NewStatsService(repo ports.StatsRepository) *StatsService {
	return &StatsService{repo: repo}
}

// AdminStats runs the count and revenue queries concurrently.
func (s *StatsService) AdminStats(ctx context.Context) (*domain.AdminStats, error) {
	var (
		stats   domain.AdminStats
		revenue float64
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		stats.Users, stats.FoodItems, stats.Orders, err = s.repo.EstimatedCounts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		revenue, err = s.repo.TotalRevenue(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, persistenceErr("admin stats", err)
	}

	stats.Revenue = math.Round(revenue*100) / 100
	return &stats, nil
}

func (s *StatsService) OrderStats(ctx context.Context) ([]domain.CategoryStat, error) {
	out, err := s.repo.CategoryStats(ctx)
	if err != nil {
		return nil, persistenceErr("order stats", err)
	}
	return out, nil
}
