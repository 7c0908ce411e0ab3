package analytics

import (
	"context"
	"errors"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/analytics"
)

var ErrInvalidPeriod = errors.New("period start must not be after period end")

type Service struct {
	repo  ReportRepository
	stats StatsSource
}

func NewService(repo ReportRepository, stats StatsSource) *Service {
	return &Service{repo: repo, stats: stats}
}

// CreateReport строит отчёт по заказам за [start, end] и сохраняет его.
// Границы — даты; агрегат берётся с начала первого дня до конца последнего.
func (s *Service) CreateReport(ctx context.Context, start, end time.Time) (*analytics.Report, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if start.After(end) {
		return nil, ErrInvalidPeriod
	}

	ps, err := s.stats.PeriodStats(ctx, start, endOfDay(end))
	if err != nil {
		return nil, err
	}

	r := &analytics.Report{
		PeriodStart:   start,
		PeriodEnd:     end,
		TotalOrders:   ps.TotalOrders,
		TotalRevenue:  ps.TotalAmount,
		OnTimePercent: ps.OnTimePercent(),
		CreatedAt:     time.Now().UTC(),
	}
	if err := s.repo.SaveReport(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

func (s *Service) ListReports(ctx context.Context) ([]analytics.Report, error) {
	return s.repo.ListReports(ctx)
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, 999999000, t.Location())
}
