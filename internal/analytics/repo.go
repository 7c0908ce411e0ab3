package analytics

import (
	"context"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/analytics"
	"github.com/antonminaichev/flower-shop/internal/types/stats"
)

type ReportRepository interface {
	SaveReport(ctx context.Context, r *analytics.Report) error
	ListReports(ctx context.Context) ([]analytics.Report, error)
}

// StatsSource считает агрегаты по заказам за закрытый интервал.
type StatsSource interface {
	PeriodStats(ctx context.Context, start, end time.Time) (*stats.PeriodStats, error)
}
