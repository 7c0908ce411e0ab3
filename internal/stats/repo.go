package stats

import (
	"context"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/stats"
)

// StatsRepository считает агрегаты по заказам за закрытый интервал:
// количество, сумма, доставленные и доставленные вовремя, без отменённых.
type StatsRepository interface {
	GetPeriodStats(ctx context.Context, start, end time.Time) (*stats.PeriodStats, error)
}
