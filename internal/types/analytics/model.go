package analytics

import (
	"time"

	"github.com/shopspring/decimal"
)

// Report — сохранённый отчёт за произвольный период. Границы — даты,
// обе включительно.
type Report struct {
	ID            int64           `db:"id" json:"id"`
	PeriodStart   time.Time       `db:"period_start" json:"period_start"`
	PeriodEnd     time.Time       `db:"period_end" json:"period_end"`
	TotalOrders   int             `db:"total_orders" json:"total_orders"`
	TotalRevenue  decimal.Decimal `db:"total_revenue" json:"total_revenue"`
	OnTimePercent float64         `db:"on_time_percent" json:"on_time_percent"`
	CreatedAt     time.Time       `db:"created_at" json:"created_at"`
}
