package stats

import "github.com/shopspring/decimal"

// PeriodStats — агрегаты по заказам за закрытый интервал, без отменённых.
type PeriodStats struct {
	TotalOrders     int             `json:"total_orders"`
	TotalAmount     decimal.Decimal `json:"total_amount"`
	AvgCheck        decimal.Decimal `json:"avg_check"`
	DeliveredTotal  int             `json:"delivered_total"`
	DeliveredOnTime int             `json:"delivered_on_time"`
}

// OnTimePercent — доля доставленных вовремя, 0 при отсутствии доставок.
func (p PeriodStats) OnTimePercent() float64 {
	if p.DeliveredTotal == 0 {
		return 0
	}
	return float64(p.DeliveredOnTime) / float64(p.DeliveredTotal) * 100
}
