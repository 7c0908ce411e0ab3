package stats

import (
	"fmt"
	"strings"

	"github.com/antonminaichev/flower-shop/internal/types/stats"
	"github.com/shopspring/decimal"
)

var monthsRu = [...]string{
	"Январь", "Февраль", "Март", "Апрель",
	"Май", "Июнь", "Июль", "Август",
	"Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

// formatAvg: нулевой средний чек печатается как голый 0, без знаков после
// запятой.
func formatAvg(avg decimal.Decimal) string {
	if avg.IsZero() {
		return "0"
	}
	return avg.StringFixed(2)
}

func formatPeriod(b *strings.Builder, ps stats.PeriodStats) {
	fmt.Fprintf(b, "Заказов: %d / Сумма: %s ₽\n", ps.TotalOrders, ps.TotalAmount.String())
	fmt.Fprintf(b, "▪ Средний чек: %s ₽\n", formatAvg(ps.AvgCheck))
	fmt.Fprintf(b, "Доставлено всего: %d\n", ps.DeliveredTotal)
	fmt.Fprintf(b, "Из них вовремя: %d\n", ps.DeliveredOnTime)
	fmt.Fprintf(b, "▪ Процент вовремя: %.1f%%\n", ps.OnTimePercent())
}

func formatLastYear(b *strings.Builder, ps stats.PeriodStats) {
	fmt.Fprintf(b, "Прошлый год: %d / %s ₽\n", ps.TotalOrders, ps.TotalAmount.String())
}

// Render превращает отчёт в текст для оператора: секция на каждый период,
// у недели, месяца и года — строка сравнения с прошлым годом.
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString("📊 *Статистика заказов*\n\n")

	_, isoWeek := r.Now.ISOWeek()

	fmt.Fprintf(&b, "*Сегодня (%s)*\n", r.Now.Format("02.01.2006 15:04"))
	formatPeriod(&b, r.Today)
	b.WriteString("\n")

	fmt.Fprintf(&b, "*Текущая неделя (неделя №%d)*\n", isoWeek)
	formatPeriod(&b, r.Week)
	formatLastYear(&b, r.LastYearWeek)
	b.WriteString("\n")

	fmt.Fprintf(&b, "*Текущий месяц (%s)*\n", monthsRu[int(r.Now.Month())-1])
	formatPeriod(&b, r.Month)
	formatLastYear(&b, r.LastYearMonth)
	b.WriteString("\n")

	fmt.Fprintf(&b, "*Текущий год (%d)*\n", r.Now.Year())
	formatPeriod(&b, r.Year)
	formatLastYear(&b, r.LastYearYear)

	return strings.TrimRight(b.String(), "\n")
}
