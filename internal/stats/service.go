package stats

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/stats"
	"github.com/shopspring/decimal"
)

// ErrStatsUnavailable возвращается при любой ошибке чтения хранилища:
// частичный отчёт не строится.
var ErrStatsUnavailable = errors.New("statistics unavailable")

type Service struct {
	repo StatsRepository
	loc  *time.Location
}

func NewService(repo StatsRepository, loc *time.Location) *Service {
	if loc == nil {
		loc = time.UTC
	}
	return &Service{repo: repo, loc: loc}
}

// PeriodStats — агрегаты за [start, end] плюс средний чек. Пустой период —
// не ошибка, все поля нулевые.
func (s *Service) PeriodStats(ctx context.Context, start, end time.Time) (*stats.PeriodStats, error) {
	ps, err := s.repo.GetPeriodStats(ctx, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStatsUnavailable, err)
	}
	if ps.TotalOrders > 0 && !ps.TotalAmount.IsZero() {
		ps.AvgCheck = ps.TotalAmount.Div(decimal.NewFromInt(int64(ps.TotalOrders)))
	} else {
		ps.AvgCheck = decimal.Zero
	}
	return ps, nil
}

// Window — закрытый интервал, обе границы включительно.
type Window struct {
	Start time.Time
	End   time.Time
}

// Windows — семь отчётных периодов относительно момента now.
type Windows struct {
	Today         Window
	Week          Window
	Month         Window
	Year          Window
	LastYearWeek  Window
	LastYearMonth Window
	LastYearYear  Window
}

// BuildWindows считает отчётные периоды в часовом поясе сервиса. Периоды
// прошлого года строятся подстановкой year-1 в те же границы месяца и дня,
// без поправки на високосные годы и сдвиг ISO-недель — поведение сохранено
// из исходной системы.
func (s *Service) BuildWindows(now time.Time) Windows {
	now = now.In(s.loc)
	y, m, d := now.Date()

	today := Window{
		Start: time.Date(y, m, d, 0, 0, 0, 0, s.loc),
		End:   time.Date(y, m, d, 23, 59, 59, 999999000, s.loc),
	}

	// Неделя с понедельника.
	wd := (int(now.Weekday()) + 6) % 7
	week := Window{
		Start: time.Date(y, m, d-wd, 0, 0, 0, 0, s.loc),
	}
	wy, wm, wdStart := week.Start.Date()
	week.End = time.Date(wy, wm, wdStart+6, 23, 59, 59, 0, s.loc)

	month := Window{
		Start: time.Date(y, m, 1, 0, 0, 0, 0, s.loc),
		End:   time.Date(y, m+1, 1, 0, 0, 0, 0, s.loc).Add(-time.Second),
	}

	year := Window{
		Start: time.Date(y, time.January, 1, 0, 0, 0, 0, s.loc),
		End:   time.Date(y, time.December, 31, 23, 59, 59, 0, s.loc),
	}

	lastYear := y - 1

	_, wsM, wsD := week.Start.Date()
	_, weM, weD := week.End.Date()
	lastYearWeek := Window{
		Start: time.Date(lastYear, wsM, wsD, 0, 0, 0, 0, s.loc),
		End:   time.Date(lastYear, weM, weD, 23, 59, 59, 0, s.loc),
	}

	lastYearMonth := Window{
		Start: time.Date(lastYear, m, 1, 0, 0, 0, 0, s.loc),
		End:   time.Date(lastYear, m+1, 1, 0, 0, 0, 0, s.loc).Add(-time.Second),
	}

	lastYearYear := Window{
		Start: time.Date(lastYear, time.January, 1, 0, 0, 0, 0, s.loc),
		End:   time.Date(lastYear, time.December, 31, 23, 59, 59, 0, s.loc),
	}

	return Windows{
		Today:         today,
		Week:          week,
		Month:         month,
		Year:          year,
		LastYearWeek:  lastYearWeek,
		LastYearMonth: lastYearMonth,
		LastYearYear:  lastYearYear,
	}
}

// Report собирает агрегаты по всем семи периодам.
type Report struct {
	Now           time.Time
	Today         stats.PeriodStats
	Week          stats.PeriodStats
	Month         stats.PeriodStats
	Year          stats.PeriodStats
	LastYearWeek  stats.PeriodStats
	LastYearMonth stats.PeriodStats
	LastYearYear  stats.PeriodStats
}

func (s *Service) BuildReport(ctx context.Context, now time.Time) (*Report, error) {
	w := s.BuildWindows(now)
	report := &Report{Now: now.In(s.loc)}

	for _, p := range []struct {
		win Window
		dst *stats.PeriodStats
	}{
		{w.Today, &report.Today},
		{w.Week, &report.Week},
		{w.Month, &report.Month},
		{w.Year, &report.Year},
		{w.LastYearWeek, &report.LastYearWeek},
		{w.LastYearMonth, &report.LastYearMonth},
		{w.LastYearYear, &report.LastYearYear},
	} {
		ps, err := s.PeriodStats(ctx, p.win.Start, p.win.End)
		if err != nil {
			return nil, err
		}
		*p.dst = *ps
	}
	return report, nil
}
