package analytics

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/antonminaichev/flower-shop/internal/types/analytics"
	"github.com/antonminaichev/flower-shop/internal/types/stats"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type memReportRepo struct {
	reports []analytics.Report
}

func (r *memReportRepo) SaveReport(ctx context.Context, rep *analytics.Report) error {
	rep.ID = int64(len(r.reports) + 1)
	r.reports = append(r.reports, *rep)
	return nil
}

func (r *memReportRepo) ListReports(ctx context.Context) ([]analytics.Report, error) {
	return r.reports, nil
}

type stubStatsSource struct {
	ps        *stats.PeriodStats
	gotStart  time.Time
	gotEnd    time.Time
	callCount int
}

func (s *stubStatsSource) PeriodStats(ctx context.Context, start, end time.Time) (*stats.PeriodStats, error) {
	s.gotStart = start
	s.gotEnd = end
	s.callCount++
	return s.ps, nil
}

func TestCreateReport(t *testing.T) {
	repo := &memReportRepo{}
	source := &stubStatsSource{ps: &stats.PeriodStats{
		TotalOrders:     100,
		TotalAmount:     decimal.NewFromInt(500000),
		DeliveredTotal:  80,
		DeliveredOnTime: 76,
	}}
	svc := NewService(repo, source)

	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

	r, err := svc.CreateReport(context.Background(), start, end)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, int64(1), r.ID)
	assert.Equal(t, start, r.PeriodStart)
	assert.Equal(t, end, r.PeriodEnd)
	assert.Equal(t, 100, r.TotalOrders)
	assert.True(t, r.TotalRevenue.Equal(decimal.NewFromInt(500000)))
	assert.InDelta(t, 95.0, r.OnTimePercent, 0.001)

	// Агрегат берётся по полным дням: с начала первого до конца последнего.
	assert.Equal(t, start, source.gotStart)
	assert.Equal(t, time.Date(2024, 1, 31, 23, 59, 59, 999999000, time.UTC), source.gotEnd)

	reports, err := svc.ListReports(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 1, len(reports))
}

func TestCreateReportStartAfterEnd(t *testing.T) {
	source := &stubStatsSource{}
	svc := NewService(&memReportRepo{}, source)

	start := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := svc.CreateReport(context.Background(), start, end)
	assert.ErrorIs(t, err, ErrInvalidPeriod)
	assert.Equal(t, 0, source.callCount, "aggregation must not run for an invalid period")
}

func TestCreateReportSingleDay(t *testing.T) {
	source := &stubStatsSource{ps: &stats.PeriodStats{}}
	svc := NewService(&memReportRepo{}, source)

	day := time.Date(2024, 3, 15, 10, 30, 0, 0, time.UTC)
	r, err := svc.CreateReport(context.Background(), day, day)
	if err != nil {
		t.Fatal(err)
	}
	// Время внутри дня отбрасывается, границы совпадают.
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), r.PeriodStart)
	assert.Equal(t, r.PeriodStart, r.PeriodEnd)
	assert.InDelta(t, 0.0, r.OnTimePercent, 0.001)
}

func TestCreateReportHandler(t *testing.T) {
	source := &stubStatsSource{ps: &stats.PeriodStats{TotalOrders: 5, TotalAmount: decimal.NewFromInt(1000)}}
	handler := NewHandler(NewService(&memReportRepo{}, source))

	tests := []struct {
		name       string
		body       string
		wantStatus int
	}{
		{"Valid period", `{"period_start":"2024-01-01","period_end":"2024-01-31"}`, http.StatusCreated},
		{"Start after end", `{"period_start":"2024-02-01","period_end":"2024-01-01"}`, http.StatusBadRequest},
		{"Bad date", `{"period_start":"01.01.2024","period_end":"2024-01-31"}`, http.StatusBadRequest},
		{"Invalid JSON", `{"period_start":}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodPost, "/api/reports", strings.NewReader(tt.body))
		rec := httptest.NewRecorder()

		handler.CreateReport(rec, req)
		res := rec.Result()
		defer res.Body.Close()

		if res.StatusCode != tt.wantStatus {
			t.Errorf("%s: got status %d, want %d", tt.name, res.StatusCode, tt.wantStatus)
		}
	}
}
