package service

import (
	"context"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/treasurywatch/debt-tracker/internal/cache"
	"github.com/treasurywatch/debt-tracker/internal/config"
	"github.com/treasurywatch/debt-tracker/internal/models"
)

// fakeFetcher is a stub upstream that counts calls
type fakeFetcher struct {
	mu     sync.Mutex
	calls  int
	delay  time.Duration
	series models.DebtSeries
	err    error
}

func (f *fakeFetcher) Fetch(ctx context.Context, windowDays int) (models.DebtSeries, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.series, nil
}

func (f *fakeFetcher) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func testConfig() *config.Config {
	return &config.Config{
		Population:           340000000,
		LongWindowMinRecords: 365,
		CacheTTL:             24 * time.Hour,
	}
}

func newTestService(fetcher Fetcher, cfg *config.Config) *Service {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return NewService(fetcher, cache.NewSeriesCache(cfg.CacheTTL), logger, cfg)
}

func testSeries(values ...string) models.DebtSeries {
	// Most recent first, one record per day counting backwards.
	series := make(models.DebtSeries, len(values))
	day := time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		series[i] = models.DebtRecord{
			Date:      day.AddDate(0, 0, -i),
			TotalDebt: decimal.RequireFromString(v),
		}
	}
	return series
}

func TestSeriesIsCachedPerKey(t *testing.T) {
	fetcher := &fakeFetcher{series: testSeries("1100", "1000")}
	svc := newTestService(fetcher, testConfig())

	first, err := svc.Series(context.Background(), 365, "2026-08-27")
	require.NoError(t, err)
	second, err := svc.Series(context.Background(), 365, "2026-08-27")
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, fetcher.callCount(), "a cache hit must not reach the network")
}

func TestSeriesRefetchesOnEpochChange(t *testing.T) {
	fetcher := &fakeFetcher{series: testSeries("1100")}
	svc := newTestService(fetcher, testConfig())

	_, err := svc.Series(context.Background(), 365, "2026-08-27")
	require.NoError(t, err)
	_, err = svc.Series(context.Background(), 365, "2026-08-28")
	require.NoError(t, err)

	assert.Equal(t, 2, fetcher.callCount())
}

func TestSeriesRefetchesAfterInvalidate(t *testing.T) {
	fetcher := &fakeFetcher{series: testSeries("1100")}
	svc := newTestService(fetcher, testConfig())

	_, err := svc.Series(context.Background(), 365, "2026-08-27")
	require.NoError(t, err)

	svc.Invalidate()

	_, err = svc.Series(context.Background(), 365, "2026-08-27")
	require.NoError(t, err)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestSeriesFailedFetchIsNotCached(t *testing.T) {
	fetcher := &fakeFetcher{err: context.DeadlineExceeded}
	svc := newTestService(fetcher, testConfig())

	_, err := svc.Series(context.Background(), 365, "2026-08-27")
	require.Error(t, err)

	fetcher.mu.Lock()
	fetcher.err = nil
	fetcher.series = testSeries("1100")
	fetcher.mu.Unlock()

	series, err := svc.Series(context.Background(), 365, "2026-08-27")
	require.NoError(t, err)
	assert.Len(t, series, 1)
	assert.Equal(t, 2, fetcher.callCount())
}

func TestConcurrentRequestsShareOneFetch(t *testing.T) {
	fetcher := &fakeFetcher{series: testSeries("1100"), delay: 50 * time.Millisecond}
	svc := newTestService(fetcher, testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Series(context.Background(), 365, "2026-08-27")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, fetcher.callCount(), "concurrent requests for one key must share a single upstream call")
}
