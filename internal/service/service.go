package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/treasurywatch/debt-tracker/internal/cache"
	"github.com/treasurywatch/debt-tracker/internal/config"
	"github.com/treasurywatch/debt-tracker/internal/models"
	"golang.org/x/sync/singleflight"
)

// Fetcher retrieves the cleaned series from the upstream API
type Fetcher interface {
	Fetch(ctx context.Context, windowDays int) (models.DebtSeries, error)
}

// Service handles business logic
type Service struct {
	fetcher Fetcher
	cache   *cache.SeriesCache
	log     *logrus.Logger
	config  *config.Config
	group   singleflight.Group
}

// NewService initializes a new service
func NewService(fetcher Fetcher, seriesCache *cache.SeriesCache, log *logrus.Logger, cfg *config.Config) *Service {
	return &Service{fetcher: fetcher, cache: seriesCache, log: log, config: cfg}
}

// Series returns the debt series for the window, serving from cache when a
// fresh entry exists for the caller's epoch. Concurrent requests for the same
// key share a single upstream fetch. Failed fetches are not cached.
func (s *Service) Series(ctx context.Context, windowDays int, epoch string) (models.DebtSeries, error) {
	key := cache.Key{WindowDays: windowDays, Epoch: epoch}
	if series, ok := s.cache.Get(key); ok {
		return series, nil
	}

	v, err, _ := s.group.Do(key.String(), func() (interface{}, error) {
		// Another request may have populated the cache while we waited.
		if series, ok := s.cache.Get(key); ok {
			return series, nil
		}
		series, err := s.fetcher.Fetch(ctx, windowDays)
		if err != nil {
			return nil, err
		}
		s.cache.Put(key, series)
		s.log.Infof("Cached %d debt records for window %d, epoch %s", len(series), windowDays, epoch)
		return series, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(models.DebtSeries), nil
}

// Invalidate clears the cache so the next request fetches fresh data
func (s *Service) Invalidate() {
	s.cache.Clear()
	s.log.Info("Series cache cleared")
}
