package cache

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"time"

	portssvc "github.com/SscSPs/referral_pipeline/internal/core/ports/services"
	"github.com/SscSPs/referral_pipeline/internal/metrics"
	"github.com/SscSPs/referral_pipeline/internal/middleware"
	"github.com/SscSPs/referral_pipeline/internal/utils/scoring"
)

// InterestRateKey is where the cached interest rate lives.
const InterestRateKey = "settings:interest_rate_percent"

const cacheType = "redis"

// CachedRateProvider decorates an InterestRateProvider with a Redis TTL cache.
// Redis failures degrade to the wrapped provider.
type CachedRateProvider struct {
	client  *Client
	next    portssvc.InterestRateProvider
	ttl     time.Duration
	metrics *metrics.Metrics
}

var _ portssvc.InterestRateProvider = (*CachedRateProvider)(nil)

// NewCachedRateProvider wraps next. m may be nil.
func NewCachedRateProvider(client *Client, next portssvc.InterestRateProvider, ttl time.Duration, m *metrics.Metrics) *CachedRateProvider {
	return &CachedRateProvider{client: client, next: next, ttl: ttl, metrics: m}
}

// GetInterestRatePercent implements portssvc.InterestRateProvider.
func (p *CachedRateProvider) GetInterestRatePercent(ctx context.Context) float64 {
	logger := middleware.GetLoggerFromCtx(ctx)

	raw, err := p.client.Get(ctx, InterestRateKey)
	switch {
	case err == nil:
		if rate, parseErr := strconv.ParseFloat(raw, 64); parseErr == nil && scoring.ValidInterestRate(rate) {
			p.metrics.RecordCacheHit(cacheType)
			return rate
		}
		logger.Warn("Discarding unparseable cached interest rate", slog.String("value", raw))
	case errors.Is(err, ErrCacheMiss):
	default:
		logger.Warn("Interest rate cache read failed", slog.String("error", err.Error()))
	}
	p.metrics.RecordCacheMiss(cacheType)

	rate := p.next.GetInterestRatePercent(ctx)
	if err := p.client.Set(ctx, InterestRateKey, strconv.FormatFloat(rate, 'f', -1, 64), p.ttl); err != nil {
		logger.Warn("Interest rate cache write failed", slog.String("error", err.Error()))
	}
	return rate
}
