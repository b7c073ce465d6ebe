package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vivaha-be/internal/cache"
	"vivaha-be/internal/yelp"
)

const vendorSearchCacheTTL = time.Hour

// emptyBusinesses is the answer whenever a search cannot be made or fails.
var emptyBusinesses = json.RawMessage(`{"businesses":[]}`)

// BusinessSearcher is the directory client behind VendorSearchService.
type BusinessSearcher interface {
	Configured() bool
	Search(ctx context.Context, q yelp.Query) ([]byte, error)
}

// VendorSearchService looks up local wedding vendors. It never fails: a
// missing key or an upstream error yields an empty business list.
type VendorSearchService interface {
	Search(ctx context.Context, q yelp.Query) json.RawMessage
}

type vendorSearchService struct {
	client BusinessSearcher
	cache  cache.Cache
	logger zerolog.Logger
}

// NewVendorSearchService creates a vendor search. cacheClient may be nil.
func NewVendorSearchService(client BusinessSearcher, cacheClient cache.Cache, logger zerolog.Logger) VendorSearchService {
	svc := &vendorSearchService{client: client, logger: logger}
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

func (s *vendorSearchService) Search(ctx context.Context, q yelp.Query) json.RawMessage {
	if !s.client.Configured() {
		return emptyBusinesses
	}

	key := vendorSearchCacheKey(q)
	if s.cache != nil {
		var cached json.RawMessage
		if err := s.cache.GetJSON(ctx, key, &cached); err == nil && len(cached) > 0 {
			return cached
		}
	}

	body, err := s.client.Search(ctx, q)
	if err != nil {
		s.logger.Error().Err(err).Str("city", q.City).Msg("vendor search degraded to empty list")
		return emptyBusinesses
	}
	if !json.Valid(body) {
		s.logger.Error().Msg("vendor search returned invalid JSON")
		return emptyBusinesses
	}

	if s.cache != nil {
		if err := s.cache.SetJSON(ctx, key, json.RawMessage(body), vendorSearchCacheTTL); err != nil {
			s.logger.Warn().Err(err).Msg("failed to cache vendor search")
		}
	}
	return body
}

func vendorSearchCacheKey(q yelp.Query) string {
	raw := strings.Join([]string{strings.ToLower(q.City), strings.ToLower(q.State), q.Category}, "|")
	sum := sha256.Sum256([]byte(raw))
	return "vendors:search:" + hex.EncodeToString(sum[:])
}
