package hierarchyinfra

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/maprecruit/platform/pkg/iam/hierarchy"
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/maprecruit/platform/pkg/logx"
)

// CachedFetcher decorates a hierarchy.Fetcher with a shared redis cache so
// that multiple platform instances do not each hit the hierarchy store. The
// in-process cache in hierarchysrv sits in front of this one.
type CachedFetcher struct {
	upstream hierarchy.Fetcher
	client   *redis.Client
	ttl      time.Duration
}

// NewCachedFetcher creates a redis-backed cache in front of upstream
func NewCachedFetcher(upstream hierarchy.Fetcher, client *redis.Client, ttl time.Duration) *CachedFetcher {
	return &CachedFetcher{
		upstream: upstream,
		client:   client,
		ttl:      ttl,
	}
}

func cacheKey(companyID kernel.CompanyID) string {
	return "hierarchy:" + companyID.String()
}

// FetchHierarchy serves from redis when possible, falling through to the
// upstream store. Cache failures degrade to a direct fetch, never to an error.
func (f *CachedFetcher) FetchHierarchy(ctx context.Context, companyID kernel.CompanyID) (hierarchy.Hierarchy, error) {
	key := cacheKey(companyID)

	data, err := f.client.Get(ctx, key).Bytes()
	if err == nil {
		var h hierarchy.Hierarchy
		if err := json.Unmarshal(data, &h); err == nil {
			return h, nil
		}
		logx.Warnf("hierarchy: dropping undecodable cache entry %s", key)
		f.client.Del(ctx, key)
	} else if err != redis.Nil {
		logx.Warnf("hierarchy: redis read failed for %s: %v", key, err)
	}

	fetched, err := f.upstream.FetchHierarchy(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(fetched); err == nil {
		if err := f.client.Set(ctx, key, data, f.ttl).Err(); err != nil {
			logx.Warnf("hierarchy: redis write failed for %s: %v", key, err)
		}
	}

	return fetched, nil
}

// Invalidate drops the shared cache entry for a company
func (f *CachedFetcher) Invalidate(ctx context.Context, companyID kernel.CompanyID) error {
	if err := f.client.Del(ctx, cacheKey(companyID)).Err(); err != nil {
		return fmt.Errorf("invalidate hierarchy cache for company %s: %w", companyID, err)
	}
	return nil
}
