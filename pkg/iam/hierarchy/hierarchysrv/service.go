package hierarchysrv

import (
	"context"
	"sync"

	"github.com/maprecruit/platform/pkg/iam/hierarchy"
	"github.com/maprecruit/platform/pkg/kernel"
	"github.com/maprecruit/platform/pkg/logx"
	"golang.org/x/sync/singleflight"
)

// HierarchyService provides rank lookups with a per-company cache. Concurrent
// misses for the same company share one upstream fetch; the cache is written
// once per flight, never interleaved.
type HierarchyService struct {
	fetcher hierarchy.Fetcher

	mu    sync.RWMutex
	cache map[kernel.CompanyID]hierarchy.Hierarchy

	group singleflight.Group
}

// NewHierarchyService creates a new instance of the hierarchy service
func NewHierarchyService(fetcher hierarchy.Fetcher) *HierarchyService {
	return &HierarchyService{
		fetcher: fetcher,
		cache:   make(map[kernel.CompanyID]hierarchy.Hierarchy),
	}
}

// Load returns the company's hierarchy, fetching on a cache miss. A caller
// whose context expires stops waiting and gets ErrFetchCancelled; the shared
// fetch itself keeps running for the callers still waiting on it.
func (s *HierarchyService) Load(ctx context.Context, companyID kernel.CompanyID) (hierarchy.Hierarchy, error) {
	s.mu.RLock()
	cached, ok := s.cache[companyID]
	s.mu.RUnlock()
	if ok {
		return cached, nil
	}

	ch := s.group.DoChan(companyID.String(), func() (any, error) {
		fetched, err := s.fetcher.FetchHierarchy(context.WithoutCancel(ctx), companyID)
		if err != nil {
			return nil, hierarchy.ErrServiceUnavailable().WithCause(err)
		}

		s.mu.Lock()
		s.cache[companyID] = fetched
		s.mu.Unlock()

		return fetched, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(hierarchy.Hierarchy), nil
	case <-ctx.Done():
		return nil, hierarchy.ErrFetchCancelled().WithCause(ctx.Err())
	}
}

// IsSeniorTo reports whether myRole outranks targetRole under the company's
// ladder. When the ladder cannot be loaded the comparison falls back to the
// empty-hierarchy permissive default rather than blocking or failing the
// caller; the degraded decision is logged.
func (s *HierarchyService) IsSeniorTo(ctx context.Context, companyID kernel.CompanyID, myRole, targetRole kernel.RoleID) bool {
	h, err := s.Load(ctx, companyID)
	if err != nil {
		logx.Warnf("hierarchy: falling back to empty hierarchy for company %s: %v", companyID, err)
		h = hierarchy.Hierarchy{}
	}
	return hierarchy.IsSeniorTo(h, myRole, targetRole)
}

// Invalidate drops the cached hierarchy for a company. Called on explicit
// administrator edits and on active-company switches.
func (s *HierarchyService) Invalidate(companyID kernel.CompanyID) {
	s.mu.Lock()
	delete(s.cache, companyID)
	s.mu.Unlock()
	s.group.Forget(companyID.String())
}
