package hierarchy

import (
	"context"

	"github.com/maprecruit/platform/pkg/kernel"
)

// Fetcher retrieves the role ladder for one company from the hierarchy store
type Fetcher interface {
	// FetchHierarchy loads all rank entries scoped to a company
	FetchHierarchy(ctx context.Context, companyID kernel.CompanyID) (Hierarchy, error)
}
