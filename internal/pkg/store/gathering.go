package store

import (
	"context"
	"fmt"

	"github.com/caeptox/labops/internal/domain"
	"github.com/caeptox/labops/internal/pkg/store/xpgx"
)

var gatheringColumns = []string{
	"id",
	"coalesce(laboratory_id, '') as laboratory_id",
	"coalesce(created_at, '0001-01-01'::timestamptz) as created_at",
	// flags default the same way the CSV boundary defaults them
	"coalesce(active, true) as active",
	"coalesce(test, false) as test",
	"coalesce(disabled_in_report, false) as disabled_in_report",
}

func (s *store) ListGatherings(ctx context.Context) ([]*domain.Gathering, error) {
	query := builder().Select(gatheringColumns...).
		From(tableGatherings).
		OrderBy("created_at")

	selected, err := xpgx.Selectx[domain.Gathering](ctx, s.pool, query)
	if err != nil {
		return nil, fmt.Errorf("select gatherings: %w", wrapErr(err))
	}

	return selected, nil
}
