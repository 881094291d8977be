package store

import (
	"context"
	"fmt"

	"github.com/caeptox/labops/internal/domain"
	"github.com/caeptox/labops/internal/pkg/store/xpgx"
)

var representativeColumns = []string{
	"id",
	"coalesce(name, '') as name",
	"coalesce(created_at, '0001-01-01'::timestamptz) as created_at",
}

func (s *store) ListRepresentatives(ctx context.Context) ([]*domain.Representative, error) {
	query := builder().Select(representativeColumns...).
		From(tableRepresentatives).
		OrderBy("id")

	selected, err := xpgx.Selectx[domain.Representative](ctx, s.pool, query)
	if err != nil {
		return nil, fmt.Errorf("select representatives: %w", wrapErr(err))
	}

	return selected, nil
}
