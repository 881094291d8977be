package store

import (
	"context"
	"fmt"

	"github.com/caeptox/labops/internal/domain"
	"github.com/caeptox/labops/internal/pkg/store/xpgx"
)

var laboratoryColumns = []string{
	"id",
	"coalesce(fantasy_name, '') as fantasy_name",
	"coalesce(cnpj, '') as cnpj",
	"coalesce(active, false) as active",
	"coalesce(approved, false) as approved",
	"exclusion_date",
	"coalesce(representative_id, '') as representative_id",
	"coalesce(address, '') as address",
	"coalesce(created_at, '0001-01-01'::timestamptz) as created_at",
}

func (s *store) ListLaboratories(ctx context.Context) ([]*domain.Laboratory, error) {
	query := builder().Select(laboratoryColumns...).
		From(tableLaboratories).
		OrderBy("id")

	selected, err := xpgx.Selectx[domain.Laboratory](ctx, s.pool, query)
	if err != nil {
		return nil, fmt.Errorf("select laboratories: %w", wrapErr(err))
	}

	return selected, nil
}
