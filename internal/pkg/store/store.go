package store

import (
	"context"

	"github.com/caeptox/labops/internal/domain"
	"github.com/caeptox/labops/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

// Store is the read-only source of the three raw tables. The analytics
// core never touches it directly; the loader drains it once per session.
type Store interface {
	ListRepresentatives(ctx context.Context) ([]*domain.Representative, error)
	ListLaboratories(ctx context.Context) ([]*domain.Laboratory, error)
	ListGatherings(ctx context.Context) ([]*domain.Gathering, error)
}

type store struct {
	pool *Pool
}

func NewStore(pool *Pool) Store {
	return &store{pool}
}
