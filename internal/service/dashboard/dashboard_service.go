// Package dashboard orchestrates the analytics pipeline for the HTTP
// surface: it owns the session dataset and recomputes every derived metric
// from scratch on each request, so parameter changes are always consistent.
package dashboard

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/caeptox/labops/internal/domain"
	"github.com/caeptox/labops/internal/domain/dto"
	"github.com/caeptox/labops/internal/pkg/constants"
	"github.com/caeptox/labops/internal/pkg/logger"
	"github.com/caeptox/labops/internal/service/analytics"
	"github.com/caeptox/labops/internal/service/loader"
)

// Params are the per-request scalar inputs of the pipeline. Unset values
// are replaced with the configured defaults; ExcludeDisabled is a pointer
// so an explicit false can override the exclude-by-default policy.
type Params struct {
	Year            int
	WindowDays      int
	ExcludeTest     bool
	ExcludeDisabled *bool
}

type Service struct {
	loader                 *loader.Service
	defaultYear            int
	defaultWindow          int
	defaultExcludeDisabled bool
	now                    func() time.Time

	mu      sync.RWMutex
	dataset *dto.Dataset
}

func NewService(ld *loader.Service, defaultYear, defaultWindowDays int, excludeDisabledDefault bool) *Service {
	return &Service{
		loader:                 ld,
		defaultYear:            defaultYear,
		defaultWindow:          defaultWindowDays,
		defaultExcludeDisabled: excludeDisabledDefault,
		now:                    time.Now,
	}
}

// SetClock overrides the reference-instant source; tests use it to pin
// recency computations.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Load acquires the source tables and installs the dataset. Called once at
// startup and again on admin reload; readers always see a complete snapshot.
func (s *Service) Load(ctx context.Context) error {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return fmt.Errorf("loader.Load: %w", err)
	}

	s.mu.Lock()
	s.dataset = ds
	s.mu.Unlock()

	logger.Infof(ctx, "dataset %s loaded from %s: %d reps, %d labs, %d gatherings",
		ds.SnapshotID, ds.Source, len(ds.Representatives), len(ds.Laboratories), len(ds.Gatherings))
	return nil
}

// ReloadResult is the admin-facing receipt of a dataset swap.
type ReloadResult struct {
	SnapshotID      string    `json:"snapshot_id"`
	Source          string    `json:"source"`
	LoadedAt        time.Time `json:"loaded_at"`
	Representatives int       `json:"representatives"`
	Laboratories    int       `json:"laboratories"`
	Gatherings      int       `json:"gatherings"`
}

func (s *Service) Reload(ctx context.Context) (*ReloadResult, error) {
	if err := s.Load(ctx); err != nil {
		return nil, err
	}

	ds, _ := s.snapshot()
	return &ReloadResult{
		SnapshotID:      ds.SnapshotID,
		Source:          ds.Source,
		LoadedAt:        ds.LoadedAt,
		Representatives: len(ds.Representatives),
		Laboratories:    len(ds.Laboratories),
		Gatherings:      len(ds.Gatherings),
	}, nil
}

func (s *Service) snapshot() (*dto.Dataset, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.dataset == nil {
		return nil, constants.ErrDataNotLoaded
	}
	return s.dataset, nil
}

func (s *Service) fill(p Params) Params {
	if p.Year == 0 {
		p.Year = s.defaultYear
	}
	if p.WindowDays == 0 {
		p.WindowDays = s.defaultWindow
	}
	if p.ExcludeDisabled == nil {
		v := s.defaultExcludeDisabled
		p.ExcludeDisabled = &v
	}
	return p
}

// pass is one full recomputation over the session dataset for a parameter
// set: year-scoped active gatherings plus laboratory statuses.
type pass struct {
	dataset        *dto.Dataset
	params         Params
	now            time.Time
	active         []domain.Gathering
	labs           []domain.LaboratoryStatus
	activeCount    int
	inactiveCount  int
	lastCollection map[string]time.Time
}

func (s *Service) compute(p Params) (*pass, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	p = s.fill(p)
	now := s.now()

	active := analytics.FilterActiveGatherings(ds.GatheringsForYear(p.Year), p.ExcludeTest, *p.ExcludeDisabled)
	labs := analytics.ComputeAccreditation(ds.Laboratories)
	labs, activeCount, inactiveCount, last := analytics.ComputeCollectionStatus(labs, active, now, p.WindowDays)

	return &pass{
		dataset:        ds,
		params:         p,
		now:            now,
		active:         active,
		labs:           labs,
		activeCount:    activeCount,
		inactiveCount:  inactiveCount,
		lastCollection: last,
	}, nil
}

func (s *Service) Summary(_ context.Context, p Params) (*domain.DashboardSummary, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}

	credentialed := 0
	for _, lab := range c.labs {
		if lab.IsCredentialed {
			credentialed++
		}
	}

	_, monthly := analytics.AggregateVolumes(c.active)
	return &domain.DashboardSummary{
		SnapshotID:       c.dataset.SnapshotID,
		Year:             c.params.Year,
		GeneratedAt:      c.now,
		CredentialedLabs: credentialed,
		ActiveLabs:       c.activeCount,
		InactiveLabs:     c.inactiveCount,
		TotalGatherings:  len(c.active),
		MonthlyKPIs:      analytics.ComputeKPIs(monthly),
	}, nil
}

func (s *Service) MonthlyVolumes(_ context.Context, p Params) ([]domain.VolumeRow, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	_, monthly := analytics.AggregateVolumes(c.active)
	return monthly, nil
}

func (s *Service) WeeklyVolumes(_ context.Context, p Params) ([]domain.VolumeRow, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	weekly, _ := analytics.AggregateVolumes(c.active)
	return weekly, nil
}

func (s *Service) MonthlyVariations(_ context.Context, p Params) ([]domain.VariationRow, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	_, monthly := analytics.AggregateVolumes(c.active)
	return analytics.ComputeVariations(monthly), nil
}

func (s *Service) RepresentativeRanking(_ context.Context, p Params) ([]domain.RepresentativeRankingRow, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	return analytics.BuildRepresentativeRanking(c.active, c.labs), nil
}

func (s *Service) LaboratoryRanking(_ context.Context, p Params) ([]domain.LaboratoryRankingRow, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	return analytics.BuildLaboratoryRanking(c.active, c.labs, c.lastCollection, c.now, c.params.WindowDays), nil
}

func (s *Service) RepresentativeMetrics(_ context.Context, p Params) ([]domain.RepresentativePerformance, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeRepresentativeMetrics(c.active, c.labs), nil
}

func (s *Service) CategorySummary(_ context.Context, p Params) ([]domain.CategorySummary, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeCategorySummary(c.active, c.labs), nil
}

func (s *Service) StateMetrics(_ context.Context, p Params) ([]domain.StatePerformance, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeStateMetrics(c.active, c.labs, c.dataset.HasGeography), nil
}

func (s *Service) CityMetrics(_ context.Context, p Params) ([]domain.CityPerformance, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeCityMetrics(c.active, c.labs, c.dataset.HasGeography), nil
}

func (s *Service) NewAccreditations(_ context.Context, p Params, monthsBack int) ([]domain.NewAccreditationRow, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeNewAccreditations(c.labs, c.now, monthsBack), nil
}

// InactivityAlert deliberately scans the full gathering history rather
// than the year-scoped view, so outreach sees collections from any year.
func (s *Service) InactivityAlert(_ context.Context, p Params, thresholdDays int) ([]domain.InactiveLabRow, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}
	return analytics.ComputeInactiveLabsAlert(c.labs, c.dataset.Gatherings, c.now, thresholdDays), nil
}

func (s *Service) RepresentativeOverview(
	_ context.Context,
	p Params,
	repName string,
	targetMonth string,
) (*domain.RepresentativeOverview, error) {
	c, err := s.compute(p)
	if err != nil {
		return nil, err
	}

	known := false
	for _, lab := range c.labs {
		if lab.RepCleanName == repName || lab.RepName == repName {
			known = true
			break
		}
	}
	if !known {
		return nil, constants.ErrUnknownRep
	}

	return &domain.RepresentativeOverview{
		RepName:          repName,
		Accreditations:   analytics.ComputeRepAccreditations(c.labs, repName, c.now),
		CollectionStatus: analytics.ComputeRepCollectionStatus(c.labs, c.active, repName, c.now, c.params.WindowDays),
		Drops:            analytics.DetectLabDrops(c.active, repName, targetMonth),
	}, nil
}

// Years lists the calendar years available for the year filter.
func (s *Service) Years(_ context.Context) ([]int, error) {
	ds, err := s.snapshot()
	if err != nil {
		return nil, err
	}
	return ds.Years(), nil
}
