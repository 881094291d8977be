// Package loader acquires the three source tables and builds the session
// dataset. Sources are tried in order: Postgres store, local CSV export
// directory, remote CSV export URL. Total failure is the one fatal
// condition of the system.
package loader

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/caeptox/labops/internal/domain"
	"github.com/caeptox/labops/internal/domain/dto"
	"github.com/caeptox/labops/internal/pkg/constants"
	"github.com/caeptox/labops/internal/pkg/logger"
	"github.com/caeptox/labops/internal/pkg/store"
	"github.com/caeptox/labops/internal/pkg/utils"
	"github.com/caeptox/labops/internal/service/analytics"
)

const (
	fileRepresentatives = "representatives.csv"
	fileLaboratories    = "laboratories.csv"
	fileGatherings      = "gatherings.csv"
)

// alternativeDirs are tried after the configured data dir, last resort
// before giving up on local files.
var alternativeDirs = []string{".", "data", "csvs"}

type Config struct {
	DataDir       string
	RemoteBaseURL string
	ExcludedLabID string
	Location      *time.Location
}

type Service struct {
	store store.Store // nil when no DSN is configured
	cfg   Config
}

func NewService(st store.Store, cfg Config) *Service {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	return &Service{store: st, cfg: cfg}
}

// Load walks the source chain and returns the enriched session dataset.
func (s *Service) Load(ctx context.Context) (*dto.Dataset, error) {
	if s.store != nil {
		tables, err := s.loadFromStore(ctx)
		if err == nil {
			return s.buildDataset(tables, "postgres"), nil
		}
		logger.Warnf(ctx, "store load failed, falling back to csv: %s", err.Error())
	}

	dirs := make([]string, 0, 1+len(alternativeDirs))
	if s.cfg.DataDir != "" {
		dirs = append(dirs, s.cfg.DataDir)
	}
	dirs = append(dirs, alternativeDirs...)
	for _, dir := range dirs {
		tables, err := s.loadFromDir(dir)
		if err != nil {
			logger.Debugf(ctx, "csv load from %s failed: %s", dir, err.Error())
			continue
		}
		logger.Infof(ctx, "source tables loaded from local dir %s", dir)
		return s.buildDataset(tables, "local-csv"), nil
	}

	if s.cfg.RemoteBaseURL != "" {
		tables, err := s.loadFromRemote(ctx)
		if err != nil {
			logger.Errorf(ctx, "remote load failed: %s", err.Error())
			return nil, fmt.Errorf("%w: %s", constants.ErrNoSourceData, err.Error())
		}
		logger.Infof(ctx, "source tables loaded from %s", s.cfg.RemoteBaseURL)
		return s.buildDataset(tables, "remote-csv"), nil
	}

	return nil, constants.ErrNoSourceData
}

func (s *Service) loadFromStore(ctx context.Context) (*rawTables, error) {
	tables := new(rawTables)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		reps, err := s.store.ListRepresentatives(egCtx)
		if err != nil {
			return fmt.Errorf("store.ListRepresentatives: %w", err)
		}
		tables.reps = make([]domain.Representative, 0, len(reps))
		for _, r := range reps {
			r.CreatedAt = s.normalizeTime(r.CreatedAt)
			tables.reps = append(tables.reps, *r)
		}
		return nil
	})
	eg.Go(func() error {
		labs, err := s.store.ListLaboratories(egCtx)
		if err != nil {
			return fmt.Errorf("store.ListLaboratories: %w", err)
		}
		tables.labs = make([]domain.Laboratory, 0, len(labs))
		for _, lab := range labs {
			lab.CreatedAt = s.normalizeTime(lab.CreatedAt)
			if lab.ExclusionDate != nil {
				excl := s.normalizeTime(*lab.ExclusionDate)
				if excl.IsZero() {
					lab.ExclusionDate = nil
				} else {
					lab.ExclusionDate = &excl
				}
			}
			tables.labs = append(tables.labs, *lab)
		}
		return nil
	})
	eg.Go(func() error {
		gatherings, err := s.store.ListGatherings(egCtx)
		if err != nil {
			return fmt.Errorf("store.ListGatherings: %w", err)
		}
		tables.gatherings = make([]domain.Gathering, 0, len(gatherings))
		for _, g := range gatherings {
			g.CreatedAt = s.normalizeTime(g.CreatedAt)
			tables.gatherings = append(tables.gatherings, *g)
		}
		return nil
	})

	if err := eg.Wait(); err != nil {
		return nil, err
	}

	tables.hasAddress = true
	return tables, nil
}

func (s *Service) loadFromDir(dir string) (*rawTables, error) {
	paths := []string{
		filepath.Join(dir, fileRepresentatives),
		filepath.Join(dir, fileLaboratories),
		filepath.Join(dir, fileGatherings),
	}
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", p, err)
		}
		if info.Size() == 0 {
			return nil, fmt.Errorf("%s is empty", p)
		}
	}

	contents := make([][]byte, len(paths))
	for i, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", p, err)
		}
		contents[i] = data
	}

	return s.parseTables(contents[0], contents[1], contents[2])
}

func (s *Service) loadFromRemote(ctx context.Context) (*rawTables, error) {
	files := []string{fileRepresentatives, fileLaboratories, fileGatherings}
	contents := make([][]byte, len(files))

	eg, egCtx := errgroup.WithContext(ctx)
	for i, name := range files {
		i, name := i, name
		eg.Go(func() error {
			data, err := fetchRemoteCSV(egCtx, s.cfg.RemoteBaseURL+"/"+name)
			if err != nil {
				return fmt.Errorf("fetch %s: %w", name, err)
			}
			contents[i] = data
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	return s.parseTables(contents[0], contents[1], contents[2])
}

func (s *Service) parseTables(repsData, labsData, gatheringsData []byte) (*rawTables, error) {
	reps, err := parseRepresentatives(bytes.NewReader(repsData), s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("parseRepresentatives: %w", err)
	}
	labs, hasAddress, err := parseLaboratories(bytes.NewReader(labsData), s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("parseLaboratories: %w", err)
	}
	gatherings, err := parseGatherings(bytes.NewReader(gatheringsData), s.cfg.Location)
	if err != nil {
		return nil, fmt.Errorf("parseGatherings: %w", err)
	}

	return &rawTables{reps: reps, labs: labs, gatherings: gatherings, hasAddress: hasAddress}, nil
}

// normalizeTime maps the store's null-coalesced sentinel values to the zero
// time and shifts valid instants into the configured civil timezone.
func (s *Service) normalizeTime(ts time.Time) time.Time {
	if ts.IsZero() || ts.Year() < 1900 {
		return time.Time{}
	}
	return ts.In(s.cfg.Location)
}

// buildDataset applies the remaining boundary policies (blind-sample
// exclusion, tax-id normalization, geography extraction) and runs the
// enrichment joins once.
func (s *Service) buildDataset(tables *rawTables, source string) *dto.Dataset {
	labs := make([]domain.Laboratory, 0, len(tables.labs))
	for _, lab := range tables.labs {
		if s.cfg.ExcludedLabID != "" && lab.ID == s.cfg.ExcludedLabID {
			continue
		}
		lab.CNPJ = utils.NormalizeCNPJ(lab.CNPJ)
		if tables.hasAddress {
			lab.StateCode, lab.City = extractLocation(lab.Address)
			lab.StateName = stateName(lab.StateCode)
		}
		labs = append(labs, lab)
	}

	reps := analytics.EnrichRepresentatives(tables.reps)
	labs = analytics.EnrichLaboratories(reps, labs)
	gatherings := analytics.MergeGatheringsWithLabs(tables.gatherings, labs)

	return &dto.Dataset{
		SnapshotID:      uuid.NewString(),
		Source:          source,
		LoadedAt:        time.Now().In(s.cfg.Location),
		Representatives: reps,
		Laboratories:    labs,
		Gatherings:      gatherings,
		HasGeography:    tables.hasAddress,
	}
}
