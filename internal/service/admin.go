package service

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/rs/zerolog/log"

	"emisi.dev/backend/internal/model"
	modelcache "emisi.dev/backend/internal/model/cache"
	"emisi.dev/backend/internal/pkg/emerr"
	"emisi.dev/backend/internal/repo"
)

type respondentCounter interface {
	Count(ctx context.Context) (int, error)
}

type Admin struct {
	etl     *ETL
	runs    *repo.ETLRun
	dataset respondentCounter
}

func NewAdmin(etl *ETL, runs *repo.ETLRun, dataset *repo.Dataset) *Admin {
	return &Admin{etl: etl, runs: runs, dataset: dataset}
}

// RunETL runs the pipeline once. An empty source uses the configured one.
func (s *Admin) RunETL(ctx context.Context, source string) (*model.ETLRun, error) {
	if source == "" {
		return s.etl.Run(ctx)
	}
	return s.etl.RunSource(ctx, source)
}

func (s *Admin) RecentETLRuns(ctx context.Context, limit int) ([]*model.ETLRun, error) {
	return s.runs.Recent(ctx, limit)
}

// LatestETLRun returns the most recent run, or nil before the first one.
func (s *Admin) LatestETLRun(ctx context.Context) (*model.ETLRun, error) {
	var run model.ETLRun
	err := modelcache.LatestETLRun.MutexGetSet(&run, func() (model.ETLRun, error) {
		latest, err := s.runs.Latest(ctx)
		if err != nil {
			return model.ETLRun{}, err
		}
		return *latest, nil
	}, time.Minute)
	if errors.Is(err, emerr.ErrNotFound) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	return &run, nil
}

// Respondents returns how many respondents the current dataset holds.
func (s *Admin) Respondents(ctx context.Context) (int, error) {
	n, err := s.dataset.Count(ctx)
	if err != nil {
		return 0, errors.Wrap(err, "admin: count respondents")
	}
	return n, nil
}

// PurgeCache flushes the named cache, or every cache when name is empty.
func (s *Admin) PurgeCache(name string) error {
	log.Info().
		Str("evt.name", "admin.cache.purge").
		Str("cache", name).
		Msg("purging cache")

	if name == "" {
		return modelcache.FlushAll()
	}
	found, err := modelcache.Delete(name)
	if err != nil {
		return err
	}
	if !found {
		return emerr.ErrNotFound.Msg("no cache named %q", name)
	}
	return nil
}
