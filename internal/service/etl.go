package service

import (
	"context"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/oklog/ulid/v2"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gopkg.in/guregu/null.v3"

	"emisi.dev/backend/internal/app/appconfig"
	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/model"
	modelcache "emisi.dev/backend/internal/model/cache"
	"emisi.dev/backend/internal/pkg/observability"
	"emisi.dev/backend/internal/repo"
	"emisi.dev/backend/internal/util/survey"
	"emisi.dev/backend/internal/util/transform"
)

var ErrETLRunning = errors.New("etl: another run is in progress")

type recordSource interface {
	Records(ctx context.Context, uri string) ([][]string, error)
}

type runRecorder interface {
	Create(ctx context.Context, run *model.ETLRun) error
	Finish(ctx context.Context, run *model.ETLRun) error
}

type locker interface {
	LockContext(ctx context.Context) error
	UnlockContext(ctx context.Context) (bool, error)
}

type publisher interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// ETLCompleted is broadcast after every run that wrote data.
type ETLCompleted struct {
	RunID  string `json:"runId"`
	Status string `json:"status"`
	Rows   int    `json:"rows"`
}

// ETL runs extract, transform and load as one serialized pipeline.
type ETL struct {
	source    string
	timeout   time.Duration
	picker    survey.LocationPicker
	extract   recordSource
	loader    *Loader
	runs      runRecorder
	lock      locker
	js        publisher
	flushFunc func() error
}

func NewETL(
	conf *appconfig.Config,
	extract *Extract,
	loader *Loader,
	runs *repo.ETLRun,
	rs *redsync.Redsync,
	js nats.JetStreamContext,
) (*ETL, error) {
	picker, err := survey.NewLocationPicker(conf.EtlLocationStrategy)
	if err != nil {
		return nil, err
	}
	return &ETL{
		source:    conf.EtlSourceURI,
		timeout:   conf.EtlTimeout,
		picker:    picker,
		extract:   extract,
		loader:    loader,
		runs:      runs,
		lock:      rs.NewMutex(constant.ETLMutexName, redsync.WithExpiry(conf.EtlTimeout+time.Minute), redsync.WithTries(1)),
		js:        js,
		flushFunc: modelcache.FlushAll,
	}, nil
}

// Run executes one ETL run against the configured source.
func (s *ETL) Run(ctx context.Context) (*model.ETLRun, error) {
	return s.RunSource(ctx, s.source)
}

// RunSource executes one ETL run against source. A schema error aborts the run
// before anything is written; failing load batches only mark the run as partial.
func (s *ETL) RunSource(ctx context.Context, source string) (*model.ETLRun, error) {
	if err := s.lock.LockContext(ctx); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		// a single try means any failure is most likely a lock held elsewhere
		return nil, errors.Wrap(ErrETLRunning, err.Error())
	}
	defer func() {
		if _, err := s.lock.UnlockContext(context.Background()); err != nil {
			log.Warn().Str("evt.name", "etl.unlock").Err(err).Msg("failed to release etl lock")
		}
	}()

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	run := &model.ETLRun{
		RunID:     ulid.Make().String(),
		Source:    source,
		Status:    model.ETLRunStatusRunning,
		StartedAt: time.Now(),
	}
	logger := log.With().Str("etl.runId", run.RunID).Logger()
	logger.Info().Str("evt.name", "etl.started").Str("source", source).Msg("etl run started")

	if err := s.runs.Create(ctx, run); err != nil {
		logger.Warn().Str("evt.name", "etl.audit").Err(err).Msg("failed to record etl run")
	}

	err := s.pipeline(ctx, logger, run, source)
	if err != nil {
		run.Status = model.ETLRunStatusFailed
		run.Error = null.StringFrom(err.Error())
	}
	s.finish(logger, run)

	return run, err
}

func (s *ETL) pipeline(ctx context.Context, logger zerolog.Logger, run *model.ETLRun, source string) error {
	records, err := s.extract.Records(ctx, source)
	if err != nil {
		return errors.Wrap(err, "etl: extract")
	}

	rows, err := survey.ParseRows(records)
	if err != nil {
		return errors.Wrap(err, "etl: parse")
	}

	res := transform.Run(rows, s.picker)
	run.Rows = res.Stats.Rows
	run.Activities = res.Stats.Activities
	logger.Info().
		Str("evt.name", "etl.transformed").
		Interface("stats", res.Stats).
		Msg("survey rows transformed")

	report, err := s.loader.Load(ctx, logger, res)
	if err != nil {
		return errors.Wrap(err, "etl: load")
	}
	run.FailedBatches = report.Failed()
	run.Status = model.ETLRunStatusSucceeded
	if report.Failed() > 0 {
		run.Status = model.ETLRunStatusPartial
	}
	logger.Info().
		Str("evt.name", "etl.loaded").
		Interface("written", report.Written).
		Int("failedBatches", report.Failed()).
		Msg("dataset loaded")

	if s.flushFunc != nil {
		if err := s.flushFunc(); err != nil {
			logger.Warn().Str("evt.name", "etl.cache.flush").Err(err).Msg("failed to flush caches after load")
		}
	}
	s.announce(logger, run)
	return nil
}

func (s *ETL) finish(logger zerolog.Logger, run *model.ETLRun) {
	now := time.Now()
	run.FinishedAt = &now
	duration := now.Sub(run.StartedAt)

	observability.ETLDuration.Set(duration.Seconds())
	observability.ETLRows.Add(float64(run.Rows))
	observability.ETLRuns.WithLabelValues(run.Status).Inc()

	// the run context may be the one that expired
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.runs.Finish(ctx, run); err != nil {
		logger.Warn().Str("evt.name", "etl.audit").Err(err).Msg("failed to record etl run result")
	}

	evt := logger.Info()
	if run.Status == model.ETLRunStatusFailed {
		evt = logger.Error().Str("error", run.Error.String)
	}
	evt.Str("evt.name", "etl.finished").
		Str("status", run.Status).
		Dur("duration", duration).
		Int("rows", run.Rows).
		Int("failedBatches", run.FailedBatches).
		Msg("etl run finished")
}

func (s *ETL) announce(logger zerolog.Logger, run *model.ETLRun) {
	if s.js == nil {
		return
	}
	body, err := json.Marshal(&ETLCompleted{RunID: run.RunID, Status: run.Status, Rows: run.Rows})
	if err != nil {
		logger.Warn().Str("evt.name", "etl.announce").Err(err).Msg("failed to marshal completion event")
		return
	}
	if _, err := s.js.Publish(constant.ETLCompletedSubject, body, nats.MsgId(run.RunID)); err != nil {
		logger.Warn().Str("evt.name", "etl.announce").Err(err).Msg("failed to publish completion event")
	}
}
