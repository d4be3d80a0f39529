package etlwkr

import (
	"context"
	"time"

	"github.com/goccy/go-json"
	"github.com/nats-io/nats.go"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.uber.org/fx"

	"emisi.dev/backend/internal/app/appconfig"
	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/model"
	modelcache "emisi.dev/backend/internal/model/cache"
	"emisi.dev/backend/internal/pkg/observability"
	"emisi.dev/backend/internal/service"
)

type runner interface {
	Run(ctx context.Context) (*model.ETLRun, error)
}

type WorkerDeps struct {
	fx.In

	ETLService *service.ETL
	JetStream  nats.JetStreamContext
}

type Worker struct {
	// count counts runs the worker has completed so far
	count int

	// interval describes the interval in-between ETL runs
	interval time.Duration

	etl runner
}

// Start schedules periodic ETL runs when the worker is enabled. Every instance
// subscribes to completion events so caches follow runs made elsewhere.
func Start(conf *appconfig.Config, deps WorkerDeps, lc fx.Lifecycle) {
	ctx, cancel := context.WithCancel(context.Background())
	var sub *nats.Subscription

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			var err error
			sub, err = SubscribeCompletions(deps.JetStream, modelcache.FlushAll)
			if err != nil {
				return err
			}
			if conf.WorkerEnabled {
				w := &Worker{interval: conf.WorkerEtlInterval, etl: deps.ETLService}
				go w.loop(ctx)
			}
			return nil
		},
		OnStop: func(context.Context) error {
			cancel()
			if sub != nil {
				return sub.Unsubscribe()
			}
			return nil
		},
	})
}

func (w *Worker) loop(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		w.runOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (w *Worker) runOnce(ctx context.Context) {
	log.Info().
		Str("evt.name", "worker.etl.started").
		Int("count", w.count).
		Msg("worker run started")

	run, err := w.etl.Run(ctx)
	switch {
	case errors.Is(err, service.ErrETLRunning):
		log.Info().
			Str("evt.name", "worker.etl.skipped").
			Msg("another instance is running the etl, skipping")
		return
	case err != nil:
		evt := log.Error().
			Str("evt.name", "worker.etl.failed").
			Err(err)
		if run != nil {
			evt = evt.Str("runId", run.RunID)
		}
		evt.Msg("worker run failed")
	default:
		log.Info().
			Str("evt.name", "worker.etl.finished").
			Str("runId", run.RunID).
			Str("status", run.Status).
			Int("rows", run.Rows).
			Msg("worker run finished")
	}

	observability.WorkerLastRun.SetToCurrentTime()
	w.count++
}

func (w *Worker) Count() int {
	return w.count
}

type subscriber interface {
	Subscribe(subj string, cb nats.MsgHandler, opts ...nats.SubOpt) (*nats.Subscription, error)
}

// SubscribeCompletions flushes local caches whenever any instance completes an ETL run.
func SubscribeCompletions(js subscriber, flush func() error) (*nats.Subscription, error) {
	sub, err := js.Subscribe(constant.ETLCompletedSubject, func(msg *nats.Msg) {
		handleCompletion(msg.Data, flush)
		if err := msg.Ack(); err != nil {
			log.Warn().Err(err).Msg("failed to ack etl completion")
		}
	}, nats.DeliverNew(), nats.AckExplicit())
	if err != nil {
		log.Error().Err(err).Msg("failed to subscribe to etl completions")
		return nil, err
	}
	return sub, nil
}

func handleCompletion(data []byte, flush func() error) {
	var evt service.ETLCompleted
	if err := json.Unmarshal(data, &evt); err != nil {
		observability.CacheInvalidations.WithLabelValues("malformed").Inc()
		log.Warn().
			Str("evt.name", "worker.etl.completion.malformed").
			Err(err).
			Msg("ignoring malformed etl completion")
		return
	}

	if err := flush(); err != nil {
		observability.CacheInvalidations.WithLabelValues("failed").Inc()
		log.Error().
			Str("evt.name", "worker.etl.completion.flush").
			Err(err).
			Str("runId", evt.RunID).
			Msg("failed to flush caches after etl completion")
		return
	}
	observability.CacheInvalidations.WithLabelValues("flushed").Inc()
	log.Info().
		Str("evt.name", "worker.etl.completion.flush").
		Str("runId", evt.RunID).
		Str("status", evt.Status).
		Msg("caches flushed after etl completion")
}
