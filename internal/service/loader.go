package service

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"emisi.dev/backend/internal/app/appconfig"
	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/pkg/observability"
	"emisi.dev/backend/internal/repo"
	"emisi.dev/backend/internal/util/transform"
)

const defaultBatchSize = 500

// Store is where the loader writes a transformed dataset.
type Store interface {
	ClearAll(ctx context.Context) error
	UpsertStudents(ctx context.Context, rows []*model.Student) error
	UpsertTransportation(ctx context.Context, rows []*model.Transportation) error
	UpsertElectronics(ctx context.Context, rows []*model.Electronics) error
	UpsertFoodWaste(ctx context.Context, rows []*model.FoodWaste) error
	DeleteActivities(ctx context.Context, ids []int) error
	InsertActivities(ctx context.Context, rows []*model.ActivityLog) error
}

type repoStore struct {
	dataset        *repo.Dataset
	students       *repo.Student
	transportation *repo.Transportation
	electronics    *repo.Electronics
	foodWaste      *repo.FoodWaste
	activities     *repo.ActivityLog
}

func (s *repoStore) ClearAll(ctx context.Context) error { return s.dataset.ClearAll(ctx) }
func (s *repoStore) UpsertStudents(ctx context.Context, rows []*model.Student) error {
	return s.students.Upsert(ctx, rows)
}
func (s *repoStore) UpsertTransportation(ctx context.Context, rows []*model.Transportation) error {
	return s.transportation.Upsert(ctx, rows)
}
func (s *repoStore) UpsertElectronics(ctx context.Context, rows []*model.Electronics) error {
	return s.electronics.Upsert(ctx, rows)
}
func (s *repoStore) UpsertFoodWaste(ctx context.Context, rows []*model.FoodWaste) error {
	return s.foodWaste.Upsert(ctx, rows)
}
func (s *repoStore) DeleteActivities(ctx context.Context, ids []int) error {
	return s.activities.DeleteByIDs(ctx, ids)
}
func (s *repoStore) InsertActivities(ctx context.Context, rows []*model.ActivityLog) error {
	return s.activities.Insert(ctx, rows)
}

// FailedBatch describes a batch that could not be written and was skipped.
type FailedBatch struct {
	Table string `json:"table"`
	Index int    `json:"index"`
	Size  int    `json:"size"`
	Error string `json:"error"`
}

type LoadReport struct {
	Written       map[string]int `json:"written"`
	FailedBatches []FailedBatch  `json:"failedBatches"`
}

func (r *LoadReport) Failed() int {
	return len(r.FailedBatches)
}

// Loader replaces the persisted dataset with a freshly transformed one. Writes are not
// transactional: a failing batch is logged and skipped, the remaining batches still run.
type Loader struct {
	store     Store
	batchSize int
}

func NewLoader(
	conf *appconfig.Config,
	dataset *repo.Dataset,
	students *repo.Student,
	transportation *repo.Transportation,
	electronics *repo.Electronics,
	foodWaste *repo.FoodWaste,
	activities *repo.ActivityLog,
) *Loader {
	return NewLoaderWithStore(&repoStore{
		dataset:        dataset,
		students:       students,
		transportation: transportation,
		electronics:    electronics,
		foodWaste:      foodWaste,
		activities:     activities,
	}, conf.EtlBatchSize)
}

func NewLoaderWithStore(store Store, batchSize int) *Loader {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}
	return &Loader{store: store, batchSize: batchSize}
}

// Load clears the dataset, upserts the parent table then the snapshot tables, and finally
// replaces the activity log of the loaded respondents. A failed clear is recorded like a
// failed batch and the writes still run.
func (l *Loader) Load(ctx context.Context, logger zerolog.Logger, res *transform.Result) (*LoadReport, error) {
	report := &LoadReport{Written: map[string]int{}}

	if err := l.store.ClearAll(ctx); err != nil {
		skipBatch(logger, report, "dataset.clear", 0, 0, err)
	}

	writeBatches(ctx, logger, report, l.batchSize, "students", res.Students, l.store.UpsertStudents)
	writeBatches(ctx, logger, report, l.batchSize, "transportation", res.Transportation, l.store.UpsertTransportation)
	writeBatches(ctx, logger, report, l.batchSize, "electronics", res.Electronics, l.store.UpsertElectronics)
	writeBatches(ctx, logger, report, l.batchSize, "food_waste", res.FoodWaste, l.store.UpsertFoodWaste)

	ids := lo.Uniq(lo.Map(res.Activities, func(a *model.ActivityLog, _ int) int { return a.ID }))
	for i, batch := range lo.Chunk(ids, l.batchSize) {
		if err := l.store.DeleteActivities(ctx, batch); err != nil {
			skipBatch(logger, report, "daily_activity_log.delete", i, len(batch), err)
		}
	}
	writeBatches(ctx, logger, report, l.batchSize, "daily_activity_log", res.Activities, l.store.InsertActivities)

	return report, nil
}

func writeBatches[T any](
	ctx context.Context,
	logger zerolog.Logger,
	report *LoadReport,
	size int,
	table string,
	rows []T,
	write func(context.Context, []T) error,
) {
	for i, batch := range lo.Chunk(rows, size) {
		if err := write(ctx, batch); err != nil {
			skipBatch(logger, report, table, i, len(batch), err)
			continue
		}
		report.Written[table] += len(batch)
	}
}

func skipBatch(logger zerolog.Logger, report *LoadReport, table string, index, size int, err error) {
	logger.Error().
		Str("evt.name", "etl.load.batch_failed").
		Err(err).
		Str("table", table).
		Int("batch", index).
		Int("size", size).
		Msg("failed to write batch, skipping")
	observability.ETLFailedBatches.WithLabelValues(table).Inc()
	report.FailedBatches = append(report.FailedBatches, FailedBatch{
		Table: table,
		Index: index,
		Size:  size,
		Error: err.Error(),
	})
}
