package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/zeebo/xxh3"

	"emisi.dev/backend/internal/app/appconfig"
	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/model"
	modelcache "emisi.dev/backend/internal/model/cache"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/cache"
	"emisi.dev/backend/internal/pkg/observability"
	"emisi.dev/backend/internal/repo"
	"emisi.dev/backend/internal/util/stats"
)

const (
	TableStudents       = "students"
	TableTransportation = "transportation"
	TableElectronics    = "electronics"
	TableFoodWaste      = "food_waste"
	TableActivities     = "daily_activity_log"
)

// metric label of the per-slot aggregate cache
const slotCellsTable = "peak_cells"

type lister[T any] interface {
	List(ctx context.Context, filter *types.DashboardFilter) ([]*T, error)
}

type slotSummer interface {
	SumBySlot(ctx context.Context, filter *types.DashboardFilter) ([]stats.Cell, error)
}

type facultyLister interface {
	Faculties(ctx context.Context) ([]string, error)
}

// FilterCacheKey is the cache key of a filtered read of table.
func FilterCacheKey(table string, filter *types.DashboardFilter) string {
	return fmt.Sprintf("%s%s%016x", table, constant.CacheSep, xxh3.HashString(filter.CacheKey()))
}

type cachedReader[T any] struct {
	table string
	repo  lister[T]
	cache *cache.Set[[]*T]
	ttl   time.Duration
}

func (r *cachedReader[T]) read(ctx context.Context, filter *types.DashboardFilter) ([]*T, error) {
	if r.cache == nil {
		rows, err := r.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return nonNil(rows), nil
	}

	var rows []*T
	computed, err := r.cache.MutexGetSet(ctx, FilterCacheKey(r.table, filter), &rows, func() ([]*T, error) {
		return r.repo.List(ctx, filter)
	}, r.ttl)
	if err != nil {
		if computed {
			return nil, err
		}
		// redis trouble must not take the dashboard down
		log.Warn().
			Str("evt.name", "dashboard.cache.bypass").
			Err(err).
			Str("table", r.table).
			Msg("cache unavailable, reading from database")
		rows, err = r.repo.List(ctx, filter)
		if err != nil {
			return nil, err
		}
		return nonNil(rows), nil
	}

	result := "hit"
	if computed {
		result = "miss"
	}
	observability.DashboardCacheRequests.WithLabelValues(r.table, result).Inc()

	return nonNil(rows), nil
}

func nonNil[T any](rows []*T) []*T {
	if rows == nil {
		return []*T{}
	}
	return rows
}

// Dashboard serves filtered reads of the emission tables.
type Dashboard struct {
	students       *cachedReader[model.Student]
	transportation *cachedReader[model.Transportation]
	electronics    *cachedReader[model.Electronics]
	foodWaste      *cachedReader[model.FoodWaste]
	activities     *cachedReader[model.ActivityLog]

	slots        slotSummer
	slotCache    slotCacher
	faculties    facultyLister
	facultyCache *cache.Singular[[]string]
	ttl          time.Duration
}

type slotCacher interface {
	MutexGetSet(ctx context.Context, key string, dest *[]stats.Cell, valueFunc func() ([]stats.Cell, error), expire time.Duration) (bool, error)
}

// DashboardRepos groups the table readers a Dashboard needs.
type DashboardRepos struct {
	Students       lister[model.Student]
	Transportation lister[model.Transportation]
	Electronics    lister[model.Electronics]
	FoodWaste      lister[model.FoodWaste]
	Activities     lister[model.ActivityLog]
	Slots          slotSummer
	Faculties      facultyLister
}

func NewDashboard(
	conf *appconfig.Config,
	students *repo.Student,
	transportation *repo.Transportation,
	electronics *repo.Electronics,
	foodWaste *repo.FoodWaste,
	activities *repo.ActivityLog,
) *Dashboard {
	d := NewUncachedDashboard(DashboardRepos{
		Students:       students,
		Transportation: transportation,
		Electronics:    electronics,
		FoodWaste:      foodWaste,
		Activities:     activities,
		Slots:          activities,
		Faculties:      students,
	})
	d.ttl = conf.DashboardCacheTTL
	d.students.cache, d.students.ttl = modelcache.Students, d.ttl
	d.transportation.cache, d.transportation.ttl = modelcache.Transportation, d.ttl
	d.electronics.cache, d.electronics.ttl = modelcache.Electronics, d.ttl
	d.foodWaste.cache, d.foodWaste.ttl = modelcache.FoodWaste, d.ttl
	d.activities.cache, d.activities.ttl = modelcache.Activities, d.ttl
	if modelcache.PeakCells != nil {
		d.slotCache = modelcache.PeakCells
	}
	d.facultyCache = modelcache.Faculties
	return d
}

// NewUncachedDashboard reads straight from repos on every call.
func NewUncachedDashboard(repos DashboardRepos) *Dashboard {
	return &Dashboard{
		students:       &cachedReader[model.Student]{table: TableStudents, repo: repos.Students},
		transportation: &cachedReader[model.Transportation]{table: TableTransportation, repo: repos.Transportation},
		electronics:    &cachedReader[model.Electronics]{table: TableElectronics, repo: repos.Electronics},
		foodWaste:      &cachedReader[model.FoodWaste]{table: TableFoodWaste, repo: repos.FoodWaste},
		activities:     &cachedReader[model.ActivityLog]{table: TableActivities, repo: repos.Activities},
		slots:          repos.Slots,
		faculties:      repos.Faculties,
	}
}

func (s *Dashboard) Students(ctx context.Context, filter *types.DashboardFilter) ([]*model.Student, error) {
	return s.students.read(ctx, filter)
}

func (s *Dashboard) Transportation(ctx context.Context, filter *types.DashboardFilter) ([]*model.Transportation, error) {
	return s.transportation.read(ctx, filter)
}

func (s *Dashboard) Electronics(ctx context.Context, filter *types.DashboardFilter) ([]*model.Electronics, error) {
	return s.electronics.read(ctx, filter)
}

func (s *Dashboard) FoodWaste(ctx context.Context, filter *types.DashboardFilter) ([]*model.FoodWaste, error) {
	return s.foodWaste.read(ctx, filter)
}

func (s *Dashboard) Activities(ctx context.Context, filter *types.DashboardFilter) ([]*model.ActivityLog, error) {
	return s.activities.read(ctx, filter)
}

// SlotEmissions sums activity emission per (day, timeslot) under filter.
func (s *Dashboard) SlotEmissions(ctx context.Context, filter *types.DashboardFilter) ([]stats.Cell, error) {
	if s.slotCache == nil {
		return s.slots.SumBySlot(ctx, filter)
	}

	var cells []stats.Cell
	computed, err := s.slotCache.MutexGetSet(ctx, FilterCacheKey(TableActivities, filter), &cells, func() ([]stats.Cell, error) {
		return s.slots.SumBySlot(ctx, filter)
	}, s.ttl)
	if err != nil {
		if computed {
			return nil, err
		}
		log.Warn().
			Str("evt.name", "dashboard.cache.bypass").
			Err(err).
			Str("table", slotCellsTable).
			Msg("cache unavailable, reading from database")
		return s.slots.SumBySlot(ctx, filter)
	}

	result := "hit"
	if computed {
		result = "miss"
	}
	observability.DashboardCacheRequests.WithLabelValues(slotCellsTable, result).Inc()

	return cells, nil
}

// Faculties lists the faculties present in the dataset, for filter pickers.
// Cache: faculties, 10 mins
func (s *Dashboard) Faculties(ctx context.Context) ([]string, error) {
	if s.facultyCache == nil {
		return s.faculties.Faculties(ctx)
	}
	var faculties []string
	err := s.facultyCache.MutexGetSet(&faculties, func() ([]string, error) {
		return s.faculties.Faculties(ctx)
	}, time.Minute*10)
	return faculties, err
}
