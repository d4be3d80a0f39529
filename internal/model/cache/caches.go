package cache

import (
	"sync"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/pkg/cache"
	"emisi.dev/backend/internal/util/stats"
)

type Flusher func() error

var (
	Students       *cache.Set[[]*model.Student]
	Transportation *cache.Set[[]*model.Transportation]
	Electronics    *cache.Set[[]*model.Electronics]
	FoodWaste      *cache.Set[[]*model.FoodWaste]
	Activities     *cache.Set[[]*model.ActivityLog]

	PeakCells *cache.Set[[]stats.Cell]

	Faculties    *cache.Singular[[]string]
	LatestETLRun *cache.Singular[model.ETLRun]

	once sync.Once

	SetMap             map[string]Flusher
	SingularFlusherMap map[string]Flusher
)

func Initialize(client *redis.Client) {
	once.Do(func() {
		initializeCaches(client)
	})
}

// Delete flushes the named cache. It reports false when no cache carries that name.
func Delete(name string) (bool, error) {
	if flusher, ok := SingularFlusherMap[name]; ok {
		return true, flusher()
	}
	if flusher, ok := SetMap[name]; ok {
		return true, flusher()
	}
	return false, nil
}

// FlushAll flushes every registered cache and returns the first error encountered.
func FlushAll() error {
	var first error
	for _, m := range []map[string]Flusher{SetMap, SingularFlusherMap} {
		for name, flusher := range m {
			if err := flusher(); err != nil {
				log.Error().
					Str("evt.name", "cache.flush.failed").
					Err(err).
					Str("cache", name).
					Msg("failed to flush cache")
				if first == nil {
					first = err
				}
			}
		}
	}
	return first
}

func initializeCaches(client *redis.Client) {
	SetMap = make(map[string]Flusher)
	SingularFlusherMap = make(map[string]Flusher)

	// dashboard tables
	Students = cache.NewSet[[]*model.Student](client, "dashboard#students|filter")
	Transportation = cache.NewSet[[]*model.Transportation](client, "dashboard#transportation|filter")
	Electronics = cache.NewSet[[]*model.Electronics](client, "dashboard#electronics|filter")
	FoodWaste = cache.NewSet[[]*model.FoodWaste](client, "dashboard#foodWaste|filter")
	Activities = cache.NewSet[[]*model.ActivityLog](client, "dashboard#activities|filter")

	SetMap["dashboard#students|filter"] = Students.Flush
	SetMap["dashboard#transportation|filter"] = Transportation.Flush
	SetMap["dashboard#electronics|filter"] = Electronics.Flush
	SetMap["dashboard#foodWaste|filter"] = FoodWaste.Flush
	SetMap["dashboard#activities|filter"] = Activities.Flush

	// statistics
	PeakCells = cache.NewSet[[]stats.Cell](client, "peakCells|filter")

	SetMap["peakCells|filter"] = PeakCells.Flush

	// others
	Faculties = cache.NewSingular[[]string]("faculties")
	LatestETLRun = cache.NewSingular[model.ETLRun]("latestEtlRun")

	SingularFlusherMap["faculties"] = Faculties.Flush
	SingularFlusherMap["latestEtlRun"] = LatestETLRun.Flush
}
