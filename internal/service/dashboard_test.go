package service

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/util/stats"
)

func TestFilterCacheKey(t *testing.T) {
	a := &types.DashboardFilter{Days: []string{"Monday", "Friday"}, Faculties: []string{"FT"}}
	b := &types.DashboardFilter{Days: []string{"Friday", "Monday"}, Faculties: []string{"FT"}}
	c := &types.DashboardFilter{Days: []string{"Friday"}}

	assert.Equal(t, FilterCacheKey(TableStudents, a), FilterCacheKey(TableStudents, b))
	assert.NotEqual(t, FilterCacheKey(TableStudents, a), FilterCacheKey(TableStudents, c))
	assert.NotEqual(t, FilterCacheKey(TableStudents, a), FilterCacheKey(TableElectronics, a))
	assert.Equal(t, FilterCacheKey(TableStudents, nil), FilterCacheKey(TableStudents, &types.DashboardFilter{}))
	assert.Regexp(t, `^students\|[0-9a-f]{16}$`, FilterCacheKey(TableStudents, a))
}

func uncached(src *fakeSource) *Dashboard {
	return NewUncachedDashboard(DashboardRepos{
		Students:       listerFunc[model.Student](src.Students),
		Transportation: listerFunc[model.Transportation](src.Transportation),
		Electronics:    listerFunc[model.Electronics](src.Electronics),
		FoodWaste:      listerFunc[model.FoodWaste](src.FoodWaste),
		Activities:     listerFunc[model.ActivityLog](src.Activities),
		Slots:          src,
		Faculties:      staticFaculties{"Fakultas Teknik"},
	})
}

type listerFunc[T any] func(ctx context.Context, filter *types.DashboardFilter) ([]*T, error)

func (f listerFunc[T]) List(ctx context.Context, filter *types.DashboardFilter) ([]*T, error) {
	return f(ctx, filter)
}

func (f *fakeSource) SumBySlot(ctx context.Context, filter *types.DashboardFilter) ([]stats.Cell, error) {
	return f.SlotEmissions(ctx, filter)
}

type staticFaculties []string

func (s staticFaculties) Faculties(context.Context) ([]string, error) {
	return s, nil
}

func TestDashboardReadsWithoutCache(t *testing.T) {
	d := uncached(respondents(3, sameFaculty))

	students, err := d.Students(context.Background(), &types.DashboardFilter{})
	require.NoError(t, err)
	assert.Len(t, students, 3)

	tr, err := d.Transportation(context.Background(), &types.DashboardFilter{Modes: []string{"Motorcycle"}})
	require.NoError(t, err)
	assert.Len(t, tr, 3)

	faculties, err := d.Faculties(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Fakultas Teknik"}, faculties)
}

func TestDashboardPropagatesErrors(t *testing.T) {
	d := uncached(&fakeSource{err: errBoom})

	_, err := d.Activities(context.Background(), &types.DashboardFilter{})
	assert.ErrorIs(t, err, errBoom)
	_, err = d.SlotEmissions(context.Background(), &types.DashboardFilter{})
	assert.ErrorIs(t, err, errBoom)
}

type countingSlots struct {
	calls int
	err   error
}

func (c *countingSlots) SumBySlot(context.Context, *types.DashboardFilter) ([]stats.Cell, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return []stats.Cell{{Day: "Monday", Timeslot: "07:00 - 09:00", Emission: 1.5}}, nil
}

// missCache always misses and computes, or fails before computing when getErr is set.
type missCache struct {
	getErr error
}

func (m missCache) MutexGetSet(_ context.Context, _ string, dest *[]stats.Cell, valueFunc func() ([]stats.Cell, error), _ time.Duration) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	v, err := valueFunc()
	if err != nil {
		return true, err
	}
	*dest = v
	return true, nil
}

func TestSlotEmissionsComputeErrorQueriesOnce(t *testing.T) {
	slots := &countingSlots{err: errBoom}
	d := &Dashboard{slots: slots, slotCache: missCache{}}

	_, err := d.SlotEmissions(context.Background(), &types.DashboardFilter{})
	assert.ErrorIs(t, err, errBoom)
	assert.Equal(t, 1, slots.calls)
}

func TestSlotEmissionsBypassesBrokenCache(t *testing.T) {
	slots := &countingSlots{}
	d := &Dashboard{slots: slots, slotCache: missCache{getErr: errors.New("redis down")}}

	cells, err := d.SlotEmissions(context.Background(), &types.DashboardFilter{})
	require.NoError(t, err)
	assert.Len(t, cells, 1)
	assert.Equal(t, 1, slots.calls)
}

func TestSlotEmissionsCachedMiss(t *testing.T) {
	slots := &countingSlots{}
	d := &Dashboard{slots: slots, slotCache: missCache{}}

	cells, err := d.SlotEmissions(context.Background(), &types.DashboardFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1.5, cells[0].Emission)
	assert.Equal(t, 1, slots.calls)
}
