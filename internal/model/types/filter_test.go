package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseDashboardFilter(t *testing.T) {
	f := ParseDashboardFilter("Monday, Friday", "", "Car,Motorcycle", " laptop ", "")
	assert.Equal(t, []string{"Monday", "Friday"}, f.Days)
	assert.Empty(t, f.Faculties)
	assert.Equal(t, []string{"Car", "Motorcycle"}, f.Modes)
	assert.Equal(t, []string{"laptop"}, f.Devices)
	assert.False(t, f.IsEmpty())

	assert.True(t, ParseDashboardFilter("", "", "", "", "").IsEmpty())
	assert.True(t, (*DashboardFilter)(nil).IsEmpty())
}

func TestCacheKeyIsOrderInsensitive(t *testing.T) {
	a := &DashboardFilter{Days: []string{"Monday", "Friday"}, Modes: []string{"Car"}}
	b := &DashboardFilter{Days: []string{"Friday", "Monday"}, Modes: []string{"Car"}}
	c := &DashboardFilter{Days: []string{"Friday"}, Modes: []string{"Car"}}

	assert.Equal(t, a.CacheKey(), b.CacheKey())
	assert.NotEqual(t, a.CacheKey(), c.CacheKey())
	assert.Equal(t, []string{"Monday", "Friday"}, a.Days, "cache key must not reorder the filter")
	assert.Equal(t, "{}", (&DashboardFilter{}).CacheKey())
}
