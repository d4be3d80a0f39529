package types

import (
	"sort"

	"github.com/goccy/go-json"

	"emisi.dev/backend/internal/util"
)

// DashboardFilter narrows the dashboard tables. An empty dimension does not filter;
// non-empty dimensions are ANDed together while values within one dimension are ORed.
type DashboardFilter struct {
	Days       []string `query:"days" json:"days,omitempty" validate:"max=7,dive,weekday"`
	Faculties  []string `query:"faculties" json:"faculties,omitempty" validate:"max=32,dive,required,max=128"`
	Modes      []string `query:"modes" json:"modes,omitempty" validate:"max=32,dive,required,max=64"`
	Devices    []string `query:"devices" json:"devices,omitempty" validate:"dive,caseinsensitiveoneof=phone laptop tablet"`
	Categories []string `query:"categories" json:"categories,omitempty" validate:"dive,caseinsensitiveoneof=facility food"`
}

// ParseDashboardFilter builds a filter from comma separated query values.
func ParseDashboardFilter(days, faculties, modes, devices, categories string) *DashboardFilter {
	return &DashboardFilter{
		Days:       util.SplitList(days),
		Faculties:  util.SplitList(faculties),
		Modes:      util.SplitList(modes),
		Devices:    util.SplitList(devices),
		Categories: util.SplitList(categories),
	}
}

func (f *DashboardFilter) IsEmpty() bool {
	return f == nil || len(f.Days)+len(f.Faculties)+len(f.Modes)+len(f.Devices)+len(f.Categories) == 0
}

// CacheKey is a canonical encoding of the filter: equal filters in any value order share a key.
func (f *DashboardFilter) CacheKey() string {
	if f.IsEmpty() {
		return "{}"
	}
	canonical := DashboardFilter{
		Days:       sortedCopy(f.Days),
		Faculties:  sortedCopy(f.Faculties),
		Modes:      sortedCopy(f.Modes),
		Devices:    sortedCopy(f.Devices),
		Categories: sortedCopy(f.Categories),
	}
	b, err := json.Marshal(canonical)
	if err != nil {
		// only plain strings are encoded
		panic(err)
	}
	return string(b)
}

func sortedCopy(s []string) []string {
	if len(s) == 0 {
		return nil
	}
	c := make([]string, len(s))
	copy(c, s)
	sort.Strings(c)
	return c
}
