package stats

import (
	"github.com/ahmetb/go-linq/v3"
	"github.com/pkg/errors"
)

// Cell is the summed emission of one (day, timeslot) pair.
type Cell struct {
	Day      string  `json:"day"`
	Timeslot string  `json:"timeslot"`
	Emission float64 `json:"emission"`
}

// Peak returns the cell with the maximum emission. The first maximum in input order wins.
func Peak(cells []Cell) (Cell, bool) {
	if len(cells) == 0 {
		return Cell{}, false
	}
	best := cells[0]
	for _, c := range cells[1:] {
		if c.Emission > best.Emission {
			best = c
		}
	}
	return best, true
}

// Sample is one value attributed to a group, e.g. a respondent's total in a faculty.
type Sample struct {
	Group string
	Value float64
}

type GroupSummary struct {
	Group string  `json:"group"`
	Count int     `json:"count"`
	Total float64 `json:"total"`
	Mean  float64 `json:"mean"`
}

// CompareGroups summarises samples per group, ordered by mean descending. Groups with
// fewer than minPerGroup samples are left out, and fewer than two remaining groups
// yield ErrInsufficientData.
func CompareGroups(samples []Sample, minPerGroup int) ([]GroupSummary, error) {
	var groups []linq.Group
	linq.From(samples).
		GroupByT(
			func(s Sample) string { return s.Group },
			func(s Sample) float64 { return s.Value },
		).
		ToSlice(&groups)

	var summaries []GroupSummary
	linq.From(groups).
		WhereT(func(g linq.Group) bool { return len(g.Group) >= minPerGroup }).
		SelectT(func(g linq.Group) GroupSummary {
			total := linq.From(g.Group).SumFloats()
			return GroupSummary{
				Group: g.Key.(string),
				Count: len(g.Group),
				Total: total,
				Mean:  SafeDiv(total, float64(len(g.Group))),
			}
		}).
		OrderByDescendingT(func(s GroupSummary) float64 { return s.Mean }).
		ThenByT(func(s GroupSummary) string { return s.Group }).
		ToSlice(&summaries)

	if len(summaries) < 2 {
		return nil, errors.Wrapf(ErrInsufficientData, "%d qualifying groups", len(summaries))
	}
	return summaries, nil
}
