package model

import (
	"emisi.dev/backend/internal/util/stats"
)

// Unavailable explains why a statistic was not computed.
type Unavailable struct {
	Available bool   `json:"available"`
	Reason    string `json:"reason,omitempty"`
}

type CategorySummary struct {
	Category string  `json:"category"`
	Total    float64 `json:"total"`
	Average  float64 `json:"average"`
	Share    float64 `json:"share"`
}

type Summary struct {
	Respondents  int                `json:"respondents"`
	GrandTotal   float64            `json:"grandTotal"`
	AverageTotal float64            `json:"averageTotal"`
	Categories   []*CategorySummary `json:"categories"`
}

// Largest returns the category with the biggest share, or nil without data.
func (s *Summary) Largest() *CategorySummary {
	var best *CategorySummary
	for _, c := range s.Categories {
		if best == nil || c.Total > best.Total {
			best = c
		}
	}
	if best == nil || best.Total == 0 {
		return nil
	}
	return best
}

type OutlierEntry struct {
	ID       int     `json:"id"`
	Name     string  `json:"name"`
	Emission float64 `json:"emission"`
}

type OutlierReport struct {
	Unavailable
	Category string          `json:"category"`
	Fence    stats.Fence     `json:"fence"`
	Outliers []*OutlierEntry `json:"outliers"`
}

type ProfileReport struct {
	Unavailable
	Medians         stats.Medians          `json:"medians"`
	Classifications []stats.Classification `json:"classifications"`
	Distribution    map[stats.Profile]int  `json:"distribution"`
	Dominant        stats.Profile          `json:"dominant,omitempty"`
}

type PeakReport struct {
	Unavailable
	Peak  stats.Cell   `json:"peak"`
	Cells []stats.Cell `json:"cells"`
}

type FacultyReport struct {
	Unavailable
	Groups []stats.GroupSummary `json:"groups"`
}

// StatisticsBundle is everything the printable report renders.
type StatisticsBundle struct {
	Summary  *Summary                  `json:"summary"`
	Outliers map[string]*OutlierReport `json:"outliers"`
	Profiles *ProfileReport            `json:"profiles"`
	Peak     *PeakReport               `json:"peak"`
	Faculty  *FacultyReport            `json:"faculty"`
}
