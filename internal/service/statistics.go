package service

import (
	"context"
	"sort"

	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"

	"emisi.dev/backend/internal/app/appconfig"
	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/pkg/emerr"
	"emisi.dev/backend/internal/util"
	"emisi.dev/backend/internal/util/stats"
)

const (
	ReasonNoData           = "no data matches filters"
	ReasonInsufficientData = "insufficient data"
)

type statsSource interface {
	Students(ctx context.Context, filter *types.DashboardFilter) ([]*model.Student, error)
	Transportation(ctx context.Context, filter *types.DashboardFilter) ([]*model.Transportation, error)
	Electronics(ctx context.Context, filter *types.DashboardFilter) ([]*model.Electronics, error)
	FoodWaste(ctx context.Context, filter *types.DashboardFilter) ([]*model.FoodWaste, error)
	SlotEmissions(ctx context.Context, filter *types.DashboardFilter) ([]stats.Cell, error)
}

// respondentSet holds the respondents present in all three category tables under a filter.
type respondentSet struct {
	totals   []stats.Totals
	students map[int]*model.Student
}

func (r *respondentSet) values(category string) []float64 {
	return lo.Map(r.totals, func(t stats.Totals, _ int) float64 {
		switch category {
		case constant.CategoryTransportation:
			return t.Transportation
		case constant.CategoryElectronics:
			return t.Electronics
		case constant.CategoryFoodWaste:
			return t.FoodWaste
		default:
			return t.Total()
		}
	})
}

func (r *respondentSet) name(id int) string {
	if s, ok := r.students[id]; ok {
		return s.Name
	}
	return ""
}

func (r *respondentSet) faculty(id int) string {
	if s, ok := r.students[id]; ok && s.Faculty != "" {
		return s.Faculty
	}
	return constant.OtherFaculty
}

// Statistics computes the aggregate statistics of a filtered dataset.
type Statistics struct {
	source         statsSource
	minRespondents int
	minGroupSize   int
}

func NewStatistics(conf *appconfig.Config, dashboard *Dashboard) *Statistics {
	return NewStatisticsWithSource(dashboard, conf.StatsMinRespondents, conf.StatsMinGroupSize)
}

func NewStatisticsWithSource(source statsSource, minRespondents, minGroupSize int) *Statistics {
	return &Statistics{
		source:         source,
		minRespondents: minRespondents,
		minGroupSize:   minGroupSize,
	}
}

func (s *Statistics) load(ctx context.Context, filter *types.DashboardFilter) (*respondentSet, error) {
	var (
		students       []*model.Student
		transportation []*model.Transportation
		electronics    []*model.Electronics
		foodWaste      []*model.FoodWaste
	)

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		students, err = s.source.Students(ctx, filter)
		return
	})
	eg.Go(func() (err error) {
		transportation, err = s.source.Transportation(ctx, filter)
		return
	})
	eg.Go(func() (err error) {
		electronics, err = s.source.Electronics(ctx, filter)
		return
	})
	eg.Go(func() (err error) {
		foodWaste, err = s.source.FoodWaste(ctx, filter)
		return
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	transportByID := lo.SliceToMap(transportation, func(t *model.Transportation) (int, float64) {
		return t.ID, t.WeeklyEmission()
	})
	electronicsByID := lo.SliceToMap(electronics, func(e *model.Electronics) (int, float64) {
		return e.ID, e.TotalEmission
	})
	foodByID := lo.SliceToMap(foodWaste, func(f *model.FoodWaste) (int, float64) {
		return f.ID, f.Total()
	})

	set := &respondentSet{
		students: lo.SliceToMap(students, func(s *model.Student) (int, *model.Student) { return s.ID, s }),
	}
	for _, t := range transportation {
		e, ok := electronicsByID[t.ID]
		if !ok {
			continue
		}
		f, ok := foodByID[t.ID]
		if !ok {
			continue
		}
		set.totals = append(set.totals, stats.Totals{
			ID:             t.ID,
			Transportation: transportByID[t.ID],
			Electronics:    e,
			FoodWaste:      f,
		})
	}
	sort.Slice(set.totals, func(i, j int) bool { return set.totals[i].ID < set.totals[j].ID })
	return set, nil
}

func (s *Statistics) Summary(ctx context.Context, filter *types.DashboardFilter) (*model.Summary, error) {
	set, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return summarize(set), nil
}

func (s *Statistics) Outliers(ctx context.Context, filter *types.DashboardFilter, category string) (*model.OutlierReport, error) {
	if category == "" {
		category = constant.CategoryTotal
	}
	if category != constant.CategoryTotal && !lo.Contains(constant.Categories, category) {
		return nil, emerr.ErrInvalidReq.Msg("unknown category %q", category)
	}
	set, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return outliers(set, category), nil
}

func (s *Statistics) Profiles(ctx context.Context, filter *types.DashboardFilter) (*model.ProfileReport, error) {
	set, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return profiles(set, s.minRespondents), nil
}

func (s *Statistics) Peak(ctx context.Context, filter *types.DashboardFilter) (*model.PeakReport, error) {
	cells, err := s.source.SlotEmissions(ctx, filter)
	if err != nil {
		return nil, err
	}
	return peak(cells), nil
}

func (s *Statistics) Faculties(ctx context.Context, filter *types.DashboardFilter) (*model.FacultyReport, error) {
	set, err := s.load(ctx, filter)
	if err != nil {
		return nil, err
	}
	return faculties(set, s.minGroupSize), nil
}

// Bundle computes every statistic of the filtered dataset in one pass.
func (s *Statistics) Bundle(ctx context.Context, filter *types.DashboardFilter) (*model.StatisticsBundle, error) {
	var (
		set   *respondentSet
		cells []stats.Cell
	)
	eg, egctx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		set, err = s.load(egctx, filter)
		return
	})
	eg.Go(func() (err error) {
		cells, err = s.source.SlotEmissions(egctx, filter)
		return
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	bundle := &model.StatisticsBundle{
		Summary:  summarize(set),
		Outliers: make(map[string]*model.OutlierReport, len(constant.Categories)+1),
		Profiles: profiles(set, s.minRespondents),
		Peak:     peak(cells),
		Faculty:  faculties(set, s.minGroupSize),
	}
	for _, c := range constant.Categories {
		bundle.Outliers[c] = outliers(set, c)
	}
	bundle.Outliers[constant.CategoryTotal] = outliers(set, constant.CategoryTotal)
	return bundle, nil
}

func summarize(set *respondentSet) *model.Summary {
	n := float64(len(set.totals))
	summary := &model.Summary{
		Respondents: len(set.totals),
		Categories:  make([]*model.CategorySummary, 0, len(constant.Categories)),
	}
	for _, c := range constant.Categories {
		total := stats.Sum(set.values(c))
		summary.GrandTotal += total
		summary.Categories = append(summary.Categories, &model.CategorySummary{
			Category: c,
			Total:    util.RoundFloat64(total, 4),
			Average:  util.RoundFloat64(stats.SafeDiv(total, n), 4),
		})
	}
	for _, c := range summary.Categories {
		c.Share = util.RoundFloat64(stats.SafeDiv(c.Total, summary.GrandTotal), 4)
	}
	summary.AverageTotal = util.RoundFloat64(stats.SafeDiv(summary.GrandTotal, n), 4)
	summary.GrandTotal = util.RoundFloat64(summary.GrandTotal, 4)
	return summary
}

func outliers(set *respondentSet, category string) *model.OutlierReport {
	report := &model.OutlierReport{
		Category: category,
		Outliers: []*model.OutlierEntry{},
	}
	if len(set.totals) == 0 {
		report.Reason = ReasonNoData
		return report
	}
	values := set.values(category)
	fence, idx := stats.Outliers(values)
	report.Available = true
	report.Fence = fence
	for _, i := range idx {
		id := set.totals[i].ID
		report.Outliers = append(report.Outliers, &model.OutlierEntry{
			ID:       id,
			Name:     set.name(id),
			Emission: values[i],
		})
	}
	return report
}

func profiles(set *respondentSet, minRespondents int) *model.ProfileReport {
	report := &model.ProfileReport{
		Classifications: []stats.Classification{},
	}
	classes, medians, err := stats.ClassifyAll(set.totals, minRespondents)
	if err != nil {
		report.Reason = ReasonInsufficientData
		return report
	}
	report.Available = true
	report.Medians = medians
	report.Classifications = classes
	report.Distribution = stats.Distribution(classes)
	report.Dominant, _ = stats.Dominant(classes)
	return report
}

func peak(cells []stats.Cell) *model.PeakReport {
	ordered := orderCells(cells)
	report := &model.PeakReport{Cells: ordered}
	best, ok := stats.Peak(ordered)
	if !ok {
		report.Reason = ReasonNoData
		return report
	}
	report.Available = true
	report.Peak = best
	return report
}

// orderCells sorts cells by weekday then timeslot so the first maximum is stable across queries.
func orderCells(cells []stats.Cell) []stats.Cell {
	ordered := make([]stats.Cell, len(cells))
	copy(ordered, cells)
	rank := func(list []string, v string) int {
		if i := lo.IndexOf(list, v); i >= 0 {
			return i
		}
		return len(list)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		di, dj := rank(constant.Weekdays, ordered[i].Day), rank(constant.Weekdays, ordered[j].Day)
		if di != dj {
			return di < dj
		}
		return rank(constant.Timeslots, ordered[i].Timeslot) < rank(constant.Timeslots, ordered[j].Timeslot)
	})
	return ordered
}

func faculties(set *respondentSet, minGroupSize int) *model.FacultyReport {
	report := &model.FacultyReport{Groups: []stats.GroupSummary{}}
	samples := lo.Map(set.totals, func(t stats.Totals, _ int) stats.Sample {
		return stats.Sample{Group: set.faculty(t.ID), Value: t.Total()}
	})
	groups, err := stats.CompareGroups(samples, minGroupSize)
	if err != nil {
		report.Reason = ReasonInsufficientData
		return report
	}
	report.Available = true
	report.Groups = groups
	return report
}
