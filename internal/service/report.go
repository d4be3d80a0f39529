package service

import (
	"context"
	"fmt"
	"html/template"
	"io"
	"strings"
	"time"

	"github.com/pkg/errors"

	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/model/types"
	"emisi.dev/backend/internal/util/stats"
)

type bundler interface {
	Bundle(ctx context.Context, filter *types.DashboardFilter) (*model.StatisticsBundle, error)
}

type categoryNarrative struct {
	Conclusion      string
	Recommendations []string
}

var categoryNarratives = map[string]categoryNarrative{
	constant.CategoryTransportation: {
		Conclusion: "Commuting is the largest source of emission among the selected respondents.",
		Recommendations: []string{
			"Promote shared rides and public transit for the daily commute.",
			"Schedule classes to reduce the number of separate campus days.",
		},
	},
	constant.CategoryElectronics: {
		Conclusion: "Electricity used by personal devices and campus facilities is the largest source of emission.",
		Recommendations: []string{
			"Switch off air conditioning and lights in rooms that are not in use.",
			"Encourage energy saving settings on laptops and tablets.",
		},
	},
	constant.CategoryFoodWaste: {
		Conclusion: "Food waste is the largest source of emission among the selected respondents.",
		Recommendations: []string{
			"Offer smaller portions at campus canteens.",
			"Run awareness campaigns on finishing meals and composting leftovers.",
		},
	},
}

var profileNarratives = map[stats.Profile]string{
	stats.ProfileMajorContributor:    "Most respondents are above the median in every category.",
	stats.ProfileHighlyEcoConscious:  "Most respondents stay at or below the median in every category.",
	stats.ProfileMobileTechCommuter:  "Most respondents combine a heavy commute with heavy device use.",
	stats.ProfileCommutingDiner:      "Most respondents combine a heavy commute with high food waste.",
	stats.ProfileCampusConsumer:      "Most respondents combine heavy device use with high food waste.",
	stats.ProfileTransportDependent:  "Most respondents are above the median only in transportation.",
	stats.ProfileDeviceHeavy:         "Most respondents are above the median only in electronics.",
	stats.ProfileFoodWaster:          "Most respondents are above the median only in food waste.",
	stats.ProfileModerateContributor: "Respondents show no dominant emission pattern.",
}

type reportView struct {
	GeneratedAt     string
	Filter          string
	Bundle          *model.StatisticsBundle
	OutlierOrder    []string
	Conclusion      string
	Recommendations []string
	ProfileNote     string
}

var reportFuncs = template.FuncMap{
	"num": func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"pct": func(f float64) string { return fmt.Sprintf("%.1f%%", f*100) },
}

var (
	reportTemplate      = template.Must(template.New("report").Funcs(reportFuncs).Parse(reportHTML))
	emptyReportTemplate = template.Must(template.New("empty").Parse(emptyReportHTML))
)

// Report renders the printable HTML report of a filtered dataset.
type Report struct {
	statistics bundler
	now        func() time.Time
}

func NewReport(statistics *Statistics) *Report {
	return NewReportWithBundler(statistics)
}

func NewReportWithBundler(b bundler) *Report {
	return &Report{statistics: b, now: time.Now}
}

// WriteHTML renders the report. A filter matching no respondent yields a short
// "No data to report" document instead of an error.
func (s *Report) WriteHTML(ctx context.Context, w io.Writer, filter *types.DashboardFilter) error {
	bundle, err := s.statistics.Bundle(ctx, filter)
	if err != nil {
		return err
	}

	view := reportView{
		GeneratedAt:  s.now().Format(time.RFC1123),
		Filter:       describeFilter(filter),
		Bundle:       bundle,
		OutlierOrder: append(append([]string{}, constant.Categories...), constant.CategoryTotal),
	}

	if bundle.Summary == nil || bundle.Summary.Respondents == 0 {
		return errors.Wrap(emptyReportTemplate.Execute(w, view), "report: render")
	}

	view.Conclusion = "Emission is spread evenly across categories."
	if largest := bundle.Summary.Largest(); largest != nil {
		n := categoryNarratives[largest.Category]
		view.Conclusion = n.Conclusion
		view.Recommendations = n.Recommendations
	}
	if bundle.Profiles != nil && bundle.Profiles.Available {
		view.ProfileNote = profileNarratives[bundle.Profiles.Dominant]
	}

	return errors.Wrap(reportTemplate.Execute(w, view), "report: render")
}

func describeFilter(f *types.DashboardFilter) string {
	if f.IsEmpty() {
		return "all respondents"
	}
	var parts []string
	add := func(name string, values []string) {
		if len(values) > 0 {
			parts = append(parts, name+": "+strings.Join(values, ", "))
		}
	}
	add("days", f.Days)
	add("faculties", f.Faculties)
	add("modes", f.Modes)
	add("devices", f.Devices)
	add("categories", f.Categories)
	return strings.Join(parts, "; ")
}

const reportStyle = `<style>
body { font-family: Helvetica, Arial, sans-serif; margin: 2em; color: #222; }
h1 { font-size: 1.6em; border-bottom: 2px solid #2e7d32; }
h2 { font-size: 1.2em; color: #2e7d32; margin-top: 1.6em; }
table { border-collapse: collapse; width: 100%; margin: .6em 0; }
th, td { border: 1px solid #bbb; padding: 4px 8px; text-align: left; }
th { background: #e8f5e9; }
.meta { color: #666; font-size: .9em; }
.na { color: #999; font-style: italic; }
@media print { body { margin: 0; } }
</style>`

const emptyReportHTML = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Campus Emission Report</title>` + reportStyle + `</head>
<body>
<h1>Campus Emission Report</h1>
<p class="meta">Generated {{.GeneratedAt}} for {{.Filter}}</p>
<p>No data to report.</p>
</body></html>`

const reportHTML = `<!DOCTYPE html>
<html><head><meta charset="utf-8"><title>Campus Emission Report</title>` + reportStyle + `</head>
<body>
<h1>Campus Emission Report</h1>
<p class="meta">Generated {{.GeneratedAt}} for {{.Filter}}</p>

{{with .Bundle.Summary}}
<h2>Summary</h2>
<p>{{.Respondents}} respondents, {{num .GrandTotal}} kg CO2 in total, {{num .AverageTotal}} kg CO2 per respondent.</p>
<table>
<tr><th>Category</th><th>Total (kg CO2)</th><th>Average (kg CO2)</th><th>Share</th></tr>
{{range .Categories}}<tr><td>{{.Category}}</td><td>{{num .Total}}</td><td>{{num .Average}}</td><td>{{pct .Share}}</td></tr>
{{end}}</table>
{{end}}

<h2>Peak Time</h2>
{{with .Bundle.Peak}}{{if .Available}}
<p>The highest activity emission is on {{.Peak.Day}} at {{.Peak.Timeslot}} with {{num .Peak.Emission}} kg CO2.</p>
{{else}}<p class="na">{{.Reason}}</p>{{end}}{{end}}

<h2>Outliers</h2>
<table>
<tr><th>Category</th><th>Q1</th><th>Q3</th><th>Lower fence</th><th>Upper fence</th><th>Outliers</th></tr>
{{$outliers := .Bundle.Outliers}}{{range .OutlierOrder}}{{with index $outliers .}}<tr><td>{{.Category}}</td>{{if .Available}}<td>{{num .Fence.Q1}}</td><td>{{num .Fence.Q3}}</td><td>{{num .Fence.Lower}}</td><td>{{num .Fence.Upper}}</td><td>{{len .Outliers}}</td>{{else}}<td colspan="5" class="na">{{.Reason}}</td>{{end}}</tr>
{{end}}{{end}}</table>

<h2>Behaviour Profiles</h2>
{{with .Bundle.Profiles}}{{if .Available}}
<table>
<tr><th>Profile</th><th>Respondents</th></tr>
{{range $profile, $count := .Distribution}}<tr><td>{{$profile}}</td><td>{{$count}}</td></tr>
{{end}}</table>
{{else}}<p class="na">{{.Reason}}</p>{{end}}{{end}}

<h2>Faculty Comparison</h2>
{{with .Bundle.Faculty}}{{if .Available}}
<table>
<tr><th>Faculty</th><th>Respondents</th><th>Average (kg CO2)</th></tr>
{{range .Groups}}<tr><td>{{.Group}}</td><td>{{.Count}}</td><td>{{num .Mean}}</td></tr>
{{end}}</table>
{{else}}<p class="na">{{.Reason}}</p>{{end}}{{end}}

<h2>Conclusion</h2>
<p>{{.Conclusion}}</p>
{{if .ProfileNote}}<p>{{.ProfileNote}}</p>{{end}}
{{if .Recommendations}}<h2>Recommendations</h2>
<ul>{{range .Recommendations}}<li>{{.}}</li>{{end}}</ul>{{end}}
</body></html>`
