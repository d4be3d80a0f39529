package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuantile(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}
	assert.InDelta(t, 1.75, Quantile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 2.5, Quantile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 3.25, Quantile(sorted, 0.75), 1e-9)
	assert.Equal(t, 1.0, Quantile(sorted, 0))
	assert.Equal(t, 4.0, Quantile(sorted, 1))
	assert.Zero(t, Quantile(nil, 0.5))
	assert.Equal(t, 7.0, Quantile([]float64{7}, 0.3))
}

func TestMedianDoesNotMutate(t *testing.T) {
	values := []float64{5, 1, 3}
	assert.Equal(t, 3.0, Median(values))
	assert.Equal(t, []float64{5, 1, 3}, values)
}

func TestSafeDiv(t *testing.T) {
	assert.Zero(t, SafeDiv(10, 0))
	assert.Equal(t, 2.5, SafeDiv(5, 2))
	assert.Zero(t, Mean(nil))
}

func TestFences(t *testing.T) {
	values := []float64{1, 2, 3, 4, 100}
	f, idx := Outliers(values)

	assert.InDelta(t, 2, f.Q1, 1e-9)
	assert.InDelta(t, 4, f.Q3, 1e-9)
	assert.InDelta(t, 2, f.IQR, 1e-9)
	assert.InDelta(t, -1, f.Lower, 1e-9)
	assert.InDelta(t, 7, f.Upper, 1e-9)
	assert.Equal(t, []int{4}, idx)

	assert.Equal(t, f, Fences(values), "fences are stable across recomputation")
	assert.False(t, f.IsOutlier(7))
	assert.True(t, f.IsOutlier(7.0001))
}

func TestClassifyIsTotal(t *testing.T) {
	seen := map[Profile]bool{}
	for _, tr := range []Level{Low, High} {
		for _, e := range []Level{Low, High} {
			for _, f := range []Level{Low, High} {
				p := Classify(tr, e, f)
				assert.Contains(t, Profiles, p)
				assert.Equal(t, p, Classify(tr, e, f))
				seen[p] = true
			}
		}
	}
	// 8 combinations, the fallback is unreachable from a complete decision table
	assert.Len(t, seen, 8)
	assert.False(t, seen[ProfileModerateContributor])
}

func TestClassifyTable(t *testing.T) {
	tests := []struct {
		t, e, f Level
		want    Profile
	}{
		{High, High, High, ProfileMajorContributor},
		{Low, Low, Low, ProfileHighlyEcoConscious},
		{High, High, Low, ProfileMobileTechCommuter},
		{High, Low, High, ProfileCommutingDiner},
		{Low, High, High, ProfileCampusConsumer},
		{High, Low, Low, ProfileTransportDependent},
		{Low, High, Low, ProfileDeviceHeavy},
		{Low, Low, High, ProfileFoodWaster},
	}
	for _, tt := range tests {
		t.Run(string(tt.want), func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.t, tt.e, tt.f))
		})
	}
}

func TestClassifyAllInsufficient(t *testing.T) {
	totals := make([]Totals, 4)
	_, _, err := ClassifyAll(totals, 5)
	assert.ErrorIs(t, err, ErrInsufficientData)

	totals = make([]Totals, 5)
	_, _, err = ClassifyAll(totals, 5)
	assert.ErrorIs(t, err, ErrInsufficientData)
}

func TestClassifyAll(t *testing.T) {
	totals := []Totals{
		{ID: 1, Transportation: 10, Electronics: 10, FoodWaste: 10},
		{ID: 2, Transportation: 0, Electronics: 0, FoodWaste: 0},
		{ID: 3, Transportation: 10, Electronics: 0, FoodWaste: 0},
		{ID: 4, Transportation: 1, Electronics: 1, FoodWaste: 1},
		{ID: 5, Transportation: 2, Electronics: 2, FoodWaste: 2},
		{ID: 6, Transportation: 3, Electronics: 3, FoodWaste: 3},
	}
	classes, medians, err := ClassifyAll(totals, 5)
	require.NoError(t, err)
	require.Len(t, classes, 6)

	assert.InDelta(t, 2.5, medians.Transportation, 1e-9)
	assert.Equal(t, ProfileMajorContributor, classes[0].Profile)
	assert.Equal(t, ProfileHighlyEcoConscious, classes[1].Profile)
	assert.Equal(t, ProfileTransportDependent, classes[2].Profile)
	assert.Equal(t, ProfileMajorContributor, classes[5].Profile)

	d := Distribution(classes)
	assert.Len(t, d, len(Profiles))
	assert.Equal(t, 2, d[ProfileMajorContributor])

	dominant, ok := Dominant(classes)
	assert.True(t, ok)
	assert.Equal(t, ProfileMajorContributor, dominant)
}

func TestPeak(t *testing.T) {
	_, ok := Peak(nil)
	assert.False(t, ok)

	cells := []Cell{
		{Day: "Monday", Timeslot: "06.00-08.00", Emission: 3},
		{Day: "Tuesday", Timeslot: "10.00-12.00", Emission: 5},
		{Day: "Friday", Timeslot: "12.00-14.00", Emission: 5},
	}
	p, ok := Peak(cells)
	assert.True(t, ok)
	assert.Equal(t, "Tuesday", p.Day)
	assert.Equal(t, "10.00-12.00", p.Timeslot)
}

func TestCompareGroups(t *testing.T) {
	samples := []Sample{
		{"Teknik", 3}, {"Teknik", 5}, {"Teknik", 7},
		{"Hukum", 1}, {"Hukum", 1}, {"Hukum", 1},
		{"Psikologi", 100},
	}
	summaries, err := CompareGroups(samples, 3)
	require.NoError(t, err)
	require.Len(t, summaries, 2)
	assert.Equal(t, "Teknik", summaries[0].Group)
	assert.InDelta(t, 5, summaries[0].Mean, 1e-9)
	assert.Equal(t, 3, summaries[0].Count)
	assert.Equal(t, "Hukum", summaries[1].Group)

	_, err = CompareGroups(samples[:4], 3)
	assert.ErrorIs(t, err, ErrInsufficientData)
}
