package transform

import (
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/util/emission"
	"emisi.dev/backend/internal/util/survey"
)

func newRow(name string) *survey.Row {
	return &survey.Row{
		Name:          name,
		Program:       "Teknik Informatika",
		TransportMode: "Motor",
		DistanceRange: "1 - 3 km",
		FuelType:      "Pertalite (RON 90)",
		DeviceList:    "HP, Laptop",
		PhoneUsage:    "1 - 3 jam",
		LaptopUsage:   "< 1 jam",
		EatingPlace:   "Kantin Pusat",
	}
}

func TestRunAssignsSequentialIDs(t *testing.T) {
	rows := []*survey.Row{newRow("a"), newRow("b"), newRow("c")}
	res := Run(rows, survey.FirstPicker{})

	require.Len(t, res.Students, 3)
	for i, s := range res.Students {
		assert.Equal(t, i+1, s.ID)
		assert.Equal(t, i+1, res.Transportation[i].ID)
		assert.Equal(t, i+1, res.Electronics[i].ID)
		assert.Equal(t, i+1, res.FoodWaste[i].ID)
	}
	assert.Equal(t, 3, res.Stats.Rows)
}

func TestRunFoodWasteAcrossDays(t *testing.T) {
	row := newRow("a")
	row.Days[0].Activities[3] = "Makan Siang"
	row.Days[0].Activities[5] = "Makan Malam"
	row.Days[0].Activities[1] = "Kelas Kalkulus"
	row.Days[0].ClassLocation = "Gedung A"
	row.Days[2].Activities[4] = "Eat/Drink"
	row.Days[4].Activities[0] = "Not on campus"

	res := Run([]*survey.Row{row}, survey.FirstPicker{})
	require.Len(t, res.FoodWaste, 1)

	fw := res.FoodWaste[0]
	assert.InDelta(t, 1.90, fw.EmissionMonday, 1e-9)
	assert.InDelta(t, 0.95, fw.EmissionWednesday, 1e-9)
	assert.Zero(t, fw.EmissionFriday)
	assert.InDelta(t, 2.85, fw.Total(), 1e-9)
	assert.Equal(t, "Kantin Pusat", fw.EatingPlace)
	assert.Equal(t, "Monday, Wednesday", fw.DaysAttended)
	assert.Equal(t, 4, res.Stats.Activities)
}

func TestRunFacilityEmissionMatchesActivityLog(t *testing.T) {
	row := newRow("a")
	row.Days[0].Activities[0] = "Kelas Algoritma"
	row.Days[1].Activities[2] = "Makan"
	row.Days[1].Activities[3] = "Belajar di perpustakaan"
	row.Days[3].Activities[9] = "Kuliah Umum"

	other := newRow("b")
	other.Days[5].Activities[5] = "Organisasi"

	res := Run([]*survey.Row{row, other}, survey.FirstPicker{})

	for _, e := range res.Electronics {
		facility := lo.SumBy(res.Activities, func(a *model.ActivityLog) float64 {
			if a.ID != e.ID {
				return 0
			}
			return a.ACEmission + a.LightEmission
		})
		assert.InDelta(t, facility, e.FacilityEmission, 1e-9, "respondent %d", e.ID)
		assert.InDelta(t, e.PersonalEmission+e.FacilityEmission, e.TotalEmission, 1e-9)
	}
	assert.InDelta(t, 3*(emission.FacilityACEmission+emission.FacilityLightEmission), res.Electronics[0].FacilityEmission, 1e-9)
	assert.Zero(t, res.Electronics[1].FacilityEmission)
}

func TestRunPersonalElectronics(t *testing.T) {
	row := newRow("a")
	row.Days[0].Activities[0] = "Kelas"
	row.Days[1].Activities[0] = "Kelas"

	res := Run([]*survey.Row{row}, survey.FirstPicker{})
	e := res.Electronics[0]

	assert.True(t, e.UsesPhone)
	assert.True(t, e.UsesLaptop)
	assert.False(t, e.UsesTablet)
	// (120 x 4 + 30 x 50) x 0.829 / 60000 x 2 days
	assert.InDelta(t, (120.0*4+30*50)*0.829/60000*2, e.PersonalEmission, 1e-9)
}

func TestRunTransportation(t *testing.T) {
	row := newRow("a")
	row.District = "Kebayoran Baru"
	row.Days[0].Activities[0] = "Kelas"

	walker := newRow("b")
	walker.TransportMode = "Jalan kaki"
	walker.FuelType = ""

	res := Run([]*survey.Row{row, walker}, survey.FirstPicker{})

	tr := res.Transportation[0]
	assert.Equal(t, constant.ModeMotorcycle, tr.Mode)
	assert.Equal(t, "Kebayoran Baru", tr.District)
	assert.Equal(t, 2.0, tr.Distance)
	assert.InDelta(t, 0.3220, tr.Emission, 1e-4)
	assert.Equal(t, "Monday", tr.DaysAttended)

	assert.Equal(t, "Jalan kaki", res.Transportation[1].Mode)
	assert.Zero(t, res.Transportation[1].Emission)
	assert.Equal(t, 1, res.Stats.UnmappedModes)
	assert.Equal(t, 1, res.Stats.UnmappedFuels)
}

func TestRunUnmappedFaculty(t *testing.T) {
	row := newRow("a")
	row.Program = "Seni Tari"

	res := Run([]*survey.Row{row}, survey.FirstPicker{})
	assert.Equal(t, constant.OtherFaculty, res.Students[0].Faculty)
	assert.Equal(t, 1, res.Stats.UnmappedFaculties)
}

func TestDevices(t *testing.T) {
	tests := []struct {
		list                  string
		phone, laptop, tablet bool
	}{
		{"HP, Laptop", true, true, false},
		{"Smartphone", true, false, false},
		{"Handphone, iPad", true, false, true},
		{"Tablet", false, false, true},
		{"Laptop", false, true, false},
		{"", false, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.list, func(t *testing.T) {
			phone, laptop, tablet := Devices(tt.list)
			assert.Equal(t, tt.phone, phone)
			assert.Equal(t, tt.laptop, laptop)
			assert.Equal(t, tt.tablet, tablet)
		})
	}
}

func TestDedupKeepLast(t *testing.T) {
	type rec struct{ id, v int }
	in := []rec{{1, 1}, {2, 2}, {1, 3}, {3, 4}, {2, 5}}
	out := dedupKeepLast(in, func(r rec) int { return r.id })
	assert.Equal(t, []rec{{1, 3}, {2, 5}, {3, 4}}, out)
}

func TestRunPersonalElectronicsUnlistedDevice(t *testing.T) {
	row := newRow("a")
	row.DeviceList = "Laptop"
	row.Days[0].Activities[0] = "Kelas"

	res := Run([]*survey.Row{row}, survey.FirstPicker{})
	e := res.Electronics[0]

	assert.False(t, e.UsesPhone)
	assert.Equal(t, 120.0, e.PhoneMinutes)
	assert.InDelta(t, (120.0*4+30*50)*0.829/60000, e.PersonalEmission, 1e-9)
}
