// Package transform turns parsed survey rows into the per-student, per-day and
// per-category tables persisted by the loader.
package transform

import (
	"github.com/samber/lo"

	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/model"
	"emisi.dev/backend/internal/util"
	"emisi.dev/backend/internal/util/emission"
	"emisi.dev/backend/internal/util/survey"
)

var (
	// "hp" is only matched as a whole item, it is a substring of too many words.
	phoneAliases   = []string{"hp"}
	phoneKeywords  = []string{"phone"}
	laptopKeywords = []string{"laptop"}
	tabletKeywords = []string{"tablet", "ipad"}
)

// Stats counts what happened during a transform, mostly for logging.
type Stats struct {
	Rows              int `json:"rows"`
	Activities        int `json:"activities"`
	UnmappedFaculties int `json:"unmappedFaculties"`
	UnmappedModes     int `json:"unmappedModes"`
	UnmappedFuels     int `json:"unmappedFuels"`
	UnmappedDistances int `json:"unmappedDistances"`
}

type Result struct {
	Students       []*model.Student
	Transportation []*model.Transportation
	Electronics    []*model.Electronics
	FoodWaste      []*model.FoodWaste
	Activities     []*model.ActivityLog

	Stats Stats
}

// Devices detects which personal devices a device_list cell mentions.
func Devices(list string) (phone, laptop, tablet bool) {
	for _, item := range util.SplitList(list) {
		phone = phone || util.EqualsAnyFold(item, phoneAliases) || util.ContainsAnyFold(item, phoneKeywords)
		laptop = laptop || util.ContainsAnyFold(item, laptopKeywords)
		tablet = tablet || util.ContainsAnyFold(item, tabletKeywords)
	}
	return
}

// Run assigns respondent ids sequentially from 1 in input order and derives every table.
func Run(rows []*survey.Row, picker survey.LocationPicker) *Result {
	res := &Result{}
	res.Stats.Rows = len(rows)

	for i, row := range rows {
		id := i + 1
		days := row.DaysAttended()
		joinedDays := model.JoinDays(days)

		activities := activityLogs(row.Activities(picker, id))
		res.Activities = append(res.Activities, activities...)

		faculty := emission.Faculty(row.Program)
		if faculty == constant.OtherFaculty {
			res.Stats.UnmappedFaculties++
		}
		res.Students = append(res.Students, &model.Student{
			ID:           id,
			Name:         row.Name,
			Program:      row.Program,
			Faculty:      faculty,
			DaysAttended: joinedDays,
		})

		res.Transportation = append(res.Transportation, transportation(row, id, joinedDays, &res.Stats))
		res.Electronics = append(res.Electronics, electronics(row, id, days, activities))
		res.FoodWaste = append(res.FoodWaste, foodWaste(row, id, joinedDays, activities))
	}

	res.Stats.Activities = len(res.Activities)

	res.Students = dedupKeepLast(res.Students, func(s *model.Student) int { return s.ID })
	res.Transportation = dedupKeepLast(res.Transportation, func(t *model.Transportation) int { return t.ID })
	res.Electronics = dedupKeepLast(res.Electronics, func(e *model.Electronics) int { return e.ID })
	res.FoodWaste = dedupKeepLast(res.FoodWaste, func(f *model.FoodWaste) int { return f.ID })

	return res
}

func activityLogs(drafts []survey.ActivityDraft) []*model.ActivityLog {
	return lo.Map(drafts, func(d survey.ActivityDraft, _ int) *model.ActivityLog {
		e := emission.Activity(d.Kind)
		return &model.ActivityLog{
			ID:                  d.RespondentID,
			Day:                 d.Day,
			Timeslot:            d.Timeslot,
			ActivityKind:        d.Kind,
			Location:            d.Location,
			IsFacilityIntensive: e.FacilityIntensive,
			ACEmission:          e.AC,
			LightEmission:       e.Light,
			FoodWasteEmission:   e.FoodWaste,
		}
	})
}

func transportation(row *survey.Row, id int, days string, stats *Stats) *model.Transportation {
	t := emission.Transport(row.TransportMode, row.DistanceRange, row.FuelType)
	if _, ok := emission.CanonicalMode(row.TransportMode); !ok {
		stats.UnmappedModes++
	}
	if _, ok := emission.LookupFuel(row.FuelType); !ok {
		stats.UnmappedFuels++
	}
	if t.DistanceKM == 0 {
		stats.UnmappedDistances++
	}
	return &model.Transportation{
		ID:           id,
		Mode:         t.Mode,
		District:     row.District,
		DaysAttended: days,
		Distance:     t.DistanceKM,
		Consumption:  t.ConsumptionPerKM,
		FuelType:     row.FuelType,
		NCV:          t.NCV,
		EFPerTJ:      t.EFPerTJ,
		FactorPerKM:  t.FactorPerKM,
		Emission:     t.RoundTrip,
	}
}

func electronics(row *survey.Row, id int, days []string, activities []*model.ActivityLog) *model.Electronics {
	phone, laptop, tablet := Devices(row.DeviceList)
	usage := emission.DeviceUsage{
		UsesPhone:     phone,
		PhoneMinutes:  emission.UsageMinutes(row.PhoneUsage),
		UsesLaptop:    laptop,
		LaptopMinutes: emission.UsageMinutes(row.LaptopUsage),
		UsesTablet:    tablet,
		TabletMinutes: emission.UsageMinutes(row.TabletUsage),
	}
	personal := emission.PersonalElectronics(usage, len(days))
	facility := lo.SumBy(activities, func(a *model.ActivityLog) float64 { return a.FacilityEmission() })

	return &model.Electronics{
		ID:               id,
		DaysAttended:     model.JoinDays(days),
		UsesPhone:        phone,
		PhoneMinutes:     usage.PhoneMinutes,
		UsesLaptop:       laptop,
		LaptopMinutes:    usage.LaptopMinutes,
		UsesTablet:       tablet,
		TabletMinutes:    usage.TabletMinutes,
		PersonalEmission: personal,
		FacilityEmission: facility,
		TotalEmission:    personal + facility,
	}
}

func foodWaste(row *survey.Row, id int, days string, activities []*model.ActivityLog) *model.FoodWaste {
	fw := &model.FoodWaste{
		ID:           id,
		DaysAttended: days,
		EatingPlace:  row.EatingPlace,
	}
	for _, a := range activities {
		if field := fw.DayField(a.Day); field != nil {
			*field += a.FoodWasteEmission
		}
	}
	return fw
}

// dedupKeepLast keeps the position of the first occurrence of each key and the value of the last one.
func dedupKeepLast[T any](items []T, key func(T) int) []T {
	index := make(map[int]int, len(items))
	out := make([]T, 0, len(items))
	for _, item := range items {
		k := key(item)
		if i, ok := index[k]; ok {
			out[i] = item
			continue
		}
		index[k] = len(out)
		out = append(out, item)
	}
	return out
}
