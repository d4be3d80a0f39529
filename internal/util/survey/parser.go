package survey

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/guregu/null.v3"

	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/util"
	"emisi.dev/backend/internal/util/emission"
)

// ErrSchemaMismatch is returned when a row does not have exactly ColumnCount cells.
// It is fatal for the whole ETL run since columns are addressed by position.
var ErrSchemaMismatch = errors.New("survey: schema mismatch")

// DayBlock is the part of a row describing a single weekday.
type DayBlock struct {
	Activities    [SlotsPerDay]string
	ClassLocation string
	OtherLocation string
}

// Row is one respondent's survey answer.
type Row struct {
	Timestamp     string
	Name          string
	Program       string
	Contact       string
	TransportMode string
	DistanceRange string
	FuelType      string
	Parking       string
	DeviceList    string
	PhoneUsage    string
	LaptopUsage   string
	TabletUsage   string
	EatingPlace   string
	CohortYear    string
	District      string

	// Days is indexed like constant.Weekdays.
	Days [7]DayBlock
}

// ActivityDraft is an activity record before emissions are applied.
type ActivityDraft struct {
	RespondentID int
	Day          string
	Timeslot     string
	Kind         string
	Location     null.String
}

// ParseRow maps a raw sheet row onto a Row.
func ParseRow(raw []string) (*Row, error) {
	if len(raw) != ColumnCount {
		return nil, errors.Wrapf(ErrSchemaMismatch, "expected %d columns, got %d", ColumnCount, len(raw))
	}

	cell := func(i int) string {
		return strings.TrimSpace(raw[i])
	}

	r := &Row{
		Timestamp:     cell(ColTimestamp),
		Name:          cell(ColName),
		Program:       cell(ColProgram),
		Contact:       cell(ColContact),
		TransportMode: cell(ColTransportMode),
		DistanceRange: cell(ColDistanceRange),
		FuelType:      cell(ColFuelType),
		Parking:       cell(ColParking),
		DeviceList:    cell(ColDeviceList),
		PhoneUsage:    cell(ColPhoneUsage),
		LaptopUsage:   cell(ColLaptopUsage),
		TabletUsage:   cell(ColTabletUsage),
		EatingPlace:   cell(ColEatingPlace),
		CohortYear:    cell(ColCohortYear),
		District:      cell(ColDistrict),
	}
	for d := range constant.Weekdays {
		off := DayOffset(d)
		for s := 0; s < SlotsPerDay; s++ {
			r.Days[d].Activities[s] = cell(off + s)
		}
		r.Days[d].ClassLocation = cell(off + classLocationOffset)
		r.Days[d].OtherLocation = cell(off + otherLocationOffset)
	}
	return r, nil
}

// ParseRows parses every record, stopping at the first schema error.
func ParseRows(records [][]string) ([]*Row, error) {
	rows := make([]*Row, 0, len(records))
	for i, rec := range records {
		r, err := ParseRow(rec)
		if err != nil {
			return nil, errors.WithMessagef(err, "row %d", i+1)
		}
		rows = append(rows, r)
	}
	return rows, nil
}

func isOnCampus(kind string) bool {
	return kind != "" && !emission.IsNotOnCampus(kind)
}

// DaysAttended lists, in survey column order, the weekdays with at least one
// on-campus activity.
func (r *Row) DaysAttended() []string {
	days := make([]string, 0, len(constant.Weekdays))
	for d, day := range constant.Weekdays {
		for _, kind := range r.Days[d].Activities {
			if isOnCampus(kind) {
				days = append(days, day)
				break
			}
		}
	}
	return days
}

// Activities expands the row into one draft per reported on-campus slot.
func (r *Row) Activities(picker LocationPicker, respondentID int) []ActivityDraft {
	drafts := make([]ActivityDraft, 0)
	for d, day := range constant.Weekdays {
		block := r.Days[d]
		for s, kind := range block.Activities {
			if !isOnCampus(kind) {
				continue
			}
			key := SlotKey{RespondentID: respondentID, Day: day, Timeslot: constant.Timeslots[s]}
			drafts = append(drafts, ActivityDraft{
				RespondentID: respondentID,
				Day:          day,
				Timeslot:     key.Timeslot,
				Kind:         kind,
				Location:     r.resolveLocation(block, kind, picker, key),
			})
		}
	}
	return drafts
}

func (r *Row) resolveLocation(block DayBlock, kind string, picker LocationPicker, key SlotKey) null.String {
	var cell string
	switch {
	case emission.IsClass(kind):
		cell = block.ClassLocation
	case emission.IsEating(kind):
		cell = r.EatingPlace
	default:
		cell = block.OtherLocation
	}

	candidates := util.SplitList(cell)
	if len(candidates) == 0 {
		return null.String{}
	}
	if len(candidates) == 1 {
		return null.StringFrom(candidates[0])
	}
	return null.StringFrom(picker.Pick(candidates, key))
}
