package model

import (
	"github.com/uptrace/bun"
	"gopkg.in/guregu/null.v3"
)

// ActivityLog is one reported on-campus activity of a respondent in a day's 2-hour slot.
// (id, day, timeslot) is unique.
type ActivityLog struct {
	bun.BaseModel `bun:"daily_activity_log,alias:al"`

	ID                  int         `bun:"id,pk" json:"id"`
	Day                 string      `bun:"day,pk" json:"day"`
	Timeslot            string      `bun:"timeslot,pk" json:"timeslot"`
	ActivityKind        string      `json:"activityKind"`
	Location            null.String `json:"location"`
	IsFacilityIntensive bool        `bun:",notnull" json:"isFacilityIntensive"`
	ACEmission          float64     `bun:"ac_emission" json:"acEmission"`
	LightEmission       float64     `json:"lightEmission"`
	FoodWasteEmission   float64     `json:"foodWasteEmission"`
}

func (a *ActivityLog) FacilityEmission() float64 {
	return a.ACEmission + a.LightEmission
}

func (a *ActivityLog) TotalEmission() float64 {
	return a.ACEmission + a.LightEmission + a.FoodWasteEmission
}
