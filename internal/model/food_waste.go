package model

import (
	"github.com/uptrace/bun"

	"emisi.dev/backend/internal/constant"
)

type FoodWaste struct {
	bun.BaseModel `bun:"food_waste,alias:fw"`

	ID                int     `bun:"id,pk" json:"id"`
	DaysAttended      string  `json:"daysAttended"`
	EatingPlace       string  `json:"eatingPlace"`
	EmissionMonday    float64 `json:"emissionMonday"`
	EmissionTuesday   float64 `json:"emissionTuesday"`
	EmissionWednesday float64 `json:"emissionWednesday"`
	EmissionThursday  float64 `json:"emissionThursday"`
	EmissionFriday    float64 `json:"emissionFriday"`
	EmissionSaturday  float64 `json:"emissionSaturday"`
	EmissionSunday    float64 `json:"emissionSunday"`
}

// DayField returns the field holding the emission of the given weekday, or nil.
func (f *FoodWaste) DayField(day string) *float64 {
	switch day {
	case constant.Monday:
		return &f.EmissionMonday
	case constant.Tuesday:
		return &f.EmissionTuesday
	case constant.Wednesday:
		return &f.EmissionWednesday
	case constant.Thursday:
		return &f.EmissionThursday
	case constant.Friday:
		return &f.EmissionFriday
	case constant.Saturday:
		return &f.EmissionSaturday
	case constant.Sunday:
		return &f.EmissionSunday
	}
	return nil
}

func (f *FoodWaste) Total() float64 {
	return f.EmissionMonday + f.EmissionTuesday + f.EmissionWednesday + f.EmissionThursday +
		f.EmissionFriday + f.EmissionSaturday + f.EmissionSunday
}
