package model

import "github.com/uptrace/bun"

type Transportation struct {
	bun.BaseModel `bun:"transportation,alias:tr"`

	ID           int     `bun:"id,pk" json:"id"`
	Mode         string  `json:"mode"`
	District     string  `json:"district"`
	DaysAttended string  `json:"daysAttended"`
	Distance     float64 `json:"distance"`
	Consumption  float64 `json:"consumption"`
	FuelType     string  `json:"fuelType"`
	NCV          float64 `bun:"ncv" json:"ncv"`
	EFPerTJ      float64 `bun:"emission_factor_tj" json:"emissionFactorTj"`
	FactorPerKM  float64 `bun:"factor_per_km" json:"factorPerKm"`
	// Emission is the round trip emission of a single campus day.
	Emission float64 `json:"emission"`
}

// WeeklyEmission charges the round trip once per attended day.
func (t *Transportation) WeeklyEmission() float64 {
	return t.Emission * float64(len(Days(t.DaysAttended)))
}
