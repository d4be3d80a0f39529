package model

import "github.com/uptrace/bun"

type Electronics struct {
	bun.BaseModel `bun:"electronics,alias:el"`

	ID               int     `bun:"id,pk" json:"id"`
	DaysAttended     string  `json:"daysAttended"`
	UsesPhone        bool    `bun:",notnull" json:"usesPhone"`
	PhoneMinutes     float64 `json:"phoneMinutes"`
	UsesLaptop       bool    `bun:",notnull" json:"usesLaptop"`
	LaptopMinutes    float64 `json:"laptopMinutes"`
	UsesTablet       bool    `bun:",notnull" json:"usesTablet"`
	TabletMinutes    float64 `json:"tabletMinutes"`
	PersonalEmission float64 `json:"personalEmission"`
	FacilityEmission float64 `json:"facilityEmission"`
	TotalEmission    float64 `json:"totalEmission"`
}
