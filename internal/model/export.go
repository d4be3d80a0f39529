package model

import (
	"strconv"
)

// ExportRecord is a row of a CSV export.
type ExportRecord interface {
	Record() []string
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

var (
	StudentExportHeader        = []string{"id", "name", "program", "faculty", "days_attended"}
	TransportationExportHeader = []string{"id", "mode", "district", "days_attended", "distance", "consumption", "fuel_type", "factor_per_km", "emission"}
	ElectronicsExportHeader    = []string{"id", "days_attended", "uses_phone", "phone_minutes", "uses_laptop", "laptop_minutes", "uses_tablet", "tablet_minutes", "personal_emission", "facility_emission", "total_emission"}
	FoodWasteExportHeader      = []string{"id", "days_attended", "eating_place", "emission_monday", "emission_tuesday", "emission_wednesday", "emission_thursday", "emission_friday", "emission_saturday", "emission_sunday"}
	ActivityLogExportHeader    = []string{"id", "day", "timeslot", "activity_kind", "location", "is_facility_intensive", "ac_emission", "light_emission", "food_waste_emission"}
)

type StudentForExport struct {
	ID           int
	Name         string
	Program      string
	Faculty      string
	DaysAttended string
}

func (r StudentForExport) Record() []string {
	return []string{strconv.Itoa(r.ID), r.Name, r.Program, r.Faculty, r.DaysAttended}
}

type TransportationForExport struct {
	ID           int
	Mode         string
	District     string
	DaysAttended string
	Distance     float64
	Consumption  float64
	FuelType     string
	FactorPerKM  float64
	Emission     float64
}

func (r TransportationForExport) Record() []string {
	return []string{
		strconv.Itoa(r.ID), r.Mode, r.District, r.DaysAttended,
		formatFloat(r.Distance), formatFloat(r.Consumption), r.FuelType,
		formatFloat(r.FactorPerKM), formatFloat(r.Emission),
	}
}

type ElectronicsForExport struct {
	ID               int
	DaysAttended     string
	UsesPhone        bool
	PhoneMinutes     float64
	UsesLaptop       bool
	LaptopMinutes    float64
	UsesTablet       bool
	TabletMinutes    float64
	PersonalEmission float64
	FacilityEmission float64
	TotalEmission    float64
}

func (r ElectronicsForExport) Record() []string {
	return []string{
		strconv.Itoa(r.ID), r.DaysAttended,
		strconv.FormatBool(r.UsesPhone), formatFloat(r.PhoneMinutes),
		strconv.FormatBool(r.UsesLaptop), formatFloat(r.LaptopMinutes),
		strconv.FormatBool(r.UsesTablet), formatFloat(r.TabletMinutes),
		formatFloat(r.PersonalEmission), formatFloat(r.FacilityEmission), formatFloat(r.TotalEmission),
	}
}

type FoodWasteForExport struct {
	ID                int
	DaysAttended      string
	EatingPlace       string
	EmissionMonday    float64
	EmissionTuesday   float64
	EmissionWednesday float64
	EmissionThursday  float64
	EmissionFriday    float64
	EmissionSaturday  float64
	EmissionSunday    float64
}

func (r FoodWasteForExport) Record() []string {
	return []string{
		strconv.Itoa(r.ID), r.DaysAttended, r.EatingPlace,
		formatFloat(r.EmissionMonday), formatFloat(r.EmissionTuesday), formatFloat(r.EmissionWednesday),
		formatFloat(r.EmissionThursday), formatFloat(r.EmissionFriday), formatFloat(r.EmissionSaturday),
		formatFloat(r.EmissionSunday),
	}
}

type ActivityLogForExport struct {
	ID                  int
	Day                 string
	Timeslot            string
	ActivityKind        string
	Location            string
	IsFacilityIntensive bool
	ACEmission          float64
	LightEmission       float64
	FoodWasteEmission   float64
}

func (r ActivityLogForExport) Record() []string {
	return []string{
		strconv.Itoa(r.ID), r.Day, r.Timeslot, r.ActivityKind, r.Location,
		strconv.FormatBool(r.IsFacilityIntensive),
		formatFloat(r.ACEmission), formatFloat(r.LightEmission), formatFloat(r.FoodWasteEmission),
	}
}
