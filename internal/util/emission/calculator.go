package emission

import (
	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/util"
)

// ActivityEmissions are the per-slot emissions charged for one reported activity.
type ActivityEmissions struct {
	FacilityIntensive bool
	AC                float64
	Light             float64
	FoodWaste         float64
}

// IsClass reports whether the activity kind describes attending a class.
func IsClass(kind string) bool {
	return util.ContainsAnyFold(kind, constant.ClassKeywords)
}

// IsEating reports whether the activity kind describes eating or drinking.
func IsEating(kind string) bool {
	return util.ContainsAnyFold(kind, constant.EatingKeywords)
}

// IsNotOnCampus reports whether the cell carries the "not on campus" sentinel.
func IsNotOnCampus(kind string) bool {
	return util.EqualsAnyFold(kind, constant.NotOnCampusSentinels)
}

// Activity computes the facility and food waste emissions of one activity slot.
// Occupying a class or an eating place charges AC and lights; eating also charges food waste.
func Activity(kind string) ActivityEmissions {
	eating := IsEating(kind)
	intensive := eating || IsClass(kind)

	var e ActivityEmissions
	e.FacilityIntensive = intensive
	if intensive {
		e.AC = FacilityACEmission
		e.Light = FacilityLightEmission
	}
	if eating {
		e.FoodWaste = FoodWasteEmissionPerSlot
	}
	return e
}

// TransportEmission is the derived transportation profile of one respondent.
type TransportEmission struct {
	Mode             string
	DistanceKM       float64
	ConsumptionPerKM float64
	NCV              float64
	EFPerTJ          float64
	FactorPerKM      float64
	RoundTrip        float64
}

// Transport derives the round trip emission of a commute. Any unmapped answer
// contributes a zero factor instead of failing.
func Transport(modeRaw, distanceRaw, fuelRaw string) TransportEmission {
	mode, _ := CanonicalMode(modeRaw)
	fuel, _ := LookupFuel(fuelRaw)

	t := TransportEmission{
		Mode:             mode,
		DistanceKM:       DistanceKM(distanceRaw),
		ConsumptionPerKM: ConsumptionPerKM(mode),
		NCV:              fuel.NCV,
		EFPerTJ:          fuel.EFPerTJ,
	}
	t.FactorPerKM = FactorPerKM(t.NCV, t.EFPerTJ)
	t.RoundTrip = t.DistanceKM * t.ConsumptionPerKM * t.FactorPerKM * 2
	return t
}

// FactorPerKM is (ncv x 0.74) x (ef / 1000).
func FactorPerKM(ncv, efPerTJ float64) float64 {
	return (ncv * fuelDensityFactor) * (efPerTJ / 1000)
}

// DeviceUsage is the daily usage of personal devices, in minutes. The Uses flags are
// descriptive only: reported minutes count whether or not the device was listed.
type DeviceUsage struct {
	UsesPhone     bool
	PhoneMinutes  float64
	UsesLaptop    bool
	LaptopMinutes float64
	UsesTablet    bool
	TabletMinutes float64
}

// PersonalPerDay is the kg CO2 charged for one day of personal device usage.
func PersonalPerDay(u DeviceUsage) float64 {
	wattMinutes := u.PhoneMinutes*PhoneWatt + u.LaptopMinutes*LaptopWatt + u.TabletMinutes*TabletWatt
	return wattMinutes * ElectricityEmissionFactor / 60000
}

// PersonalElectronics is the weekly personal device emission given the number of days attended.
func PersonalElectronics(u DeviceUsage, daysAttended int) float64 {
	return PersonalPerDay(u) * float64(daysAttended)
}
