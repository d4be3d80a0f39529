// Package emission holds the fixed emission factor tables and the pure functions
// turning survey answers into kg CO2 figures.
package emission

import (
	"strings"

	"emisi.dev/backend/internal/constant"
	"emisi.dev/backend/internal/util"
)

const (
	// ElectricityEmissionFactor is the grid factor in kg CO2 per kWh.
	ElectricityEmissionFactor = 0.829

	// FacilityACEmission is 0.5 kW x 2 units x 0.829 x 2 h per occupied slot.
	FacilityACEmission = 1.66
	// FacilityLightEmission is 0.036 kW x 4 units x 0.829 x 2 h per occupied slot.
	FacilityLightEmission = 0.24
	// FoodWasteEmissionPerSlot is charged once for every eating slot.
	FoodWasteEmissionPerSlot = 0.95

	// fuelDensityFactor converts litres into the mass basis the NCV table is expressed in.
	fuelDensityFactor = 0.74

	PhoneWatt  = 4
	LaptopWatt = 50
	TabletWatt = 10
)

var distanceKM = map[string]float64{
	"<1km":   0.5,
	"1-3km":  2,
	"3-5km":  4,
	"5-10km": 7.5,
	">10km":  12,
}

var consumptionPerKM = map[string]float64{
	constant.ModeCar:           0.1,
	constant.ModePublicTransit: 0.1,
	constant.ModeRideHailing:   0.035,
	constant.ModeMotorcycle:    0.035,
}

var modeAliases = map[string]string{
	"mobil":             constant.ModeCar,
	"mobil pribadi":     constant.ModeCar,
	"car":               constant.ModeCar,
	"motor":             constant.ModeMotorcycle,
	"sepeda motor":      constant.ModeMotorcycle,
	"motorcycle":        constant.ModeMotorcycle,
	"transportasi umum": constant.ModePublicTransit,
	"public transit":    constant.ModePublicTransit,
	"bus":               constant.ModePublicTransit,
	"krl":               constant.ModePublicTransit,
	"angkot":            constant.ModePublicTransit,
	"ojek online":       constant.ModeRideHailing,
	"ojol":              constant.ModeRideHailing,
	"ride hailing":      constant.ModeRideHailing,
	"taksi online":      constant.ModeRideHailing,
}

// Fuel is one row of the fuel table. Label is matched as a folded substring.
type Fuel struct {
	Label string
	// NCV is the net calorific value in TJ/Gg.
	NCV float64
	// EFPerTJ is the emission factor in kg CO2 per TJ.
	EFPerTJ float64
}

// fuels is ordered: the first matching label wins.
var fuels = []Fuel{
	{Label: "ron 90", NCV: 44.61, EFPerTJ: 69.67},
	{Label: "ron 92", NCV: 44.79, EFPerTJ: 69.30},
	{Label: "ron 95", NCV: 44.85, EFPerTJ: 69.30},
	{Label: "ron 98", NCV: 44.90, EFPerTJ: 69.30},
	{Label: "cn 48", NCV: 42.66, EFPerTJ: 74.10},
	{Label: "cn 51", NCV: 42.66, EFPerTJ: 74.10},
	{Label: "cn 53", NCV: 42.66, EFPerTJ: 74.10},
}

var usageMinutes = map[string]float64{
	"<1":  30,
	"1-3": 120,
	"3-5": 240,
	"5-7": 360,
	">7":  480,
}

var usageUnitSuffixes = []string{"hours", "hour", "jam"}

var facultyByProgram = map[string]string{
	"teknik informatika":     "Fakultas Teknik",
	"informatika":            "Fakultas Teknik",
	"sistem informasi":       "Fakultas Teknik",
	"teknik elektro":         "Fakultas Teknik",
	"teknik sipil":           "Fakultas Teknik",
	"teknik mesin":           "Fakultas Teknik",
	"teknik industri":        "Fakultas Teknik",
	"arsitektur":             "Fakultas Teknik",
	"manajemen":              "Fakultas Ekonomi dan Bisnis",
	"akuntansi":              "Fakultas Ekonomi dan Bisnis",
	"ekonomi pembangunan":    "Fakultas Ekonomi dan Bisnis",
	"bisnis digital":         "Fakultas Ekonomi dan Bisnis",
	"ilmu hukum":             "Fakultas Hukum",
	"hukum":                  "Fakultas Hukum",
	"kedokteran":             "Fakultas Kedokteran",
	"pendidikan dokter":      "Fakultas Kedokteran",
	"farmasi":                "Fakultas Kedokteran",
	"keperawatan":            "Fakultas Kedokteran",
	"psikologi":              "Fakultas Psikologi",
	"ilmu komunikasi":        "Fakultas Ilmu Sosial dan Ilmu Politik",
	"hubungan internasional": "Fakultas Ilmu Sosial dan Ilmu Politik",
	"ilmu politik":           "Fakultas Ilmu Sosial dan Ilmu Politik",
	"sosiologi":              "Fakultas Ilmu Sosial dan Ilmu Politik",
	"matematika":             "Fakultas MIPA",
	"fisika":                 "Fakultas MIPA",
	"kimia":                  "Fakultas MIPA",
	"biologi":                "Fakultas MIPA",
	"statistika":             "Fakultas MIPA",
}

// DistanceKM maps a survey distance range to its midpoint in km. Unknown ranges yield 0.
func DistanceKM(rangeLabel string) float64 {
	return distanceKM[util.CompactKey(rangeLabel)]
}

// CanonicalMode resolves a survey transport answer to a canonical mode. ok is false when
// the answer is not a fuel-burning mode, in which case the trimmed raw answer is returned.
func CanonicalMode(raw string) (mode string, ok bool) {
	if m, found := modeAliases[util.Fold(raw)]; found {
		return m, true
	}
	for _, m := range []string{constant.ModeCar, constant.ModeMotorcycle, constant.ModePublicTransit, constant.ModeRideHailing} {
		if util.Fold(raw) == util.Fold(m) {
			return m, true
		}
	}
	return strings.TrimSpace(raw), false
}

// ConsumptionPerKM returns litres per km for a canonical mode, or 0.
func ConsumptionPerKM(mode string) float64 {
	return consumptionPerKM[mode]
}

// LookupFuel finds the first fuel whose label occurs in the answer. ok is false on no match.
func LookupFuel(raw string) (Fuel, bool) {
	folded := util.Fold(raw)
	if folded == "" {
		return Fuel{}, false
	}
	for _, f := range fuels {
		if strings.Contains(folded, f.Label) {
			return f, true
		}
	}
	return Fuel{}, false
}

// UsageMinutes maps a daily usage range such as "1 - 3 jam" to minutes per day.
func UsageMinutes(rangeLabel string) float64 {
	key := util.CompactKey(rangeLabel)
	for _, suffix := range usageUnitSuffixes {
		key = strings.TrimSuffix(key, suffix)
	}
	return usageMinutes[key]
}

// Faculty maps a study program to its faculty, defaulting to constant.OtherFaculty.
func Faculty(program string) string {
	if f, ok := facultyByProgram[util.Fold(program)]; ok {
		return f
	}
	return constant.OtherFaculty
}
