package emission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"emisi.dev/backend/internal/constant"
)

func TestActivity(t *testing.T) {
	tests := []struct {
		kind      string
		intensive bool
		ac        float64
		light     float64
		food      float64
	}{
		{"Kelas Algoritma", true, 1.66, 0.24, 0},
		{"Class", true, 1.66, 0.24, 0},
		{"Makan Siang", true, 1.66, 0.24, 0.95},
		{"Eat/Drink", true, 1.66, 0.24, 0.95},
		{"Creative Lab", false, 0, 0, 0},
		{"Tidur", false, 0, 0, 0},
		{"Other", false, 0, 0, 0},
		{"", false, 0, 0, 0},
	}

	for _, tt := range tests {
		e := Activity(tt.kind)
		assert.Equal(t, tt.intensive, e.FacilityIntensive, "intensive for %q", tt.kind)
		assert.Equal(t, tt.ac, e.AC, "ac for %q", tt.kind)
		assert.Equal(t, tt.light, e.Light, "light for %q", tt.kind)
		assert.Equal(t, tt.food, e.FoodWaste, "food waste for %q", tt.kind)
	}
}

func TestIsNotOnCampus(t *testing.T) {
	assert.True(t, IsNotOnCampus("Not on campus"))
	assert.True(t, IsNotOnCampus("  TIDAK DI KAMPUS "))
	assert.False(t, IsNotOnCampus("Class"))
}

func TestTransportRoundTrip(t *testing.T) {
	tr := Transport("Motor", "1 - 3 km", "Ron 90")

	assert.Equal(t, constant.ModeMotorcycle, tr.Mode)
	assert.Equal(t, 2.0, tr.DistanceKM)
	assert.Equal(t, 0.035, tr.ConsumptionPerKM)
	assert.Equal(t, 44.61, tr.NCV)
	assert.Equal(t, 69.67, tr.EFPerTJ)
	assert.InDelta(t, 2.2998, tr.FactorPerKM, 1e-3)
	assert.InDelta(t, 0.3220, tr.RoundTrip, 1e-3)
}

func TestTransportUnmappedDegradesToZero(t *testing.T) {
	tr := Transport("Jalan Kaki", "tidak tahu", "Listrik")

	assert.Equal(t, "Jalan Kaki", tr.Mode)
	assert.Zero(t, tr.DistanceKM)
	assert.Zero(t, tr.ConsumptionPerKM)
	assert.Zero(t, tr.FactorPerKM)
	assert.Zero(t, tr.RoundTrip)
}

func TestFactorPerKMNonNegative(t *testing.T) {
	for _, f := range fuels {
		fuel, ok := LookupFuel("Pertamina " + f.Label)
		assert.True(t, ok, "fuel %q should be found", f.Label)
		assert.GreaterOrEqual(t, FactorPerKM(fuel.NCV, fuel.EFPerTJ), 0.0)
	}

	fuel, ok := LookupFuel("bensin campur")
	assert.False(t, ok)
	assert.Zero(t, FactorPerKM(fuel.NCV, fuel.EFPerTJ))
}

func TestLookupFuelFirstMatchWins(t *testing.T) {
	fuel, ok := LookupFuel("RON 90 / RON 92")
	assert.True(t, ok)
	assert.Equal(t, "ron 90", fuel.Label)
}

func TestPersonalElectronics(t *testing.T) {
	u := DeviceUsage{
		UsesPhone:     true,
		PhoneMinutes:  120,
		UsesLaptop:    true,
		LaptopMinutes: 240,
		UsesTablet:    true,
		TabletMinutes: 480,
	}
	perDay := (120.0*4 + 240.0*50 + 480.0*10) * 0.829 / 60000
	assert.InDelta(t, perDay, PersonalPerDay(u), 1e-12)
	assert.InDelta(t, perDay*3, PersonalElectronics(u, 3), 1e-12)
	assert.Zero(t, PersonalElectronics(u, 0))
}

func TestPersonalElectronicsCountsUnlistedDeviceMinutes(t *testing.T) {
	u := DeviceUsage{
		UsesPhone:     false,
		PhoneMinutes:  120,
		UsesLaptop:    true,
		LaptopMinutes: 30,
	}
	assert.InDelta(t, 0.027357, PersonalPerDay(u), 1e-6)
	assert.InDelta(t, (120.0*4+30*50)*0.829/60000, PersonalPerDay(u), 1e-12)
}

func TestIsEating(t *testing.T) {
	assert.True(t, IsEating("Eat/Drink"))
	assert.True(t, IsEating("Makan Siang"))
	assert.True(t, IsEating("minum kopi"))
	assert.False(t, IsEating("Theater"))
	assert.False(t, IsEating("Eat"))
}
