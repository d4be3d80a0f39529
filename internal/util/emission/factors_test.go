package emission

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"emisi.dev/backend/internal/constant"
)

func TestDistanceKM(t *testing.T) {
	tests := map[string]float64{
		"< 1 km":    0.5,
		"1 - 3 km":  2,
		"3-5 km":    4,
		"5 - 10 KM": 7.5,
		"> 10 km":   12,
		"jauh":      0,
	}
	for in, want := range tests {
		assert.Equal(t, want, DistanceKM(in), "distance for %q", in)
	}
}

func TestCanonicalMode(t *testing.T) {
	tests := []struct {
		raw  string
		want string
		ok   bool
	}{
		{"Motor", constant.ModeMotorcycle, true},
		{"mobil pribadi", constant.ModeCar, true},
		{"Transportasi Umum", constant.ModePublicTransit, true},
		{"Ojek Online", constant.ModeRideHailing, true},
		{"RideHailing", constant.ModeRideHailing, true},
		{" Sepeda ", "Sepeda", false},
	}
	for _, tt := range tests {
		mode, ok := CanonicalMode(tt.raw)
		assert.Equal(t, tt.want, mode, "mode for %q", tt.raw)
		assert.Equal(t, tt.ok, ok, "ok for %q", tt.raw)
	}
}

func TestUsageMinutes(t *testing.T) {
	assert.Equal(t, 30.0, UsageMinutes("< 1 jam"))
	assert.Equal(t, 120.0, UsageMinutes("1 - 3 Jam"))
	assert.Equal(t, 480.0, UsageMinutes("> 7 hours"))
	assert.Zero(t, UsageMinutes(""))
}

func TestFaculty(t *testing.T) {
	assert.Equal(t, "Fakultas Teknik", Faculty(" Teknik Informatika "))
	assert.Equal(t, "Fakultas MIPA", Faculty("STATISTIKA"))
	assert.Equal(t, constant.OtherFaculty, Faculty("Astrologi"))
}
