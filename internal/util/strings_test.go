package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompactKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"1 - 3 km", "1-3km"},
		{" <1 KM ", "<1km"},
		{"5 -\t10 Km", "5-10km"},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, CompactKey(tt.in), "input %q", tt.in)
	}
}

func TestContainsAnyFold(t *testing.T) {
	assert.True(t, ContainsAnyFold("Kelas Algoritma", []string{"kelas"}))
	assert.True(t, ContainsAnyFold("MAKAN SIANG", []string{"makan"}))
	assert.False(t, ContainsAnyFold("Tidur", []string{"kelas", "makan"}))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Kantin", "Perpustakaan"}, SplitList(" Kantin, , Perpustakaan ,"))
	assert.Empty(t, SplitList(""))
}
