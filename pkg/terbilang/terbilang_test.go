package terbilang

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConvert(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "NOL"},
		{7, "TUJUH"},
		{10, "SEPULUH"},
		{11, "SEBELAS"},
		{19, "SEMBILAN BELAS"},
		{20, "DUA PULUH"},
		{45, "EMPAT PULUH LIMA"},
		{100, "SATU RATUS"},
		{215, "DUA RATUS LIMA BELAS"},
		{1_000, "SATU RIBU"},
		{1_005, "SATU RIBU LIMA"},
		{1_500, "SATU RIBU LIMA RATUS"},
		{532_800, "LIMA RATUS TIGA PULUH DUA RIBU DELAPAN RATUS"},
		{2_000_000, "DUA JUTA"},
		{12_345_678, "DUA BELAS JUTA TIGA RATUS EMPAT PULUH LIMA RIBU ENAM RATUS TUJUH PULUH DELAPAN"},
		{999_999_999, "SEMBILAN RATUS SEMBILAN PULUH SEMBILAN JUTA SEMBILAN RATUS SEMBILAN PULUH SEMBILAN RIBU SEMBILAN RATUS SEMBILAN PULUH SEMBILAN"},
		{1_000_000_000, Overflow},
		{-25, "MINUS DUA PULUH LIMA"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Convert(tt.in), "Convert(%d)", tt.in)
	}
}
