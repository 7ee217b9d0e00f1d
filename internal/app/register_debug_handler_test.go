package app

import "testing"

func TestIsRegisterWritable(t *testing.T) {
	tests := []struct {
		name   string
		addr   byte
		ranges string
		want   bool
	}{
		{"empty config allows nothing", 0x20, "", false},
		{"single address match", 0x02, "0x02", true},
		{"single address miss", 0x03, "0x02", false},
		{"range match low edge", 0x1F, "0x1F-0x26", true},
		{"range match high edge", 0x26, "0x1F-0x26", true},
		{"range miss above", 0x27, "0x1F-0x26", false},
		{"second entry matches", 0x00, "0x1F-0x26,0x00-0x02", true},
		{"spaces tolerated", 0x21, " 0x1F - 0x26 , 0x00 ", true},
		{"garbage entry skipped", 0x21, "zz,0x20-0x22", true},
		{"garbage only", 0x21, "zz", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isRegisterWritable(tt.addr, tt.ranges); got != tt.want {
				t.Errorf("isRegisterWritable(0x%02X, %q) = %v, want %v", tt.addr, tt.ranges, got, tt.want)
			}
		})
	}
}

func TestCardinalName(t *testing.T) {
	tests := []struct {
		heading float64
		want    string
	}{
		{0, "N"},
		{22.4, "N"},
		{22.5, "NE"},
		{90, "E"},
		{135, "SE"},
		{180, "S"},
		{225, "SW"},
		{270, "W"},
		{315, "NW"},
		{337.5, "N"},
		{359.9, "N"},
	}

	for _, tt := range tests {
		if got := cardinalName(tt.heading); got != tt.want {
			t.Errorf("cardinalName(%v) = %q, want %q", tt.heading, got, tt.want)
		}
	}
}
