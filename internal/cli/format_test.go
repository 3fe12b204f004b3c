package cli

import "testing"

func TestFormatCompact(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1234, "1.2K"},
		{1604427, "1.6M"},
		{-2500, "-2.5K"},
		{33930062000, "33.9B"},
	}
	for _, tt := range tests {
		if got := FormatCompact(tt.in); got != tt.want {
			t.Errorf("FormatCompact(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{542853, "542,853"},
		{2298128, "2,298,128"},
		{-1234, "-1,234"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{265630.14, "$265,630.14"},
		{1771009.14, "$1,771,009.14"},
		{0.05, "$0.05"},
		{-4283.961884, "-$4,283.96"},
	}
	for _, tt := range tests {
		if got := FormatMoney(tt.in); got != tt.want {
			t.Errorf("FormatMoney(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0.65, "$0.65"},
		{12.34, "$12.3"},
		{333.63, "$334"},
		{71032.86, "$71,033"},
		{1771009.14, "$1.77M"},
		{-1947.99, "-$1,948"},
	}
	for _, tt := range tests {
		if got := FormatCost(tt.in); got != tt.want {
			t.Errorf("FormatCost(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatMisc(t *testing.T) {
	if got := FormatPercent(86.288); got != "86.3%" {
		t.Errorf("FormatPercent = %q", got)
	}
	if got := FormatRate(0.6); got != "0.60%" {
		t.Errorf("FormatRate = %q", got)
	}
	if got := FormatDelta(10, 25); got != "-$15.0" {
		t.Errorf("FormatDelta = %q", got)
	}
	if got := FormatParam(150000, 0); got != "150,000" {
		t.Errorf("FormatParam(int) = %q", got)
	}
	if got := FormatParam(-1.1, 1); got != "-1.1" {
		t.Errorf("FormatParam(float) = %q", got)
	}
	if got := FormatMonth(3); got != "M03" {
		t.Errorf("FormatMonth = %q", got)
	}
}
