package trainer

import "testing"

func TestFormatWeight(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{60, "60"},
		{62.5, "62.5"},
		{1.25, "1.25"},
		{0, "0"},
	}
	for _, tc := range testCases {
		if got := FormatWeight(tc.in); got != tc.want {
			t.Errorf("FormatWeight(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatWeightPrecise(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{60, "60"},
		{62.5, "62.5"},
		{1.25, "1.2"},
	}
	for _, tc := range testCases {
		if got := FormatWeightPrecise(tc.in); got != tc.want {
			t.Errorf("FormatWeightPrecise(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatVolume(t *testing.T) {
	testCases := []struct {
		in   float64
		want string
	}{
		{1800, "1800"},
		{1812.5, "1812"},
	}
	for _, tc := range testCases {
		if got := FormatVolume(tc.in); got != tc.want {
			t.Errorf("FormatVolume(%v) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatRest(t *testing.T) {
	testCases := []struct {
		in   int
		want string
	}{
		{45, "45s"},
		{60, "1 min"},
		{90, "1m 30s"},
		{240, "4 min"},
	}
	for _, tc := range testCases {
		if got := FormatRest(tc.in); got != tc.want {
			t.Errorf("FormatRest(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	testCases := []struct {
		in   string
		want string
	}{
		{"2024-03-04", "04.03.2024"},
		{"not a date", "not a date"},
	}
	for _, tc := range testCases {
		if got := FormatDate(tc.in); got != tc.want {
			t.Errorf("FormatDate(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestRepRangeString(t *testing.T) {
	if got := (RepRange{Min: 8, Max: 12}).String(); got != "8–12" {
		t.Errorf("String() = %q, want 8–12", got)
	}
	if got := (RepRange{Min: 5, Max: 5}).String(); got != "5" {
		t.Errorf("String() = %q, want 5", got)
	}
}
