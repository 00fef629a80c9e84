package dict

import "testing"

func TestRowField(t *testing.T) {
	r := Row("65 2")
	cases := []struct {
		col, width int
		want       string
	}{
		{0, 1, "6"},
		{1, 1, "5"},
		{2, 1, " "},
		{3, 1, "2"},
		{4, 1, ""},
		{40, 1, ""},
		{0, 2, "65"},
		{1, 2, " 2"},
		{2, 2, ""},
	}
	for _, c := range cases {
		if got := r.Field(c.col, c.width); got != c.want {
			t.Fatalf("Field(%d,%d) = %q, want %q", c.col, c.width, got, c.want)
		}
	}
}

func TestRowField_PartialTrailingField(t *testing.T) {
	if got := Row("0A3").Field(1, 2); got != "3" {
		t.Fatalf("Field = %q", got)
	}
}

func TestFrequency(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"1", 0.08, true},
		{"2", 0.15, true},
		{"3", 0.23, true},
		{"4", 0.31, true},
		{"5", 0.38, true},
		{"6", 0.46, true},
		{"D", 1.0, true},
		{"d", 1.0, true},
		{"F", 1.15, true},
		{" 6", 0.46, true},
		{"1A", 2.0, true},
		{" ", 0, false},
		{"", 0, false},
		{"G", 0, false},
	}
	for _, c := range cases {
		got, ok := Frequency(c.in)
		if ok != c.ok || got != c.want {
			t.Fatalf("Frequency(%q) = %v,%v want %v,%v", c.in, got, ok, c.want, c.ok)
		}
	}
}
