package strconvx

import "testing"

func TestFormatIntUint(t *testing.T) {
	type C struct {
		u    uint64
		base int
		want string
	}
	for _, c := range []C{
		{0, 10, "0"},
		{5, 2, "101"},
		{255, 16, "ff"},
		{4294967295, 10, "4294967295"},
	} {
		if got := FormatUint(c.u, c.base); got != c.want {
			t.Fatalf("FormatUint(%d,%d) = %q, want %q", c.u, c.base, got, c.want)
		}
	}
	if got := FormatInt(-15, 10); got != "-15" {
		t.Fatalf("FormatInt(-15,10) = %q, want -15", got)
	}
}

func TestFormatFloatFixed(t *testing.T) {
	type C struct {
		in   float64
		prec int
		want string
	}
	for _, c := range []C{
		{0, 0, "0"},
		{12.3, 1, "12.3"},
		{12.345, 2, "12.35"},
		{-1.25, 2, "-1.25"},
		{2.5, 6, "2.500000"},
	} {
		if got := FormatFloat(c.in, 'f', c.prec, 64); got != c.want {
			t.Fatalf("FormatFloat(%v,'f',%d) = %q, want %q", c.in, c.prec, got, c.want)
		}
	}
}

func TestParseFloatStrict(t *testing.T) {
	v, err := ParseFloat("12.5", 64)
	if err != nil || v != 12.5 {
		t.Fatalf("ParseFloat(12.5) = %v, %v", v, err)
	}
	if _, err := ParseFloat("12.3.4", 64); err == nil {
		t.Fatal("ParseFloat invalid expected error")
	}
}

func TestParseFloatLegacy(t *testing.T) {
	type C struct {
		in   string
		want float64
	}
	for _, c := range []C{
		{"42", 42},
		{"-7", -7},
		{"+3.5", 3.5},
		{"0.25", 0.25},
		{".5", 0.5},
		{"12.", 12},
		{"12.3.4", 0},
		{"12a", 0},
		{" 12", 0},
		{"1e3", 0},
		{"", 0},
		{"-", 0},
		{".", 0},
		{"15\x00junk", 15},
	} {
		if got := ParseFloatLegacy(c.in); got != c.want {
			t.Fatalf("ParseFloatLegacy(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
