package math

import "testing"

func TestFormatNumber(t *testing.T) {
	for _, c := range []struct {
		in        float64
		precision int
		want      string
	}{
		{0, 6, "0"},
		{0.00000000001, 6, "0"},
		{-0.0000000001, 6, "0"},
		{1.5000, 4, "1.5"},
		{1.0, 6, "1"},
		{-1.0, 6, "-1"},
		{100, 2, "100"},
		{0.123456789, 6, "0.123457"},
		{-0.5, 3, "-0.5"},
		{1234.5678, 2, "1234.57"},
		{0.7071067811865476, 6, "0.707107"},
		{-0.0000001, 6, "0"}, // rounds to -0.000000, displayed as plain zero
	} {
		if got := FormatNumber(c.in, c.precision); got != c.want {
			t.Fatal("Wrong format for", c.in, "got", got, "want", c.want)
		}
	}
}
