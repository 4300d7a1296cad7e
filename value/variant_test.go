package value

import "testing"

func TestVariantEqualityTotality(t *testing.T) {
	cases := []Variant{
		Absent,
		String("abc"),
		Double(3.5),
		Int64(7),
		Bool(true),
		ColorValue(Color{1, 0, 0, 1}),
		FloatVec([]float32{1, 2, 3}),
		StringVec([]string{"a", "b"}),
	}
	for _, a := range cases {
		if !a.Equal(a) {
			t.Errorf("%+v is not reflexively equal", a)
		}
		for _, b := range cases {
			if a.Equal(b) != b.Equal(a) {
				t.Errorf("Equal is not symmetric for %+v and %+v", a, b)
			}
			if a.Equal(b) && a.Hash() != b.Hash() {
				t.Errorf("Equal values %+v and %+v hash differently", a, b)
			}
		}
	}
}

func TestNumericCoercionEquality(t *testing.T) {
	for n := int64(-5); n < 5; n++ {
		if !Int64(n).Equal(Double(float64(n))) {
			t.Errorf("Int64(%d) != Double(%d)", n, n)
		}
		if Compare(Int64(n), Double(float64(n))) != EqualOrder {
			t.Errorf("Compare(Int64(%d), Double(%d)) != Equal", n, n)
		}
		if Compare(Int64(n), Double(float64(n)+1)) != Less {
			t.Errorf("Compare(Int64(%d), Double(%d)) should be Less", n, n+1)
		}
	}
}

func TestCrossTypeComparisonsAbsent(t *testing.T) {
	if Compare(String("a"), Int64(1)) != Incomparable {
		t.Error("String vs Int64 ordering should be incomparable")
	}
	if String("a").Equal(Int64(1)) {
		t.Error("String and Int64 must never be equal")
	}
}

func TestTruthy(t *testing.T) {
	cases := []struct {
		v    Variant
		want bool
	}{
		{Absent, false},
		{String(""), false},
		{String("x"), true},
		{Double(0), false},
		{Int64(0), false},
		{Int64(1), true},
		{Bool(false), false},
		{Bool(true), true},
		{FloatVec(nil), true},
	}
	for _, c := range cases {
		if got := c.v.Truthy(); got != c.want {
			t.Errorf("%+v.Truthy() = %v, want %v", c.v, got, c.want)
		}
	}
}

func TestToNumber(t *testing.T) {
	if Double(-3.14159).ToNumber() != -3.14159 {
		t.Error("Double passthrough failed")
	}
	if got := String("-3.14159").ToNumber(); got != -3.14159 {
		t.Errorf("String parse = %v", got)
	}
	if got := String("not-a-number").ToNumber(); got != 0 {
		t.Errorf("failed parse should yield 0, got %v", got)
	}
	if Bool(true).ToNumber() != 1 || Bool(false).ToNumber() != 0 {
		t.Error("bool coercion failed")
	}
	if ColorValue(Color{}).ToNumber() != 0 {
		t.Error("non-numeric kind should coerce to 0")
	}
}

func TestToString(t *testing.T) {
	if Double(3).ToString() != "3" {
		t.Errorf("got %q, want 3", Double(3).ToString())
	}
	if Bool(true).ToString() != "true" || Bool(false).ToString() != "false" {
		t.Error("bool ToString failed")
	}
	if Absent.ToString() != "" {
		t.Error("monostate ToString should be empty")
	}
}

func TestLengthFormatRoundTrip(t *testing.T) {
	fs := FormattedStringVec([]FormattedEntry{{Text: "abc", Scale: 1}, {Text: "de", Scale: 1}})
	if fs.Length() != 2 {
		t.Errorf("Length() = %d, want 2 (entry count)", fs.Length())
	}
}
