package value

import "testing"

func TestParseColorHex(t *testing.T) {
	cases := []struct {
		in   string
		want Color
	}{
		{"#fff", Color{1, 1, 1, 1}},
		{"#000", Color{0, 0, 0, 1}},
		{"#ff0000", Color{1, 0, 0, 1}},
		{"#00ff00ff", Color{0, 1, 0, 1}},
		{"#00ff0080", Color{0, 1, 0, float32(128) / 255}},
	}
	for _, c := range cases {
		got, ok := ParseColor(c.in)
		if !ok {
			t.Fatalf("ParseColor(%q) failed", c.in)
		}
		if !got.Equal(c.want) {
			t.Errorf("ParseColor(%q) = %+v, want %+v", c.in, got, c.want)
		}
	}
}

func TestParseColorFunctional(t *testing.T) {
	if got, ok := ParseColor("rgb(255, 0, 0)"); !ok || !got.Equal(Color{1, 0, 0, 1}) {
		t.Errorf("rgb(255,0,0) = %+v, ok=%v", got, ok)
	}
	if got, ok := ParseColor("rgba(0, 255, 0, 0.5)"); !ok {
		t.Fatal("rgba parse failed")
	} else if got.G != 1 || got.A != 0.5 {
		t.Errorf("rgba(0,255,0,0.5) = %+v", got)
	}
	if got, ok := ParseColor("hsl(0, 100%, 50%)"); !ok || !got.Equal(Color{1, 0, 0, 1}) {
		t.Errorf("hsl(0,100%%,50%%) = %+v, ok=%v", got, ok)
	}
}

func TestParseColorNamed(t *testing.T) {
	if got, ok := ParseColor("red"); !ok || !got.Equal(Color{1, 0, 0, 1}) {
		t.Errorf("red = %+v, ok=%v", got, ok)
	}
	if got, ok := ParseColor("TRANSPARENT"); !ok || !got.Equal(Color{0, 0, 0, 0}) {
		t.Errorf("transparent = %+v, ok=%v", got, ok)
	}
}

func TestParseColorInvalid(t *testing.T) {
	invalid := []string{"", "notacolor", "#ff", "rgb(1,2)", "#gggggg"}
	for _, s := range invalid {
		if _, ok := ParseColor(s); ok {
			t.Errorf("ParseColor(%q) unexpectedly succeeded", s)
		}
	}
}

func TestColorStringRoundTrip(t *testing.T) {
	c := Color{1, 0, 0, 1}
	if c.String() != "rgba(255,0,0,1)" {
		t.Errorf("String() = %q", c.String())
	}
}
