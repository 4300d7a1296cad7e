package value

import (
	"hash/fnv"
	"math"
	"strconv"
	"strings"
)

// Kind tags the variant carried by a Variant.
type Kind uint8

const (
	KindMonostate          Kind = iota // absent
	KindString
	KindDouble
	KindInt64
	KindBool
	KindColor
	KindFloatVec              // ordered sequence of f32
	KindStringVec             // ordered sequence of string
	KindFormattedStringVec    // ordered sequence of {text, scale}
)

// String returns the geometry-type-style name used by ToString/diagnostics.
func (k Kind) String() string {
	switch k {
	case KindMonostate:
		return "null"
	case KindString:
		return "string"
	case KindDouble:
		return "number"
	case KindInt64:
		return "number"
	case KindBool:
		return "boolean"
	case KindColor:
		return "color"
	case KindFloatVec:
		return "array"
	case KindStringVec:
		return "array"
	case KindFormattedStringVec:
		return "formatted"
	default:
		return "unknown"
	}
}

// FormattedEntry is one {text, scale} run inside a FormattedStringVec.
type FormattedEntry struct {
	Text  string
	Scale float32
}

// Variant is the tagged union ("ValueVariant") the expression language
// produces and consumes. The zero Variant is the absent/Monostate value.
type Variant struct {
	Kind    Kind
	Str     string
	Dbl     float64
	I64     int64
	Bln     bool
	Clr     Color
	Floats  []float32
	Strs    []string
	Entries []FormattedEntry
}

// Absent is the Monostate value.
var Absent = Variant{}

// String variant constructor.
func String(s string) Variant { return Variant{Kind: KindString, Str: s} }

// Double variant constructor.
func Double(f float64) Variant { return Variant{Kind: KindDouble, Dbl: f} }

// Int64 variant constructor.
func Int64(i int64) Variant { return Variant{Kind: KindInt64, I64: i} }

// Bool variant constructor.
func Bool(b bool) Variant { return Variant{Kind: KindBool, Bln: b} }

// ColorValue variant constructor.
func ColorValue(c Color) Variant { return Variant{Kind: KindColor, Clr: c} }

// FloatVec variant constructor. The slice is retained, not copied.
func FloatVec(v []float32) Variant { return Variant{Kind: KindFloatVec, Floats: v} }

// StringVec variant constructor. The slice is retained, not copied.
func StringVec(v []string) Variant { return Variant{Kind: KindStringVec, Strs: v} }

// FormattedStringVec variant constructor. The slice is retained, not copied.
func FormattedStringVec(v []FormattedEntry) Variant {
	return Variant{Kind: KindFormattedStringVec, Entries: v}
}

// IsAbsent reports whether v is Monostate.
func (v Variant) IsAbsent() bool { return v.Kind == KindMonostate }

// IsNumeric reports whether v is Int64 or Double.
func (v Variant) IsNumeric() bool { return v.Kind == KindInt64 || v.Kind == KindDouble }

// AsFloat64 returns the numeric value of an Int64 or Double variant. The
// second return is false for any other kind.
func (v Variant) AsFloat64() (float64, bool) {
	switch v.Kind {
	case KindInt64:
		return float64(v.I64), true
	case KindDouble:
		return v.Dbl, true
	default:
		return 0, false
	}
}

// Equal implements the total equality contract from spec §4.2: Int64 and
// Double compare equal iff numerically equal; no other cross-type equality
// holds; every other comparison is per-variant structural equality.
func (v Variant) Equal(o Variant) bool {
	if v.IsNumeric() && o.IsNumeric() {
		a, _ := v.AsFloat64()
		b, _ := o.AsFloat64()
		return a == b
	}
	if v.Kind != o.Kind {
		return false
	}
	switch v.Kind {
	case KindMonostate:
		return true
	case KindString:
		return v.Str == o.Str
	case KindBool:
		return v.Bln == o.Bln
	case KindColor:
		return v.Clr.Equal(o.Clr)
	case KindFloatVec:
		if len(v.Floats) != len(o.Floats) {
			return false
		}
		for i := range v.Floats {
			if v.Floats[i] != o.Floats[i] {
				return false
			}
		}
		return true
	case KindStringVec:
		if len(v.Strs) != len(o.Strs) {
			return false
		}
		for i := range v.Strs {
			if v.Strs[i] != o.Strs[i] {
				return false
			}
		}
		return true
	case KindFormattedStringVec:
		if len(v.Entries) != len(o.Entries) {
			return false
		}
		for i := range v.Entries {
			if v.Entries[i] != o.Entries[i] {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Ordering is the result of Compare: Less, Equal, Greater, or Incomparable
// when the ValueVariant ordering rules yield "absent" (§4.2).
type Ordering int8

const (
	Incomparable Ordering = iota
	Less
	EqualOrder
	Greater
)

// Compare implements the ordering contract: numeric pairs coerce to Double;
// strings compare lexicographically; anything else is Incomparable.
func Compare(a, b Variant) Ordering {
	if a.IsNumeric() && b.IsNumeric() {
		x, _ := a.AsFloat64()
		y, _ := b.AsFloat64()
		switch {
		case x < y:
			return Less
		case x > y:
			return Greater
		default:
			return EqualOrder
		}
	}
	if a.Kind == KindString && b.Kind == KindString {
		switch {
		case a.Str < b.Str:
			return Less
		case a.Str > b.Str:
			return Greater
		default:
			return EqualOrder
		}
	}
	return Incomparable
}

// Truthy implements ToBoolean: non-empty string, non-zero-non-NaN number,
// the bool itself, any non-monostate container true, monostate false.
func (v Variant) Truthy() bool {
	switch v.Kind {
	case KindMonostate:
		return false
	case KindString:
		return v.Str != ""
	case KindDouble:
		return v.Dbl != 0 && !math.IsNaN(v.Dbl)
	case KindInt64:
		return v.I64 != 0
	case KindBool:
		return v.Bln
	default:
		return true
	}
}

// ToNumber implements the ToNumber coercion: parse String as f64 (0 on
// failure), pass through numbers, Bool -> {1.0, 0.0}, anything else -> 0.
func (v Variant) ToNumber() float64 {
	switch v.Kind {
	case KindString:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0
		}
		return f
	case KindDouble:
		return v.Dbl
	case KindInt64:
		return float64(v.I64)
	case KindBool:
		if v.Bln {
			return 1
		}
		return 0
	default:
		return 0
	}
}

// ToBoolean implements the ToBoolean coercion (alias of Truthy, exposed
// separately so expression nodes can name the operation they perform).
func (v Variant) ToBoolean() bool { return v.Truthy() }

// ToString implements the ToString coercion: numbers without trailing
// zeros, booleans as "true"/"false", Color as rgba(...), concatenated
// FormattedStringVec text, monostate as empty string.
func (v Variant) ToString() string {
	switch v.Kind {
	case KindMonostate:
		return ""
	case KindString:
		return v.Str
	case KindDouble:
		return trimFloat(v.Dbl)
	case KindInt64:
		return strconv.FormatInt(v.I64, 10)
	case KindBool:
		if v.Bln {
			return "true"
		}
		return "false"
	case KindColor:
		return v.Clr.String()
	case KindFloatVec:
		parts := make([]string, len(v.Floats))
		for i, f := range v.Floats {
			parts[i] = trimFloat(float64(f))
		}
		return strings.Join(parts, ",")
	case KindStringVec:
		return strings.Join(v.Strs, ",")
	case KindFormattedStringVec:
		var b strings.Builder
		for _, e := range v.Entries {
			b.WriteString(e.Text)
		}
		return b.String()
	default:
		return ""
	}
}

// Length implements the Length expression: byte length for String, element
// count for vector kinds, 0 for everything else.
func (v Variant) Length() int64 {
	switch v.Kind {
	case KindString:
		return int64(len(v.Str))
	case KindFloatVec:
		return int64(len(v.Floats))
	case KindStringVec:
		return int64(len(v.Strs))
	case KindFormattedStringVec:
		return int64(len(v.Entries))
	default:
		return 0
	}
}

// Hash returns a stable hash used as part of evaluator cache keys. It is
// consistent with Equal for the numeric-coercion case (Int64(n) and
// Double(n) hash identically).
func (v Variant) Hash() uint64 {
	h := fnv.New64a()
	var buf [8]byte
	writeU64 := func(x uint64) {
		for i := 0; i < 8; i++ {
			buf[i] = byte(x >> (8 * i))
		}
		h.Write(buf[:])
	}
	switch {
	case v.IsNumeric():
		f, _ := v.AsFloat64()
		writeU64(uint64(KindDouble))
		writeU64(math.Float64bits(f))
	case v.Kind == KindString:
		writeU64(uint64(KindString))
		h.Write([]byte(v.Str))
	case v.Kind == KindBool:
		writeU64(uint64(KindBool))
		if v.Bln {
			writeU64(1)
		} else {
			writeU64(0)
		}
	case v.Kind == KindColor:
		writeU64(uint64(KindColor))
		writeU64(uint64(math.Float32bits(v.Clr.R)))
		writeU64(uint64(math.Float32bits(v.Clr.G)))
		writeU64(uint64(math.Float32bits(v.Clr.B)))
		writeU64(uint64(math.Float32bits(v.Clr.A)))
	case v.Kind == KindFloatVec:
		writeU64(uint64(KindFloatVec))
		for _, f := range v.Floats {
			writeU64(uint64(math.Float32bits(f)))
		}
	case v.Kind == KindStringVec:
		writeU64(uint64(KindStringVec))
		for _, s := range v.Strs {
			h.Write([]byte(s))
		}
	case v.Kind == KindFormattedStringVec:
		writeU64(uint64(KindFormattedStringVec))
		for _, e := range v.Entries {
			h.Write([]byte(e.Text))
			writeU64(uint64(math.Float32bits(e.Scale)))
		}
	default:
		writeU64(uint64(KindMonostate))
	}
	return h.Sum64()
}
