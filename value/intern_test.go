package value

import "testing"

func TestInternerStability(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("foo")
	if a != b {
		t.Errorf("Intern(\"foo\") returned different handles: %v, %v", a, b)
	}
	if in.Name(a) != "foo" {
		t.Errorf("Name(%v) = %q, want \"foo\"", a, in.Name(a))
	}
}

func TestInternerDistinctNames(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("bar")
	if a == b {
		t.Error("distinct names interned to the same handle")
	}
}

func TestInternerLookupMiss(t *testing.T) {
	in := NewInterner()
	if _, ok := in.Lookup("nope"); ok {
		t.Error("Lookup found a name that was never interned")
	}
	in.Intern("nope")
	if k, ok := in.Lookup("nope"); !ok || in.Name(k) != "nope" {
		t.Error("Lookup failed after Intern")
	}
}

func TestGlobalPreinternedKeys(t *testing.T) {
	if Name(KeyID) != "$id" {
		t.Errorf("KeyID = %q", Name(KeyID))
	}
	if Name(KeyType) != "$type" {
		t.Errorf("KeyType = %q", Name(KeyType))
	}
	if Name(KeyZoom) != "zoom" {
		t.Errorf("KeyZoom = %q", Name(KeyZoom))
	}
	if k, ok := Lookup("$id"); !ok || k != KeyID {
		t.Error("global Lookup($id) should match KeyID")
	}
}
