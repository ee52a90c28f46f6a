package source

import "testing"

func TestInterner(t *testing.T) {
	in := NewInterner()
	a := in.Intern("foo")
	b := in.Intern("bar")
	if a == b || a == NoStringID {
		t.Fatalf("unexpected ids %d %d", a, b)
	}
	if again := in.Intern("foo"); again != a {
		t.Fatalf("re-intern gave %d, want %d", again, a)
	}
	if s := in.MustLookup(b); s != "bar" {
		t.Fatalf("lookup = %q", s)
	}
	if _, ok := in.Lookup(StringID(99)); ok {
		t.Fatal("lookup of unknown id succeeded")
	}
	if in.Len() != 3 {
		t.Fatalf("Len() = %d", in.Len())
	}
}
