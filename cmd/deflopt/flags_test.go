package main

import (
	"testing"

	"github.com/woozymasta/deflopt"
)

func TestFramingFlag_SetAndString(t *testing.T) {
	cases := []struct {
		in   string
		want deflopt.Framing
	}{
		{"deflate", deflopt.DeflateOnly},
		{"zlib", deflopt.Zlib},
		{"gzip", deflopt.Gzip},
	}
	for _, c := range cases {
		var f FramingFlag
		if err := f.Set(c.in); err != nil {
			t.Fatalf("Set(%q): %v", c.in, err)
		}
		if f.Framing() != c.want {
			t.Fatalf("Framing() = %v, want %v", f.Framing(), c.want)
		}
		if f.String() != c.in {
			t.Fatalf("String() = %q, want %q", f.String(), c.in)
		}
	}
}

func TestFramingFlag_UnsetDefaultsToDeflateOnly(t *testing.T) {
	var f FramingFlag
	if f.Framing() != deflopt.DeflateOnly {
		t.Fatalf("zero-value Framing() = %v, want DeflateOnly", f.Framing())
	}
}

func TestFramingFlag_RejectsUnknownName(t *testing.T) {
	var f FramingFlag
	if err := f.Set("bogus"); err == nil {
		t.Fatal("Set(bogus) should have failed")
	}
}

func TestLevelFlag_SetAndDefault(t *testing.T) {
	var f LevelFlag
	if f.Level() != 6 {
		t.Fatalf("zero-value Level() = %d, want 6", f.Level())
	}
	if err := f.Set("9"); err != nil {
		t.Fatalf("Set(9): %v", err)
	}
	if f.Level() != 9 {
		t.Fatalf("Level() = %d, want 9", f.Level())
	}
}

func TestLevelFlag_RejectsOutOfRange(t *testing.T) {
	var f LevelFlag
	if err := f.Set("0"); err == nil {
		t.Fatal("Set(0) should have failed")
	}
	if err := f.Set("10"); err == nil {
		t.Fatal("Set(10) should have failed")
	}
	if err := f.Set("abc"); err == nil {
		t.Fatal("Set(abc) should have failed")
	}
}
