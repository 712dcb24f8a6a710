package lazy

import (
	"errors"
	"testing"
)

// Fuzz ParseStrategy with arbitrary input. Guards against panics and ensures
// that anything accepted names a valid strategy whose canonical name parses
// back to itself.
func FuzzParseStrategy(f *testing.F) {
	// Seed corpus: canonical names, aliases, noise.
	for _, s := range Strategies() {
		f.Add(s.String())
	}
	f.Add("dcl")
	f.Add("  UNSYNC\t")
	f.Add("")
	f.Add("strategy(3)")
	f.Add("holder\x00")

	f.Fuzz(func(t *testing.T, name string) {
		s, err := ParseStrategy(name)
		if err != nil {
			if !errors.Is(err, ErrUnknownStrategy) {
				t.Fatalf("unexpected error kind: %v", err)
			}
			return
		}
		if !s.Valid() {
			t.Fatalf("accepted %q as invalid strategy %d", name, s)
		}
		back, err := ParseStrategy(s.String())
		if err != nil || back != s {
			t.Fatalf("canonical name %q does not parse back: %v %v", s, back, err)
		}
	})
}
