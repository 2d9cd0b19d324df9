package config

import "fmt"

// DomeStyle selects the enclosure variant. Exactly one enclosure and one
// inlet cutting path follow from it.
type DomeStyle int

const (
	// DomeClosedBowl is a sphere shell centred above the legs with three
	// inlet bores cut through it.
	DomeClosedBowl DomeStyle = iota
	// DomeOpenLegacy is the earlier open dome cap; its inlets are cut as
	// vertical cylinders after the ducts are hollowed.
	DomeOpenLegacy
)

var domeStyleNames = map[DomeStyle]string{
	DomeClosedBowl: "closed-bowl",
	DomeOpenLegacy: "open-dome",
}

func (s DomeStyle) String() string {
	if n, ok := domeStyleNames[s]; ok {
		return n
	}
	return fmt.Sprintf("DomeStyle(%d)", int(s))
}

// Valid reports whether s is a known style.
func (s DomeStyle) Valid() bool {
	_, ok := domeStyleNames[s]
	return ok
}

// CutsInletsInDome reports whether inlets are bored by the dome stage
// rather than after hollowing.
func (s DomeStyle) CutsInletsInDome() bool {
	return s == DomeClosedBowl
}

func (s DomeStyle) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDomeStyle, int(s))
	}
	return []byte(s.String()), nil
}

func (s *DomeStyle) UnmarshalText(b []byte) error {
	for k, n := range domeStyleNames {
		if n == string(b) {
			*s = k
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrInvalidDomeStyle, string(b))
}
