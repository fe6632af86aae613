package benchmark

import (
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/pkg/errors"
)

// MeasKind enumerates the supported measurement units
type MeasKind int

const (
	// MeasSeconds is a time measurement in seconds
	MeasSeconds MeasKind = iota
	// MeasMilliseconds is a time measurement in milliseconds
	MeasMilliseconds
	// MeasMicroseconds is a time measurement in microseconds
	MeasMicroseconds
	// MeasNanoseconds is a time measurement in nanoseconds
	MeasNanoseconds
	// MeasCustom is a free-form unit carrying its own name
	MeasCustom
)

// Unit is the unit of one measurement
type Unit struct {
	Kind MeasKind
	// Name is the unit string for MeasCustom, empty otherwise
	Name string
}

// String converts a Unit to its display form
func (u Unit) String() string {
	switch u.Kind {
	case MeasSeconds:
		return "s"
	case MeasMilliseconds:
		return "ms"
	case MeasMicroseconds:
		return "us"
	case MeasNanoseconds:
		return "ns"
	default:
		return u.Name
	}
}

// IsTime reports whether the unit is one of the time kinds
func (u Unit) IsTime() bool {
	return u.Kind != MeasCustom
}

// ParseUnit maps a unit string to a Unit. Unrecognized strings become
// free-form custom units.
func ParseUnit(s string) Unit {
	switch s {
	case "s", "sec":
		return Unit{Kind: MeasSeconds}
	case "ms":
		return Unit{Kind: MeasMilliseconds}
	case "us", "µs":
		return Unit{Kind: MeasMicroseconds}
	case "ns":
		return Unit{Kind: MeasNanoseconds}
	default:
		return Unit{Kind: MeasCustom, Name: s}
	}
}

// Meas describes one measurement collected for every run.
// Index 0 of a measurement list is always the wall clock; user-defined
// measurements follow. Cmd is the optional extractor command: when empty,
// the captured stdout itself is parsed as the value.
type Meas struct {
	Name string
	Cmd  string
	Unit Unit
}

// WallClock returns the reserved wall-clock measurement descriptor
func WallClock() Meas {
	return Meas{Name: "wall clock", Unit: Unit{Kind: MeasSeconds}}
}

// MeasList builds the shared measurement descriptor list: the wall clock
// followed by the user-defined measurements. Names must be unique.
func MeasList(customs []Meas) ([]Meas, error) {
	list := make([]Meas, 0, len(customs)+1)
	list = append(list, WallClock())
	list = append(list, customs...)

	names := mapset.NewThreadUnsafeSet[string]()
	for _, m := range list {
		if m.Name == "" {
			return nil, errors.Wrap(ErrConfig, "measurement name is empty")
		}
		if !names.Add(m.Name) {
			return nil, errors.Wrapf(ErrConfig, "duplicate measurement name %q", m.Name)
		}
	}

	return list, nil
}
