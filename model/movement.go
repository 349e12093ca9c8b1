package model

import (
	"strings"

	"github.com/mastercactapus/gcview/coord"
)

// Flag is a bitset of machine state active during a movement.
type Flag uint8

const (
	FlagPerimeter Flag = 1 << iota
	FlagPerimeterOuter
	FlagLoop
	FlagSurroundLoop
	FlagExtruderOn
)

func (f Flag) Set(b Flag) Flag   { return f | b }
func (f Flag) Clear(b Flag) Flag { return f &^ b }
func (f Flag) Has(b Flag) bool   { return f&b == b }

var flagNames = []struct {
	f    Flag
	name string
}{
	{FlagPerimeter, "PERIMETER"},
	{FlagPerimeterOuter, "PERIMETER_OUTER"},
	{FlagLoop, "LOOP"},
	{FlagSurroundLoop, "SURROUND_LOOP"},
	{FlagExtruderOn, "EXTRUDER_ON"},
}

func (f Flag) String() string {
	if f == 0 {
		return "NONE"
	}
	var parts []string
	for _, fn := range flagNames {
		if f.Has(fn.f) {
			parts = append(parts, fn.name)
		}
	}
	return strings.Join(parts, "|")
}

// Movement represents travel between two points and the machine
// state during travel.
type Movement struct {
	Src, Dst coord.Point

	// DeltaE is the change in extrusion length since the previous
	// tracked value.
	DeltaE   float64
	FeedRate float64
	Flags    Flag
}

// Length will return the travel distance of the movement.
func (m Movement) Length() float64 {
	return m.Src.Distance(m.Dst)
}

// Category is the visual class a renderer should assign a movement.
type Category int

const (
	CategoryTravel Category = iota
	CategoryLoop
	CategoryPerimeterOuter
	CategoryPerimeter
	CategoryFill
)

func (c Category) String() string {
	switch c {
	case CategoryTravel:
		return "travel"
	case CategoryLoop:
		return "loop"
	case CategoryPerimeterOuter:
		return "perimeter-outer"
	case CategoryPerimeter:
		return "perimeter"
	case CategoryFill:
		return "fill"
	}
	return "unknown"
}

// Category classifies the movement by its flags.
//
// The precedence is fixed: a movement with the extruder off is always
// travel; otherwise loop wins over outer perimeter, outer perimeter
// over perimeter, and anything else is fill. Renderers rely on this
// order when mapping movements to a visual encoding.
func (m Movement) Category() Category {
	switch {
	case !m.Flags.Has(FlagExtruderOn):
		return CategoryTravel
	case m.Flags.Has(FlagLoop):
		return CategoryLoop
	case m.Flags.Has(FlagPerimeterOuter):
		return CategoryPerimeterOuter
	case m.Flags.Has(FlagPerimeter):
		return CategoryPerimeter
	}
	return CategoryFill
}
