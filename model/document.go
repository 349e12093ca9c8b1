package model

import (
	"github.com/mastercactapus/gcview/coord"
)

// Layer is an ordered run of movements between two layer boundaries.
// Layers in a parsed document are never empty.
type Layer []Movement

// Z will return the height of the layer, taken from the destination
// of its first movement.
func (l Layer) Z() float64 {
	if len(l) == 0 {
		return 0
	}
	return l[0].Dst.Z
}

// PathLength will return the total travel distance of the layer.
func (l Layer) PathLength() float64 {
	var sum float64
	for _, m := range l {
		sum += m.Length()
	}
	return sum
}

// ExtrudedLength will return the travel distance covered with the
// extruder on.
func (l Layer) ExtrudedLength() float64 {
	var sum float64
	for _, m := range l {
		if m.Flags.Has(FlagExtruderOn) {
			sum += m.Length()
		}
	}
	return sum
}

// Document is the parsed form of a gcode program: layers in print
// order, each owning its movements.
type Document struct {
	Layers []Layer
}

// MovementCount will return the number of movements across all layers.
func (d *Document) MovementCount() int {
	var n int
	for _, l := range d.Layers {
		n += len(l)
	}
	return n
}

// Movements will return all movements concatenated in layer order,
// which is the exact order they were produced during parsing.
func (d *Document) Movements() []Movement {
	res := make([]Movement, 0, d.MovementCount())
	for _, l := range d.Layers {
		res = append(res, l...)
	}
	return res
}

// PathLength will return the total travel distance of the document.
func (d *Document) PathLength() float64 {
	var sum float64
	for _, l := range d.Layers {
		sum += l.PathLength()
	}
	return sum
}

// ExtrudedLength will return the travel distance covered with the
// extruder on.
func (d *Document) ExtrudedLength() float64 {
	var sum float64
	for _, l := range d.Layers {
		sum += l.ExtrudedLength()
	}
	return sum
}

// Bounds will return the axis-aligned bounding box of all movement
// endpoints.
func (d *Document) Bounds() (min, max coord.Point) {
	var set bool
	for _, l := range d.Layers {
		for _, m := range l {
			if !set {
				min, max = m.Src, m.Src
				set = true
			}
			min = min.Min(m.Src).Min(m.Dst)
			max = max.Max(m.Src).Max(m.Dst)
		}
	}
	return min, max
}
