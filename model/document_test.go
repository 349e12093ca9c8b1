package model

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercactapus/gcview/coord"
)

func testDocument() *Document {
	return &Document{Layers: []Layer{
		{
			{Src: coord.Point{X: 0, Y: 0, Z: 0}, Dst: coord.Point{X: 3, Y: 4, Z: 0}, Flags: FlagExtruderOn},
			{Src: coord.Point{X: 3, Y: 4, Z: 0}, Dst: coord.Point{X: 3, Y: 4, Z: 1}},
		},
		{
			{Src: coord.Point{X: 3, Y: 4, Z: 1}, Dst: coord.Point{X: -2, Y: 4, Z: 1}, Flags: FlagExtruderOn},
		},
	}}
}

func TestLayer(t *testing.T) {
	doc := testDocument()
	l := doc.Layers[0]

	assert.Equal(t, 0.0, l.Z())
	assert.Equal(t, 6.0, l.PathLength())
	assert.Equal(t, 5.0, l.ExtrudedLength())

	assert.Equal(t, 1.0, doc.Layers[1].Z())
	assert.Equal(t, 0.0, Layer(nil).Z())
}

func TestDocument(t *testing.T) {
	doc := testDocument()

	assert.Equal(t, 3, doc.MovementCount())
	assert.Equal(t, 11.0, doc.PathLength())
	assert.Equal(t, 10.0, doc.ExtrudedLength())
	ms := doc.Movements()
	if assert.Len(t, ms, 3) {
		assert.Equal(t, doc.Layers[0][0], ms[0])
		assert.Equal(t, doc.Layers[1][0], ms[2])
	}

	min, max := doc.Bounds()
	assert.Equal(t, coord.Point{X: -2, Y: 0, Z: 0}, min)
	assert.Equal(t, coord.Point{X: 3, Y: 4, Z: 1}, max)
}

func TestDocument_BoundsEmpty(t *testing.T) {
	var doc Document
	min, max := doc.Bounds()
	assert.Equal(t, coord.Point{}, min)
	assert.Equal(t, coord.Point{}, max)
}
