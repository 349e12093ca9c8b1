package gcode

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mastercactapus/gcview/model"
)

func TestTransition_Markers(t *testing.T) {
	f := transition(0, "", "(<loop>")
	assert.True(t, f.Has(model.FlagLoop))
	f = transition(f, "", "(</loop>)")
	assert.False(t, f.Has(model.FlagLoop))

	f = transition(0, "", "(<perimeter> inner )")
	assert.True(t, f.Has(model.FlagPerimeter))
	assert.False(t, f.Has(model.FlagPerimeterOuter))

	f = transition(0, "", "(<perimeter> outer )")
	assert.True(t, f.Has(model.FlagPerimeter))
	assert.True(t, f.Has(model.FlagPerimeterOuter))

	f = transition(f, "", "(</perimeter>)")
	assert.False(t, f.Has(model.FlagPerimeter))
	assert.False(t, f.Has(model.FlagPerimeterOuter))

	f = transition(0, "", "(<surroundingLoop>)")
	assert.True(t, f.Has(model.FlagSurroundLoop))
	f = transition(f, "", "(</surroundingLoop>)")
	assert.False(t, f.Has(model.FlagSurroundLoop))
}

func TestTransition_Words(t *testing.T) {
	f := transition(0, "M101", "")
	assert.True(t, f.Has(model.FlagExtruderOn))
	f = transition(f, "M103", "")
	assert.False(t, f.Has(model.FlagExtruderOn))

	// unknown words leave flags alone
	f = transition(model.FlagLoop, "G92", "")
	assert.Equal(t, model.FlagLoop, f)
}

func TestTransition_OneRulePerCommand(t *testing.T) {
	// a comment marker outranks the word on the same command; the
	// extruder stays on
	f := transition(model.FlagExtruderOn, "M103", "(<loop>")
	assert.True(t, f.Has(model.FlagLoop))
	assert.True(t, f.Has(model.FlagExtruderOn))

	// "outer" means nothing without the perimeter marker
	f = transition(0, "", "( outer )")
	assert.Equal(t, model.Flag(0), f)

	// case matters
	f = transition(0, "", "(<LOOP>")
	assert.Equal(t, model.Flag(0), f)
}

func TestIsMotionWord(t *testing.T) {
	assert.True(t, isMotionWord("G1"))
	assert.True(t, isMotionWord("G2"))
	assert.True(t, isMotionWord("G3"))
	assert.False(t, isMotionWord("G0"))
	assert.False(t, isMotionWord("M101"))
	assert.False(t, isMotionWord(""))
}
