package gcode

import (
	"strings"

	"github.com/mastercactapus/gcview/model"
)

// Structural markers embedded in comments by slicing tools. They are
// matched as case-sensitive substrings of the raw comment text.
const (
	MarkerLayer          = "(<layer>"
	MarkerPerimeterStart = "(<perimeter>"
	MarkerPerimeterEnd   = "(</perimeter>)"
	MarkerLoopStart      = "(<loop>"
	MarkerLoopEnd        = "(</loop>)"
	MarkerSurroundStart  = "(<surroundingLoop>)"
	MarkerSurroundEnd    = "(</surroundingLoop>)"
)

// Command words with a fixed meaning to the parser.
const (
	wordLinearMove  = "G1"
	wordArcMoveCW   = "G2"
	wordArcMoveCCW  = "G3"
	wordExtruderOn  = "M101"
	wordExtruderOff = "M103"
)

// isMotionWord reports whether word commands travel. It gates the
// z-jump layer heuristic.
func isMotionWord(word string) bool {
	switch word {
	case wordLinearMove, wordArcMoveCW, wordArcMoveCCW:
		return true
	}
	return false
}

// transition applies one command's markers and word to the flag set.
// Rules are checked in a fixed order and at most one fires per
// command, comment markers ahead of word codes.
func transition(f model.Flag, word, comment string) model.Flag {
	switch {
	case strings.Contains(comment, MarkerLoopStart):
		f = f.Set(model.FlagLoop)
	case strings.Contains(comment, MarkerLoopEnd):
		f = f.Clear(model.FlagLoop)
	case strings.Contains(comment, MarkerPerimeterStart):
		f = f.Set(model.FlagPerimeter)
		if strings.Contains(comment, "outer") {
			f = f.Set(model.FlagPerimeterOuter)
		}
	case strings.Contains(comment, MarkerPerimeterEnd):
		f = f.Clear(model.FlagPerimeter | model.FlagPerimeterOuter)
	case strings.Contains(comment, MarkerSurroundStart):
		f = f.Set(model.FlagSurroundLoop)
	case strings.Contains(comment, MarkerSurroundEnd):
		f = f.Clear(model.FlagSurroundLoop)
	case word == wordExtruderOn:
		f = f.Set(model.FlagExtruderOn)
	case word == wordExtruderOff:
		f = f.Clear(model.FlagExtruderOn)
	}
	return f
}
