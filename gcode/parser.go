package gcode

import (
	"io"
	"strings"

	"github.com/mastercactapus/gcview/coord"
	"github.com/mastercactapus/gcview/model"
)

// zJump is how far Z must rise between consecutive destinations
// before a new layer is assumed without an explicit marker.
const zJump = 0.1

// Parse reads gcode from r and builds the layered document.
func Parse(r io.Reader) (*model.Document, error) {
	return ReadDocument(NewScanner(r))
}

// ParseString parses gcode held in a string.
func ParseString(data string) (*model.Document, error) {
	return Parse(strings.NewReader(data))
}

// MustParse is ParseString for static input; it panics on error.
func MustParse(data string) *model.Document {
	doc, err := ParseString(data)
	if err != nil {
		panic(err)
	}
	return doc
}

// parser carries the machine state tracked across one document read.
type parser struct {
	pos    coord.Point
	hasPos bool

	eLen float64
	feed float64

	flags    model.Flag
	pending  model.Layer
	newLayer bool

	doc model.Document
}

// ReadDocument consumes commands from r until io.EOF and assembles
// the document.
func ReadDocument(r CommandReader) (*model.Document, error) {
	var p parser
	for {
		cmd, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		p.run(cmd)
	}
	p.closeLayer()

	if len(p.doc.Layers) == 0 {
		return nil, &ParseError{Err: ErrNoMotion}
	}
	return &p.doc, nil
}

// closeLayer moves the pending movements into the document as a
// finished layer. Closing with nothing pending is a no-op, so layers
// are never empty.
func (p *parser) closeLayer() {
	p.newLayer = false
	if len(p.pending) == 0 {
		return
	}
	p.doc.Layers = append(p.doc.Layers, p.pending)
	p.pending = nil
}

// destination returns the point cmd moves to. Only a linear move
// carrying numeric X, Y and Z values produces one.
func destination(cmd Command) (coord.Point, bool) {
	if cmd.Word != wordLinearMove {
		return coord.Point{}, false
	}
	x, ok := cmd.Args.Num('X')
	if !ok {
		return coord.Point{}, false
	}
	y, ok := cmd.Args.Num('Y')
	if !ok {
		return coord.Point{}, false
	}
	z, ok := cmd.Args.Num('Z')
	if !ok {
		return coord.Point{}, false
	}
	return coord.Point{X: x, Y: y, Z: z}, true
}

// isNewLayer reports whether cmd's own line ends the current layer:
// an explicit layer marker in its comment, or a motion rising more
// than zJump above the previous position.
func (p *parser) isNewLayer(cmd Command, dst coord.Point) bool {
	if strings.Contains(cmd.Comment, MarkerLayer) {
		return true
	}
	return isMotionWord(cmd.Word) && dst.Z-p.pos.Z > zJump
}

func (p *parser) run(cmd Command) {
	p.flags = transition(p.flags, cmd.Word, cmd.Comment)

	dst, ok := destination(cmd)
	if ok {
		if p.hasPos && !p.pos.Equal(dst) {
			var deltaE float64
			if e, has := cmd.Args.Num('E'); has {
				deltaE = e - p.eLen
			}
			feed := p.feed
			if f, has := cmd.Args.Num('F'); has {
				feed = f
			}
			if p.newLayer {
				// a layer marker on an earlier line ends the
				// previous layer just before this movement
				p.closeLayer()
			}
			p.pending = append(p.pending, model.Movement{
				Src:      p.pos,
				Dst:      dst,
				DeltaE:   deltaE,
				FeedRate: feed,
				Flags:    p.flags,
			})
		}
		if p.hasPos && p.isNewLayer(cmd, dst) {
			p.closeLayer()
		}
		p.pos = dst
		p.hasPos = true
	} else if strings.Contains(cmd.Comment, MarkerLayer) {
		// no movement to attach the boundary to; it takes effect
		// ahead of the next one
		p.newLayer = true
	}

	if e, ok := cmd.Args.Num('E'); ok {
		p.eLen = e
	}
	if f, ok := cmd.Args.Num('F'); ok {
		p.feed = f
	}
}
