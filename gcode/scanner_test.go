package gcode

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func readAllLines(t *testing.T, data string) []Command {
	cmds, err := ReadAll(NewScanner(strings.NewReader(data)))
	assert.NoError(t, err)
	return cmds
}

func TestScanner(t *testing.T) {
	cmds := readAllLines(t, "G1 X0 Y0 Z0\nM101\nG1 X1 Y0 Z0 E1\n")
	if assert.Len(t, cmds, 3) {
		assert.Equal(t, "G1", cmds[0].Word)
		assert.Equal(t, "M101", cmds[1].Word)
		assert.True(t, cmds[2].Args.Has('E'))
	}
}

func TestScanner_LineEndings(t *testing.T) {
	// CRLF does not produce a phantom blank line, and lone \r works
	// as a terminator too
	cmds := readAllLines(t, "G1 X0 Y0 Z0\r\nM101\rM103\n")
	if assert.Len(t, cmds, 3) {
		assert.Equal(t, "G1", cmds[0].Word)
		assert.Equal(t, "M101", cmds[1].Word)
		assert.Equal(t, "M103", cmds[2].Word)
	}
}

func TestScanner_SkipsBlank(t *testing.T) {
	cmds := readAllLines(t, "\n\n  \nG1 X0 Y0 Z0\n\t\nM103")
	if assert.Len(t, cmds, 2) {
		assert.Equal(t, "G1", cmds[0].Word)
		assert.Equal(t, "M103", cmds[1].Word)
	}
}

func TestScanner_Empty(t *testing.T) {
	s := NewScanner(strings.NewReader(""))
	_, err := s.Read()
	assert.Equal(t, io.EOF, err)
}

func TestScanner_ErrLine(t *testing.T) {
	// line numbers count physical lines, including skipped blanks
	s := NewScanner(strings.NewReader("G1 X0 Y0 Z0\n  \nG1 X1 E1.2.3\n"))
	_, err := s.Read()
	assert.NoError(t, err)

	_, err = s.Read()
	assert.Error(t, err)
	perr, ok := err.(*ParseError)
	if assert.True(t, ok) {
		assert.Equal(t, 3, perr.Line)
		assert.Equal(t, "G1 X1 E1.2.3", perr.Text)
		assert.Contains(t, perr.Error(), "line 3")
		assert.Contains(t, perr.Error(), `"E1.2.3"`)
	}
}

func TestCommandsReader(t *testing.T) {
	r := &CommandsReader{Commands: []Command{
		{Word: "G1"},
		{Word: "M101"},
	}}
	c, err := r.Read()
	assert.NoError(t, err)
	assert.Equal(t, "G1", c.Word)
	c, err = r.Read()
	assert.NoError(t, err)
	assert.Equal(t, "M101", c.Word)
	_, err = r.Read()
	assert.Equal(t, io.EOF, err)
}
