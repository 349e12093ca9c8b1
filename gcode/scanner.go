package gcode

import (
	"bufio"
	"bytes"
	"io"
)

// CommandReader is a pull-based stream of commands. Read returns
// io.EOF after the last command.
type CommandReader interface {
	Read() (Command, error)
}

// CommandsReader replays a fixed slice of commands.
type CommandsReader struct {
	Commands []Command
	pos      int
}

var _ CommandReader = &CommandsReader{}

func (r *CommandsReader) Read() (Command, error) {
	if r.pos == len(r.Commands) {
		return Command{}, io.EOF
	}
	r.pos++
	return r.Commands[r.pos-1], nil
}

// ReadAll drains r and returns the commands in order.
func ReadAll(r CommandReader) ([]Command, error) {
	var cmds []Command
	for {
		c, err := r.Read()
		if err == io.EOF {
			return cmds, nil
		}
		if err != nil {
			return nil, err
		}
		cmds = append(cmds, c)
	}
}

func isSep(c byte) bool { return c == '\n' || c == '\r' }

// splitLines is a bufio.SplitFunc handling \n, \r and \r\n line
// terminators. A separator byte directly followed by a second
// separator byte is consumed as one terminator, so CRLF files do not
// produce a phantom blank line after every real one.
func splitLines(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	i := bytes.IndexAny(data, "\r\n")
	if i < 0 {
		if atEOF {
			return len(data), data, nil
		}
		return 0, nil, nil
	}
	if i+1 == len(data) && !atEOF {
		// can't tell yet whether the next byte pairs with this
		// separator
		return 0, nil, nil
	}
	advance = i + 1
	if i+1 < len(data) && isSep(data[i+1]) {
		advance++
	}
	return advance, data[:i], nil
}

// Scanner reads gcode from a stream one command at a time, skipping
// lines that carry no information.
type Scanner struct {
	scan *bufio.Scanner
	line int
}

var _ CommandReader = &Scanner{}

func NewScanner(r io.Reader) *Scanner {
	sc := bufio.NewScanner(r)
	sc.Split(splitLines)
	return &Scanner{scan: sc}
}

// Line returns the number of the last physical line consumed,
// counting from 1.
func (s *Scanner) Line() int { return s.line }

// Read returns the next non-blank command. A tokenization failure is
// returned as a *ParseError carrying the line number and raw text.
// io.EOF signals the end of input.
func (s *Scanner) Read() (Command, error) {
	for s.scan.Scan() {
		s.line++
		text := s.scan.Text()
		cmd, err := ScanLine(text)
		if err != nil {
			return Command{}, &ParseError{Line: s.line, Text: text, Err: err}
		}
		if cmd.Blank() {
			continue
		}
		return cmd, nil
	}
	if err := s.scan.Err(); err != nil {
		return Command{}, err
	}
	return Command{}, io.EOF
}
