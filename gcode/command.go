package gcode

import (
	"sort"
	"strconv"
	"strings"
)

// Value is a single argument value. Valid is false when the argument
// letter appeared with no numeric suffix.
type Value struct {
	Num   float64
	Valid bool
}

// Args maps argument letters to values. When a letter repeats within
// one command the last occurrence wins.
type Args map[byte]Value

// Num returns the numeric value for letter. ok is false when the
// letter is absent or carried no number.
func (a Args) Num(letter byte) (val float64, ok bool) {
	v, ok := a[letter]
	return v.Num, ok && v.Valid
}

// Has reports whether letter appeared at all, with or without a
// number.
func (a Args) Has(letter byte) bool {
	_, ok := a[letter]
	return ok
}

// Command is one tokenized line of gcode.
type Command struct {
	// Word is the first field of the line (e.g. "G1"). It is empty
	// for comment-only lines.
	Word string

	Args Args

	// Comment is the raw comment text, delimiter included. It is
	// empty when the line had none.
	Comment string
}

// Blank reports whether the command carries no information at all.
func (c Command) Blank() bool {
	return c.Word == "" && len(c.Args) == 0 && c.Comment == ""
}

func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'f', 3, 64)
	if strings.ContainsRune(s, '.') {
		s = strings.TrimRight(s, "0")
	}
	return strings.TrimRight(s, ".")
}

// String reassembles the command as a single line. Arguments are
// printed in letter order, so the result is stable but not
// necessarily byte-identical to the original text.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+2)
	if c.Word != "" {
		parts = append(parts, c.Word)
	}

	letters := make([]byte, 0, len(c.Args))
	for l := range c.Args {
		letters = append(letters, l)
	}
	sort.Slice(letters, func(i, j int) bool { return letters[i] < letters[j] })
	for _, l := range letters {
		v := c.Args[l]
		if v.Valid {
			parts = append(parts, string(l)+formatFloat(v.Num))
		} else {
			parts = append(parts, string(l))
		}
	}

	if c.Comment != "" {
		parts = append(parts, c.Comment)
	}
	return strings.Join(parts, " ")
}

// ScanLine tokenizes one physical line into a Command.
func ScanLine(line string) (Command, error) {
	command, comment := splitComment(line)

	fields := strings.Fields(command)
	if len(fields) == 0 {
		return Command{Comment: comment}, nil
	}

	args, err := scanArgs(fields[1:])
	if err != nil {
		return Command{}, err
	}
	return Command{Word: fields[0], Args: args, Comment: comment}, nil
}

// splitComment separates the command portion of a line from its
// comment. A semicolon starts a comment running to the end of the
// line; an open parenthesis ahead of it claims the rest of the line
// too, so its text ends up in front.
func splitComment(line string) (command, comment string) {
	command = line
	if i := strings.IndexByte(command, ';'); i >= 0 {
		command, comment = command[:i], command[i:]
	}
	if i := strings.IndexByte(command, '('); i >= 0 {
		command, comment = command[:i], command[i:]+comment
	}
	return command, comment
}

func scanArgs(tokens []string) (Args, error) {
	if len(tokens) == 0 {
		return nil, nil
	}
	args := make(Args, len(tokens))
	for _, tok := range tokens {
		if tok[1:] == "" {
			args[tok[0]] = Value{}
			continue
		}
		num, err := strconv.ParseFloat(tok[1:], 64)
		if err != nil {
			return nil, &ArgumentError{Token: tok, Err: err}
		}
		args[tok[0]] = Value{Num: num, Valid: true}
	}
	return args, nil
}
