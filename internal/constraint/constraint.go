// Package constraint models letter constraints and filters word lists against them.
package constraint

import (
	"fmt"
	"strings"
)

// Constraint is a single fact learned from guess feedback.
type Constraint interface {
	// Match reports whether word satisfies the constraint.
	Match(word string) bool
	// String renders the constraint in compact notation.
	String() string
}

// NotPresent requires that the letter occurs nowhere in the word.
type NotPresent struct {
	Letter byte
}

// Present requires the letter somewhere in the word but at none of the
// excluded positions.
type Present struct {
	Letter  byte
	Exclude []int
}

// Perfect requires the letter at an exact zero-based position.
type Perfect struct {
	Letter   byte
	Position int
}

// Match implements Constraint.
func (c NotPresent) Match(word string) bool {
	return strings.IndexByte(word, c.Letter) < 0
}

// Match implements Constraint. An occurrence at an excluded index fails the
// word even when the letter also appears at an allowed index.
func (c Present) Match(word string) bool {
	if strings.IndexByte(word, c.Letter) < 0 {
		return false
	}
	for _, pos := range c.Exclude {
		if pos >= 0 && pos < len(word) && word[pos] == c.Letter {
			return false
		}
	}
	return true
}

// Match implements Constraint. Positions outside the word never match.
func (c Perfect) Match(word string) bool {
	if c.Position < 0 || c.Position >= len(word) {
		return false
	}
	return word[c.Position] == c.Letter
}

func (c NotPresent) String() string {
	return "-" + string(c.Letter)
}

func (c Present) String() string {
	if len(c.Exclude) == 0 {
		return "+" + string(c.Letter)
	}
	parts := make([]string, len(c.Exclude))
	for i, pos := range c.Exclude {
		parts[i] = fmt.Sprintf("%d", pos)
	}
	return "+" + string(c.Letter) + ":" + strings.Join(parts, ",")
}

func (c Perfect) String() string {
	return fmt.Sprintf("=%c:%d", c.Letter, c.Position)
}

// Describe renders a constraint set as a space separated list.
func Describe(cs []Constraint) string {
	if len(cs) == 0 {
		return "(none)"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}
