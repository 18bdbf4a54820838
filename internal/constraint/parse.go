package constraint

import (
	"errors"
	"fmt"
	"strings"

	"github.com/verte-zerg/wordsieve/internal/model"
)

// ErrInvalidNotation is returned for constraint text that cannot be parsed.
var ErrInvalidNotation = errors.New("invalid constraint notation")

// Notation collects constraint notation from flags and the config file.
type Notation struct {
	Absent   string
	Present  []string
	Perfect  []string
	Feedback []string
}

// Build parses every part of the notation. Constraints keep the order
// absent, present, perfect, feedback.
func Build(n Notation) ([]Constraint, error) {
	var cs []Constraint
	absent, err := ParseAbsent(n.Absent)
	if err != nil {
		return nil, err
	}
	cs = append(cs, absent...)
	for _, text := range n.Present {
		c, err := ParsePresent(text)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	for _, text := range n.Perfect {
		c, err := ParsePerfect(text)
		if err != nil {
			return nil, err
		}
		cs = append(cs, c)
	}
	for _, text := range n.Feedback {
		fb, err := ParseFeedback(text)
		if err != nil {
			return nil, err
		}
		cs = append(cs, fb...)
	}
	return cs, nil
}

// ParseAbsent turns a run of letters such as "stnw" into NotPresent
// constraints. Spaces and commas are ignored.
func ParseAbsent(text string) ([]Constraint, error) {
	var cs []Constraint
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == ' ' || ch == ',' {
			continue
		}
		letter, ok := foldLetter(ch)
		if !ok {
			return nil, fmt.Errorf("%w: absent letter %q", ErrInvalidNotation, ch)
		}
		cs = append(cs, NotPresent{Letter: letter})
	}
	return cs, nil
}

// ParsePresent parses "e", "e:024" or "e:0,2,4".
func ParsePresent(text string) (Present, error) {
	letter, rest, err := splitLetter(text)
	if err != nil {
		return Present{}, err
	}
	c := Present{Letter: letter}
	if rest == "" {
		return c, nil
	}
	positions, err := parsePositions(rest)
	if err != nil {
		return Present{}, fmt.Errorf("%w: present %q: %v", ErrInvalidNotation, text, err)
	}
	c.Exclude = positions
	return c, nil
}

// ParsePerfect parses "l:4".
func ParsePerfect(text string) (Perfect, error) {
	letter, rest, err := splitLetter(text)
	if err != nil {
		return Perfect{}, err
	}
	positions, err := parsePositions(rest)
	if err != nil {
		return Perfect{}, fmt.Errorf("%w: perfect %q: %v", ErrInvalidNotation, text, err)
	}
	if len(positions) != 1 {
		return Perfect{}, fmt.Errorf("%w: perfect %q needs exactly one position", ErrInvalidNotation, text)
	}
	return Perfect{Letter: letter, Position: positions[0]}, nil
}

// ParseFeedback parses "guess:pattern" and derives constraints from it.
func ParseFeedback(text string) ([]Constraint, error) {
	guess, pattern, ok := strings.Cut(strings.TrimSpace(text), ":")
	if !ok {
		return nil, fmt.Errorf("%w: feedback %q must be GUESS:PATTERN", ErrInvalidNotation, text)
	}
	return FromFeedback(guess, pattern)
}

// FromFeedback derives constraints from a guess and its feedback pattern.
// Pattern marks are g (green), y (yellow) and b, x, '.' or '-' (gray).
// A gray letter that is green or yellow elsewhere in the same guess only
// rules out its own position.
func FromFeedback(guess, pattern string) ([]Constraint, error) {
	guess = strings.ToLower(strings.TrimSpace(guess))
	pattern = strings.ToLower(strings.TrimSpace(pattern))
	if len(guess) != model.WordLength || len(pattern) != model.WordLength {
		return nil, fmt.Errorf("%w: feedback %q/%q must be %d characters each", ErrInvalidNotation, guess, pattern, model.WordLength)
	}
	marks := make([]byte, model.WordLength)
	hit := map[byte]bool{}
	for i := 0; i < model.WordLength; i++ {
		if _, ok := foldLetter(guess[i]); !ok {
			return nil, fmt.Errorf("%w: feedback guess %q", ErrInvalidNotation, guess)
		}
		switch pattern[i] {
		case 'g', 'y':
			marks[i] = pattern[i]
			hit[guess[i]] = true
		case 'b', 'x', '.', '-':
			marks[i] = 'b'
		default:
			return nil, fmt.Errorf("%w: feedback mark %q", ErrInvalidNotation, pattern[i])
		}
	}

	var cs []Constraint
	absent := map[byte]bool{}
	for i := 0; i < model.WordLength; i++ {
		letter := guess[i]
		switch marks[i] {
		case 'g':
			cs = append(cs, Perfect{Letter: letter, Position: i})
		case 'y':
			cs = append(cs, Present{Letter: letter, Exclude: []int{i}})
		default:
			if hit[letter] {
				cs = append(cs, Present{Letter: letter, Exclude: []int{i}})
				continue
			}
			if absent[letter] {
				continue
			}
			absent[letter] = true
			cs = append(cs, NotPresent{Letter: letter})
		}
	}
	return cs, nil
}

func splitLetter(text string) (byte, string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, "", fmt.Errorf("%w: empty constraint", ErrInvalidNotation)
	}
	letter, ok := foldLetter(text[0])
	if !ok {
		return 0, "", fmt.Errorf("%w: %q must start with a letter", ErrInvalidNotation, text)
	}
	rest := text[1:]
	if rest == "" {
		return letter, "", nil
	}
	if rest[0] != ':' {
		return 0, "", fmt.Errorf("%w: %q expected ':' after the letter", ErrInvalidNotation, text)
	}
	if len(rest) == 1 {
		return 0, "", fmt.Errorf("%w: %q has no positions after ':'", ErrInvalidNotation, text)
	}
	return letter, rest[1:], nil
}

func parsePositions(text string) ([]int, error) {
	var positions []int
	for i := 0; i < len(text); i++ {
		ch := text[i]
		if ch == ',' || ch == ' ' {
			continue
		}
		if ch < '0' || ch > '9' {
			return nil, fmt.Errorf("position %q is not a digit", ch)
		}
		pos := int(ch - '0')
		if pos >= model.WordLength {
			return nil, fmt.Errorf("position %d out of range 0-%d", pos, model.WordLength-1)
		}
		positions = append(positions, pos)
	}
	if len(positions) == 0 {
		return nil, fmt.Errorf("no positions given")
	}
	return positions, nil
}

func foldLetter(ch byte) (byte, bool) {
	switch {
	case ch >= 'a' && ch <= 'z':
		return ch, true
	case ch >= 'A' && ch <= 'Z':
		return ch + ('a' - 'A'), true
	default:
		return 0, false
	}
}
