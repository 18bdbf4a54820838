package constraint

import (
	"errors"
	"reflect"
	"testing"
)

func TestPerfectMatch(t *testing.T) {
	c := Perfect{Letter: 'l', Position: 4}
	if !c.Match("hello") {
		t.Fatalf("expected hello to have l at index 4")
	}
	if c.Match("allot") {
		t.Fatalf("expected allot to fail, index 4 is t")
	}
}

func TestPerfectOutOfBoundsFailsClosed(t *testing.T) {
	c := Perfect{Letter: 'a', Position: 7}
	if c.Match("aaaaa") {
		t.Fatalf("expected out of range position to fail")
	}
	if (Perfect{Letter: 'a', Position: -1}).Match("aaaaa") {
		t.Fatalf("expected negative position to fail")
	}
}

func TestPresentMatch(t *testing.T) {
	c := Present{Letter: 'e', Exclude: []int{0, 2, 4}}
	if c.Match("eerie") {
		t.Fatalf("expected eerie to fail, e sits at excluded indexes")
	}
	if c.Match("crate") {
		t.Fatalf("expected crate to fail, e sits at excluded index 4")
	}
	if c.Match("train") {
		t.Fatalf("expected train to fail, no e at all")
	}
	if !c.Match("belly") {
		t.Fatalf("expected belly to pass, e only at index 1")
	}

	bread := Present{Letter: 'e', Exclude: []int{0, 4}}
	if !bread.Match("bread") {
		t.Fatalf("expected bread to pass, e at index 2 is allowed")
	}
	if (Present{Letter: 'e', Exclude: []int{2}}).Match("bread") {
		t.Fatalf("expected bread to fail when index 2 is excluded")
	}
}

func TestPresentFailsWhenAlsoAtExcludedIndex(t *testing.T) {
	// 'e' occurs at 1 (allowed) and 4 (excluded).
	c := Present{Letter: 'e', Exclude: []int{4}}
	if c.Match("geese") {
		t.Fatalf("expected geese to fail despite an allowed occurrence")
	}
}

func TestPresentIgnoresOutOfRangeExclusions(t *testing.T) {
	c := Present{Letter: 'a', Exclude: []int{9}}
	if !c.Match("apple") {
		t.Fatalf("expected out of range exclusion to be ignored")
	}
}

func TestNotPresentMatch(t *testing.T) {
	c := NotPresent{Letter: 's'}
	if c.Match("glass") {
		t.Fatalf("expected glass to fail")
	}
	if !c.Match("bread") {
		t.Fatalf("expected bread to pass")
	}
}

func TestSolvePartitionsWords(t *testing.T) {
	words := []string{"hello", "bevel", "allot", "model", "expel", "shell", "jewel", "knell"}
	cs := []Constraint{
		NotPresent{Letter: 's'},
		NotPresent{Letter: 't'},
		Present{Letter: 'e', Exclude: []int{0, 2, 4}},
		Perfect{Letter: 'l', Position: 4},
	}
	got := Solve(cs, words)
	expected := []string{"bevel", "model", "jewel"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("expected %v, got %v", expected, got)
	}

	kept := map[string]bool{}
	for _, w := range got {
		kept[w] = true
		if !MatchAll(cs, w) {
			t.Fatalf("kept word %q violates a constraint", w)
		}
	}
	for _, w := range words {
		if kept[w] {
			continue
		}
		if MatchAll(cs, w) {
			t.Fatalf("dropped word %q satisfies every constraint", w)
		}
	}
}

func TestSolveKeepsOrderAndEverythingWithoutConstraints(t *testing.T) {
	words := []string{"zebra", "apple", "mango", "apple"}
	got := Solve(nil, words)
	if !reflect.DeepEqual(got, words) {
		t.Fatalf("expected %v, got %v", words, got)
	}
}

func TestSolveIsOrderIndependent(t *testing.T) {
	words := []string{"crane", "cigar", "rebut", "sissy", "humph", "awake"}
	a := []Constraint{NotPresent{Letter: 's'}, Present{Letter: 'a'}, NotPresent{Letter: 'h'}}
	b := []Constraint{a[2], a[0], a[1]}
	if !reflect.DeepEqual(Solve(a, words), Solve(b, words)) {
		t.Fatalf("constraint order changed the result")
	}
}

func TestDescribe(t *testing.T) {
	cs := []Constraint{
		NotPresent{Letter: 's'},
		Present{Letter: 'e', Exclude: []int{0, 2, 4}},
		Present{Letter: 'a'},
		Perfect{Letter: 'l', Position: 4},
	}
	if got := Describe(cs); got != "-s +e:0,2,4 +a =l:4" {
		t.Fatalf("unexpected description: %q", got)
	}
	if got := Describe(nil); got != "(none)" {
		t.Fatalf("unexpected empty description: %q", got)
	}
}

func TestBuild(t *testing.T) {
	cs, err := Build(Notation{
		Absent:  "st N",
		Present: []string{"e:0,2,4"},
		Perfect: []string{"L:4"},
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	expected := []Constraint{
		NotPresent{Letter: 's'},
		NotPresent{Letter: 't'},
		NotPresent{Letter: 'n'},
		Present{Letter: 'e', Exclude: []int{0, 2, 4}},
		Perfect{Letter: 'l', Position: 4},
	}
	if !reflect.DeepEqual(cs, expected) {
		t.Fatalf("expected %v, got %v", expected, cs)
	}
}

func TestParsePresentCompactPositions(t *testing.T) {
	c, err := ParsePresent("e:024")
	if err != nil {
		t.Fatalf("ParsePresent failed: %v", err)
	}
	if !reflect.DeepEqual(c.Exclude, []int{0, 2, 4}) {
		t.Fatalf("unexpected exclusions: %v", c.Exclude)
	}
	bare, err := ParsePresent("e")
	if err != nil {
		t.Fatalf("ParsePresent failed: %v", err)
	}
	if bare.Letter != 'e' || len(bare.Exclude) != 0 {
		t.Fatalf("unexpected bare present: %+v", bare)
	}
}

func TestParseRejectsBadNotation(t *testing.T) {
	bad := []func() error{
		func() error { _, err := ParseAbsent("s1"); return err },
		func() error { _, err := ParsePresent("e:5"); return err },
		func() error { _, err := ParsePresent("e:"); return err },
		func() error { _, err := ParsePresent("ex"); return err },
		func() error { _, err := ParsePerfect("l"); return err },
		func() error { _, err := ParsePerfect("l:12"); return err },
		func() error { _, err := ParsePerfect("4:l"); return err },
		func() error { _, err := ParseFeedback("crane"); return err },
		func() error { _, err := ParseFeedback("crane:bbq"); return err },
		func() error { _, err := ParseFeedback("crane:bbzbb"); return err },
	}
	for i, fn := range bad {
		err := fn()
		if err == nil {
			t.Fatalf("case %d: expected error", i)
		}
		if !errors.Is(err, ErrInvalidNotation) {
			t.Fatalf("case %d: expected ErrInvalidNotation, got %v", i, err)
		}
	}
}

func TestFromFeedback(t *testing.T) {
	cs, err := FromFeedback("crane", "bbybg")
	if err != nil {
		t.Fatalf("FromFeedback failed: %v", err)
	}
	expected := []Constraint{
		NotPresent{Letter: 'c'},
		NotPresent{Letter: 'r'},
		Present{Letter: 'a', Exclude: []int{2}},
		NotPresent{Letter: 'n'},
		Perfect{Letter: 'e', Position: 4},
	}
	if !reflect.DeepEqual(cs, expected) {
		t.Fatalf("expected %v, got %v", expected, cs)
	}
}

func TestFromFeedbackRepeatedGrayLetter(t *testing.T) {
	// The leading e's are gray and the last is green: the word still has an e.
	cs, err := FromFeedback("EERIE", "B.BXG")
	if err != nil {
		t.Fatalf("FromFeedback failed: %v", err)
	}
	expected := []Constraint{
		Present{Letter: 'e', Exclude: []int{0}},
		Present{Letter: 'e', Exclude: []int{1}},
		NotPresent{Letter: 'r'},
		NotPresent{Letter: 'i'},
		Perfect{Letter: 'e', Position: 4},
	}
	if !reflect.DeepEqual(cs, expected) {
		t.Fatalf("expected %v, got %v", expected, cs)
	}
	if !MatchAll(cs, "shove") {
		t.Fatalf("expected shove to satisfy the derived constraints")
	}
}
