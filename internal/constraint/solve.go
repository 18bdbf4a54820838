package constraint

// Solve returns the words that satisfy every constraint, in input order.
// An empty constraint set keeps every word.
func Solve(cs []Constraint, words []string) []string {
	out := make([]string, 0, len(words))
	for _, word := range words {
		if MatchAll(cs, word) {
			out = append(out, word)
		}
	}
	return out
}

// MatchAll reports whether word satisfies all constraints.
func MatchAll(cs []Constraint, word string) bool {
	for _, c := range cs {
		if !c.Match(word) {
			return false
		}
	}
	return true
}
