// Package letters holds English letter frequency weights and the word scorer.
package letters

// Bucket groups letters that share a frequency weight.
type Bucket struct {
	Weight  int
	Letters string
}

// Table lists letter frequency weights for English, highest first.
// Buckets are disjoint.
var Table = [...]Bucket{
	{12000, "e"},
	{9000, "t"},
	{8000, "ainos"},
	{6400, "h"},
	{6200, "r"},
	{4400, "d"},
	{4000, "l"},
	{3400, "u"},
	{3000, "cm"},
	{2500, "f"},
	{2000, "wy"},
	{1700, "gp"},
	{1600, "b"},
	{1200, "v"},
	{800, "k"},
	{500, "q"},
	{400, "jx"},
	{200, "z"},
}

var weights = buildWeights()

func buildWeights() [26]int {
	var w [26]int
	for _, bucket := range Table {
		for i := 0; i < len(bucket.Letters); i++ {
			idx := bucket.Letters[i] - 'a'
			if w[idx] == 0 {
				w[idx] = bucket.Weight
			}
		}
	}
	return w
}

// Weight returns the frequency weight of a lowercase letter, or 0.
func Weight(b byte) int {
	if b < 'a' || b > 'z' {
		return 0
	}
	return weights[b-'a']
}

// Score sums the weights of the distinct letters in word.
// Repeated letters count once, so "three" is not rewarded for its second 'e'.
func Score(word string) int {
	var seen [26]bool
	total := 0
	for i := 0; i < len(word); i++ {
		b := word[i]
		if b < 'a' || b > 'z' {
			continue
		}
		if seen[b-'a'] {
			continue
		}
		seen[b-'a'] = true
		total += weights[b-'a']
	}
	return total
}
