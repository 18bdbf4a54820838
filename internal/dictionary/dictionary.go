// Package dictionary holds the spelling dictionary and prunes candidates against it.
package dictionary

import (
	"sort"

	"github.com/tchap/go-patricia/v2/patricia"
)

// Set is a membership set of dictionary words backed by a Patricia trie.
type Set struct {
	trie  *patricia.Trie
	count int
}

// New builds a Set from words. Duplicates are stored once.
func New(words []string) *Set {
	s := &Set{trie: patricia.NewTrie()}
	for _, word := range words {
		s.Add(word)
	}
	return s
}

// Add inserts word and reports whether it was new.
func (s *Set) Add(word string) bool {
	if !s.trie.Insert(patricia.Prefix(word), true) {
		return false
	}
	s.count++
	return true
}

// Contains reports exact membership.
func (s *Set) Contains(word string) bool {
	if s == nil || s.trie == nil {
		return false
	}
	return s.trie.Match(patricia.Prefix(word))
}

// Len returns the number of distinct words.
func (s *Set) Len() int {
	if s == nil {
		return 0
	}
	return s.count
}

// Prune keeps the words present in the dictionary, then deduplicates and
// sorts them lexicographically.
func Prune(words []string, set *Set) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, word := range words {
		if !set.Contains(word) {
			continue
		}
		if _, ok := seen[word]; ok {
			continue
		}
		seen[word] = struct{}{}
		out = append(out, word)
	}
	sort.Strings(out)
	return out
}
