// Package pattern turns a comma separated deny-list into an ordered set of
// name fragments and answers which of them occur in a given identifier.
package pattern

import "strings"

// Delimiter separates fragments in a configuration value.
const Delimiter = ","

// Set is an immutable, ordered, de-duplicated collection of non-empty fragments.
// The zero value is an empty set that matches nothing.
type Set struct {
	fragments []string
}

// Split parses raw into a Set. Pieces are trimmed, empty pieces are dropped and
// duplicates keep the position of their first occurrence.
func Split(raw string) Set {
	var out []string
	seen := make(map[string]struct{})
	for _, p := range strings.Split(raw, Delimiter) {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	return Set{fragments: out}
}

// Matches returns every fragment contained in name, in configured order.
// Comparison is a case-sensitive substring test. An empty name never matches.
func (s Set) Matches(name string) []string {
	if name == "" {
		return nil
	}
	var out []string
	for _, f := range s.fragments {
		if strings.Contains(name, f) {
			out = append(out, f)
		}
	}
	return out
}

// Fragments returns a copy of the configured fragments.
func (s Set) Fragments() []string {
	if len(s.fragments) == 0 {
		return nil
	}
	out := make([]string, len(s.fragments))
	copy(out, s.fragments)
	return out
}

func (s Set) Len() int { return len(s.fragments) }

func (s Set) Empty() bool { return len(s.fragments) == 0 }

// String renders the set back in its canonical configuration form.
func (s Set) String() string { return strings.Join(s.fragments, Delimiter) }
