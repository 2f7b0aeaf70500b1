package onboarding

import "strings"

// StringSet is a multi-select value. Entries are trimmed, blanks are
// ignored and duplicates collapse. Values keeps first-insertion order so
// payloads are deterministic, but callers must not rely on it.
type StringSet struct {
	items []string
}

func NewStringSet(values ...string) StringSet {
	var s StringSet
	for _, v := range values {
		s.Add(v)
	}
	return s
}

// Add inserts v and reports whether the set changed.
func (s *StringSet) Add(v string) bool {
	v = strings.TrimSpace(v)
	if v == "" || s.Has(v) {
		return false
	}
	s.items = append(s.items, v)
	return true
}

// Remove deletes v and reports whether the set changed.
func (s *StringSet) Remove(v string) bool {
	v = strings.TrimSpace(v)
	for i, item := range s.items {
		if item == v {
			s.items = append(s.items[:i:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

// Toggle adds v when absent and removes it when present.
func (s *StringSet) Toggle(v string) {
	if !s.Remove(v) {
		s.Add(v)
	}
}

func (s StringSet) Has(v string) bool {
	v = strings.TrimSpace(v)
	for _, item := range s.items {
		if item == v {
			return true
		}
	}
	return false
}

func (s StringSet) Len() int { return len(s.items) }

// Values returns a copy of the entries. It is nil for an empty set.
func (s StringSet) Values() []string {
	if len(s.items) == 0 {
		return nil
	}
	return append([]string(nil), s.items...)
}

func (s *StringSet) Clear() { s.items = nil }
