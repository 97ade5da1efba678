package filters

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Entry is one target field and its condition.
type Entry struct {
	Field     string
	Condition Condition
}

// CompiledPredicate is a conjunction of conditions keyed by target field.
// A target field appears at most once. The zero value is an empty predicate
// that matches every document.
//
// CompiledPredicate values are immutable: every operation that adds entries
// returns a new predicate.
type CompiledPredicate struct {
	entries []Entry
}

// NewPredicate builds a predicate from entries, rejecting duplicate fields
// and nil conditions.
func NewPredicate(entries ...Entry) (CompiledPredicate, error) {
	var p CompiledPredicate
	for _, e := range entries {
		next, err := p.with(e.Field, e.Condition)
		if err != nil {
			return CompiledPredicate{}, err
		}
		p = next
	}
	return p, nil
}

// Len returns the number of target fields in the predicate.
func (p CompiledPredicate) Len() int {
	return len(p.entries)
}

// IsEmpty reports whether the predicate matches every document.
func (p CompiledPredicate) IsEmpty() bool {
	return len(p.entries) == 0
}

// Get returns the condition on field.
func (p CompiledPredicate) Get(field string) (Condition, bool) {
	for _, e := range p.entries {
		if e.Field == field {
			return e.Condition, true
		}
	}
	return nil, false
}

// Fields returns the target fields in compilation order.
func (p CompiledPredicate) Fields() []string {
	fields := make([]string, len(p.entries))
	for i, e := range p.entries {
		fields[i] = e.Field
	}
	return fields
}

// Entries returns a copy of the entries in compilation order.
func (p CompiledPredicate) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

func (p CompiledPredicate) with(field string, cond Condition) (CompiledPredicate, error) {
	if field == "" {
		return CompiledPredicate{}, fmt.Errorf("%w: empty target field", ErrInvalidFilterValue)
	}
	if cond == nil {
		return CompiledPredicate{}, fmt.Errorf("%w: nil condition for %q", ErrInvalidFilterValue, field)
	}
	if _, exists := p.Get(field); exists {
		return CompiledPredicate{}, fmt.Errorf("%w: %q", ErrDuplicateTarget, field)
	}
	entries := make([]Entry, len(p.entries), len(p.entries)+1)
	copy(entries, p.entries)
	return CompiledPredicate{entries: append(entries, Entry{Field: field, Condition: cond})}, nil
}

// Merge unions predicate fragments in argument order. Fragments must target
// disjoint fields; an overlap is ErrDuplicateTarget, never a silent overwrite.
func Merge(fragments ...CompiledPredicate) (CompiledPredicate, error) {
	size := 0
	for _, f := range fragments {
		size += f.Len()
	}

	merged := CompiledPredicate{entries: make([]Entry, 0, size)}
	seen := make(map[string]struct{}, size)
	for _, f := range fragments {
		for _, e := range f.entries {
			if _, dup := seen[e.Field]; dup {
				return CompiledPredicate{}, fmt.Errorf("%w: %q", ErrDuplicateTarget, e.Field)
			}
			seen[e.Field] = struct{}{}
			merged.entries = append(merged.entries, e)
		}
	}
	return merged, nil
}

// MarshalJSON renders the predicate as an object keyed by target field, in
// compilation order.
func (p CompiledPredicate) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range p.entries {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(e.Field)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(e.Condition)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
