package filters

import (
	"fmt"
	"slices"
)

// GroupKeyField is the output field that carries a group's key.
const GroupKeyField = "_id"

// UnknownFieldPolicy decides what happens to FilterSpec.Fields entries that
// the schema does not list as pass-through.
type UnknownFieldPolicy int

const (
	// RejectUnknown fails with ErrUnknownFilterField.
	RejectUnknown UnknownFieldPolicy = iota

	// PassUnknown compiles them into equality conditions on a field of the
	// same name.
	PassUnknown
)

func (p UnknownFieldPolicy) String() string {
	switch p {
	case RejectUnknown:
		return "reject"
	case PassUnknown:
		return "pass"
	default:
		return fmt.Sprintf("UnknownFieldPolicy(%d)", int(p))
	}
}

// ParseUnknownFieldPolicy parses "reject" or "pass".
func ParseUnknownFieldPolicy(s string) (UnknownFieldPolicy, error) {
	switch s {
	case "", "reject":
		return RejectUnknown, nil
	case "pass":
		return PassUnknown, nil
	default:
		return RejectUnknown, fmt.Errorf("unknown field policy %q", s)
	}
}

// RangeField is the target of one logical range filter.
type RangeField struct {
	Target   string
	Temporal bool
}

// Schema describes how the filters of one collection map onto its documents.
type Schema struct {
	// Name identifies the collection in error messages.
	Name string

	// Ranges maps logical range names to their target fields.
	Ranges map[string]RangeField

	// Categories maps logical categorical names to their target fields.
	Categories map[string]string

	// PassThrough lists target fields that may be filtered by equality
	// through FilterSpec.Fields.
	PassThrough []string

	// Fields lists the document fields known to exist. Aggregations are
	// validated against it; an empty list disables the check.
	Fields []string

	// RecencyField is the field limited reads are sorted by, newest first.
	RecencyField string

	UnknownFields UnknownFieldPolicy
}

// Validate checks that every logical filter resolves to its own target field.
func (s Schema) Validate() error {
	owners := make(map[string]string)
	claim := func(logical, target string) error {
		if target == "" {
			return fmt.Errorf("%w: schema %q maps %q to an empty field", ErrInvalidPipeline, s.Name, logical)
		}
		if owner, taken := owners[target]; taken {
			return fmt.Errorf("%w: schema %q maps both %q and %q to %q",
				ErrDuplicateTarget, s.Name, owner, logical, target)
		}
		owners[target] = logical
		return nil
	}

	for _, name := range sortedKeys(s.Ranges) {
		if err := claim(name, s.Ranges[name].Target); err != nil {
			return err
		}
	}
	for _, name := range sortedKeys(s.Categories) {
		if err := claim(name, s.Categories[name]); err != nil {
			return err
		}
	}
	for _, field := range s.PassThrough {
		if err := claim(field, field); err != nil {
			return err
		}
	}
	return nil
}

// HasField reports whether field is a known document field. The group key
// output field is always known.
func (s Schema) HasField(field string) bool {
	if field == GroupKeyField || len(s.Fields) == 0 {
		return true
	}
	return slices.Contains(s.Fields, field)
}

func (s Schema) allowsPassThrough(field string) bool {
	return s.UnknownFields == PassUnknown || slices.Contains(s.PassThrough, field)
}
