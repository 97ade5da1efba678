package filters

import (
	"fmt"
)

// CompileSet compiles a candidate list. An empty list yields nil, one value
// yields an Equality and more values yield a Membership in input order.
func CompileSet(values []string) Condition {
	switch len(values) {
	case 0:
		return nil
	case 1:
		return Equality{Value: values[0]}
	default:
		in := make([]string, len(values))
		copy(in, values)
		return Membership{Values: in}
	}
}

// CompileSets compiles every logical categorical filter through fields.
// Names missing from fields are ErrUnknownFilterField.
func CompileSets(sets map[string][]string, fields map[string]string) (CompiledPredicate, error) {
	var out CompiledPredicate
	for _, name := range sortedKeys(sets) {
		target, ok := fields[name]
		if !ok {
			return CompiledPredicate{}, fieldError(name, fmt.Errorf("%w: not a categorical filter", ErrUnknownFilterField))
		}

		cond := CompileSet(sets[name])
		if cond == nil {
			continue
		}

		var err error
		out, err = out.with(target, cond)
		if err != nil {
			return CompiledPredicate{}, fieldError(name, err)
		}
	}
	return out, nil
}
