package filters

import (
	"encoding/json"
	"fmt"
)

// StageKind names a pipeline stage.
type StageKind string

const (
	StageMatch       StageKind = "match"
	StageLimit       StageKind = "limit"
	StageSort        StageKind = "sort"
	StageGroup       StageKind = "group"
	StageReplaceRoot StageKind = "replaceRoot"
)

// Stage is one step of a Pipeline.
type Stage interface {
	Kind() StageKind
}

// Accumulator is the aggregate function of a GroupStage.
type Accumulator string

const (
	AccAvg   Accumulator = "avg"
	AccSum   Accumulator = "sum"
	AccMin   Accumulator = "min"
	AccMax   Accumulator = "max"
	AccCount Accumulator = "count"
	// AccFirst keeps the first value per group; with an empty field it keeps
	// the whole document.
	AccFirst Accumulator = "first"
)

// Valid reports whether a is a supported accumulator.
func (a Accumulator) Valid() bool {
	switch a {
	case AccAvg, AccSum, AccMin, AccMax, AccCount, AccFirst:
		return true
	}
	return false
}

// MatchStage keeps documents whose Field satisfies Condition.
type MatchStage struct {
	Field     string
	Condition Condition
}

func (MatchStage) Kind() StageKind { return StageMatch }

// LimitStage keeps the first N documents.
type LimitStage struct {
	N int
}

func (LimitStage) Kind() StageKind { return StageLimit }

// SortKey orders documents by one field.
type SortKey struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending,omitempty"`
}

// SortStage orders documents by Keys, first key most significant.
type SortStage struct {
	Keys []SortKey
}

func (SortStage) Kind() StageKind { return StageSort }

// GroupStage emits one document per distinct Key value. The key is written
// to GroupKeyField and the aggregate of Field to As.
type GroupStage struct {
	Key         string
	Accumulator Accumulator
	Field       string
	As          string
}

func (GroupStage) Kind() StageKind { return StageGroup }

// ReplaceRootStage replaces each document with its embedded document Field.
type ReplaceRootStage struct {
	Field string
}

func (ReplaceRootStage) Kind() StageKind { return StageReplaceRoot }

// Pipeline is an ordered list of stages.
type Pipeline []Stage

// Group returns the pipeline's group stage.
func (p Pipeline) Group() (GroupStage, bool) {
	for _, s := range p {
		if g, ok := s.(GroupStage); ok {
			return g, true
		}
	}
	return GroupStage{}, false
}

// Validate checks stage ordering: an optional leading limit, match and sort
// stages, exactly one group, then optional replaceRoot and sort stages.
func (p Pipeline) Validate() error {
	groups := 0
	for i, s := range p {
		switch st := s.(type) {
		case LimitStage:
			if i != 0 {
				return fmt.Errorf("%w: limit must be the first stage", ErrInvalidPipeline)
			}
			if st.N <= 0 {
				return fmt.Errorf("%w: limit must be positive, got %d", ErrInvalidPipeline, st.N)
			}
		case MatchStage:
			if groups > 0 {
				return fmt.Errorf("%w: match on %q after group", ErrInvalidPipeline, st.Field)
			}
			if st.Field == "" || st.Condition == nil {
				return fmt.Errorf("%w: incomplete match stage", ErrInvalidPipeline)
			}
		case SortStage:
			if len(st.Keys) == 0 {
				return fmt.Errorf("%w: sort without keys", ErrInvalidPipeline)
			}
		case GroupStage:
			groups++
			if groups > 1 {
				return fmt.Errorf("%w: more than one group stage", ErrInvalidPipeline)
			}
			if err := st.validate(); err != nil {
				return err
			}
		case ReplaceRootStage:
			if groups == 0 {
				return fmt.Errorf("%w: replaceRoot before group", ErrInvalidPipeline)
			}
			if st.Field == "" {
				return fmt.Errorf("%w: replaceRoot without field", ErrInvalidPipeline)
			}
		case nil:
			return fmt.Errorf("%w: nil stage at %d", ErrInvalidPipeline, i)
		default:
			return fmt.Errorf("%w: unsupported stage %T", ErrInvalidPipeline, s)
		}
	}
	if groups == 0 {
		return fmt.Errorf("%w: missing group stage", ErrInvalidPipeline)
	}
	return nil
}

func (g GroupStage) validate() error {
	switch {
	case g.Key == "":
		return fmt.Errorf("%w: group without key", ErrInvalidPipeline)
	case !g.Accumulator.Valid():
		return fmt.Errorf("%w: unsupported accumulator %q", ErrInvalidPipeline, g.Accumulator)
	case g.As == "" || g.As == GroupKeyField:
		return fmt.Errorf("%w: group output field %q", ErrInvalidPipeline, g.As)
	case g.Field == "" && g.Accumulator != AccFirst && g.Accumulator != AccCount:
		return fmt.Errorf("%w: %s needs a field", ErrInvalidPipeline, g.Accumulator)
	}
	return nil
}

// MarshalJSON renders each stage as a single-key object named by its kind.
func (p Pipeline) MarshalJSON() ([]byte, error) {
	out := make([]map[StageKind]any, 0, len(p))
	for _, s := range p {
		var body any
		switch st := s.(type) {
		case MatchStage:
			pred, err := NewPredicate(Entry{Field: st.Field, Condition: st.Condition})
			if err != nil {
				return nil, err
			}
			body = pred
		case LimitStage:
			body = st.N
		case SortStage:
			body = st.Keys
		case GroupStage:
			body = map[string]string{
				"key":                  st.Key,
				string(st.Accumulator): st.Field,
				"as":                   st.As,
			}
		case ReplaceRootStage:
			body = st.Field
		default:
			return nil, fmt.Errorf("%w: unsupported stage %T", ErrInvalidPipeline, s)
		}
		out = append(out, map[StageKind]any{s.Kind(): body})
	}
	return json.Marshal(out)
}
