package ast

import "github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/template"

// Flag is a single parsed flag/env-value/artifact-name template: the raw
// string plus its chunk sequence and the set of variable names it
// references.
type Flag struct {
	Raw      string
	Chunks   []template.Chunk
	RefNames map[string]bool
}

// NewFlag parses raw into a Flag. Errors here are template.ParseError
// values and are reported as a configuration error by the caller building
// the feature table.
func NewFlag(raw string) (*Flag, error) {
	chunks, refs, err := template.Parse(raw)
	if err != nil {
		return nil, err
	}
	return &Flag{Raw: raw, Chunks: chunks, RefNames: refs}, nil
}

// FeaturePredicate is a with_feature/not_feature pair: satisfied iff the
// enabled set is a superset of Features and disjoint from NotFeatures.
type FeaturePredicate struct {
	Features    []string
	NotFeatures []string
}

func (p FeaturePredicate) Satisfied(enabled map[string]bool) bool {
	for _, f := range p.Features {
		if !enabled[f] {
			return false
		}
	}
	for _, f := range p.NotFeatures {
		if enabled[f] {
			return false
		}
	}
	return true
}

// FeaturePredicates is satisfied iff it is empty or at least one member
// predicate is satisfied.
type FeaturePredicates []FeaturePredicate

func (ps FeaturePredicates) Satisfied(enabled map[string]bool) bool {
	if len(ps) == 0 {
		return true
	}
	for _, p := range ps {
		if p.Satisfied(enabled) {
			return true
		}
	}
	return false
}

// FlagGroup holds either a list of plain flags or a list of nested
// flag-groups -- never both, checked at expand time, see expand package --
// plus its gating predicates and optional iteration variable.
type FlagGroup struct {
	Flags  []*Flag
	Groups []*FlagGroup

	IterateOver string // "" means no iteration

	ExpandIfAllAvailable  []string
	ExpandIfNoneAvailable []string
	ExpandIfTrue          string // "" means unset
	ExpandIfFalse         string // "" means unset

	HasExpandIfEqual   bool
	ExpandIfEqualVar   string
	ExpandIfEqualValue string
}

// FlagSet gates a list of flag-groups by the actions it applies to and a
// with_feature predicate list.
type FlagSet struct {
	Actions              map[string]bool
	ExpandIfAllAvailable []string
	WithFeatures         FeaturePredicates
	FlagGroups           []*FlagGroup
}

func (fs *FlagSet) AppliesToAction(action string) bool {
	return fs.Actions[action]
}

// EnvEntry is a single (key, value-template) binding inside an EnvSet.
type EnvEntry struct {
	Key   string
	Value *Flag
}

// EnvSet gates an ordered list of env entries the same way a FlagSet gates
// flag-groups.
type EnvSet struct {
	Actions      map[string]bool
	WithFeatures FeaturePredicates
	Entries      []*EnvEntry
}

func (es *EnvSet) AppliesToAction(action string) bool {
	return es.Actions[action]
}
