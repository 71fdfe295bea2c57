package expand

import (
	"sort"
	"strings"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/ast"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/diags"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/value"
)

// ExpandFlagGroup evaluates a flag-group's gates, resolves its iteration
// variable (explicit or, when allowed, implicit), and expands its children
// -- flags or nested groups, never both -- into out.
func (e *Expander) ExpandFlagGroup(fg *ast.FlagGroup, scope *value.Scope, artifacts value.Expander, out *[]string) error {
	if len(fg.Flags) > 0 && len(fg.Groups) > 0 {
		return diags.NewExpansionError("flag-group declares both flags and nested groups")
	}

	ok, err := e.gatesSatisfied(fg, scope, artifacts)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}

	iterateVar := fg.IterateOver
	if iterateVar == "" {
		seqVars := e.sequenceVarsReferenced(fg, scope, artifacts)
		switch len(seqVars) {
		case 0:
			// no sequence-typed reference: expand once against scope below.
		case 1:
			if !e.AllowImplicitIteration {
				return diags.NewExpansionError(
					"flag-group references sequence variable '%s' with no iterate_over; set an explicit iterate_over (implicit iteration is deprecated)",
					seqVars[0])
			}
			iterateVar = seqVars[0]
		default:
			return diags.NewExpansionError(
				"flag-group references %d sequence variables (%s) with no iterate_over; implicit iteration over more than one sequence is ambiguous",
				len(seqVars), strings.Join(seqVars, ", "))
		}
	}

	if iterateVar == "" {
		return e.expandChildren(fg, scope, artifacts, out)
	}

	v, err := scope.Get(iterateVar, artifacts)
	if err != nil {
		return err
	}
	elems, err := value.SequenceView(v, artifacts)
	if err != nil {
		return err
	}
	for _, elem := range elems {
		childScope := scope.Child(iterateVar, elem)
		if err := e.expandChildren(fg, childScope, artifacts, out); err != nil {
			return err
		}
	}
	return nil
}

func (e *Expander) expandChildren(fg *ast.FlagGroup, scope *value.Scope, artifacts value.Expander, out *[]string) error {
	if len(fg.Groups) > 0 {
		for _, sub := range fg.Groups {
			if err := e.ExpandFlagGroup(sub, scope, artifacts, out); err != nil {
				return err
			}
		}
		return nil
	}
	for _, f := range fg.Flags {
		s, err := e.ExpandTemplate(f.Chunks, scope, artifacts)
		if err != nil {
			return err
		}
		*out = append(*out, s)
	}
	return nil
}

func (e *Expander) gatesSatisfied(fg *ast.FlagGroup, scope *value.Scope, artifacts value.Expander) (bool, error) {
	for _, name := range fg.ExpandIfAllAvailable {
		if !scope.IsAvailable(name, artifacts) {
			return false, nil
		}
	}
	for _, name := range fg.ExpandIfNoneAvailable {
		if scope.IsAvailable(name, artifacts) {
			return false, nil
		}
	}
	if fg.ExpandIfTrue != "" {
		truthy, err := availableAndTruthy(scope, fg.ExpandIfTrue, artifacts)
		if err != nil {
			return false, err
		}
		if !truthy {
			return false, nil
		}
	}
	if fg.ExpandIfFalse != "" {
		truthy, err := availableAndTruthy(scope, fg.ExpandIfFalse, artifacts)
		if err != nil {
			return false, err
		}
		if truthy {
			return false, nil
		}
	}
	if fg.HasExpandIfEqual {
		if !scope.IsAvailable(fg.ExpandIfEqualVar, artifacts) {
			return false, nil
		}
		v, err := scope.Get(fg.ExpandIfEqualVar, artifacts)
		if err != nil {
			return false, err
		}
		s, err := value.StringView(v)
		if err != nil {
			return false, err
		}
		if s != fg.ExpandIfEqualValue {
			return false, nil
		}
	}
	return true, nil
}

func availableAndTruthy(scope *value.Scope, name string, artifacts value.Expander) (bool, error) {
	if !scope.IsAvailable(name, artifacts) {
		return false, nil
	}
	v, err := scope.Get(name, artifacts)
	if err != nil {
		return false, err
	}
	return v.IsTruthy(), nil
}

// sequenceVarsReferenced returns, in sorted order, the names of the
// currently-available sequence-typed variables this flag-group's flags
// reference directly. Used only to resolve implicit iteration.
func (e *Expander) sequenceVarsReferenced(fg *ast.FlagGroup, scope *value.Scope, artifacts value.Expander) []string {
	refs := map[string]bool{}
	for _, f := range fg.Flags {
		for name := range f.RefNames {
			refs[name] = true
		}
	}
	var seqVars []string
	for name := range refs {
		v, err := scope.Get(name, artifacts)
		if err != nil {
			continue
		}
		if isSequenceValue(v) {
			seqVars = append(seqVars, name)
		}
	}
	sort.Strings(seqVars)
	return seqVars
}

func isSequenceValue(v value.Value) bool {
	switch v.(type) {
	case value.StringSequence, value.Sequence, *value.StructureSequence, *value.LazyStringSequence:
		return true
	default:
		return false
	}
}
