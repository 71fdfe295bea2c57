// Package value implements the Variable Model: typed, immutable variable
// values and the hierarchical scope that looks them up by (possibly dotted)
// name.
package value

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/diags"
)

// Value is the tagged-variant interface every variable value implements.
// The concrete variants are String, Integer, StringSequence, Sequence,
// *StructureValue, *StructureSequence, *LazyStringSequence, and
// *LibraryToLink.
type Value interface {
	IsTruthy() bool
	TypeName() string
}

// Artifact is a single file produced by expanding a tree artifact. It is
// deliberately minimal: the real artifact/filesystem model lives outside
// this engine (see Expander).
type Artifact struct {
	Path string
}

// Expander resolves a tree-artifact reference (used by LibraryToLink's
// object_files field) into its constituent file artifacts. It is supplied
// by the caller; the engine never performs this resolution itself.
type Expander interface {
	Expand(treeArtifactID string) ([]Artifact, error)
}

// String is a scalar string value. Truthy iff non-empty; not iterable.
type String string

func (s String) IsTruthy() bool   { return s != "" }
func (s String) TypeName() string { return "string" }

// Integer is a scalar integer value. Truthy iff nonzero; its string view is
// the decimal representation.
type Integer int64

func (n Integer) IsTruthy() bool   { return n != 0 }
func (n Integer) TypeName() string { return "integer" }

// StringSequence is an iterable sequence of bare strings. Truthy iff
// non-empty.
type StringSequence []string

func (s StringSequence) IsTruthy() bool   { return len(s) > 0 }
func (s StringSequence) TypeName() string { return "string_sequence" }

// Sequence is an iterable sequence of arbitrary values.
//
// The source this engine is modeled on returns values.isEmpty() from its
// is_truthy() for this variant, the opposite of every other sequence
// variant's convention; that looks like a bug (see DESIGN.md). This
// implementation follows the StringSequence/StructureSequence convention:
// truthy iff non-empty.
type Sequence []Value

func (s Sequence) IsTruthy() bool   { return len(s) > 0 }
func (s Sequence) TypeName() string { return "sequence" }

// StringView returns the scalar string view of v. Valid for String and
// Integer; any other variant is an ExpansionError.
func StringView(v Value) (string, error) {
	switch t := v.(type) {
	case String:
		return string(t), nil
	case Integer:
		out, err := convert.Convert(cty.NumberIntVal(int64(t)), cty.String)
		if err != nil {
			return "", diags.NewExpansionError("integer %d has no string view: %s", int64(t), err)
		}
		return out.AsString(), nil
	default:
		return "", diags.NewExpansionError("expected string, found %s", v.TypeName())
	}
}

// SequenceView returns the element sequence of v. Valid for StringSequence,
// Sequence, *StructureSequence (materialized lazily here), and
// *LazyStringSequence (materialized on first call). Any other variant is an
// ExpansionError.
func SequenceView(v Value, expander Expander) ([]Value, error) {
	switch t := v.(type) {
	case StringSequence:
		out := make([]Value, len(t))
		for i, s := range t {
			out[i] = String(s)
		}
		return out, nil
	case Sequence:
		return t, nil
	case *StructureSequence:
		return t.materialize(), nil
	case *LazyStringSequence:
		xs, err := t.resolve()
		if err != nil {
			return nil, err
		}
		out := make([]Value, len(xs))
		for i, s := range xs {
			out[i] = String(s)
		}
		return out, nil
	default:
		return nil, diags.NewExpansionError("expected sequence, found %s", v.TypeName())
	}
}

// FieldOf returns the named field of v. For a structure it returns (nil, nil)
// when the field is absent -- that is not an error, per the Variable Model's
// field operation. For a non-structure variant it is an ExpansionError.
func FieldOf(v Value, name string, expander Expander) (Value, error) {
	switch t := v.(type) {
	case *StructureValue:
		f, ok := t.Field(name)
		if !ok {
			return nil, nil
		}
		return f, nil
	case *LibraryToLink:
		return t.Field(name, expander)
	default:
		return nil, diags.NewExpansionError("expected structure, found %s", v.TypeName())
	}
}
