package value

import (
	"strings"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/diags"
)

// Scope is an immutable name -> Value mapping with an optional parent. It
// keeps two disjoint sub-mappings -- bare strings (the cheap, common path)
// and typed values -- and delegates to its parent on miss.
type Scope struct {
	parent  *Scope
	strings map[string]string
	typed   map[string]Value
}

// NewScope builds a root or nested scope from the given bindings. Either
// map may be nil.
func NewScope(parent *Scope, strings map[string]string, typed map[string]Value) *Scope {
	return &Scope{parent: parent, strings: strings, typed: typed}
}

// Child returns a scope with a single binding shadowing name in the parent
// chain, used for the per-element scope iterate_over introduces.
func (s *Scope) Child(name string, v Value) *Scope {
	return &Scope{parent: s, typed: map[string]Value{name: v}}
}

func (s *Scope) lookupFlat(name string) (Value, bool) {
	if v, ok := s.strings[name]; ok {
		return String(v), true
	}
	if v, ok := s.typed[name]; ok {
		return v, true
	}
	if s.parent != nil {
		return s.parent.lookupFlat(name)
	}
	return nil, false
}

// Get resolves name against the scope chain. Names with no '.' are a plain
// flat lookup. Dotted names are resolved by repeatedly stripping the
// rightmost '.'-separated segment until a prefix resolves as a flat lookup,
// then re-applying each stripped segment as a field access, outermost to
// innermost, against the structure that prefix named. This lets "a.b.c"
// either be a single flat variable or a structure "a" with field path
// "b.c", preferring the longest flat match.
func (s *Scope) Get(name string, expander Expander) (Value, error) {
	parts := strings.Split(name, ".")
	for i := len(parts); i >= 1; i-- {
		prefix := strings.Join(parts[:i], ".")
		v, ok := s.lookupFlat(prefix)
		if !ok {
			continue
		}
		cur := v
		path := prefix
		for _, field := range parts[i:] {
			next, err := FieldOf(cur, field, expander)
			if err != nil {
				return nil, err
			}
			if next == nil {
				candidates := []string{}
				if sv, ok := cur.(*StructureValue); ok {
					candidates = sv.FieldNames()
				}
				err := diags.NewExpansionError("structure %s doesn't have a field named '%s'", path, field)
				return nil, err.WithSuggestion(path, candidates, field)
			}
			cur = next
			path = path + "." + field
		}
		return cur, nil
	}
	return nil, diags.NewExpansionError("Cannot find variable named '%s'", name)
}

// IsAvailable reports whether Get(name, expander) would succeed, without
// raising.
func (s *Scope) IsAvailable(name string, expander Expander) bool {
	_, err := s.Get(name, expander)
	return err == nil
}
