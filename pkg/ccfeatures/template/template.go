// Package template implements the Template Parser: turning a flag, env-value,
// or artifact-name-pattern string into an ordered chunk sequence plus the set
// of variable names it references.
package template

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/syntax"
)

// Chunk is either a literal text run or a reference to a named variable.
// Exactly one of the two fields is meaningful; IsVar distinguishes them.
type Chunk struct {
	Literal string
	Var     string
	IsVar   bool
}

func Lit(s string) Chunk { return Chunk{Literal: s} }
func Ref(name string) Chunk { return Chunk{Var: name, IsVar: true} }

// ParseError is returned by Parse when the input string is malformed. It
// carries the byte offset of the offending character so callers can render a
// caret under the source string.
type ParseError struct {
	Input  string
	Offset int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s at byte %d in %q", e.Msg, e.Offset, e.Input)
}

// Range renders the error's position as an hcl.Range, for diagnostics code
// that wants to carry a source location without depending on this package's
// concrete error type.
func (e *ParseError) Range(filename string) *hcl.Range {
	return syntax.Range(filename, e.Offset)
}

// Parse reads a template string one pass, left to right. `%{NAME}` is a
// variable reference, `%%` is an escaped literal `%`, any other run of text
// is literal. A lone `%` not immediately followed by `%` or `{`, or an
// unterminated `%{`, or an empty `%{}` name, is a parse error.
func Parse(s string) ([]Chunk, map[string]bool, error) {
	var chunks []Chunk
	refs := map[string]bool{}

	var lit []byte
	flushLit := func() {
		if len(lit) > 0 {
			chunks = append(chunks, Lit(string(lit)))
			lit = nil
		}
	}

	i := 0
	for i < len(s) {
		c := s[i]
		if c != '%' {
			lit = append(lit, c)
			i++
			continue
		}
		// c == '%'
		if i+1 >= len(s) {
			return nil, nil, &ParseError{Input: s, Offset: i, Msg: "unescaped '%' at end of template"}
		}
		switch s[i+1] {
		case '%':
			lit = append(lit, '%')
			i += 2
		case '{':
			end := -1
			for j := i + 2; j < len(s); j++ {
				if s[j] == '}' {
					end = j
					break
				}
			}
			if end == -1 {
				return nil, nil, &ParseError{Input: s, Offset: i, Msg: "unterminated '%{' reference"}
			}
			name := s[i+2 : end]
			if name == "" {
				return nil, nil, &ParseError{Input: s, Offset: i, Msg: "empty variable name in '%{}'"}
			}
			flushLit()
			chunks = append(chunks, Ref(name))
			refs[name] = true
			i = end + 1
		default:
			return nil, nil, &ParseError{Input: s, Offset: i, Msg: "'%' not followed by '%' or '{'"}
		}
	}
	flushLit()
	return chunks, refs, nil
}
