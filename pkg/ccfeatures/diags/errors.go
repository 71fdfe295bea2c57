package diags

import (
	"fmt"
	"strings"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/syntax"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/template"
)

// ConfigurationError is fatal at feature-table construction time: an unknown
// selectable referenced by implies/requires, an empty or duplicate selectable
// name, a duplicate action name, a flag-set inside an action config declaring
// its own actions, or a template parse error. Multiple violations discovered
// while building one table are aggregated so the caller sees all of them, not
// just the first. A missing artifact-name pattern is not checked at
// construction; artifact.Resolver reports it as an ExpansionError when
// Resolve is called for that category.
type ConfigurationError struct {
	cause *multierror.Error
}

func NewConfigurationError() *ConfigurationError {
	return &ConfigurationError{cause: &multierror.Error{
		ErrorFormat: func(es []error) string {
			if len(es) == 1 {
				return fmt.Sprintf("invalid toolchain configuration: %s", es[0])
			}
			points := make([]string, len(es))
			for i, e := range es {
				points[i] = fmt.Sprintf("* %s", e)
			}
			return fmt.Sprintf("invalid toolchain configuration (%d errors):\n%s", len(es), strings.Join(points, "\n"))
		},
	}}
}

// Add records a violation. The receiver is returned so callers can chain
// Add calls while building up a table.
func (e *ConfigurationError) Add(format string, args ...interface{}) *ConfigurationError {
	e.cause = multierror.Append(e.cause, fmt.Errorf(format, args...))
	return e
}

// Wrap records an existing error as a configuration violation, keeping its
// cause chain intact. A *template.ParseError carries a byte offset into the
// malformed template string; that offset is rendered through syntax.Range so
// the violation reports a real hcl.Pos/hcl.Range rather than just the raw
// parser message.
func (e *ConfigurationError) Wrap(err error, context string) *ConfigurationError {
	if pe, ok := err.(*template.ParseError); ok {
		diag := syntax.Error(pe.Range(context), fmt.Sprintf("%s: malformed template", context), pe.Msg)
		e.cause = multierror.Append(e.cause, &positionedParseError{diag: diag, cause: pe})
		return e
	}
	e.cause = multierror.Append(e.cause, errors.Wrap(err, context))
	return e
}

// positionedParseError renders as the hcl-positioned diagnostic but keeps
// the original *template.ParseError reachable via errors.As/errors.Unwrap,
// the same guarantee errors.Wrap gives the non-ParseError branch above.
type positionedParseError struct {
	diag  *syntax.Diagnostic
	cause *template.ParseError
}

func (e *positionedParseError) Error() string { return e.diag.Error() }
func (e *positionedParseError) Unwrap() error { return e.cause }

// HasErrors reports whether any violation has been recorded.
func (e *ConfigurationError) HasErrors() bool {
	return e != nil && len(e.cause.Errors) > 0
}

// ErrOrNil returns the error itself if it has recorded violations, else nil
// -- the pattern multierror.Error uses so construction code can write
// `return table, cfgErr.ErrOrNil()`.
func (e *ConfigurationError) ErrOrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ConfigurationError) Error() string {
	return e.cause.Error()
}

func (e *ConfigurationError) Unwrap() error {
	return e.cause.ErrorOrNil()
}

// ExpansionError is raised while expanding a template or evaluating a
// variable scope: a missing variable, a type mismatch, a missing structure
// field, or a flag-group declaring both flags and nested groups. Callers
// treat it as an unrecoverable logic fault in the toolchain or caller code,
// not something to recover from locally.
type ExpansionError struct {
	Msg        string
	Suggestion string
}

func NewExpansionError(format string, args ...interface{}) *ExpansionError {
	return &ExpansionError{Msg: fmt.Sprintf(format, args...)}
}

func (e *ExpansionError) Error() string {
	if e.Suggestion == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s. %s", e.Msg, e.Suggestion)
}

// WithSuggestion appends a "did you mean" hint computed from the set of
// names that were actually available, for a variable or field lookup miss.
func (e *ExpansionError) WithSuggestion(parentLabel string, candidates []string, requested string) *ExpansionError {
	e.Suggestion = suggestionDetail(parentLabel, candidates, requested)
	return e
}

// CollidingProvidesError is raised at resolve time: two or more enabled
// selectables provide the same symbol.
type CollidingProvidesError struct {
	Symbol      string
	Selectables []string
}

func NewCollidingProvidesError(symbol string, selectables []string) *CollidingProvidesError {
	return &CollidingProvidesError{Symbol: symbol, Selectables: selectables}
}

func (e *CollidingProvidesError) Error() string {
	return fmt.Sprintf("colliding provides %q: %s", e.Symbol, strings.Join(e.Selectables, " "))
}
