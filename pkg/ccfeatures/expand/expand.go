// Package expand implements the Expansion Engine: turning a Flag's chunk
// sequence, and the flag-groups/flag-sets/env-sets/artifact-name-patterns
// that contain them, into concrete strings against a variable scope.
package expand

import (
	"strings"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/ast"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/template"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/value"
)

// Expander drives template expansion. AllowImplicitIteration opts into the
// deprecated behavior where a flag-group with no iterate_over that
// references exactly one sequence-typed variable iterates over it anyway;
// it defaults to false, so that case is an ExpansionError pointing the
// caller at the variable that needs an explicit iterate_over.
type Expander struct {
	AllowImplicitIteration bool
}

func New() *Expander { return &Expander{} }

// ExpandTemplate concatenates chunks, resolving each variable reference's
// scalar string view against scope.
func (e *Expander) ExpandTemplate(chunks []template.Chunk, scope *value.Scope, artifacts value.Expander) (string, error) {
	var sb strings.Builder
	for _, c := range chunks {
		if !c.IsVar {
			sb.WriteString(c.Literal)
			continue
		}
		v, err := scope.Get(c.Var, artifacts)
		if err != nil {
			return "", err
		}
		s, err := value.StringView(v)
		if err != nil {
			return "", err
		}
		sb.WriteString(s)
	}
	return sb.String(), nil
}

// ExpandFlag expands a single flag template into exactly one command-line
// entry.
func (e *Expander) ExpandFlag(f *ast.Flag, scope *value.Scope, artifacts value.Expander) (string, error) {
	return e.ExpandTemplate(f.Chunks, scope, artifacts)
}

// ExpandFlagSet applies a flag-set's gating -- action membership,
// expand_if_all_available, with_feature -- and, if it passes, expands each
// flag-group in declared order into out.
func (e *Expander) ExpandFlagSet(fs *ast.FlagSet, action string, scope *value.Scope, enabledFeatures map[string]bool, artifacts value.Expander, out *[]string) error {
	if !fs.AppliesToAction(action) {
		return nil
	}
	for _, name := range fs.ExpandIfAllAvailable {
		if !scope.IsAvailable(name, artifacts) {
			return nil
		}
	}
	if !fs.WithFeatures.Satisfied(enabledFeatures) {
		return nil
	}
	for _, fg := range fs.FlagGroups {
		if err := e.ExpandFlagGroup(fg, scope, artifacts, out); err != nil {
			return err
		}
	}
	return nil
}

// ExpandEnvSet applies action membership and with_feature gating (an env-set
// has no expand_if_all_available list) and, if both pass,
// expands each entry's value template, writing (key, value) into out. Later
// callers merging multiple env-sets are responsible for overwrite order
// (see FeatureConfiguration.EnvironmentVariables).
func (e *Expander) ExpandEnvSet(es *ast.EnvSet, action string, scope *value.Scope, enabledFeatures map[string]bool, artifacts value.Expander, out map[string]string) error {
	if !es.AppliesToAction(action) {
		return nil
	}
	if !es.WithFeatures.Satisfied(enabledFeatures) {
		return nil
	}
	for _, entry := range es.Entries {
		v, err := e.ExpandTemplate(entry.Value.Chunks, scope, artifacts)
		if err != nil {
			return err
		}
		out[entry.Key] = v
	}
	return nil
}

// ExpandArtifactName expands an artifact name pattern's template against
// scope and strips a single leading '/' if present.
func (e *Expander) ExpandArtifactName(pattern *ast.ArtifactNamePattern, scope *value.Scope, artifacts value.Expander) (string, error) {
	s, err := e.ExpandTemplate(pattern.Template.Chunks, scope, artifacts)
	if err != nil {
		return "", err
	}
	return strings.TrimPrefix(s, "/"), nil
}
