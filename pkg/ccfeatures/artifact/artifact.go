// Package artifact implements the Artifact Name Resolver: mapping an
// artifact category and output name to a concrete file name via a
// per-category template.
package artifact

import (
	"path"
	"strings"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/ast"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/diags"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/expand"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/value"
)

// Resolver holds the artifact name patterns parsed from a toolchain and
// expands the one matching a requested category.
//
// The spec this engine is modeled on classifies "missing required
// artifact-name pattern" as a load-time configuration error, which assumes
// a closed category enumeration known at load time. categoryName is opaque
// to this engine (§6): the set of valid categories lives with the caller,
// not the toolchain declaration, so a missing pattern can only be detected
// when Resolve is actually called for that category. This implementation
// therefore surfaces it as an ExpansionError at Resolve time rather than
// failing table construction; see DESIGN.md.
type Resolver struct {
	expander *expand.Expander
	patterns []*ast.ArtifactNamePattern
}

func NewResolver(expander *expand.Expander, patterns []*ast.ArtifactNamePattern) *Resolver {
	return &Resolver{expander: expander, patterns: patterns}
}

// Resolve finds the first pattern whose category matches, builds a scope
// with output_name/base_name/output_directory derived from outputName, and
// expands the pattern's template.
func (r *Resolver) Resolve(category, outputName string, artifacts value.Expander) (string, error) {
	for _, p := range r.patterns {
		if p.CategoryName != category {
			continue
		}
		dir := path.Dir(outputName)
		file := path.Base(outputName)
		base := strings.TrimSuffix(file, path.Ext(file))
		scope := value.NewScope(nil, map[string]string{
			"output_name":      outputName,
			"base_name":        base,
			"output_directory": dir,
		}, nil)
		return r.expander.ExpandArtifactName(p, scope, artifacts)
	}
	return "", diags.NewExpansionError("no artifact name pattern registered for category %q", category)
}
