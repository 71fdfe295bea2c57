package ast

import "github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/diags"

// SelectTool walks the action config's tool list in declared order and
// returns the first whose with_feature predicates are satisfied by the
// given enabled feature-name set. Returns an ExpansionError if none match --
// a misconfigured toolchain, not a missing-variable fault, but the same
// unrecoverable-at-expand-time category.
func (a *ActionConfig) SelectTool(enabledFeatures map[string]bool) (*Tool, error) {
	for _, tool := range a.Tools {
		if tool.WithFeatures.Satisfied(enabledFeatures) {
			return tool, nil
		}
	}
	return nil, diags.NewExpansionError("no tool for action config %q matches the enabled feature set", a.ConfigName)
}
