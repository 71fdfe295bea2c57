package ccfeatures

import (
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/ast"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/diags"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/expand"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/resolve"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/value"
)

// NamedExpansion is one selectable's contribution to a command line: the
// selectable's name and the flags it expanded to, in the order
// PerFeatureExpansions computes them (action config first if configured,
// then enabled features in declaration order).
type NamedExpansion struct {
	Name  string
	Flags []string
}

// FeatureConfiguration is the resolved, ready-to-query view of a feature
// table for one requested selectable set: which selectables are enabled,
// and (given an action and a variable scope) what command line,
// environment, and tool that action resolves to.
type FeatureConfiguration struct {
	table               *FeatureTable
	resolution          *resolve.Resolution
	expander            *expand.Expander
	enabledFeatureNames map[string]bool
}

// NewFeatureConfiguration resolves requested against table (via resolver,
// which memoizes by requested-set contents) and returns the resulting
// configuration.
func NewFeatureConfiguration(table *FeatureTable, resolver *resolve.Resolver, expander *expand.Expander, requested []string) (*FeatureConfiguration, error) {
	resolution, err := resolver.Resolve(requested)
	if err != nil {
		return nil, err
	}

	enabledFeatures := map[string]bool{}
	for name := range resolution.Enabled {
		if s, ok := table.ByName(name); ok {
			if _, isFeature := s.(*ast.Feature); isFeature {
				enabledFeatures[name] = true
			}
		}
	}

	return &FeatureConfiguration{
		table:               table,
		resolution:          resolution,
		expander:            expander,
		enabledFeatureNames: enabledFeatures,
	}, nil
}

// IsEnabled reports whether the named selectable is in the enabled set.
func (c *FeatureConfiguration) IsEnabled(name string) bool {
	return c.resolution.IsEnabled(name)
}

// ActionIsConfigured reports whether some enabled action config targets
// actionName.
func (c *FeatureConfiguration) ActionIsConfigured(actionName string) bool {
	return c.actionConfigFor(actionName) != nil
}

func (c *FeatureConfiguration) actionConfigFor(actionName string) *ast.ActionConfig {
	for _, name := range c.resolution.Order {
		s, ok := c.table.ByName(name)
		if !ok {
			continue
		}
		if ac, ok := s.(*ast.ActionConfig); ok && ac.ActionName == actionName {
			return ac
		}
	}
	return nil
}

// PerFeatureExpansions expands action's flags per selectable, keeping
// per-selectable buckets: the action config first (if one is configured),
// then each enabled feature in declaration order.
func (c *FeatureConfiguration) PerFeatureExpansions(action string, scope *value.Scope, artifacts value.Expander) ([]NamedExpansion, error) {
	var buckets []NamedExpansion

	if ac := c.actionConfigFor(action); ac != nil {
		var out []string
		for _, fs := range ac.FlagSets {
			if err := c.expander.ExpandFlagSet(fs, action, scope, c.enabledFeatureNames, artifacts, &out); err != nil {
				return nil, err
			}
		}
		buckets = append(buckets, NamedExpansion{Name: ac.ConfigName, Flags: out})
	}

	for _, name := range c.resolution.Order {
		s, ok := c.table.ByName(name)
		if !ok {
			continue
		}
		f, ok := s.(*ast.Feature)
		if !ok {
			continue
		}
		var out []string
		for _, fs := range f.FlagSets {
			if err := c.expander.ExpandFlagSet(fs, action, scope, c.enabledFeatureNames, artifacts, &out); err != nil {
				return nil, err
			}
		}
		buckets = append(buckets, NamedExpansion{Name: f.FeatureName, Flags: out})
	}

	return buckets, nil
}

// CommandLine is the concatenation of PerFeatureExpansions' bucket values,
// in the same order -- testable property 1 holds by construction since
// both are computed from the same walk.
func (c *FeatureConfiguration) CommandLine(action string, scope *value.Scope, artifacts value.Expander) ([]string, error) {
	buckets, err := c.PerFeatureExpansions(action, scope, artifacts)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, b := range buckets {
		out = append(out, b.Flags...)
	}
	return out, nil
}

// EnvironmentVariables merges each enabled feature's matching env-sets, in
// declaration order; later keys overwrite earlier ones.
func (c *FeatureConfiguration) EnvironmentVariables(action string, scope *value.Scope, artifacts value.Expander) (map[string]string, error) {
	env := map[string]string{}
	for _, name := range c.resolution.Order {
		s, ok := c.table.ByName(name)
		if !ok {
			continue
		}
		f, ok := s.(*ast.Feature)
		if !ok {
			continue
		}
		for _, es := range f.EnvSets {
			if err := c.expander.ExpandEnvSet(es, action, scope, c.enabledFeatureNames, artifacts, env); err != nil {
				return nil, err
			}
		}
	}
	return env, nil
}

// ToolForAction delegates to the action config's tool-selection policy.
// actionName must be configured (ActionIsConfigured); otherwise this is an
// ExpansionError.
func (c *FeatureConfiguration) ToolForAction(actionName string) (*ast.Tool, error) {
	ac := c.actionConfigFor(actionName)
	if ac == nil {
		return nil, diags.NewExpansionError("action %q is not configured", actionName)
	}
	return ac.SelectTool(c.enabledFeatureNames)
}
