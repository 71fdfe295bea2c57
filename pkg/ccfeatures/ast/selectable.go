// Package ast holds the Selectable Model: the immutable, in-memory shape of
// a parsed toolchain -- features, action configs, flag-sets, env-sets,
// tools, and artifact name patterns -- together with the implies/requires/
// provides relation maps the Selection Resolver walks.
package ast

// Selectable is either a Feature or an ActionConfig. Both participate in
// the implies/requires/provides graph and carry a name that is unique
// across all selectables in a feature table.
type Selectable interface {
	Name() string
	isSelectable()
}

// Feature is a named bundle of flag-sets and env-sets.
type Feature struct {
	FeatureName      string
	DocString        string
	EnabledByDefault bool
	FlagSets         []*FlagSet
	EnvSets          []*EnvSet
}

func (f *Feature) Name() string  { return f.FeatureName }
func (f *Feature) isSelectable() {}

// ActionConfig is a named bundle of flag-sets plus a tool-selection policy,
// keyed to one specific build action. Every flag-set it carries implicitly
// applies to ActionName; construction rejects a flag-set in this position
// that names its own actions (see table construction).
type ActionConfig struct {
	ConfigName       string
	ActionName       string
	DocString        string
	EnabledByDefault bool
	Tools            []*Tool
	FlagSets         []*FlagSet
}

func (a *ActionConfig) Name() string  { return a.ConfigName }
func (a *ActionConfig) isSelectable() {}
