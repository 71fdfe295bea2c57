package ccfeatures

// ToolchainDecl is the sole input to NewFeatureTable. It is produced by an
// external loader -- typically unmarshaling a protocol-buffer toolchain
// message -- and the engine never parses wire formats itself: by the time
// a ToolchainDecl reaches this package it is already structured data.
type ToolchainDecl struct {
	Features             []FeatureDecl
	ActionConfigs        []ActionConfigDecl
	ArtifactNamePatterns []ArtifactNamePatternDecl
}

// FeatureDecl declares one feature: its relations to other selectables and
// the flag-sets/env-sets it contributes.
type FeatureDecl struct {
	Name             string
	DocString        string
	EnabledByDefault bool

	Implies  []string
	Requires [][]string
	Provides []string

	FlagSets []FlagSetDecl
	EnvSets  []EnvSetDecl
}

// ActionConfigDecl declares one action config: the action it configures,
// its candidate tools, and the flag-sets that apply to that action.
type ActionConfigDecl struct {
	ConfigName       string
	ActionName       string
	DocString        string
	EnabledByDefault bool

	Implies  []string
	Requires [][]string
	Provides []string

	Tools    []ToolDecl
	FlagSets []FlagSetDecl
}

type FeaturePredicateDecl struct {
	Features    []string
	NotFeatures []string
}

type ToolDecl struct {
	Path                  string
	WithFeature           []FeaturePredicateDecl
	ExecutionRequirements []string
}

type FlagSetDecl struct {
	// Actions must be empty for a flag-set declared inside an
	// ActionConfigDecl -- its action is implicit. Non-empty there is a
	// configuration error.
	Actions              []string
	ExpandIfAllAvailable []string
	WithFeature          []FeaturePredicateDecl
	FlagGroups           []FlagGroupDecl
}

type ExpandIfEqualDecl struct {
	Variable string
	Value    string
}

// FlagGroupDecl holds either Flags or Groups -- never both -- plus its
// gating predicates and optional iteration variable.
type FlagGroupDecl struct {
	Flags  []string
	Groups []FlagGroupDecl

	IterateOver string

	ExpandIfAllAvailable  []string
	ExpandIfNoneAvailable []string
	ExpandIfTrue          string
	ExpandIfFalse         string
	ExpandIfEqual         *ExpandIfEqualDecl
}

type EnvEntryDecl struct {
	Key   string
	Value string
}

type EnvSetDecl struct {
	Actions     []string
	WithFeature []FeaturePredicateDecl
	Entries     []EnvEntryDecl
}

type ArtifactNamePatternDecl struct {
	CategoryName string
	Template     string
}
