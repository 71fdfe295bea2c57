package ccfeatures

import (
	"fmt"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/ast"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/diags"
)

// FeatureTable is the immutable, validated result of parsing a
// ToolchainDecl: every selectable, the implies/requires/provides graph
// between them, and the artifact name patterns. Built once; never mutated.
type FeatureTable struct {
	selectables        []ast.Selectable
	index              map[string]int
	byName             map[string]ast.Selectable
	relations          *ast.Relations
	artifactPatterns   []*ast.ArtifactNamePattern
	defaultSelectables []string
}

// NewFeatureTable validates decl and builds a FeatureTable from it. Every
// violation found -- unknown selectable references, duplicate names, a
// flag-set inside an action config declaring its own actions, a malformed
// template -- is aggregated into a single ConfigurationError rather than
// stopping at the first one found.
func NewFeatureTable(decl ToolchainDecl) (*FeatureTable, error) {
	cfgErr := diags.NewConfigurationError()
	t := &FeatureTable{
		byName:    map[string]ast.Selectable{},
		index:     map[string]int{},
		relations: ast.NewRelations(),
	}

	addSelectable := func(s ast.Selectable) {
		name := s.Name()
		if name == "" {
			cfgErr.Add("selectable has an empty name")
			return
		}
		if _, exists := t.byName[name]; exists {
			cfgErr.Add("duplicate selectable name %q", name)
			return
		}
		t.index[name] = len(t.selectables)
		t.byName[name] = s
		t.selectables = append(t.selectables, s)
	}

	for _, fd := range decl.Features {
		f, err := buildFeature(fd)
		if err != nil {
			cfgErr.Wrap(err, fmt.Sprintf("feature %q", fd.Name))
			continue
		}
		addSelectable(f)
		if fd.EnabledByDefault {
			t.defaultSelectables = append(t.defaultSelectables, f.FeatureName)
		}
	}

	actionNames := map[string]bool{}
	for _, ad := range decl.ActionConfigs {
		if actionNames[ad.ActionName] {
			cfgErr.Add("duplicate action name %q among action configs", ad.ActionName)
		}
		actionNames[ad.ActionName] = true

		ac, err := buildActionConfig(ad)
		if err != nil {
			cfgErr.Wrap(err, fmt.Sprintf("action config %q", ad.ConfigName))
			continue
		}
		addSelectable(ac)
		if ad.EnabledByDefault {
			t.defaultSelectables = append(t.defaultSelectables, ac.ConfigName)
		}
	}

	for _, fd := range decl.Features {
		addRelations(t, cfgErr, fd.Name, fd.Implies, fd.Requires, fd.Provides)
	}
	for _, ad := range decl.ActionConfigs {
		addRelations(t, cfgErr, ad.ConfigName, ad.Implies, ad.Requires, ad.Provides)
	}

	for _, apd := range decl.ArtifactNamePatterns {
		tmpl, err := ast.NewFlag(apd.Template)
		if err != nil {
			cfgErr.Wrap(err, fmt.Sprintf("artifact name pattern %q", apd.CategoryName))
			continue
		}
		t.artifactPatterns = append(t.artifactPatterns, &ast.ArtifactNamePattern{
			CategoryName: apd.CategoryName,
			Template:     tmpl,
		})
	}

	if err := cfgErr.ErrOrNil(); err != nil {
		return nil, err
	}
	return t, nil
}

func addRelations(t *FeatureTable, cfgErr *diags.ConfigurationError, name string, implies []string, requires [][]string, provides []string) {
	knownNames := func() []string {
		names := make([]string, 0, len(t.byName))
		for n := range t.byName {
			names = append(names, n)
		}
		return names
	}

	for _, to := range implies {
		if _, ok := t.byName[to]; !ok {
			cfgErr.Add("selectable %q implies unknown selectable %q. %s", name, to, diags.SuggestClosest(knownNames(), to))
			continue
		}
		t.relations.AddImplies(name, to)
	}
	for _, group := range requires {
		for _, member := range group {
			if _, ok := t.byName[member]; !ok {
				cfgErr.Add("selectable %q requires unknown selectable %q. %s", name, member, diags.SuggestClosest(knownNames(), member))
			}
		}
		t.relations.AddRequiresGroup(name, group)
	}
	for _, sym := range provides {
		t.relations.AddProvides(name, sym)
	}
}

func buildPredicates(decls []FeaturePredicateDecl) ast.FeaturePredicates {
	out := make(ast.FeaturePredicates, 0, len(decls))
	for _, d := range decls {
		out = append(out, ast.FeaturePredicate{Features: d.Features, NotFeatures: d.NotFeatures})
	}
	return out
}

func buildFlagGroup(gd FlagGroupDecl) (*ast.FlagGroup, error) {
	var flags []*ast.Flag
	for _, raw := range gd.Flags {
		f, err := ast.NewFlag(raw)
		if err != nil {
			return nil, err
		}
		flags = append(flags, f)
	}
	var groups []*ast.FlagGroup
	for _, sub := range gd.Groups {
		g, err := buildFlagGroup(sub)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	fg := &ast.FlagGroup{
		Flags:                 flags,
		Groups:                groups,
		IterateOver:           gd.IterateOver,
		ExpandIfAllAvailable:  gd.ExpandIfAllAvailable,
		ExpandIfNoneAvailable: gd.ExpandIfNoneAvailable,
		ExpandIfTrue:          gd.ExpandIfTrue,
		ExpandIfFalse:         gd.ExpandIfFalse,
	}
	if gd.ExpandIfEqual != nil {
		fg.HasExpandIfEqual = true
		fg.ExpandIfEqualVar = gd.ExpandIfEqual.Variable
		fg.ExpandIfEqualValue = gd.ExpandIfEqual.Value
	}
	return fg, nil
}

func buildFlagSet(fsd FlagSetDecl) (*ast.FlagSet, error) {
	groups := make([]*ast.FlagGroup, 0, len(fsd.FlagGroups))
	for _, gd := range fsd.FlagGroups {
		g, err := buildFlagGroup(gd)
		if err != nil {
			return nil, err
		}
		groups = append(groups, g)
	}
	actions := map[string]bool{}
	for _, a := range fsd.Actions {
		actions[a] = true
	}
	return &ast.FlagSet{
		Actions:              actions,
		ExpandIfAllAvailable: fsd.ExpandIfAllAvailable,
		WithFeatures:         buildPredicates(fsd.WithFeature),
		FlagGroups:           groups,
	}, nil
}

func buildEnvSet(esd EnvSetDecl) (*ast.EnvSet, error) {
	entries := make([]*ast.EnvEntry, 0, len(esd.Entries))
	for _, ed := range esd.Entries {
		v, err := ast.NewFlag(ed.Value)
		if err != nil {
			return nil, err
		}
		entries = append(entries, &ast.EnvEntry{Key: ed.Key, Value: v})
	}
	actions := map[string]bool{}
	for _, a := range esd.Actions {
		actions[a] = true
	}
	return &ast.EnvSet{
		Actions:      actions,
		WithFeatures: buildPredicates(esd.WithFeature),
		Entries:      entries,
	}, nil
}

func buildFeature(fd FeatureDecl) (*ast.Feature, error) {
	flagSets := make([]*ast.FlagSet, 0, len(fd.FlagSets))
	for _, fsd := range fd.FlagSets {
		fs, err := buildFlagSet(fsd)
		if err != nil {
			return nil, err
		}
		flagSets = append(flagSets, fs)
	}
	envSets := make([]*ast.EnvSet, 0, len(fd.EnvSets))
	for _, esd := range fd.EnvSets {
		es, err := buildEnvSet(esd)
		if err != nil {
			return nil, err
		}
		envSets = append(envSets, es)
	}
	return &ast.Feature{
		FeatureName:      fd.Name,
		DocString:        fd.DocString,
		EnabledByDefault: fd.EnabledByDefault,
		FlagSets:         flagSets,
		EnvSets:          envSets,
	}, nil
}

func buildActionConfig(ad ActionConfigDecl) (*ast.ActionConfig, error) {
	for _, fsd := range ad.FlagSets {
		if len(fsd.Actions) > 0 {
			return nil, fmt.Errorf(
				"flag-set declares its own actions %v; a flag-set nested in an action config implicitly applies to action %q only",
				fsd.Actions, ad.ActionName)
		}
	}
	flagSets := make([]*ast.FlagSet, 0, len(ad.FlagSets))
	for _, fsd := range ad.FlagSets {
		implicit := fsd
		implicit.Actions = []string{ad.ActionName}
		fs, err := buildFlagSet(implicit)
		if err != nil {
			return nil, err
		}
		flagSets = append(flagSets, fs)
	}
	tools := make([]*ast.Tool, 0, len(ad.Tools))
	for _, td := range ad.Tools {
		tools = append(tools, &ast.Tool{
			Path:                  td.Path,
			WithFeatures:          buildPredicates(td.WithFeature),
			ExecutionRequirements: td.ExecutionRequirements,
		})
	}
	return &ast.ActionConfig{
		ConfigName:       ad.ConfigName,
		ActionName:       ad.ActionName,
		DocString:        ad.DocString,
		EnabledByDefault: ad.EnabledByDefault,
		Tools:            tools,
		FlagSets:         flagSets,
	}, nil
}

// Selectables returns every selectable in declaration order: features
// first, then action configs, each in the order given in the ToolchainDecl.
func (t *FeatureTable) Selectables() []ast.Selectable { return t.selectables }

// ByName looks up a selectable by name.
func (t *FeatureTable) ByName(name string) (ast.Selectable, bool) {
	s, ok := t.byName[name]
	return s, ok
}

// DeclarationIndex returns the position of name in declaration order.
func (t *FeatureTable) DeclarationIndex(name string) (int, bool) {
	i, ok := t.index[name]
	return i, ok
}

// Relations returns the implies/requires/provides graph.
func (t *FeatureTable) Relations() *ast.Relations { return t.relations }

// ArtifactPatterns returns the artifact name patterns in declaration order.
func (t *FeatureTable) ArtifactPatterns() []*ast.ArtifactNamePattern { return t.artifactPatterns }

// DefaultSelectables returns the names of selectables marked
// enabled-by-default, in declaration order.
func (t *FeatureTable) DefaultSelectables() []string { return t.defaultSelectables }
