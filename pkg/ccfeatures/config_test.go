package ccfeatures

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/expand"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/resolve"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/value"
)

func buildTestToolchain(t *testing.T) *FeatureTable {
	t.Helper()
	table, err := NewFeatureTable(ToolchainDecl{
		Features: []FeatureDecl{
			{
				Name: "warnings_as_errors",
				FlagSets: []FlagSetDecl{{
					Actions:    []string{"compile"},
					FlagGroups: []FlagGroupDecl{{Flags: []string{"-Werror"}}},
				}},
			},
			{
				Name: "optimize",
			},
			{
				Name:     "lto",
				Requires: [][]string{{"optimize"}},
				FlagSets: []FlagSetDecl{{
					Actions:    []string{"compile"},
					FlagGroups: []FlagGroupDecl{{Flags: []string{"-flto"}}},
				}},
			},
		},
		ActionConfigs: []ActionConfigDecl{{
			ConfigName: "cpp_compile",
			ActionName: "compile",
			Tools:      []ToolDecl{{Path: "/usr/bin/g++"}},
			FlagSets: []FlagSetDecl{{
				FlagGroups: []FlagGroupDecl{{Flags: []string{"-std=c++17"}}},
			}},
		}},
	})
	require.NoError(t, err)
	return table
}

func TestEndToEndCommandLineEnvAndTool(t *testing.T) {
	table := buildTestToolchain(t)
	resolver, err := resolve.NewResolver(table, 0)
	require.NoError(t, err)
	cfg, err := NewFeatureConfiguration(table, resolver, expand.New(), []string{"warnings_as_errors", "cpp_compile"})
	require.NoError(t, err)

	assert.True(t, cfg.IsEnabled("warnings_as_errors"))
	assert.True(t, cfg.IsEnabled("cpp_compile"))
	assert.True(t, cfg.ActionIsConfigured("compile"))
	assert.False(t, cfg.ActionIsConfigured("link"))

	scope := value.NewScope(nil, nil, nil)

	buckets, err := cfg.PerFeatureExpansions("compile", scope, nil)
	require.NoError(t, err)
	cmd, err := cfg.CommandLine("compile", scope, nil)
	require.NoError(t, err)

	// CommandLine is defined as the concatenation of the per-feature buckets.
	var fromBuckets []string
	for _, b := range buckets {
		fromBuckets = append(fromBuckets, b.Flags...)
	}
	assert.Equal(t, fromBuckets, cmd)
	assert.Equal(t, []string{"-std=c++17", "-Werror"}, cmd)

	env, err := cfg.EnvironmentVariables("compile", scope, nil)
	require.NoError(t, err)
	assert.Empty(t, env)

	tool, err := cfg.ToolForAction("compile")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/g++", tool.Path)
}

func TestEndToEndRequiresPruneAcrossWholeTable(t *testing.T) {
	table := buildTestToolchain(t)
	resolver, err := resolve.NewResolver(table, 0)
	require.NoError(t, err)

	cfg, err := NewFeatureConfiguration(table, resolver, expand.New(), []string{"lto"})
	require.NoError(t, err)
	assert.False(t, cfg.IsEnabled("lto"))

	cfg, err = NewFeatureConfiguration(table, resolver, expand.New(), []string{"lto", "optimize"})
	require.NoError(t, err)
	assert.True(t, cfg.IsEnabled("lto"))
	assert.True(t, cfg.IsEnabled("optimize"))
}

func TestToolForActionRequiresConfiguredAction(t *testing.T) {
	table := buildTestToolchain(t)
	resolver, err := resolve.NewResolver(table, 0)
	require.NoError(t, err)
	cfg, err := NewFeatureConfiguration(table, resolver, expand.New(), nil)
	require.NoError(t, err)

	_, err = cfg.ToolForAction("compile")
	require.Error(t, err)
}
