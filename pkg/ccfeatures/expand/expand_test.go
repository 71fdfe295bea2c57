package expand

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/ast"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/value"
)

func mustFlag(t *testing.T, raw string) *ast.Flag {
	t.Helper()
	f, err := ast.NewFlag(raw)
	require.NoError(t, err)
	return f
}

func TestExpandSimpleFlag(t *testing.T) {
	e := New()
	fs := &ast.FlagSet{
		Actions: map[string]bool{"compile": true},
		FlagGroups: []*ast.FlagGroup{
			{Flags: []*ast.Flag{mustFlag(t, "-f %{name}")}},
		},
	}
	scope := value.NewScope(nil, map[string]string{"name": "bar"}, nil)
	var out []string
	require.NoError(t, e.ExpandFlagSet(fs, "compile", scope, nil, nil, &out))
	assert.Equal(t, []string{"-f bar"}, out)
}

func TestExpandIterateOver(t *testing.T) {
	e := New()
	fg := &ast.FlagGroup{IterateOver: "xs", Flags: []*ast.Flag{mustFlag(t, "%{xs}")}}
	scope := value.NewScope(nil, nil, map[string]value.Value{"xs": value.StringSequence{"a", "b", "c"}})
	var out []string
	require.NoError(t, e.ExpandFlagGroup(fg, scope, nil, &out))
	assert.Equal(t, []string{"a", "b", "c"}, out)
}

func TestExpandIfEqualGating(t *testing.T) {
	e := New()
	fg := &ast.FlagGroup{
		Flags:              []*ast.Flag{mustFlag(t, "-v")},
		HasExpandIfEqual:   true,
		ExpandIfEqualVar:   "v",
		ExpandIfEqualValue: "yes",
	}

	yes := value.NewScope(nil, map[string]string{"v": "yes"}, nil)
	var out []string
	require.NoError(t, e.ExpandFlagGroup(fg, yes, nil, &out))
	assert.Equal(t, []string{"-v"}, out)

	no := value.NewScope(nil, map[string]string{"v": "no"}, nil)
	out = nil
	require.NoError(t, e.ExpandFlagGroup(fg, no, nil, &out))
	assert.Empty(t, out)

	unbound := value.NewScope(nil, nil, nil)
	out = nil
	require.NoError(t, e.ExpandFlagGroup(fg, unbound, nil, &out))
	assert.Empty(t, out)
}

func TestExpandDottedStructureAccess(t *testing.T) {
	e := New()
	lib := value.NewStructure(
		value.StructureEntry{Name: "name", Value: value.String("libz")},
		value.StructureEntry{Name: "type", Value: value.String("static_library")},
	)
	scope := value.NewScope(nil, nil, map[string]value.Value{"lib": lib})
	out, err := e.ExpandTemplate(mustFlag(t, "%{lib.name}.%{lib.type}").Chunks, scope, nil)
	require.NoError(t, err)
	assert.Equal(t, "libz.static_library", out)
}

func TestEscapePercentExpandsLiterallyRegardlessOfBinding(t *testing.T) {
	e := New()
	f := mustFlag(t, "%%{x}")
	out, err := e.ExpandTemplate(f.Chunks, value.NewScope(nil, nil, nil), nil)
	require.NoError(t, err)
	assert.Equal(t, "%{x}", out)
}

func TestImplicitIterationGatedOffByDefault(t *testing.T) {
	e := New()
	fg := &ast.FlagGroup{Flags: []*ast.Flag{mustFlag(t, "%{xs}")}}
	scope := value.NewScope(nil, nil, map[string]value.Value{"xs": value.StringSequence{"a", "b"}})
	var out []string
	err := e.ExpandFlagGroup(fg, scope, nil, &out)
	require.Error(t, err)
}

func TestImplicitIterationOptIn(t *testing.T) {
	e := New()
	e.AllowImplicitIteration = true
	fg := &ast.FlagGroup{Flags: []*ast.Flag{mustFlag(t, "%{xs}")}}
	scope := value.NewScope(nil, nil, map[string]value.Value{"xs": value.StringSequence{"a", "b"}})
	var out []string
	require.NoError(t, e.ExpandFlagGroup(fg, scope, nil, &out))
	assert.Equal(t, []string{"a", "b"}, out)
}

func TestFlagGroupBothFlagsAndGroupsIsError(t *testing.T) {
	e := New()
	fg := &ast.FlagGroup{
		Flags:  []*ast.Flag{mustFlag(t, "-a")},
		Groups: []*ast.FlagGroup{{Flags: []*ast.Flag{mustFlag(t, "-b")}}},
	}
	var out []string
	err := e.ExpandFlagGroup(fg, value.NewScope(nil, nil, nil), nil, &out)
	require.Error(t, err)
}

func TestArtifactNameStripsLeadingSlash(t *testing.T) {
	e := New()
	pat := &ast.ArtifactNamePattern{CategoryName: "STATIC_LIBRARY", Template: mustFlag(t, "/lib%{base_name}.a")}
	scope := value.NewScope(nil, map[string]string{"base_name": "foo"}, nil)
	out, err := e.ExpandArtifactName(pat, scope, nil)
	require.NoError(t, err)
	assert.Equal(t, "libfoo.a", out)
}
