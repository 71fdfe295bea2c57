package artifact

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/ast"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/expand"
)

func TestResolveStaticLibraryName(t *testing.T) {
	tmpl, err := ast.NewFlag("lib%{base_name}.a")
	require.NoError(t, err)
	r := NewResolver(expand.New(), []*ast.ArtifactNamePattern{
		{CategoryName: "STATIC_LIBRARY", Template: tmpl},
	})

	out, err := r.Resolve("STATIC_LIBRARY", "x/foo", nil)
	require.NoError(t, err)
	assert.Equal(t, "libfoo.a", out)
}

func TestResolveUnknownCategoryIsError(t *testing.T) {
	r := NewResolver(expand.New(), nil)
	_, err := r.Resolve("DYNAMIC_LIBRARY", "x/foo", nil)
	require.Error(t, err)
}

func TestResolveStripsLeadingSlashFromExpansion(t *testing.T) {
	tmpl, err := ast.NewFlag("/%{base_name}.so")
	require.NoError(t, err)
	r := NewResolver(expand.New(), []*ast.ArtifactNamePattern{
		{CategoryName: "DYNAMIC_LIBRARY", Template: tmpl},
	})
	out, err := r.Resolve("DYNAMIC_LIBRARY", "libfoo", nil)
	require.NoError(t, err)
	assert.Equal(t, "libfoo.so", out)
}
