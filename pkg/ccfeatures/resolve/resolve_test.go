package resolve

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/ast"
)

// fakeTable uses bare ast.Feature values as its selectables -- ast.Selectable
// carries an unexported method, so only concrete types from package ast can
// implement it.
type fakeTable struct {
	order []string
	rel   *ast.Relations
}

func newFakeTable(names ...string) *fakeTable {
	return &fakeTable{order: names, rel: ast.NewRelations()}
}

func (f *fakeTable) Selectables() []ast.Selectable {
	out := make([]ast.Selectable, len(f.order))
	for i, n := range f.order {
		out[i] = &ast.Feature{FeatureName: n}
	}
	return out
}

func (f *fakeTable) ByName(name string) (ast.Selectable, bool) {
	for _, n := range f.order {
		if n == name {
			return &ast.Feature{FeatureName: n}, true
		}
	}
	return nil, false
}

func (f *fakeTable) Relations() *ast.Relations { return f.rel }

func TestResolveFollowsImpliesClosure(t *testing.T) {
	table := newFakeTable("a", "b")
	table.rel.AddImplies("a", "b")

	res, err := resolve(table, []string{"a"})
	require.NoError(t, err)
	assert.True(t, res.IsEnabled("a"))
	assert.True(t, res.IsEnabled("b"))
	assert.Equal(t, []string{"a", "b"}, res.Order)
}

func TestResolvePrunesSelectableWithUnsatisfiedRequires(t *testing.T) {
	table := newFakeTable("x", "y")
	table.rel.AddRequiresGroup("x", []string{"y"})

	res, err := resolve(table, []string{"x"})
	require.NoError(t, err)
	assert.False(t, res.IsEnabled("x"))
	assert.False(t, res.IsEnabled("y"))
}

func TestResolveRequiresSatisfiedWhenDependencyRequested(t *testing.T) {
	table := newFakeTable("x", "y")
	table.rel.AddRequiresGroup("x", []string{"y"})

	res, err := resolve(table, []string{"x", "y"})
	require.NoError(t, err)
	assert.True(t, res.IsEnabled("x"))
	assert.True(t, res.IsEnabled("y"))
}

func TestResolveRejectsCollidingProvides(t *testing.T) {
	table := newFakeTable("p", "q")
	table.rel.AddProvides("p", "sym")
	table.rel.AddProvides("q", "sym")

	_, err := resolve(table, []string{"p", "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sym")
	assert.Contains(t, err.Error(), "p q")
}

func TestResolveDeclarationOrderIndependentOfRequestOrder(t *testing.T) {
	// Declaration order wins even when an implied selectable declares
	// earlier than its implier, and regardless of request order.
	table := newFakeTable("b", "a")
	table.rel.AddImplies("a", "b")

	res, err := resolve(table, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, res.Order)
}

func TestResolveIdempotent(t *testing.T) {
	// Resolving the same requested set twice yields the same order and
	// enabled set.
	table := newFakeTable("a", "b")
	table.rel.AddImplies("a", "b")

	r1, err := resolve(table, []string{"a"})
	require.NoError(t, err)
	r2, err := resolve(table, []string{"a"})
	require.NoError(t, err)
	assert.Equal(t, r1.Order, r2.Order)
	assert.Equal(t, r1.Enabled, r2.Enabled)
}

func TestResolveUnknownRequestedNameIgnored(t *testing.T) {
	table := newFakeTable("a")
	res, err := resolve(table, []string{"a", "does-not-exist"})
	require.NoError(t, err)
	assert.True(t, res.IsEnabled("a"))
	assert.False(t, res.IsEnabled("does-not-exist"))
}

func TestResolverMemoizesByKeyContentsNotOrder(t *testing.T) {
	table := newFakeTable("a", "b")
	r, err := NewResolver(table, 0)
	require.NoError(t, err)

	res1, err := r.Resolve([]string{"a", "b"})
	require.NoError(t, err)
	res2, err := r.Resolve([]string{"b", "a"})
	require.NoError(t, err)
	assert.Same(t, res1, res2)
}
