package template

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLiteralOnly(t *testing.T) {
	chunks, refs, err := Parse("-fPIC")
	require.NoError(t, err)
	assert.Equal(t, []Chunk{Lit("-fPIC")}, chunks)
	assert.Empty(t, refs)
}

func TestParseVariableReference(t *testing.T) {
	chunks, refs, err := Parse("-f %{name}")
	require.NoError(t, err)
	assert.Equal(t, []Chunk{Lit("-f "), Ref("name")}, chunks)
	assert.True(t, refs["name"])
}

func TestParseEscapePercent(t *testing.T) {
	// "%%{x}" expands to literal "%{x}" regardless of binding.
	chunks, refs, err := Parse("%%{x}")
	require.NoError(t, err)
	assert.Equal(t, []Chunk{Lit("%{x}")}, chunks)
	assert.Empty(t, refs)
}

func TestParseDottedReference(t *testing.T) {
	chunks, _, err := Parse("%{lib.name}.%{lib.type}")
	require.NoError(t, err)
	assert.Equal(t, []Chunk{Ref("lib.name"), Lit("."), Ref("lib.type")}, chunks)
}

func TestParseLoneyPercentIsError(t *testing.T) {
	_, _, err := Parse("100% done")
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 3, perr.Offset)
}

func TestParseTrailingPercentIsError(t *testing.T) {
	_, _, err := Parse("done%")
	require.Error(t, err)
}

func TestParseUnterminatedReferenceIsError(t *testing.T) {
	_, _, err := Parse("%{name")
	require.Error(t, err)
}

func TestParseEmptyNameIsError(t *testing.T) {
	_, _, err := Parse("%{}")
	require.Error(t, err)
}

func TestParseRoundTripNoReferences(t *testing.T) {
	// No-reference templates normalize %%->% and otherwise equal the input.
	for _, s := range []string{"", "-O2", "a/b/c.cc"} {
		chunks, _, err := Parse(s)
		require.NoError(t, err)
		var out string
		for _, c := range chunks {
			out += c.Literal
		}
		assert.Equal(t, s, out)
	}
}
