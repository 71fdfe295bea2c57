package syntax

import "github.com/hashicorp/hcl/v2"

// A Node is anything that can point a diagnostic back at a location: a selectable
// name, a flag template, a requires-group entry. Most of the engine's data model
// carries no real source text (it's built from an in-memory ToolchainDecl, not
// parsed text) so Range is frequently nil; the Template Parser is the one place
// that has real byte offsets to report.
type Node interface {
	Range() *hcl.Range
}

// Pos is a byte offset into a single-line template string. The Template Parser
// does not use it: it reports offsets as a plain int (template.ParseError.Offset)
// and renders them through Range.
type Pos struct {
	Byte int
}

// Range builds an hcl.Range covering a single byte at the given offset within
// the named template string.
func Range(filename string, byteOffset int) *hcl.Range {
	pos := hcl.Pos{Byte: byteOffset, Line: 1, Column: byteOffset + 1}
	return &hcl.Range{Filename: filename, Start: pos, End: pos}
}
