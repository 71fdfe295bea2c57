package ast

// ArtifactNamePattern maps an artifact category to the template used to
// build a concrete file name for an output of that category.
type ArtifactNamePattern struct {
	CategoryName string
	Template     *Flag
}
