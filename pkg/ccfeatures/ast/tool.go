package ast

import "github.com/google/shlex"

// Tool is one candidate tool invocation for an ActionConfig: a path (which
// may embed leading arguments, e.g. "ccache clang++"), a with_feature gate,
// and the set of execution requirement tags the surrounding build system
// uses for sandboxing/remote-execution policy decisions.
type Tool struct {
	Path                  string
	WithFeatures          FeaturePredicates
	ExecutionRequirements []string
}

// Argv splits Path into an executable plus its leading arguments, so a
// caller assembling a full invocation doesn't need its own shell-lexing
// for a tool path like "ccache clang++".
func (t *Tool) Argv() ([]string, error) {
	return shlex.Split(t.Path)
}
