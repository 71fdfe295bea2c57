// Package resolve implements the Selection Resolver: computing the enabled
// selectable set from a requested subset by saturating over implies, then
// pruning to a requires/implies fixpoint, then checking for provides
// collisions.
package resolve

import (
	"sort"

	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/ast"
	"github.com/cxxtoolchain/ccfeatures/pkg/ccfeatures/diags"
)

// Table is the subset of FeatureTable the resolver needs. It is expressed
// as an interface, not a direct dependency on the root package, so the
// root package can depend on resolve without an import cycle.
type Table interface {
	Selectables() []ast.Selectable
	ByName(name string) (ast.Selectable, bool)
	Relations() *ast.Relations
}

// Resolution is the result of resolving a requested selectable set: which
// selectables ended up enabled, and in what order (declaration order, not
// discovery order).
type Resolution struct {
	Enabled map[string]bool
	Order   []string
}

func (r *Resolution) IsEnabled(name string) bool { return r.Enabled[name] }

// resolve computes a Resolution for requested against table. Unknown
// requested names are silently ignored; a requested name whose
// requirements cannot be satisfied simply never makes it into Order.
func resolve(table Table, requested []string) (*Resolution, error) {
	rel := table.Relations()
	enabled := map[string]bool{}
	requestedSet := map[string]bool{}

	var seeds []string
	for _, name := range requested {
		if _, ok := table.ByName(name); ok {
			requestedSet[name] = true
			seeds = append(seeds, name)
		}
	}

	saturateImplies(rel, seeds, enabled)
	pruneUnsatisfied(rel, requestedSet, enabled)

	var order []string
	for _, s := range table.Selectables() {
		if enabled[s.Name()] {
			order = append(order, s.Name())
		}
	}

	if err := checkCollidingProvides(rel, enabled); err != nil {
		return nil, err
	}

	return &Resolution{Enabled: enabled, Order: order}, nil
}

// saturateImplies depth-first walks the implies graph from each seed,
// adding every reached selectable to enabled. visiting guards against an
// implies cycle looping forever.
func saturateImplies(rel *ast.Relations, seeds []string, enabled map[string]bool) {
	visiting := map[string]bool{}
	var visit func(name string)
	visit = func(name string) {
		if enabled[name] || visiting[name] {
			return
		}
		visiting[name] = true
		enabled[name] = true
		for to := range rel.Implies[name] {
			visit(to)
		}
		visiting[name] = false
	}
	for _, s := range seeds {
		visit(s)
	}
}

// pruneUnsatisfied repeatedly re-checks each enabled selectable's
// satisfaction -- requested or implied-by-another-enabled, every implied
// selectable enabled, requires-disjunction met -- removing anything that
// fails and re-queuing its implies/requires/impliedBy neighbors, until the
// enabled set reaches a fixpoint.
func pruneUnsatisfied(rel *ast.Relations, requestedSet map[string]bool, enabled map[string]bool) {
	queued := map[string]bool{}
	var queue []string
	enqueue := func(name string) {
		if enabled[name] && !queued[name] {
			queued[name] = true
			queue = append(queue, name)
		}
	}
	for name := range enabled {
		enqueue(name)
	}

	isSatisfied := func(name string) bool {
		reached := requestedSet[name]
		if !reached {
			for impliedBy := range rel.ImpliedBy[name] {
				if enabled[impliedBy] {
					reached = true
					break
				}
			}
		}
		if !reached {
			return false
		}
		for to := range rel.Implies[name] {
			if !enabled[to] {
				return false
			}
		}
		return rel.RequiresSatisfied(name, enabled)
	}

	for len(queue) > 0 {
		name := queue[0]
		queue = queue[1:]
		queued[name] = false

		if !enabled[name] || isSatisfied(name) {
			continue
		}

		delete(enabled, name)
		for from := range rel.ImpliedBy[name] {
			enqueue(from)
		}
		for from := range rel.RequiredBy[name] {
			enqueue(from)
		}
		for to := range rel.Implies[name] {
			enqueue(to)
		}
	}
}

func checkCollidingProvides(rel *ast.Relations, enabled map[string]bool) error {
	for symbol, providers := range rel.Provides {
		var enabledProviders []string
		for name := range providers {
			if enabled[name] {
				enabledProviders = append(enabledProviders, name)
			}
		}
		if len(enabledProviders) > 1 {
			sort.Strings(enabledProviders)
			return diags.NewCollidingProvidesError(symbol, enabledProviders)
		}
	}
	return nil
}
