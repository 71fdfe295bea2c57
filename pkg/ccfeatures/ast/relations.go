package ast

// Relations holds the implies/requires/provides graph edges between
// selectables, keyed by selectable name. Requires is a disjunction of
// conjunctions: Requires[name] is a list of groups, and a selectable is
// satisfied on the requires axis if at least one group is fully enabled.
type Relations struct {
	Implies    map[string]map[string]bool
	ImpliedBy  map[string]map[string]bool
	Requires   map[string][][]string
	RequiredBy map[string]map[string]bool
	Provides   map[string]map[string]bool // symbol -> selectable names providing it
}

func NewRelations() *Relations {
	return &Relations{
		Implies:    map[string]map[string]bool{},
		ImpliedBy:  map[string]map[string]bool{},
		Requires:   map[string][][]string{},
		RequiredBy: map[string]map[string]bool{},
		Provides:   map[string]map[string]bool{},
	}
}

func addEdge(m map[string]map[string]bool, from, to string) {
	set, ok := m[from]
	if !ok {
		set = map[string]bool{}
		m[from] = set
	}
	set[to] = true
}

// AddImplies records that `from` implies `to`.
func (r *Relations) AddImplies(from, to string) {
	addEdge(r.Implies, from, to)
	addEdge(r.ImpliedBy, to, from)
}

// AddRequiresGroup records one conjunction group in `from`'s requires
// disjunction, and registers `from` as requiredBy each member of the group.
func (r *Relations) AddRequiresGroup(from string, group []string) {
	r.Requires[from] = append(r.Requires[from], group)
	for _, member := range group {
		addEdge(r.RequiredBy, member, from)
	}
}

// AddProvides records that `selectable` provides `symbol`.
func (r *Relations) AddProvides(selectable, symbol string) {
	set, ok := r.Provides[symbol]
	if !ok {
		set = map[string]bool{}
		r.Provides[symbol] = set
	}
	set[selectable] = true
}

// RequiresSatisfied reports whether at least one of `name`'s requires
// groups is fully contained in enabled (an empty requires list is always
// satisfied).
func (r *Relations) RequiresSatisfied(name string, enabled map[string]bool) bool {
	groups := r.Requires[name]
	if len(groups) == 0 {
		return true
	}
	for _, group := range groups {
		allEnabled := true
		for _, member := range group {
			if !enabled[member] {
				allEnabled = false
				break
			}
		}
		if allEnabled {
			return true
		}
	}
	return false
}
