package diags

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ettle/strcase"
)

// unknownNameFormatter renders a "does not exist" message plus a
// closest-match suggestion for an unknown selectable, action, or variable
// name, ranking the known set by Levenshtein distance to the requested name.
// When canonicalize is set, both the known names and the requested name are
// compared in snake_case so that casing differences between a reference and
// its declaration don't distort the distance; the known names are still
// displayed in their original form.
type unknownNameFormatter struct {
	parentLabel  string
	known        []string
	maxElements  int
	canonicalize bool
}

func (f unknownNameFormatter) detail(requested string) string {
	var closest []string
	if f.canonicalize {
		closest = sortByEditDistanceCanonical(f.known, requested)
	} else {
		closest = sortByEditDistance(f.known, requested)
	}
	if len(closest) == 0 {
		return fmt.Sprintf("%s declares no names", f.parentLabel)
	}
	list := strings.Join(closest, ", ")
	if f.maxElements != 0 && len(closest) > f.maxElements {
		list = fmt.Sprintf("%s and %d others", strings.Join(closest[:f.maxElements], ", "), len(closest)-f.maxElements)
	}
	return fmt.Sprintf("closest declared names: %s", list)
}

// suggestionDetail is the implementation behind ExpansionError.WithSuggestion.
// It compares names as given; unlike SuggestClosest it does not canonicalize
// them to snake_case.
func suggestionDetail(parentLabel string, candidates []string, requested string) string {
	f := unknownNameFormatter{parentLabel: parentLabel, known: candidates, maxElements: 5}
	return f.detail(requested)
}

// SuggestClosest renders a "did you mean" hint for an unknown selectable or
// action name referenced by implies/requires. Both sides are
// canonicalized to snake_case before comparison so a reference like
// "MyFeature" still turns up a declaration named "my_feature" as the closest
// match, even though the declared names themselves are displayed unchanged.
func SuggestClosest(candidates []string, requested string) string {
	f := unknownNameFormatter{parentLabel: "the toolchain", known: candidates, maxElements: 5, canonicalize: true}
	return f.detail(strcase.ToSnake(requested))
}

// editDistance calculates the Levenshtein distance between words a and b.
func editDistance(a, b string) int {
	d := make([][]int, len(a)+1)
	for i := range d {
		d[i] = make([]int, len(b)+1)
	}
	for i := 0; i < len(a)+1; i++ {
		d[i][0] = i
	}
	for j := 0; j < len(b)+1; j++ {
		d[0][j] = j
	}

	for i := 1; i < len(a)+1; i++ {
		for j := 1; j < len(b)+1; j++ {
			var subCost int
			if a[i-1] != b[j-1] {
				subCost = 1
			}
			d[i][j] = min(d[i-1][j]+1, // deletion
				min(d[i][j-1]+1, // insertion
					d[i-1][j-1]+subCost), // substitution
			)
		}
	}
	return d[len(a)][len(b)]
}

// sortByEditDistance returns words sorted by ascending Levenshtein distance
// to comparedTo, breaking ties alphabetically.
func sortByEditDistance(words []string, comparedTo string) []string {
	w := make([]string, len(words))
	copy(w, words)
	m := map[string]int{}
	v := func(s string) int {
		d, ok := m[s]
		if !ok {
			d = editDistance(s, comparedTo)
			m[s] = d
		}
		return d
	}
	sort.Strings(w)
	sort.SliceStable(w, func(i, j int) bool {
		return v(w[i]) < v(w[j])
	})
	return w
}

// sortByEditDistanceCanonical is sortByEditDistance with both sides
// snake_case-canonicalized before the distance is computed; comparedTo is
// expected to already be canonicalized by the caller. Words are returned in
// their original form, only the comparison uses the canonical form, so a
// declared name like "MyFeature" still sorts and displays correctly.
func sortByEditDistanceCanonical(words []string, comparedTo string) []string {
	w := make([]string, len(words))
	copy(w, words)
	m := map[string]int{}
	v := func(s string) int {
		d, ok := m[s]
		if !ok {
			d = editDistance(strcase.ToSnake(s), comparedTo)
			m[s] = d
		}
		return d
	}
	sort.Strings(w)
	sort.SliceStable(w, func(i, j int) bool {
		return v(w[i]) < v(w[j])
	})
	return w
}
