package domain

import (
	"sort"
	"strings"
)

// AnyValue disables the category or language predicate.
const AnyValue = "all"

// CatalogFilter holds the three dashboard predicates; a course must satisfy all of them.
type CatalogFilter struct {
	Category string
	Search   string
	Language string
}

func (f CatalogFilter) Match(c Course) bool {
	if !isAny(f.Category) && c.Category != f.Category {
		return false
	}
	if !isAny(f.Language) && c.Lang != f.Language {
		return false
	}
	return strings.Contains(strings.ToLower(c.Title), strings.ToLower(f.Search))
}

func isAny(v string) bool {
	return v == "" || v == AnyValue
}

// FilterCourses keeps the input order.
func FilterCourses(courses []Course, f CatalogFilter) []Course {
	out := make([]Course, 0, len(courses))
	for _, c := range courses {
		if f.Match(c) {
			out = append(out, c)
		}
	}
	return out
}

// Facets lists the distinct non-empty categories and languages, sorted.
func Facets(courses []Course) (categories, languages []string) {
	cats := map[string]struct{}{}
	langs := map[string]struct{}{}
	for _, c := range courses {
		if c.Category != "" {
			cats[c.Category] = struct{}{}
		}
		if c.Lang != "" {
			langs[c.Lang] = struct{}{}
		}
	}
	return sortedKeys(cats), sortedKeys(langs)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
