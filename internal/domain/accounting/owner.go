package accounting

import "strings"

// OwnerAssignment routes a set of categories to an owner.
type OwnerAssignment struct {
	Owner      string
	Categories []string
}

// OwnerRule decides who is responsible for an order from its categories.
// Assignments are checked in order; the first one whose categories intersect
// the order's categories wins. Orders matching nothing go to Default.
type OwnerRule struct {
	assignments []ownerSet
	fallback    string
}

type ownerSet struct {
	owner      string
	categories map[string]struct{}
}

// NewOwnerRule builds a rule. Category matching ignores case and surrounding spaces.
func NewOwnerRule(fallback string, assignments ...OwnerAssignment) *OwnerRule {
	r := &OwnerRule{fallback: fallback}
	for _, a := range assignments {
		set := ownerSet{owner: a.Owner, categories: make(map[string]struct{}, len(a.Categories))}
		for _, c := range a.Categories {
			if key := normalizeCategory(c); key != "" {
				set.categories[key] = struct{}{}
			}
		}
		r.assignments = append(r.assignments, set)
	}
	return r
}

// DefaultOwnerRule is the shop's standing split between its two partners.
func DefaultOwnerRule() *OwnerRule {
	return NewOwnerRule("Shabir", OwnerAssignment{
		Owner:      "Nazir",
		Categories: []string{"Banner Printing", "Glass Printing", "Flag Printing", "Sticker Printing"},
	})
}

// Assign returns the owner for the given categories.
func (r *OwnerRule) Assign(categories []string) string {
	seen := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		seen[normalizeCategory(c)] = struct{}{}
	}

	for _, a := range r.assignments {
		for c := range seen {
			if _, ok := a.categories[c]; ok {
				return a.owner
			}
		}
	}
	return r.fallback
}

// Default returns the fallback owner.
func (r *OwnerRule) Default() string {
	return r.fallback
}

func normalizeCategory(c string) string {
	return strings.ToLower(strings.TrimSpace(c))
}
