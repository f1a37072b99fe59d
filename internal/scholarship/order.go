// internal/scholarship/order.go
package scholarship

import "scholarship-workers/internal/models"

// partition is a stable grouping of items into priority buckets. local marks
// State entries that belong to the student's state.
func partition[T any](items []T, state string, jurisdiction func(T) models.Jurisdiction, local func(T, string) bool) []T {
	out := make([]T, 0, len(items))
	pick := func(keep func(T) bool) {
		for _, it := range items {
			if keep(it) {
				out = append(out, it)
			}
		}
	}
	is := func(j models.Jurisdiction) func(T) bool {
		return func(it T) bool { return jurisdiction(it) == j }
	}

	if state == "" {
		pick(is(models.JurisdictionCentral))
		pick(is(models.JurisdictionState))
		pick(is(models.JurisdictionPrivate))
		return out
	}

	pick(func(it T) bool { return jurisdiction(it) == models.JurisdictionState && local(it, state) })
	pick(is(models.JurisdictionCentral))
	pick(func(it T) bool { return jurisdiction(it) == models.JurisdictionState && !local(it, state) })
	pick(is(models.JurisdictionPrivate))
	return out
}

// OrderPortals orders portals for display. Without a state: Central, State,
// Private. With a state: own-state, Central, other State, Private.
func OrderPortals(list []models.Portal, state string) []models.Portal {
	return partition(list, state,
		func(p models.Portal) models.Jurisdiction { return p.Jurisdiction },
		func(p models.Portal, s string) bool { return p.ServesState(s) },
	)
}

// OrderScholarships orders individual scholarships the same way as portals.
// A State scholarship without a state counts as local.
func OrderScholarships(list []models.IndividualScholarship, state string) []models.IndividualScholarship {
	return partition(list, state,
		func(s models.IndividualScholarship) models.Jurisdiction { return s.Jurisdiction },
		isLocalScholarship,
	)
}

func isLocalScholarship(s models.IndividualScholarship, state string) bool {
	return s.State == state || s.State == ""
}

func isLocalEntry(e models.CatalogEntry, state string) bool {
	if e.Kind == models.EntryKindPortal {
		return e.Portal.ServesState(state)
	}
	return isLocalScholarship(*e.Scholarship, state)
}
