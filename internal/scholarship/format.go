// internal/scholarship/format.go
package scholarship

import (
	"fmt"
	"strings"

	"scholarship-workers/internal/models"
)

const (
	NoResultsMessage = "No scholarships found matching your criteria."

	chatSectionLimit = 5
)

// FormatPortalsForChat renders portals as a numbered markdown list grouped by
// jurisdiction. A new header starts whenever the jurisdiction changes.
func FormatPortalsForChat(list []models.Portal) string {
	if len(list) == 0 {
		return NoResultsMessage
	}

	var b strings.Builder
	fmt.Fprintf(&b, "I found %d scholarship(s) for you:\n\n", len(list))

	var current models.Jurisdiction
	for i, p := range list {
		if p.Jurisdiction != current {
			if current != "" {
				b.WriteString("\n")
			}
			fmt.Fprintf(&b, "**%s Scholarships:**\n", p.Jurisdiction)
			current = p.Jurisdiction
		}
		fmt.Fprintf(&b, "%d. **%s**\n", i+1, p.Name)
		fmt.Fprintf(&b, "   - %s\n", p.Description)
		fmt.Fprintf(&b, "   - Portal: %s\n", p.PortalURL)
		fmt.Fprintf(&b, "   - Eligibility: %s\n\n", p.Eligibility)
	}
	return b.String()
}

// FormatPriorityList builds the local chat answer for "show me scholarships".
// With a known state it lists state-level, central and private sections;
// otherwise only central and private. Each section shows at most five entries.
func FormatPriorityList(state string) string {
	entries := make([]models.CatalogEntry, 0, len(portals)+len(individualScholarships))
	for _, p := range OrderPortals(portals, state) {
		entries = append(entries, models.PortalEntry(p))
	}
	for _, s := range OrderScholarships(individualScholarships, state) {
		entries = append(entries, models.ScholarshipEntry(s))
	}

	var b strings.Builder
	if state == "" {
		b.WriteString("Here are scholarships available to you (complete your profile to see state-specific ones):\n\n")
		writeSection(&b, "1. Central Government Scholarships", filterEntries(entries, isJurisdiction(models.JurisdictionCentral)))
		writeSection(&b, "2. Private Scholarships", filterEntries(entries, isJurisdiction(models.JurisdictionPrivate)))
		b.WriteString("\n💡 *Complete your profile to see state-specific scholarships!*")
		return b.String()
	}

	fmt.Fprintf(&b, "Based on your profile (State: %s), here are scholarships ordered by priority:\n\n", state)
	local := filterEntries(entries, func(e models.CatalogEntry) bool {
		return e.Jurisdiction() == models.JurisdictionState && isLocalEntry(e, state)
	})
	writeSection(&b, "1. State-Level Scholarships", local)
	writeSection(&b, "2. Central Government Scholarships", filterEntries(entries, isJurisdiction(models.JurisdictionCentral)))
	writeSection(&b, "3. Private Scholarships", filterEntries(entries, isJurisdiction(models.JurisdictionPrivate)))
	b.WriteString("\n💡 *Showing top results. Ask me for more details about any specific scholarship!*")
	return b.String()
}

func writeSection(b *strings.Builder, title string, list []models.CatalogEntry) {
	if len(list) == 0 {
		return
	}
	fmt.Fprintf(b, "**%s (%d):**\n", title, len(list))
	for i, e := range list {
		if i == chatSectionLimit {
			break
		}
		fmt.Fprintf(b, "%d. **%s**\n", i+1, e.Name())
		fmt.Fprintf(b, "   %s\n", e.Description())
		fmt.Fprintf(b, "   🔗 %s\n\n", e.URL())
	}
}

func isJurisdiction(j models.Jurisdiction) func(models.CatalogEntry) bool {
	return func(e models.CatalogEntry) bool { return e.Jurisdiction() == j }
}

func filterEntries(list []models.CatalogEntry, keep func(models.CatalogEntry) bool) []models.CatalogEntry {
	var out []models.CatalogEntry
	for _, e := range list {
		if keep(e) {
			out = append(out, e)
		}
	}
	return out
}

// BuildChatContext renders the ordered catalog as grounding text for the
// generative assistant.
func BuildChatContext(state string) string {
	ordered := OrderPortals(portals, state)
	individual := OrderScholarships(individualScholarships, state)

	var b strings.Builder
	b.WriteString("\nSTUDENT SCHOLARSHIP DATA:\n\n")
	if state != "" {
		fmt.Fprintf(&b, "Student state: %s\n\n", state)
	}

	fmt.Fprintf(&b, "Scholarship Portals (%d total):\n", len(ordered))
	for i, p := range ordered {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. [%s] %s - %s\n   URL: %s\n   Eligibility: %s",
			i+1, p.Jurisdiction, p.Name, p.Description, p.PortalURL, p.Eligibility)
	}

	fmt.Fprintf(&b, "\n\nIndividual Scholarships (%d total):\n", len(individual))
	for i, s := range individual {
		if i > 0 {
			b.WriteString("\n\n")
		}
		fmt.Fprintf(&b, "%d. [%s] %s - %s\n   URL: %s\n   Category: %s",
			i+1, s.Jurisdiction, s.Name, s.Description, s.PortalURL, s.Category)
		if s.State != "" {
			fmt.Fprintf(&b, "\n   State: %s", s.State)
		}
	}

	b.WriteString("\n\nIMPORTANT: When providing scholarships, always order them as:\n")
	b.WriteString("1. State-level scholarships (for the student's state) - FIRST\n")
	b.WriteString("2. Central government scholarships - SECOND\n")
	b.WriteString("3. Private scholarships - THIRD\n\n")
	b.WriteString("Always provide direct links to scholarship portals when available.\n")
	return b.String()
}
