// internal/scholarship/format_test.go
package scholarship

import (
	"strings"
	"testing"

	"scholarship-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestFormatPortalsForChat(t *testing.T) {
	assert.Equal(t, "No scholarships found matching your criteria.", FormatPortalsForChat(nil))

	list := OrderPortals(Portals(), "Bihar")[:3]
	out := FormatPortalsForChat(list)

	want := "I found 3 scholarship(s) for you:\n\n" +
		"**State Scholarships:**\n" +
		"1. **Bihar Scholarship Portal**\n" +
		"   - Official Bihar government scholarship programs\n" +
		"   - Portal: https://scholarship.bih.nic.in\n" +
		"   - Eligibility: Bihar residents with merit requirements\n\n" +
		"\n**Central Scholarships:**\n" +
		"2. **National Scholarship Portal (NSP)**\n" +
		"   - Official portal for all central government scholarship schemes\n" +
		"   - Portal: https://scholarships.gov.in\n" +
		"   - Eligibility: Various - Income, merit, and category-based\n\n" +
		"3. **Ministry of Minority Affairs Scholarships**\n" +
		"   - Scholarships for minority community students\n" +
		"   - Portal: https://www.scholarships.gov.in\n" +
		"   - Eligibility: Minority communities with merit requirements\n\n"
	assert.Equal(t, want, out)
}

func TestFormatPriorityList_WithState(t *testing.T) {
	out := FormatPriorityList("Bihar")

	assert.True(t, strings.HasPrefix(out, "Based on your profile (State: Bihar), here are scholarships ordered by priority:\n\n"))
	assert.Contains(t, out, "**1. State-Level Scholarships (3):**\n1. **Bihar Scholarship Portal**\n")
	assert.Contains(t, out, "**2. Central Government Scholarships (12):**")
	assert.Contains(t, out, "**3. Private Scholarships (8):**")
	assert.NotContains(t, out, "Tamil Nadu Scholarship Portal")
	// sections are capped at five entries
	assert.Equal(t, 3+5+5, strings.Count(out, "🔗"))
	assert.True(t, strings.HasSuffix(out, "Ask me for more details about any specific scholarship!*"))
}

func TestFormatPriorityList_NoState(t *testing.T) {
	out := FormatPriorityList("")

	assert.Contains(t, out, "complete your profile to see state-specific ones")
	assert.Contains(t, out, "**1. Central Government Scholarships (12):**")
	assert.Contains(t, out, "**2. Private Scholarships (8):**")
	assert.NotContains(t, out, "State-Level")
	assert.Equal(t, 10, strings.Count(out, "🔗"))
}

func TestBuildChatContext(t *testing.T) {
	out := BuildChatContext("Bihar")

	assert.Contains(t, out, "STUDENT SCHOLARSHIP DATA:")
	assert.Contains(t, out, "Scholarship Portals (10 total):\n1. [State] Bihar Scholarship Portal")
	assert.Contains(t, out, "Individual Scholarships (22 total):\n1. [State] Chief Minister's Bicycle Scheme (Bihar)")
	assert.Contains(t, out, "   State: Bihar")
	assert.Contains(t, out, "1. State-level scholarships (for the student's state) - FIRST")
}

func TestCatalogEntryAccessors(t *testing.T) {
	entries := Entries()
	assert.Len(t, entries, 32)

	first := entries[0]
	assert.Equal(t, models.EntryKindPortal, first.Kind)
	assert.Equal(t, "nsp", first.ID())
	assert.Equal(t, []string{models.AllStates}, first.States())

	last := entries[len(entries)-1]
	assert.Equal(t, models.EntryKindIndividual, last.Kind)
	assert.Equal(t, "Axis Bank Foundation Scholarship", last.Name())
	assert.Nil(t, last.States())
}
