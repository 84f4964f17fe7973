package formatter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/vocnav/internal/catalog"
)

func TestRenderMarkdown_Plain(t *testing.T) {
	out := RenderMarkdown("# Admission\n\nBring your **passport**.", MarkdownPlain, 60)
	assert.Contains(t, out, "Admission")
	assert.Contains(t, out, "passport")
}

func TestSpecialtyMarkdown(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	s, ok := cat.Specialty("09.02.07")
	require.True(t, ok)

	md := SpecialtyMarkdown(s, cat.CollegesFor(s.ID))
	assert.Contains(t, md, "# "+s.Title)
	assert.Contains(t, md, "### Salary")
	assert.Contains(t, md, "### Where to study")
}

func TestCollegeMarkdown_SkipsMissingContacts(t *testing.T) {
	c := catalog.College{ID: "x", Name: "Test College", City: "Omsk", Contacts: catalog.Contacts{Phone: "123"}}
	md := CollegeMarkdown(c, nil)
	assert.Contains(t, md, "Phone: 123")
	assert.NotContains(t, md, "Website")
	assert.NotContains(t, md, "### Campus")
}

