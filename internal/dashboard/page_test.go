package dashboard

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

func TestAssemble(t *testing.T) {
	assembler, err := NewAssembler(nil)
	require.NoError(t, err)

	entries := []Entry{
		{ID: "a", Section: "Section 1: Quality", Heading: "Chart A", Description: "First & foremost", SVG: []byte(`<svg id="chart-a"></svg>`)},
		{ID: "b", Heading: "Chart B", Description: "Second", SVG: []byte(`<svg id="chart-b"></svg>`)},
		{ID: "c", Section: "Section 1: Quality", Heading: "Chart C", SVG: []byte(`<svg id="chart-c"></svg>`)},
		{ID: "d", Section: "Section 2: Stock", Heading: "Chart D", SVG: []byte(`<svg id="chart-d"></svg>`),
			Notes: []string{"Early Years (<2010): Corr=N/A"}},
	}

	page, err := assembler.Assemble(context.Background(), entries)
	require.NoError(t, err)
	html := string(page)

	assert.Contains(t, html, "<h1>Netflix Data Analysis Dashboard</h1>")
	assert.Contains(t, html, "<li>Netflix content data (movies &amp; TV shows)</li>")
	assert.Equal(t, 1, strings.Count(html, "<h2>Section 1: Quality</h2>"))
	assert.Equal(t, 1, strings.Count(html, "<h2>Section 2: Stock</h2>"))
	assert.Contains(t, html, `<svg id="chart-a"></svg>`)
	assert.Contains(t, html, "First &amp; foremost")
	assert.Contains(t, html, "Early Years (&lt;2010): Corr=N/A")
	assert.Contains(t, html, "<h2>Conclusion</h2>")

	assert.Less(t, strings.Index(html, "Chart A"), strings.Index(html, "Chart D"))
	assert.Less(t, strings.Index(html, "Chart D"), strings.Index(html, "Conclusion"))
}

func TestSectionBlocks(t *testing.T) {
	blocks := sectionBlocks([]Entry{
		{ID: "1", Section: "S1"},
		{ID: "2"},
		{ID: "3", Section: "S1"},
		{ID: "4", Section: "S2"},
		{ID: "5", Section: "S1"},
	})

	sections := make([]string, len(blocks))
	for i, b := range blocks {
		sections[i] = b.Section
	}
	assert.Equal(t, []string{"S1", "", "", "S2", "S1"}, sections)
}

func TestNotes(t *testing.T) {
	assert.Nil(t, Notes(&domain.YearValueTable{}))
	assert.Equal(t, []string{"early", "recent"}, Notes(&domain.VolatilityTable{
		Early:  domain.VolatilityCohort{Label: "early"},
		Recent: domain.VolatilityCohort{Label: "recent"},
	}))
}
