package dashboard

import (
	"bytes"
	"context"
	"embed"
	"fmt"
	"html/template"
	"log/slog"

	"github.com/Xin-10/Netflix-Data-Visualization/internal/infrastructure"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts"
	"github.com/Xin-10/Netflix-Data-Visualization/pkg/contracts/domain"
)

//go:embed templates/page.html.tmpl
var templateFS embed.FS

const pageTitle = "Netflix Data Analysis Dashboard"

var (
	backgroundText = []string{
		"Many people claim that the quality of film and TV productions is declining. But is this true? " +
			"And if so, why would entertainment companies allow this to happen? " +
			"Does content quality have no impact on business performance?",
		"To explore these questions, we analyze three key Netflix datasets:",
	}

	datasetList = []string{
		"Netflix content data (movies & TV shows)",
		"IMDb ratings (quality metric)",
		"Netflix stock prices (business impact)",
	}

	approachText = "By examining trends in content quality, production, and their relationship " +
		"with stock performance, we aim to uncover meaningful insights."

	conclusionText = []string{
		"Our findings reveal that while Netflix content quality has declined, stock price movements are more " +
			"influenced by a combination of factors, including content volume, global expansion, the number of users, " +
			"and various other elements, rather than direct quality metrics.",
		"However, content quality may still play an indirect role by affecting subscriber engagement, brand loyalty, " +
			"and user retention. As Netflix continues to scale, balancing quality with quantity may become crucial " +
			"for long-term sustainability.",
	}
)

// Entry is one rendered chart in page order
type Entry struct {
	ID          string
	Section     string
	Heading     string
	Description string
	SVG         []byte
	Notes       []string
}

type pageBlock struct {
	ID          string
	Section     string
	Heading     string
	Description string
	SVG         template.HTML
	Notes       []string
}

type pageData struct {
	Title      string
	Background []string
	Datasets   []string
	Approach   string
	Blocks     []pageBlock
	Conclusion []string
	Footer     string
}

// Assembler lays rendered charts out on a single page between the
// background and conclusion text
type Assembler struct {
	tmpl   *template.Template
	logger *slog.Logger
}

// NewAssembler parses the embedded page template
func NewAssembler(logger *slog.Logger) (*Assembler, error) {
	if logger == nil {
		logger = slog.Default()
	}
	tmpl, err := template.ParseFS(templateFS, "templates/page.html.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse page template: %w", err)
	}
	return &Assembler{
		tmpl:   tmpl,
		logger: infrastructure.WithComponent(logger, "page_assembler"),
	}, nil
}

// Assemble renders the page. A section header is emitted whenever an entry
// names a section different from the last one shown.
func (a *Assembler) Assemble(ctx context.Context, entries []Entry) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data := pageData{
		Title:      pageTitle,
		Background: backgroundText,
		Datasets:   datasetList,
		Approach:   approachText,
		Blocks:     sectionBlocks(entries),
		Conclusion: conclusionText,
		Footer:     contracts.GetVersionString(),
	}

	var buf bytes.Buffer
	if err := a.tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to execute page template: %w", err)
	}

	a.logger.DebugContext(ctx, "page assembled",
		slog.Int("charts", len(entries)),
		slog.Int("bytes", buf.Len()))
	return buf.Bytes(), nil
}

func sectionBlocks(entries []Entry) []pageBlock {
	blocks := make([]pageBlock, 0, len(entries))
	current := ""
	for _, e := range entries {
		block := pageBlock{
			ID:          e.ID,
			Heading:     e.Heading,
			Description: e.Description,
			// Renderer escapes every dataset label it draws
			SVG:   template.HTML(e.SVG),
			Notes: e.Notes,
		}
		if e.Section != "" && e.Section != current {
			block.Section = e.Section
			current = e.Section
		}
		blocks = append(blocks, block)
	}
	return blocks
}

// Notes returns the text shown under a chart, the cohort correlation
// labels for the volatility comparison
func Notes(table domain.Table) []string {
	v, ok := table.(*domain.VolatilityTable)
	if !ok {
		return nil
	}
	return []string{v.Early.Label, v.Recent.Label}
}
