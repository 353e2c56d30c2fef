// Package render produces the server-rendered build views: the planner
// page, the shareable summary page, and static HTML exports. Build notes
// are markdown; catalog entity names inside them are highlighted before
// rendering.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/lumina-tools/planner/internal/catalog"
)

// Renderer renders build views against one catalog.
type Renderer struct {
	cat      *catalog.Catalog
	md       goldmark.Markdown
	page     *template.Template
	entities *regexp.Regexp
}

// New creates a Renderer for the catalog. The entity pattern matches every
// character, skill and item name as a whole word, longest name first so
// "Energising Start" wins over "Start".
func New(cat *catalog.Catalog) (*Renderer, error) {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithRendererOptions(
			html.WithUnsafe(),
		),
	)

	page, err := template.New("build").Parse(buildTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing build template: %w", err)
	}

	return &Renderer{
		cat:      cat,
		md:       md,
		page:     page,
		entities: entityPattern(cat),
	}, nil
}

// entityPattern compiles one alternation over all catalog names. Returns
// nil for an empty catalog; highlighting is then a no-op.
func entityPattern(cat *catalog.Catalog) *regexp.Regexp {
	var names []string
	for _, ch := range cat.Characters {
		names = append(names, ch.Name)
		for _, sk := range ch.Skills {
			names = append(names, sk.Name)
		}
	}
	for _, it := range cat.Items {
		names = append(names, it.Name)
	}
	if len(names) == 0 {
		return nil
	}

	sort.Slice(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(quoted, "|") + `)\b`)
}

// Comment renders the build notes: entity names wrapped in <mark>, then the
// whole text through markdown.
func (r *Renderer) Comment(comment string) (template.HTML, error) {
	if strings.TrimSpace(comment) == "" {
		return "", nil
	}

	source := comment
	if r.entities != nil {
		source = r.entities.ReplaceAllString(source, `<mark class="entity">$1</mark>`)
	}

	var buf bytes.Buffer
	if err := r.md.Convert([]byte(source), &buf); err != nil {
		return "", fmt.Errorf("rendering comment: %w", err)
	}
	return template.HTML(buf.String()), nil
}

// Page is everything the build template needs.
type Page struct {
	Title       string
	Build       catalog.ResolvedBuild
	CommentHTML template.HTML
	Token       string
	ShareURL    string
	Summary     bool
	// Recovered is set when the page was reached through a corrupt token
	// and the viewer is looking at a fresh build instead.
	Recovered bool
}

// Build writes the full HTML page for a resolved build.
func (r *Renderer) Build(w io.Writer, p Page) error {
	if p.Title == "" {
		p.Title = "Untitled build"
	}
	if err := r.page.Execute(w, p); err != nil {
		return fmt.Errorf("rendering build page: %w", err)
	}
	return nil
}
