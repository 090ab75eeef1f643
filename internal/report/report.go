package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/ziadkadry99/json-mapper/internal/confidence"
	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// DefaultTitle heads reports rendered without an explicit title.
const DefaultTitle = "Mapping report"

// Markdown renders doc as a Markdown report: a summary of counts by
// confidence tag, the mapping and mismatch tables, then a mermaid diagram.
func Markdown(title string, doc *mapping.Document) string {
	if title == "" {
		title = DefaultTitle
	}
	st := doc.Stats()

	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", title)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Confidence | Mappings |\n|---|---|\n")
	for _, tag := range confidence.Tags {
		fmt.Fprintf(&b, "| %s | %d |\n", tag, st.ByConfidence[tag])
	}
	fmt.Fprintf(&b, "\n%d mappings, %d mismatches.\n\n", st.Mappings, st.Mismatches)

	b.WriteString("## Mappings\n\n")
	if len(doc.Mappings) == 0 {
		b.WriteString("No mappings.\n\n")
	} else {
		b.WriteString("| Source field | Target field | Type | Confidence |\n|---|---|---|---|\n")
		for _, m := range doc.Mappings {
			fmt.Fprintf(&b, "| %s | %s | %s | %s |\n", cell(m.SourceField), cell(m.TargetField), cell(string(m.Type)), cell(string(m.Confidence)))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Mismatches\n\n")
	if len(doc.Mismatches) == 0 {
		b.WriteString("No mismatches.\n")
	} else {
		b.WriteString("| Source field | Type | Confidence |\n|---|---|---|\n")
		for _, m := range doc.Mismatches {
			fmt.Fprintf(&b, "| %s | %s | %s |\n", cell(m.SourceField), cell(string(m.SourceType)), cell(string(m.Confidence)))
		}
	}

	if len(doc.Mappings)+len(doc.Mismatches) > 0 {
		b.WriteString("\n## Diagram\n\n```mermaid\n")
		b.WriteString(Diagram(doc))
		b.WriteString("```\n")
	}
	return b.String()
}

// HTML renders the Markdown report as a standalone HTML page.
func HTML(title string, doc *mapping.Document) ([]byte, error) {
	if title == "" {
		title = DefaultTitle
	}

	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)

	var body bytes.Buffer
	if err := md.Convert([]byte(Markdown(title, doc)), &body); err != nil {
		return nil, fmt.Errorf("converting markdown: %w", err)
	}

	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	var out bytes.Buffer
	err = tmpl.Execute(&out, struct {
		Title   string
		Content template.HTML
	}{title, template.HTML(postProcessMermaid(body.String()))})
	if err != nil {
		return nil, fmt.Errorf("rendering page: %w", err)
	}
	return out.Bytes(), nil
}

// cell escapes characters that would break a GFM table row.
func cell(s string) string {
	if s == "" {
		return " "
	}
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

const pageTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8">
  <title>{{.Title}}</title>
  <script src="https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.min.js"></script>
  <style>
    body { font-family: system-ui, sans-serif; max-width: 960px; margin: 2rem auto; padding: 0 1rem; }
    table { border-collapse: collapse; margin-bottom: 1.5rem; }
    th, td { border: 1px solid #ccc; padding: 0.3rem 0.7rem; text-align: left; }
  </style>
</head>
<body>
{{.Content}}
<script>mermaid.initialize({ startOnLoad: true });</script>
</body>
</html>
`
