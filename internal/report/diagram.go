package report

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/json-mapper/internal/mapping"
)

// Diagram renders doc as a mermaid flowchart from source to target fields.
// Mismatches appear as unconnected source nodes styled as mismatches.
func Diagram(doc *mapping.Document) string {
	var b strings.Builder
	b.WriteString("graph LR\n")

	for _, m := range doc.Mappings {
		from := node("s", m.SourceField)
		if m.TargetField == "" {
			fmt.Fprintf(&b, "    %s\n", from)
			continue
		}
		to := node("t", m.TargetField)
		if m.Type != "" {
			fmt.Fprintf(&b, "    %s -->|%s| %s\n", from, escapeMermaid(string(m.Type)), to)
		} else {
			fmt.Fprintf(&b, "    %s --> %s\n", from, to)
		}
	}

	for _, m := range doc.Mismatches {
		fmt.Fprintf(&b, "    %s:::mismatch\n", node("s", m.SourceField))
	}
	if len(doc.Mismatches) > 0 {
		b.WriteString("    classDef mismatch stroke:#c00,stroke-dasharray:4 2\n")
	}

	return b.String()
}

// node renders a labelled node. Source and target fields share a path
// syntax, so side keeps their IDs apart.
func node(side, path string) string {
	return fmt.Sprintf("%s_%s[\"%s\"]", side, sanitizeID(path), escapeMermaid(path))
}

// sanitizeID converts a string into a safe mermaid node ID.
func sanitizeID(s string) string {
	replacer := strings.NewReplacer(
		"/", "_",
		"\\", "_",
		".", "_",
		"-", "_",
		" ", "_",
		"(", "_",
		")", "_",
		"[", "_",
		"]", "_",
		"{", "_",
		"}", "_",
		":", "_",
		"|", "_",
		"\"", "_",
	)
	return replacer.Replace(s)
}

// escapeMermaid escapes characters that have special meaning in mermaid labels.
func escapeMermaid(s string) string {
	s = strings.ReplaceAll(s, "\"", "#quot;")
	s = strings.ReplaceAll(s, "(", "#lpar;")
	s = strings.ReplaceAll(s, ")", "#rpar;")
	s = strings.ReplaceAll(s, "[", "#lsqb;")
	s = strings.ReplaceAll(s, "]", "#rsqb;")
	s = strings.ReplaceAll(s, "{", "#lbrace;")
	s = strings.ReplaceAll(s, "}", "#rbrace;")
	s = strings.ReplaceAll(s, "<", "#lt;")
	s = strings.ReplaceAll(s, ">", "#gt;")
	s = strings.ReplaceAll(s, "|", "#124;")
	return s
}

// postProcessMermaid turns rendered mermaid code blocks into the divs the
// mermaid script draws.
func postProcessMermaid(html string) string {
	const openTag = `<pre><code class="language-mermaid">`
	const closeTag = `</code></pre>`

	for {
		idx := strings.Index(html, openTag)
		if idx == -1 {
			break
		}
		endIdx := strings.Index(html[idx:], closeTag)
		if endIdx == -1 {
			break
		}
		endIdx += idx

		content := html[idx+len(openTag) : endIdx]
		html = html[:idx] + `<div class="mermaid">` + content + `</div>` + html[endIdx+len(closeTag):]
	}

	return html
}
