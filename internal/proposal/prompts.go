package proposal

import (
	"fmt"
	"strings"

	"github.com/ziadkadry99/json-mapper/internal/fields"
)

const systemPrompt = `You align the fields of two JSON schemas. You answer with JSON only.`

const instructions = `Map every field of the source schema to the field of the target schema
that carries the same information, and rate each pair with a color:

- green: same meaning and the same data type.
- yellow: same meaning with a different data type, or a similar name
  (for example currency and currency_code).
- red: the source field has no counterpart in the target, or the types
  cannot be reconciled. Leave j2_field empty.

Answer with a JSON object of this exact shape and nothing else:
{"mappings": [{"j1_field": "", "j2_field": "", "type": "", "color": ""}]}

"type" is the source value type, one of: str, float, number, boolean, null, list, unknown.`

// BuildPrompt renders the user prompt listing both schemas' fields.
func BuildPrompt(source, target []fields.Field) string {
	var b strings.Builder
	b.WriteString(instructions)
	b.WriteString("\n\n### Source fields (j1)\n")
	writeFields(&b, source)
	b.WriteString("\n### Target fields (j2)\n")
	writeFields(&b, target)
	return b.String()
}

func writeFields(b *strings.Builder, list []fields.Field) {
	for _, f := range list {
		fmt.Fprintf(b, "%s (%s)\n", f.Path, f.Kind)
	}
}
