package registry

import (
	"fmt"
	"strings"
)

// FormatForPrompt renders the catalog as compact text for inclusion in an
// LLM prompt. At most maxEntries executors are shown, each with at most
// maxSchemaProps schema properties, in registration order. The output is
// byte-identical across calls for the same catalog, which keeps prompts
// reproducible and cache-friendly.
func (r *Registry) FormatForPrompt(maxEntries, maxSchemaProps int) string {
	all := r.All()
	if len(all) == 0 {
		return "No executors are registered."
	}

	shown := all
	if maxEntries > 0 && len(shown) > maxEntries {
		shown = shown[:maxEntries]
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Available executors (%d of %d shown):\n", len(shown), len(all))

	for _, info := range shown {
		fmt.Fprintf(&b, "\n- %s: %s\n", info.ID, info.Description)

		props := info.Schema.Properties
		omitted := 0
		if maxSchemaProps > 0 && len(props) > maxSchemaProps {
			omitted = len(props) - maxSchemaProps
			props = props[:maxSchemaProps]
		}
		if len(props) > 0 {
			b.WriteString("  inputs:\n")
			for _, p := range props {
				if p.Required {
					fmt.Fprintf(&b, "    - %s (%s, required): %s\n", p.Name, p.Type, p.Description)
				} else {
					fmt.Fprintf(&b, "    - %s (%s): %s\n", p.Name, p.Type, p.Description)
				}
			}
		}
		if omitted > 0 {
			fmt.Fprintf(&b, "  (%d more properties omitted)\n", omitted)
		}
	}

	if len(shown) < len(all) {
		fmt.Fprintf(&b, "\n(%d more executors omitted)\n", len(all)-len(shown))
	}

	return b.String()
}
