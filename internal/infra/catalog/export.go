package catalog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"hexageeky/internal/domain"
)

type exportCatalog struct {
	Tools []exportTool `yaml:"tools"`
}

type exportTool struct {
	ID          string   `yaml:"id"`
	Title       string   `yaml:"title"`
	Description string   `yaml:"description,omitempty"`
	URL         string   `yaml:"url"`
	Category    string   `yaml:"category"`
	Tags        []string `yaml:"tags,omitempty"`
	Features    []string `yaml:"features,omitempty"`
	Favicon     string   `yaml:"favicon,omitempty"`
}

// Export writes the catalog back out as normalized YAML, in catalog
// order. Round-trips through Loader.Decode.
func Export(c domain.Catalog, w io.Writer) error {
	out := exportCatalog{Tools: make([]exportTool, 0, c.Len())}
	for _, tool := range c.Tools() {
		out.Tools = append(out.Tools, exportTool{
			ID:          tool.ID,
			Title:       tool.Title,
			Description: tool.Description,
			URL:         tool.URL,
			Category:    tool.Category,
			Tags:        tool.Tags,
			Features:    tool.Features,
			Favicon:     tool.Favicon,
		})
	}
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(out); err != nil {
		return fmt.Errorf("encode catalog: %w", err)
	}
	return encoder.Close()
}
