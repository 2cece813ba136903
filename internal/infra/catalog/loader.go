package catalog

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"hexageeky/internal/domain"
)

// Loader decodes catalog YAML into a validated domain.Catalog.
type Loader struct {
	logger *zap.Logger
}

func NewLoader(logger *zap.Logger) *Loader {
	if logger == nil {
		return &Loader{logger: zap.NewNop()}
	}
	return &Loader{logger: logger.Named("catalog")}
}

type rawCatalog struct {
	Tools []rawTool `mapstructure:"tools"`
}

type rawTool struct {
	ID          string   `mapstructure:"id"`
	Title       string   `mapstructure:"title"`
	Description string   `mapstructure:"description"`
	URL         string   `mapstructure:"url"`
	Category    string   `mapstructure:"category"`
	Tags        []string `mapstructure:"tags"`
	Features    []string `mapstructure:"features"`
	Favicon     string   `mapstructure:"favicon"`
}

// Load reads the catalog from path, or the embedded default directory
// when path is empty.
func (l *Loader) Load(path string) (domain.Catalog, error) {
	if path == "" {
		l.logger.Debug("loading embedded catalog")
		return l.Decode(defaultCatalogData)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return domain.Catalog{}, fmt.Errorf("read catalog: %w", err)
	}
	return l.Decode(data)
}

// Decode parses and validates catalog YAML.
func (l *Loader) Decode(data []byte) (domain.Catalog, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if err := v.ReadConfig(bytes.NewReader(data)); err != nil {
		return domain.Catalog{}, fmt.Errorf("parse catalog: %w", err)
	}

	var cfg rawCatalog
	if err := v.Unmarshal(&cfg); err != nil {
		return domain.Catalog{}, fmt.Errorf("decode catalog: %w", err)
	}
	if len(cfg.Tools) == 0 {
		return domain.Catalog{}, errors.New("catalog has no tools")
	}

	tools := make([]domain.Tool, 0, len(cfg.Tools))
	var validationErrors []string
	for i, raw := range cfg.Tools {
		tool, errs := normalizeTool(raw, i)
		validationErrors = append(validationErrors, errs...)
		tools = append(tools, tool)
	}
	if len(validationErrors) > 0 {
		return domain.Catalog{}, errors.New(strings.Join(validationErrors, "; "))
	}

	built, err := domain.NewCatalog(tools)
	if err != nil {
		return domain.Catalog{}, err
	}
	l.logger.Info("catalog loaded",
		zap.Int("tools", built.Len()),
		zap.Int("categories", len(built.Categories())),
	)
	return built, nil
}

func normalizeTool(raw rawTool, index int) (domain.Tool, []string) {
	var errs []string
	tool := domain.Tool{
		ID:          strings.TrimSpace(raw.ID),
		Title:       strings.TrimSpace(raw.Title),
		Description: strings.TrimSpace(raw.Description),
		URL:         strings.TrimSpace(raw.URL),
		Category:    strings.TrimSpace(raw.Category),
		Tags:        trimAll(raw.Tags),
		Features:    trimAll(raw.Features),
		Favicon:     strings.TrimSpace(raw.Favicon),
	}
	if tool.ID == "" {
		errs = append(errs, fmt.Sprintf("tools[%d]: id is required", index))
	}
	if tool.Title == "" {
		errs = append(errs, fmt.Sprintf("tools[%d]: title is required", index))
	}
	if tool.Category == "" {
		errs = append(errs, fmt.Sprintf("tools[%d]: category is required", index))
	}
	if tool.URL == "" {
		errs = append(errs, fmt.Sprintf("tools[%d]: url is required", index))
	} else if parsed, err := url.Parse(tool.URL); err != nil || !parsed.IsAbs() {
		errs = append(errs, fmt.Sprintf("tools[%d]: url must be absolute", index))
	}
	return tool, errs
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
