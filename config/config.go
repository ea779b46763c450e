// Package config loads leasap settings from a YAML file.
package config

import (
	"os"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/ByLCY/leasap/layout"
	"github.com/ByLCY/leasap/llm"
	"github.com/ByLCY/leasap/processing"
	"github.com/ByLCY/leasap/renderer"
)

// APIKeyEnv is read when the file leaves llm.api_key empty.
const APIKeyEnv = "OPENAI_API_KEY"

// Config is the file layout. Every section is optional.
type Config struct {
	Backend       string                         `yaml:"backend"`
	Page          layout.Config                  `yaml:"page"`
	LegacyCursor  bool                           `yaml:"legacy_cursor"`
	CanvasFonts   map[string]string              `yaml:"canvas_fonts"`
	LLM           llm.Config                     `yaml:"llm"`
	Questionnaire processing.QuestionnaireConfig `yaml:"questionnaire"`
	Summary       processing.SummaryConfig       `yaml:"summary"`
}

// Default returns the settings used when no file is given.
func Default() Config {
	return Config{
		Backend:       renderer.NameFPDF,
		Page:          layout.Config{Format: "letter", Orientation: "portrait", MarginPreset: "normal"},
		LLM:           llm.Config{Model: llm.DefaultModel},
		Questionnaire: processing.DefaultQuestionnaire,
		Summary:       processing.DefaultSummary,
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, errors.Wrap(err, "failed to read config")
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Wrapf(err, "failed to parse config %s", path)
		}
		if err := dropShadowedPresets(data, &cfg.Page); err != nil {
			return cfg, errors.Wrapf(err, "failed to parse config %s", path)
		}
	}
	if cfg.LLM.APIKey == "" {
		cfg.LLM.APIKey = os.Getenv(APIKeyEnv)
	}
	return cfg, cfg.Validate()
}

// pageKeys records which page keys a file actually wrote.
type pageKeys struct {
	Page struct {
		Format       *string    `yaml:"format"`
		Size         *yaml.Node `yaml:"size"`
		MarginPreset *string    `yaml:"margin_preset"`
		Margins      *yaml.Node `yaml:"margins"`
	} `yaml:"page"`
}

// dropShadowedPresets clears the default format/margin preset when the file
// gives an explicit size or margins without naming a preset, since presets
// win over explicit values during geometry resolution.
func dropShadowedPresets(data []byte, page *layout.Config) error {
	var keys pageKeys
	if err := yaml.Unmarshal(data, &keys); err != nil {
		return err
	}
	if keys.Page.Size != nil && keys.Page.Format == nil {
		page.Format = ""
	}
	if keys.Page.Margins != nil && keys.Page.MarginPreset == nil {
		page.MarginPreset = ""
	}
	return nil
}

// Validate checks the enumerated values.
func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case renderer.NameFPDF, renderer.NameCanvas, renderer.NameText:
	default:
		return errors.Wrapf(layout.ErrConfig, "unknown backend %q", c.Backend)
	}
	if _, err := layout.ResolveGeometry(c.Page); err != nil {
		return err
	}
	if _, err := c.Page.Font.Normalize(); err != nil {
		return err
	}
	if _, err := processing.ParseAnswerKind(string(c.Questionnaire.Kind)); err != nil {
		return err
	}
	if _, err := processing.ParseSummaryKind(string(c.Summary.Kind)); err != nil {
		return err
	}
	return nil
}
