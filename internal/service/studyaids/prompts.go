package studyaids

import (
	"embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed prompts/*.yaml
var promptFiles embed.FS

// promptPair is one surface's system prompt plus its user-prompt template.
type promptPair struct {
	System string `yaml:"system"`
	Prompt string `yaml:"prompt"`
}

// PromptLibrary holds the parsed prompt templates for every study-aid
// surface, keyed by surface name.
type PromptLibrary struct {
	systems   map[string]string
	templates map[string]*template.Template
}

// LoadPromptLibrary parses the embedded template file and compiles every
// prompt template. Called once at startup; a malformed template is a wiring
// bug, not a runtime condition.
func LoadPromptLibrary() (*PromptLibrary, error) {
	data, err := promptFiles.ReadFile("prompts/templates.yaml")
	if err != nil {
		return nil, fmt.Errorf("read prompt templates: %w", err)
	}

	var raw map[string]promptPair
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse prompt templates: %w", err)
	}

	lib := &PromptLibrary{
		systems:   make(map[string]string, len(raw)),
		templates: make(map[string]*template.Template, len(raw)),
	}
	for name, pair := range raw {
		tmpl, err := template.New(name).Parse(pair.Prompt)
		if err != nil {
			return nil, fmt.Errorf("compile prompt template %q: %w", name, err)
		}
		lib.systems[name] = pair.System
		lib.templates[name] = tmpl
	}

	return lib, nil
}

// System returns the system prompt for a surface.
func (l *PromptLibrary) System(name string) string {
	return l.systems[name]
}

// Render fills the named prompt template with the given data.
func (l *PromptLibrary) Render(name string, data any) (string, error) {
	tmpl, ok := l.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown prompt template %q", name)
	}

	var sb strings.Builder
	if err := tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("render prompt template %q: %w", name, err)
	}
	return sb.String(), nil
}
