// Copyright 2025 Rizome Labs, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package prompts provides prompt templates for seeding agent memory
package prompts

import (
	"bytes"
	"embed"
	"fmt"
	"strings"
	"text/template"

	"gopkg.in/yaml.v3"
)

//go:embed *.yaml
var promptFiles embed.FS

// PromptTemplate represents a loaded prompt template
type PromptTemplate struct {
	SystemPrompt       string                 `yaml:"system_prompt"`
	InitialFactsPrompt string                 `yaml:"initial_facts_prompt"`
	InitialPlanPrompt  string                 `yaml:"initial_plan_prompt"`
	DefaultVariables   map[string]interface{} `yaml:"default_variables"`
}

// PromptManager manages prompt templates loaded from the embedded YAML files
type PromptManager struct {
	templates map[string]*PromptTemplate
}

// NewPromptManager creates a new prompt manager
func NewPromptManager() (*PromptManager, error) {
	pm := &PromptManager{
		templates: make(map[string]*PromptTemplate),
	}

	entries, err := promptFiles.ReadDir(".")
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt files: %w", err)
	}

	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(name, ".yaml") {
			continue
		}

		data, err := promptFiles.ReadFile(name)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", name, err)
		}

		var tmpl PromptTemplate
		if err := yaml.Unmarshal(data, &tmpl); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", name, err)
		}

		pm.templates[strings.TrimSuffix(name, ".yaml")] = &tmpl
	}

	return pm, nil
}

// Get returns the template with the given name
func (pm *PromptManager) Get(name string) (*PromptTemplate, error) {
	tmpl, ok := pm.templates[name]
	if !ok {
		return nil, fmt.Errorf("unknown prompt template %q", name)
	}
	return tmpl, nil
}

// Names returns the names of all loaded templates
func (pm *PromptManager) Names() []string {
	names := make([]string, 0, len(pm.templates))
	for name := range pm.templates {
		names = append(names, name)
	}
	return names
}

// RenderSystemPrompt renders the named template's system prompt with the
// given variables merged over the template defaults
func (pm *PromptManager) RenderSystemPrompt(name string, variables map[string]interface{}) (string, error) {
	tmpl, err := pm.Get(name)
	if err != nil {
		return "", err
	}
	return render(tmpl.SystemPrompt, tmpl.merged(variables))
}

// RenderInitialFactsPrompt renders the facts-survey prompt for a task
func (pm *PromptManager) RenderInitialFactsPrompt(name string, variables map[string]interface{}) (string, error) {
	tmpl, err := pm.Get(name)
	if err != nil {
		return "", err
	}
	return render(tmpl.InitialFactsPrompt, tmpl.merged(variables))
}

// RenderInitialPlanPrompt renders the plan-derivation prompt for a task
func (pm *PromptManager) RenderInitialPlanPrompt(name string, variables map[string]interface{}) (string, error) {
	tmpl, err := pm.Get(name)
	if err != nil {
		return "", err
	}
	return render(tmpl.InitialPlanPrompt, tmpl.merged(variables))
}

func (pt *PromptTemplate) merged(variables map[string]interface{}) map[string]interface{} {
	merged := make(map[string]interface{}, len(pt.DefaultVariables)+len(variables))
	for k, v := range pt.DefaultVariables {
		merged[k] = v
	}
	for k, v := range variables {
		merged[k] = v
	}
	return merged
}

func render(text string, variables map[string]interface{}) (string, error) {
	tmpl, err := template.New("prompt").Option("missingkey=zero").Parse(text)
	if err != nil {
		return "", fmt.Errorf("failed to parse prompt template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, variables); err != nil {
		return "", fmt.Errorf("failed to render prompt template: %w", err)
	}
	return buf.String(), nil
}
