package config

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed prompts.yaml
var promptsFile []byte

var (
	promptsOnce sync.Once
	prompts     map[string]string
	promptsErr  error
)

// Prompt returns the fixed instruction template for an artifact kind.
func Prompt(kind string) (string, error) {
	promptsOnce.Do(func() {
		prompts, promptsErr = parsePrompts(promptsFile)
	})
	if promptsErr != nil {
		return "", promptsErr
	}
	p, ok := prompts[kind]
	if !ok {
		return "", fmt.Errorf("no prompt template for %q", kind)
	}
	return p, nil
}

func parsePrompts(data []byte) (map[string]string, error) {
	var parsed map[string]string
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return nil, fmt.Errorf("parsing prompt templates: %w", err)
	}
	for kind, text := range parsed {
		text = strings.TrimSpace(text)
		if text == "" {
			return nil, fmt.Errorf("empty prompt template for %q", kind)
		}
		parsed[kind] = text
	}
	return parsed, nil
}

// ValidatePrompts reports the first kind without a usable template.
func ValidatePrompts(kinds ...string) error {
	for _, kind := range kinds {
		if _, err := Prompt(kind); err != nil {
			return err
		}
	}
	return nil
}
