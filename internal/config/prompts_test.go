package config

import (
	"strings"
	"testing"
)

func TestPrompt_AllKindsPresent(t *testing.T) {
	for _, kind := range []string{"summary", "flashcards", "quiz", "mindmap", "slides"} {
		p, err := Prompt(kind)
		if err != nil {
			t.Fatalf("Prompt(%s) failed: %v", kind, err)
		}
		if strings.TrimSpace(p) != p || p == "" {
			t.Errorf("Prompt(%s) is not trimmed or empty: %q", kind, p)
		}
	}
}

func TestPrompt_UnknownKind(t *testing.T) {
	if _, err := Prompt("poster"); err == nil {
		t.Error("expected error for unknown kind")
	}
}

func TestParsePrompts_RejectsEmpty(t *testing.T) {
	if _, err := parsePrompts([]byte("summary: \"  \"\n")); err == nil {
		t.Error("expected error for empty template")
	}
}

func TestPrompt_ShapeHints(t *testing.T) {
	tests := map[string]string{
		"flashcards": `"front"`,
		"quiz":       `"options"`,
		"mindmap":    `"sub_title"`,
		"slides":     `"points"`,
	}
	for kind, hint := range tests {
		p, _ := Prompt(kind)
		if !strings.Contains(p, hint) {
			t.Errorf("Prompt(%s) lacks format hint %s", kind, hint)
		}
	}
}

func TestValidatePrompts(t *testing.T) {
	if err := ValidatePrompts("summary", "quiz"); err != nil {
		t.Errorf("known kinds rejected: %v", err)
	}
	if err := ValidatePrompts("summary", "poster"); err == nil {
		t.Error("expected an error for a kind without a template")
	}
}
