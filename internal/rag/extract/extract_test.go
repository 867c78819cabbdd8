package extract

import (
	"errors"
	"testing"
)

func TestJSONArray(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "prose and fence around array",
			input: "Intro text ```json [{\"front\":\"Q\",\"back\":\"A\"}] ``` outro",
			want:  `[{"front":"Q","back":"A"}]`,
		},
		{
			name:  "clean array",
			input: `[{"title":"T1","points":["p1"]}]`,
			want:  `[{"title":"T1","points":["p1"]}]`,
		},
		{
			name:  "nested arrays keep outer span",
			input: "Here you go:\n[[1,2],[3]]\nThanks",
			want:  "[[1,2],[3]]",
		},
		{
			name:    "no brackets",
			input:   "I cannot answer",
			wantErr: true,
		},
		{
			name:    "only opening bracket",
			input:   "[{\"front\":\"Q\"",
			wantErr: true,
		},
		{
			name:    "closing before opening",
			input:   "] nothing [",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := JSONArray(tt.input)
			if tt.wantErr {
				if !errors.Is(err, ErrNoSpan) {
					t.Fatalf("expected ErrNoSpan, got %v (%q)", err, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestJSONObject(t *testing.T) {
	got, err := JSONObject("Sure! ```json\n{\"filename\":\"a.pdf\",\"topics\":[]}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"filename":"a.pdf","topics":[]}` {
		t.Errorf("got %q", got)
	}

	if _, err := JSONObject("no object here"); err == nil {
		t.Error("expected error when braces are absent")
	}
}

func TestStripFences(t *testing.T) {
	if got := StripFences("```json\n[1]\n```"); got != "[1]" {
		t.Errorf("got %q", got)
	}
	if got := StripFences("plain"); got != "plain" {
		t.Errorf("got %q", got)
	}
}
