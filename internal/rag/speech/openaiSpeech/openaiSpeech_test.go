package openaiSpeech

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/akolanti/StudyRAG/pkg/logger_i"
)

type fakeSpeech struct {
	inputs []string
	failOn int
}

func (f *fakeSpeech) speak(ctx context.Context, input string) (io.ReadCloser, error) {
	f.inputs = append(f.inputs, input)
	if f.failOn > 0 && len(f.inputs) == f.failOn {
		return nil, errors.New("quota exceeded")
	}
	return io.NopCloser(strings.NewReader("<mp3 " + string(rune('0'+len(f.inputs))) + ">")), nil
}

func newTestSynthesizer(f *fakeSpeech) *synthesizer {
	return &synthesizer{speak: f.speak, logger: logger_i.NewLogger("speech_test")}
}

func TestSynthesize_ShortTextIsOneCall(t *testing.T) {
	f := &fakeSpeech{}
	body, err := newTestSynthesizer(f).Synthesize(context.Background(), "Cells are alive.")
	if err != nil {
		t.Fatal(err)
	}
	defer body.Close()
	audio, _ := io.ReadAll(body)

	if len(f.inputs) != 1 || f.inputs[0] != "Cells are alive." {
		t.Errorf("inputs = %q", f.inputs)
	}
	if string(audio) != "<mp3 1>" {
		t.Errorf("audio = %q", audio)
	}
}

func TestSynthesize_LongTextIsSplitAndJoined(t *testing.T) {
	sentence := "Mitochondria produce most of the chemical energy a cell needs. "
	text := strings.Repeat(sentence, 200) // about 12,600 characters
	f := &fakeSpeech{}

	body, err := newTestSynthesizer(f).Synthesize(context.Background(), text)
	if err != nil {
		t.Fatal(err)
	}
	defer body.Close()
	audio, _ := io.ReadAll(body)

	if len(f.inputs) < 4 {
		t.Fatalf("expected at least 4 calls, got %d", len(f.inputs))
	}
	var spoken []string
	for i, in := range f.inputs {
		if n := utf8.RuneCountInString(in); n > maxInputChars {
			t.Errorf("piece %d has %d characters", i, n)
		}
		if !strings.HasSuffix(in, ".") {
			t.Errorf("piece %d does not end on a sentence: %q", i, in[len(in)-20:])
		}
		spoken = append(spoken, in)
	}
	if strings.Join(spoken, " ") != strings.TrimSpace(text) {
		t.Error("pieces do not add back up to the input")
	}
	want := ""
	for i := range f.inputs {
		want += "<mp3 " + string(rune('1'+i)) + ">"
	}
	if string(audio) != want {
		t.Errorf("audio = %q, want %q", audio, want)
	}
}

func TestSynthesize_PieceFailureFailsTheWhole(t *testing.T) {
	f := &fakeSpeech{failOn: 2}
	_, err := newTestSynthesizer(f).Synthesize(context.Background(), strings.Repeat("word ", 2000))
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("err = %v", err)
	}
}

func TestSynthesize_EmptyText(t *testing.T) {
	f := &fakeSpeech{}
	if _, err := newTestSynthesizer(f).Synthesize(context.Background(), "  \n "); err == nil {
		t.Error("expected an error for blank text")
	}
	if len(f.inputs) != 0 {
		t.Error("blank text reached the provider")
	}
}

func TestSplitForSpeech(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		limit int
		want  []string
	}{
		{"fits", "one two", 10, []string{"one two"}},
		{"sentence boundary", "One two. Three four five.", 16, []string{"One two.", "Three four five."}},
		{"space boundary", "alpha beta gamma", 11, []string{"alpha beta", "gamma"}},
		{"hard cut", "abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"multibyte", "ééééé ééééé", 5, []string{"ééééé", "ééééé"}},
		{"blank", "   ", 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := splitForSpeech(tt.text, tt.limit)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") || len(got) != len(tt.want) {
				t.Errorf("splitForSpeech(%q, %d) = %q, want %q", tt.text, tt.limit, got, tt.want)
			}
		})
	}
}
