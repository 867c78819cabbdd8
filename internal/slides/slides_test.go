package slides

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"regexp"
	"testing"

	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/pkg/pptx"
)

var textRun = regexp.MustCompile(`<a:t>([^<]*)</a:t>`)

func slideTexts(t *testing.T, deck pptx.Deck) [][]string {
	t.Helper()
	var buf bytes.Buffer
	if err := deck.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("not a zip: %v", err)
	}

	var out [][]string
	for i := 1; ; i++ {
		f, err := zr.Open("ppt/slides/slide" + string(rune('0'+i)) + ".xml")
		if err != nil {
			break
		}
		body, _ := io.ReadAll(f)
		f.Close()
		var texts []string
		for _, m := range textRun.FindAllStringSubmatch(string(body), -1) {
			texts = append(texts, m[1])
		}
		out = append(out, texts)
	}
	return out
}

func TestBuildDeck_TwoSlides(t *testing.T) {
	var outline []artifactModel.Slide
	raw := `[{"title":"T1","points":["p1"]},{"title":"T2","points":["a","b"]}]`
	if err := json.Unmarshal([]byte(raw), &outline); err != nil {
		t.Fatal(err)
	}

	deck := BuildDeck(outline)
	if len(deck.Slides) != 2 {
		t.Fatalf("got %d slides, want 2", len(deck.Slides))
	}
	if deck.Slides[0].Layout != pptx.TitleLayout || deck.Slides[1].Layout != pptx.ContentLayout {
		t.Errorf("layouts = %v, %v", deck.Slides[0].Layout, deck.Slides[1].Layout)
	}

	texts := slideTexts(t, deck)
	if len(texts) != 2 {
		t.Fatalf("archive holds %d slides, want 2", len(texts))
	}
	if len(texts[0]) != 2 || texts[0][0] != "T1" || texts[0][1] != "p1" {
		t.Errorf("slide 1 texts = %v, want [T1 p1]", texts[0])
	}
	if len(texts[1]) != 3 || texts[1][0] != "T2" || texts[1][1] != "a" || texts[1][2] != "b" {
		t.Errorf("slide 2 texts = %v, want [T2 a b]", texts[1])
	}
}

func TestBuildDeck_Defaults(t *testing.T) {
	tests := []struct {
		name    string
		outline []artifactModel.Slide
		titles  []string
		sub     string
	}{
		{"missing titles", []artifactModel.Slide{{}, {Points: []string{"x"}}}, []string{"Presentation", "Topic"}, ""},
		{"title only", []artifactModel.Slide{{Title: "Solo"}}, []string{"Solo"}, ""},
		{"subtitle is first point", []artifactModel.Slide{{Title: "Deck", Points: []string{"first", "second"}}}, []string{"Deck"}, "first"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			deck := BuildDeck(tt.outline)
			if len(deck.Slides) != len(tt.titles) {
				t.Fatalf("got %d slides", len(deck.Slides))
			}
			for i, want := range tt.titles {
				if deck.Slides[i].Title != want {
					t.Errorf("slide %d title = %q, want %q", i, deck.Slides[i].Title, want)
				}
			}
			if deck.Slides[0].Subtitle != tt.sub {
				t.Errorf("subtitle = %q, want %q", deck.Slides[0].Subtitle, tt.sub)
			}
		})
	}
}

func TestBuildDeck_Empty(t *testing.T) {
	if deck := BuildDeck(nil); len(deck.Slides) != 0 {
		t.Errorf("got %d slides from an empty outline", len(deck.Slides))
	}
}
