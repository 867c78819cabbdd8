package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readZip(t *testing.T, data []byte) map[string]string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("output is not a zip: %v", err)
	}
	files := make(map[string]string)
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, _ := io.ReadAll(rc)
		rc.Close()
		files[f.Name] = string(b)
	}
	return files
}

func TestDeckWrite_Parts(t *testing.T) {
	deck := Deck{Slides: []Slide{
		{Layout: TitleLayout, Title: "Cells", Subtitle: "An overview"},
		{Layout: ContentLayout, Title: "Organelles", Bullets: []string{"Nucleus", "Mitochondria"}},
	}}

	var buf bytes.Buffer
	if err := deck.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	files := readZip(t, buf.Bytes())

	required := []string{
		"[Content_Types].xml", "_rels/.rels", "docProps/core.xml", "docProps/app.xml",
		"ppt/presentation.xml", "ppt/_rels/presentation.xml.rels",
		"ppt/slideMasters/slideMaster1.xml", "ppt/slideLayouts/slideLayout1.xml",
		"ppt/slideLayouts/slideLayout2.xml", "ppt/theme/theme1.xml",
		"ppt/slides/slide1.xml", "ppt/slides/slide2.xml",
		"ppt/slides/_rels/slide1.xml.rels", "ppt/slides/_rels/slide2.xml.rels",
	}
	for _, name := range required {
		if _, ok := files[name]; !ok {
			t.Errorf("missing part %s", name)
		}
	}

	for name, body := range files {
		if err := wellFormed(body); err != nil {
			t.Errorf("%s is not well-formed xml: %v", name, err)
		}
	}

	if !strings.Contains(files["ppt/slides/_rels/slide1.xml.rels"], "slideLayout1.xml") {
		t.Error("title slide not bound to the title layout")
	}
	if !strings.Contains(files["ppt/slides/_rels/slide2.xml.rels"], "slideLayout2.xml") {
		t.Error("content slide not bound to the content layout")
	}
	if strings.Count(files["ppt/presentation.xml"], "<p:sldId ") != 2 {
		t.Error("presentation does not list two slides")
	}
	if strings.Count(files["[Content_Types].xml"], "/ppt/slides/slide") != 2 {
		t.Error("content types do not register two slides")
	}
	if !strings.Contains(files["docProps/core.xml"], "<dc:title>Cells</dc:title>") {
		t.Error("deck title falls back to the first slide title")
	}
}

func TestDeckWrite_EscapesText(t *testing.T) {
	deck := Deck{Slides: []Slide{{Layout: ContentLayout, Title: "A & B <C>", Bullets: []string{`"quoted" & 'single'`}}}}

	var buf bytes.Buffer
	if err := deck.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	slide := readZip(t, buf.Bytes())["ppt/slides/slide1.xml"]
	if err := wellFormed(slide); err != nil {
		t.Fatalf("slide is not well-formed: %v", err)
	}
	if !strings.Contains(slide, "A &amp; B &lt;C&gt;") {
		t.Errorf("title not escaped: %s", slide)
	}
}

func TestDeckWrite_Empty(t *testing.T) {
	if err := (Deck{}).Write(io.Discard); !errors.Is(err, ErrEmptyDeck) {
		t.Errorf("err = %v, want ErrEmptyDeck", err)
	}
}

func wellFormed(body string) error {
	dec := xml.NewDecoder(strings.NewReader(body))
	for {
		_, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
	}
}

func TestDeckWriteFile_EmptyLeavesNoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.pptx")
	if err := (Deck{}).WriteFile(path); !errors.Is(err, ErrEmptyDeck) {
		t.Fatalf("err = %v, want ErrEmptyDeck", err)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Errorf("empty deck created %s (stat err %v)", path, err)
	}
}
