// Package pptx writes minimal Office Open XML presentations: one master, a title
// layout and a title-and-content layout, and plain text slides.
package pptx

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"text/template"
	"time"
)

type Layout int

const (
	TitleLayout Layout = iota
	ContentLayout
)

// Slide is one page. Subtitle is only rendered by TitleLayout, Bullets only by ContentLayout.
type Slide struct {
	Layout   Layout
	Title    string
	Subtitle string
	Bullets  []string
}

type Deck struct {
	Title  string
	Slides []Slide
}

var ErrEmptyDeck = errors.New("deck has no slides")

type part struct {
	name string
	body []byte
}

// Write streams the deck as a .pptx zip archive.
func (d Deck) Write(w io.Writer) error {
	if len(d.Slides) == 0 {
		return ErrEmptyDeck
	}
	parts, err := d.parts()
	if err != nil {
		return err
	}

	zw := zip.NewWriter(w)
	for _, p := range parts {
		f, err := zw.CreateHeader(&zip.FileHeader{Name: p.name, Method: zip.Deflate, Modified: time.Now()})
		if err != nil {
			return fmt.Errorf("pptx: creating %s: %w", p.name, err)
		}
		if _, err = f.Write(p.body); err != nil {
			return fmt.Errorf("pptx: writing %s: %w", p.name, err)
		}
	}
	return zw.Close()
}

// WriteFile writes the deck to path, replacing any existing file.
func (d Deck) WriteFile(path string) error {
	if len(d.Slides) == 0 {
		return ErrEmptyDeck
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err = d.Write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (d Deck) parts() ([]part, error) {
	title := d.Title
	if title == "" && len(d.Slides) > 0 {
		title = d.Slides[0].Title
	}
	data := deckData{Title: title, Slides: d.Slides, Created: time.Now().UTC().Format(time.RFC3339)}

	parts := []part{
		{"_rels/.rels", []byte(rootRels)},
		{"ppt/slideMasters/slideMaster1.xml", []byte(slideMaster)},
		{"ppt/slideMasters/_rels/slideMaster1.xml.rels", []byte(slideMasterRels)},
		{"ppt/slideLayouts/slideLayout1.xml", []byte(titleLayout)},
		{"ppt/slideLayouts/_rels/slideLayout1.xml.rels", []byte(layoutRels)},
		{"ppt/slideLayouts/slideLayout2.xml", []byte(contentLayout)},
		{"ppt/slideLayouts/_rels/slideLayout2.xml.rels", []byte(layoutRels)},
		{"ppt/theme/theme1.xml", []byte(theme)},
	}

	rendered := []renderJob{
		{"[Content_Types].xml", contentTypesTmpl, data},
		{"docProps/core.xml", coreTmpl, data},
		{"docProps/app.xml", appTmpl, data},
		{"ppt/presentation.xml", presentationTmpl, data},
		{"ppt/_rels/presentation.xml.rels", presentationRelsTmpl, data},
	}
	for i, s := range d.Slides {
		rendered = append(rendered,
			renderJob{fmt.Sprintf("ppt/slides/slide%d.xml", i+1), slideTmpl, s},
			renderJob{fmt.Sprintf("ppt/slides/_rels/slide%d.xml.rels", i+1), slideRelsTmpl, s},
		)
	}

	for _, r := range rendered {
		var buf bytes.Buffer
		if err := r.tmpl.Execute(&buf, r.data); err != nil {
			return nil, fmt.Errorf("pptx: rendering %s: %w", r.name, err)
		}
		parts = append(parts, part{r.name, buf.Bytes()})
	}
	return parts, nil
}

type renderJob struct {
	name string
	tmpl *template.Template
	data any
}

type deckData struct {
	Title   string
	Slides  []Slide
	Created string
}

func escape(s string) (string, error) {
	var buf bytes.Buffer
	if err := xml.EscapeText(&buf, []byte(s)); err != nil {
		return "", err
	}
	return buf.String(), nil
}

var funcs = template.FuncMap{
	"x":   escape,
	"inc": func(i int) int { return i + 1 },
	"add": func(a, b int) int { return a + b },
	"isTitle": func(l Layout) bool {
		return l == TitleLayout
	},
}

func mustParse(name string, text string) *template.Template {
	return template.Must(template.New(name).Funcs(funcs).Parse(text))
}
