package slides

import (
	"strings"

	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/akolanti/StudyRAG/pkg/pptx"
)

const (
	defaultDeckTitle  = "Presentation"
	defaultSlideTitle = "Topic"
)

// BuildDeck turns the first outline record into a title slide and every later one into a bulleted slide.
func BuildDeck(outline []artifactModel.Slide) pptx.Deck {
	deck := pptx.Deck{}
	for i, s := range outline {
		title := strings.TrimSpace(s.Title)
		if i == 0 {
			if title == "" {
				title = defaultDeckTitle
			}
			subtitle := ""
			if len(s.Points) > 0 {
				subtitle = s.Points[0]
			}
			deck.Title = title
			deck.Slides = append(deck.Slides, pptx.Slide{Layout: pptx.TitleLayout, Title: title, Subtitle: subtitle})
			continue
		}

		if title == "" {
			title = defaultSlideTitle
		}
		deck.Slides = append(deck.Slides, pptx.Slide{Layout: pptx.ContentLayout, Title: title, Bullets: s.Points})
	}
	return deck
}
