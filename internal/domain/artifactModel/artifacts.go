package artifactModel

import "fmt"

type Kind string

const (
	Summary    Kind = "summary"
	Flashcards Kind = "flashcards"
	Quiz       Kind = "quiz"
	MindMap    Kind = "mindmap"
	Slides     Kind = "slides"
)

var Kinds = []Kind{Summary, Flashcards, Quiz, MindMap, Slides}

func ParseKind(raw string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == raw {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown artifact kind %q", raw)
}

type Flashcard struct {
	Front string `json:"front"`
	Back  string `json:"back"`
}

type QuizQuestion struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
	Answer   string   `json:"answer"`
}

// IsCorrect compares a chosen option with the answer key by plain string equality.
func (q QuizQuestion) IsCorrect(choice string) bool {
	return choice == q.Answer
}

type MindMapPoint struct {
	SubTitle    string `json:"sub_title"`
	Description string `json:"description"`
}

type MindMapTopic struct {
	Title  string         `json:"title"`
	Points []MindMapPoint `json:"points"`
}

type MindMapTree struct {
	Filename string         `json:"filename"`
	Topics   []MindMapTopic `json:"topics"`
}

type Slide struct {
	Title  string   `json:"title"`
	Points []string `json:"points"`
}

// ArtifactError is returned in place of an artifact. Raw holds the model text when it could not be parsed.
type ArtifactError struct {
	Message string `json:"error"`
	Raw     string `json:"raw,omitempty"`
}

func (e *ArtifactError) Error() string {
	return e.Message
}

// Artifact carries exactly one populated field for its Kind, or Err.
type Artifact struct {
	Kind       Kind
	Summary    string
	Flashcards []Flashcard
	Quiz       []QuizQuestion
	MindMap    *MindMapTree
	Slides     []Slide
	Err        *ArtifactError
}

func (a Artifact) Failed() bool {
	return a.Err != nil
}
