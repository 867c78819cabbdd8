package tui

import (
	"fmt"
	"strings"

	"github.com/akolanti/StudyRAG/internal/api"
	"github.com/akolanti/StudyRAG/internal/client"
	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
)

func renderArtifact(kind artifactModel.Kind, resp client.ArtifactResponse) string {
	if resp.Error != "" {
		if resp.Raw != "" {
			return "Error: " + resp.Error + "\n\n" + mutedStyle.Render(resp.Raw)
		}
		return "Error: " + resp.Error
	}
	switch kind {
	case artifactModel.Summary:
		return resp.Summary
	case artifactModel.Flashcards:
		return renderFlashcards(resp.Flashcards)
	case artifactModel.Quiz:
		return renderQuiz(resp.Quiz)
	case artifactModel.MindMap:
		return renderMindMap(resp.InteractiveData)
	}
	return ""
}

func renderFlashcards(cards []artifactModel.Flashcard) string {
	if len(cards) == 0 {
		return "No flashcards."
	}
	var sb strings.Builder
	for i, card := range cards {
		fmt.Fprintf(&sb, "%s\n   %s\n\n", titleStyle.Render(fmt.Sprintf("%d. %s", i+1, card.Front)), card.Back)
	}
	return strings.TrimRight(sb.String(), "\n")
}

func renderQuiz(quiz []artifactModel.QuizQuestion) string {
	if len(quiz) == 0 {
		return "No questions."
	}
	var sb strings.Builder
	for i, q := range quiz {
		sb.WriteString(titleStyle.Render(fmt.Sprintf("%d. %s", i+1, q.Question)))
		sb.WriteString("\n")
		for j, opt := range q.Options {
			fmt.Fprintf(&sb, "   %d) %s\n", j+1, opt)
		}
		sb.WriteString("\n")
	}
	sb.WriteString(mutedStyle.Render("Answer with /answer <question#> <option#>"))
	return sb.String()
}

func renderMindMap(tree *artifactModel.MindMapTree) string {
	if tree == nil {
		return "No mind map."
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render(tree.Filename))
	for i, topic := range tree.Topics {
		branch, indent := "├─", "│  "
		if i == len(tree.Topics)-1 {
			branch, indent = "└─", "   "
		}
		fmt.Fprintf(&sb, "\n%s %s", branch, topic.Title)
		for j, point := range topic.Points {
			leaf := "├─"
			if j == len(topic.Points)-1 {
				leaf = "└─"
			}
			fmt.Fprintf(&sb, "\n%s%s %s: %s", indent, leaf, point.SubTitle, point.Description)
		}
	}
	return sb.String()
}

func renderDocument(doc api.DocumentResponse) string {
	return fmt.Sprintf("%s\n\nType: %s\nPages: %d\nChunks: %d\nIndexed: %s",
		titleStyle.Render(doc.Name), doc.ContentType, doc.PageCount, doc.ChunkCount, doc.IngestedAt.Format("2006-01-02 15:04"))
}
