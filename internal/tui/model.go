package tui

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/akolanti/StudyRAG/internal/api"
	"github.com/akolanti/StudyRAG/internal/client"
	"github.com/akolanti/StudyRAG/internal/domain/artifactModel"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

const helpText = `Type a question and press Enter, or use a command:
  /upload <path>        index a document
  /summary              markdown summary
  /flashcards           flashcards
  /quiz                 multiple choice quiz
  /answer <q#> <opt#>   check a quiz answer
  /mindmap              topic tree
  /slides [out.pptx]    download a slide deck
  /audio [out.mp3]      narrate the last summary
  /doc                  show the indexed document
  /quit`

// StudyPort is the TUI-facing subset of the API client.
type StudyPort interface {
	Upload(ctx context.Context, path string) (api.UploadResponse, error)
	Ask(ctx context.Context, question string) (api.AskResponse, error)
	Generate(ctx context.Context, kind artifactModel.Kind) (client.ArtifactResponse, error)
	Slides(ctx context.Context, outPath string) error
	Audio(ctx context.Context, text string, outPath string) error
	Document(ctx context.Context) (api.DocumentResponse, error)
}

// Session is what the client remembers between calls: the tool last used and what it returned.
type Session struct {
	ActiveTool string
	Last       any
	Summary    string
	Quiz       []artifactModel.QuizQuestion
}

type Model struct {
	port       StudyPort
	input      textinput.Model
	viewport   viewport.Model
	transcript []string
	session    Session
	status     string
	busy       bool
	ready      bool
}

type askMsg struct {
	question string
	resp     api.AskResponse
	err      error
}

type uploadMsg struct {
	resp api.UploadResponse
	err  error
}

type artifactMsg struct {
	kind artifactModel.Kind
	resp client.ArtifactResponse
	err  error
}

type fileMsg struct {
	tool string
	path string
	err  error
}

type documentMsg struct {
	doc api.DocumentResponse
	err error
}

func New(port StudyPort) Model {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = "Ask about your document, or /help"
	ti.Focus()
	ti.CharLimit = 0
	vp := viewport.New(0, 0)
	return Model{port: port, input: ti, viewport: vp, status: "Upload a document with /upload <path>."}
}

func (m Model) Init() tea.Cmd { return textinput.Blink }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.ready = true
		_, rh := resultBoxStyle.GetFrameSize()
		_, qh := queryBoxStyle.GetFrameSize()
		reserved := 1 + 1 + qh + 1 // header, status, spacer
		m.viewport.Width = max(20, msg.Width)
		m.viewport.Height = max(3, msg.Height-reserved-rh)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC || msg.Type == tea.KeyCtrlD {
			return m, tea.Quit
		}
		if msg.Type == tea.KeyEnter {
			line := strings.TrimSpace(m.input.Value())
			if line == "" {
				return m, nil
			}
			m.input.SetValue("")
			return m.handleLine(line)
		}
	case askMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorText(msg.err)
			m.transcript = append(m.transcript, "Assistant: "+errorText(msg.err))
		} else {
			m.session.Last = msg.resp
			m.status = "Answered."
			m.transcript = append(m.transcript, "Assistant: "+msg.resp.Answer)
		}
		m.refresh()
		return m, nil
	case uploadMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorText(msg.err)
			return m, nil
		}
		m.session = Session{ActiveTool: "ask", Last: msg.resp}
		m.transcript = nil
		m.status = fmt.Sprintf("Indexed %s.", msg.resp.Filename)
		m.refresh()
		return m, nil
	case artifactMsg:
		m.busy = false
		m.session.ActiveTool = string(msg.kind)
		if msg.err != nil {
			m.session.Last = msg.err
			m.status = errorText(msg.err)
		} else {
			m.session.Last = msg.resp
			m.status = fmt.Sprintf("Generated %s.", msg.kind)
			if msg.resp.Error != "" {
				m.status = "Error: " + msg.resp.Error
			}
			if msg.kind == artifactModel.Summary && msg.resp.Summary != "" {
				m.session.Summary = msg.resp.Summary
			}
			if msg.kind == artifactModel.Quiz {
				m.session.Quiz = msg.resp.Quiz
			}
		}
		m.refresh()
		return m, nil
	case fileMsg:
		m.busy = false
		if msg.err != nil {
			m.status = errorText(msg.err)
		} else {
			m.status = fmt.Sprintf("Saved %s to %s.", msg.tool, msg.path)
		}
		return m, nil
	case documentMsg:
		m.busy = false
		m.session.ActiveTool = "doc"
		if msg.err != nil {
			m.session.Last = msg.err
			m.status = errorText(msg.err)
		} else {
			m.session.Last = msg.doc
			m.status = "Document loaded."
		}
		m.refresh()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleLine(line string) (tea.Model, tea.Cmd) {
	if !strings.HasPrefix(line, "/") {
		m.session.ActiveTool = "ask"
		m.session.Last = nil
		m.transcript = append(m.transcript, "You: "+line)
		m.refresh()
		return m.run("Thinking...", func() tea.Msg {
			resp, err := m.port.Ask(context.Background(), line)
			return askMsg{question: line, resp: resp, err: err}
		})
	}

	fields := strings.Fields(line)
	command, args := fields[0], fields[1:]
	switch command {
	case "/quit", "/exit":
		return m, tea.Quit
	case "/help":
		m.session.ActiveTool = "help"
		m.session.Last = helpText
		m.refresh()
		return m, nil
	case "/upload":
		if len(args) == 0 {
			m.status = "Usage: /upload <path>"
			return m, nil
		}
		path := strings.Join(args, " ")
		return m.run("Uploading "+path+"...", func() tea.Msg {
			resp, err := m.port.Upload(context.Background(), path)
			return uploadMsg{resp: resp, err: err}
		})
	case "/summary", "/flashcards", "/quiz", "/mindmap":
		kind, err := artifactModel.ParseKind(strings.TrimPrefix(command, "/"))
		if err != nil {
			m.status = err.Error()
			return m, nil
		}
		return m.run("Generating "+string(kind)+"...", func() tea.Msg {
			resp, err := m.port.Generate(context.Background(), kind)
			return artifactMsg{kind: kind, resp: resp, err: err}
		})
	case "/slides":
		out := argOr(args, "presentation.pptx")
		return m.run("Building slides...", func() tea.Msg {
			return fileMsg{tool: "slides", path: out, err: m.port.Slides(context.Background(), out)}
		})
	case "/audio":
		if m.session.Summary == "" {
			m.status = "Generate a summary first with /summary."
			return m, nil
		}
		out := argOr(args, "summary.mp3")
		text := m.session.Summary
		return m.run("Narrating summary...", func() tea.Msg {
			return fileMsg{tool: "audio", path: out, err: m.port.Audio(context.Background(), text, out)}
		})
	case "/answer":
		m.status = m.checkAnswer(args)
		return m, nil
	case "/doc":
		return m.run("Fetching document...", func() tea.Msg {
			doc, err := m.port.Document(context.Background())
			return documentMsg{doc: doc, err: err}
		})
	default:
		m.status = fmt.Sprintf("Unknown command %s, try /help", command)
		return m, nil
	}
}

func (m Model) run(status string, cmd tea.Cmd) (tea.Model, tea.Cmd) {
	if m.busy {
		m.status = "Still waiting for the previous request."
		return m, nil
	}
	m.busy = true
	m.status = status
	return m, cmd
}

// checkAnswer compares the chosen option with the key by plain string equality.
func (m Model) checkAnswer(args []string) string {
	if len(m.session.Quiz) == 0 {
		return "No quiz loaded, run /quiz first."
	}
	if len(args) != 2 {
		return "Usage: /answer <question#> <option#>"
	}
	qi, err1 := strconv.Atoi(args[0])
	oi, err2 := strconv.Atoi(args[1])
	if err1 != nil || err2 != nil || qi < 1 || qi > len(m.session.Quiz) {
		return "No such question."
	}
	question := m.session.Quiz[qi-1]
	if oi < 1 || oi > len(question.Options) {
		return "No such option."
	}
	if question.IsCorrect(question.Options[oi-1]) {
		return fmt.Sprintf("Question %d: correct!", qi)
	}
	return fmt.Sprintf("Question %d: incorrect, the answer is %q.", qi, question.Answer)
}

func (m *Model) refresh() {
	m.viewport.SetContent(m.render())
	m.viewport.GotoBottom()
}

func (m Model) render() string {
	if m.session.ActiveTool == "ask" {
		return m.renderTranscript()
	}
	switch last := m.session.Last.(type) {
	case string:
		if m.session.ActiveTool == "help" {
			return last
		}
	case error:
		return errorText(last)
	case client.ArtifactResponse:
		return renderArtifact(artifactModel.Kind(m.session.ActiveTool), last)
	case api.DocumentResponse:
		return renderDocument(last)
	}
	return m.renderTranscript()
}

func (m Model) renderTranscript() string {
	if len(m.transcript) == 0 {
		return helpText
	}
	return strings.Join(m.transcript, "\n\n")
}

func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	header := lipgloss.NewStyle().Bold(true).Render("StudyRAG")
	input := queryBoxStyle.Render(m.input.View())
	status := lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render(m.status)
	results := resultBoxStyle.Render(m.viewport.View())
	return header + "\n" + results + "\n" + input + "\n" + status
}

func errorText(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) && apiErr.Raw != "" {
		return "Error: " + apiErr.Message + "\n\n" + apiErr.Raw
	}
	return "Error: " + err.Error()
}

func argOr(args []string, fallback string) string {
	if len(args) == 0 {
		return fallback
	}
	return strings.Join(args, " ")
}

var (
	resultBoxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	queryBoxStyle  = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	titleStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)
