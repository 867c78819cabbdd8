package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/akolanti/StudyRAG/internal/client"
	"github.com/akolanti/StudyRAG/internal/config"
	"github.com/akolanti/StudyRAG/internal/tui"
	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	config.Load()

	apiURL := flag.String("api", config.APIURL, "StudyRAG server address")
	token := flag.String("token", config.AuthToken, "bearer token, if the server requires one")
	flag.Parse()

	m := tui.New(client.New(*apiURL, *token, nil))
	if _, err := tea.NewProgram(m, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "studycli:", err)
		os.Exit(1)
	}
}
