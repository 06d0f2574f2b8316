package main

import (
	"flag"
	"fmt"
	"os"

	"inkpost/cmd/inkterm/ui"

	tea "github.com/charmbracelet/bubbletea"
)

func main() {
	server := flag.String("server", "http://127.0.0.1:3000", "inkpost API base URL")
	flag.Parse()

	p := tea.NewProgram(ui.NewRootModel(*server), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "inkterm: %v\n", err)
		os.Exit(1)
	}
}
