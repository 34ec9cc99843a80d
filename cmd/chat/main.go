package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/zhouzirui/fishing-chat/backend/internal/tui"
	"github.com/zhouzirui/fishing-chat/backend/internal/widget"
)

var (
	serverURL string
	darkTheme bool
)

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "chat",
		Short: "Chat with the fishing assistant from the terminal",
		Long: `Opens the fishing assistant chat widget in the terminal.

Example:
  chat --server http://localhost:8080
  chat --dark`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runChat,
	}

	rootCmd.Flags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of the chat backend")
	rootCmd.Flags().BoolVar(&darkTheme, "dark", false, "Start with the dark theme")
	return rootCmd
}

func runChat(_ *cobra.Command, _ []string) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return fmt.Errorf("chat requires an interactive terminal")
	}

	client := widget.NewClient(serverURL, nil)

	program := tea.NewProgram(tui.New(client, darkTheme), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run chat widget: %w", err)
	}
	return nil
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
