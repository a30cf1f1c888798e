// Package cli implements the whoami terminal client command.
package cli

import (
	"io"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"whoami/app/internal/apiclient"
	"whoami/app/internal/tui"
	"whoami/app/internal/tui/cache"
	"whoami/app/internal/tui/state"
	"whoami/app/internal/tui/theme"
)

var (
	apiURL   string
	stateDir string
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Browse the portfolio from the terminal",
	Long:  "A terminal client for the whoami portfolio API: posts, projects, resume, and a contact form, with themes that follow your terminal.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runTUI()
	},
}

func init() {
	RootCmd.Flags().StringVar(&apiURL, "api-url", "http://localhost:3001", "Base URL of the content API")
	RootCmd.Flags().StringVar(&stateDir, "state-dir", "", "Directory for persisted state (default: OS config dir)")
}

func runTUI() error {
	dir := stateDir
	if dir == "" {
		var err error
		dir, err = state.DefaultDir()
		if err != nil {
			return eris.Wrap(err, "resolving state directory")
		}
	}

	store, err := state.NewStore(dir)
	if err != nil {
		return eris.Wrap(err, "opening state store")
	}

	logger := newFileLogger(dir)

	client, err := apiclient.New(apiclient.Options{BaseURL: apiURL, Logger: logger})
	if err != nil {
		return eris.Wrap(err, "creating api client")
	}

	queryCache, err := cache.New(cache.Options{Store: store, Logger: logger})
	if err != nil {
		return eris.Wrap(err, "creating query cache")
	}

	prefs, err := theme.NewPreferenceStore(theme.PreferenceOptions{Store: store, Logger: logger})
	if err != nil {
		return eris.Wrap(err, "creating theme store")
	}
	defer prefs.Close()

	colors, err := theme.NewColorStore(store, logger)
	if err != nil {
		return eris.Wrap(err, "creating color store")
	}

	model, err := tui.NewModel(tui.Options{
		Client:      client,
		Cache:       queryCache,
		Preferences: prefs,
		Colors:      colors,
		Logger:      logger,
	})
	if err != nil {
		return eris.Wrap(err, "building tui model")
	}

	program := tea.NewProgram(model, tea.WithAltScreen())

	// OS theme changes arrive outside the event loop; push a redraw in.
	prefs.Subscribe(func(theme.ThemeKey) {
		program.Send(tui.ThemeChangedMsg{})
	})

	if _, err := program.Run(); err != nil {
		return eris.Wrap(err, "running tui")
	}

	return nil
}

// newFileLogger logs to a file in the state directory; stdout belongs to the
// TUI. Falls back to a silent logger when the file cannot be opened.
func newFileLogger(dir string) *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.WarnLevel)

	file, err := os.OpenFile(filepath.Join(dir, "tui.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		logger.SetOutput(io.Discard)
		return logger
	}

	logger.SetOutput(file)
	return logger
}
