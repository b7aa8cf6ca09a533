package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"cardsmith/internal/card"
	"cardsmith/internal/config"
	"cardsmith/internal/editor"
	"cardsmith/internal/tui"
)

// Version is set during build with -ldflags
var version = "dev"

var (
	templatePath string
	configPath   string
	logPath      string
)

var rootCmd = &cobra.Command{
	Use:   "cardsmith",
	Short: "Terminal editor for dashboard cards",
	Long: `Cardsmith edits small dashboard cards in the terminal: drag, resize and
rotate elements with the mouse, then export the card as PNG, PDF or text.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		logFile := logPath
		if logFile == "" {
			logFile = cfg.LogFile
		}
		if logFile != "" {
			f, err := tea.LogToFile(logFile, "cardsmith")
			if err != nil {
				return fmt.Errorf("failed to open log file: %w", err)
			}
			defer f.Close()
			editor.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{Level: slog.LevelDebug})))
		}

		doc, err := loadDocument(firstNonEmpty(templatePath, cfg.Template))
		if err != nil {
			return err
		}

		p := tea.NewProgram(
			tui.New(doc, cfg),
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		)
		if _, err := p.Run(); err != nil {
			return fmt.Errorf("failed to start the terminal user interface: %w", err)
		}
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of cardsmith",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "cardsmith version %s\n", version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&templatePath, "template", "t", "", "card template to open (YAML)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/"+config.FileName+")")
	rootCmd.Flags().StringVar(&logPath, "log", "", "write debug logs to this file")

	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(versionCmd)
}

func loadConfig() (*config.Config, error) {
	if configPath != "" {
		return config.Load(configPath)
	}
	return config.LoadDefault()
}

// loadDocument reads a template, or returns the starter card when path is
// empty.
func loadDocument(path string) (card.Document, error) {
	if path == "" {
		return card.DefaultDocument(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return card.Document{}, fmt.Errorf("failed to open template: %w", err)
	}
	defer f.Close()
	return readDocument(f, path)
}

func readDocument(r io.Reader, name string) (card.Document, error) {
	doc, err := card.LoadTemplate(r)
	if err != nil {
		return card.Document{}, fmt.Errorf("%s: %w", name, err)
	}
	return doc, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
