package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/javiermolinar/weekgrid/internal/config"
	"github.com/javiermolinar/weekgrid/internal/tui/theme"
)

func (a *App) configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "View or edit configuration",
		Long: `Interactive configuration management.

If no config file exists, creates one with default values.
Otherwise, displays current config and allows editing.

Example:
  weekgrid config`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfigInteractive(os.Stdin, a.out)
		},
	}
}

func runConfigInteractive(in io.Reader, out io.Writer) error {
	configPath := config.DefaultConfigPath()
	_, _ = fmt.Fprintf(out, "Config file: %s\n\n", configPath)
	return editConfig(configPath, bufio.NewReader(in), out)
}

func editConfig(configPath string, reader *bufio.Reader, out io.Writer) error {
	// Load existing config or create defaults
	cfg, err := config.LoadFrom(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	// Check if file exists
	_, fileErr := os.Stat(configPath)
	isNew := os.IsNotExist(fileErr)

	if isNew {
		_, _ = fmt.Fprintln(out, "No config file found. Creating with default values...")
		if err := cfg.SaveTo(configPath); err != nil {
			return fmt.Errorf("saving config: %w", err)
		}
		_, _ = fmt.Fprintf(out, "Created %s\n\n", configPath)
	}

	// Display current config
	printConfig(out, cfg)

	// Ask if user wants to edit
	if !promptYesNo(reader, out, "\nWould you like to edit the configuration?") {
		return nil
	}

	// Interactive editing
	cfg.Grid.IntervalPx = promptFloat(reader, out, "Interval height (px)", cfg.Grid.IntervalPx)
	cfg.Grid.HeaderPx = promptFloat(reader, out, "Header height (px)", cfg.Grid.HeaderPx)
	cfg.Grid.EdgeThresholdPx = promptFloat(reader, out, "Resize edge threshold (px)", cfg.Grid.EdgeThresholdPx)
	cfg.Grid.RecentWindow = promptValue(reader, out, "Recent highlight window", cfg.Grid.RecentWindow)
	cfg.Keys.Meta = promptValue(reader, out, "Meta key (alt or ctrl)", cfg.Keys.Meta)
	cfg.Keys.Reposition = promptValue(reader, out, "Reposition chord", cfg.Keys.Reposition)
	cfg.Keys.Duplicate = promptValue(reader, out, "Duplicate chord", cfg.Keys.Duplicate)
	cfg.Storage.DBPath = promptValue(reader, out, "Database path", cfg.Storage.DBPath)
	cfg.UI.Theme = promptTheme(reader, out, cfg.UI.Theme)

	// Validate before saving
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	// Save
	if err := cfg.SaveTo(configPath); err != nil {
		return fmt.Errorf("saving config: %w", err)
	}

	_, _ = fmt.Fprintln(out, "\nConfiguration saved!")
	return nil
}

func printConfig(out io.Writer, cfg *config.Config) {
	_, _ = fmt.Fprintln(out, "Current configuration:")
	_, _ = fmt.Fprintln(out, "──────────────────────")
	_, _ = fmt.Fprintln(out, "[grid]")
	_, _ = fmt.Fprintf(out, "  interval_px       = %g\n", cfg.Grid.IntervalPx)
	_, _ = fmt.Fprintf(out, "  header_px         = %g\n", cfg.Grid.HeaderPx)
	_, _ = fmt.Fprintf(out, "  edge_threshold_px = %g\n", cfg.Grid.EdgeThresholdPx)
	_, _ = fmt.Fprintf(out, "  recent_window     = %s\n", cfg.Grid.RecentWindow)
	_, _ = fmt.Fprintln(out, "\n[keys]")
	_, _ = fmt.Fprintf(out, "  meta              = %s\n", cfg.Keys.Meta)
	_, _ = fmt.Fprintf(out, "  reposition        = %s\n", cfg.Keys.Reposition)
	_, _ = fmt.Fprintf(out, "  duplicate         = %s\n", cfg.Keys.Duplicate)
	_, _ = fmt.Fprintln(out, "\n[storage]")
	_, _ = fmt.Fprintf(out, "  db_path           = %s\n", cfg.Storage.DBPath)
	_, _ = fmt.Fprintln(out, "\n[ui]")
	_, _ = fmt.Fprintf(out, "  theme             = %s\n", cfg.UI.Theme)
}

func promptYesNo(reader *bufio.Reader, out io.Writer, question string) bool {
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", question)
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(strings.ToLower(input))
	return input == "y" || input == "yes"
}

func promptValue(reader *bufio.Reader, out io.Writer, label, current string) string {
	if current == "" {
		_, _ = fmt.Fprintf(out, "  %s: ", label)
	} else {
		_, _ = fmt.Fprintf(out, "  %s [%s]: ", label, current)
	}
	input, _ := reader.ReadString('\n')
	input = strings.TrimSpace(input)
	if input == "" {
		return current
	}
	return input
}

func promptFloat(reader *bufio.Reader, out io.Writer, label string, current float64) float64 {
	for {
		value := promptValue(reader, out, label, strconv.FormatFloat(current, 'g', -1, 64))
		f, err := strconv.ParseFloat(value, 64)
		if err == nil {
			return f
		}
		_, _ = fmt.Fprintf(out, "  Invalid number %q\n", value)
	}
}

func promptTheme(reader *bufio.Reader, out io.Writer, current string) string {
	options := strings.Join(theme.Available(), ", ")
	label := fmt.Sprintf("UI theme (%s)", options)
	for {
		value := promptValue(reader, out, label, current)
		if theme.IsAvailable(value) {
			return strings.ToLower(value)
		}
		if strings.HasSuffix(value, ".toml") {
			return value
		}
		_, _ = fmt.Fprintf(out, "  Invalid theme %q. Available: %s\n", value, options)
	}
}
