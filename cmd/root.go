package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"captionforge/internal/config"
)

var (
	verbose    bool
	quiet      bool
	configPath string
)

var rootCmd = &cobra.Command{
	Use:   "captionforge",
	Short: "Turn speech-to-text results into editable, translatable captions",
	Long: `CaptionForge segments speech-to-text transcripts into readable captions,
serves an editing and translation API over them, and exports the result
as WebVTT, SRT, plain text, or a Word transcript.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	if quiet {
		level = slog.LevelError
	}

	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	})
	slog.SetDefault(slog.New(handler))
}

// loadConfig reads the configured yaml file, or the tuned defaults when no
// file was given.
func loadConfig() (*config.Config, error) {
	if configPath == "" {
		return config.Default(), nil
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", configPath, err)
	}
	return cfg, nil
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose logging")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress non-error output")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to yaml config file")
}
