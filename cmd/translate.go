package cmd

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var translateTarget string

var translateCmd = &cobra.Command{
	Use:   "translate <video-id>",
	Short: "Translate a video's captions into another language",
	Long: `Translate runs the stored source-language caption set through the
configured translation backend and saves the result as a translated set
for the video. Caption timing is preserved.`,
	Args: cobra.ExactArgs(1),
	RunE: runTranslate,
}

func init() {
	translateCmd.Flags().StringVarP(&translateTarget, "to", "t", "", "target language code, e.g. es")
	translateCmd.MarkFlagRequired("to")
	rootCmd.AddCommand(translateCmd)
}

func runTranslate(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := a.worker.Translate(ctx, args[0], translateTarget); err != nil {
		return err
	}

	if !quiet {
		slog.Info("translation stored", "video", args[0], "language", translateTarget)
	}
	return nil
}
