package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"captionforge/internal/caption"
	"captionforge/internal/docexport"
)

var (
	exportFormat   string
	exportOutput   string
	exportLanguage string
)

var exportCmd = &cobra.Command{
	Use:   "export <video-id>",
	Short: "Export a video's captions to a subtitle or transcript file",
	Args:  cobra.ExactArgs(1),
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", "srt", "output format: srt, webvtt, text, docx")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output path (default: <video-id>.<ext>)")
	exportCmd.Flags().StringVarP(&exportLanguage, "language", "l", "", "export a translated caption set")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	videoID := args[0]

	a, err := newApp()
	if err != nil {
		return err
	}

	video, err := a.videos.Get(videoID)
	if err != nil {
		return err
	}
	captions, err := a.captions.Load(videoID, exportLanguage)
	if err != nil {
		return err
	}

	displayLang := video.Language
	if exportLanguage != "" {
		displayLang = exportLanguage
	}

	format := strings.ToLower(exportFormat)
	output := exportOutput
	if output == "" {
		output = videoID + "." + extensionFor(format)
	}

	switch format {
	case "srt":
		return os.WriteFile(output, []byte(caption.ToSRT(captions, displayLang)), 0o644)
	case "webvtt", "vtt":
		return os.WriteFile(output, []byte(caption.ToWebVTT(captions, displayLang)), 0o644)
	case "text":
		return os.WriteFile(output, []byte(caption.ToText(captions, displayLang)), 0o644)
	case "docx":
		return docexport.Write(captions, video.Name, output)
	default:
		return fmt.Errorf("unknown export format %q", exportFormat)
	}
}

func extensionFor(format string) string {
	switch format {
	case "webvtt", "vtt":
		return "vtt"
	case "text":
		return "txt"
	case "docx":
		return "docx"
	default:
		return "srt"
	}
}
