// Package docexport renders caption sets as Word transcript documents for
// reviewers who work outside the caption editor.
package docexport

import (
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"captionforge/internal/caption"
)

const (
	fontName = "Times New Roman"
	fontSize = 13
)

// Write renders the captions as a docx transcript at outputPath. The title
// heads the document; each caption becomes its own timestamped paragraph.
func Write(captions []caption.Caption, title, outputPath string) error {
	doc, err := godocx.NewDocument()
	if err != nil {
		return err
	}

	addRun(doc.AddParagraph(""), title, true, 16)
	doc.AddParagraph("")

	for _, c := range captions {
		text := strings.TrimSpace(c.Text)
		if text == "" {
			continue
		}

		p := doc.AddParagraph("")
		stamp := "[" + caption.FormatTimestamp(c.Start, '.') + "] "
		p.AddText(stamp).Font(fontName).Size(fontSize).Color("808080")
		p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
	}

	return doc.SaveTo(outputPath)
}

func addRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(text).Font(fontName).Size(size).Color("000000")
	if bold {
		run.Bold(true)
	}
}
