package main

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth  = 210 // A4 width in mm
	pdfMargin     = 10  // Margin in mm
	pdfLineHeight = 4.5 // Line height in mm
	pdfFontSize   = 9
	pdfTabWidth   = 4
)

// writePDF lays content out in Courier on A4 pages. With a lexer name the
// content is syntax-highlighted using chroma token colors.
func writePDF(content, lexerName, outputPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.AddPage()
	pdf.SetFont("Courier", "", pdfFontSize)
	pdf.SetTextColor(0, 0, 0)

	// Core fonts are cp1252; names outside it degrade instead of corrupting the page.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	if lexerName == "" {
		for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
			pdf.CellFormat(pdfPageWidth-2*pdfMargin, pdfLineHeight, tr(line), "", 1, "L", false, 0, "")
		}
	} else if err := writeHighlighted(pdf, tr, content, lexerName); err != nil {
		return err
	}

	if err := pdf.OutputFileAndClose(outputPath); err != nil {
		return fmt.Errorf("error writing PDF %s: %w", outputPath, err)
	}
	return nil
}

// writeHighlighted tokenizes content and writes each token in its style color.
func writeHighlighted(pdf *gofpdf.Fpdf, tr func(string) string, content, lexerName string) error {
	lexer := lexers.Get(lexerName)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("github")
	if style == nil {
		style = styles.Fallback
	}

	iterator, err := lexer.Tokenise(nil, content)
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	for token := iterator(); token != chroma.EOF; token = iterator() {
		entry := style.Get(token.Type)
		fontStyle := ""
		if entry.Bold == chroma.Yes {
			fontStyle += "B"
		}
		if entry.Italic == chroma.Yes {
			fontStyle += "I"
		}
		pdf.SetFontStyle(fontStyle)

		if entry.Colour.IsSet() {
			pdf.SetTextColor(int(entry.Colour.Red()), int(entry.Colour.Green()), int(entry.Colour.Blue()))
		} else {
			pdf.SetTextColor(0, 0, 0)
		}

		value := strings.ReplaceAll(token.Value, "\t", strings.Repeat(" ", pdfTabWidth))
		pdf.Write(pdfLineHeight, tr(value))
	}
	pdf.Ln(-1)
	return nil
}
