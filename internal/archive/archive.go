// Package archive keeps a local copy of a rendered digest.
package archive

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jung-kurt/gofpdf"
)

// Write stores text at path. A ".pdf" extension produces a PDF document;
// anything else is written verbatim.
func Write(path string, text string) error {
	path = strings.TrimSpace(path)
	if path == "" {
		return fmt.Errorf("archive path is empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create archive dir: %w", err)
		}
	}
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return WritePDF(text, path)
	}
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return fmt.Errorf("write archive: %w", err)
	}
	return nil
}

// WritePDF renders the digest text into a single-column A4 PDF. The first
// line becomes a bold heading and bare http(s) lines become clickable links.
// Core fonts only cover cp1252, so other runes are translated or dropped.
func WritePDF(text string, outPath string) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetFont("Helvetica", "", 11)
	pdf.AddPage()

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	first := true
	for scanner.Scan() {
		s := strings.TrimSpace(scanner.Text())
		if first {
			first = false
			pdf.SetFont("Helvetica", "B", 14)
			pdf.CellFormat(0, 8, tr(stripNonLatin(s)), "", 1, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 11)
			continue
		}
		if s == "" {
			pdf.Ln(3)
			continue
		}
		if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
			pdf.SetTextColor(0, 0, 200)
			pdf.WriteLinkString(5, s, s)
			pdf.SetTextColor(0, 0, 0)
			pdf.Ln(5)
			continue
		}
		pdf.MultiCell(0, 5, tr(s), "", "L", false)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("scan digest: %w", err)
	}
	return pdf.OutputFileAndClose(outPath)
}

// stripNonLatin removes runes outside the Basic Multilingual Plane, such as
// emoji, which no core font can draw.
func stripNonLatin(s string) string {
	return strings.TrimSpace(strings.Map(func(r rune) rune {
		if r > 0xFFFF {
			return -1
		}
		return r
	}, s))
}
