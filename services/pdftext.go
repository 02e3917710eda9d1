package services

import (
	"strings"

	"github.com/ledongthuc/pdf"
)

// ExtractPDFText extrahiert den reinen Text aus allen Seiten eines PDFs.
// Seiten, deren Text nicht extrahiert werden kann, gehen als leerer String
// in das Ergebnis ein.
func ExtractPDFText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	var sb strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
	}
	return sb.String(), nil
}
