package services

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"litscope/models"
)

// CodingService kodiert alle Policy-PDFs eines Verzeichnisses und schreibt
// die Ergebnisse als CSV-Datei (eine Zeile pro Dokument).
type CodingService struct {
	Coder  PolicyCoder
	Logger *zap.Logger

	// ExtractText ist austauschbar, damit Tests keine echten PDFs brauchen.
	ExtractText func(path string) (string, error)
}

// NewCodingService erstellt einen neuen CodingService.
func NewCodingService(coder PolicyCoder, logger *zap.Logger) *CodingService {
	return &CodingService{
		Coder:       coder,
		Logger:      logger,
		ExtractText: ExtractPDFText,
	}
}

// Run kodiert alle *.pdf-Dateien direkt in dir (nicht rekursiv) und schreibt
// das Ergebnis nach csvPath. Die CSV-Datei wird erst am Ende des Laufs
// geschrieben.
func (s *CodingService) Run(ctx context.Context, dir, csvPath string) (int, error) {
	pattern := filepath.Join(dir, "*.pdf")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return 0, fmt.Errorf("Verzeichnis konnte nicht gelesen werden: %w", err)
	}
	sort.Strings(files)

	s.Logger.Info("Starte Kodierungs-Lauf",
		zap.String("dir", dir),
		zap.Int("files", len(files)))

	var results []models.CodedDocument
	for _, file := range files {
		name := filepath.Base(file)
		log := s.Logger.With(zap.String("file", name))
		log.Info("Verarbeite Dokument")

		text, err := s.ExtractText(file)
		if err != nil {
			log.Error("Text konnte nicht extrahiert werden", zap.Error(err))
			return 0, err
		}

		analysis, err := s.Coder.CodeDocument(ctx, text)
		if err != nil {
			log.Error("Kodierung fehlgeschlagen, Lauf wird abgebrochen", zap.Error(err))
			return 0, err
		}

		output, err := json.Marshal(analysis)
		if err != nil {
			return 0, fmt.Errorf("Ergebnis konnte nicht serialisiert werden: %w", err)
		}

		results = append(results, models.CodedDocument{
			Filename: name,
			Output:   string(output),
		})
		log.Info("Dokument kodiert")
	}

	if err := writeCodedCSV(csvPath, results); err != nil {
		return 0, err
	}

	s.Logger.Info("Kodierungs-Lauf abgeschlossen",
		zap.Int("documents", len(results)),
		zap.String("csv", csvPath))
	return len(results), nil
}

// writeCodedCSV schreibt die Kodierungsergebnisse als zweispaltige CSV-Datei.
func writeCodedCSV(path string, results []models.CodedDocument) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("CSV-Datei konnte nicht erstellt werden: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"filename", "output"}); err != nil {
		return err
	}
	for _, r := range results {
		if err := w.Write([]string{r.Filename, r.Output}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
