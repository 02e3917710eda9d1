package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"litscope/llm"
)

// maxSummaryLen begrenzt die Länge der Screening-Begründung.
const maxSummaryLen = 500

// ScreeningService bewertet alle noch ungesichteten Paper mit dem
// Klassifikator. Jede Entscheidung wird sofort gespeichert; schlägt die
// Klassifikation endgültig fehl, bricht der Lauf ab.
type ScreeningService struct {
	Store    PaperStore
	Screener Screener
	Logger   *zap.Logger
	Delay    time.Duration
}

// NewScreeningService erstellt einen neuen ScreeningService.
func NewScreeningService(store PaperStore, screener Screener, logger *zap.Logger, delay time.Duration) *ScreeningService {
	return &ScreeningService{
		Store:    store,
		Screener: screener,
		Logger:   logger,
		Delay:    delay,
	}
}

// Run verarbeitet alle Paper ohne Screening-Ergebnis.
func (s *ScreeningService) Run(ctx context.Context) (int, error) {
	papers, err := s.Store.UnscreenedPapers(ctx)
	if err != nil {
		return 0, err
	}
	s.Logger.Info("Starte Screening-Lauf", zap.Int("papers", len(papers)))

	screened := 0
	for _, paper := range papers {
		log := s.Logger.With(zap.String("eid", paper.EID), zap.String("title", paper.Title))
		log.Info("Bewerte Paper")

		result, err := s.Screener.ScreenPaper(ctx, llm.PaperPayload{
			EID:      paper.EID,
			Title:    paper.Title,
			Abstract: paper.Abstract,
		})
		if err != nil {
			log.Error("Klassifikation fehlgeschlagen, Lauf wird abgebrochen", zap.Error(err))
			return screened, err
		}

		confidence := clamp01(result.ConfidenceLevel)
		summary := truncate(result.Summary, maxSummaryLen)

		if err := s.Store.UpdateScreening(ctx, paper.EID, result.ShouldBeReviewed, confidence, summary); err != nil {
			log.Error("Screening-Ergebnis konnte nicht gespeichert werden", zap.Error(err))
			return screened, err
		}
		screened++
		log.Info("Paper bewertet",
			zap.Bool("to_be_reviewed", result.ShouldBeReviewed),
			zap.Float64("confidence", confidence))

		select {
		case <-ctx.Done():
			return screened, ctx.Err()
		case <-time.After(s.Delay):
		}
	}

	s.Logger.Info("Screening-Lauf abgeschlossen", zap.Int("screened", screened))
	return screened, nil
}

// clamp01 begrenzt einen Wert auf das Intervall [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// truncate kürzt einen String auf höchstens n Zeichen (Runen, nicht Bytes).
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
