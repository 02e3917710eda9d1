package services

import (
	"context"
	"time"

	"go.uber.org/zap"

	"litscope/providers"
)

// EnrichmentService holt für alle Paper ohne Abstract den Volltext-Abstract
// nach. Einzelne Fehlschläge werden geloggt und übersprungen, damit ein
// fehlerhafter Datensatz nicht den gesamten Lauf blockiert.
type EnrichmentService struct {
	Store   PaperStore
	Fetcher providers.AbstractFetcher
	Logger  *zap.Logger
	Delay   time.Duration
}

// NewEnrichmentService erstellt einen neuen EnrichmentService.
func NewEnrichmentService(store PaperStore, fetcher providers.AbstractFetcher, logger *zap.Logger, delay time.Duration) *EnrichmentService {
	return &EnrichmentService{
		Store:   store,
		Fetcher: fetcher,
		Logger:  logger,
		Delay:   delay,
	}
}

// Run verarbeitet alle Paper ohne Abstract. Jeder Abstract wird sofort
// gespeichert, ein Abbruch verliert also keine bereits geholten Daten.
func (s *EnrichmentService) Run(ctx context.Context) (int, error) {
	papers, err := s.Store.PapersWithoutAbstract(ctx)
	if err != nil {
		return 0, err
	}
	s.Logger.Info("Starte Enrichment-Lauf", zap.Int("papers", len(papers)))

	enriched := 0
	for _, paper := range papers {
		log := s.Logger.With(zap.String("eid", paper.EID))

		abstract, err := s.Fetcher.FetchAbstract(ctx, paper.EID)
		if err != nil {
			log.Warn("Abstract konnte nicht geholt werden", zap.Error(err))
		} else {
			if err := s.Store.UpdateAbstract(ctx, paper.EID, abstract); err != nil {
				log.Error("Abstract konnte nicht gespeichert werden", zap.Error(err))
				return enriched, err
			}
			enriched++
			log.Info("Abstract gespeichert", zap.Int("length", len(abstract)))
		}

		select {
		case <-ctx.Done():
			return enriched, ctx.Err()
		case <-time.After(s.Delay):
		}
	}

	s.Logger.Info("Enrichment-Lauf abgeschlossen", zap.Int("enriched", enriched))
	return enriched, nil
}
