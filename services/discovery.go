package services

import (
	"context"

	"go.uber.org/zap"

	"litscope/models"
	"litscope/providers"
)

// DiscoveryService sammelt Suchergebnisse aller Provider ein und schreibt sie
// in einem einzigen Batch in die Datenbank.
type DiscoveryService struct {
	Store     PaperStore
	Providers []providers.Provider
	Logger    *zap.Logger
}

// NewDiscoveryService erstellt einen neuen DiscoveryService.
func NewDiscoveryService(store PaperStore, provs []providers.Provider, logger *zap.Logger) *DiscoveryService {
	return &DiscoveryService{
		Store:     store,
		Providers: provs,
		Logger:    logger,
	}
}

// Run führt die Suche für alle Provider aus. Schlägt ein Provider fehl, wird
// der gesamte Lauf abgebrochen und nichts gespeichert.
func (s *DiscoveryService) Run(ctx context.Context, query string) (int, error) {
	var all []*models.Paper

	for _, provider := range s.Providers {
		log := s.Logger.With(zap.String("provider", provider.Name()))
		log.Info("Starte Discovery-Lauf", zap.String("query", query))

		papers, err := provider.Search(ctx, query)
		if err != nil {
			log.Error("Suche fehlgeschlagen", zap.Error(err))
			return 0, err
		}

		log.Info("Suche abgeschlossen", zap.Int("papers", len(papers)))
		all = append(all, papers...)
	}

	if err := s.Store.UpsertPapers(ctx, all); err != nil {
		s.Logger.Error("Speichern der Suchergebnisse fehlgeschlagen", zap.Error(err))
		return 0, err
	}

	s.Logger.Info("Discovery-Lauf abgeschlossen", zap.Int("total", len(all)))
	return len(all), nil
}
