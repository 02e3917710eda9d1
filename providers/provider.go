package providers

import (
	"context"

	"litscope/models"
)

// Provider ist das Interface, das jeder Such-Provider implementieren muss.
type Provider interface {
	// Search führt eine Suche für die gegebene Query durch und gibt eine Liste
	// von standardisierten Paper-Modellen zurück.
	Search(ctx context.Context, query string) ([]*models.Paper, error)

	// Name gibt den eindeutigen Namen des Providers zurück (z.B. "scopus").
	Name() string
}

// AbstractFetcher liefert den Abstract zu einem einzelnen externen Identifier.
type AbstractFetcher interface {
	FetchAbstract(ctx context.Context, eid string) (string, error)
}
