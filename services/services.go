// Package services enthält die Orchestrierung der Review-Pipeline:
// Discovery, Enrichment, Screening und die PDF-Kodierung.
package services

import (
	"context"

	"litscope/llm"
	"litscope/models"
)

// PaperStore abstrahiert die Datenbankoperationen, die die Pipeline braucht.
type PaperStore interface {
	UpsertPapers(ctx context.Context, papers []*models.Paper) error
	PapersWithoutAbstract(ctx context.Context) ([]*models.Paper, error)
	UpdateAbstract(ctx context.Context, eid, abstract string) error
	UnscreenedPapers(ctx context.Context) ([]*models.Paper, error)
	UpdateScreening(ctx context.Context, eid string, toBeReviewed bool, confidence float64, summary string) error
}

// Screener entscheidet über die Aufnahme eines Papers in das Review.
type Screener interface {
	ScreenPaper(ctx context.Context, paper llm.PaperPayload) (*llm.ScreeningResult, error)
}

// PolicyCoder kodiert den Volltext eines Policy-Dokuments.
type PolicyCoder interface {
	CodeDocument(ctx context.Context, text string) (*llm.PolicyAnalysis, error)
}
