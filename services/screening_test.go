package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"litscope/llm"
	"litscope/models"
)

func TestScreeningRunPersistsPerPaper(t *testing.T) {
	store := newFakeStore(
		&models.Paper{EID: "A", Title: "Paper A", Abstract: "about drivers"},
		&models.Paper{EID: "B", Title: "Paper B", Abstract: "about one factor"},
	)
	screener := &fakeScreener{fn: func(paper llm.PaperPayload) (*llm.ScreeningResult, error) {
		return &llm.ScreeningResult{
			ShouldBeReviewed: paper.EID == "A",
			ConfidenceLevel:  0.8,
			Summary:          "decision for " + paper.EID,
		}, nil
	}}
	svc := NewScreeningService(store, screener, zap.NewNop(), 0)

	count, err := svc.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	a := store.get("A")
	require.NotNil(t, a.ToBeReviewed)
	assert.True(t, *a.ToBeReviewed)
	assert.Equal(t, 0.8, *a.ConfidenceLevel)
	assert.Equal(t, "decision for A", a.AnalysisSummary)

	b := store.get("B")
	require.NotNil(t, b.ToBeReviewed)
	assert.False(t, *b.ToBeReviewed)
}

func TestScreeningRunAbortsOnClassifierError(t *testing.T) {
	store := newFakeStore(
		&models.Paper{EID: "A", Title: "Paper A"},
		&models.Paper{EID: "B", Title: "Paper B"},
	)
	screener := &fakeScreener{fn: func(paper llm.PaperPayload) (*llm.ScreeningResult, error) {
		if paper.EID == "B" {
			return nil, errors.New("model unavailable")
		}
		return &llm.ScreeningResult{ShouldBeReviewed: true, ConfidenceLevel: 0.9}, nil
	}}
	svc := NewScreeningService(store, screener, zap.NewNop(), 0)

	count, err := svc.Run(context.Background())
	require.Error(t, err)
	// Die Entscheidung für A bleibt gespeichert.
	assert.Equal(t, 1, count)
	require.NotNil(t, store.get("A").ToBeReviewed)
	assert.Nil(t, store.get("B").ToBeReviewed)
}

func TestScreeningRunSanitizesResult(t *testing.T) {
	store := newFakeStore(&models.Paper{EID: "A", Title: "Paper A"})
	screener := &fakeScreener{fn: func(paper llm.PaperPayload) (*llm.ScreeningResult, error) {
		return &llm.ScreeningResult{
			ShouldBeReviewed: true,
			ConfidenceLevel:  1.7,
			Summary:          strings.Repeat("x", 600),
		}, nil
	}}
	svc := NewScreeningService(store, screener, zap.NewNop(), 0)

	_, err := svc.Run(context.Background())
	require.NoError(t, err)

	a := store.get("A")
	assert.Equal(t, 1.0, *a.ConfidenceLevel)
	assert.Len(t, a.AnalysisSummary, 500)
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, clamp01(-0.3))
	assert.Equal(t, 1.0, clamp01(2.5))
	assert.Equal(t, 0.42, clamp01(0.42))
}

func TestTruncateIsRuneSafe(t *testing.T) {
	assert.Equal(t, "äöü", truncate("äöüß", 3))
	assert.Equal(t, "short", truncate("short", 500))
}
