package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"litscope/models"
	"litscope/providers"
)

// fakeProvider liefert vorgegebene Suchergebnisse oder einen Fehler.
type fakeProvider struct {
	name   string
	papers []*models.Paper
	err    error
}

func (p *fakeProvider) Search(ctx context.Context, query string) ([]*models.Paper, error) {
	return p.papers, p.err
}

func (p *fakeProvider) Name() string { return p.name }

func TestDiscoveryRunUpsertsOnce(t *testing.T) {
	store := newFakeStore()
	provider := &fakeProvider{
		name: "scopus",
		papers: []*models.Paper{
			{EID: "2-s2.0-1", Title: "First"},
			{EID: "2-s2.0-2", Title: "Second"},
		},
	}
	svc := NewDiscoveryService(store, []providers.Provider{provider}, zap.NewNop())

	count, err := svc.Run(context.Background(), "test query")
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, store.upserts)
	assert.Equal(t, "First", store.get("2-s2.0-1").Title)
}

func TestDiscoveryRerunOverwritesWithLatestValues(t *testing.T) {
	store := newFakeStore()
	provider := &fakeProvider{
		name:   "scopus",
		papers: []*models.Paper{{EID: "2-s2.0-1", Title: "Old title"}},
	}
	svc := NewDiscoveryService(store, []providers.Provider{provider}, zap.NewNop())

	_, err := svc.Run(context.Background(), "test query")
	require.NoError(t, err)

	provider.papers = []*models.Paper{{EID: "2-s2.0-1", Title: "New title"}}
	_, err = svc.Run(context.Background(), "test query")
	require.NoError(t, err)

	assert.Len(t, store.order, 1)
	assert.Equal(t, "New title", store.get("2-s2.0-1").Title)
}

func TestDiscoveryRunAbortsOnProviderError(t *testing.T) {
	store := newFakeStore()
	provider := &fakeProvider{name: "scopus", err: errors.New("quota exceeded")}
	svc := NewDiscoveryService(store, []providers.Provider{provider}, zap.NewNop())

	_, err := svc.Run(context.Background(), "test query")
	require.Error(t, err)
	assert.Equal(t, 0, store.upserts)
}
