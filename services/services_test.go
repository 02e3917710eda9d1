package services

import (
	"context"
	"fmt"
	"sync"

	"litscope/llm"
	"litscope/models"
)

// fakeStore ist eine In-Memory-Implementierung des PaperStore für Tests.
type fakeStore struct {
	mu      sync.Mutex
	papers  map[string]*models.Paper
	order   []string
	upserts int
}

func newFakeStore(papers ...*models.Paper) *fakeStore {
	s := &fakeStore{papers: map[string]*models.Paper{}}
	for _, p := range papers {
		s.papers[p.EID] = p
		s.order = append(s.order, p.EID)
	}
	return s
}

func (s *fakeStore) UpsertPapers(ctx context.Context, papers []*models.Paper) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.upserts++
	for _, p := range papers {
		if _, ok := s.papers[p.EID]; !ok {
			s.order = append(s.order, p.EID)
		}
		s.papers[p.EID] = p
	}
	return nil
}

func (s *fakeStore) PapersWithoutAbstract(ctx context.Context) ([]*models.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Paper
	for _, eid := range s.order {
		if s.papers[eid].Abstract == "" {
			out = append(out, s.papers[eid])
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateAbstract(ctx context.Context, eid, abstract string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.papers[eid]
	if !ok {
		return fmt.Errorf("paper %s not found", eid)
	}
	p.Abstract = abstract
	return nil
}

func (s *fakeStore) UnscreenedPapers(ctx context.Context) ([]*models.Paper, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Paper
	for _, eid := range s.order {
		if s.papers[eid].ToBeReviewed == nil {
			out = append(out, s.papers[eid])
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateScreening(ctx context.Context, eid string, toBeReviewed bool, confidence float64, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.papers[eid]
	if !ok {
		return fmt.Errorf("paper %s not found", eid)
	}
	p.ToBeReviewed = &toBeReviewed
	p.ConfidenceLevel = &confidence
	p.AnalysisSummary = summary
	return nil
}

func (s *fakeStore) get(eid string) *models.Paper {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.papers[eid]
}

// fakeScreener beantwortet Screening-Anfragen mit einer vorgegebenen Funktion.
type fakeScreener struct {
	fn       func(paper llm.PaperPayload) (*llm.ScreeningResult, error)
	payloads []llm.PaperPayload
}

func (f *fakeScreener) ScreenPaper(ctx context.Context, paper llm.PaperPayload) (*llm.ScreeningResult, error) {
	f.payloads = append(f.payloads, paper)
	return f.fn(paper)
}

// fakeCoder beantwortet Kodierungs-Anfragen mit einer vorgegebenen Funktion.
type fakeCoder struct {
	fn    func(text string) (*llm.PolicyAnalysis, error)
	texts []string
}

func (f *fakeCoder) CodeDocument(ctx context.Context, text string) (*llm.PolicyAnalysis, error) {
	f.texts = append(f.texts, text)
	return f.fn(text)
}
