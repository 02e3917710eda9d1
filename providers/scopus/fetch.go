package scopus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"litscope/config"
	"litscope/models"
)

// httpClient mit Timeout, um hängende Requests zu vermeiden.
var httpClient = &http.Client{
	Timeout: 30 * time.Second,
}

// Fetcher implementiert das providers.Provider-Interface für Scopus.
type Fetcher struct {
	Config *config.Config
	Logger *zap.Logger
}

// NewFetcher erstellt einen neuen Scopus-Fetcher.
func NewFetcher(cfg *config.Config, logger *zap.Logger) *Fetcher {
	return &Fetcher{
		Config: cfg,
		Logger: logger,
	}
}

// Name gibt den Namen des Providers zurück.
func (f *Fetcher) Name() string {
	return "scopus"
}

// Search führt zuerst einen Zähl-Request mit Seitengröße 1 aus und blättert
// anschließend mit der konfigurierten Seitengröße durch alle Ergebnisse.
func (f *Fetcher) Search(ctx context.Context, query string) ([]*models.Paper, error) {
	log := f.Logger.With(zap.String("provider", f.Name()))

	total, err := f.countResults(ctx, query)
	if err != nil {
		return nil, err
	}
	log.Info("Starte Scopus-Suche", zap.Int("total_results", total))

	var papers []*models.Paper
	for offset := 0; offset < total; offset += f.Config.PageSize {
		page, err := f.fetchPage(ctx, query, offset, f.Config.PageSize)
		if err != nil {
			return nil, err
		}

		for _, raw := range page.SearchResults.Entries {
			paper := f.mapEntryToModel(raw)
			if paper == nil {
				continue
			}
			papers = append(papers, paper)
		}

		log.Info("Seite verarbeitet",
			zap.Int("offset", offset),
			zap.Int("fetched", len(papers)),
			zap.Int("total", total))

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(f.Config.RequestDelay):
		}
	}

	return papers, nil
}

// countResults fragt die Gesamtzahl der Treffer mit einer minimalen Seite ab.
func (f *Fetcher) countResults(ctx context.Context, query string) (int, error) {
	page, err := f.fetchPage(ctx, query, 0, 1)
	if err != nil {
		return 0, err
	}

	total, err := strconv.Atoi(page.SearchResults.TotalResults)
	if err != nil {
		return 0, fmt.Errorf("ungültige Trefferzahl %q: %w", page.SearchResults.TotalResults, err)
	}
	return total, nil
}

// fetchPage holt eine einzelne Ergebnisseite der Search API.
func (f *Fetcher) fetchPage(ctx context.Context, query string, offset, count int) (*searchPage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("subj", f.Config.SubjectArea)
	params.Set("start", strconv.Itoa(offset))
	params.Set("count", strconv.Itoa(count))

	reqURL := fmt.Sprintf("%s/content/search/scopus?%s", f.Config.ScopusBaseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("Request konnte nicht erstellt werden: %w", err)
	}
	req.Header.Set("X-ELS-APIKey", f.Config.ScopusAPIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("Scopus-Request fehlgeschlagen: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("Scopus API antwortete mit Status %d: %s", resp.StatusCode, string(body))
	}

	var page searchPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("Antwort konnte nicht dekodiert werden: %w", err)
	}
	return &page, nil
}

// mapEntryToModel wandelt einen rohen Sucheintrag in das interne Modell um.
// Einträge ohne EID oder mit kaputtem JSON werden übersprungen, damit ein
// einzelner Ausreißer nicht den gesamten Lauf abbricht.
func (f *Fetcher) mapEntryToModel(raw json.RawMessage) *models.Paper {
	var entry Entry
	if err := json.Unmarshal(raw, &entry); err != nil {
		f.Logger.Warn("Sucheintrag konnte nicht geparst werden", zap.Error(err))
		return nil
	}
	if entry.EID == "" {
		f.Logger.Warn("Sucheintrag ohne EID übersprungen", zap.String("title", entry.Title))
		return nil
	}

	citedBy, _ := strconv.Atoi(entry.CitedByCount)

	var isbns []string
	for _, isbn := range entry.ISBNs {
		if isbn.Value != "" {
			isbns = append(isbns, isbn.Value)
		}
	}

	var links []string
	for _, link := range entry.Links {
		if link.Href == "" {
			continue
		}
		links = append(links, fmt.Sprintf("%s: %s", link.Ref, link.Href))
	}

	return &models.Paper{
		EID:                entry.EID,
		DcIdentifier:       entry.DcIdentifier,
		PrismURL:           entry.PrismURL,
		Title:              entry.Title,
		Creator:            entry.Creator,
		PublicationName:    entry.PublicationName,
		CoverDate:          parseCoverDate(entry.CoverDate),
		SubtypeDescription: entry.SubtypeDescription,
		CitedByCount:       citedBy,
		DOI:                entry.DOI,
		ISSN:               entry.ISSN,
		ISBN:               strings.Join(isbns, "; "),
		PII:                entry.PII,
		PubmedID:           entry.PubmedID,
		ORCID:              entry.ORCID,
		OpenAccess:         entry.OpenAccessFlag,
		Links:              strings.Join(links, "; "),
		RawJSON:            []byte(raw),
	}
}
