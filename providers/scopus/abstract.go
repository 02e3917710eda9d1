package scopus

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// FetchAbstract holt den Abstract eines einzelnen Papers über die Abstract
// Retrieval API. Fehlt die Beschreibung in der Antwort, wird ein leerer
// String zurückgegeben.
func (f *Fetcher) FetchAbstract(ctx context.Context, eid string) (string, error) {
	reqURL := fmt.Sprintf("%s/content/abstract/eid/%s", f.Config.ScopusBaseURL, url.PathEscape(eid))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("Request konnte nicht erstellt werden: %w", err)
	}
	req.Header.Set("X-ELS-APIKey", f.Config.ScopusAPIKey)
	req.Header.Set("Accept", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("Abstract-Request fehlgeschlagen: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("Abstract API antwortete mit Status %d: %s", resp.StatusCode, string(body))
	}

	var parsed abstractResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("Antwort konnte nicht dekodiert werden: %w", err)
	}
	return parsed.AbstractsRetrievalResponse.Coredata.Description, nil
}
