// Package scopus enthält die Logik für die Interaktion mit der Elsevier Scopus API.
package scopus

import (
	"encoding/json"
	"time"
)

// searchPage ist die Top-Level-Struktur einer Scopus-Search-Antwortseite.
// Die Einträge bleiben zunächst Rohbytes, damit ein einzelner unerwarteter
// Eintrag nicht die gesamte Seite verwirft.
type searchPage struct {
	SearchResults struct {
		// Scopus liefert die Gesamtzahl als String, z.B. "1234".
		TotalResults string            `json:"opensearch:totalResults"`
		Entries      []json.RawMessage `json:"entry"`
	} `json:"search-results"`
}

// Entry repräsentiert einen einzelnen Sucheintrag (STANDARD view).
type Entry struct {
	EID                string      `json:"eid"`
	DcIdentifier       string      `json:"dc:identifier"`
	PrismURL           string      `json:"prism:url"`
	Title              string      `json:"dc:title"`
	Creator            string      `json:"dc:creator"`
	PublicationName    string      `json:"prism:publicationName"`
	CoverDate          string      `json:"prism:coverDate"`
	SubtypeDescription string      `json:"subtypeDescription"`
	CitedByCount       string      `json:"citedby-count"`
	DOI                string      `json:"prism:doi"`
	ISSN               string      `json:"prism:issn"`
	ISBNs              []wrappedID `json:"prism:isbn"`
	PII                string      `json:"pii"`
	PubmedID           string      `json:"pubmed-id"`
	ORCID              string      `json:"orcid"`
	OpenAccessFlag     bool        `json:"openaccessFlag"`
	Links              []entryLink `json:"link"`
}

// wrappedID ist ein Identifier im Scopus-typischen {"$": "..."}-Wrapper.
type wrappedID struct {
	Value string `json:"$"`
}

// entryLink ist ein einzelner Ref-Link eines Sucheintrags.
type entryLink struct {
	Ref  string `json:"@ref"`
	Href string `json:"@href"`
}

// abstractResponse ist die Antwort der Abstract Retrieval API.
type abstractResponse struct {
	AbstractsRetrievalResponse struct {
		Coredata struct {
			Description string `json:"dc:description"`
		} `json:"coredata"`
	} `json:"abstracts-retrieval-response"`
}

// parseCoverDate parst Scopus-Datumsangaben unterschiedlicher Genauigkeit.
func parseCoverDate(dateStr string) *time.Time {
	layouts := []string{"2006-01-02", "2006-01", "2006"}
	for _, layout := range layouts {
		t, err := time.Parse(layout, dateStr)
		if err == nil {
			return &t
		}
	}
	return nil
}
