package models

import (
	"time"

	"gorm.io/datatypes"
)

// Paper repräsentiert einen bibliographischen Datensatz aus der Scopus-Suche.
// Primärschlüssel ist die EID; ein erneuter Discovery-Lauf überschreibt
// vorhandene Zeilen statt sie zu duplizieren.
type Paper struct {
	EID       string    `json:"eid" gorm:"primaryKey;column:eid"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	DcIdentifier string `json:"dc_identifier,omitempty"`
	PrismURL     string `json:"prism_url,omitempty"`
	Title        string `json:"title" gorm:"type:text"`
	Creator      string `json:"creator,omitempty"`

	PublicationName    string     `json:"publication_name,omitempty"`
	CoverDate          *time.Time `json:"cover_date,omitempty"`
	SubtypeDescription string     `json:"subtype_description,omitempty" gorm:"index"`
	CitedByCount       int        `json:"citedby_count"`

	DOI      string `json:"doi,omitempty" gorm:"column:doi;index"`
	ISSN     string `json:"issn,omitempty"`
	ISBN     string `json:"isbn,omitempty"`
	PII      string `json:"pii,omitempty" gorm:"column:pii"`
	PubmedID string `json:"pubmed_id,omitempty" gorm:"column:pubmed_id"`
	ORCID    string `json:"orcid,omitempty" gorm:"column:orcid"`

	OpenAccess bool `json:"open_access"`

	// Links ist die "; "-verkettete Liste aller Ref-Links aus dem Suchergebnis.
	Links string `json:"links,omitempty" gorm:"type:text"`
	// RawJSON hält den unveränderten Scopus-Eintrag für spätere Auswertungen.
	RawJSON datatypes.JSON `json:"raw_json,omitempty" gorm:"type:jsonb"`

	// Wird vom Enrichment-Lauf befüllt.
	Abstract string `json:"abstract,omitempty" gorm:"type:text"`

	// Screening-Ergebnis; NULL bis der Screening-Lauf die Zeile verarbeitet hat.
	ToBeReviewed    *bool    `json:"to_be_reviewed,omitempty"`
	ConfidenceLevel *float64 `json:"confidence_level,omitempty"`
	AnalysisSummary string   `json:"analysis_summary,omitempty" gorm:"type:text"`
}

// TableName gibt explizit den Tabellennamen an.
func (Paper) TableName() string {
	return "papers"
}
