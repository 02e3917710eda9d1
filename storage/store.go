// Package storage kapselt den Datenbankzugriff über GORM.
package storage

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"litscope/models"
)

// discoveryColumns sind die Spalten, die ein erneuter Discovery-Lauf beim
// Upsert überschreiben darf. Abstract und Screening-Ergebnis bleiben erhalten.
var discoveryColumns = []string{
	"updated_at",
	"dc_identifier",
	"prism_url",
	"title",
	"creator",
	"publication_name",
	"cover_date",
	"subtype_description",
	"cited_by_count",
	"doi",
	"issn",
	"isbn",
	"pii",
	"pubmed_id",
	"orcid",
	"open_access",
	"links",
	"raw_json",
}

// PaperStore bündelt alle Datenbankoperationen auf der papers-Tabelle.
type PaperStore struct {
	DB *gorm.DB
}

// NewPaperStore erstellt einen neuen PaperStore.
func NewPaperStore(db *gorm.DB) *PaperStore {
	return &PaperStore{DB: db}
}

// UpsertPapers schreibt alle Paper in einem Batch in die Datenbank. Bereits
// vorhandene EIDs werden aktualisiert, aber nur in den Discovery-Spalten.
func (s *PaperStore) UpsertPapers(ctx context.Context, papers []*models.Paper) error {
	if len(papers) == 0 {
		return nil
	}

	result := s.DB.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "eid"}},
		DoUpdates: clause.AssignmentColumns(discoveryColumns),
	}).CreateInBatches(papers, 100)

	if result.Error != nil {
		return fmt.Errorf("Upsert fehlgeschlagen: %w", result.Error)
	}
	return nil
}

// PapersWithoutAbstract liefert alle Paper, für die noch kein Abstract
// gespeichert wurde.
func (s *PaperStore) PapersWithoutAbstract(ctx context.Context) ([]*models.Paper, error) {
	var papers []*models.Paper
	err := s.DB.WithContext(ctx).
		Where("abstract = '' OR abstract IS NULL").
		Order("eid").
		Find(&papers).Error
	if err != nil {
		return nil, err
	}
	return papers, nil
}

// UpdateAbstract speichert den Abstract eines einzelnen Papers.
func (s *PaperStore) UpdateAbstract(ctx context.Context, eid, abstract string) error {
	return s.DB.WithContext(ctx).Model(&models.Paper{}).
		Where("eid = ?", eid).
		Update("abstract", abstract).Error
}

// UnscreenedPapers liefert alle Paper, die noch kein Screening-Ergebnis haben.
func (s *PaperStore) UnscreenedPapers(ctx context.Context) ([]*models.Paper, error) {
	var papers []*models.Paper
	err := s.DB.WithContext(ctx).
		Where("to_be_reviewed IS NULL").
		Order("eid").
		Find(&papers).Error
	if err != nil {
		return nil, err
	}
	return papers, nil
}

// UpdateScreening speichert das Screening-Ergebnis eines einzelnen Papers.
// Jeder Datensatz wird sofort committed, damit ein Abbruch mitten im Lauf
// keine bereits bewerteten Paper verliert.
func (s *PaperStore) UpdateScreening(ctx context.Context, eid string, toBeReviewed bool, confidence float64, summary string) error {
	return s.DB.WithContext(ctx).Model(&models.Paper{}).
		Where("eid = ?", eid).
		Updates(map[string]interface{}{
			"to_be_reviewed":   toBeReviewed,
			"confidence_level": confidence,
			"analysis_summary": summary,
		}).Error
}
