package main

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/csv"
	"fmt"
	"log"
	"sort"
	"strconv"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/kelseyhightower/envconfig"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"litscope/models"
	"litscope/storage"
)

type ExportConfig struct {
	PostgresHost     string `envconfig:"POSTGRES_HOST" required:"true"`
	PostgresPort     int    `envconfig:"POSTGRES_PORT" default:"5432"`
	PostgresUser     string `envconfig:"POSTGRES_USER" required:"true"`
	PostgresPassword string `envconfig:"POSTGRES_PASSWORD" required:"true"`
	PostgresDB       string `envconfig:"POSTGRES_DB" required:"true"`
	ExportBucket     string `envconfig:"EXPORT_S3_BUCKET" required:"true"`
	ExportEndpoint   string `envconfig:"EXPORT_S3_ENDPOINT" required:"true"`
	ExportAccessKey  string `envconfig:"EXPORT_S3_ACCESS_KEY" required:"true"`
	ExportSecretKey  string `envconfig:"EXPORT_S3_SECRET_KEY" required:"true"`
	ExportRegion     string `envconfig:"EXPORT_S3_REGION" required:"true"`
	KeepExports      int    `envconfig:"KEEP_EXPORTS" default:"4"`
}

func main() {
	log.Println("Starte Export-Prozess...")

	var cfg ExportConfig
	err := envconfig.Process("", &cfg)
	if err != nil {
		log.Fatalf("Fehler beim Laden der Konfiguration: %v", err)
	}

	// 1. Paper aus der Datenbank lesen
	papers, err := loadPapers(cfg)
	if err != nil {
		log.Fatalf("Fehler beim Lesen der Paper: %v", err)
	}
	log.Printf("%d Paper geladen", len(papers))

	// 2. CSV erzeugen und komprimieren
	data, err := buildCSV(papers)
	if err != nil {
		log.Fatalf("Fehler beim Erzeugen der CSV: %v", err)
	}

	// 3. S3-Client erstellen
	s3Client, err := storage.NewS3Client(cfg.ExportEndpoint, cfg.ExportRegion, cfg.ExportAccessKey, cfg.ExportSecretKey)
	if err != nil {
		log.Fatalf("Fehler beim Erstellen des S3-Clients: %v", err)
	}

	// 4. Export nach S3 hochladen
	fileName := fmt.Sprintf("papers-%s.csv.gz", time.Now().UTC().Format("2006-01-02T15-04-05Z"))
	link, err := storage.UploadFile(s3Client, cfg.ExportEndpoint, cfg.ExportBucket, fileName, data)
	if err != nil {
		log.Fatalf("Fehler beim Hochladen nach S3: %v", err)
	}
	log.Printf("Export erfolgreich hochgeladen: %s", link)

	// 5. Alte Exporte rotieren
	err = rotateExports(s3Client, cfg)
	if err != nil {
		log.Fatalf("Fehler bei der Rotation alter Exporte: %v", err)
	}

	log.Println("Export-Prozess erfolgreich abgeschlossen.")
}

func loadPapers(cfg ExportConfig) ([]models.Paper, error) {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		cfg.PostgresHost, cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresDB, cfg.PostgresPort)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, err
	}

	var papers []models.Paper
	if err := db.Order("eid").Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}

func buildCSV(papers []models.Paper) ([]byte, error) {
	var buf bytes.Buffer
	gzipWriter := gzip.NewWriter(&buf)
	w := csv.NewWriter(gzipWriter)

	header := []string{
		"eid", "title", "creator", "publication_name", "cover_date",
		"subtype_description", "cited_by_count", "doi", "issn", "isbn",
		"open_access", "abstract", "to_be_reviewed", "confidence_level", "analysis_summary",
	}
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, p := range papers {
		coverDate := ""
		if p.CoverDate != nil {
			coverDate = p.CoverDate.Format("2006-01-02")
		}
		toBeReviewed := ""
		if p.ToBeReviewed != nil {
			toBeReviewed = strconv.FormatBool(*p.ToBeReviewed)
		}
		confidence := ""
		if p.ConfidenceLevel != nil {
			confidence = strconv.FormatFloat(*p.ConfidenceLevel, 'f', -1, 64)
		}

		record := []string{
			p.EID, p.Title, p.Creator, p.PublicationName, coverDate,
			p.SubtypeDescription, strconv.Itoa(p.CitedByCount), p.DOI, p.ISSN, p.ISBN,
			strconv.FormatBool(p.OpenAccess), p.Abstract, toBeReviewed, confidence, p.AnalysisSummary,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	if err := gzipWriter.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func rotateExports(client *s3.Client, cfg ExportConfig) error {
	output, err := client.ListObjectsV2(context.TODO(), &s3.ListObjectsV2Input{
		Bucket: aws.String(cfg.ExportBucket),
	})
	if err != nil {
		return err
	}

	if len(output.Contents) <= cfg.KeepExports {
		log.Printf("Weniger als %d Exporte vorhanden, keine Rotation nötig.", cfg.KeepExports)
		return nil
	}

	sort.Slice(output.Contents, func(i, j int) bool {
		return output.Contents[i].LastModified.After(*output.Contents[j].LastModified)
	})

	for _, obj := range output.Contents[cfg.KeepExports:] {
		log.Printf("Lösche alten Export: %s", *obj.Key)
		_, err := client.DeleteObject(context.TODO(), &s3.DeleteObjectInput{
			Bucket: aws.String(cfg.ExportBucket),
			Key:    obj.Key,
		})
		if err != nil {
			log.Printf("Fehler beim Löschen von %s: %v", *obj.Key, err)
		}
	}

	return nil
}
