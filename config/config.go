package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// defaultSearchQuery is the boolean query for the policy-implementation review.
// It lives here instead of a struct tag because envconfig default tags cannot
// carry embedded double quotes.
const defaultSearchQuery = `TITLE-ABS-KEY( "policy implementation" OR "instrument implementation" OR "program implementation") AND TITLE-ABS (driv* OR moderat* OR obstacle* OR mediat* OR imped* OR determin* OR issue* OR challeng* OR problem* OR barrier* OR facilit* OR enabl* OR factor*) AND TITLE ("implementation") AND LIMIT-TO ( SUBJAREA,"SOCI" )`

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	DBHost     string `envconfig:"DB_HOST" required:"true"`
	DBPort     int    `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`

	HTTPPort     string `envconfig:"HTTP_PORT" default:"4242"`
	APISecretKey string `envconfig:"API_SECRET_KEY"`

	// Scopus-Konfiguration. Die Such-Query selbst hat ihren Default oben als Konstante.
	ScopusBaseURL string `envconfig:"SCOPUS_BASE_URL" default:"https://api.elsevier.com"`
	ScopusAPIKey  string `envconfig:"SCOPUS_API_KEY" required:"true"`
	SearchQuery   string `envconfig:"SEARCH_QUERY"`
	SubjectArea   string `envconfig:"SUBJECT_AREA" default:"SOCI"`
	// Die Scopus Search API liefert maximal 200 Ergebnisse pro Request.
	PageSize     int           `envconfig:"PAGE_SIZE" default:"200"`
	RequestDelay time.Duration `envconfig:"REQUEST_DELAY" default:"200ms"`

	OpenAIAPIKey      string `envconfig:"OPENAI_API_KEY" required:"true"`
	OpenAIModel       string `envconfig:"OPENAI_MODEL" default:"gpt-4.1"`
	ClassifierRetries int    `envconfig:"CLASSIFIER_RETRIES" default:"3"`

	// Pfade für die PDF-Kodierung
	PolicyPDFDir    string `envconfig:"POLICY_PDF_DIR" default:"files"`
	CodingCSVPath   string `envconfig:"CODING_CSV_PATH" default:"policy_analysis_results.csv"`
	ExpandedCSVPath string `envconfig:"EXPANDED_CSV_PATH" default:"policy_analysis_results_expanded.csv"`

	CronSchedule string `envconfig:"CRON_SCHEDULE" default:"0 0 * * *"`
}

// DSN gibt den Data Source Name für die PostgreSQL-Verbindung zurück.
func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if c.SearchQuery == "" {
		c.SearchQuery = defaultSearchQuery
	}
	return &c, nil
}
