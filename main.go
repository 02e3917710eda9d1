package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"litscope/config"
	"litscope/llm"
	"litscope/models"
	"litscope/providers"
	"litscope/providers/scopus"
	"litscope/services"
	"litscope/storage"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	papersDiscoveredCounter  prometheus.Counter
	abstractsEnrichedCounter prometheus.Counter
	papersScreenedCounter    prometheus.Counter
	documentsCodedCounter    prometheus.Counter
)

func init() {
	papersDiscoveredCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "papers_discovered_total",
		Help: "Total number of papers fetched by discovery runs.",
	})
	abstractsEnrichedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "abstracts_enriched_total",
		Help: "Total number of abstracts fetched by enrichment runs.",
	})
	papersScreenedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "papers_screened_total",
		Help: "Total number of papers screened by the classifier.",
	})
	documentsCodedCounter = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "documents_coded_total",
		Help: "Total number of policy documents coded.",
	})
	prometheus.MustRegister(papersDiscoveredCounter, abstractsEnrichedCounter, papersScreenedCounter, documentsCodedCounter)
}

func apiKeyAuthMiddleware(cfg *config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		if cfg.APISecretKey == "" {
			c.Next()
			return
		}
		apiKey := c.GetHeader("X-API-KEY")
		if apiKey != cfg.APISecretKey {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized: Invalid API Key"})
			return
		}
		c.Next()
	}
}

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database Connection
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err))
	}
	logging.Info("Successfully connected to papers database.")

	// Auto-Migration
	logging.Info("Running database auto-migration...")
	if err := db.AutoMigrate(&models.Paper{}); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}

	// Setup Provider und Services
	scopusFetcher := scopus.NewFetcher(cfg, logging)
	store := storage.NewPaperStore(db)
	classifier := llm.NewClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, cfg.ClassifierRetries, logging)

	discovery := services.NewDiscoveryService(store, []providers.Provider{scopusFetcher}, logging)
	enrichment := services.NewEnrichmentService(store, scopusFetcher, logging, cfg.RequestDelay)
	screening := services.NewScreeningService(store, classifier, logging, cfg.RequestDelay)
	coding := services.NewCodingService(classifier, logging)

	// runPipeline führt Discovery, Enrichment und Screening nacheinander aus.
	runPipeline := func(ctx context.Context) error {
		discovered, err := discovery.Run(ctx, cfg.SearchQuery)
		if err != nil {
			return err
		}
		papersDiscoveredCounter.Add(float64(discovered))

		enriched, err := enrichment.Run(ctx)
		if err != nil {
			return err
		}
		abstractsEnrichedCounter.Add(float64(enriched))

		screened, err := screening.Run(ctx)
		if err != nil {
			return err
		}
		papersScreenedCounter.Add(float64(screened))
		return nil
	}

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	router.Use(apiKeyAuthMiddleware(cfg))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	setupPaperRoutes(router, db, logging)
	setupPipelineRoutes(router, cfg, discovery, enrichment, screening, logging)
	setupCodingRoutes(router, cfg, coding, logging)

	// Setup Cron
	cronScheduler := cron.New()
	cronScheduler.AddFunc(cfg.CronSchedule, func() {
		logging.Info("Running scheduled pipeline job...")
		if err := runPipeline(context.Background()); err != nil {
			logging.Error("Cron job failed", zap.Error(err))
		} else {
			logging.Info("Cron job completed")
		}
	})
	cronScheduler.Start()

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}

func setupPaperRoutes(router *gin.Engine, db *gorm.DB, log *zap.Logger) {
	rg := router.Group("/papers")

	// Einfacher GET-Endpunkt, um alle Paper abzurufen (ohne Filter)
	rg.GET("/", func(c *gin.Context) {
		var papers []models.Paper
		if err := db.Find(&papers).Error; err != nil {
			log.Error("Database query for all papers failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, papers)
	})

	rg.GET("/:eid", func(c *gin.Context) {
		eid := c.Param("eid")
		var paper models.Paper
		if err := db.Where("eid = ?", eid).First(&paper).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "paper not found"})
				return
			}
			log.Error("DB error fetching paper", zap.String("eid", eid), zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}
		c.JSON(http.StatusOK, paper)
	})

	// Body-gesteuerter Endpunkt für komplexe Abfragen
	rg.POST("/query", func(c *gin.Context) {
		type PaperQuery struct {
			ToBeReviewed  *bool    `json:"to_be_reviewed"`
			MinConfidence *float64 `json:"min_confidence"`
			Subtype       string   `json:"subtype"`
			HasAbstract   *bool    `json:"has_abstract"`
			Limit         int      `json:"limit"`
		}

		var req PaperQuery
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		query := db.Model(&models.Paper{})

		if req.ToBeReviewed != nil {
			query = query.Where("to_be_reviewed = ?", *req.ToBeReviewed)
		}
		if req.MinConfidence != nil {
			query = query.Where("confidence_level >= ?", *req.MinConfidence)
		}
		if req.Subtype != "" {
			query = query.Where("subtype_description = ?", req.Subtype)
		}
		if req.HasAbstract != nil {
			if *req.HasAbstract {
				query = query.Where("abstract <> ''")
			} else {
				query = query.Where("abstract = '' OR abstract IS NULL")
			}
		}
		if req.Limit > 0 {
			query = query.Limit(req.Limit)
		}

		var papers []models.Paper
		if err := query.Order("created_at desc").Find(&papers).Error; err != nil {
			log.Error("Database query for papers failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "database error"})
			return
		}

		c.JSON(http.StatusOK, papers)
	})
}

func setupPipelineRoutes(router *gin.Engine, cfg *config.Config, discovery *services.DiscoveryService, enrichment *services.EnrichmentService, screening *services.ScreeningService, log *zap.Logger) {
	rg := router.Group("/pipeline")

	rg.POST("/discover", func(c *gin.Context) {
		go func() {
			count, err := discovery.Run(context.Background(), cfg.SearchQuery)
			if err != nil {
				log.Error("Async discovery run failed", zap.Error(err))
			} else {
				papersDiscoveredCounter.Add(float64(count))
				log.Info("Async discovery run completed", zap.Int("papers", count))
			}
		}()
		c.JSON(http.StatusAccepted, gin.H{"message": "Discovery run triggered."})
	})

	rg.POST("/enrich", func(c *gin.Context) {
		go func() {
			count, err := enrichment.Run(context.Background())
			if err != nil {
				log.Error("Async enrichment run failed", zap.Error(err))
			} else {
				abstractsEnrichedCounter.Add(float64(count))
				log.Info("Async enrichment run completed", zap.Int("abstracts", count))
			}
		}()
		c.JSON(http.StatusAccepted, gin.H{"message": "Enrichment run triggered."})
	})

	rg.POST("/screen", func(c *gin.Context) {
		go func() {
			count, err := screening.Run(context.Background())
			if err != nil {
				log.Error("Async screening run failed", zap.Error(err))
			} else {
				papersScreenedCounter.Add(float64(count))
				log.Info("Async screening run completed", zap.Int("papers", count))
			}
		}()
		c.JSON(http.StatusAccepted, gin.H{"message": "Screening run triggered."})
	})
}

func setupCodingRoutes(router *gin.Engine, cfg *config.Config, coding *services.CodingService, log *zap.Logger) {
	rg := router.Group("/coding")

	rg.POST("/run", func(c *gin.Context) {
		go func() {
			count, err := coding.Run(context.Background(), cfg.PolicyPDFDir, cfg.CodingCSVPath)
			if err != nil {
				log.Error("Async coding run failed", zap.Error(err))
			} else {
				documentsCodedCounter.Add(float64(count))
				log.Info("Async coding run completed", zap.Int("documents", count))
			}
		}()
		c.JSON(http.StatusAccepted, gin.H{"message": "Coding run triggered."})
	})

	rg.POST("/expand", func(c *gin.Context) {
		if err := services.ExpandCodedCSV(cfg.CodingCSVPath, cfg.ExpandedCSVPath); err != nil {
			log.Error("CSV expansion failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Expanded CSV written.", "path": cfg.ExpandedCSVPath})
	})
}
