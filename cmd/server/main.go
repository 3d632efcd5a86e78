package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/yourusername/recruitr-api/internal/config"
	"github.com/yourusername/recruitr-api/internal/handler"
	"github.com/yourusername/recruitr-api/internal/middleware"
	"github.com/yourusername/recruitr-api/internal/ranking"
	"github.com/yourusername/recruitr-api/internal/repository"
	"github.com/yourusername/recruitr-api/internal/service"
)

func main() {
	// ── Logging ──────────────────────────────────────────
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// ── Config ───────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load config")
	}
	log.Info().Str("env", cfg.Env).Str("port", cfg.Port).Msg("Starting Recruitr API")

	// ── Database ─────────────────────────────────────────
	ctx := context.Background()
	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		log.Fatal().Err(err).Msg("Failed to ping database")
	}
	log.Info().Msg("Database connected")

	// ── Repositories ─────────────────────────────────────
	candidateRepo := repository.NewCandidateRepo(pool)
	artifactRepo := repository.NewArtifactRepo(pool)
	profileRepo := repository.NewProfileRepo(pool)
	jobRepo := repository.NewJobRepo(pool)
	matchRepo := repository.NewMatchRepo(pool)
	companyRepo := repository.NewCompanyRepo(pool)

	// ── Services ─────────────────────────────────────────
	ai := service.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIBaseURL)
	if !ai.Configured() {
		log.Warn().Msg("OPENAI_API_KEY not set; AI endpoints will be unavailable")
	}
	engine := ranking.NewDefaultEngine()

	// ── Handlers ─────────────────────────────────────────
	candidateHandler := handler.NewCandidateHandler(candidateRepo, artifactRepo, profileRepo)
	artifactHandler := handler.NewArtifactHandler(candidateRepo, artifactRepo, ai, cfg.UploadDir)
	ingestHandler := handler.NewIngestHandler(candidateRepo, artifactRepo, profileRepo, ai, artifactHandler)
	rankHandler := handler.NewRankHandler(candidateRepo, artifactRepo, engine)
	jobHandler := handler.NewJobHandler(jobRepo)
	matchHandler := handler.NewMatchHandler(jobRepo, candidateRepo, profileRepo, artifactRepo, matchRepo, ai)
	companyHandler := handler.NewCompanyHandler(companyRepo)
	parseHandler := handler.NewParseHandler(ai)

	// ── Middleware ────────────────────────────────────────
	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS)

	// ── Router ───────────────────────────────────────────
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())

	// CORS. gin-contrib/cors rejects a literal "*" entry in AllowOrigins,
	// so the wildcard default maps to AllowAllOrigins without credentials.
	corsCfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders: []string{"Content-Length", "X-Request-ID"},
		MaxAge:        12 * time.Hour,
	}
	if len(cfg.AllowedOrigins) == 1 && cfg.AllowedOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.AllowedOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// Health checks
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "recruitr-api",
			"time":    time.Now().UTC(),
		})
	})
	r.GET("/health/ai", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"configured":  ai.Configured(),
			"key_preview": ai.KeyPreview(),
		})
	})

	api := r.Group("/", rateLimiter.Limit())
	{
		// Ranking
		api.POST("/match/rank", rankHandler.Rank)

		// Candidates
		api.POST("/candidates", candidateHandler.Create)
		api.GET("/candidates", candidateHandler.List)
		api.GET("/candidates/:id", candidateHandler.Get)
		api.PUT("/candidates/:id", candidateHandler.Update)
		api.DELETE("/candidates/:id", candidateHandler.Delete)

		// Artifacts
		api.POST("/candidates/:id/artifacts", artifactHandler.Upload)
		api.GET("/candidates/:id/artifacts", candidateHandler.ListArtifacts)

		// Ingest
		api.POST("/ingest/upload", ingestHandler.Upload)

		// Jobs
		api.POST("/jobs", jobHandler.Create)
		api.GET("/jobs", jobHandler.List)
		api.GET("/jobs/:id", jobHandler.Get)
		api.PUT("/jobs/:id", jobHandler.Update)
		api.DELETE("/jobs/:id", jobHandler.Delete)

		// AI matches
		api.POST("/jobs/:id/matches/:candidateId", matchHandler.Score)
		api.GET("/jobs/:id/matches", matchHandler.List)

		// Parsing
		api.POST("/parse/job", parseHandler.ParseJob)
		api.POST("/parse/artifact", parseHandler.ParseArtifact)

		// Company profile
		api.GET("/company/profile", companyHandler.Get)
		api.POST("/company/profile", companyHandler.Save)
	}

	// ── Server ───────────────────────────────────────────
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	log.Info().Str("port", cfg.Port).Msg("Recruitr API server running")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server stopped")
}
