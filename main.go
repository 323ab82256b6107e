package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jetset/config"
	"jetset/cron"
	"jetset/handlers"
	"jetset/middleware"
	"jetset/routes"
	"jetset/services/booking"
	ai "jetset/services/intelligence"
	domainrouter "jetset/services/router"
	"jetset/services/tasks"
	"jetset/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/hibiken/asynq"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	// Create the Gin router.
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	router.Use(middleware.RateLimitMiddleware())

	// Draft stores: one per domain, memory by default, redis when configured.
	var desertStore, waterStore booking.DraftStore
	if config.AppConfig.DraftStoreBackend == "redis" {
		utils.InitDraftCache()
		draftClient := utils.GetDraftCacheClient()
		desertStore = booking.NewRedisDraftStore(draftClient, "desert", 0)
		waterStore = booking.NewRedisDraftStore(draftClient, "water", 0)
	} else {
		desertStore = booking.NewMemoryDraftStore()
		waterStore = booking.NewMemoryDraftStore()
	}

	tz := config.AppConfig.Timezone
	desertService := booking.NewBookingService(booking.DesertDomain(tz), desertStore)
	waterService := booking.NewBookingService(booking.WaterDomain(tz), waterStore)

	// Router state and conversation summaries live in redis; fall back to an
	// in-process store when drafts are kept in memory too.
	var routerState domainrouter.StateStore
	var summaryStore *ai.SummaryStore
	if config.AppConfig.DraftStoreBackend == "redis" {
		utils.InitRouterCache()
		routerClient := utils.GetRouterCacheClient()
		routerState = domainrouter.NewRedisStateStore(routerClient, utils.RouterStateTTL)
		summaryStore = ai.NewSummaryStore(routerClient, utils.SummaryTTL)
	} else {
		routerState = domainrouter.NewMemoryStateStore()
	}

	// Gemini collaborators are optional: without a key the router falls back
	// to its heuristics and summaries are skipped.
	var classifier domainrouter.Classifier
	var summarizer cron.Summarizer
	if key := config.AppConfig.GeminiAPIKey; key != "" {
		gemini, err := ai.NewGeminiClient(key)
		if err != nil {
			logger.Sugar().Fatalf("main: failed to initialize gemini client: %v", err)
		}
		classifier = &ai.GeminiClassifier{Generator: gemini}
		summarizer = &ai.GeminiSummarizer{Generator: gemini}
	} else {
		logger.Warn("GEMINI_API_KEY not set; routing runs on heuristics only")
	}

	domainRouterSvc := &domainrouter.DefaultDomainRouter{
		Desert:     desertService,
		Water:      waterService,
		State:      routerState,
		Classifier: classifier,
		Logger:     logger,
	}

	taskClient := tasks.NewClient(asynq.RedisClientOpt{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisQueueDB,
	})
	defer taskClient.Close()

	handlers.DesertService = desertService
	handlers.WaterService = waterService
	handlers.DomainRouter = domainRouterSvc
	handlers.SummaryStore = summaryStore
	handlers.TaskClient = taskClient

	cron.InitAssistantWorker(summarizer, summaryStore)
	if config.AppConfig.DraftStoreBackend == "redis" {
		utils.StartHealthMonitor([]*redis.Client{
			utils.GetDraftCacheClient(),
			utils.GetRouterCacheClient(),
		})
	}

	routes.RegisterRoutes(router)

	// Start the HTTP server.
	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	// Wait for an OS signal to gracefully shutdown.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
