package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sarvekshan/internal/config"
	"sarvekshan/internal/repository"
	"sarvekshan/internal/service"
	"sarvekshan/internal/store"
	"sarvekshan/internal/transport/rest"
	"sarvekshan/internal/transport/ws"
)

func main() {
	log.Println("started")
	ctx := context.Background()

	cfg := config.Load()

	// Remote collaborators: the survey catalog and school directory live in
	// MongoDB when configured, otherwise the bundled demo data is used.
	var catalog repository.SurveyCatalog
	var directory repository.SchoolDirectory
	if cfg.MongoURI != "" {
		mongoClient, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("Failed to connect to MongoDB:", err)
		}
		defer mongoClient.Disconnect(ctx)

		pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := mongoClient.Ping(pingCtx, nil); err != nil {
			log.Fatal("Failed to ping MongoDB:", err)
		}
		log.Println("Connected to MongoDB")

		db := mongoClient.Database(cfg.MongoDB)
		catalog = repository.NewSurveyCatalog(db)
		directory = repository.NewSchoolDirectory(db)
	} else {
		log.Println("MONGO_URI not set, using bundled demo catalog and directory")
		catalog = repository.NewMockCatalog()
		directory = repository.NewMockDirectory()
	}
	directory = repository.NewCachedDirectory(directory)

	// Device-local state: Redis when configured, in-memory otherwise.
	var schoolCache store.SchoolCache
	var drafts store.DraftStore
	var responses store.ResponseStore
	var exports store.ExportStore
	if cfg.RedisAddr != "" {
		redisAddr := strings.TrimPrefix(cfg.RedisAddr, "redis://")
		rdb := redis.NewClient(&redis.Options{
			Addr: redisAddr,
		})
		defer rdb.Close()

		if _, err := rdb.Ping(ctx).Result(); err != nil {
			log.Fatal("Failed to ping Redis:", err)
		}
		log.Println("Connected to Redis")

		schoolCache = store.NewRedisSchoolCache(rdb)
		drafts = store.NewRedisDraftStore(rdb)
		responses = store.NewRedisResponseStore(rdb)
		exports = store.NewRedisExportStore(rdb)
	} else {
		log.Println("REDIS_URI not set, using in-memory stores")
		schoolCache = store.NewMemorySchoolCache()
		drafts = store.NewMemoryDraftStore()
		responses = store.NewMemoryResponseStore()
		exports = store.NewMemoryExportStore()
	}

	// Initialize WebSocket hub
	wsHub := ws.NewHub()
	log.Println("WebSocket hub started")

	// Initialize services
	authSvc := service.NewAuthService()
	networkSvc := service.NewNetworkService()
	validatorSvc := service.NewValidatorService(directory, schoolCache, networkSvc)
	sessionSvc := service.NewSessionService(catalog, validatorSvc, networkSvc, drafts, responses, service.SessionConfig{
		SkipLanguageSelectionIfSingle: cfg.SkipLanguageSelectIfSingle,
		DraftDebounce:                 cfg.DraftDebounce,
	})
	offlineSvc := service.NewOfflineService(catalog, schoolCache, networkSvc)
	exportSvc := service.NewExportService(responses, exports, catalog)
	transmitter := service.NewSimulatedTransmitter(cfg.TransmitDelay)
	syncSvc := service.NewSyncService(responses, networkSvc, transmitter, cfg.SyncInterval)

	// Inject broadcaster (wsHub implements service.Broadcaster)
	networkSvc.SetBroadcaster(wsHub)
	sessionSvc.SetBroadcaster(wsHub)
	offlineSvc.SetBroadcaster(wsHub)
	syncSvc.SetBroadcaster(wsHub)

	// Background sync worker
	syncCtx, stopSync := context.WithCancel(ctx)
	go syncSvc.Run(syncCtx)

	// Create router with container
	container := &rest.Container{
		AuthService:    authSvc,
		NetworkService: networkSvc,
		SessionService: sessionSvc,
		OfflineService: offlineSvc,
		ExportService:  exportSvc,
		SyncService:    syncSvc,
		Catalog:        catalog,
		Responses:      responses,
		WSHub:          wsHub,
	}

	router := rest.NewRouter(container)

	srv := &http.Server{
		Addr:    ":" + cfg.HTTPPort,
		Handler: router,
	}

	go func() {
		log.Printf("Engine listening on :%s", cfg.HTTPPort)
		log.Println("Endpoints:")
		log.Println("  POST /v1/auth/login")
		log.Println("  GET  /v1/surveys")
		log.Println("  POST /v1/surveys/{surveyId}/session")
		log.Println("  GET/PUT /v1/network")
		log.Println("  GET/POST /v1/schools/cache")
		log.Println("  GET  /v1/responses")
		log.Println("  WS  /v1/ws/events")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("ListenAndServe:", err)
		}
	}()

	// Wait for interrupt
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down...")

	stopSync()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Engine exited")
}
