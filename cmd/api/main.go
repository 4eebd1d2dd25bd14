package main

import (
	"net/http"
	"os"
	"time"

	"car-collection/internal/adapters/auth/gotrue"
	blobminio "car-collection/internal/adapters/blob/minio"
	"car-collection/internal/adapters/export/github"
	"car-collection/internal/adapters/storage/postgres"
	"car-collection/internal/platform/config"
	"car-collection/internal/platform/logger"
	"car-collection/internal/router"
)

// @title        car-collection API
// @version      1.0
// @description  CRUD de colección de vehículos: registros por usuario,
// @description  búsqueda/filtro, imágenes y export a un repo externo.
// @BasePath     /
func main() {
	cfg, err := config.Load()
	if err != nil {
		// Logger todavía no existe; stderr directo y salir.
		os.Stderr.WriteString("config: " + err.Error() + "\n")
		os.Exit(1)
	}

	log := logger.New(logger.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		App:    cfg.AppName,
	})

	opts := router.Options{Logger: log}

	if cfg.DBDSN != "" {
		db, err := postgres.Open(cfg.DBDSN)
		if err != nil {
			log.Error("db open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		defer db.Close()
		opts.DB = db
	} else {
		log.Warn("DB_DSN not set, using in-memory record store", nil)
	}

	if cfg.AuthJWTSecret != "" {
		verifier, err := gotrue.NewVerifier(cfg.AuthJWTSecret)
		if err != nil {
			log.Error("auth verifier init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.AuthVerifier = verifier
	} else {
		log.Warn("AUTH_JWT_SECRET not set, running in dev auth mode", nil)
	}

	if cfg.AuthBaseURL != "" {
		provider, err := gotrue.NewClient(gotrue.Config{
			BaseURL:     cfg.AuthBaseURL,
			RedirectURL: cfg.AuthRedirectURL,
			Provider:    cfg.AuthProvider,
		})
		if err != nil {
			log.Error("auth provider init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.AuthProvider = provider
	}

	if cfg.MinioEndpoint != "" {
		store, err := blobminio.NewStore(blobminio.Config{
			Endpoint:  cfg.MinioEndpoint,
			AccessKey: cfg.MinioAccessKey,
			SecretKey: cfg.MinioSecretKey,
			Bucket:    cfg.MinioBucket,
			UseSSL:    cfg.MinioUseSSL,
		})
		if err != nil {
			log.Error("blob store init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.BlobStore = store
	} else {
		log.Warn("MINIO_ENDPOINT not set, using in-memory blob store", nil)
	}

	if cfg.ExportToken != "" {
		pub, err := github.NewPublisher(github.Config{
			BaseURL: cfg.ExportAPIBaseURL,
			Token:   cfg.ExportToken,
			Repo:    cfg.ExportRepo,
			Branch:  cfg.ExportBranch,
		})
		if err != nil {
			log.Error("export publisher init failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		opts.Publisher = pub
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": cfg.Addr()})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}
