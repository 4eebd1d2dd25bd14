package router

import (
	"database/sql"
	"net/http"
	"os"

	_ "car-collection/docs"
	blobmem "car-collection/internal/adapters/blob/memory"
	mem "car-collection/internal/adapters/storage/memory"
	pg "car-collection/internal/adapters/storage/postgres"
	"car-collection/internal/domain/cars"
	"car-collection/internal/domain/images"
	"car-collection/internal/domain/sessions"
	"car-collection/internal/middleware"
	"car-collection/internal/platform/logger"
	"car-collection/internal/ports/auth"
	"car-collection/internal/ports/blob"
	"car-collection/internal/ports/export"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil => modo dev (X-Debug-User-ID)
	AuthProvider auth.Provider     // nil => no se registran las rutas /auth

	// Si viene, usa Postgres. Si no, prueba DB_DSN y cae a in-memory.
	DB *sql.DB

	BlobStore blob.Store       // nil => in-memory
	Publisher export.Publisher // nil => export degrada a descarga JSON

	Logger logger.Logger // nil => NewFromEnv
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(opts.AuthVerifier))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	// Si no te pasan DB explícita, intenta por env (para dev/handoff).
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("db open failed, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	var carRepo cars.Repository
	if db != nil {
		carRepo = pg.NewCarsRepo(db)
	} else {
		carRepo = mem.NewCarRepo()
	}

	store := opts.BlobStore
	if store == nil {
		store = blobmem.NewStore()
	}

	carsSvc := cars.NewService(carRepo)
	imagesSvc := images.NewService(store)

	cars.RegisterRoutes(r, carsSvc, opts.Publisher, log)
	images.RegisterRoutes(r, imagesSvc, log)

	if opts.AuthProvider != nil {
		sessions.RegisterRoutes(r, sessions.NewManager(opts.AuthProvider), log)
	}

	return r
}
