package router

import (
	"net/http"

	"pet-catalog/internal/domain/catalog"
	"pet-catalog/internal/domain/pets"
	"pet-catalog/internal/middleware"
	"pet-catalog/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

type Options struct {
	Pets    *pets.Service
	Catalog *catalog.Service // puede ser nil: se arma sobre Pets

	Logger logger.Logger // puede ser nil
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.RequestLogger(opts.Logger))
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	catalogSvc := opts.Catalog
	if catalogSvc == nil {
		catalogSvc = catalog.NewService(opts.Pets, opts.Logger)
	}

	// Rutas por módulo
	pets.RegisterRoutes(r, opts.Pets)
	catalog.RegisterRoutes(r, catalogSvc)

	return r
}
