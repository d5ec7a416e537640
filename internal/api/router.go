package api

import (
	_ "countryfx/docs"
	"countryfx/internal/country/handler"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	swagger "github.com/swaggo/http-swagger"
)

func NewRouter(countryHandler *handler.Handler) *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(middleware.Heartbeat("/healthz"))

	// Swagger UI
	router.Get("/swagger/*", swagger.WrapHandler)

	router.Get("/", countryHandler.Root)
	router.Get("/status", countryHandler.Status)

	router.Post("/countries/refresh", countryHandler.Refresh)
	router.Get("/countries", countryHandler.List)
	router.Get("/countries/image", countryHandler.Image)
	router.Get("/countries/{name}", countryHandler.GetByName)
	router.Delete("/countries/{name}", countryHandler.DeleteByName)
	return router
}
