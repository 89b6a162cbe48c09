package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func RegisterRoutes(r *chi.Mux, registrationHandler *RegistrationHandler, reportHandler *ReportHandler) {
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// Initialize Huma API
	config := huma.DefaultConfig("Iftar Registration API", "1.0.0")
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// Ledger
	huma.Post(api, "/registrations", registrationHandler.HandleRegister)
	huma.Get(api, "/registrations", registrationHandler.HandleList)
	huma.Delete(api, "/registrations/last", registrationHandler.HandleDeleteLast)
	huma.Delete(api, "/registrations", registrationHandler.HandleClearAll)

	// Reporting
	huma.Get(api, "/report", reportHandler.HandleReport)
	r.Get("/export", reportHandler.HandleExport)
}
