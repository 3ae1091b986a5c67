package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	generate_excel "quote-calc/http-server/generate-report/generate-excel"
	getmodules "quote-calc/http-server/modules/get"
	togglemodule "quote-calc/http-server/modules/update"
	"quote-calc/http-server/modules/upload"
	"quote-calc/http-server/modules/validate"
	getproject "quote-calc/http-server/projects/get"
	saveproject "quote-calc/http-server/projects/save"
	updateproject "quote-calc/http-server/projects/update"
	"quote-calc/http-server/quote/calculate"
	"quote-calc/http-server/quote/project"
	getrates "quote-calc/http-server/rates/get"
	saverates "quote-calc/http-server/rates/save"
	"quote-calc/internal/config"
	"quote-calc/internal/middleware/auth"
)

// Storage is everything the handlers read from and write to.
type Storage interface {
	getrates.RateProvider
	saverates.RateSaver
	getproject.ProjectProvider
	saveproject.ProjectCreator
	updateproject.SettingsUpdater
	getmodules.ModuleProvider
	togglemodule.ModuleToggler
	upload.ModuleSaver
}

func routes(cfg config.Config, log *slog.Logger, storage Storage, quoter project.ProjectQuoter, excel generate_excel.GenerateExcelHandler) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)
	router.Use(middleware.RequestID)
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)

	// stateless calculator
	router.Post("/api/quote/calculate", calculate.CalculateQuote(log))
	router.Post("/api/modules/validate", validate.ValidateModules(log))

	router.Get("/api/rates", getrates.GetRates(log, storage))

	router.Post("/api/projects", saveproject.CreateProject(log, storage))
	router.Get("/api/projects/{id}", getproject.GetProject(log, storage))
	router.Put("/api/projects/{id}/settings", updateproject.UpdateSettings(log, storage))

	router.Get("/api/projects/{id}/modules", getmodules.GetModules(log, storage))
	router.Put("/api/projects/{id}/modules/{moduleID}/enabled", togglemodule.SetModuleEnabled(log, storage))
	router.Post("/api/projects/{id}/modules/import", upload.ImportModules(log, storage))

	router.Post("/api/projects/{id}/quote", project.CalculateProjectQuote(log, quoter))
	router.Get("/api/projects/{id}/quote/excel", generate_excel.GenerateQuoteExcel(log, excel))

	adminRouter := chi.NewRouter()
	adminRouter.Use(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass))
	adminRouter.Put("/rates", saverates.SaveRates(log, storage))

	router.Mount("/api/admin", adminRouter)

	if cfg.FrontendDir != "" {
		mountFrontend(router, cfg, log)
	}

	return router
}

// mountFrontend serves the built SPA. Unknown paths fall back to index.html
// so client-side routes survive a reload.
func mountFrontend(router *chi.Mux, cfg config.Config, log *slog.Logger) {
	frontendDir := cfg.FrontendDir
	if _, err := os.Stat(frontendDir); err != nil {
		log.Warn("frontend directory not found, static files disabled", slog.String("path", frontendDir))
		return
	}

	index := filepath.Join(frontendDir, "index.html")
	fileServer := http.FileServer(http.Dir(frontendDir))

	router.Handle("/assets/*", fileServer)
	router.Handle("/js/*", fileServer)
	router.Handle("/css/*", fileServer)
	router.Handle("/img/*", fileServer)

	router.With(auth.BasicAuth(cfg.AdminLogin, cfg.AdminPass)).Handle("/admin/*",
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.ServeFile(w, r, index)
		}),
	)

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, index)
	})
}
