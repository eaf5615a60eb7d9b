package main

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/greenrise/greenrise-api/internal/api"
	apiMiddleware "github.com/greenrise/greenrise-api/internal/api/middleware"
	"github.com/greenrise/greenrise-api/internal/api/shared"
	"github.com/greenrise/greenrise-api/internal/platform/imagestore"
)

// setupRouter registers every route and the middleware chain.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))

	r.NotFound(shared.RespondNotFound)
	r.MethodNotAllowed(shared.RespondMethodNotAllowed)

	userHandler := api.NewUserHandler(app.userService, app.config.Uploads.MaxBytes)
	hortalicaHandler := api.NewHortalicaHandler(app.hortalicaService)
	indexHandler := api.NewIndexHandler(app.userService, app.hortalicaService)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)

	r.Get("/", indexHandler.Index)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	// Profile images are only served locally for the disk backend; the S3
	// backend stores absolute URLs.
	if disk, ok := app.images.(*imagestore.DiskStore); ok {
		prefix := "/" + imagestore.PublicPrefix + "/"
		fileServer := http.StripPrefix(prefix, http.FileServer(http.Dir(disk.Root())))
		r.Get(prefix+"*", func(w http.ResponseWriter, r *http.Request) {
			if strings.HasSuffix(r.URL.Path, "/") {
				shared.RespondNotFound(w, r)
				return
			}
			fileServer.ServeHTTP(w, r)
		})
	}

	r.Route("/user", func(r chi.Router) {
		r.Get("/", userHandler.ListUsers)
		r.Post("/", userHandler.CreateUser)
		r.Post("/login", userHandler.Login)
		r.Get("/{id}", userHandler.GetUser)
		r.Put("/{id}", userHandler.UpdateUser)
		r.Delete("/{id}", userHandler.DeleteUser)
	})

	r.Route("/hortalicas", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Get("/", hortalicaHandler.ListHortalicas)
		r.Post("/", hortalicaHandler.CreateHortalica)
		r.Get("/{id}", hortalicaHandler.GetHortalica)
		r.Put("/{id}", hortalicaHandler.UpdateHortalica)
		r.Delete("/{id}", hortalicaHandler.DeleteHortalica)
	})

	return r
}
