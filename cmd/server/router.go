package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/phrazzld/servicehub-api/internal/api"
	apiMiddleware "github.com/phrazzld/servicehub-api/internal/api/middleware"
)

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   app.config.Server.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	authHandler := api.NewAuthHandler(app.jwtService, app.config.Auth)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService, app.config.Auth.CookieName)
	serviceHandler := api.NewServiceHandler(app.db.services)
	reviewHandler := api.NewReviewHandler(app.db.reviews)
	userHandler := api.NewUserHandler(app.db.users)
	statsHandler := api.NewStatsHandler(app.statsService)

	r.Get("/", api.Greeting)
	r.Get("/health", api.Health(app.db.pinger))

	r.Post("/jwt", api.Handle(authHandler.IssueToken))
	r.Post("/logout", api.Handle(authHandler.Logout))

	r.Post("/addService", api.Handle(serviceHandler.Add))
	r.Delete("/deleteService/{id}", api.Handle(serviceHandler.Delete))
	r.Put("/updateService/{id}", api.Handle(serviceHandler.Update))
	r.Get("/services", api.Handle(serviceHandler.List))
	r.Get("/service/{id}", api.Handle(serviceHandler.Get))
	r.Get("/services/{email}", api.Handle(serviceHandler.ListByCreator))

	r.Post("/addReview", api.Handle(reviewHandler.Add))
	r.Get("/reviews/{id}", api.Handle(reviewHandler.ListByServiceID))
	r.Get("/allReviews", api.Handle(reviewHandler.ListAll))
	r.Put("/updateReview/{id}", api.Handle(reviewHandler.Update))

	// Owner-only review routes.
	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.With(apiMiddleware.RequireMatchingEmail("email")).
			Get("/myReviews/{email}", api.Handle(reviewHandler.MyReviews))
		r.With(apiMiddleware.RequireMatchingEmail("email")).
			Delete("/deleteReview/{email}/{id}", api.Handle(reviewHandler.Delete))
	})

	r.Get("/countData", api.Handle(statsHandler.CountData))
	r.Post("/addUser", api.Handle(userHandler.Add))

	return r
}
