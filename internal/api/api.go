// Package api sets up and starts the API
// server with routing, middleware, and Swagger documentation.
package api

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"golang.org/x/time/rate"

	_ "github.com/platefeed/platefeed/docs"
	"github.com/platefeed/platefeed/internal/api/middleware"
	"github.com/platefeed/platefeed/internal/api/routes/auth"
	"github.com/platefeed/platefeed/internal/api/routes/ingredients"
	"github.com/platefeed/platefeed/internal/api/routes/ping"
	"github.com/platefeed/platefeed/internal/api/routes/recipes"
	"github.com/platefeed/platefeed/internal/api/routes/tags"
	"github.com/platefeed/platefeed/internal/api/routes/users"
	"github.com/platefeed/platefeed/internal/env"
	"github.com/platefeed/platefeed/internal/filestore"
	"github.com/platefeed/platefeed/internal/metrics"
	"github.com/platefeed/platefeed/internal/role"
)

// Login attempts per client and minute.
const (
	loginRateLimit = rate.Limit(10.0 / 60.0)
	loginBurst     = 10
)

func addDocs(r *chi.Mux, serverAddr string) {
	swagger := httpSwagger.Handler(
		httpSwagger.URL(fmt.Sprintf("http://%s/api/swagger/doc.json", serverAddr)),
		httpSwagger.DeepLinking(true),
		httpSwagger.DocExpansion("none"),
		httpSwagger.DomID("swagger-ui"),
	)

	r.Mount("/api/swagger", http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		// Handle preflight
		if req.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		// Allow GET to serve Swagger
		if req.Method == http.MethodGet {
			swagger.ServeHTTP(w, req)
			return
		}

		// Block anything else
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	}))
}

func addRoutes(router *chi.Mux, environment *env.Env) {
	loginLimiter := middleware.NewRateLimiter(loginRateLimit, loginBurst)

	router.Route("/api", func(r chi.Router) {
		r.Get("/ping", ping.HandlePing)

		r.Route("/auth/token", func(r chi.Router) {
			r.With(loginLimiter.Limit).Post("/login", auth.HandleLogin)
			r.With(middleware.RequireAuth(role.RoleUser)).Post("/logout", auth.HandleLogout)
		})

		r.Route("/users", func(r chi.Router) {
			r.Post("/", users.HandleCreateUser)
			r.Get("/", users.HandleListUsers)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(role.RoleUser))

				r.Get("/me", users.HandleGetMe)
				r.Patch("/me", users.HandleUpdateMe)
				r.Get("/subscriptions", users.HandleListSubscriptions)
				r.Post("/{id}/subscribe", users.HandleSubscribe)
				r.Delete("/{id}/subscribe", users.HandleUnsubscribe)
			})

			r.Get("/{id}", users.HandleGetUser)
		})

		r.Route("/tags", func(r chi.Router) {
			r.Get("/", tags.HandleListTags)
			r.Get("/{id}", tags.HandleGetTag)
		})

		r.Route("/ingredients", func(r chi.Router) {
			r.Get("/", ingredients.HandleListIngredients)
			r.Get("/{id}", ingredients.HandleGetIngredient)
		})

		r.Route("/recipes", func(r chi.Router) {
			r.Get("/", recipes.HandleListRecipes)

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireAuth(role.RoleUser))

				r.Post("/", recipes.HandleCreateRecipe)
				r.Get("/download_shopping_cart", recipes.HandleDownloadShoppingCart)
				r.Patch("/{id}", recipes.HandleUpdateRecipe)
				r.Delete("/{id}", recipes.HandleDeleteRecipe)
				r.Post("/{id}/image", recipes.HandleUploadRecipeImage)
				r.Post("/{id}/favorite", recipes.HandleFavorite)
				r.Delete("/{id}/favorite", recipes.HandleUnfavorite)
				r.Post("/{id}/shopping_cart", recipes.HandleAddToCart)
				r.Delete("/{id}/shopping_cart", recipes.HandleRemoveFromCart)
			})

			r.Get("/{id}", recipes.HandleGetRecipe)
		})
	})

	// Uploaded recipe images are served straight from disk.
	if environment.FileStore != nil {
		prefix := environment.Config.FileStore.URLPrefix
		if prefix == "" {
			prefix = filestore.DefaultURLPrefix
		}
		fileServer := http.StripPrefix(
			prefix,
			http.FileServer(http.Dir(environment.FileStore.BaseDirectory())),
		)
		router.Handle(prefix+"/*", fileServer)
	}
}

// Start godoc
//
//	@title						Platefeed API
//	@version					1.0
//	@description				API Server for the Platefeed application.
//
//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//
//	@host						localhost:8080
//	@BasePath					/api
func Start(env *env.Env) error {
	registry := prometheus.NewRegistry()
	if env.Metrics == nil {
		env.Metrics = metrics.NewCollector(registry)
	}

	router := chi.NewRouter()
	router.Use(middleware.AddRequestID)
	router.Use(middleware.LogRequest(env.Logger))
	router.Use(middleware.InjectEnv(env))
	router.Use(middleware.AddCors)
	router.Use(middleware.RecordMetrics(env.Metrics))
	router.Use(middleware.Authenticate)

	addRoutes(router, env)
	router.Method(http.MethodGet, "/metrics", metrics.Handler(registry))

	serverPort := env.Config.Server.Port
	if serverPort == 0 {
		serverPort = 8080
	}
	addDocs(router, fmt.Sprintf("0.0.0.0:%d", serverPort))

	env.Logger.Info(fmt.Sprintf("Listening at 0.0.0.0:%d", serverPort))
	env.Logger.Info(fmt.Sprintf("Swagger UI available at http://0.0.0.0:%d/api/swagger/index.html", serverPort))
	return http.ListenAndServe(fmt.Sprintf(":%d", serverPort), router)
}
