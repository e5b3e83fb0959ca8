package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/belac-fun/belac-backend/internal/metrics"
)

type RouterOptions struct {
	AllowedOrigins []string
	// RateLimiter guards mutating routes; nil disables limiting.
	RateLimiter *RateLimiter
}

func NewRouter(apiHandler *APIHandler, opts RouterOptions) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(apiHandler.logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(metrics.InstrumentHandler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Request-Id"},
		MaxAge:         300,
	}))

	r.Handle("/metrics", metrics.Handler())

	mutating := func(r chi.Router) chi.Router {
		if opts.RateLimiter == nil {
			return r
		}
		return r.With(opts.RateLimiter.Handler)
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", apiHandler.HealthHandler)
		r.Get("/belac", apiHandler.BelacInfoHandler)
		r.Post("/echo", apiHandler.EchoHandler)

		r.Get("/community-posts", apiHandler.CommunityPostsHandler())
		r.Get("/suggestions", apiHandler.ListSuggestionsHandler())
		mutating(r).Post("/suggestions", apiHandler.CreateSuggestionHandler())

		// Calorie tracker
		r.Get("/entries", apiHandler.ListEntriesHandler())
		mutating(r).Post("/entries", apiHandler.CreateEntryHandler())
		mutating(r).Delete("/entries/{entryID}", apiHandler.DeleteEntryHandler())

		// Registry and marketplace
		r.Get("/apps", apiHandler.ListAppsHandler())
		mutating(r).Post("/prompts/analyze", apiHandler.AnalyzePromptHandler())
		r.Get("/marketplace/trending", apiHandler.TrendingHandler())

		// Profiles and installed apps
		r.Get("/profile/{walletAddress}", apiHandler.GetProfileHandler())
		mutating(r).Post("/profile", apiHandler.SaveProfileHandler())
		r.Get("/users/{walletAddress}/installed-apps", apiHandler.InstalledAppsHandler())
		mutating(r).Post("/users/{walletAddress}/installed-apps/{appID}", apiHandler.InstallAppHandler())
		mutating(r).Delete("/users/{walletAddress}/installed-apps/{appID}", apiHandler.UninstallAppHandler())

		// Conversations
		r.Get("/conversations", apiHandler.ListConversationsHandler())
		mutating(r).Post("/conversations", apiHandler.CreateConversationHandler())
		r.Get("/conversations/user/{walletAddress}", apiHandler.WalletConversationsHandler())
		r.Get("/conversations/{conversationID}", apiHandler.ConversationDetailsHandler())
		mutating(r).Post("/conversations/{conversationID}/messages", apiHandler.PostMessageHandler())
	})

	return r
}
