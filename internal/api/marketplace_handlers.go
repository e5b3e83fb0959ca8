package api

import (
	"net/http"

	"github.com/belac-fun/belac-backend/internal/core"
	"github.com/belac-fun/belac-backend/internal/store"
)

var (
	listAppsEndpoint = endpoint{
		name:           "list_apps",
		degradeOnError: true,
		fallback:       func() any { return listBody("apps", []store.App{}, 0) },
	}
	analyzePromptEndpoint = endpoint{
		name:         "analyze_prompt",
		errorMessage: "Failed to analyze prompt",
	}
	trendingEndpoint = endpoint{
		name:           "marketplace_trending",
		degradeOnError: true,
		fallback:       func() any { return core.EmptyTrending() },
	}
)

func (h *APIHandler) ListAppsHandler() http.HandlerFunc {
	return h.handle(listAppsEndpoint, func(r *http.Request) (int, any, error) {
		apps, err := h.marketplace.ListApps(r.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, listBody("apps", apps, len(apps)), nil
	})
}

func (h *APIHandler) AnalyzePromptHandler() http.HandlerFunc {
	return h.handle(analyzePromptEndpoint, func(r *http.Request) (int, any, error) {
		var req AnalyzePromptRequest
		if err := h.decodeRequest(r, &req); err != nil {
			return 0, nil, err
		}
		analysis, err := h.intent.Analyze(r.Context(), req.PromptText, req.WalletAddress)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, analysis, nil
	})
}

func (h *APIHandler) TrendingHandler() http.HandlerFunc {
	return h.handle(trendingEndpoint, func(r *http.Request) (int, any, error) {
		trending, err := h.marketplace.Trending(r.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, trending, nil
	})
}
