package api

import (
	"net/http"

	"github.com/belac-fun/belac-backend/internal/core"
	"github.com/belac-fun/belac-backend/internal/store"
)

var (
	communityPostsEndpoint = endpoint{
		name:           "community_posts",
		degradeOnError: true,
		fallback:       func() any { return core.EmptyCommunityFeed() },
	}
	listSuggestionsEndpoint = endpoint{
		name:           "list_suggestions",
		degradeOnError: true,
		fallback:       func() any { return listBody("suggestions", []store.Suggestion{}, 0) },
	}
	createSuggestionEndpoint = endpoint{
		name:         "create_suggestion",
		errorMessage: "Failed to save suggestion",
	}
)

func (h *APIHandler) CommunityPostsHandler() http.HandlerFunc {
	return h.handle(communityPostsEndpoint, func(r *http.Request) (int, any, error) {
		feed, err := h.community.Feed(r.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, feed, nil
	})
}

func (h *APIHandler) ListSuggestionsHandler() http.HandlerFunc {
	return h.handle(listSuggestionsEndpoint, func(r *http.Request) (int, any, error) {
		suggestions, err := h.community.Suggestions(r.Context())
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, listBody("suggestions", suggestions, len(suggestions)), nil
	})
}

func (h *APIHandler) CreateSuggestionHandler() http.HandlerFunc {
	return h.handle(createSuggestionEndpoint, func(r *http.Request) (int, any, error) {
		var req CreateSuggestionRequest
		if err := h.decodeRequest(r, &req); err != nil {
			return 0, nil, err
		}
		suggestion, err := h.community.SubmitSuggestion(r.Context(), req.Text)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, successBody("suggestion", suggestion), nil
	})
}
