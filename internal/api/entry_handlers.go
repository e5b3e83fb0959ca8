package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/belac-fun/belac-backend/internal/store"
)

var (
	listEntriesEndpoint = endpoint{
		name:         "list_entries",
		errorMessage: "Failed to load entries",
	}
	createEntryEndpoint = endpoint{
		name:         "create_entry",
		errorMessage: "Failed to save entry",
	}
	deleteEntryEndpoint = endpoint{
		name:            "delete_entry",
		errorMessage:    "Failed to delete entry",
		notFoundMessage: "Entry not found",
	}
)

func (h *APIHandler) ListEntriesHandler() http.HandlerFunc {
	return h.handle(listEntriesEndpoint, func(r *http.Request) (int, any, error) {
		date := r.URL.Query().Get("date")
		if date != "" {
			if _, err := time.Parse(store.DateLayout, date); err != nil {
				return 0, nil, badRequest("date must be formatted as YYYY-MM-DD")
			}
		}
		log, err := h.tracker.DailyLog(r.Context(), date)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, log, nil
	})
}

func (h *APIHandler) CreateEntryHandler() http.HandlerFunc {
	return h.handle(createEntryEndpoint, func(r *http.Request) (int, any, error) {
		var req CreateEntryRequest
		if err := h.decodeRequest(r, &req); err != nil {
			return 0, nil, err
		}
		entry, err := h.tracker.AddEntry(r.Context(), req.Food, *req.Calories, *req.Protein)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, successBody("entry", entry), nil
	})
}

func (h *APIHandler) DeleteEntryHandler() http.HandlerFunc {
	return h.handle(deleteEntryEndpoint, func(r *http.Request) (int, any, error) {
		if err := h.tracker.DeleteEntry(r.Context(), chi.URLParam(r, "entryID")); err != nil {
			return 0, nil, err
		}
		return http.StatusOK, map[string]bool{"success": true}, nil
	})
}
