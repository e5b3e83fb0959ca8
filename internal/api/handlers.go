package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/belac-fun/belac-backend/internal/core"
)

// Services groups the domain services the HTTP layer dispatches to.
type Services struct {
	Community     *core.CommunityService
	Tracker       *core.TrackerService
	Intent        *core.IntentService
	Marketplace   *core.MarketplaceService
	Profiles      *core.ProfileService
	Conversations *core.ConversationService
}

type APIHandler struct {
	community     *core.CommunityService
	tracker       *core.TrackerService
	intent        *core.IntentService
	marketplace   *core.MarketplaceService
	profiles      *core.ProfileService
	conversations *core.ConversationService
	validate      *validator.Validate
	logger        *zap.Logger
}

func NewAPIHandler(s Services, logger *zap.Logger) *APIHandler {
	return &APIHandler{
		community:     s.Community,
		tracker:       s.Tracker,
		intent:        s.Intent,
		marketplace:   s.Marketplace,
		profiles:      s.Profiles,
		conversations: s.Conversations,
		validate:      newValidator(),
		logger:        logger.Named("api"),
	}
}

// BelacInfo is the static assistant profile shown on the landing page.
type BelacInfo struct {
	Name     string `json:"name"`
	Creature string `json:"creature"`
	Vibe     string `json:"vibe"`
	Bio      string `json:"bio"`
	Avatar   string `json:"avatar"`
}

var belacInfo = BelacInfo{
	Name:     "Belac",
	Creature: "Digital familiar",
	Vibe:     "Sharp, direct, practical",
	Bio:      "An AI that actually helps build things.",
	Avatar:   "https://pub-263f4927a6df4831af52e0a7236d300c.r2.dev/belacai/HAI3oicbYAAif8w.png",
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "ok",
		"message":   "Belac is alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (h *APIHandler) BelacInfoHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, belacInfo)
}

func (h *APIHandler) EchoHandler(w http.ResponseWriter, r *http.Request) {
	var body any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Invalid request body: "+err.Error()))
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"echo": body})
}
