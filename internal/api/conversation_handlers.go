package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/belac-fun/belac-backend/internal/store"
)

var (
	listConversationsEndpoint = endpoint{
		name:           "list_conversations",
		degradeOnError: true,
		fallback:       emptyConversations,
	}
	walletConversationsEndpoint = endpoint{
		name:           "wallet_conversations",
		degradeOnError: true,
		fallback:       emptyConversations,
	}
	createConversationEndpoint = endpoint{
		name:         "create_conversation",
		errorMessage: "Failed to create conversation",
	}
	conversationDetailsEndpoint = endpoint{
		name:            "conversation_details",
		errorMessage:    "Failed to load conversation",
		notFoundMessage: "Conversation not found",
	}
	postMessageEndpoint = endpoint{
		name:            "post_message",
		errorMessage:    "Failed to post message",
		notFoundMessage: "Conversation not found",
	}
)

func emptyConversations() any {
	return listBody("conversations", []store.Conversation{}, 0)
}

type ConversationDetailsResponse struct {
	Conversation *store.Conversation `json:"conversation"`
	Messages     []store.Message     `json:"messages"`
}

func (h *APIHandler) ListConversationsHandler() http.HandlerFunc {
	return h.handle(listConversationsEndpoint, func(r *http.Request) (int, any, error) {
		limit := 0
		if raw := r.URL.Query().Get("limit"); raw != "" {
			n, err := strconv.Atoi(raw)
			if err != nil {
				return 0, nil, badRequest("limit must be an integer")
			}
			limit = n
		}
		conversations, err := h.conversations.GetConversations(r.Context(), limit)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, listBody("conversations", conversations, len(conversations)), nil
	})
}

func (h *APIHandler) WalletConversationsHandler() http.HandlerFunc {
	return h.handle(walletConversationsEndpoint, func(r *http.Request) (int, any, error) {
		conversations, err := h.conversations.GetConversationsByWallet(r.Context(), chi.URLParam(r, "walletAddress"))
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, listBody("conversations", conversations, len(conversations)), nil
	})
}

func (h *APIHandler) CreateConversationHandler() http.HandlerFunc {
	return h.handle(createConversationEndpoint, func(r *http.Request) (int, any, error) {
		var req CreateConversationRequest
		if err := h.decodeRequest(r, &req); err != nil {
			return 0, nil, err
		}
		conversation, err := h.conversations.CreateConversation(r.Context(), req.WalletAddress, req.Title, req.Description)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, successBody("conversation", conversation), nil
	})
}

func (h *APIHandler) ConversationDetailsHandler() http.HandlerFunc {
	return h.handle(conversationDetailsEndpoint, func(r *http.Request) (int, any, error) {
		conversation, messages, err := h.conversations.GetConversationDetails(r.Context(), chi.URLParam(r, "conversationID"))
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, ConversationDetailsResponse{Conversation: conversation, Messages: messages}, nil
	})
}

func (h *APIHandler) PostMessageHandler() http.HandlerFunc {
	return h.handle(postMessageEndpoint, func(r *http.Request) (int, any, error) {
		var req PostMessageRequest
		if err := h.decodeRequest(r, &req); err != nil {
			return 0, nil, err
		}
		msg, err := h.conversations.PostMessage(r.Context(), chi.URLParam(r, "conversationID"), req.WalletAddress, req.Message)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusCreated, successBody("message", msg), nil
	})
}
