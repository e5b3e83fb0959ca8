package core

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/belac-fun/belac-backend/internal/store"
)

const (
	DefaultConversationLimit = 50
	MaxConversationLimit     = 200
	MaxMessagesPerThread     = 100 // Messages returned with a conversation
)

type ConversationStore interface {
	CreateConversation(ctx context.Context, walletAddress, title string, description *string) (*store.Conversation, error)
	GetConversation(ctx context.Context, id string) (*store.Conversation, error)
	ListConversations(ctx context.Context, limit int) ([]store.Conversation, error)
	ListConversationsByWallet(ctx context.Context, walletAddress string) ([]store.Conversation, error)
	CreateMessage(ctx context.Context, conversationID, walletAddress, text string) (*store.Message, error)
	GetMessages(ctx context.Context, conversationID string, limit, offset int) ([]store.Message, error)
}

type ConversationService struct {
	dbStore ConversationStore
	logger  *zap.Logger
}

func NewConversationService(db ConversationStore, logger *zap.Logger) *ConversationService {
	return &ConversationService{dbStore: db, logger: logger.Named("conversations")}
}

func (s *ConversationService) CreateConversation(ctx context.Context, walletAddress, title string, description *string) (*store.Conversation, error) {
	conversation, err := s.dbStore.CreateConversation(ctx, walletAddress, title, presentOrNil(description))
	if err != nil {
		return nil, err
	}
	s.logger.Info("conversation created", zap.String("conversation_id", conversation.ID), zap.String("wallet_address", walletAddress))
	return conversation, nil
}

// GetConversations clamps limit to (0, MaxConversationLimit], using the default for non-positive values.
func (s *ConversationService) GetConversations(ctx context.Context, limit int) ([]store.Conversation, error) {
	if limit <= 0 {
		limit = DefaultConversationLimit
	}
	if limit > MaxConversationLimit {
		limit = MaxConversationLimit
	}
	return s.dbStore.ListConversations(ctx, limit)
}

func (s *ConversationService) GetConversationsByWallet(ctx context.Context, walletAddress string) ([]store.Conversation, error) {
	return s.dbStore.ListConversationsByWallet(ctx, walletAddress)
}

func (s *ConversationService) GetConversationDetails(ctx context.Context, id string) (*store.Conversation, []store.Message, error) {
	conversation, err := s.dbStore.GetConversation(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	messages, err := s.dbStore.GetMessages(ctx, id, MaxMessagesPerThread, 0)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get messages for conversation: %w", err)
	}
	return conversation, messages, nil
}

// PostMessage appends a reply; store.ErrNotFound when the conversation does not exist.
func (s *ConversationService) PostMessage(ctx context.Context, conversationID, walletAddress, text string) (*store.Message, error) {
	msg, err := s.dbStore.CreateMessage(ctx, conversationID, walletAddress, text)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("message posted", zap.String("conversation_id", conversationID), zap.String("message_id", msg.ID))
	return msg, nil
}
