package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

const conversationColumns = "id, wallet_address, title, description, message_count, last_reply_at, created_at"

func (s *Store) CreateConversation(ctx context.Context, walletAddress, title string, description *string) (*Conversation, error) {
	conversation := Conversation{
		ID:            uuid.NewString(),
		WalletAddress: walletAddress,
		Title:         title,
		Description:   description,
		CreatedAt:     s.now(),
	}
	_, err := s.db.ExecContext(ctx,
		s.rebind("INSERT INTO conversations (id, wallet_address, title, description, message_count, created_at) VALUES (?, ?, ?, ?, 0, ?)"),
		conversation.ID, conversation.WalletAddress, conversation.Title, conversation.Description, conversation.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert conversation: %w", err)
	}
	return &conversation, nil
}

func (s *Store) GetConversation(ctx context.Context, id string) (*Conversation, error) {
	var conversation Conversation
	err := s.db.GetContext(ctx, &conversation, s.rebind("SELECT "+conversationColumns+" FROM conversations WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	return &conversation, nil
}

// ListConversations returns the most recently active conversations first.
func (s *Store) ListConversations(ctx context.Context, limit int) ([]Conversation, error) {
	conversations := []Conversation{}
	query := s.rebind("SELECT " + conversationColumns + " FROM conversations ORDER BY COALESCE(last_reply_at, created_at) DESC LIMIT ?")
	if err := s.db.SelectContext(ctx, &conversations, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query conversations: %w", err)
	}
	return conversations, nil
}

func (s *Store) ListConversationsByWallet(ctx context.Context, walletAddress string) ([]Conversation, error) {
	conversations := []Conversation{}
	query := s.rebind("SELECT " + conversationColumns + " FROM conversations WHERE wallet_address = ? ORDER BY created_at DESC")
	if err := s.db.SelectContext(ctx, &conversations, query, walletAddress); err != nil {
		return nil, fmt.Errorf("failed to query conversations for wallet: %w", err)
	}
	return conversations, nil
}

// CreateMessage appends a message and bumps the conversation's message_count
// and last_reply_at in the same transaction.
func (s *Store) CreateMessage(ctx context.Context, conversationID, walletAddress, text string) (*Message, error) {
	msg := Message{
		ID:             uuid.NewString(),
		ConversationID: conversationID,
		WalletAddress:  walletAddress,
		Message:        text,
		CreatedAt:      s.now(),
	}

	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx,
			tx.Rebind("UPDATE conversations SET message_count = message_count + 1, last_reply_at = ? WHERE id = ?"),
			msg.CreatedAt, conversationID)
		if err != nil {
			return fmt.Errorf("failed to update conversation: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected == 0 {
			return ErrNotFound
		}

		_, err = tx.ExecContext(ctx,
			tx.Rebind("INSERT INTO conversation_messages (id, conversation_id, wallet_address, message, created_at) VALUES (?, ?, ?, ?, ?)"),
			msg.ID, msg.ConversationID, msg.WalletAddress, msg.Message, msg.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to insert message: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetMessages returns a conversation's messages oldest first, with the
// author's display name when they have a profile.
func (s *Store) GetMessages(ctx context.Context, conversationID string, limit, offset int) ([]Message, error) {
	messages := []Message{}
	query := s.rebind(`
        SELECT m.id, m.conversation_id, m.wallet_address, p.display_name, m.message, m.created_at
        FROM conversation_messages m
        LEFT JOIN user_profiles p ON p.wallet_address = m.wallet_address
        WHERE m.conversation_id = ?
        ORDER BY m.created_at ASC
        LIMIT ? OFFSET ?
    `)
	if err := s.db.SelectContext(ctx, &messages, query, conversationID, limit, offset); err != nil {
		return nil, fmt.Errorf("failed to query messages: %w", err)
	}
	return messages, nil
}
