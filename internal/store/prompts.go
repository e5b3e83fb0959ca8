package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// LogPrompt records a prompt submitted by a wallet in the activity log.
func (s *Store) LogPrompt(ctx context.Context, walletAddress, promptText string) (*UserPrompt, error) {
	prompt := UserPrompt{
		ID:            uuid.NewString(),
		WalletAddress: walletAddress,
		PromptText:    promptText,
		CreatedAt:     s.now(),
	}
	_, err := s.db.ExecContext(ctx,
		s.rebind("INSERT INTO user_prompts (id, wallet_address, prompt_text, created_at) VALUES (?, ?, ?, ?)"),
		prompt.ID, prompt.WalletAddress, prompt.PromptText, prompt.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert user prompt: %w", err)
	}
	return &prompt, nil
}

// TrendingPrompts returns the most frequently submitted prompt texts.
func (s *Store) TrendingPrompts(ctx context.Context, limit int) ([]PromptCount, error) {
	prompts := []PromptCount{}
	query := s.rebind(`
        SELECT prompt_text, COUNT(*) AS prompt_count
        FROM user_prompts
        GROUP BY prompt_text
        ORDER BY prompt_count DESC, MAX(created_at) DESC
        LIMIT ?
    `)
	if err := s.db.SelectContext(ctx, &prompts, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query trending prompts: %w", err)
	}
	return prompts, nil
}
