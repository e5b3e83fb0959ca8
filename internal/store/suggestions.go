package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

const SuggestionStatusNew = "new"

func (s *Store) CreateSuggestion(ctx context.Context, text string) (*Suggestion, error) {
	suggestion := Suggestion{
		ID:        uuid.NewString(),
		Text:      text,
		Status:    SuggestionStatusNew,
		CreatedAt: s.now(),
	}
	_, err := s.db.ExecContext(ctx,
		s.rebind("INSERT INTO suggestions (id, text, status, votes, created_at) VALUES (?, ?, ?, 0, ?)"),
		suggestion.ID, suggestion.Text, suggestion.Status, suggestion.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert suggestion: %w", err)
	}
	return &suggestion, nil
}

func (s *Store) ListSuggestions(ctx context.Context) ([]Suggestion, error) {
	suggestions := []Suggestion{}
	err := s.db.SelectContext(ctx, &suggestions, "SELECT id, text, status, votes, created_at FROM suggestions ORDER BY created_at DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to query suggestions: %w", err)
	}
	return suggestions, nil
}
