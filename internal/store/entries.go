package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// DateLayout is the format of CalorieEntry.Date.
const DateLayout = "2006-01-02"

func (s *Store) CreateEntry(ctx context.Context, food string, calories, protein float64) (*CalorieEntry, error) {
	now := s.now()
	entry := CalorieEntry{
		ID:        uuid.NewString(),
		Food:      food,
		Calories:  calories,
		Protein:   protein,
		Date:      now.Format(DateLayout),
		CreatedAt: now,
	}
	_, err := s.db.ExecContext(ctx,
		s.rebind("INSERT INTO calorie_entries (id, food, calories, protein, entry_date, created_at) VALUES (?, ?, ?, ?, ?, ?)"),
		entry.ID, entry.Food, entry.Calories, entry.Protein, entry.Date, entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to insert entry: %w", err)
	}
	return &entry, nil
}

// ListEntriesByDate returns the entries logged on date (YYYY-MM-DD), oldest first.
func (s *Store) ListEntriesByDate(ctx context.Context, date string) ([]CalorieEntry, error) {
	entries := []CalorieEntry{}
	query := s.rebind("SELECT id, food, calories, protein, entry_date, created_at FROM calorie_entries WHERE entry_date = ? ORDER BY created_at ASC")
	if err := s.db.SelectContext(ctx, &entries, query, date); err != nil {
		return nil, fmt.Errorf("failed to query entries: %w", err)
	}
	return entries, nil
}

func (s *Store) DeleteEntry(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, s.rebind("DELETE FROM calorie_entries WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	affected, _ := res.RowsAffected()
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// Today returns the current date in DateLayout.
func (s *Store) Today() string {
	return s.now().Format(DateLayout)
}
