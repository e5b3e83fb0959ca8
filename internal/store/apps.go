package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const appColumns = "id, name, description, keywords, endpoint_url, creator, status, user_count, created_at"

// SeedApps inserts registry rows whose name is not present yet. The unique
// constraint on apps.name makes concurrent seeding from several processes safe.
func (s *Store) SeedApps(ctx context.Context, apps []App) (int, error) {
	query := s.rebind(`
        INSERT INTO apps (id, name, description, keywords, endpoint_url, creator, status, user_count, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, 0, ?)
        ON CONFLICT (name) DO NOTHING
    `)

	inserted := 0
	for _, app := range apps {
		id := app.ID
		if id == "" {
			id = uuid.NewString()
		}
		res, err := s.db.ExecContext(ctx, query, id, app.Name, app.Description, app.Keywords, app.EndpointURL, app.Creator, app.Status, s.now())
		if err != nil {
			return inserted, fmt.Errorf("failed to seed app %s: %w", app.Name, err)
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			inserted++
		}
	}
	s.logger.Info("app registry seeded", zap.Int("inserted", inserted), zap.Int("total", len(apps)))
	return inserted, nil
}

func (s *Store) ListApps(ctx context.Context) ([]App, error) {
	apps := []App{}
	err := s.db.SelectContext(ctx, &apps, "SELECT "+appColumns+" FROM apps ORDER BY created_at ASC, name ASC")
	if err != nil {
		return nil, fmt.Errorf("failed to query apps: %w", err)
	}
	return apps, nil
}

// ListMatchableApps returns the apps that take part in prompt matching.
func (s *Store) ListMatchableApps(ctx context.Context) ([]App, error) {
	apps := []App{}
	query := s.rebind("SELECT " + appColumns + " FROM apps WHERE status IN (?, ?) ORDER BY created_at ASC, name ASC")
	if err := s.db.SelectContext(ctx, &apps, query, AppStatusLive, AppStatusBeta); err != nil {
		return nil, fmt.Errorf("failed to query matchable apps: %w", err)
	}
	return apps, nil
}

func (s *Store) GetApp(ctx context.Context, id string) (*App, error) {
	var app App
	err := s.db.GetContext(ctx, &app, s.rebind("SELECT "+appColumns+" FROM apps WHERE id = ?"), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get app: %w", err)
	}
	return &app, nil
}

// TrendingApps returns the most installed apps, most popular first.
func (s *Store) TrendingApps(ctx context.Context, limit int) ([]App, error) {
	apps := []App{}
	query := s.rebind("SELECT " + appColumns + " FROM apps ORDER BY user_count DESC, name ASC LIMIT ?")
	if err := s.db.SelectContext(ctx, &apps, query, limit); err != nil {
		return nil, fmt.Errorf("failed to query trending apps: %w", err)
	}
	return apps, nil
}

func (s *Store) CountApps(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM apps"); err != nil {
		return 0, fmt.Errorf("failed to count apps: %w", err)
	}
	return count, nil
}
