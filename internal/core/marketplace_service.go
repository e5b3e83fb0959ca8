package core

import (
	"context"
	"fmt"

	"github.com/belac-fun/belac-backend/internal/store"
)

const (
	NumTrendingApps    = 5
	NumTrendingPrompts = 5
)

type MarketplaceStore interface {
	ListApps(ctx context.Context) ([]store.App, error)
	TrendingApps(ctx context.Context, limit int) ([]store.App, error)
	TrendingPrompts(ctx context.Context, limit int) ([]store.PromptCount, error)
	CountApps(ctx context.Context) (int, error)
}

type Trending struct {
	TrendingApps     []store.App         `json:"trending_apps"`
	TrendingPrompts  []store.PromptCount `json:"trending_prompts"`
	TotalApps        int                 `json:"total_apps"`
	MarketplaceReady bool                `json:"marketplace_ready"`
}

// EmptyTrending is served when the store cannot be read.
func EmptyTrending() *Trending {
	return &Trending{
		TrendingApps:    []store.App{},
		TrendingPrompts: []store.PromptCount{},
	}
}

type MarketplaceService struct {
	dbStore MarketplaceStore
}

func NewMarketplaceService(db MarketplaceStore) *MarketplaceService {
	return &MarketplaceService{dbStore: db}
}

func (s *MarketplaceService) ListApps(ctx context.Context) ([]store.App, error) {
	return s.dbStore.ListApps(ctx)
}

func (s *MarketplaceService) Trending(ctx context.Context) (*Trending, error) {
	apps, err := s.dbStore.TrendingApps(ctx, NumTrendingApps)
	if err != nil {
		return nil, fmt.Errorf("failed to load trending apps: %w", err)
	}
	prompts, err := s.dbStore.TrendingPrompts(ctx, NumTrendingPrompts)
	if err != nil {
		return nil, fmt.Errorf("failed to load trending prompts: %w", err)
	}
	total, err := s.dbStore.CountApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count apps: %w", err)
	}
	return &Trending{
		TrendingApps:     apps,
		TrendingPrompts:  prompts,
		TotalApps:        total,
		MarketplaceReady: true,
	}, nil
}
