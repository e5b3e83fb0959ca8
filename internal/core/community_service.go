package core

import (
	"context"
	"fmt"

	"github.com/belac-fun/belac-backend/internal/store"
)

type CommunityStore interface {
	ListCommunityPosts(ctx context.Context) ([]store.CommunityPost, error)
	CountProfiles(ctx context.Context) (int, error)
	CreateSuggestion(ctx context.Context, text string) (*store.Suggestion, error)
	ListSuggestions(ctx context.Context) ([]store.Suggestion, error)
}

// CommunityStats keeps the camelCase keys the dashboard reads.
type CommunityStats struct {
	TotalPosts       int    `json:"totalPosts"`
	TotalEngagement  int    `json:"totalEngagement"`
	CommunityMembers int    `json:"communityMembers"`
	TopPost          string `json:"topPost"`
}

type CommunityFeed struct {
	Posts []store.CommunityPost `json:"posts"`
	Stats CommunityStats        `json:"stats"`
}

func EmptyCommunityFeed() *CommunityFeed {
	return &CommunityFeed{Posts: []store.CommunityPost{}}
}

type CommunityService struct {
	dbStore CommunityStore
}

func NewCommunityService(db CommunityStore) *CommunityService {
	return &CommunityService{dbStore: db}
}

func (s *CommunityService) Feed(ctx context.Context) (*CommunityFeed, error) {
	posts, err := s.dbStore.ListCommunityPosts(ctx)
	if err != nil {
		return nil, err
	}
	members, err := s.dbStore.CountProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count community members: %w", err)
	}

	feed := &CommunityFeed{Posts: posts, Stats: CommunityStats{TotalPosts: len(posts), CommunityMembers: members}}
	best := -1
	for _, p := range posts {
		engagement := p.Likes + p.Replies + p.Reposts
		feed.Stats.TotalEngagement += engagement
		if engagement > best {
			best = engagement
			feed.Stats.TopPost = p.Text
		}
	}
	return feed, nil
}

func (s *CommunityService) SubmitSuggestion(ctx context.Context, text string) (*store.Suggestion, error) {
	return s.dbStore.CreateSuggestion(ctx, text)
}

func (s *CommunityService) Suggestions(ctx context.Context) ([]store.Suggestion, error) {
	return s.dbStore.ListSuggestions(ctx)
}
