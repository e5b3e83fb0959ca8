package store

import (
	"context"
	"fmt"
)

func (s *Store) ListCommunityPosts(ctx context.Context) ([]CommunityPost, error) {
	posts := []CommunityPost{}
	err := s.db.SelectContext(ctx, &posts, `
        SELECT id, author, handle, avatar, text, likes, replies, reposts, created_at
        FROM community_posts
        ORDER BY (likes + replies + reposts) DESC, created_at DESC
    `)
	if err != nil {
		return nil, fmt.Errorf("failed to query community posts: %w", err)
	}
	return posts, nil
}

// CountProfiles is used as the community member count.
func (s *Store) CountProfiles(ctx context.Context) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, "SELECT COUNT(*) FROM user_profiles"); err != nil {
		return 0, fmt.Errorf("failed to count profiles: %w", err)
	}
	return count, nil
}
