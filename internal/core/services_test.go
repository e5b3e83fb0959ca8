package core

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/belac-fun/belac-backend/internal/store"
)

type fakeIntentStore struct {
	apps      []store.App
	appsErr   error
	logErr    error
	loggedFor []string
}

func (f *fakeIntentStore) ListMatchableApps(ctx context.Context) ([]store.App, error) {
	return f.apps, f.appsErr
}

func (f *fakeIntentStore) LogPrompt(ctx context.Context, walletAddress, promptText string) (*store.UserPrompt, error) {
	f.loggedFor = append(f.loggedFor, walletAddress)
	if f.logErr != nil {
		return nil, f.logErr
	}
	return &store.UserPrompt{WalletAddress: walletAddress, PromptText: promptText}, nil
}

func newSQLiteStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(store.DriverSQLite, filepath.Join(t.TempDir(), "core_test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestAnalyzeScenario(t *testing.T) {
	db := &fakeIntentStore{apps: []store.App{app("CalorieCounter", "calories", "diet")}}
	svc := NewIntentService(db, zap.NewNop())

	analysis, err := svc.Analyze(context.Background(), "I want to track my calories", "")
	require.NoError(t, err)
	assert.Equal(t, "health_fitness", analysis.Intent)
	assert.Equal(t, 0.5, analysis.Confidence)
	assert.False(t, analysis.NeedsCustom)
	assert.True(t, analysis.CanRequest)
	require.Len(t, analysis.SuggestedApps, 1)
	assert.Equal(t, "CalorieCounter", analysis.SuggestedApps[0].Name)
	assert.Equal(t, "0.50", analysis.SuggestedApps[0].MatchScore)
	assert.Empty(t, db.loggedFor, "no wallet, nothing logged")
}

func TestAnalyzeNoMatchNeedsCustom(t *testing.T) {
	svc := NewIntentService(&fakeIntentStore{apps: []store.App{app("CalorieCounter", "calories")}}, zap.NewNop())

	analysis, err := svc.Analyze(context.Background(), "build me a rocket", "")
	require.NoError(t, err)
	assert.Equal(t, IntentGeneral, analysis.Intent)
	assert.Zero(t, analysis.Confidence)
	assert.True(t, analysis.NeedsCustom)
	assert.True(t, analysis.CanRequest)
	assert.NotNil(t, analysis.SuggestedApps)
	assert.Empty(t, analysis.SuggestedApps)
}

func TestAnalyzeSwallowsPromptLogFailure(t *testing.T) {
	db := &fakeIntentStore{
		apps:   []store.App{app("CalorieCounter", "calories")},
		logErr: errors.New("database is locked"),
	}
	svc := NewIntentService(db, zap.NewNop())

	analysis, err := svc.Analyze(context.Background(), "calories please", "wallet-a")
	require.NoError(t, err)
	assert.Equal(t, []string{"wallet-a"}, db.loggedFor)
	require.Len(t, analysis.SuggestedApps, 1)
	assert.Equal(t, "1.00", analysis.SuggestedApps[0].MatchScore)
}

func TestAnalyzeFailsWhenRegistryUnavailable(t *testing.T) {
	svc := NewIntentService(&fakeIntentStore{appsErr: errors.New("no such table: apps")}, zap.NewNop())

	_, err := svc.Analyze(context.Background(), "calories", "")
	require.Error(t, err)
}

func TestAnalyzeNeverSuggestsComingSoonApps(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := context.Background()
	_, err := db.SeedApps(ctx, []store.App{
		{Name: "CalorieCounter", Keywords: store.Keywords{"calories", "diet"}, Status: store.AppStatusLive},
		{Name: "DietPlanner", Keywords: store.Keywords{"calories"}, Status: store.AppStatusComingSoon},
		{Name: "MacroBeta", Keywords: store.Keywords{"calories", "macros", "protein", "meal"}, Status: store.AppStatusBeta},
	})
	require.NoError(t, err)

	svc := NewIntentService(db, zap.NewNop())
	analysis, err := svc.Analyze(ctx, "I want to track my calories", "wallet-a")
	require.NoError(t, err)

	names := make([]string, 0, len(analysis.SuggestedApps))
	for _, a := range analysis.SuggestedApps {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"CalorieCounter", "MacroBeta"}, names)
	assert.Equal(t, "0.25", analysis.SuggestedApps[1].MatchScore)

	prompts, err := db.TrendingPrompts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, prompts, 1)
	assert.Equal(t, "I want to track my calories", prompts[0].PromptText)
}

func TestMarketplaceTrending(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := context.Background()
	_, err := db.SeedApps(ctx, store.DefaultApps)
	require.NoError(t, err)

	apps, err := db.ListApps(ctx)
	require.NoError(t, err)
	var notesID string
	for _, a := range apps {
		if a.Name == "Notes" {
			notesID = a.ID
		}
	}
	_, err = db.InstallApp(ctx, "wallet-a", notesID)
	require.NoError(t, err)

	trending, err := NewMarketplaceService(db).Trending(ctx)
	require.NoError(t, err)
	assert.True(t, trending.MarketplaceReady)
	assert.Equal(t, len(store.DefaultApps), trending.TotalApps)
	require.Len(t, trending.TrendingApps, NumTrendingApps)
	assert.Equal(t, "Notes", trending.TrendingApps[0].Name)
	assert.Empty(t, trending.TrendingPrompts)
}

func TestCommunityFeedStats(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := context.Background()
	_, err := db.UpsertProfile(ctx, store.ProfileUpdate{WalletAddress: "wallet-a"})
	require.NoError(t, err)

	feed, err := NewCommunityService(db).Feed(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, feed.Stats.TotalPosts)
	assert.Equal(t, 1250+340+890+450+120+320+890+230+560, feed.Stats.TotalEngagement)
	assert.Equal(t, 1, feed.Stats.CommunityMembers)
	assert.Equal(t, "Built Belac. An AI that actually builds apps. No bullshit.", feed.Stats.TopPost)
}

func TestTrackerDailyLogTotals(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := context.Background()
	svc := NewTrackerService(db)

	_, err := svc.AddEntry(ctx, "Egg", 70, 6)
	require.NoError(t, err)
	_, err = svc.AddEntry(ctx, "Oats", 150.5, 5.25)
	require.NoError(t, err)

	log, err := svc.DailyLog(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, db.Today(), log.Date)
	assert.Equal(t, 2, log.Count)
	assert.InDelta(t, 220.5, log.TotalCalories, 1e-9)
	assert.InDelta(t, 11.25, log.TotalProtein, 1e-9)

	log, err = svc.DailyLog(ctx, "2000-01-01")
	require.NoError(t, err)
	assert.Zero(t, log.Count)
	assert.NotNil(t, log.Entries)
}

func TestSaveProfileMergesAndClears(t *testing.T) {
	db := newSQLiteStore(t)
	ctx := context.Background()
	svc := NewProfileService(db, zap.NewNop())

	bio, avatar := "builds apps", "https://example.com/a.png"
	_, err := svc.SaveProfile(ctx, "wallet-a", nil, &bio, &avatar)
	require.NoError(t, err)

	// Missing fields keep their stored value.
	name := "  Belac "
	profile, err := svc.SaveProfile(ctx, "wallet-a", &name, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, "Belac", *profile.DisplayName)
	assert.Equal(t, "builds apps", *profile.Bio)
	assert.Equal(t, avatar, *profile.AvatarURL)

	// An empty or blank value clears the field.
	empty, blank := "", "   "
	profile, err = svc.SaveProfile(ctx, "wallet-a", nil, &empty, &blank)
	require.NoError(t, err)
	assert.Equal(t, "Belac", *profile.DisplayName)
	require.NotNil(t, profile.Bio)
	assert.Empty(t, *profile.Bio)
	require.NotNil(t, profile.AvatarURL)
	assert.Empty(t, *profile.AvatarURL)
}

type recordingConversationStore struct {
	ConversationStore
	limit int
}

func (r *recordingConversationStore) ListConversations(ctx context.Context, limit int) ([]store.Conversation, error) {
	r.limit = limit
	return []store.Conversation{}, nil
}

func TestGetConversationsClampsLimit(t *testing.T) {
	db := &recordingConversationStore{}
	svc := NewConversationService(db, zap.NewNop())

	tests := []struct{ in, want int }{
		{0, DefaultConversationLimit},
		{-3, DefaultConversationLimit},
		{10, 10},
		{1000, MaxConversationLimit},
	}
	for _, tt := range tests {
		_, err := svc.GetConversations(context.Background(), tt.in)
		require.NoError(t, err)
		assert.Equal(t, tt.want, db.limit)
	}
}

func TestConversationDetailsNotFound(t *testing.T) {
	svc := NewConversationService(newSQLiteStore(t), zap.NewNop())

	_, _, err := svc.GetConversationDetails(context.Background(), "missing")
	assert.ErrorIs(t, err, store.ErrNotFound)
}
