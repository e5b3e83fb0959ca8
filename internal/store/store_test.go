package store

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(DriverSQLite, filepath.Join(t.TempDir(), "belac_test.db"), zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever", zap.NewNop())
	require.Error(t, err)
}

func TestOpenIsRepeatable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "belac_test.db")
	s, err := Open(DriverSQLite, path, zap.NewNop())
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(DriverSQLite, path, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	posts, err := s.ListCommunityPosts(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}

func TestSeedAppsIsIdempotent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	inserted, err := s.SeedApps(ctx, DefaultApps)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultApps), inserted)

	inserted, err = s.SeedApps(ctx, DefaultApps)
	require.NoError(t, err)
	assert.Zero(t, inserted)

	count, err := s.CountApps(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultApps), count)
}

func TestConcurrentSeedingDoesNotDuplicate(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.SeedApps(ctx, DefaultApps)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	count, err := s.CountApps(ctx)
	require.NoError(t, err)
	assert.Equal(t, len(DefaultApps), count)
}

func TestListMatchableAppsExcludesComingSoon(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.SeedApps(ctx, DefaultApps)
	require.NoError(t, err)

	apps, err := s.ListMatchableApps(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, apps)
	for _, app := range apps {
		assert.NotEqual(t, AppStatusComingSoon, app.Status, app.Name)
	}

	calories := findApp(t, apps, "CalorieCounter")
	assert.Equal(t, Keywords{"calories", "calorie", "diet", "nutrition", "food", "protein", "meal"}, calories.Keywords)
	require.NotNil(t, calories.EndpointURL)
	assert.Equal(t, "/api/entries", *calories.EndpointURL)
}

func TestEntryRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	entry, err := s.CreateEntry(ctx, "Egg", 70, 6)
	require.NoError(t, err)
	assert.Equal(t, s.Today(), entry.Date)

	entries, err := s.ListEntriesByDate(ctx, s.Today())
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Egg", entries[0].Food)
	assert.Equal(t, 70.0, entries[0].Calories)
	assert.Equal(t, 6.0, entries[0].Protein)

	other, err := s.ListEntriesByDate(ctx, "1999-01-01")
	require.NoError(t, err)
	assert.Empty(t, other)

	require.NoError(t, s.DeleteEntry(ctx, entry.ID))
	entries, err = s.ListEntriesByDate(ctx, s.Today())
	require.NoError(t, err)
	assert.Empty(t, entries)

	assert.ErrorIs(t, s.DeleteEntry(ctx, entry.ID), ErrNotFound)
}

func TestSuggestions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	created, err := s.CreateSuggestion(ctx, "Add a dark mode")
	require.NoError(t, err)
	assert.Equal(t, SuggestionStatusNew, created.Status)
	assert.Zero(t, created.Votes)

	_, err = s.CreateSuggestion(ctx, "Add a dark mode")
	require.NoError(t, err)

	suggestions, err := s.ListSuggestions(ctx)
	require.NoError(t, err)
	assert.Len(t, suggestions, 2)
}

func TestUpsertProfileMergesFields(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	wallet := "7xKXtg2CW87d97TXJSDpbD5jBkheTqA83TZRuJosgAsU"

	first, err := s.UpsertProfile(ctx, ProfileUpdate{
		WalletAddress: wallet,
		DisplayName:   strPtr("belac"),
		Bio:           strPtr("builds apps"),
	})
	require.NoError(t, err)
	assert.Equal(t, "builds apps", *first.Bio)
	assert.Nil(t, first.AvatarURL)
	assert.False(t, first.Verified)
	assert.Empty(t, first.InstalledAppIDs)

	second, err := s.UpsertProfile(ctx, ProfileUpdate{
		WalletAddress: wallet,
		DisplayName:   strPtr("Belac"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Belac", *second.DisplayName)
	require.NotNil(t, second.Bio)
	assert.Equal(t, "builds apps", *second.Bio)
	assert.False(t, second.UpdatedAt.Before(first.UpdatedAt))
	assert.True(t, second.CreatedAt.Equal(first.CreatedAt))

	got, err := s.GetProfile(ctx, wallet)
	require.NoError(t, err)
	assert.Equal(t, "Belac", *got.DisplayName)

	_, err = s.GetProfile(ctx, "unknown-wallet")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestInstallAndUninstallApp(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.SeedApps(ctx, DefaultApps)
	require.NoError(t, err)

	apps, err := s.ListApps(ctx)
	require.NoError(t, err)
	app := findApp(t, apps, "CalorieCounter")
	wallet := "wallet-1"

	ids, err := s.InstallApp(ctx, wallet, app.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{app.ID}, ids)

	ids, err = s.InstallApp(ctx, wallet, app.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{app.ID}, ids, "second install must not duplicate")

	got, err := s.GetApp(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.UserCount)

	profile, err := s.GetProfile(ctx, wallet)
	require.NoError(t, err)
	assert.Equal(t, []string{app.ID}, profile.InstalledAppIDs)

	installed, err := s.ListInstalledApps(ctx, wallet)
	require.NoError(t, err)
	require.Len(t, installed, 1)
	assert.Equal(t, "CalorieCounter", installed[0].Name)

	ids, err = s.UninstallApp(ctx, wallet, "not-installed")
	require.NoError(t, err)
	assert.Equal(t, []string{app.ID}, ids)

	ids, err = s.UninstallApp(ctx, wallet, app.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = s.UninstallApp(ctx, wallet, app.ID)
	require.NoError(t, err)
	assert.Empty(t, ids)

	got, err = s.GetApp(ctx, app.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, got.UserCount)

	_, err = s.InstallApp(ctx, wallet, "missing-app")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestConversationsAndMessages(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, err := s.UpsertProfile(ctx, ProfileUpdate{WalletAddress: "wallet-a", DisplayName: strPtr("Alice")})
	require.NoError(t, err)

	conv, err := s.CreateConversation(ctx, "wallet-a", "Ideas", strPtr("Chat with builder"))
	require.NoError(t, err)
	assert.Zero(t, conv.MessageCount)
	assert.Nil(t, conv.LastReplyAt)

	_, err = s.CreateMessage(ctx, conv.ID, "wallet-a", "first")
	require.NoError(t, err)
	_, err = s.CreateMessage(ctx, conv.ID, "wallet-b", "second")
	require.NoError(t, err)

	got, err := s.GetConversation(ctx, conv.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.MessageCount)
	require.NotNil(t, got.LastReplyAt)

	messages, err := s.GetMessages(ctx, conv.ID, 100, 0)
	require.NoError(t, err)
	require.Len(t, messages, 2)
	assert.Equal(t, "first", messages[0].Message)
	require.NotNil(t, messages[0].DisplayName)
	assert.Equal(t, "Alice", *messages[0].DisplayName)
	assert.Nil(t, messages[1].DisplayName)

	_, err = s.CreateMessage(ctx, "missing", "wallet-a", "hello")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetConversation(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	all, err := s.ListConversations(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, all, 1)

	mine, err := s.ListConversationsByWallet(ctx, "wallet-a")
	require.NoError(t, err)
	assert.Len(t, mine, 1)
	theirs, err := s.ListConversationsByWallet(ctx, "wallet-b")
	require.NoError(t, err)
	assert.Empty(t, theirs)
}

func TestTrendingPrompts(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, text := range []string{"track calories", "track calories", "solana wallet"} {
		_, err := s.LogPrompt(ctx, "wallet-a", text)
		require.NoError(t, err)
	}

	prompts, err := s.TrendingPrompts(ctx, 5)
	require.NoError(t, err)
	require.Len(t, prompts, 2)
	assert.Equal(t, PromptCount{PromptText: "track calories", Count: 2}, prompts[0])
}

func TestQueryErrorsAreWrapped(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewWithDB(sqlx.NewDb(db, "sqlmock"), zap.NewNop())
	mock.ExpectQuery("SELECT (.+) FROM suggestions").WillReturnError(errors.New("connection reset"))

	_, err = s.ListSuggestions(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to query suggestions")
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInstallRollsBackOnFailure(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	s := NewWithDB(sqlx.NewDb(db, "sqlmock"), zap.NewNop())
	mock.ExpectBegin()
	mock.ExpectQuery("SELECT 1 FROM apps").WithArgs("app-1").WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))
	mock.ExpectExec("INSERT INTO user_profiles").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO user_installed_apps").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err = s.InstallApp(context.Background(), "wallet-a", "app-1")
	require.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func findApp(t *testing.T, apps []App, name string) App {
	t.Helper()
	for _, app := range apps {
		if app.Name == name {
			return app
		}
	}
	t.Fatalf("app %s not found", name)
	return App{}
}
