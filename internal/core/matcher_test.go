package core

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/belac-fun/belac-backend/internal/store"
)

func app(name string, keywords ...string) store.App {
	return store.App{ID: name, Name: name, Keywords: keywords, Status: store.AppStatusLive}
}

func TestMatchAppsScoresKeywordFraction(t *testing.T) {
	candidates := []store.App{app("CalorieCounter", "calories", "diet")}

	matches := MatchApps("I want to track my calories", candidates)
	require.Len(t, matches, 1)
	assert.Equal(t, "CalorieCounter", matches[0].App.Name)
	assert.Equal(t, 0.5, matches[0].Score)
	assert.Equal(t, []string{"calories"}, matches[0].MatchedKeywords)
}

func TestMatchAppsIsCaseInsensitive(t *testing.T) {
	matches := MatchApps("I need CALORIES tracking", []store.App{app("CalorieCounter", "calories")})
	require.Len(t, matches, 1)
	assert.Equal(t, 1.0, matches[0].Score)

	matches = MatchApps("my diet plan", []store.App{app("Diet", "DIET")})
	require.Len(t, matches, 1)
}

func TestMatchAppsUsesPlainSubstrings(t *testing.T) {
	// "note" is contained in "denote"; substring matching accepts it.
	matches := MatchApps("these symbols denote values", []store.App{app("Notes", "note", "journal")})
	require.Len(t, matches, 1)
	assert.Equal(t, 0.5, matches[0].Score)
}

func TestMatchAppsKeepsKeywordsVerbatim(t *testing.T) {
	// Keywords are not trimmed: "diet " needs the trailing space in the prompt.
	matches := MatchApps("dietary plan", []store.App{app("Diet", "diet ", "zzz")})
	assert.Empty(t, matches)

	matches = MatchApps("a diet plan", []store.App{app("Diet", "diet ", "zzz")})
	require.Len(t, matches, 1)
	assert.Equal(t, []string{"diet "}, matches[0].MatchedKeywords)

	// The empty string is contained in every prompt.
	matches = MatchApps("hello", []store.App{app("Blank", "", "zzz")})
	require.Len(t, matches, 1)
	assert.Equal(t, 0.5, matches[0].Score)
}

func TestMatchAppsRanksAndTruncates(t *testing.T) {
	candidates := []store.App{
		app("Quarter", "alpha", "zzz1", "zzz2", "zzz3"),
		app("Half", "alpha", "zzz1"),
		app("None", "nothing"),
		app("Full", "alpha"),
		app("Third", "alpha", "zzz1", "zzz2"),
		app("HalfAgain", "beta", "zzz9"),
	}

	matches := MatchApps("alpha beta", candidates)
	require.Len(t, matches, MaxSuggestedApps)
	assert.Equal(t, "Full", matches[0].App.Name)
	assert.Equal(t, "Half", matches[1].App.Name)
	assert.Equal(t, "HalfAgain", matches[2].App.Name, "ties keep input order")
}

func TestMatchAppsNeverReturnsZeroScores(t *testing.T) {
	candidates := make([]store.App, 0, 20)
	for i := 0; i < 20; i++ {
		candidates = append(candidates, app(fmt.Sprintf("app-%d", i), fmt.Sprintf("kw%d", i), "shared"))
	}
	candidates = append(candidates, app("empty"), app("blank", "", "  "))

	for _, prompt := range []string{"", "shared", "kw1 kw2 kw3 kw4", "nothing relevant"} {
		matches := MatchApps(prompt, candidates)
		assert.LessOrEqual(t, len(matches), MaxSuggestedApps, prompt)
		for _, m := range matches {
			assert.Greater(t, m.Score, 0.0, prompt)
		}
	}
}

func TestClassifyIntent(t *testing.T) {
	tests := []struct {
		prompt string
		want   string
	}{
		{"I want to track my calories", "health_fitness"},
		{"Show my SOLANA wallet", "crypto"},
		{"a todo list", "productivity"},
		{"monthly budget planner", "finance"},
		{"diet tracker for my crypto friends", "health_fitness"},
		{"write a poem", IntentGeneral},
		{"", IntentGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyIntent(tt.prompt))
		})
	}
}
