package core

import (
	"sort"
	"strings"

	"github.com/belac-fun/belac-backend/internal/store"
)

const (
	MaxSuggestedApps = 3 // Number of apps returned for a prompt

	IntentGeneral = "general"
)

// intentTriggers is checked in order; the first category with a trigger
// contained in the prompt wins.
var intentTriggers = []struct {
	intent   string
	triggers []string
}{
	{"health_fitness", []string{"calorie", "fitness", "workout", "diet", "exercise", "nutrition", "protein", "weight", "health"}},
	{"crypto", []string{"crypto", "wallet", "token", "solana", "nft", "blockchain", "defi"}},
	{"productivity", []string{"todo", "task", "note", "productivity", "schedule", "reminder", "calendar"}},
	{"finance", []string{"budget", "expense", "finance", "money", "invoice", "savings", "spending"}},
}

type Match struct {
	App             store.App
	Score           float64
	MatchedKeywords []string
}

// MatchApps scores every candidate by the fraction of its keywords contained
// in the prompt (case-insensitive substring match, no word boundaries) and
// returns at most MaxSuggestedApps candidates with a positive score, best
// first. Equal scores keep their input order.
func MatchApps(promptText string, candidates []store.App) []Match {
	promptLower := strings.ToLower(promptText)

	matches := make([]Match, 0, len(candidates))
	for _, app := range candidates {
		if len(app.Keywords) == 0 {
			continue
		}
		var matched []string
		for _, keyword := range app.Keywords {
			if strings.Contains(promptLower, strings.ToLower(keyword)) {
				matched = append(matched, keyword)
			}
		}
		if len(matched) == 0 {
			continue
		}
		matches = append(matches, Match{
			App:             app,
			Score:           float64(len(matched)) / float64(len(app.Keywords)),
			MatchedKeywords: matched,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	if len(matches) > MaxSuggestedApps {
		matches = matches[:MaxSuggestedApps]
	}
	return matches
}

// ClassifyIntent maps a prompt to a coarse category, IntentGeneral when no trigger matches.
func ClassifyIntent(promptText string) string {
	promptLower := strings.ToLower(promptText)
	for _, category := range intentTriggers {
		for _, trigger := range category.triggers {
			if strings.Contains(promptLower, trigger) {
				return category.intent
			}
		}
	}
	return IntentGeneral
}
