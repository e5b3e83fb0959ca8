package core

import (
	"context"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/belac-fun/belac-backend/internal/metrics"
	"github.com/belac-fun/belac-backend/internal/store"
)

type IntentStore interface {
	ListMatchableApps(ctx context.Context) ([]store.App, error)
	LogPrompt(ctx context.Context, walletAddress, promptText string) (*store.UserPrompt, error)
}

type SuggestedApp struct {
	store.App
	MatchScore      string   `json:"match_score"` // two decimals, e.g. "0.50"
	MatchedKeywords []string `json:"matched_keywords"`
}

type PromptAnalysis struct {
	Intent        string         `json:"intent"`
	Confidence    float64        `json:"confidence"`
	SuggestedApps []SuggestedApp `json:"suggested_apps"`
	NeedsCustom   bool           `json:"needs_custom"`
	CanRequest    bool           `json:"can_request"`
}

type IntentService struct {
	dbStore IntentStore
	logger  *zap.Logger
}

func NewIntentService(db IntentStore, logger *zap.Logger) *IntentService {
	return &IntentService{dbStore: db, logger: logger.Named("intent")}
}

// Analyze scores promptText against the live and beta apps. When a wallet is
// given the prompt is logged first; a logging failure never fails the analysis.
func (s *IntentService) Analyze(ctx context.Context, promptText, walletAddress string) (*PromptAnalysis, error) {
	if walletAddress != "" {
		if _, err := s.dbStore.LogPrompt(ctx, walletAddress, promptText); err != nil {
			s.logger.Warn("failed to log user prompt, continuing with analysis",
				zap.String("wallet_address", walletAddress), zap.Error(err))
		}
	}

	candidates, err := s.dbStore.ListMatchableApps(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load app registry: %w", err)
	}

	matches := MatchApps(promptText, candidates)
	analysis := &PromptAnalysis{
		Intent:        ClassifyIntent(promptText),
		SuggestedApps: make([]SuggestedApp, 0, len(matches)),
		NeedsCustom:   len(matches) == 0,
		CanRequest:    true,
	}
	for _, m := range matches {
		analysis.SuggestedApps = append(analysis.SuggestedApps, SuggestedApp{
			App:             m.App,
			MatchScore:      strconv.FormatFloat(m.Score, 'f', 2, 64),
			MatchedKeywords: m.MatchedKeywords,
		})
	}
	if len(matches) > 0 {
		analysis.Confidence = matches[0].Score
	}

	metrics.RecordPromptAnalysis(analysis.Intent)
	s.logger.Debug("prompt analysed",
		zap.String("intent", analysis.Intent),
		zap.Int("suggested", len(analysis.SuggestedApps)),
		zap.Float64("confidence", analysis.Confidence))
	return analysis, nil
}
