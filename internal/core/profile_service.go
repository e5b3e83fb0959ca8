package core

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"github.com/belac-fun/belac-backend/internal/store"
)

type ProfileStore interface {
	GetProfile(ctx context.Context, walletAddress string) (*store.UserProfile, error)
	UpsertProfile(ctx context.Context, update store.ProfileUpdate) (*store.UserProfile, error)
	ListInstalledApps(ctx context.Context, walletAddress string) ([]store.App, error)
	InstallApp(ctx context.Context, walletAddress, appID string) ([]string, error)
	UninstallApp(ctx context.Context, walletAddress, appID string) ([]string, error)
}

type ProfileService struct {
	dbStore ProfileStore
	logger  *zap.Logger
}

func NewProfileService(db ProfileStore, logger *zap.Logger) *ProfileService {
	return &ProfileService{dbStore: db, logger: logger.Named("profile")}
}

func (s *ProfileService) GetProfile(ctx context.Context, walletAddress string) (*store.UserProfile, error) {
	return s.dbStore.GetProfile(ctx, walletAddress)
}

// SaveProfile creates or merges a profile. A nil field keeps its stored value;
// any other value is trimmed and stored, so "" clears the field.
func (s *ProfileService) SaveProfile(ctx context.Context, walletAddress string, displayName, bio, avatarURL *string) (*store.UserProfile, error) {
	return s.dbStore.UpsertProfile(ctx, store.ProfileUpdate{
		WalletAddress: walletAddress,
		DisplayName:   trimmed(displayName),
		Bio:           trimmed(bio),
		AvatarURL:     trimmed(avatarURL),
	})
}

func (s *ProfileService) InstalledApps(ctx context.Context, walletAddress string) ([]store.App, error) {
	return s.dbStore.ListInstalledApps(ctx, walletAddress)
}

func (s *ProfileService) InstallApp(ctx context.Context, walletAddress, appID string) ([]string, error) {
	ids, err := s.dbStore.InstallApp(ctx, walletAddress, appID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("app installed", zap.String("wallet_address", walletAddress), zap.String("app_id", appID))
	return ids, nil
}

func (s *ProfileService) UninstallApp(ctx context.Context, walletAddress, appID string) ([]string, error) {
	ids, err := s.dbStore.UninstallApp(ctx, walletAddress, appID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("app uninstalled", zap.String("wallet_address", walletAddress), zap.String("app_id", appID))
	return ids, nil
}

func trimmed(value *string) *string {
	if value == nil {
		return nil
	}
	t := strings.TrimSpace(*value)
	return &t
}

// presentOrNil maps a nil or blank value to nil.
func presentOrNil(value *string) *string {
	if value == nil {
		return nil
	}
	v := strings.TrimSpace(*value)
	if v == "" {
		return nil
	}
	return &v
}
