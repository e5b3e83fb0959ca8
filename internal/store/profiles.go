package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
)

const profileColumns = "wallet_address, display_name, bio, avatar_url, verified, created_at, updated_at"

// UpsertProfile creates the profile or merges into the stored one. A nil field
// keeps its previous value; updated_at always advances.
func (s *Store) UpsertProfile(ctx context.Context, update ProfileUpdate) (*UserProfile, error) {
	now := s.now()
	query := s.rebind(`
        INSERT INTO user_profiles (wallet_address, display_name, bio, avatar_url, verified, created_at, updated_at)
        VALUES (?, ?, ?, ?, FALSE, ?, ?)
        ON CONFLICT (wallet_address) DO UPDATE SET
            display_name = COALESCE(excluded.display_name, user_profiles.display_name),
            bio = COALESCE(excluded.bio, user_profiles.bio),
            avatar_url = COALESCE(excluded.avatar_url, user_profiles.avatar_url),
            updated_at = excluded.updated_at
        RETURNING ` + profileColumns)

	var profile UserProfile
	err := s.db.QueryRowxContext(ctx, query,
		update.WalletAddress, update.DisplayName, update.Bio, update.AvatarURL, now, now,
	).StructScan(&profile)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert profile: %w", err)
	}

	profile.InstalledAppIDs, err = installedAppIDs(ctx, s.db, s.rebind, profile.WalletAddress)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Store) GetProfile(ctx context.Context, walletAddress string) (*UserProfile, error) {
	var profile UserProfile
	err := s.db.GetContext(ctx, &profile, s.rebind("SELECT "+profileColumns+" FROM user_profiles WHERE wallet_address = ?"), walletAddress)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	profile.InstalledAppIDs, err = installedAppIDs(ctx, s.db, s.rebind, walletAddress)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// InstallApp adds appID to the wallet's installed set. Installing an app twice
// is a no-op; the app's user_count only moves when a row is actually added.
// Returns ErrNotFound when the app does not exist.
func (s *Store) InstallApp(ctx context.Context, walletAddress, appID string) ([]string, error) {
	var ids []string
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		var exists int
		err := tx.GetContext(ctx, &exists, tx.Rebind("SELECT 1 FROM apps WHERE id = ?"), appID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrNotFound
			}
			return fmt.Errorf("failed to look up app: %w", err)
		}

		now := s.now()
		_, err = tx.ExecContext(ctx, tx.Rebind(`
            INSERT INTO user_profiles (wallet_address, verified, created_at, updated_at)
            VALUES (?, FALSE, ?, ?)
            ON CONFLICT (wallet_address) DO NOTHING
        `), walletAddress, now, now)
		if err != nil {
			return fmt.Errorf("failed to ensure profile: %w", err)
		}

		res, err := tx.ExecContext(ctx, tx.Rebind(`
            INSERT INTO user_installed_apps (wallet_address, app_id, installed_at)
            VALUES (?, ?, ?)
            ON CONFLICT (wallet_address, app_id) DO NOTHING
        `), walletAddress, appID, now)
		if err != nil {
			return fmt.Errorf("failed to install app: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			if _, err := tx.ExecContext(ctx, tx.Rebind("UPDATE apps SET user_count = user_count + 1 WHERE id = ?"), appID); err != nil {
				return fmt.Errorf("failed to increment app user count: %w", err)
			}
		}

		ids, err = installedAppIDs(ctx, tx, tx.Rebind, walletAddress)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// UninstallApp removes appID from the wallet's installed set. Removing an app
// that is not installed is a no-op.
func (s *Store) UninstallApp(ctx context.Context, walletAddress, appID string) ([]string, error) {
	var ids []string
	err := s.inTx(ctx, func(tx *sqlx.Tx) error {
		res, err := tx.ExecContext(ctx, tx.Rebind("DELETE FROM user_installed_apps WHERE wallet_address = ? AND app_id = ?"), walletAddress, appID)
		if err != nil {
			return fmt.Errorf("failed to uninstall app: %w", err)
		}
		if affected, _ := res.RowsAffected(); affected > 0 {
			_, err := tx.ExecContext(ctx, tx.Rebind(`
                UPDATE apps SET user_count = CASE WHEN user_count > 0 THEN user_count - 1 ELSE 0 END
                WHERE id = ?
            `), appID)
			if err != nil {
				return fmt.Errorf("failed to decrement app user count: %w", err)
			}
		}

		ids, err = installedAppIDs(ctx, tx, tx.Rebind, walletAddress)
		return err
	})
	if err != nil {
		return nil, err
	}
	return ids, nil
}

// ListInstalledApps returns the registry rows installed by a wallet, in install order.
func (s *Store) ListInstalledApps(ctx context.Context, walletAddress string) ([]App, error) {
	apps := []App{}
	query := s.rebind(`
        SELECT a.id, a.name, a.description, a.keywords, a.endpoint_url, a.creator, a.status, a.user_count, a.created_at
        FROM user_installed_apps ia
        JOIN apps a ON a.id = ia.app_id
        WHERE ia.wallet_address = ?
        ORDER BY ia.installed_at ASC, a.name ASC
    `)
	if err := s.db.SelectContext(ctx, &apps, query, walletAddress); err != nil {
		return nil, fmt.Errorf("failed to query installed apps: %w", err)
	}
	return apps, nil
}

func installedAppIDs(ctx context.Context, q sqlx.QueryerContext, rebind func(string) string, walletAddress string) ([]string, error) {
	ids := []string{}
	query := rebind("SELECT app_id FROM user_installed_apps WHERE wallet_address = ? ORDER BY installed_at ASC, app_id ASC")
	if err := sqlx.SelectContext(ctx, q, &ids, query, walletAddress); err != nil {
		return nil, fmt.Errorf("failed to query installed app ids: %w", err)
	}
	return ids, nil
}
