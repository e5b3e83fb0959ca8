package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

var (
	getProfileEndpoint = endpoint{
		name:            "get_profile",
		errorMessage:    "Failed to load profile",
		notFoundMessage: "Profile not found",
	}
	saveProfileEndpoint = endpoint{
		name:         "save_profile",
		errorMessage: "Failed to save profile",
	}
	installedAppsEndpoint = endpoint{
		name:         "installed_apps",
		errorMessage: "Failed to load installed apps",
	}
	installAppEndpoint = endpoint{
		name:            "install_app",
		errorMessage:    "Failed to install app",
		notFoundMessage: "App not found",
	}
	uninstallAppEndpoint = endpoint{
		name:         "uninstall_app",
		errorMessage: "Failed to uninstall app",
	}
)

func (h *APIHandler) GetProfileHandler() http.HandlerFunc {
	return h.handle(getProfileEndpoint, func(r *http.Request) (int, any, error) {
		profile, err := h.profiles.GetProfile(r.Context(), chi.URLParam(r, "walletAddress"))
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, profile, nil
	})
}

// SaveProfileHandler accepts a signature field for client compatibility; it is not verified.
func (h *APIHandler) SaveProfileHandler() http.HandlerFunc {
	return h.handle(saveProfileEndpoint, func(r *http.Request) (int, any, error) {
		var req SaveProfileRequest
		if err := h.decodeRequest(r, &req); err != nil {
			return 0, nil, err
		}
		profile, err := h.profiles.SaveProfile(r.Context(), req.WalletAddress, req.DisplayName, req.Bio, req.AvatarURL)
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, successBody("profile", profile), nil
	})
}

func (h *APIHandler) InstalledAppsHandler() http.HandlerFunc {
	return h.handle(installedAppsEndpoint, func(r *http.Request) (int, any, error) {
		apps, err := h.profiles.InstalledApps(r.Context(), chi.URLParam(r, "walletAddress"))
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, listBody("installed_apps", apps, len(apps)), nil
	})
}

func (h *APIHandler) InstallAppHandler() http.HandlerFunc {
	return h.handle(installAppEndpoint, func(r *http.Request) (int, any, error) {
		ids, err := h.profiles.InstallApp(r.Context(), chi.URLParam(r, "walletAddress"), chi.URLParam(r, "appID"))
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, successBody("installed_app_ids", ids), nil
	})
}

func (h *APIHandler) UninstallAppHandler() http.HandlerFunc {
	return h.handle(uninstallAppEndpoint, func(r *http.Request) (int, any, error) {
		ids, err := h.profiles.UninstallApp(r.Context(), chi.URLParam(r, "walletAddress"), chi.URLParam(r, "appID"))
		if err != nil {
			return 0, nil, err
		}
		return http.StatusOK, successBody("installed_app_ids", ids), nil
	})
}
