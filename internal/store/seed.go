package store

func strPtr(s string) *string { return &s }

// DefaultApps is the reference registry ensured at startup.
var DefaultApps = []App{
	{
		Name:        "CalorieCounter",
		Description: "Track your daily nutrition intake in real-time",
		Keywords:    Keywords{"calories", "calorie", "diet", "nutrition", "food", "protein", "meal"},
		EndpointURL: strPtr("/api/entries"),
		Creator:     "Belac",
		Status:      AppStatusLive,
	},
	{
		Name:        "TodoApp",
		Description: "Manage your tasks with ease",
		Keywords:    Keywords{"todo", "task", "tasks", "checklist", "reminder"},
		Creator:     "Belac",
		Status:      AppStatusComingSoon,
	},
	{
		Name:        "Notes",
		Description: "Quick note-taking and organization",
		Keywords:    Keywords{"note", "notes", "journal", "write", "organize"},
		Creator:     "Belac",
		Status:      AppStatusComingSoon,
	},
	{
		Name:        "SolanaWalletTracker",
		Description: "Track Solana wallets and transactions",
		Keywords:    Keywords{"solana", "wallet", "transactions", "crypto", "token"},
		Creator:     "Belac",
		Status:      AppStatusBeta,
	},
	{
		Name:        "PortfolioBuilder",
		Description: "Build your online portfolio instantly",
		Keywords:    Keywords{"portfolio", "website", "resume", "showcase"},
		Creator:     "Belac",
		Status:      AppStatusComingSoon,
	},
	{
		Name:        "AnalyticsDashboard",
		Description: "Real-time app and user analytics",
		Keywords:    Keywords{"analytics", "dashboard", "metrics", "users", "stats"},
		Creator:     "Belac",
		Status:      AppStatusComingSoon,
	},
}
