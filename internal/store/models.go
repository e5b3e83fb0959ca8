package store

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// App statuses. Only live and beta apps take part in prompt matching.
const (
	AppStatusLive       = "live"
	AppStatusBeta       = "beta"
	AppStatusComingSoon = "coming-soon"
)

type App struct {
	ID          string    `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Description string    `json:"description" db:"description"`
	Keywords    Keywords  `json:"keywords" db:"keywords"`
	EndpointURL *string   `json:"endpoint_url" db:"endpoint_url"` // Nullable
	Creator     string    `json:"creator" db:"creator"`
	Status      string    `json:"status" db:"status"`
	UserCount   int       `json:"user_count" db:"user_count"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
}

// Keywords is stored as a JSON array in a text column.
type Keywords []string

func (k Keywords) Value() (driver.Value, error) {
	if k == nil {
		return "[]", nil
	}
	b, err := json.Marshal([]string(k))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal keywords: %w", err)
	}
	return string(b), nil
}

func (k *Keywords) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*k = Keywords{}
		return nil
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("unsupported keywords column type %T", src)
	}
	if len(raw) == 0 {
		*k = Keywords{}
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return fmt.Errorf("failed to unmarshal keywords: %w", err)
	}
	*k = out
	return nil
}

type Suggestion struct {
	ID        string    `json:"id" db:"id"`
	Text      string    `json:"text" db:"text"`
	Status    string    `json:"status" db:"status"`
	Votes     int       `json:"votes" db:"votes"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type CommunityPost struct {
	ID        string    `json:"id" db:"id"`
	Author    string    `json:"author" db:"author"`
	Handle    string    `json:"handle" db:"handle"`
	Avatar    string    `json:"avatar" db:"avatar"`
	Text      string    `json:"text" db:"text"`
	Likes     int       `json:"likes" db:"likes"`
	Replies   int       `json:"replies" db:"replies"`
	Reposts   int       `json:"reposts" db:"reposts"`
	CreatedAt time.Time `json:"timestamp" db:"created_at"`
}

type CalorieEntry struct {
	ID        string    `json:"id" db:"id"`
	Food      string    `json:"food" db:"food"`
	Calories  float64   `json:"calories" db:"calories"`
	Protein   float64   `json:"protein" db:"protein"`
	Date      string    `json:"date" db:"entry_date"` // YYYY-MM-DD
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type UserPrompt struct {
	ID            string    `json:"id" db:"id"`
	WalletAddress string    `json:"wallet_address" db:"wallet_address"`
	PromptText    string    `json:"prompt_text" db:"prompt_text"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// PromptCount is a prompt text with how often it was submitted.
type PromptCount struct {
	PromptText string `json:"prompt_text" db:"prompt_text"`
	Count      int    `json:"count" db:"prompt_count"`
}

type UserProfile struct {
	WalletAddress   string    `json:"wallet_address" db:"wallet_address"`
	DisplayName     *string   `json:"display_name" db:"display_name"`
	Bio             *string   `json:"bio" db:"bio"`
	AvatarURL       *string   `json:"avatar_url" db:"avatar_url"`
	Verified        bool      `json:"verified" db:"verified"`
	InstalledAppIDs []string  `json:"installed_app_ids" db:"-"`
	CreatedAt       time.Time `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time `json:"updated_at" db:"updated_at"`
}

// ProfileUpdate carries the optional profile fields; nil means "keep the stored value".
type ProfileUpdate struct {
	WalletAddress string
	DisplayName   *string
	Bio           *string
	AvatarURL     *string
}

type Conversation struct {
	ID            string     `json:"id" db:"id"`
	WalletAddress string     `json:"wallet_address" db:"wallet_address"`
	Title         string     `json:"title" db:"title"`
	Description   *string    `json:"description" db:"description"` // Nullable
	MessageCount  int        `json:"message_count" db:"message_count"`
	LastReplyAt   *time.Time `json:"last_reply_at" db:"last_reply_at"` // Nullable
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
}

type Message struct {
	ID             string    `json:"id" db:"id"`
	ConversationID string    `json:"conversation_id" db:"conversation_id"`
	WalletAddress  string    `json:"wallet_address" db:"wallet_address"`
	DisplayName    *string   `json:"display_name,omitempty" db:"display_name"`
	Message        string    `json:"message" db:"message"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}
