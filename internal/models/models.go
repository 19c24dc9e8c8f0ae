// internal/models/models.go
// Shared domain entities used across services

package models

import "time"

// Media types for snapshots. Video capture exists in the mobile client but
// is coerced to photo before it reaches the backend.
const (
	MediaPhoto = "photo"
	MediaAudio = "audio"
	MediaVideo = "video"
)

// Interaction target types
const (
	TargetSnapshot = "snapshot"
	TargetBridge   = "bridge"
)

// User represents a BridgeUp member profile.
// City is free text in "City, Country" form; the segment after the last
// comma is treated as the country.
type User struct {
	ID          string    `json:"id" db:"id"`
	DisplayName string    `json:"display_name" db:"display_name"`
	PhotoURL    *string   `json:"photo_url,omitempty" db:"photo_url"`
	City        string    `json:"city" db:"city"`
	Themes      []string  `json:"themes" db:"themes"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// Snapshot is a single user-submitted media + caption + themes post.
type Snapshot struct {
	ID           string    `json:"id" db:"id"`
	UserID       string    `json:"user_id" db:"user_id"`
	MediaType    string    `json:"media_type" db:"media_type"`
	MediaPath    string    `json:"media_path" db:"media_path"`
	Text         string    `json:"text" db:"text"`
	Themes       []string  `json:"themes" db:"themes"`
	Locale       string    `json:"locale" db:"locale"`
	PendingMatch bool      `json:"pending_match" db:"pending_match"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	LikeCount    int       `json:"like_count" db:"like_count"`
	SaveCount    int       `json:"save_count" db:"save_count"`
}

// BridgeMetrics tracks engagement on a bridge.
type BridgeMetrics struct {
	Views int `json:"views" db:"views"`
	Likes int `json:"likes" db:"likes"`
}

// Bridge pairs two snapshots from different users that share thematic
// overlap. Created exactly once per successful match; immutable afterwards
// except for metric increments.
type Bridge struct {
	ID              string        `json:"id" db:"id"`
	LeftSnapshotID  string        `json:"left_snapshot_id" db:"left_snapshot_id"`
	RightSnapshotID string        `json:"right_snapshot_id" db:"right_snapshot_id"`
	Themes          []string      `json:"themes" db:"themes"`
	CreatedAt       time.Time     `json:"created_at" db:"created_at"`
	Metrics         BridgeMetrics `json:"metrics"`
}

// Like records a user liking a snapshot or bridge.
type Like struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	TargetType string    `json:"target_type" db:"target_type"`
	TargetID   string    `json:"target_id" db:"target_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Save records a user saving a snapshot or bridge.
type Save struct {
	ID         string    `json:"id" db:"id"`
	UserID     string    `json:"user_id" db:"user_id"`
	TargetType string    `json:"target_type" db:"target_type"`
	TargetID   string    `json:"target_id" db:"target_id"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}
