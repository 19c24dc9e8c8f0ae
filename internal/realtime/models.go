// internal/realtime/models.go
package realtime

import "time"

// Event kinds carried by the hub.
const (
	EventNotification = "notification"
	EventInteraction  = "interaction"
)

// Notification kinds.
const (
	NotificationBridgeCreated = "bridge_created"
	NotificationBridgeLiked   = "bridge_liked"
	NotificationBadgeUnlocked = "badge_unlocked"
	NotificationNewViewer     = "new_viewer"
)

// Notification is a user-facing event held in the capped per-user store.
type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}

// InteractionEvent describes live engagement activity for fan-out.
type InteractionEvent struct {
	TargetType string    `json:"target_type"`
	TargetID   string    `json:"target_id"`
	Kind       string    `json:"kind"`
	ActorName  string    `json:"actor_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Event is the hub envelope.
type Event struct {
	Type         string            `json:"type"`
	UserID       string            `json:"user_id,omitempty"`
	Notification *Notification     `json:"notification,omitempty"`
	Interaction  *InteractionEvent `json:"interaction,omitempty"`
}
