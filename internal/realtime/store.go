// internal/realtime/store.go
package realtime

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

// maxNotificationsPerUser caps the retained history; older entries fall off.
const maxNotificationsPerUser = 50

// NotificationStore is an in-memory, per-user capped notification history.
type NotificationStore struct {
	mu            sync.RWMutex
	notifications map[string][]Notification
	now           func() time.Time
}

func NewNotificationStore() *NotificationStore {
	return &NotificationStore{
		notifications: make(map[string][]Notification),
		now:           time.Now,
	}
}

// Add assigns an ID and timestamp when missing, prepends the notification,
// and trims the history to the cap. Returns the stored value.
func (s *NotificationStore) Add(n Notification) Notification {
	s.mu.Lock()
	defer s.mu.Unlock()

	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now().UTC()
	}

	list := append([]Notification{n}, s.notifications[n.UserID]...)
	if len(list) > maxNotificationsPerUser {
		list = list[:maxNotificationsPerUser]
	}
	s.notifications[n.UserID] = list
	return n
}

// List returns the user's notifications, newest first.
func (s *NotificationStore) List(userID string) []Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	list := make([]Notification, len(s.notifications[userID]))
	copy(list, s.notifications[userID])
	return list
}

// UnreadCount reports how many notifications the user has not read.
func (s *NotificationStore) UnreadCount(userID string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, n := range s.notifications[userID] {
		if !n.Read {
			count++
		}
	}
	return count
}

// MarkRead marks a single notification read. Returns false when absent.
func (s *NotificationStore) MarkRead(userID, notificationID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.notifications[userID]
	for i := range list {
		if list[i].ID == notificationID {
			list[i].Read = true
			return true
		}
	}
	return false
}

// MarkAllRead marks every notification for the user read.
func (s *NotificationStore) MarkAllRead(userID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	list := s.notifications[userID]
	for i := range list {
		list[i].Read = true
	}
}
