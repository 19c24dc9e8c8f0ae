// internal/matching/engine.go
// Deterministic matching engine. This is the required ranking used whenever
// the external AI collaborator is unavailable or fails, and the default
// everywhere else.

package matching

import (
	"time"

	"github.com/bridgeup/bridgeup-backend/internal/models"
)

// DefaultThemeCatalog is the fixed theme vocabulary, in discovery order.
var DefaultThemeCatalog = []string{"food", "study", "music", "places", "skills", "language"}

// Engine ranks snapshots and users and aggregates bridge suggestions.
// Inputs are already-materialized collections supplied by the caller; the
// engine performs no I/O, holds no state between calls, and is safe for
// concurrent use.
type Engine interface {
	FindBestSnapshotMatches(target *models.Snapshot, snapshots []*models.Snapshot, users []*models.User, limit int) []MatchScore
	FindUserMatches(target *models.User, users []*models.User, limit int) []UserMatch
	BridgeSuggestions(user *models.User, snapshots []*models.Snapshot, users []*models.User) *Suggestions
	UserCompatibility(u1, u2 *models.User) float64
}

type engine struct {
	themeCatalog []string
	now          func() time.Time
}

// NewEngine creates a matching engine. The theme catalog drives discovery
// theme selection in suggestions; pass DefaultThemeCatalog unless the
// deployment overrides the vocabulary.
func NewEngine(themeCatalog []string) Engine {
	if len(themeCatalog) == 0 {
		themeCatalog = DefaultThemeCatalog
	}
	return &engine{
		themeCatalog: themeCatalog,
		now:          time.Now,
	}
}
