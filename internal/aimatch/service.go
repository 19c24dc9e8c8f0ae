// internal/aimatch/service.go
// Optional AI-assisted matching over a configured pool of showcase bridges.
// The deterministic matching engine never depends on this; callers fall back
// to theme matching whenever the completion call fails or answers nonsense.

package aimatch

import (
	"context"
	"fmt"
	"math/rand"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/bridgeup/bridgeup-backend/internal/models"
)

// ShowcaseBridge is a curated bridge candidate shown to users whose
// snapshot has no live counterpart yet.
type ShowcaseBridge struct {
	ID          string   `json:"id"`
	Themes      []string `json:"themes"`
	Description string   `json:"description"`
	MediaPath   string   `json:"media_path"`
	CreatorName string   `json:"creator_name"`
	CreatorCity string   `json:"creator_city"`
}

// DefaultShowcasePool returns the built-in showcase candidates.
func DefaultShowcasePool() []ShowcaseBridge {
	return []ShowcaseBridge{
		{
			ID:          "showcase_1",
			Themes:      []string{"food"},
			Description: "Traditional Italian pasta making with my nonna - the secret is in the hand-rolled technique passed down for generations",
			MediaPath:   "https://images.pexels.com/photos/1640777/pexels-photo-1640777.jpeg",
			CreatorName: "Marco",
			CreatorCity: "Rome",
		},
		{
			ID:          "showcase_2",
			Themes:      []string{"music"},
			Description: "Learning flamenco guitar in Seville - the passion and rhythm that connects generations",
			MediaPath:   "https://images.pexels.com/photos/1699161/pexels-photo-1699161.jpeg",
			CreatorName: "Carmen",
			CreatorCity: "Seville",
		},
		{
			ID:          "showcase_3",
			Themes:      []string{"art", "culture"},
			Description: "Street art in Berlin that tells the story of the city's transformation and resilience",
			MediaPath:   "https://images.pexels.com/photos/1751731/pexels-photo-1751731.jpeg",
			CreatorName: "Klaus",
			CreatorCity: "Berlin",
		},
		{
			ID:          "showcase_4",
			Themes:      []string{"food", "family"},
			Description: "Sunday dim sum tradition in Hong Kong - where every dumpling tells a story of family and heritage",
			MediaPath:   "https://images.pexels.com/photos/1640772/pexels-photo-1640772.jpeg",
			CreatorName: "Wei",
			CreatorCity: "Hong Kong",
		},
		{
			ID:          "showcase_5",
			Themes:      []string{"music", "tradition"},
			Description: "Jazz night in New Orleans - where the music flows through the streets like the Mississippi River",
			MediaPath:   "https://images.pexels.com/photos/1751731/pexels-photo-1751731.jpeg",
			CreatorName: "Louis",
			CreatorCity: "New Orleans",
		},
	}
}

type Service interface {
	FindBestMatch(ctx context.Context, snapshot *models.Snapshot) (*ShowcaseBridge, error)
	ShowcasePool() []ShowcaseBridge
}

type service struct {
	completer TextCompleter
	pool      []ShowcaseBridge
	rand      *rand.Rand
}

// NewService builds the AI matching service. The completer may be nil, in
// which case every call uses the deterministic theme fallback. Pool defaults
// to the built-in showcase set.
func NewService(completer TextCompleter, pool []ShowcaseBridge, rng *rand.Rand) Service {
	if len(pool) == 0 {
		pool = DefaultShowcasePool()
	}
	return &service{
		completer: completer,
		pool:      pool,
		rand:      rng,
	}
}

// FindBestMatch asks the completer to pick a showcase bridge by index. Any
// failure, out-of-range, or unparseable answer falls back to theme matching.
func (s *service) FindBestMatch(ctx context.Context, snapshot *models.Snapshot) (*ShowcaseBridge, error) {
	if s.completer == nil {
		return s.fallbackMatch(snapshot), nil
	}

	prompt := fmt.Sprintf(
		"Find the best match for themes: %s and description: %q. Respond with number 1-%d.",
		strings.Join(snapshot.Themes, ", "), snapshot.Text, len(s.pool),
	)

	text, err := s.completer.Complete(ctx, prompt)
	if err != nil {
		log.Warn().Err(err).Msg("completion failed, using theme fallback")
		recordMatch("fallback")
		return s.fallbackMatch(snapshot), nil
	}

	index, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || index < 1 || index > len(s.pool) {
		recordMatch("fallback")
		return s.fallbackMatch(snapshot), nil
	}

	recordMatch("completion")
	match := s.pool[index-1]
	return &match, nil
}

func (s *service) ShowcasePool() []ShowcaseBridge {
	pool := make([]ShowcaseBridge, len(s.pool))
	copy(pool, s.pool)
	return pool
}

// fallbackMatch picks among showcase bridges whose themes overlap the
// snapshot's by substring in either direction; with no overlap anywhere, any
// bridge from the pool qualifies.
func (s *service) fallbackMatch(snapshot *models.Snapshot) *ShowcaseBridge {
	userThemes := make([]string, 0, len(snapshot.Themes))
	for _, t := range snapshot.Themes {
		userThemes = append(userThemes, strings.ToLower(t))
	}

	matching := make([]ShowcaseBridge, 0)
	for _, bridge := range s.pool {
		if themesOverlap(bridge.Themes, userThemes) {
			matching = append(matching, bridge)
		}
	}
	if len(matching) == 0 {
		matching = s.pool
	}

	match := matching[s.intn(len(matching))]
	return &match
}

func themesOverlap(bridgeThemes, userThemes []string) bool {
	for _, bt := range bridgeThemes {
		bt = strings.ToLower(bt)
		for _, ut := range userThemes {
			if strings.Contains(bt, ut) || strings.Contains(ut, bt) {
				return true
			}
		}
	}
	return false
}

func (s *service) intn(n int) int {
	if n <= 1 {
		return 0
	}
	if s.rand == nil {
		return rand.Intn(n)
	}
	return s.rand.Intn(n)
}
