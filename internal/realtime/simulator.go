// internal/realtime/simulator.go
// Demo-mode event producer. Emits interaction and notification events from
// a fixed pool on two tickers, feeding the hub exactly like real producers
// would. Started only when enabled in config.

package realtime

import (
	"context"
	"math/rand"
	"time"

	"github.com/rs/zerolog/log"
)

type Simulator struct {
	hub                  *Hub
	interactionInterval  time.Duration
	notificationInterval time.Duration
	rand                 *rand.Rand
	stopCh               chan struct{}
}

func NewSimulator(hub *Hub, interactionInterval, notificationInterval time.Duration, rng *rand.Rand) *Simulator {
	if interactionInterval == 0 {
		interactionInterval = 5 * time.Second
	}
	if notificationInterval == 0 {
		notificationInterval = 15 * time.Second
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Simulator{
		hub:                  hub,
		interactionInterval:  interactionInterval,
		notificationInterval: notificationInterval,
		rand:                 rng,
		stopCh:               make(chan struct{}),
	}
}

// Start runs until Stop or context cancellation. SimulateFor is the user who
// receives the demo notifications.
func (s *Simulator) Start(ctx context.Context, simulateFor string) {
	log.Info().
		Dur("interaction_interval", s.interactionInterval).
		Dur("notification_interval", s.notificationInterval).
		Msg("starting realtime simulator")

	interactions := time.NewTicker(s.interactionInterval)
	notifications := time.NewTicker(s.notificationInterval)
	defer interactions.Stop()
	defer notifications.Stop()

	for {
		select {
		case <-interactions.C:
			s.emitInteraction()
		case <-notifications.C:
			s.emitNotification(simulateFor)
		case <-s.stopCh:
			log.Info().Msg("stopping realtime simulator")
			return
		case <-ctx.Done():
			return
		}
	}
}

func (s *Simulator) Stop() {
	close(s.stopCh)
}

var demoInteractions = []InteractionEvent{
	{TargetType: "bridge", TargetID: "bridge_1", Kind: "like", ActorName: "demo_user_1"},
	{TargetType: "snapshot", TargetID: "snapshot_2", Kind: "view", ActorName: "demo_user_2"},
	{TargetType: "bridge", TargetID: "bridge_3", Kind: "save", ActorName: "demo_user_3"},
}

var demoNotifications = []Notification{
	{Kind: NotificationBridgeLiked, Title: "Someone liked your bridge!", Body: "Your cultural food exchange got a new like"},
	{Kind: NotificationBridgeCreated, Title: "New bridge created!", Body: "You've been matched with someone from Tokyo"},
	{Kind: NotificationNewViewer, Title: "Your content is trending", Body: "Your music bridge has been viewed 15 times"},
	{Kind: NotificationBridgeCreated, Title: "Bridge completed!", Body: "Your language exchange bridge is now live"},
}

func (s *Simulator) emitInteraction() {
	event := demoInteractions[s.rand.Intn(len(demoInteractions))]
	event.CreatedAt = time.Now().UTC()
	s.hub.Publish(Event{Type: EventInteraction, Interaction: &event})
}

func (s *Simulator) emitNotification(userID string) {
	n := demoNotifications[s.rand.Intn(len(demoNotifications))]
	n.UserID = userID
	s.hub.PublishNotification(n)
}
