// internal/gamification/catalog.go
// Static badge/achievement definitions. The catalog is configuration data
// handed to the engine, so deployments and tests can swap in their own.

package gamification

// Metrics a badge or achievement threshold can be evaluated against.
const (
	MetricBridgesCreated     = "bridges_created"
	MetricSnapshotsPosted    = "snapshots_posted"
	MetricLikesReceived      = "likes_received"
	MetricBridgesLiked       = "bridges_liked"
	MetricBridgesSaved       = "bridges_saved"
	MetricThemesExplored     = "themes_explored"
	MetricCountriesConnected = "countries_connected"
	MetricStreakDays         = "streak_days"
	MetricAccountAgeDays     = "account_age_days"
	MetricNone               = "none"
)

// BadgeDef defines one badge and its unlock rule. Threshold is the metric
// value required to unlock. TrackProgress controls whether a partial count
// is reported; time-window badges like early_adopter do not track progress.
type BadgeDef struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Description   string `json:"description"`
	Icon          string `json:"icon"`
	Category      string `json:"category"`
	Rarity        string `json:"rarity"`
	Metric        string `json:"metric"`
	Threshold     int    `json:"threshold"`
	TrackProgress bool   `json:"track_progress"`
}

// AchievementDef defines one achievement and its unlock rule. A MetricNone
// definition is unconditionally unlocked.
type AchievementDef struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Points      int    `json:"points"`
	Metric      string `json:"metric"`
	Threshold   int    `json:"threshold"`
}

// Catalog bundles the badge and achievement definitions an engine
// evaluates against.
type Catalog struct {
	Badges       []BadgeDef
	Achievements []AchievementDef
}

// DefaultCatalog returns the production BridgeUp catalog.
func DefaultCatalog() Catalog {
	return Catalog{
		Badges: []BadgeDef{
			// Creation
			{ID: "first_bridge", Name: "Bridge Builder", Description: "Created your first bridge", Icon: "🌉", Category: CategoryCreation, Rarity: RarityCommon, Metric: MetricBridgesCreated, Threshold: 1, TrackProgress: true},
			{ID: "bridge_master", Name: "Bridge Master", Description: "Created 10 bridges", Icon: "🏗️", Category: CategoryCreation, Rarity: RarityRare, Metric: MetricBridgesCreated, Threshold: 10, TrackProgress: true},
			{ID: "cultural_architect", Name: "Cultural Architect", Description: "Created 50 bridges", Icon: "🏛️", Category: CategoryCreation, Rarity: RarityEpic, Metric: MetricBridgesCreated, Threshold: 50, TrackProgress: true},
			{ID: "bridge_legend", Name: "Bridge Legend", Description: "Created 100 bridges", Icon: "👑", Category: CategoryCreation, Rarity: RarityLegendary, Metric: MetricBridgesCreated, Threshold: 100, TrackProgress: true},

			// Social
			{ID: "first_like", Name: "First Impression", Description: "Received your first like", Icon: "❤️", Category: CategorySocial, Rarity: RarityCommon, Metric: MetricLikesReceived, Threshold: 1, TrackProgress: true},
			{ID: "popular_creator", Name: "Popular Creator", Description: "Received 100 likes", Icon: "⭐", Category: CategorySocial, Rarity: RarityRare, Metric: MetricLikesReceived, Threshold: 100, TrackProgress: true},
			{ID: "viral_sensation", Name: "Viral Sensation", Description: "Received 1000 likes", Icon: "🔥", Category: CategorySocial, Rarity: RarityEpic, Metric: MetricLikesReceived, Threshold: 1000, TrackProgress: true},
			{ID: "cultural_icon", Name: "Cultural Icon", Description: "Received 10000 likes", Icon: "🌟", Category: CategorySocial, Rarity: RarityLegendary, Metric: MetricLikesReceived, Threshold: 10000, TrackProgress: true},

			// Exploration
			{ID: "theme_explorer", Name: "Theme Explorer", Description: "Explored 5 different themes", Icon: "🗺️", Category: CategoryExploration, Rarity: RarityCommon, Metric: MetricThemesExplored, Threshold: 5, TrackProgress: true},
			{ID: "cultural_nomad", Name: "Cultural Nomad", Description: "Connected with people from 10 countries", Icon: "🌍", Category: CategoryExploration, Rarity: RarityRare, Metric: MetricCountriesConnected, Threshold: 10, TrackProgress: true},
			{ID: "global_citizen", Name: "Global Citizen", Description: "Connected with people from 25 countries", Icon: "🌎", Category: CategoryExploration, Rarity: RarityEpic, Metric: MetricCountriesConnected, Threshold: 25, TrackProgress: true},
			{ID: "world_bridge", Name: "World Bridge", Description: "Connected with people from 50 countries", Icon: "🌐", Category: CategoryExploration, Rarity: RarityLegendary, Metric: MetricCountriesConnected, Threshold: 50, TrackProgress: true},

			// Achievement
			{ID: "early_adopter", Name: "Early Adopter", Description: "Joined in the first week", Icon: "🚀", Category: CategoryAchievement, Rarity: RarityRare, Metric: MetricAccountAgeDays, Threshold: 7},
			{ID: "streak_master", Name: "Streak Master", Description: "Active for 30 consecutive days", Icon: "🔥", Category: CategoryAchievement, Rarity: RarityEpic, Metric: MetricStreakDays, Threshold: 30, TrackProgress: true},
			{ID: "cultural_ambassador", Name: "Cultural Ambassador", Description: "Shared content in 5 different languages", Icon: "🗣️", Category: CategoryAchievement, Rarity: RarityLegendary, Metric: MetricThemesExplored, Threshold: 5, TrackProgress: true},
		},
		Achievements: []AchievementDef{
			{ID: "first_steps", Name: "First Steps", Description: "Complete your profile setup", Icon: "👣", Points: 10, Metric: MetricNone},
			{ID: "content_creator", Name: "Content Creator", Description: "Post your first snapshot", Icon: "📸", Points: 20, Metric: MetricSnapshotsPosted, Threshold: 1},
			{ID: "bridge_builder", Name: "Bridge Builder", Description: "Create your first bridge", Icon: "🌉", Points: 50, Metric: MetricBridgesCreated, Threshold: 1},
			{ID: "social_butterfly", Name: "Social Butterfly", Description: "Like 10 bridges", Icon: "🦋", Points: 30, Metric: MetricBridgesLiked, Threshold: 10},
			{ID: "collector", Name: "Collector", Description: "Save 20 bridges", Icon: "💾", Points: 40, Metric: MetricBridgesSaved, Threshold: 20},
			{ID: "explorer", Name: "Explorer", Description: "Explore all available themes", Icon: "🗺️", Points: 100, Metric: MetricThemesExplored, Threshold: 6},
			{ID: "connector", Name: "Connector", Description: "Connect with 10 different people", Icon: "🤝", Points: 80, Metric: MetricCountriesConnected, Threshold: 10},
			{ID: "cultural_expert", Name: "Cultural Expert", Description: "Share content from 5 different cultures", Icon: "🎭", Points: 150, Metric: MetricCountriesConnected, Threshold: 5},
		},
	}
}

// BadgeByID looks up a badge definition.
func (c Catalog) BadgeByID(id string) (BadgeDef, bool) {
	for _, b := range c.Badges {
		if b.ID == id {
			return b, true
		}
	}
	return BadgeDef{}, false
}

// AchievementByID looks up an achievement definition.
func (c Catalog) AchievementByID(id string) (AchievementDef, bool) {
	for _, a := range c.Achievements {
		if a.ID == id {
			return a, true
		}
	}
	return AchievementDef{}, false
}
