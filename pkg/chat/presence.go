package chat

// PresenceStatus is the generic presence state of a user.
type PresenceStatus string

const (
	PresenceOnline  PresenceStatus = "online"
	PresenceIdle    PresenceStatus = "idle"
	PresenceOffline PresenceStatus = "offline"
	PresenceUnknown PresenceStatus = "unknown"
)

// Presence describes a user's availability on a chat platform.
type Presence struct {
	Status          PresenceStatus `json:"status"`
	AutoAway        bool           `json:"auto_away,omitempty"`
	ManualAway      bool           `json:"manual_away,omitempty"`
	ConnectionCount int            `json:"connection_count,omitempty"`
	LastActivity    int64          `json:"last_activity,omitempty"`
}
