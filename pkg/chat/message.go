package chat

import "time"

// Thread references a message thread within a channel.
type Thread struct {
	ID string `json:"id"`
}

// Message is the normalized message record shared by all backends.
//
// AuthorID and ChannelID always carry the raw platform identifiers from
// the originating event. Author and Channel hold resolved records when
// the lookup succeeded and are nil otherwise.
type Message struct {
	ID        string            `json:"id"`
	Content   string            `json:"content"`
	Author    *User             `json:"author,omitempty"`
	AuthorID  string            `json:"author_id"`
	Channel   *Channel          `json:"channel,omitempty"`
	ChannelID string            `json:"channel_id"`
	Thread    *Thread           `json:"thread,omitempty"`
	CreatedAt time.Time         `json:"created_at,omitzero"`
	Metadata  map[string]string `json:"metadata,omitempty"`
}

// AuthorName returns the resolved author display name, falling back to
// the raw author identifier.
func (m *Message) AuthorName() string {
	if m.Author != nil {
		if name := m.Author.DisplayName(); name != "" {
			return name
		}
	}
	return m.AuthorID
}

// ChannelName returns the resolved channel name, falling back to the
// raw channel identifier.
func (m *Message) ChannelName() string {
	if m.Channel != nil && m.Channel.Name != "" {
		return m.Channel.Name
	}
	return m.ChannelID
}

// InThread reports whether the message belongs to a thread.
func (m *Message) InThread() bool {
	return m.Thread != nil && m.Thread.ID != ""
}
