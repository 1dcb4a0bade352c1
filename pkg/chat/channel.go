package chat

// ChannelType classifies a channel or room on a chat platform.
type ChannelType string

const (
	ChannelPublic  ChannelType = "public"
	ChannelPrivate ChannelType = "private"
	ChannelDirect  ChannelType = "direct"
	ChannelGroup   ChannelType = "group"
	ChannelThread  ChannelType = "thread"
	ChannelUnknown ChannelType = "unknown"
)

// Channel represents a channel or room on a chat platform.
type Channel struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Topic       string      `json:"topic,omitempty"`
	Type        ChannelType `json:"type"`
	IsArchived  bool        `json:"is_archived,omitempty"`
	MemberCount int         `json:"member_count,omitempty"`
}

// IsDirect reports whether the channel is a one-to-one direct message.
func (c *Channel) IsDirect() bool {
	return c.Type == ChannelDirect
}
