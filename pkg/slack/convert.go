package slack

import (
	"strconv"
	"time"

	slackapi "github.com/slack-go/slack"

	"chatbridge/pkg/chat"
)

// dmChannelPrefix is the reserved leading character of direct-message
// channel IDs.
const dmChannelPrefix = "D"

func userFromSlack(u *slackapi.User) *chat.User {
	name := u.Profile.DisplayName
	if name == "" {
		name = u.RealName
	}
	if name == "" {
		name = u.Name
	}

	return &chat.User{
		ID:        u.ID,
		Name:      name,
		Handle:    u.Name,
		Email:     u.Profile.Email,
		AvatarURL: u.Profile.Image192,
		IsBot:     u.IsBot,
	}
}

func channelFromSlack(c *slackapi.Channel) *chat.Channel {
	return &chat.Channel{
		ID:          c.ID,
		Name:        c.Name,
		Topic:       c.Topic.Value,
		Type:        channelTypeFromSlack(c),
		IsArchived:  c.IsArchived,
		MemberCount: c.NumMembers,
	}
}

func channelTypeFromSlack(c *slackapi.Channel) chat.ChannelType {
	switch {
	case c.IsIM:
		return chat.ChannelDirect
	case c.IsMpIM:
		return chat.ChannelGroup
	case c.IsPrivate || c.IsGroup:
		return chat.ChannelPrivate
	case c.IsChannel:
		return chat.ChannelPublic
	default:
		return chat.ChannelUnknown
	}
}

// messageFromSlack normalizes one Web API message. The channel ID is
// carried separately because history payloads omit it per message.
func messageFromSlack(m *slackapi.Msg, channelID string) chat.Message {
	authorID := m.User
	if authorID == "" {
		authorID = m.BotID
	}

	var author *chat.User
	if authorID != "" {
		author = &chat.User{ID: authorID, IsBot: m.BotID != ""}
	}

	var thread *chat.Thread
	if m.ThreadTimestamp != "" {
		thread = &chat.Thread{ID: m.ThreadTimestamp}
	}

	meta := make(map[string]string)
	if m.SubType != "" {
		meta["subtype"] = m.SubType
	}
	if m.Team != "" {
		meta["team"] = m.Team
	}
	if m.ReplyCount > 0 {
		meta["reply_count"] = strconv.Itoa(m.ReplyCount)
	}
	if len(meta) == 0 {
		meta = nil
	}

	return chat.Message{
		ID:        m.Timestamp,
		Content:   m.Text,
		Author:    author,
		AuthorID:  authorID,
		ChannelID: channelID,
		Thread:    thread,
		CreatedAt: tsToTime(m.Timestamp),
		Metadata:  meta,
	}
}

// tsToTime converts a Slack "seconds.fraction" timestamp. The zero
// time is returned for empty or malformed input.
func tsToTime(ts string) time.Time {
	if ts == "" {
		return time.Time{}
	}
	seconds, err := strconv.ParseFloat(ts, 64)
	if err != nil {
		return time.Time{}
	}
	return time.Unix(0, int64(seconds*float64(time.Second)))
}
