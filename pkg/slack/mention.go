package slack

import (
	"fmt"

	"chatbridge/pkg/chat"
)

// MentionUser formats a Slack user mention (<@user_id>).
func (b *Backend) MentionUser(user *chat.User) string {
	return fmt.Sprintf("<@%s>", user.ID)
}

// MentionChannel formats a Slack channel mention (<#channel_id>).
func (b *Backend) MentionChannel(channel *chat.Channel) string {
	return fmt.Sprintf("<#%s>", channel.ID)
}

// MentionHere notifies the active members of the current channel.
func (b *Backend) MentionHere() string {
	return "<!here>"
}

// MentionEveryone notifies every workspace member.
func (b *Backend) MentionEveryone() string {
	return "<!everyone>"
}

// MentionChannelAll notifies all members of the current channel.
func (b *Backend) MentionChannelAll() string {
	return "<!channel>"
}

// MentionUserGroup formats a Slack user-group mention (<!subteam^ID>).
func (b *Backend) MentionUserGroup(groupID string) string {
	return fmt.Sprintf("<!subteam^%s>", groupID)
}
