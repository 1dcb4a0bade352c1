package chat

// User represents a user on a chat platform.
type User struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Handle    string `json:"handle,omitempty"`
	Email     string `json:"email,omitempty"`
	AvatarURL string `json:"avatar_url,omitempty"`
	IsBot     bool   `json:"is_bot,omitempty"`
}

// DisplayName returns the best available display name for the user.
func (u *User) DisplayName() string {
	if u.Name != "" {
		return u.Name
	}
	if u.Handle != "" {
		return u.Handle
	}
	return u.ID
}

// MentionName returns the best name to use when mentioning the user.
func (u *User) MentionName() string {
	if u.Handle != "" {
		return u.Handle
	}
	return u.Name
}
