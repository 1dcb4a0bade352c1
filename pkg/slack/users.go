package slack

import (
	"context"
	"strings"

	"chatbridge/pkg/chat"
)

// FetchUser resolves a user by ID, email, handle, or name, in that
// order of preference. Lookups are best-effort: a missing or
// unresolvable user is reported as (nil, nil).
func (b *Backend) FetchUser(ctx context.Context, query chat.UserQuery) (*chat.User, error) {
	if err := b.ensureConnected(); err != nil {
		return nil, err
	}

	if query.ID != "" {
		user, err := b.resolveUser(ctx, query.ID)
		if err != nil {
			b.log.Debug("User lookup failed", "user_id", query.ID, "error", err)
			return nil, nil
		}
		return user, nil
	}

	if query.Email != "" {
		found, err := b.api.GetUserByEmailContext(ctx, query.Email)
		if err != nil {
			b.log.Debug("User lookup by email failed", "email", query.Email, "error", err)
			return nil, nil
		}
		user := userFromSlack(found)
		b.users.put(user.ID, user)
		return user, nil
	}

	if query.Handle != "" || query.Name != "" {
		return b.searchUser(ctx, query.Handle, query.Name)
	}

	return nil, nil
}

// searchUser scans the member list for a handle or display/real name
// match. The client pages through users.list internally.
func (b *Backend) searchUser(ctx context.Context, handle, name string) (*chat.User, error) {
	members, err := b.api.GetUsersContext(ctx)
	if err != nil {
		b.log.Debug("User list failed", "error", err)
		return nil, nil
	}

	for i := range members {
		member := &members[i]
		if handle != "" && strings.EqualFold(member.Name, handle) {
			user := userFromSlack(member)
			b.users.put(user.ID, user)
			return user, nil
		}
		if name != "" {
			if strings.EqualFold(member.Profile.DisplayName, name) ||
				strings.EqualFold(member.RealName, name) ||
				strings.EqualFold(member.Name, name) {
				user := userFromSlack(member)
				b.users.put(user.ID, user)
				return user, nil
			}
		}
	}

	return nil, nil
}

// resolveUser fetches one user by ID, memo-first.
func (b *Backend) resolveUser(ctx context.Context, id string) (*chat.User, error) {
	if cached, ok := b.users.get(id); ok {
		return cached, nil
	}

	found, err := b.api.GetUserInfoContext(ctx, id)
	if err != nil {
		return nil, err
	}

	user := userFromSlack(found)
	b.users.put(user.ID, user)
	return user, nil
}

// BotInfo returns the connected bot identity, preferring the full user
// record and falling back to the auth.test fields cached at Connect.
func (b *Backend) BotInfo(ctx context.Context) (*chat.User, error) {
	if err := b.ensureConnected(); err != nil {
		return nil, err
	}

	id, name := b.botIdentity()
	if id == "" {
		return nil, nil
	}

	if user, err := b.resolveUser(ctx, id); err == nil && user != nil {
		return user, nil
	}

	return &chat.User{ID: id, Name: name, Handle: name, IsBot: true}, nil
}
