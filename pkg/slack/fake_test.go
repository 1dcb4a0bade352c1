package slack

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	slackapi "github.com/slack-go/slack"

	"chatbridge/pkg/chat"
	"chatbridge/pkg/config"
)

// fakeAPI is an in-memory recording double for the webAPI interface.
type fakeAPI struct {
	mu sync.Mutex

	authResp *slackapi.AuthTestResponse
	authErr  error

	users         map[string]slackapi.User
	userInfoCalls int
	userList      []slackapi.User

	channels         map[string]slackapi.Channel
	channelInfoCalls int
	channelPages     [][]slackapi.Channel

	historyResp   *slackapi.GetConversationHistoryResponse
	historyErr    error
	historyParams *slackapi.GetConversationHistoryParameters

	searchResp  *slackapi.SearchMessages
	searchQuery string

	postTS       string
	postChannels []string
	postErr      error

	updateErr error
	deleted   []string

	reactAddErr    error
	reactRemoveErr error
	reactionsAdded []string

	presenceResp *slackapi.UserPresence
	presenceSet  []string
	statusSet    []string

	openedChannel  *slackapi.Channel
	openedUsers    []string
	createdChannel *slackapi.Channel
	createParams   slackapi.CreateConversationParams
	purposes       []string
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{
		authResp: &slackapi.AuthTestResponse{
			Team:   "testteam",
			User:   "bridgebot",
			TeamID: "T1",
			UserID: "UBOT",
		},
		users:    make(map[string]slackapi.User),
		channels: make(map[string]slackapi.Channel),
		postTS:   "1700000100.000100",
	}
}

func (f *fakeAPI) AuthTestContext(context.Context) (*slackapi.AuthTestResponse, error) {
	if f.authErr != nil {
		return nil, f.authErr
	}
	return f.authResp, nil
}

func (f *fakeAPI) GetUserInfoContext(_ context.Context, user string) (*slackapi.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.userInfoCalls++
	found, ok := f.users[user]
	if !ok {
		return nil, errors.New("user_not_found")
	}
	return &found, nil
}

func (f *fakeAPI) GetUserByEmailContext(_ context.Context, email string) (*slackapi.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Profile.Email == email {
			return &u, nil
		}
	}
	return nil, errors.New("users_not_found")
}

func (f *fakeAPI) GetUsersContext(context.Context, ...slackapi.GetUsersOption) ([]slackapi.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.userList, nil
}

func (f *fakeAPI) GetConversationInfoContext(_ context.Context, input *slackapi.GetConversationInfoInput) (*slackapi.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channelInfoCalls++
	found, ok := f.channels[input.ChannelID]
	if !ok {
		return nil, errors.New("channel_not_found")
	}
	return &found, nil
}

func (f *fakeAPI) GetConversationsContext(_ context.Context, params *slackapi.GetConversationsParameters) ([]slackapi.Channel, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	page := 0
	if params.Cursor != "" {
		page = int(params.Cursor[len(params.Cursor)-1] - '0')
	}
	if page >= len(f.channelPages) {
		return nil, "", nil
	}

	next := ""
	if page+1 < len(f.channelPages) {
		next = "cursor" + string(rune('0'+page+1))
	}
	return f.channelPages[page], next, nil
}

func (f *fakeAPI) OpenConversationContext(_ context.Context, params *slackapi.OpenConversationParameters) (*slackapi.Channel, bool, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.openedUsers = params.Users
	if f.openedChannel == nil {
		return nil, false, false, errors.New("cannot_dm_bot")
	}
	return f.openedChannel, false, false, nil
}

func (f *fakeAPI) CreateConversationContext(_ context.Context, params slackapi.CreateConversationParams) (*slackapi.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createParams = params
	if f.createdChannel == nil {
		return nil, errors.New("name_taken")
	}
	return f.createdChannel, nil
}

func (f *fakeAPI) SetPurposeOfConversationContext(_ context.Context, _, purpose string) (*slackapi.Channel, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.purposes = append(f.purposes, purpose)
	return nil, nil
}

func (f *fakeAPI) GetConversationHistoryContext(_ context.Context, params *slackapi.GetConversationHistoryParameters) (*slackapi.GetConversationHistoryResponse, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyParams = params
	if f.historyErr != nil {
		return nil, f.historyErr
	}
	return f.historyResp, nil
}

func (f *fakeAPI) SearchMessagesContext(_ context.Context, query string, _ slackapi.SearchParameters) (*slackapi.SearchMessages, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.searchQuery = query
	if f.searchResp == nil {
		return &slackapi.SearchMessages{}, nil
	}
	return f.searchResp, nil
}

func (f *fakeAPI) PostMessageContext(_ context.Context, channelID string, _ ...slackapi.MsgOption) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.postErr != nil {
		return "", "", f.postErr
	}
	f.postChannels = append(f.postChannels, channelID)
	return channelID, f.postTS, nil
}

func (f *fakeAPI) UpdateMessageContext(_ context.Context, channelID, timestamp string, _ ...slackapi.MsgOption) (string, string, string, error) {
	if f.updateErr != nil {
		return "", "", "", f.updateErr
	}
	return channelID, timestamp, "", nil
}

func (f *fakeAPI) DeleteMessageContext(_ context.Context, channel, messageTimestamp string) (string, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, channel+"/"+messageTimestamp)
	return channel, messageTimestamp, nil
}

func (f *fakeAPI) AddReactionContext(_ context.Context, name string, _ slackapi.ItemRef) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.reactAddErr != nil {
		return f.reactAddErr
	}
	f.reactionsAdded = append(f.reactionsAdded, name)
	return nil
}

func (f *fakeAPI) RemoveReactionContext(_ context.Context, _ string, _ slackapi.ItemRef) error {
	return f.reactRemoveErr
}

func (f *fakeAPI) GetUserPresenceContext(context.Context, string) (*slackapi.UserPresence, error) {
	if f.presenceResp == nil {
		return nil, errors.New("user_not_found")
	}
	return f.presenceResp, nil
}

func (f *fakeAPI) SetUserPresenceContext(_ context.Context, presence string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.presenceSet = append(f.presenceSet, presence)
	return nil
}

func (f *fakeAPI) SetUserCustomStatusContext(_ context.Context, statusText, _ string, _ int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.statusSet = append(f.statusSet, statusText)
	return nil
}

var _ webAPI = (*fakeAPI)(nil)

// newTestBackend wires a connected backend around a fake API.
func newTestBackend(api webAPI) *Backend {
	b := &Backend{
		cfg: config.SlackConfig{
			Enabled:  true,
			BotToken: "xoxb-test",
			AppToken: "xapp-test",
		},
		log:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		api:      api,
		users:    newStore[chat.User](),
		channels: newStore[chat.Channel](),
	}
	b.connected = true
	b.botUserID = "UBOT"
	b.botUserName = "bridgebot"
	return b
}
