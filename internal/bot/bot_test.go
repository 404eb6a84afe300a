package bot

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-telegram/internal/i18n"
	"task-telegram/internal/store"
)

// fakeAPI 记录发送内容的 API 替身，不触网
type fakeAPI struct {
	sent []tgbotapi.Chattable
}

func (f *fakeAPI) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.sent = append(f.sent, c)
	return tgbotapi.Message{MessageID: len(f.sent)}, nil
}

func (f *fakeAPI) Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func (f *fakeAPI) GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	return make(chan tgbotapi.Update)
}

func (f *fakeAPI) StopReceivingUpdates() {}

// lastMessage 最后发送的普通消息
func (f *fakeAPI) lastMessage(t *testing.T) tgbotapi.MessageConfig {
	t.Helper()
	require.NotEmpty(t, f.sent)
	msg, ok := f.sent[len(f.sent)-1].(tgbotapi.MessageConfig)
	require.True(t, ok, "last chattable is not a plain message")
	return msg
}

// newTestBot 组装带临时存储和 API 替身的 Bot，用户 1 是管理员
func newTestBot(t *testing.T) (*Bot, *fakeAPI) {
	t.Helper()

	st, err := store.Open(filepath.Join(t.TempDir(), "database.json"))
	require.NoError(t, err)

	api := &fakeAPI{}
	b := newBot(api, 60, []int64{1}, st, nil)
	t.Cleanup(b.stateMachine.Stop)

	return b, api
}

// commandMessage 带 bot_command 实体的消息，像真实客户端发送命令那样
func commandMessage(userID int64, text string) *tgbotapi.Message {
	cmdLen := len(text)
	if i := strings.Index(text, " "); i >= 0 {
		cmdLen = i
	}

	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, UserName: "alice"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
		Entities: []tgbotapi.MessageEntity{
			{Type: "bot_command", Offset: 0, Length: cmdLen},
		},
	}
}

// textMessage 普通文本消息
func textMessage(userID int64, text string) *tgbotapi.Message {
	return &tgbotapi.Message{
		MessageID: 1,
		From:      &tgbotapi.User{ID: userID, UserName: "alice"},
		Chat:      &tgbotapi.Chat{ID: userID},
		Text:      text,
	}
}

func TestHandleUpdate_SkipCommandReachesDescriptionStep(t *testing.T) {
	b, api := newTestBot(t)
	ctx := context.Background()

	b.stateMachine.SetState(42, StateWaitingTaskDescription, map[string]interface{}{
		"title": "Buy milk",
	})

	// /skip 带命令实体到达，必须进入状态流程而不是命令分发
	b.handleUpdate(ctx, commandMessage(42, "/skip"))

	state, data := b.stateMachine.GetState(42)
	assert.Equal(t, StateWaitingTaskPriority, state)
	assert.Equal(t, "", data["description"])
	assert.Equal(t, i18n.T(store.LanguageRU, i18n.EnterTaskPriority), api.lastMessage(t).Text)

	// 流程走到头：输入优先级后任务以空描述落库
	b.handleUpdate(ctx, textMessage(42, "high"))

	tasks := b.store.ListTasksForUser(42)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Buy milk", tasks[0].Title)
	assert.Equal(t, "", tasks[0].Description)
	assert.Equal(t, store.PriorityHigh, tasks[0].Priority)

	state, _ = b.stateMachine.GetState(42)
	assert.Equal(t, StateIdle, state)
}

func TestHandleUpdate_CancelCommandClearsFlow(t *testing.T) {
	b, api := newTestBot(t)

	b.stateMachine.SetState(42, StateWaitingTaskTitle, nil)

	b.handleUpdate(context.Background(), commandMessage(42, "/cancel"))

	state, _ := b.stateMachine.GetState(42)
	assert.Equal(t, StateIdle, state)
	assert.Equal(t, i18n.T(store.LanguageRU, i18n.ActionCancelled), api.lastMessage(t).Text)
}

func TestHandleUpdate_SkipWithoutFlowIsUnknownCommand(t *testing.T) {
	b, api := newTestBot(t)

	// 没有活动状态时 /skip 不在命令表里
	b.handleUpdate(context.Background(), commandMessage(42, "/skip"))

	assert.Equal(t, i18n.T(store.LanguageRU, i18n.UnknownCommand), api.lastMessage(t).Text)
}

func TestHandleUpdate_OtherCommandsBypassFlow(t *testing.T) {
	b, api := newTestBot(t)

	// /help 在对话流程中仍然按命令处理，不会被当成任务标题
	b.stateMachine.SetState(42, StateWaitingTaskTitle, nil)

	b.handleUpdate(context.Background(), commandMessage(42, "/help"))

	assert.Equal(t, i18n.T(store.LanguageRU, i18n.Help), api.lastMessage(t).Text)
	assert.Empty(t, b.store.ListTasksForUser(42))
}

func TestHandleUpdate_BannedUserRejectedBeforeRegistration(t *testing.T) {
	b, api := newTestBot(t)

	require.NoError(t, b.store.Ban(42))

	b.handleUpdate(context.Background(), commandMessage(42, "/start"))

	assert.Contains(t, api.lastMessage(t).Text, i18n.T(store.LanguageRU, i18n.Banned))
	_, err := b.store.GetUser(42)
	assert.ErrorIs(t, err, store.ErrUserNotFound)
}

func TestHandleUpdate_AddTaskPromptCarriesCancelButton(t *testing.T) {
	b, api := newTestBot(t)

	b.handleUpdate(context.Background(), commandMessage(42, "/addtask"))

	msg := api.lastMessage(t)
	assert.Equal(t, i18n.T(store.LanguageRU, i18n.EnterTaskTitle), msg.Text)
	assert.Equal(t, CancelKeyboard(store.LanguageRU), msg.ReplyMarkup)

	state, _ := b.stateMachine.GetState(42)
	assert.Equal(t, StateWaitingTaskTitle, state)
}

func TestHandleCallbackQuery_CancelClearsState(t *testing.T) {
	b, _ := newTestBot(t)

	b.stateMachine.SetState(42, StateWaitingBroadcast, nil)

	query := &tgbotapi.CallbackQuery{
		ID:      "q1",
		From:    &tgbotapi.User{ID: 42, UserName: "alice"},
		Data:    CallbackCancel,
		Message: &tgbotapi.Message{MessageID: 5, Chat: &tgbotapi.Chat{ID: 42}},
	}
	b.handleCallbackQuery(context.Background(), query)

	state, _ := b.stateMachine.GetState(42)
	assert.Equal(t, StateIdle, state)
}

func TestHandleListUsers_ShowsRegistrationDate(t *testing.T) {
	b, _ := newTestBot(t)

	_, err := b.store.AddOrTouchUser(42, "alice")
	require.NoError(t, err)

	admin := &store.User{ID: 1, Language: store.LanguageEN}
	reply, err := b.handleListUsers(context.Background(), nil, admin, nil)
	require.NoError(t, err)

	assert.Contains(t, reply, "@alice")
	assert.Contains(t, reply, "registered:")
	assert.Contains(t, reply, "last active:")
}
