// Package bot 提供 Telegram Bot 功能
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-telegram/internal/i18n"
	"task-telegram/internal/logger"
	"task-telegram/internal/quote"
	"task-telegram/internal/store"
)

// telegramAPI Bot 依赖的 Telegram API 子集，测试中可替换
type telegramAPI interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(c tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot Telegram Bot 实例
type Bot struct {
	api          telegramAPI
	store        *store.Store
	quotes       *quote.Client
	adminIDs     map[int64]bool
	handlers     map[string]CommandHandler
	stateMachine *StateMachine // 状态机
	pollTimeout  int
}

// CommandHandler 命令处理函数类型
// 返回的字符串作为回复发送；返回空串表示处理器已自行发送
type CommandHandler func(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error)

// New 创建 Bot 实例
func New(token string, pollTimeout int, adminIDs []int64, st *store.Store, quotes *quote.Client) (*Bot, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("create bot api: %w", err)
	}
	logger.Infof("bot authorized: @%s", api.Self.UserName)

	b := newBot(api, pollTimeout, adminIDs, st, quotes)

	// 设置 Bot 命令菜单
	if err := b.setupBotCommands(); err != nil {
		logger.Warnf("failed to setup bot commands: %v", err)
	}

	return b, nil
}

// newBot 用已就绪的 API 组装 Bot 实例
func newBot(api telegramAPI, pollTimeout int, adminIDs []int64, st *store.Store, quotes *quote.Client) *Bot {
	// 创建管理员映射
	admins := make(map[int64]bool, len(adminIDs))
	for _, id := range adminIDs {
		admins[id] = true
	}

	b := &Bot{
		api:          api,
		store:        st,
		quotes:       quotes,
		adminIDs:     admins,
		handlers:     make(map[string]CommandHandler),
		stateMachine: NewStateMachine(),
		pollTimeout:  pollTimeout,
	}

	// 注册命令处理器
	b.registerHandlers()

	return b
}

// Start 启动 Bot
func (b *Bot) Start(ctx context.Context) error {
	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.pollTimeout

	updates := b.api.GetUpdatesChan(u)

	logger.Info("bot listening for messages")

	for {
		select {
		case <-ctx.Done():
			logger.Info("bot received stop signal")
			return ctx.Err()
		case update := <-updates:
			// 处理回调查询（按钮点击）
			if update.CallbackQuery != nil {
				go b.handleCallbackQuery(ctx, update.CallbackQuery)
				continue
			}

			// 处理消息
			if update.Message != nil {
				go b.handleUpdate(ctx, update.Message)
			}
		}
	}
}

// Stop 停止 Bot
func (b *Bot) Stop() {
	b.api.StopReceivingUpdates()
	b.stateMachine.Stop()
	logger.Info("bot stopped receiving updates")
}

// handleUpdate 处理消息更新
func (b *Bot) handleUpdate(ctx context.Context, msg *tgbotapi.Message) {
	userID := msg.From.ID

	// 封禁用户在注册和分发之前拦截
	if b.store.IsBanned(userID) {
		logger.WarnKV("banned user attempted to use bot", "user_id", userID)
		b.reply(msg.Chat.ID, i18n.T(store.LanguageRU, i18n.Banned)+"\n"+i18n.T(store.LanguageEN, i18n.Banned))
		return
	}

	// 隐式注册：首次交互创建记录，之后刷新活跃时间
	currentUser, err := b.store.AddOrTouchUser(userID, msg.From.UserName)
	if err != nil {
		logger.ErrorKV("failed to register user", "user_id", userID, "error", err)
		b.reply(msg.Chat.ID, i18n.T(store.LanguageRU, i18n.InternalError))
		return
	}

	if err := b.store.IncrementStatistic(store.StatTotalRequests, 1); err != nil {
		logger.WarnKV("failed to update request counter", "error", err)
	}

	// 处理命令
	// /cancel 和 /skip 属于进行中的对话流程，在有活动状态时交给状态机，
	// 其余命令优先于状态输入
	if msg.IsCommand() {
		if cmd := msg.Command(); cmd == "cancel" || cmd == "skip" {
			if state, stateData := b.stateMachine.GetState(userID); state != StateIdle {
				b.handleStateInput(ctx, msg, currentUser, state, stateData)
				return
			}
		}
		b.handleCommand(ctx, msg, currentUser)
		return
	}

	// 检查用户是否处于对话状态
	state, stateData := b.stateMachine.GetState(userID)
	if state != StateIdle {
		b.handleStateInput(ctx, msg, currentUser, state, stateData)
		return
	}

	// 处理 Reply Keyboard 按钮点击
	if b.handleReplyKeyboardButton(ctx, msg, currentUser) {
		return
	}

	// 处理普通消息
	b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.UnknownCommand))
}

// handleCommand 处理命令
func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message, currentUser *store.User) {
	cmd := msg.Command()
	args := parseArgs(msg.CommandArguments())

	logger.InfoKV("user executed command", "user", currentUser.DisplayName(), "command", cmd)

	if err := b.store.IncrementStatistic("command_"+cmd+"_usage", 1); err != nil {
		logger.WarnKV("failed to update command counter", "command", cmd, "error", err)
	}

	handler, ok := b.handlers[cmd]
	if !ok {
		b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.UnknownCommand))
		return
	}

	reply, err := handler(ctx, msg, currentUser, args)
	if err != nil {
		logger.ErrorKV("command execution failed", "command", cmd, "user_id", currentUser.ID, "error", err)
		b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.InternalError))
		return
	}

	if reply != "" {
		b.reply(msg.Chat.ID, reply)
	}
}

// handleReplyKeyboardButton 处理 Reply Keyboard 按钮点击
// 返回 true 表示已处理，false 表示不是按钮文本
func (b *Bot) handleReplyKeyboardButton(ctx context.Context, msg *tgbotapi.Message, currentUser *store.User) bool {
	switch {
	case i18n.IsButton(msg.Text, i18n.BtnMyTasks):
		reply, err := b.handleTasks(ctx, msg, currentUser, nil)
		b.sendHandlerResult(msg.Chat.ID, currentUser, reply, err)
	case i18n.IsButton(msg.Text, i18n.BtnAddTask):
		reply, err := b.handleAddTask(ctx, msg, currentUser, nil)
		b.sendHandlerResult(msg.Chat.ID, currentUser, reply, err)
	case i18n.IsButton(msg.Text, i18n.BtnGetQuote):
		reply, err := b.handleQuote(ctx, msg, currentUser, nil)
		b.sendHandlerResult(msg.Chat.ID, currentUser, reply, err)
	case i18n.IsButton(msg.Text, i18n.BtnLanguage):
		reply, err := b.handleLanguage(ctx, msg, currentUser, nil)
		b.sendHandlerResult(msg.Chat.ID, currentUser, reply, err)
	case i18n.IsButton(msg.Text, i18n.BtnAdminPanel):
		if !b.isAdmin(currentUser.ID) {
			b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.AccessDenied))
			return true
		}
		b.replyWithMarkup(msg.Chat.ID, i18n.T(currentUser.Language, i18n.AdminPanel), AdminKeyboard())
	default:
		return false
	}

	return true
}

// sendHandlerResult 发送处理器结果
func (b *Bot) sendHandlerResult(chatID int64, currentUser *store.User, reply string, err error) {
	if err != nil {
		logger.ErrorKV("handler failed", "user_id", currentUser.ID, "error", err)
		b.reply(chatID, i18n.T(currentUser.Language, i18n.InternalError))
		return
	}
	if reply != "" {
		b.reply(chatID, reply)
	}
}

// reply 回复消息
func (b *Bot) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)

	if _, err := b.api.Send(msg); err != nil {
		logger.Errorf("failed to send message: %v", err)
	}
}

// replyWithMarkup 带键盘回复消息
func (b *Bot) replyWithMarkup(chatID int64, text string, markup interface{}) {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ReplyMarkup = markup

	if _, err := b.api.Send(msg); err != nil {
		logger.Errorf("failed to send message: %v", err)
	}
}

// isAdmin 检查用户是否为管理员
func (b *Bot) isAdmin(userID int64) bool {
	return b.adminIDs[userID]
}

// setupBotCommands 设置 Bot 命令菜单（显示在输入框的 / 按钮中）
func (b *Bot) setupBotCommands() error {
	commands := []tgbotapi.BotCommand{
		{Command: "start", Description: "Начать работу / Start"},
		{Command: "tasks", Description: "Мои задачи / My tasks"},
		{Command: "addtask", Description: "Добавить задачу / Add task"},
		{Command: "quote", Description: "Мотивирующая цитата / Quote"},
		{Command: "language", Description: "Сменить язык / Language"},
		{Command: "help", Description: "Помощь / Help"},
	}

	cfg := tgbotapi.NewSetMyCommands(commands...)
	if _, err := b.api.Request(cfg); err != nil {
		return fmt.Errorf("set bot commands: %w", err)
	}

	return nil
}
