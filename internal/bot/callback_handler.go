// Package bot 按钮回调处理器
package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-telegram/internal/i18n"
	"task-telegram/internal/logger"
	"task-telegram/internal/store"
)

// CallbackResponse 回调响应结构
type CallbackResponse struct {
	Answer     string                         // Callback answer 提示文本
	ShowAlert  bool                           // 是否显示为弹窗
	EditText   string                         // 要编辑的消息文本
	EditMarkup *tgbotapi.InlineKeyboardMarkup // 要编辑的按钮
	NewMessage string                         // 发送新消息
	NewMarkup  interface{}                    // 新消息的按钮
}

// handleCallbackQuery 处理按钮回调
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	userID := query.From.ID

	// 封禁用户在注册和分发之前拦截
	if b.store.IsBanned(userID) {
		b.answerCallback(query.ID, i18n.T(store.LanguageRU, i18n.Banned), true)
		return
	}

	currentUser, err := b.store.AddOrTouchUser(userID, query.From.UserName)
	if err != nil {
		logger.ErrorKV("failed to register user", "user_id", userID, "error", err)
		b.answerCallback(query.ID, i18n.T(store.LanguageRU, i18n.InternalError), true)
		return
	}

	if err := b.store.IncrementStatistic(store.StatTotalRequests, 1); err != nil {
		logger.WarnKV("failed to update request counter", "error", err)
	}

	// 解析 callback data
	parts := strings.Split(query.Data, ":")
	if len(parts) == 0 {
		b.answerCallback(query.ID, "", false)
		return
	}

	logger.InfoKV("user clicked button", "user", currentUser.DisplayName(), "data", query.Data)

	// 路由到对应的处理函数
	var response CallbackResponse
	switch parts[0] {
	case "lang":
		response = b.handleLangCallback(ctx, parts, currentUser)
	case "task":
		response = b.handleTaskCallback(ctx, parts, currentUser)
	case "quote":
		response = b.handleQuoteCallback(ctx, currentUser)
	case "admin":
		response = b.handleAdminCallback(ctx, parts, currentUser)
	case "cancel":
		b.stateMachine.ClearState(currentUser.ID)
		response = CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.ActionCancelled)}
	default:
		response = CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.UnknownCommand), ShowAlert: true}
	}

	b.sendCallbackResponse(query, response)
}

// handleLangCallback 处理语言选择回调
func (b *Bot) handleLangCallback(ctx context.Context, parts []string, currentUser *store.User) CallbackResponse {
	if len(parts) < 2 {
		return CallbackResponse{}
	}

	lang := store.Language(parts[1])
	if !lang.Valid() {
		return CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.UnknownCommand), ShowAlert: true}
	}

	if err := b.store.SetUserLanguage(currentUser.ID, lang); err != nil {
		logger.ErrorKV("failed to set language", "user_id", currentUser.ID, "error", err)
		return CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.InternalError), ShowAlert: true}
	}

	logger.InfoKV("user changed language", "user_id", currentUser.ID, "language", string(lang))

	// 用新语言重发主菜单键盘
	markup := MainReplyKeyboard(lang, b.isAdmin(currentUser.ID))
	return CallbackResponse{
		EditText:   i18n.T(lang, i18n.LanguageChanged),
		NewMessage: i18n.T(lang, i18n.TaskManagement),
		NewMarkup:  markup,
	}
}

// handleTaskCallback 处理任务相关回调
func (b *Bot) handleTaskCallback(ctx context.Context, parts []string, currentUser *store.User) CallbackResponse {
	if len(parts) < 2 {
		return CallbackResponse{}
	}

	lang := currentUser.Language

	switch parts[1] {
	case "add":
		b.stateMachine.SetState(currentUser.ID, StateWaitingTaskTitle, nil)
		return CallbackResponse{
			NewMessage: i18n.T(lang, i18n.EnterTaskTitle),
			NewMarkup:  CancelKeyboard(lang),
		}

	case "manage":
		tasks := b.store.ListTasksForUser(currentUser.ID)
		if len(tasks) == 0 {
			return CallbackResponse{EditText: i18n.T(lang, i18n.NoTasks)}
		}
		markup := TaskActionsKeyboard(tasks, lang)
		return CallbackResponse{
			EditText:   i18n.T(lang, i18n.SelectTaskAction),
			EditMarkup: &markup,
		}

	case "view":
		tasks := b.store.ListTasksForUser(currentUser.ID)
		if len(tasks) == 0 {
			return CallbackResponse{EditText: i18n.T(lang, i18n.NoTasks)}
		}
		markup := TasksKeyboard(lang, true)
		return CallbackResponse{
			EditText:   formatTaskList(tasks, lang),
			EditMarkup: &markup,
		}

	case "complete":
		if len(parts) < 3 {
			return CallbackResponse{}
		}
		return b.completeTaskCallback(parts[2], currentUser)

	case "delete":
		if len(parts) < 3 {
			return CallbackResponse{}
		}
		return b.deleteTaskCallback(parts[2], currentUser)

	default:
		return CallbackResponse{Answer: i18n.T(lang, i18n.UnknownCommand), ShowAlert: true}
	}
}

// completeTaskCallback 标记任务完成
func (b *Bot) completeTaskCallback(taskID string, currentUser *store.User) CallbackResponse {
	task, err := b.ownedTask(taskID, currentUser)
	if err != nil {
		return CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.UnknownCommand), ShowAlert: true}
	}

	if err := b.store.SetTaskCompleted(taskID, true); err != nil {
		logger.ErrorKV("failed to complete task", "task_id", taskID, "error", err)
		return CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.InternalError), ShowAlert: true}
	}

	logger.InfoKV("user completed task", "user_id", currentUser.ID, "task_id", taskID)
	return CallbackResponse{EditText: fmt.Sprintf(i18n.T(currentUser.Language, i18n.TaskCompleted), task.Title)}
}

// deleteTaskCallback 删除任务
func (b *Bot) deleteTaskCallback(taskID string, currentUser *store.User) CallbackResponse {
	task, err := b.ownedTask(taskID, currentUser)
	if err != nil {
		return CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.UnknownCommand), ShowAlert: true}
	}

	if err := b.store.DeleteTask(taskID); err != nil {
		logger.ErrorKV("failed to delete task", "task_id", taskID, "error", err)
		return CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.InternalError), ShowAlert: true}
	}

	logger.InfoKV("user deleted task", "user_id", currentUser.ID, "task_id", taskID)
	return CallbackResponse{EditText: fmt.Sprintf(i18n.T(currentUser.Language, i18n.TaskDeleted), task.Title)}
}

// ownedTask 获取任务并校验归属
func (b *Bot) ownedTask(taskID string, currentUser *store.User) (*store.Task, error) {
	task, err := b.store.GetTask(taskID)
	if err != nil {
		return nil, err
	}

	if task.UserID != currentUser.ID {
		logger.WarnKV("user touched foreign task", "user_id", currentUser.ID, "task_id", taskID)
		return nil, errors.New("task belongs to another user")
	}

	return task, nil
}

// handleQuoteCallback 处理名言刷新回调
func (b *Bot) handleQuoteCallback(ctx context.Context, currentUser *store.User) CallbackResponse {
	if err := b.store.IncrementStatistic(store.StatTotalQuotesRequested, 1); err != nil {
		logger.WarnKV("failed to update quote counter", "error", err)
	}

	q := b.quotes.Random(ctx)
	if q == nil {
		return CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.QuoteAPIError), ShowAlert: true}
	}

	markup := QuoteKeyboard(currentUser.Language)
	return CallbackResponse{
		EditText:   fmt.Sprintf("💭 \"%s\"\n\n— %s", q.Text, q.Author),
		EditMarkup: &markup,
	}
}

// handleAdminCallback 处理管理员菜单回调
func (b *Bot) handleAdminCallback(ctx context.Context, parts []string, currentUser *store.User) CallbackResponse {
	if !b.isAdmin(currentUser.ID) {
		return CallbackResponse{Answer: i18n.T(currentUser.Language, i18n.AccessDenied), ShowAlert: true}
	}

	if len(parts) < 2 {
		return CallbackResponse{}
	}

	lang := currentUser.Language

	switch parts[1] {
	case "stats":
		stats := b.store.GetStatistics()
		return CallbackResponse{
			NewMessage: fmt.Sprintf(i18n.T(lang, i18n.BotStatistics),
				stats.TotalUsers,
				stats.TotalTasks,
				stats.CompletedTasks,
				stats.ActiveUsersToday,
				stats.BannedUsers,
			),
		}

	case "broadcast":
		b.stateMachine.SetState(currentUser.ID, StateWaitingBroadcast, nil)
		return CallbackResponse{
			NewMessage: i18n.T(lang, i18n.EnterBroadcastMessage),
			NewMarkup:  CancelKeyboard(lang),
		}

	case "ban":
		b.stateMachine.SetState(currentUser.ID, StateWaitingBanID, nil)
		return CallbackResponse{
			NewMessage: i18n.T(lang, i18n.EnterUserIDToBan),
			NewMarkup:  CancelKeyboard(lang),
		}

	case "unban":
		b.stateMachine.SetState(currentUser.ID, StateWaitingUnbanID, nil)
		return CallbackResponse{
			NewMessage: i18n.T(lang, i18n.EnterUserIDToUnban),
			NewMarkup:  CancelKeyboard(lang),
		}

	case "users":
		// 复用命令处理器的列表格式
		reply, err := b.handleListUsers(ctx, nil, currentUser, nil)
		if err != nil {
			logger.ErrorKV("failed to list users", "error", err)
			return CallbackResponse{Answer: i18n.T(lang, i18n.InternalError), ShowAlert: true}
		}
		return CallbackResponse{NewMessage: reply}

	default:
		return CallbackResponse{Answer: i18n.T(lang, i18n.UnknownCommand), ShowAlert: true}
	}
}

// sendCallbackResponse 发送回调响应
func (b *Bot) sendCallbackResponse(query *tgbotapi.CallbackQuery, response CallbackResponse) {
	b.answerCallback(query.ID, response.Answer, response.ShowAlert)

	if query.Message == nil {
		return
	}
	chatID := query.Message.Chat.ID

	if response.EditText != "" {
		var edit tgbotapi.Chattable
		if response.EditMarkup != nil {
			edit = tgbotapi.NewEditMessageTextAndMarkup(chatID, query.Message.MessageID, response.EditText, *response.EditMarkup)
		} else {
			edit = tgbotapi.NewEditMessageText(chatID, query.Message.MessageID, response.EditText)
		}
		if _, err := b.api.Send(edit); err != nil {
			logger.Errorf("failed to edit message: %v", err)
		}
	}

	if response.NewMessage != "" {
		msg := tgbotapi.NewMessage(chatID, response.NewMessage)
		if response.NewMarkup != nil {
			msg.ReplyMarkup = response.NewMarkup
		}
		if _, err := b.api.Send(msg); err != nil {
			logger.Errorf("failed to send message: %v", err)
		}
	}
}

// answerCallback 应答回调查询
func (b *Bot) answerCallback(id, text string, showAlert bool) {
	callback := tgbotapi.NewCallback(id, text)
	callback.ShowAlert = showAlert

	if _, err := b.api.Request(callback); err != nil {
		logger.Errorf("failed to answer callback: %v", err)
	}
}
