// Package bot 状态输入处理
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-telegram/internal/i18n"
	"task-telegram/internal/logger"
	"task-telegram/internal/store"
	"task-telegram/pkg/validator"
)

// handleStateInput 处理用户在状态机中的输入
func (b *Bot) handleStateInput(ctx context.Context, msg *tgbotapi.Message, currentUser *store.User, state UserState, stateData map[string]interface{}) {
	// 检查是否取消
	if msg.IsCommand() && msg.Command() == "cancel" {
		b.stateMachine.ClearState(currentUser.ID)
		b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.ActionCancelled))
		return
	}

	switch state {
	case StateWaitingTaskTitle:
		b.handleTaskTitleInput(ctx, msg, currentUser)
	case StateWaitingTaskDescription:
		b.handleTaskDescriptionInput(ctx, msg, currentUser, stateData)
	case StateWaitingTaskPriority:
		b.handleTaskPriorityInput(ctx, msg, currentUser, stateData)
	case StateWaitingBroadcast:
		b.handleBroadcastInput(ctx, msg, currentUser)
	case StateWaitingBanID:
		b.handleBanIDInput(ctx, msg, currentUser)
	case StateWaitingUnbanID:
		b.handleUnbanIDInput(ctx, msg, currentUser)
	default:
		b.stateMachine.ClearState(currentUser.ID)
		b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.SessionExpired))
	}
}

// handleTaskTitleInput 处理任务标题输入
func (b *Bot) handleTaskTitleInput(ctx context.Context, msg *tgbotapi.Message, currentUser *store.User) {
	title := validator.SanitizeText(msg.Text)

	// 标题校验在这里完成，存储层按约定不拒绝空标题
	if err := validator.ValidateTaskTitle(title); err != nil {
		b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.InvalidTaskTitle))
		return
	}

	b.stateMachine.SetState(currentUser.ID, StateWaitingTaskDescription, map[string]interface{}{
		"title": title,
	})

	b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.EnterTaskDescription))
	logger.InfoKV("user entered task title", "user_id", currentUser.ID, "title", title)
}

// handleTaskDescriptionInput 处理任务描述输入
func (b *Bot) handleTaskDescriptionInput(ctx context.Context, msg *tgbotapi.Message, currentUser *store.User, stateData map[string]interface{}) {
	description := validator.SanitizeText(msg.Text)
	if msg.IsCommand() && msg.Command() == "skip" {
		description = ""
	}

	if err := validator.ValidateTaskDescription(description); err != nil {
		b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.EnterTaskDescription))
		return
	}

	stateData["description"] = description
	b.stateMachine.SetState(currentUser.ID, StateWaitingTaskPriority, stateData)

	b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.EnterTaskPriority))
}

// handleTaskPriorityInput 处理任务优先级输入并创建任务
func (b *Bot) handleTaskPriorityInput(ctx context.Context, msg *tgbotapi.Message, currentUser *store.User, stateData map[string]interface{}) {
	priority := store.Priority(validator.NormalizePriority(msg.Text))

	title, _ := stateData["title"].(string)
	description, _ := stateData["description"].(string)

	taskID, err := b.store.AddTask(currentUser.ID, title, description, priority)
	if err != nil {
		logger.ErrorKV("failed to add task", "user_id", currentUser.ID, "error", err)
		b.stateMachine.ClearState(currentUser.ID)
		b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.InternalError))
		return
	}

	b.stateMachine.ClearState(currentUser.ID)

	text := fmt.Sprintf(i18n.T(currentUser.Language, i18n.TaskAdded), title)
	b.replyWithMarkup(msg.Chat.ID, text, TasksKeyboard(currentUser.Language, true))

	logger.InfoKV("user added task", "user_id", currentUser.ID, "task_id", taskID, "priority", string(priority))
}

// handleBroadcastInput 处理广播内容输入并发送
func (b *Bot) handleBroadcastInput(ctx context.Context, msg *tgbotapi.Message, currentUser *store.User) {
	b.stateMachine.ClearState(currentUser.ID)

	successful, failed, total := b.sendBroadcast(msg.Text)

	result := fmt.Sprintf(i18n.T(currentUser.Language, i18n.BroadcastResults), successful, failed, total)
	b.reply(msg.Chat.ID, result)

	logger.InfoKV("admin sent broadcast", "admin_id", currentUser.ID, "successful", successful, "failed", failed)
}

// handleBanIDInput 处理待封禁用户 ID 输入
func (b *Bot) handleBanIDInput(ctx context.Context, msg *tgbotapi.Message, currentUser *store.User) {
	targetID, err := validator.ParseUserID(msg.Text)
	if err != nil {
		b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.InvalidUserID))
		return
	}

	b.stateMachine.ClearState(currentUser.ID)

	reply, err := b.banUser(currentUser, targetID)
	b.sendHandlerResult(msg.Chat.ID, currentUser, reply, err)
}

// handleUnbanIDInput 处理待解封用户 ID 输入
func (b *Bot) handleUnbanIDInput(ctx context.Context, msg *tgbotapi.Message, currentUser *store.User) {
	targetID, err := validator.ParseUserID(msg.Text)
	if err != nil {
		b.reply(msg.Chat.ID, i18n.T(currentUser.Language, i18n.InvalidUserID))
		return
	}

	b.stateMachine.ClearState(currentUser.ID)

	reply, err := b.unbanUser(currentUser, targetID)
	b.sendHandlerResult(msg.Chat.ID, currentUser, reply, err)
}
