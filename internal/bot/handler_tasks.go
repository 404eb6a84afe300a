// Package bot 任务命令处理器
package bot

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-telegram/internal/i18n"
	"task-telegram/internal/logger"
	"task-telegram/internal/store"
	"task-telegram/pkg/timeutil"
)

// priorityEmoji 优先级对应的标记
var priorityEmoji = map[store.Priority]string{
	store.PriorityHigh:   "🔴",
	store.PriorityMedium: "🟡",
	store.PriorityLow:    "🟢",
}

// handleTasks 处理 /tasks 命令，展示用户的全部任务
func (b *Bot) handleTasks(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	tasks := b.store.ListTasksForUser(u.ID)

	if len(tasks) == 0 {
		b.replyWithMarkup(msg.Chat.ID, i18n.T(u.Language, i18n.NoTasks), TasksKeyboard(u.Language, false))
		return "", nil
	}

	b.replyWithMarkup(msg.Chat.ID, formatTaskList(tasks, u.Language), TasksKeyboard(u.Language, true))

	logger.InfoKV("user viewed tasks", "user_id", u.ID, "count", len(tasks))
	return "", nil
}

// formatTaskList 格式化任务列表文本
func formatTaskList(tasks []*store.Task, lang store.Language) string {
	var sb strings.Builder
	sb.WriteString(i18n.T(lang, i18n.YourTasks))
	sb.WriteString("\n\n")

	for i, t := range tasks {
		status := "⭕"
		if t.Completed {
			status = "✅"
		}

		emoji, ok := priorityEmoji[t.Priority]
		if !ok {
			emoji = priorityEmoji[store.PriorityMedium]
		}

		fmt.Fprintf(&sb, "%d. %s %s %s\n", i+1, status, emoji, t.Title)
		if t.Description != "" {
			fmt.Fprintf(&sb, "   📝 %s\n", t.Description)
		}
		fmt.Fprintf(&sb, "   📅 %s\n\n", timeutil.FormatDateTime(t.CreatedAt))
	}

	return sb.String()
}

// handleAddTask 处理 /addtask 命令，开启多步创建流程
func (b *Bot) handleAddTask(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	b.stateMachine.SetState(u.ID, StateWaitingTaskTitle, nil)
	b.replyWithMarkup(msg.Chat.ID, i18n.T(u.Language, i18n.EnterTaskTitle), CancelKeyboard(u.Language))

	logger.InfoKV("user started adding task", "user_id", u.ID)
	return "", nil
}
