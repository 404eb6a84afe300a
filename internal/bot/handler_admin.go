// Package bot 管理员命令处理器
package bot

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-telegram/internal/i18n"
	"task-telegram/internal/logger"
	"task-telegram/internal/store"
	"task-telegram/pkg/timeutil"
	"task-telegram/pkg/validator"
)

// handleStats 处理 /stats 命令
func (b *Bot) handleStats(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	if !b.isAdmin(u.ID) {
		return i18n.T(u.Language, i18n.AccessDenied), nil
	}

	stats := b.store.GetStatistics()

	text := fmt.Sprintf(i18n.T(u.Language, i18n.BotStatistics),
		stats.TotalUsers,
		stats.TotalTasks,
		stats.CompletedTasks,
		stats.ActiveUsersToday,
		stats.BannedUsers,
	)

	// 原始计数器按名称排序附在后面
	if len(stats.Counters) > 0 {
		names := make([]string, 0, len(stats.Counters))
		for name := range stats.Counters {
			names = append(names, name)
		}
		sort.Strings(names)

		var sb strings.Builder
		sb.WriteString(text)
		sb.WriteString("\n")
		for _, name := range names {
			fmt.Fprintf(&sb, "\n• %s: %d", name, stats.Counters[name])
		}
		text = sb.String()
	}

	b.replyWithMarkup(msg.Chat.ID, text, AdminKeyboard())

	logger.InfoKV("admin viewed statistics", "user_id", u.ID)
	return "", nil
}

// handleBroadcast 处理 /broadcast 命令
func (b *Bot) handleBroadcast(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	if !b.isAdmin(u.ID) {
		return i18n.T(u.Language, i18n.AccessDenied), nil
	}

	b.stateMachine.SetState(u.ID, StateWaitingBroadcast, nil)
	b.replyWithMarkup(msg.Chat.ID, i18n.T(u.Language, i18n.EnterBroadcastMessage), CancelKeyboard(u.Language))

	logger.InfoKV("admin started broadcast", "user_id", u.ID)
	return "", nil
}

// sendBroadcast 把消息发给所有用户，返回成功/失败数
// 不重试，失败的接收者只计数并记录
func (b *Bot) sendBroadcast(text string) (successful, failed, total int) {
	users := b.store.ListUsers()

	for _, target := range users {
		send := tgbotapi.NewMessage(target.ID, text)
		if _, err := b.api.Send(send); err != nil {
			failed++
			logger.WarnKV("failed to send broadcast", "user_id", target.ID, "error", err)
			continue
		}
		successful++
	}

	return successful, failed, len(users)
}

// handleBan 处理 /ban 命令
// 带数字参数时直接封禁，否则进入等待输入状态
func (b *Bot) handleBan(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	if !b.isAdmin(u.ID) {
		return i18n.T(u.Language, i18n.AccessDenied), nil
	}

	if hasArg(args, 1) {
		targetID, err := validator.ParseUserID(getArg(args, 0))
		if err != nil {
			return i18n.T(u.Language, i18n.InvalidUserID), nil
		}
		return b.banUser(u, targetID)
	}

	b.stateMachine.SetState(u.ID, StateWaitingBanID, nil)
	b.replyWithMarkup(msg.Chat.ID, i18n.T(u.Language, i18n.EnterUserIDToBan), CancelKeyboard(u.Language))
	return "", nil
}

// banUser 封禁指定用户
func (b *Bot) banUser(admin *store.User, targetID int64) (string, error) {
	target, err := b.store.GetUser(targetID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return i18n.T(admin.Language, i18n.UserNotFound), nil
		}
		return "", err
	}

	if err := b.store.Ban(targetID); err != nil {
		return "", fmt.Errorf("ban user %d: %w", targetID, err)
	}

	logger.InfoKV("admin banned user", "admin_id", admin.ID, "user_id", targetID)
	return fmt.Sprintf(i18n.T(admin.Language, i18n.UserBanned), targetID, usernameOrUnknown(target)), nil
}

// handleUnban 处理 /unban 命令
func (b *Bot) handleUnban(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	if !b.isAdmin(u.ID) {
		return i18n.T(u.Language, i18n.AccessDenied), nil
	}

	if hasArg(args, 1) {
		targetID, err := validator.ParseUserID(getArg(args, 0))
		if err != nil {
			return i18n.T(u.Language, i18n.InvalidUserID), nil
		}
		return b.unbanUser(u, targetID)
	}

	b.stateMachine.SetState(u.ID, StateWaitingUnbanID, nil)
	b.replyWithMarkup(msg.Chat.ID, i18n.T(u.Language, i18n.EnterUserIDToUnban), CancelKeyboard(u.Language))
	return "", nil
}

// unbanUser 解封指定用户
func (b *Bot) unbanUser(admin *store.User, targetID int64) (string, error) {
	target, err := b.store.GetUser(targetID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return i18n.T(admin.Language, i18n.UserNotFound), nil
		}
		return "", err
	}

	if err := b.store.Unban(targetID); err != nil {
		return "", fmt.Errorf("unban user %d: %w", targetID, err)
	}

	logger.InfoKV("admin unbanned user", "admin_id", admin.ID, "user_id", targetID)
	return fmt.Sprintf(i18n.T(admin.Language, i18n.UserUnbanned), targetID, usernameOrUnknown(target)), nil
}

// handleListUsers 处理 /users 命令
func (b *Bot) handleListUsers(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	if !b.isAdmin(u.ID) {
		return i18n.T(u.Language, i18n.AccessDenied), nil
	}

	users := b.store.ListUsers()
	if len(users) == 0 {
		return "👥 No users yet", nil
	}

	// 注册时间升序展示
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.Before(users[j].CreatedAt)
	})

	var sb strings.Builder
	fmt.Fprintf(&sb, "👥 Users (%d):\n\n", len(users))
	for _, target := range users {
		banned := ""
		if b.store.IsBanned(target.ID) {
			banned = " 🚫"
		}
		fmt.Fprintf(&sb, "• %d %s%s\n  tasks: %d, registered: %s, last active: %s\n",
			target.ID,
			target.DisplayName(),
			banned,
			target.TaskCount,
			timeutil.FormatDate(target.CreatedAt),
			timeutil.FormatDateTime(target.LastActive),
		)
	}

	return sb.String(), nil
}

// usernameOrUnknown 用户名为空时返回占位值
func usernameOrUnknown(u *store.User) string {
	if u.Username == "" {
		return "Unknown"
	}
	return u.Username
}
