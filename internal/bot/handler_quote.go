// Package bot 名言命令处理器
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-telegram/internal/i18n"
	"task-telegram/internal/logger"
	"task-telegram/internal/store"
	"task-telegram/pkg/timeutil"
)

// handleQuote 处理 /quote 命令
func (b *Bot) handleQuote(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	if err := b.store.IncrementStatistic(store.StatTotalQuotesRequested, 1); err != nil {
		logger.WarnKV("failed to update quote counter", "error", err)
	}

	// 发送加载提示，拿到结果后编辑为名言
	loading := tgbotapi.NewMessage(msg.Chat.ID, i18n.T(u.Language, i18n.LoadingQuote))
	sent, err := b.api.Send(loading)
	if err != nil {
		return "", fmt.Errorf("send loading message: %w", err)
	}

	q := b.quotes.Random(ctx)
	if q == nil {
		// 所有失败类型统一渲染为同一条提示
		edit := tgbotapi.NewEditMessageText(msg.Chat.ID, sent.MessageID, i18n.T(u.Language, i18n.QuoteAPIError))
		if _, err := b.api.Send(edit); err != nil {
			logger.Errorf("failed to edit message: %v", err)
		}
		logger.WarnKV("no quote data received", "user_id", u.ID)
		return "", nil
	}

	text := fmt.Sprintf("💭 \"%s\"\n\n— %s", q.Text, q.Author)
	edit := tgbotapi.NewEditMessageTextAndMarkup(msg.Chat.ID, sent.MessageID, text, QuoteKeyboard(u.Language))
	if _, err := b.api.Send(edit); err != nil {
		logger.Errorf("failed to edit message: %v", err)
	}

	logger.InfoKV("user received quote", "user_id", u.ID, "author", q.Author)
	return "", nil
}

// handleCacheStatus 处理 /cachestatus 命令（管理员诊断）
func (b *Bot) handleCacheStatus(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	if !b.isAdmin(u.ID) {
		return i18n.T(u.Language, i18n.AccessDenied), nil
	}

	status := b.quotes.Status()
	if !status.Cached {
		return fmt.Sprintf("🗄 Quote cache: empty (ttl %s)", timeutil.FormatDuration(status.TTL)), nil
	}

	state := "valid"
	if status.Expired {
		state = "expired"
	}

	return fmt.Sprintf("🗄 Quote cache: %s\nage: %s\nttl: %s",
		state,
		timeutil.FormatDuration(status.Age),
		timeutil.FormatDuration(status.TTL),
	), nil
}
