// Package bot 基础命令处理器
package bot

import (
	"context"
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-telegram/internal/i18n"
	"task-telegram/internal/store"
)

// handleStart 处理 /start 命令
func (b *Bot) handleStart(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	name := msg.From.FirstName
	if name == "" {
		name = "User"
	}

	welcome := fmt.Sprintf(i18n.T(u.Language, i18n.Welcome), name)
	b.replyWithMarkup(msg.Chat.ID, welcome, MainReplyKeyboard(u.Language, b.isAdmin(u.ID)))

	return "", nil
}

// handleHelp 处理 /help 命令
func (b *Bot) handleHelp(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	return i18n.T(u.Language, i18n.Help), nil
}

// handleLanguage 处理 /language 命令
func (b *Bot) handleLanguage(ctx context.Context, msg *tgbotapi.Message, u *store.User, args []string) (string, error) {
	b.replyWithMarkup(msg.Chat.ID, i18n.T(u.Language, i18n.ChooseLanguage), LanguageKeyboard())
	return "", nil
}
