// Package bot 按钮菜单定义
package bot

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"task-telegram/internal/i18n"
	"task-telegram/internal/store"
)

// Callback Data 格式常量
const (
	// 语言选择
	CallbackLang = "lang" // lang:ru / lang:en

	// 任务操作
	CallbackTaskAdd      = "task:add"
	CallbackTaskManage   = "task:manage"
	CallbackTaskView     = "task:view"
	CallbackTaskComplete = "task:complete" // task:complete:taskID
	CallbackTaskDelete   = "task:delete"   // task:delete:taskID

	// 名言
	CallbackQuoteNew = "quote:new"

	// 管理员菜单
	CallbackAdminStats     = "admin:stats"
	CallbackAdminBroadcast = "admin:broadcast"
	CallbackAdminBan       = "admin:ban"
	CallbackAdminUnban     = "admin:unban"
	CallbackAdminUsers     = "admin:users"

	// 通用操作
	CallbackCancel = "cancel"
)

// maxTaskButtons 任务操作键盘最多展示的任务数
const maxTaskButtons = 10

// MainReplyKeyboard 主菜单回复键盘（显示在输入框下方）
func MainReplyKeyboard(lang store.Language, isAdmin bool) tgbotapi.ReplyKeyboardMarkup {
	rows := [][]tgbotapi.KeyboardButton{
		{
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnMyTasks)),
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnAddTask)),
		},
		{
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnGetQuote)),
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnLanguage)),
		},
	}

	// 管理员额外按钮
	if isAdmin {
		rows = append(rows, []tgbotapi.KeyboardButton{
			tgbotapi.NewKeyboardButton(i18n.T(lang, i18n.BtnAdminPanel)),
		})
	}

	kb := tgbotapi.NewReplyKeyboard(rows...)
	kb.ResizeKeyboard = true
	return kb
}

// LanguageKeyboard 语言选择键盘
func LanguageKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇷🇺 Русский", CallbackLang+":ru"),
			tgbotapi.NewInlineKeyboardButtonData("🇺🇸 English", CallbackLang+":en"),
		),
	)
}

// TasksKeyboard 任务列表下方的操作键盘
func TasksKeyboard(lang store.Language, hasTasks bool) tgbotapi.InlineKeyboardMarkup {
	rows := [][]tgbotapi.InlineKeyboardButton{
		{
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnAddTask), CallbackTaskAdd),
		},
	}

	if hasTasks {
		rows = append(rows, []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnManageTasks), CallbackTaskManage),
		})
	}

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// TaskActionsKeyboard 逐任务操作键盘：完成 + 删除
func TaskActionsKeyboard(tasks []*store.Task, lang store.Language) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton

	for _, t := range tasks {
		if len(rows) >= maxTaskButtons {
			break
		}

		status := "⭕"
		if t.Completed {
			status = "✅"
		}

		title := []rune(t.Title)
		if len(title) > 20 {
			title = append(title[:20], []rune("...")...)
		}

		row := []tgbotapi.InlineKeyboardButton{
			tgbotapi.NewInlineKeyboardButtonData(status+" "+string(title), CallbackTaskComplete+":"+t.ID),
			tgbotapi.NewInlineKeyboardButtonData("🗑️", CallbackTaskDelete+":"+t.ID),
		}

		rows = append(rows, row)
	}

	rows = append(rows, []tgbotapi.InlineKeyboardButton{
		tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnBack), CallbackTaskView),
	})

	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// CancelKeyboard 多步流程提示下方的取消键盘
func CancelKeyboard(lang store.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnCancel), CallbackCancel),
		),
	)
}

// QuoteKeyboard 名言下方的刷新键盘
func QuoteKeyboard(lang store.Language) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(i18n.T(lang, i18n.BtnGetQuote), CallbackQuoteNew),
		),
	)
}

// AdminKeyboard 管理员功能键盘
func AdminKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📊 Statistics", CallbackAdminStats),
			tgbotapi.NewInlineKeyboardButtonData("📢 Broadcast", CallbackAdminBroadcast),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🚫 Ban User", CallbackAdminBan),
			tgbotapi.NewInlineKeyboardButtonData("✅ Unban User", CallbackAdminUnban),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("👥 User List", CallbackAdminUsers),
		),
	)
}
