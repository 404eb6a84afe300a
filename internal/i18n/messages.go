// Package i18n 提供 ru/en 双语消息目录
//
// 消息按键查找，未知语言回退到 ru，未知键返回 [key] 占位符。
package i18n

import (
	"task-telegram/internal/logger"
	"task-telegram/internal/store"
)

// 消息键
const (
	Welcome         = "welcome"
	Help            = "help"
	ChooseLanguage  = "choose_language"
	LanguageChanged = "language_changed"

	YourTasks            = "your_tasks"
	NoTasks              = "no_tasks"
	EnterTaskTitle       = "enter_task_title"
	EnterTaskDescription = "enter_task_description"
	EnterTaskPriority    = "enter_task_priority"
	InvalidTaskTitle     = "invalid_task_title"
	TaskAdded            = "task_added"
	TaskCompleted        = "task_completed"
	TaskDeleted          = "task_deleted"
	SelectTaskAction     = "select_task_action"
	TaskManagement       = "task_management"

	LoadingQuote  = "loading_quote"
	QuoteAPIError = "quote_api_error"

	BotStatistics         = "bot_statistics"
	EnterBroadcastMessage = "enter_broadcast_message"
	BroadcastResults      = "broadcast_results"
	EnterUserIDToBan      = "enter_user_id_to_ban"
	EnterUserIDToUnban    = "enter_user_id_to_unban"
	InvalidUserID         = "invalid_user_id"
	UserNotFound          = "user_not_found"
	UserBanned            = "user_banned"
	UserUnbanned          = "user_unbanned"
	AdminPanel            = "admin_panel"

	Banned          = "banned"
	AccessDenied    = "access_denied"
	UnknownCommand  = "unknown_command"
	ActionCancelled = "action_cancelled"
	SessionExpired  = "session_expired"
	InternalError   = "internal_error"

	BtnMyTasks     = "btn_my_tasks"
	BtnAddTask     = "btn_add_task"
	BtnGetQuote    = "btn_get_quote"
	BtnLanguage    = "btn_language"
	BtnManageTasks = "btn_manage_tasks"
	BtnAdminPanel  = "btn_admin_panel"
	BtnBack        = "btn_back"
	BtnCancel      = "btn_cancel"
)

var messages = map[store.Language]map[string]string{
	store.LanguageRU: {
		// 基础消息
		Welcome: "👋 Добро пожаловать, %s!\n\nЯ бот для управления задачами с мотивирующими цитатами. Используйте команды или кнопки ниже для навигации.",
		Help: "🤖 Доступные команды:\n\n" +
			"📋 /tasks - Просмотр ваших задач\n" +
			"➕ /addtask - Добавить новую задачу\n" +
			"💡 /quote - Получить мотивирующую цитату\n" +
			"🌐 /language - Изменить язык\n\n" +
			"🔧 Команды администратора:\n" +
			"📊 /stats - Статистика бота\n" +
			"📢 /broadcast - Рассылка сообщений\n" +
			"🚫 /ban - Заблокировать пользователя",
		ChooseLanguage:  "🌐 Выберите язык / Choose language:",
		LanguageChanged: "✅ Язык изменен на русский!",

		// 任务管理消息
		YourTasks:            "📋 Ваши задачи:",
		NoTasks:              "📭 У вас пока нет задач. Добавьте первую задачу!",
		EnterTaskTitle:       "📝 Введите название задачи:",
		EnterTaskDescription: "📄 Введите описание задачи (или отправьте /skip чтобы пропустить):",
		EnterTaskPriority:    "🎯 Введите приоритет задачи:\n\n🔴 Высокий (высокий/high/3)\n🟡 Средний (средний/medium/2)\n🟢 Низкий (низкий/low/1)",
		InvalidTaskTitle:     "❌ Название задачи не может быть пустым. Попробуйте еще раз:",
		TaskAdded:            "✅ Задача '%s' успешно добавлена!",
		TaskCompleted:        "✅ Задача '%s' выполнена!",
		TaskDeleted:          "🗑️ Задача '%s' удалена!",
		SelectTaskAction:     "📝 Выберите действие с задачей:",
		TaskManagement:       "📝 Управление задачами",

		// 名言消息
		LoadingQuote:  "💭 Загружаю цитату...",
		QuoteAPIError: "😞 Не удалось получить цитату. API недоступен.",

		// 管理员消息
		BotStatistics: "📊 Статистика бота:\n\n" +
			"👥 Всего пользователей: %d\n" +
			"📋 Всего задач: %d\n" +
			"✅ Выполненных задач: %d\n" +
			"🟢 Активных пользователей сегодня: %d\n" +
			"🚫 Заблокированных: %d",
		EnterBroadcastMessage: "📢 Введите сообщение для рассылки:",
		BroadcastResults: "📊 Результаты рассылки:\n\n" +
			"✅ Успешно отправлено: %d\n" +
			"❌ Ошибок: %d\n" +
			"👥 Всего пользователей: %d",
		EnterUserIDToBan:   "🚫 Введите ID пользователя для блокировки:",
		EnterUserIDToUnban: "✅ Введите ID пользователя для разблокировки:",
		InvalidUserID:      "❌ Неверный ID пользователя. Введите числовой ID:",
		UserNotFound:       "❌ Пользователь не найден.",
		UserBanned:         "🚫 Пользователь %d (%s) заблокирован.",
		UserUnbanned:       "✅ Пользователь %d (%s) разблокирован.",
		AdminPanel:         "🔧 Панель администратора",

		// 服务消息
		Banned:          "🚫 Вы заблокированы и не можете использовать этого бота.",
		AccessDenied:    "🔒 У вас нет прав доступа к этой команде.",
		UnknownCommand:  "❓ Неизвестная команда. Используйте /help для списка команд.",
		ActionCancelled: "❌ Действие отменено.",
		SessionExpired:  "⌛ Сессия истекла, начните заново.",
		InternalError:   "😞 К сожалению, произошла ошибка при попытке обработать ваш запрос.",

		// 按钮
		BtnMyTasks:     "📋 Мои задачи",
		BtnAddTask:     "➕ Добавить задачу",
		BtnGetQuote:    "💡 Получить цитату",
		BtnLanguage:    "🌐 Язык",
		BtnManageTasks: "📝 Управление задачами",
		BtnAdminPanel:  "🔧 Админ панель",
		BtnBack:        "🔙 Назад",
		BtnCancel:      "❌ Отмена",
	},

	store.LanguageEN: {
		// 基础消息
		Welcome: "👋 Welcome, %s!\n\nI'm a task management bot with motivational quotes. Use commands or buttons below to navigate.",
		Help: "🤖 Available commands:\n\n" +
			"📋 /tasks - View your tasks\n" +
			"➕ /addtask - Add new task\n" +
			"💡 /quote - Get motivational quote\n" +
			"🌐 /language - Change language\n\n" +
			"🔧 Admin commands:\n" +
			"📊 /stats - Bot statistics\n" +
			"📢 /broadcast - Broadcast messages\n" +
			"🚫 /ban - Ban user",
		ChooseLanguage:  "🌐 Choose language / Выберите язык:",
		LanguageChanged: "✅ Language changed to English!",

		// 任务管理消息
		YourTasks:            "📋 Your tasks:",
		NoTasks:              "📭 You have no tasks yet. Add your first task!",
		EnterTaskTitle:       "📝 Enter task title:",
		EnterTaskDescription: "📄 Enter task description (or send /skip to skip):",
		EnterTaskPriority:    "🎯 Enter task priority:\n\n🔴 High (high/3)\n🟡 Medium (medium/2)\n🟢 Low (low/1)",
		InvalidTaskTitle:     "❌ Task title cannot be empty. Try again:",
		TaskAdded:            "✅ Task '%s' successfully added!",
		TaskCompleted:        "✅ Task '%s' completed!",
		TaskDeleted:          "🗑️ Task '%s' deleted!",
		SelectTaskAction:     "📝 Select task action:",
		TaskManagement:       "📝 Task Management",

		// 名言消息
		LoadingQuote:  "💭 Loading quote...",
		QuoteAPIError: "😞 Failed to get quote. API is unavailable.",

		// 管理员消息
		BotStatistics: "📊 Bot Statistics:\n\n" +
			"👥 Total users: %d\n" +
			"📋 Total tasks: %d\n" +
			"✅ Completed tasks: %d\n" +
			"🟢 Active users today: %d\n" +
			"🚫 Banned: %d",
		EnterBroadcastMessage: "📢 Enter broadcast message:",
		BroadcastResults: "📊 Broadcast Results:\n\n" +
			"✅ Successfully sent: %d\n" +
			"❌ Errors: %d\n" +
			"👥 Total users: %d",
		EnterUserIDToBan:   "🚫 Enter user ID to ban:",
		EnterUserIDToUnban: "✅ Enter user ID to unban:",
		InvalidUserID:      "❌ Invalid user ID. Enter numeric ID:",
		UserNotFound:       "❌ User not found.",
		UserBanned:         "🚫 User %d (%s) has been banned.",
		UserUnbanned:       "✅ User %d (%s) has been unbanned.",
		AdminPanel:         "🔧 Admin Panel",

		// 服务消息
		Banned:          "🚫 You are banned and cannot use this bot.",
		AccessDenied:    "🔒 You don't have permission to use this command.",
		UnknownCommand:  "❓ Unknown command. Use /help for the command list.",
		ActionCancelled: "❌ Action cancelled.",
		SessionExpired:  "⌛ Session expired, please start over.",
		InternalError:   "😞 Unfortunately an error occurred while processing your request.",

		// 按钮
		BtnMyTasks:     "📋 My Tasks",
		BtnAddTask:     "➕ Add Task",
		BtnGetQuote:    "💡 Get Quote",
		BtnLanguage:    "🌐 Language",
		BtnManageTasks: "📝 Manage Tasks",
		BtnAdminPanel:  "🔧 Admin Panel",
		BtnBack:        "🔙 Back",
		BtnCancel:      "❌ Cancel",
	},
}

// T 按键取指定语言的消息
// 未知语言回退到 ru，未知键返回 [key] 占位符
func T(lang store.Language, key string) string {
	catalog, ok := messages[lang]
	if !ok {
		catalog = messages[store.LanguageRU]
	}

	msg, ok := catalog[key]
	if !ok {
		logger.WarnKV("message key not found", "key", key, "language", string(lang))
		return "[" + key + "]"
	}

	return msg
}

// IsButton 检查文本是否是任一语言下给定按钮键的标签
// Reply Keyboard 的点击以普通文本消息到达，需要反向匹配
func IsButton(text, key string) bool {
	for _, catalog := range messages {
		if catalog[key] == text {
			return true
		}
	}
	return false
}
