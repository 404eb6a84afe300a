// Package bot 命令注册和解析
package bot

import (
	"strings"
)

// registerHandlers 注册所有命令处理器
func (b *Bot) registerHandlers() {
	// 基础命令
	b.handlers["start"] = b.handleStart
	b.handlers["help"] = b.handleHelp
	b.handlers["language"] = b.handleLanguage

	// 任务命令
	b.handlers["tasks"] = b.handleTasks
	b.handlers["addtask"] = b.handleAddTask

	// 名言命令
	b.handlers["quote"] = b.handleQuote

	// 管理员命令
	b.handlers["stats"] = b.handleStats
	b.handlers["broadcast"] = b.handleBroadcast
	b.handlers["ban"] = b.handleBan
	b.handlers["unban"] = b.handleUnban
	b.handlers["users"] = b.handleListUsers
	b.handlers["cachestatus"] = b.handleCacheStatus
}

// parseArgs 解析命令参数
func parseArgs(argsString string) []string {
	if argsString == "" {
		return []string{}
	}

	return strings.Fields(argsString)
}

// getArg 安全获取参数
func getArg(args []string, index int) string {
	if index < len(args) {
		return args[index]
	}
	return ""
}

// hasArg 检查是否有足够的参数
func hasArg(args []string, count int) bool {
	return len(args) >= count
}
