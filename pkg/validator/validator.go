// Package validator 提供参数验证工具
package validator

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// MaxTitleLength 任务标题最大长度
	MaxTitleLength = 200
	// MaxDescriptionLength 任务描述最大长度
	MaxDescriptionLength = 1000
)

// ValidateTaskTitle 验证任务标题
func ValidateTaskTitle(title string) error {
	if IsEmpty(title) {
		return fmt.Errorf("task title cannot be empty")
	}

	if len([]rune(title)) > MaxTitleLength {
		return fmt.Errorf("task title cannot exceed %d characters", MaxTitleLength)
	}

	return nil
}

// ValidateTaskDescription 验证任务描述（可以为空）
func ValidateTaskDescription(description string) error {
	if len([]rune(description)) > MaxDescriptionLength {
		return fmt.Errorf("task description cannot exceed %d characters", MaxDescriptionLength)
	}

	return nil
}

// priorityAliases 用户输入到规范优先级的映射
// 接受俄语、英语和数字写法
var priorityAliases = map[string]string{
	"низкий":  "low",
	"low":     "low",
	"1":       "low",
	"средний": "medium",
	"medium":  "medium",
	"2":       "medium",
	"высокий": "high",
	"high":    "high",
	"3":       "high",
}

// NormalizePriority 将用户输入归一化为 low/medium/high
// 无法识别的输入归为 medium
func NormalizePriority(input string) string {
	if p, ok := priorityAliases[strings.ToLower(strings.TrimSpace(input))]; ok {
		return p
	}
	return "medium"
}

// ParseUserID 解析数字用户 ID
func ParseUserID(input string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(input), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("user id must be numeric")
	}

	if id <= 0 {
		return 0, fmt.Errorf("user id must be positive")
	}

	return id, nil
}

// SanitizeText 清理用户输入（移除前后空格）
func SanitizeText(s string) string {
	return strings.TrimSpace(s)
}

// IsEmpty 检查字符串是否为空
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
