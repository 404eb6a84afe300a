// Package store 领域错误定义
package store

import (
	"errors"
	"fmt"
)

// 领域错误定义
var (
	// ErrUserNotFound 用户不存在
	ErrUserNotFound = errors.New("user not found")

	// ErrTaskNotFound 任务不存在
	ErrTaskNotFound = errors.New("task not found")
)

// UserNotFoundError 创建用户不存在错误
func UserNotFoundError(id int64) error {
	return fmt.Errorf("user %d: %w", id, ErrUserNotFound)
}

// TaskNotFoundError 创建任务不存在错误
func TaskNotFoundError(taskID string) error {
	return fmt.Errorf("task %q: %w", taskID, ErrTaskNotFound)
}
