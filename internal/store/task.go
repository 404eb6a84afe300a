// Package store 任务实体和任务操作
package store

import (
	"fmt"
	"sort"
	"time"

	"task-telegram/internal/logger"
)

// Priority 任务优先级，纯描述性，不影响任何行为
type Priority string

const (
	// PriorityLow 低优先级
	PriorityLow Priority = "low"
	// PriorityMedium 中优先级（默认）
	PriorityMedium Priority = "medium"
	// PriorityHigh 高优先级
	PriorityHigh Priority = "high"
)

// Valid 检查优先级是否有效
func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh
}

// Task 任务实体，归属于唯一一个用户
type Task struct {
	ID          string    `json:"id"`
	UserID      int64     `json:"user_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Priority    Priority  `json:"priority"`
	Completed   bool      `json:"completed"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// clone 返回任务副本
func (t *Task) clone() *Task {
	c := *t
	return &c
}

// AddTask 为用户创建任务，返回任务 ID
// 标题校验是调用方的职责，存储层不拒绝空标题。
// ID 由归属者 ID 和毫秒级创建时间组成，保持可读、可按用户追溯；
// 同一毫秒内的冲突通过递增时间分量避开。
func (s *Store) AddTask(userID int64, title, description string, priority Priority) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()

	ts := now.UnixMilli()
	taskID := fmt.Sprintf("%d_%d", userID, ts)
	for _, exists := s.tasks[taskID]; exists; _, exists = s.tasks[taskID] {
		ts++
		taskID = fmt.Sprintf("%d_%d", userID, ts)
	}

	s.tasks[taskID] = &Task{
		ID:          taskID,
		UserID:      userID,
		Title:       title,
		Description: description,
		Priority:    priority,
		Completed:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	// task_count 是派生值的缓存，和任务记录之间没有事务包裹
	if u, ok := s.users[userKey(userID)]; ok {
		u.TaskCount++
	}

	s.statistics[StatTotalTasksCreated]++

	if err := s.save(); err != nil {
		return "", err
	}

	logger.InfoKV("task added", "task_id", taskID, "user_id", userID, "title", title)
	return taskID, nil
}

// GetTask 查询任务，纯读取
func (s *Store) GetTask(taskID string) (*Task, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil, TaskNotFoundError(taskID)
	}
	return t.clone(), nil
}

// ListTasksForUser 列出用户的全部任务，按创建时间降序（最新在前）
func (s *Store) ListTasksForUser(userID int64) []*Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	var tasks []*Task
	for _, t := range s.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t.clone())
		}
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt.After(tasks[j].CreatedAt)
	})

	return tasks
}

// SetTaskCompleted 更新任务完成状态
// 任务不存在时静默忽略，不是错误
func (s *Store) SetTaskCompleted(taskID string, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil
	}

	t.Completed = completed
	t.UpdatedAt = s.now()

	if err := s.save(); err != nil {
		return err
	}

	logger.InfoKV("task status updated", "task_id", taskID, "completed", completed)
	return nil
}

// DeleteTask 删除任务并递减归属者的任务计数（下限为 0）
// 任务不存在时静默忽略，不是错误
func (s *Store) DeleteTask(taskID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.tasks[taskID]
	if !ok {
		return nil
	}

	delete(s.tasks, taskID)

	if u, ok := s.users[userKey(t.UserID)]; ok {
		if u.TaskCount > 0 {
			u.TaskCount--
		}
	}

	if err := s.save(); err != nil {
		return err
	}

	logger.InfoKV("task deleted", "task_id", taskID, "user_id", t.UserID)
	return nil
}

// RepairTaskCounts 从任务记录重新计算所有用户的任务计数
// task_count 只是缓存，出现漂移时可用此操作修复
func (s *Store) RepairTaskCounts() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := make(map[int64]int)
	for _, t := range s.tasks {
		counts[t.UserID]++
	}

	changed := false
	for _, u := range s.users {
		if actual := counts[u.ID]; u.TaskCount != actual {
			logger.WarnKV("task count drift repaired", "user_id", u.ID, "cached", u.TaskCount, "actual", actual)
			u.TaskCount = actual
			changed = true
		}
	}

	if !changed {
		return nil
	}

	return s.save()
}
