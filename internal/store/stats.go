// Package store 统计快照和计数器
package store

import (
	"time"
)

// 常用统计计数器名称
const (
	// StatTotalRequests 已处理的更新总数
	StatTotalRequests = "total_requests"
	// StatTotalTasksCreated 创建过的任务总数
	StatTotalTasksCreated = "total_tasks_created"
	// StatTotalQuotesRequested 请求过的名言总数
	StatTotalQuotesRequested = "total_quotes_requested"
)

// activeWindow 活跃用户统计窗口
const activeWindow = 24 * time.Hour

// Statistics 某一时刻的统计快照
// Counters 是原始计数器映射的副本
type Statistics struct {
	TotalUsers       int              `json:"total_users"`
	TotalTasks       int              `json:"total_tasks"`
	CompletedTasks   int              `json:"completed_tasks"`
	ActiveUsersToday int              `json:"active_users_today"`
	BannedUsers      int              `json:"banned_users"`
	Counters         map[string]int64 `json:"counters"`
}

// GetStatistics 从原始记录推导当前统计快照
func (s *Store) GetStatistics() Statistics {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats := Statistics{
		TotalUsers:  len(s.users),
		TotalTasks:  len(s.tasks),
		BannedUsers: len(s.banned),
		Counters:    make(map[string]int64, len(s.statistics)),
	}

	for _, t := range s.tasks {
		if t.Completed {
			stats.CompletedTasks++
		}
	}

	cutoff := s.now().Add(-activeWindow)
	for _, u := range s.users {
		// 零值时间（缺失或损坏的记录）不计入活跃
		if !u.LastActive.IsZero() && u.LastActive.After(cutoff) {
			stats.ActiveUsersToday++
		}
	}

	for name, count := range s.statistics {
		stats.Counters[name] = count
	}

	return stats
}

// IncrementStatistic 递增命名计数器，不存在时以增量创建
func (s *Store) IncrementStatistic(name string, by int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.statistics[name] += by
	return s.save()
}
