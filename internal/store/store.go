// Package store 提供基于 JSON 文件的持久化存储
//
// 所有状态（用户、任务、封禁名单、统计计数）都保存在一个 JSON 文件里，
// 每次变更后整体重写。进程内只构造一个实例并显式注入到各个使用方，
// 互斥锁覆盖完整的"读取-修改-落盘"区间。
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"task-telegram/internal/logger"
)

// Store JSON 文件存储
type Store struct {
	mu   sync.Mutex
	file string

	users      map[string]*User
	tasks      map[string]*Task
	banned     map[int64]struct{}
	statistics map[string]int64

	// 测试中可替换的时间源
	now func() time.Time
}

// persistedState 落盘格式
// banned_users 持久化为数组，内存中是集合
type persistedState struct {
	Users       map[string]*User `json:"users"`
	Tasks       map[string]*Task `json:"tasks"`
	BannedUsers []int64          `json:"banned_users"`
	Statistics  map[string]int64 `json:"statistics"`
}

// Open 打开（或创建）存储文件
// 文件存在但无法解析时返回错误，进程不应在损坏的数据上启动
func Open(file string) (*Store, error) {
	s := &Store{
		file:   file,
		users:  make(map[string]*User),
		tasks:  make(map[string]*Task),
		banned: make(map[int64]struct{}),
		statistics: map[string]int64{
			StatTotalRequests:        0,
			StatTotalTasksCreated:    0,
			StatTotalQuotesRequested: 0,
		},
		now: time.Now,
	}

	if dir := filepath.Dir(file); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create data directory: %w", err)
		}
	}

	data, err := os.ReadFile(file)
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("read database file: %w", err)
		}

		// 文件不存在：立即写出空骨架，确立文件
		if err := s.save(); err != nil {
			return nil, fmt.Errorf("create database file: %w", err)
		}
		logger.Infof("new database created at %s", file)
		return s, nil
	}

	var loaded persistedState
	if err := json.Unmarshal(data, &loaded); err != nil {
		return nil, fmt.Errorf("parse database file %s: %w", file, err)
	}

	// 合并到默认骨架：缺失的顶层键保持空默认值
	if loaded.Users != nil {
		s.users = loaded.Users
	}
	if loaded.Tasks != nil {
		s.tasks = loaded.Tasks
	}
	for _, id := range loaded.BannedUsers {
		s.banned[id] = struct{}{}
	}
	for name, count := range loaded.Statistics {
		s.statistics[name] = count
	}

	logger.Infof("database loaded from %s", file)
	return s, nil
}

// save 全量序列化并重写文件
// 调用方必须持有 s.mu
func (s *Store) save() error {
	banned := make([]int64, 0, len(s.banned))
	for id := range s.banned {
		banned = append(banned, id)
	}
	sort.Slice(banned, func(i, j int) bool { return banned[i] < banned[j] })

	state := persistedState{
		Users:       s.users,
		Tasks:       s.tasks,
		BannedUsers: banned,
		Statistics:  s.statistics,
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal database: %w", err)
	}

	if err := os.WriteFile(s.file, data, 0644); err != nil {
		// 内存状态已变更，文件落后于内存，直到下一次成功保存
		return fmt.Errorf("write database file: %w", err)
	}

	return nil
}

// userKey 用户在 users 映射中的键（字符串化的 ID）
func userKey(id int64) string {
	return fmt.Sprintf("%d", id)
}
