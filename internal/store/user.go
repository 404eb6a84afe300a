// Package store 用户实体和用户操作
package store

import (
	"time"

	"task-telegram/internal/logger"
)

// Language 界面语言
type Language string

const (
	// LanguageRU 俄语（默认）
	LanguageRU Language = "ru"
	// LanguageEN 英语
	LanguageEN Language = "en"
)

// Valid 检查语言是否受支持
func (l Language) Valid() bool {
	return l == LanguageRU || l == LanguageEN
}

// User 用户实体
// 首次交互时隐式创建，永不删除
type User struct {
	ID         int64     `json:"id"`
	Username   string    `json:"username,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	LastActive time.Time `json:"last_active"`
	TaskCount  int       `json:"task_count"`
	Language   Language  `json:"language"`
}

// DisplayName 获取显示名称
func (u *User) DisplayName() string {
	if u.Username != "" {
		return "@" + u.Username
	}
	return userKey(u.ID)
}

// clone 返回用户副本，避免调用方持有内部状态
func (u *User) clone() *User {
	c := *u
	return &c
}

// AddOrTouchUser 创建用户或刷新活跃时间
// 用户不存在时以默认语言 ru、零任务数创建；已存在时更新 last_active，
// username 非空时一并更新。对创建是幂等的，永远不会产生重复记录。
func (s *Store) AddOrTouchUser(id int64, username string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := userKey(id)
	now := s.now()

	u, ok := s.users[key]
	if !ok {
		u = &User{
			ID:         id,
			Username:   username,
			CreatedAt:  now,
			LastActive: now,
			TaskCount:  0,
			Language:   LanguageRU,
		}
		s.users[key] = u
		logger.InfoKV("new user registered", "user_id", id, "username", username)
	} else {
		u.LastActive = now
		if username != "" {
			u.Username = username
		}
	}

	if err := s.save(); err != nil {
		return nil, err
	}

	return u.clone(), nil
}

// GetUser 查询用户，纯读取
func (s *Store) GetUser(id int64) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userKey(id)]
	if !ok {
		return nil, UserNotFoundError(id)
	}
	return u.clone(), nil
}

// ListUsers 列出所有用户
// 顺序不保证在重新加载后保持一致，调用方不得依赖顺序
func (s *Store) ListUsers() []*User {
	s.mu.Lock()
	defer s.mu.Unlock()

	users := make([]*User, 0, len(s.users))
	for _, u := range s.users {
		users = append(users, u.clone())
	}
	return users
}

// SetUserLanguage 设置用户界面语言并持久化
func (s *Store) SetUserLanguage(id int64, lang Language) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[userKey(id)]
	if !ok {
		return UserNotFoundError(id)
	}

	u.Language = lang
	return s.save()
}

// Ban 封禁用户，幂等
func (s *Store) Ban(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.banned[id] = struct{}{}
	if err := s.save(); err != nil {
		return err
	}

	logger.InfoKV("user banned", "user_id", id)
	return nil
}

// Unban 解封用户，幂等
func (s *Store) Unban(id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.banned, id)
	if err := s.save(); err != nil {
		return err
	}

	logger.InfoKV("user unbanned", "user_id", id)
	return nil
}

// IsBanned 检查用户是否被封禁
func (s *Store) IsBanned(id int64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.banned[id]
	return ok
}
