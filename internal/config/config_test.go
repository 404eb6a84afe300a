package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsWithToken(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "123:abc", cfg.Telegram.Token)
	assert.Equal(t, 60, cfg.Telegram.Timeout)
	assert.Equal(t, "data/database.json", cfg.Database.File)
	assert.Equal(t, "https://zenquotes.io/api/random", cfg.Quotes.APIURL)
	assert.Equal(t, "q", cfg.Quotes.TextField)
	assert.Equal(t, "a", cfg.Quotes.AuthorField)
	assert.Equal(t, 3600, cfg.Quotes.CacheDuration)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_MissingTokenFails(t *testing.T) {
	t.Setenv("BOT_TOKEN", "")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "telegram.token")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("BOT_TOKEN", "123:abc")
	t.Setenv("ADMIN_IDS", "1, 2,3")
	t.Setenv("DATABASE_FILE", "/tmp/db.json")
	t.Setenv("QUOTES_API_URL", "https://example.com/api")
	t.Setenv("CACHE_DURATION", "120")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, []int64{1, 2, 3}, cfg.Telegram.AdminIDs)
	assert.Equal(t, "/tmp/db.json", cfg.Database.File)
	assert.Equal(t, "https://example.com/api", cfg.Quotes.APIURL)
	assert.Equal(t, 120, cfg.Quotes.CacheDuration)
}

func TestParseAdminIDs(t *testing.T) {
	assert.Equal(t, []int64{42}, parseAdminIDs("42"))
	assert.Equal(t, []int64{1, 2}, parseAdminIDs(" 1 , 2 "))
	// 无法解析的片段跳过
	assert.Equal(t, []int64{7}, parseAdminIDs("abc,7,"))
	assert.Nil(t, parseAdminIDs(""))
}

func TestTelegramConfig_IsAdmin(t *testing.T) {
	cfg := TelegramConfig{AdminIDs: []int64{1, 2}}
	assert.True(t, cfg.IsAdmin(1))
	assert.False(t, cfg.IsAdmin(3))
}

func TestDurationHelpers(t *testing.T) {
	tg := TelegramConfig{Timeout: 60}
	assert.Equal(t, time.Minute, tg.GetTimeout())

	q := QuotesConfig{CacheDuration: 3600, Timeout: 10}
	assert.Equal(t, time.Hour, q.GetCacheDuration())
	assert.Equal(t, 10*time.Second, q.GetTimeout())
}
