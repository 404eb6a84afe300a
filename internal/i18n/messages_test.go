package i18n

import (
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	"task-telegram/internal/logger"
	"task-telegram/internal/store"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "stderr"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

func TestT(t *testing.T) {
	t.Run("returns message for language", func(t *testing.T) {
		assert.Equal(t, "✅ Language changed to English!", T(store.LanguageEN, LanguageChanged))
		assert.Equal(t, "✅ Язык изменен на русский!", T(store.LanguageRU, LanguageChanged))
	})

	t.Run("unknown language falls back to ru", func(t *testing.T) {
		assert.Equal(t, T(store.LanguageRU, Welcome), T(store.Language("de"), Welcome))
	})

	t.Run("unknown key returns placeholder", func(t *testing.T) {
		assert.Equal(t, "[no_such_key]", T(store.LanguageRU, "no_such_key"))
	})
}

func TestCatalogsAreComplete(t *testing.T) {
	// en 目录必须覆盖 ru 目录的全部键，反之亦然
	ru := messages[store.LanguageRU]
	en := messages[store.LanguageEN]

	for key := range ru {
		assert.Contains(t, en, key, "missing en translation")
	}
	for key := range en {
		assert.Contains(t, ru, key, "missing ru translation")
	}
}

func TestFormatPlaceholders(t *testing.T) {
	// 带占位符的消息在两种语言下参数个数一致
	tests := []struct {
		key  string
		args []interface{}
	}{
		{Welcome, []interface{}{"@alice"}},
		{TaskAdded, []interface{}{"Buy milk"}},
		{TaskCompleted, []interface{}{"Buy milk"}},
		{TaskDeleted, []interface{}{"Buy milk"}},
		{BotStatistics, []interface{}{1, 2, 3, 4, 5}},
		{BroadcastResults, []interface{}{1, 2, 3}},
		{UserBanned, []interface{}{int64(42), "alice"}},
		{UserUnbanned, []interface{}{int64(42), "alice"}},
	}

	for _, tt := range tests {
		for _, lang := range []store.Language{store.LanguageRU, store.LanguageEN} {
			out := fmt.Sprintf(T(lang, tt.key), tt.args...)
			assert.NotContains(t, out, "%!", "broken format: %s/%s", lang, tt.key)
			assert.NotContains(t, out, "(MISSING)", "missing arg: %s/%s", lang, tt.key)
		}
	}
}

func TestIsButton(t *testing.T) {
	assert.True(t, IsButton("📋 My Tasks", BtnMyTasks))
	assert.True(t, IsButton("📋 Мои задачи", BtnMyTasks))
	assert.False(t, IsButton("📋 My Tasks", BtnAddTask))
	assert.False(t, IsButton("random text", BtnMyTasks))
}
