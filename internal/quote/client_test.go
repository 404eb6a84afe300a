package quote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-telegram/internal/logger"
)

func TestMain(m *testing.M) {
	if err := logger.Init("error", "stderr"); err != nil {
		panic(err)
	}
	os.Exit(m.Run())
}

// newTestServer 返回固定响应的 httptest 服务器和请求计数器
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *int) {
	t.Helper()
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, &requests
}

func TestRandom_FetchesQuote(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `[{"q": "Be bold", "a": "Anon"}]`)

	c := NewClient(srv.URL, "q", "a", time.Hour, time.Second)

	q := c.Random(context.Background())
	require.NotNil(t, q)
	assert.Equal(t, "Be bold", q.Text)
	assert.Equal(t, "Anon", q.Author)
}

func TestRandom_CacheHitSkipsNetwork(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, `[{"q": "Be bold", "a": "Anon"}]`)

	c := NewClient(srv.URL, "q", "a", time.Hour, time.Second)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	first := c.Random(context.Background())
	require.NotNil(t, first)

	// TTL 内的第二次请求不触网
	c.now = func() time.Time { return base.Add(30 * time.Minute) }
	second := c.Random(context.Background())
	require.NotNil(t, second)
	assert.Equal(t, first.Text, second.Text)
	assert.Equal(t, 1, *requests)
}

func TestRandom_CacheExpiryRefetches(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, `[{"q": "Be bold", "a": "Anon"}]`)

	c := NewClient(srv.URL, "q", "a", time.Hour, time.Second)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	require.NotNil(t, c.Random(context.Background()))

	// 恰好到期：age == ttl 视为过期
	c.now = func() time.Time { return base.Add(time.Hour) }
	require.NotNil(t, c.Random(context.Background()))
	assert.Equal(t, 2, *requests)
}

func TestRandom_FailuresReturnNil(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{"non-200 status", http.StatusInternalServerError, `[{"q": "x", "a": "y"}]`},
		{"malformed payload", http.StatusOK, `{not json`},
		{"empty array", http.StatusOK, `[]`},
		{"object instead of array", http.StatusOK, `{"q": "x", "a": "y"}`},
		{"blank quote text", http.StatusOK, `[{"q": "   ", "a": "Anon"}]`},
		{"missing text field", http.StatusOK, `[{"a": "Anon"}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, tt.status, tt.body)
			c := NewClient(srv.URL, "q", "a", time.Hour, time.Second)

			assert.Nil(t, c.Random(context.Background()))
		})
	}
}

func TestRandom_FailureKeepsOldCache(t *testing.T) {
	// 第一次成功，之后服务器开始报错
	requests := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests == 1 {
			_, _ = w.Write([]byte(`[{"q": "Be bold", "a": "Anon"}]`))
			return
		}
		w.WriteHeader(http.StatusInternalServerError)
	}))
	t.Cleanup(srv.Close)

	c := NewClient(srv.URL, "q", "a", time.Hour, time.Second)

	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return base }

	require.NotNil(t, c.Random(context.Background()))

	// 过期后的失败抓取返回 nil，但不清空旧缓存条目
	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	assert.Nil(t, c.Random(context.Background()))

	status := c.Status()
	assert.True(t, status.Cached)
	assert.True(t, status.Expired)
}

func TestRandom_MissingAuthorFallsBack(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `[{"q": "Be bold"}]`)

	c := NewClient(srv.URL, "q", "a", time.Hour, time.Second)

	q := c.Random(context.Background())
	require.NotNil(t, q)
	assert.Equal(t, "Unknown", q.Author)
}

func TestRandom_ConfigurableFieldNames(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `[{"content": "Be bold", "by": "Anon"}]`)

	c := NewClient(srv.URL, "content", "by", time.Hour, time.Second)

	q := c.Random(context.Background())
	require.NotNil(t, q)
	assert.Equal(t, "Be bold", q.Text)
	assert.Equal(t, "Anon", q.Author)
}

func TestRandom_ReturnsCopyOfCache(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `[{"q": "Be bold", "a": "Anon"}]`)

	c := NewClient(srv.URL, "q", "a", time.Hour, time.Second)

	first := c.Random(context.Background())
	require.NotNil(t, first)
	first.Text = "mutated"

	second := c.Random(context.Background())
	require.NotNil(t, second)
	assert.Equal(t, "Be bold", second.Text)
}

func TestClearCache(t *testing.T) {
	srv, requests := newTestServer(t, http.StatusOK, `[{"q": "Be bold", "a": "Anon"}]`)

	c := NewClient(srv.URL, "q", "a", time.Hour, time.Second)

	require.NotNil(t, c.Random(context.Background()))
	c.ClearCache()
	require.NotNil(t, c.Random(context.Background()))

	assert.Equal(t, 2, *requests)
}

func TestStatus(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `[{"q": "Be bold", "a": "Anon"}]`)

	c := NewClient(srv.URL, "q", "a", time.Hour, time.Second)

	t.Run("empty cache", func(t *testing.T) {
		status := c.Status()
		assert.False(t, status.Cached)
		assert.Equal(t, time.Hour, status.TTL)
	})

	t.Run("valid entry", func(t *testing.T) {
		base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return base }

		require.NotNil(t, c.Random(context.Background()))

		c.now = func() time.Time { return base.Add(10 * time.Minute) }
		status := c.Status()
		assert.True(t, status.Cached)
		assert.Equal(t, 10*time.Minute, status.Age)
		assert.False(t, status.Expired)
	})

	t.Run("expired entry", func(t *testing.T) {
		base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)
		c.now = func() time.Time { return base.Add(2 * time.Hour) }

		status := c.Status()
		assert.True(t, status.Cached)
		assert.True(t, status.Expired)
	})
}
