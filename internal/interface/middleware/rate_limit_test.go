package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rateLimitSetup(t *testing.T, max int, keyFn KeyFunc, allow AllowFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.GET("/ping", RateLimit(rdb, max, time.Minute, keyFn, allow), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return r
}

func doGet(r *gin.Engine, ip string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = ip + ":12345"
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitBlocksAboveMax(t *testing.T) {
	r := rateLimitSetup(t, 3, KeyByIP(), nil)

	for i := 0; i < 3; i++ {
		w := doGet(r, "203.0.113.7")
		require.Equal(t, http.StatusOK, w.Code)
	}
	w := doGet(r, "203.0.113.7")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestRateLimitIsPerKey(t *testing.T) {
	r := rateLimitSetup(t, 1, KeyByIP(), nil)

	require.Equal(t, http.StatusOK, doGet(r, "203.0.113.7").Code)
	require.Equal(t, http.StatusTooManyRequests, doGet(r, "203.0.113.7").Code)

	// A different source still has budget.
	assert.Equal(t, http.StatusOK, doGet(r, "203.0.113.8").Code)
}

func TestRateLimitSetsHeaders(t *testing.T) {
	r := rateLimitSetup(t, 5, KeyByIP(), nil)

	w := doGet(r, "203.0.113.7")
	assert.Equal(t, "5", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "4", w.Header().Get("X-RateLimit-Remaining"))
}

func TestRateLimitAllowBypass(t *testing.T) {
	r := rateLimitSetup(t, 1, KeyByIP(), AllowPrivateIP())

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doGet(r, "192.168.1.10").Code)
	}
}

func TestRateLimitFailsOpenWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/ping", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, doGet(r, "203.0.113.7").Code)
	}
}

func TestRateLimitFailsOpenWhenRedisDown(t *testing.T) {
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	r := gin.New()
	r.GET("/ping", RateLimit(rdb, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})

	mr.Close()
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, doGet(r, "203.0.113.7").Code)
	}
}
