package middleware

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"icsq_backend/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type lastSeenRecorder struct {
	mu    sync.Mutex
	calls []uint
}

func (r *lastSeenRecorder) UpdateLastSeen(userID uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, userID)
	return nil
}

func (r *lastSeenRecorder) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

func activityRouter(rec *lastSeenRecorder, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set("user", &util.Claims{UserID: userID})
	}, ActivityMiddleware(rec))
	router.GET("/ping", func(c *gin.Context) { c.Status(200) })
	return router
}

func TestActivityMiddlewareDebouncesPerUser(t *testing.T) {
	rec := &lastSeenRecorder{}
	router := activityRouter(rec, 9)

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest("GET", "/ping", nil))
		assert.Equal(t, 200, w.Code)
	}

	require.Eventually(t, func() bool { return rec.count() >= 1 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	assert.Equal(t, 1, rec.count())

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.Equal(t, uint(9), rec.calls[0])
}

func TestActivityMiddlewareTracksUsersIndependently(t *testing.T) {
	rec := &lastSeenRecorder{}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		// 用户ID从请求头取，模拟不同登录用户
		if c.GetHeader("X-User") == "a" {
			c.Set("user", &util.Claims{UserID: 1})
		} else {
			c.Set("user", &util.Claims{UserID: 2})
		}
	}, ActivityMiddleware(rec))
	router.GET("/ping", func(c *gin.Context) { c.Status(200) })

	for _, who := range []string{"a", "b", "a", "b"} {
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-User", who)
		router.ServeHTTP(httptest.NewRecorder(), req)
	}

	require.Eventually(t, func() bool { return rec.count() >= 2 }, time.Second, 10*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	rec.mu.Lock()
	defer rec.mu.Unlock()
	assert.ElementsMatch(t, []uint{1, 2}, rec.calls)
}

func TestActivityMiddlewareSkipsAnonymous(t *testing.T) {
	rec := &lastSeenRecorder{}
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(ActivityMiddleware(rec))
	router.GET("/ping", func(c *gin.Context) { c.Status(200) })

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ping", nil))
	time.Sleep(50 * time.Millisecond)
	assert.Zero(t, rec.count())
}
