package userservice_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rings-s/booking/internal/integrations/userservice"
	"github.com/rings-s/booking/pkg/logger"
)

func newUserServer(t *testing.T, calls *int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(calls, 1)
		switch r.URL.Path {
		case "/internal/users/1":
			w.Header().Set("Content-Type", "application/json")
			_ = json.NewEncoder(w).Encode(userservice.User{ID: 1, FirstName: "Sara", LastName: "Ali"})
		case "/internal/users/500":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetUser(t *testing.T) {
	var calls int32
	srv := newUserServer(t, &calls)
	client := userservice.NewClient(srv.URL, time.Second, logger.NewNop())

	user, err := client.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Sara Ali", user.DisplayName())

	_, err = client.GetUser(context.Background(), 2)
	assert.ErrorIs(t, err, userservice.ErrUserNotFound)

	_, err = client.GetUser(context.Background(), 500)
	assert.ErrorIs(t, err, userservice.ErrInvalidResponse)
}

func TestGracefulDegradation(t *testing.T) {
	var calls int32
	srv := newUserServer(t, &calls)
	client := userservice.NewClient(srv.URL, time.Second, logger.NewNop())

	_, err := client.GetUserWithGracefulDegradation(context.Background(), 500)
	assert.ErrorIs(t, err, userservice.ErrServiceDegraded)

	assert.Equal(t, "Customer #500", client.DisplayName(context.Background(), 500))
	assert.Equal(t, "Sara Ali", client.DisplayName(context.Background(), 1))
}

func TestRedisCache(t *testing.T) {
	var calls int32
	srv := newUserServer(t, &calls)
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	client := userservice.NewClient(srv.URL, time.Second, logger.NewNop())
	client.UseRedisCache(rdb, time.Minute)

	for i := 0; i < 3; i++ {
		user, err := client.GetUser(context.Background(), 1)
		require.NoError(t, err)
		assert.Equal(t, int64(1), user.ID)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
	assert.True(t, mr.Exists("userservice:user:1"))

	mr.FastForward(2 * time.Minute)
	_, err := client.GetUser(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
