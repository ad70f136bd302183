package userservice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
)

const cacheKeyPrefix = "userservice:user:"

// Client клиент для работы с UserService
type Client struct {
	baseURL    string
	httpClient *http.Client
	log        Logger

	redis    redis.Cmdable
	cacheTTL time.Duration
}

// NewClient создает новый экземпляр клиента UserService
func NewClient(baseURL string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// UseRedisCache включает кэширование профилей в Redis
func (c *Client) UseRedisCache(rdb redis.Cmdable, ttl time.Duration) {
	c.redis = rdb
	c.cacheTTL = ttl
}

// GetUser получает профиль пользователя
func (c *Client) GetUser(ctx context.Context, userID int64) (*User, error) {
	cacheKey := fmt.Sprintf("%s%d", cacheKeyPrefix, userID)

	var user User
	if c.readCache(ctx, cacheKey, &user) {
		return &user, nil
	}

	url := fmt.Sprintf("%s/internal/users/%d", c.baseURL, userID)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %w", ErrInternal, err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %w", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid user ID format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrUserNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(&user); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %w", ErrInvalidResponse, err)
	}

	c.writeCache(ctx, cacheKey, user)
	return &user, nil
}

// GetUserWithGracefulDegradation получает профиль пользователя с graceful degradation.
// При недоступности UserService возвращает ErrServiceDegraded, вызывающий использует ID вместо имени.
func (c *Client) GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*User, error) {
	user, err := c.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			c.log.Info("No user found for user_id=%d", userID)
			return nil, err
		}

		c.log.Error("UserService unavailable, applying graceful degradation for user_id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: user_id=%d, error=%w", ErrServiceDegraded, userID, err)
	}

	return user, nil
}

// DisplayName имя пользователя или "Customer #id", если профиль недоступен
func (c *Client) DisplayName(ctx context.Context, userID int64) string {
	user, err := c.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil {
		return (&User{ID: userID}).DisplayName()
	}
	return user.DisplayName()
}

func (c *Client) readCache(ctx context.Context, key string, out interface{}) bool {
	if c.redis == nil || c.cacheTTL <= 0 {
		return false
	}
	val, err := c.redis.Get(ctx, key).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn("UserService cache read failed for key=%s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return false
	}
	return true
}

func (c *Client) writeCache(ctx context.Context, key string, val interface{}) {
	if c.redis == nil || c.cacheTTL <= 0 {
		return
	}
	data, err := json.Marshal(val)
	if err != nil {
		return
	}
	if err := c.redis.Set(ctx, key, data, c.cacheTTL).Err(); err != nil {
		c.log.Warn("UserService cache write failed for key=%s: %v", key, err)
	}
}
