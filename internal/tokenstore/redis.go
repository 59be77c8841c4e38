package tokenstore

import (
	"context"
	"errors"
	"fmt"

	go_json "github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

var _ Store = (*RedisStore)(nil)

const defaultRedisKeyPrefix = "commish:token:"

type redisToken struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
}

// RedisStore shares the slots between every client pointed at the same
// Redis instance. Keys never expire; expiry is the backend's concern.
type RedisStore struct {
	client *redis.Client
	prefix string
}

type RedisOption func(*RedisStore)

// WithKeyPrefix namespaces the slot keys, e.g. per environment.
func WithKeyPrefix(prefix string) RedisOption {
	return func(r *RedisStore) { r.prefix = prefix }
}

func NewRedisStore(client *redis.Client, opts ...RedisOption) *RedisStore {
	r := &RedisStore{client: client, prefix: defaultRedisKeyPrefix}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *RedisStore) key(owner Owner) string {
	return r.prefix + string(owner)
}

func (r *RedisStore) Get(ctx context.Context, owner Owner) (*oauth2.Token, error) {
	if err := checkOwner(owner); err != nil {
		return nil, err
	}

	data, err := r.client.Get(ctx, r.key(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNoToken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get token: %w", err)
	}

	var t redisToken
	if err := go_json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token: %w", err)
	}
	return NewToken(t.AccessToken, t.RefreshToken), nil
}

func (r *RedisStore) Set(ctx context.Context, owner Owner, token *oauth2.Token) error {
	if err := validate(owner, token); err != nil {
		return err
	}

	data, err := go_json.Marshal(redisToken{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal token: %w", err)
	}

	if err := r.client.Set(ctx, r.key(owner), data, 0).Err(); err != nil {
		return fmt.Errorf("failed to set token: %w", err)
	}
	return nil
}

func (r *RedisStore) Clear(ctx context.Context, owner Owner) error {
	if err := checkOwner(owner); err != nil {
		return err
	}
	if err := r.client.Del(ctx, r.key(owner)).Err(); err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

func (r *RedisStore) ClearAll(ctx context.Context) error {
	keys := make([]string, 0, len(Owners()))
	for _, owner := range Owners() {
		keys = append(keys, r.key(owner))
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete tokens: %w", err)
	}
	return nil
}
