package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/MyNameIsWhaaat/comments/internal/comment/model"
	"github.com/MyNameIsWhaaat/comments/internal/comment/storage"
)

const DefaultKey = "comments"

// findAndDelete runs server-side, so no client can observe the record
// between the read and the removal.
var findAndDelete = goredis.NewScript(`
local v = redis.call('HGET', KEYS[1], ARGV[1])
if v then
	redis.call('HDEL', KEYS[1], ARGV[1])
end
return v
`)

type Options struct {
	Address  string
	Password string
	DB       int
}

func NewClient(opts Options) *goredis.Client {
	return goredis.NewClient(&goredis.Options{
		Addr:     opts.Address,
		Password: opts.Password,
		DB:       opts.DB,
	})
}

// Repo keeps every comment as a JSON value in one hash, keyed by id.
type Repo struct {
	rdb *goredis.Client
	key string
}

func New(rdb *goredis.Client, key string) *Repo {
	if key == "" {
		key = DefaultKey
	}
	return &Repo{rdb: rdb, key: key}
}

func (r *Repo) Insert(ctx context.Context, c model.Comment) (model.Comment, error) {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return model.Comment{}, err
	}
	if err := r.rdb.HSet(ctx, r.key, c.ID, raw).Err(); err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

func (r *Repo) FindAll(ctx context.Context) ([]model.Comment, error) {
	vals, err := r.rdb.HGetAll(ctx, r.key).Result()
	if err != nil {
		return nil, err
	}

	items := make([]model.Comment, 0, len(vals))
	for id, raw := range vals {
		c, err := decode(raw)
		if err != nil {
			return nil, fmt.Errorf("decode comment %s: %w", id, err)
		}
		items = append(items, c)
	}
	return items, nil
}

func (r *Repo) FindAndDelete(ctx context.Context, id string) (model.Comment, error) {
	raw, err := findAndDelete.Run(ctx, r.rdb, []string{r.key}, id).Text()
	if errors.Is(err, goredis.Nil) {
		return model.Comment{}, storage.ErrNotFound
	}
	if err != nil {
		return model.Comment{}, err
	}

	c, err := decode(raw)
	if err != nil {
		return model.Comment{}, fmt.Errorf("decode comment %s: %w", id, err)
	}
	return c, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.rdb.Ping(ctx).Err()
}

func decode(raw string) (model.Comment, error) {
	var c model.Comment
	if err := json.Unmarshal([]byte(raw), &c); err != nil {
		return model.Comment{}, err
	}
	if err := c.Validate(); err != nil {
		return model.Comment{}, err
	}
	return c, nil
}
