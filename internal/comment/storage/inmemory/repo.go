package inmemory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/MyNameIsWhaaat/comments/internal/comment/model"
	"github.com/MyNameIsWhaaat/comments/internal/comment/storage"
)

type Repo struct {
	mu sync.RWMutex

	byID  map[string]model.Comment
	order []string
}

func New() *Repo {
	return &Repo{
		byID: make(map[string]model.Comment),
	}
}

// Insert stores c, assigning an id and creation time when they are empty.
func (r *Repo) Insert(ctx context.Context, c model.Comment) (model.Comment, error) {
	if err := ctx.Err(); err != nil {
		return model.Comment{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	if _, ok := r.byID[c.ID]; !ok {
		r.order = append(r.order, c.ID)
	}
	r.byID[c.ID] = c

	return c, nil
}

func (r *Repo) FindAll(ctx context.Context) ([]model.Comment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]model.Comment, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out, nil
}

func (r *Repo) FindAndDelete(ctx context.Context, id string) (model.Comment, error) {
	if err := ctx.Err(); err != nil {
		return model.Comment{}, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byID[id]
	if !ok {
		return model.Comment{}, storage.ErrNotFound
	}

	delete(r.byID, id)
	r.order = removeID(r.order, id)

	return c, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (r *Repo) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

func removeID(ids []string, target string) []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		if v != target {
			out = append(out, v)
		}
	}
	return out
}
