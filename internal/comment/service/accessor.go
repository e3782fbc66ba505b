package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/MyNameIsWhaaat/comments/internal/comment/model"
	"github.com/MyNameIsWhaaat/comments/internal/comment/storage"
)

var ErrStoreUnavailable = errors.New("store unavailable")

type commentService struct {
	repo    storage.Repository
	timeout time.Duration
}

// New returns an accessor over repo. A positive timeout bounds every backend
// round trip in addition to the caller's own deadline.
func New(repo storage.Repository, timeout time.Duration) CommentService {
	return &commentService{repo: repo, timeout: timeout}
}

func (s *commentService) ListAll(ctx context.Context) ([]model.Comment, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, unavailable("list comments", err)
	}
	if items == nil {
		items = []model.Comment{}
	}
	return items, nil
}

func (s *commentService) DeleteByID(ctx context.Context, id string) (model.DeletionResult, error) {
	ctx, cancel := s.withTimeout(ctx)
	defer cancel()

	_, err := s.repo.FindAndDelete(ctx, id)
	switch {
	case err == nil:
		return model.Deleted, nil
	case errors.Is(err, storage.ErrNotFound):
		return model.NotFound, nil
	default:
		return 0, unavailable("delete comment", err)
	}
}

func (s *commentService) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, s.timeout)
}

func unavailable(op string, err error) error {
	return fmt.Errorf("%s: %w: %v", op, ErrStoreUnavailable, err)
}
