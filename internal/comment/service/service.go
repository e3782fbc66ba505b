package service

import (
	"context"

	"github.com/MyNameIsWhaaat/comments/internal/comment/model"
)

// CommentService is the accessor the request layer talks to.
// Every error it returns matches ErrStoreUnavailable.
type CommentService interface {
	ListAll(ctx context.Context) ([]model.Comment, error)
	DeleteByID(ctx context.Context, id string) (model.DeletionResult, error)
}
