package storage

import (
	"context"
	"errors"

	"github.com/MyNameIsWhaaat/comments/internal/comment/model"
)

var ErrNotFound = errors.New("comment not found")

// Repository is the persistence backend behind the comment accessor.
// FindAndDelete must find and remove the record in one atomic backend call
// and return ErrNotFound when nothing matched.
type Repository interface {
	FindAll(ctx context.Context) ([]model.Comment, error)
	FindAndDelete(ctx context.Context, id string) (model.Comment, error)
	Ping(ctx context.Context) error
}
