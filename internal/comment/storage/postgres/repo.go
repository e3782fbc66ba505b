package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/MyNameIsWhaaat/comments/internal/comment/model"
	"github.com/MyNameIsWhaaat/comments/internal/comment/storage"
)

type Options struct {
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

// Open returns a pooled handle using the pgx database/sql driver.
func Open(dsn string, opts Options) (*sql.DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	db.SetMaxOpenConns(opts.MaxOpenConns)
	db.SetMaxIdleConns(opts.MaxIdleConns)
	db.SetConnMaxLifetime(opts.ConnMaxLifetime)
	return db, nil
}

type Repo struct {
	db *sql.DB
}

func New(db *sql.DB) *Repo {
	return &Repo{db: db}
}

func (r *Repo) Insert(ctx context.Context, author, text string) (model.Comment, error) {
	var c model.Comment
	err := r.db.QueryRowContext(ctx, `
		INSERT INTO comments(author, text)
		VALUES ($1, $2)
		RETURNING id, author, text, created_at
	`, author, text).Scan(&c.ID, &c.Author, &c.Text, &c.CreatedAt)
	if err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

func (r *Repo) FindAll(ctx context.Context) ([]model.Comment, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, author, text, created_at
		FROM comments
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Comment, 0, 64)
	for rows.Next() {
		var c model.Comment
		if err := rows.Scan(&c.ID, &c.Author, &c.Text, &c.CreatedAt); err != nil {
			return nil, err
		}
		if err := c.Validate(); err != nil {
			return nil, fmt.Errorf("invalid comment row: %w", err)
		}
		items = append(items, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return items, nil
}

// FindAndDelete removes the row in a single DELETE ... RETURNING statement.
func (r *Repo) FindAndDelete(ctx context.Context, id string) (model.Comment, error) {
	var c model.Comment
	err := r.db.QueryRowContext(ctx, `
		DELETE FROM comments
		WHERE id = $1
		RETURNING id, author, text, created_at
	`, id).Scan(&c.ID, &c.Author, &c.Text, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Comment{}, storage.ErrNotFound
	}
	if err != nil {
		return model.Comment{}, err
	}
	return c, nil
}

func (r *Repo) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
