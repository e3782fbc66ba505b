package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/MyNameIsWhaaat/comments/internal/comment/model"
	inm "github.com/MyNameIsWhaaat/comments/internal/comment/storage/inmemory"
)

// failingRepo simulates a backend that is down.
type failingRepo struct{ err error }

func (f *failingRepo) FindAll(ctx context.Context) ([]model.Comment, error) {
	return nil, f.err
}

func (f *failingRepo) FindAndDelete(ctx context.Context, id string) (model.Comment, error) {
	return model.Comment{}, f.err
}

func (f *failingRepo) Ping(ctx context.Context) error { return f.err }

// slowRepo blocks until the context is done.
type slowRepo struct{}

func (slowRepo) FindAll(ctx context.Context) ([]model.Comment, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func (slowRepo) FindAndDelete(ctx context.Context, id string) (model.Comment, error) {
	<-ctx.Done()
	return model.Comment{}, ctx.Err()
}

func (slowRepo) Ping(ctx context.Context) error { return nil }

func seed(t *testing.T, repo *inm.Repo, ids ...string) {
	t.Helper()
	for _, id := range ids {
		if _, err := repo.Insert(context.Background(), model.Comment{ID: id, Text: "text " + id}); err != nil {
			t.Fatalf("insert %s: %v", id, err)
		}
	}
}

func ids(items []model.Comment) []string {
	out := make([]string, 0, len(items))
	for _, c := range items {
		out = append(out, c.ID)
	}
	sort.Strings(out)
	return out
}

func equal(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestListAllEmpty(t *testing.T) {
	svc := New(inm.New(), time.Second)

	items, err := svc.ListAll(context.Background())
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if items == nil {
		t.Fatalf("expected empty slice, got nil")
	}
	if len(items) != 0 {
		t.Fatalf("expected 0 comments, got %d", len(items))
	}
}

func TestListAllReturnsStoredSet(t *testing.T) {
	ctx := context.Background()
	repo := inm.New()
	seed(t, repo, "c1", "c2", "c3", "c4")
	svc := New(repo, time.Second)

	if _, err := svc.DeleteByID(ctx, "c2"); err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	seed(t, repo, "c5")

	items, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	want := []string{"c1", "c3", "c4", "c5"}
	if got := ids(items); !equal(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestDeleteExisting(t *testing.T) {
	ctx := context.Background()
	repo := inm.New()
	seed(t, repo, "a", "b")
	svc := New(repo, time.Second)

	res, err := svc.DeleteByID(ctx, "a")
	if err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if res != model.Deleted {
		t.Fatalf("expected deleted, got %s", res)
	}

	items, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	for _, c := range items {
		if c.ID == "a" {
			t.Fatalf("deleted comment still listed")
		}
	}
}

func TestDeleteMissingLeavesCollection(t *testing.T) {
	ctx := context.Background()
	repo := inm.New()
	seed(t, repo, "a", "b")
	svc := New(repo, time.Second)

	res, err := svc.DeleteByID(ctx, "missing")
	if err != nil {
		t.Fatalf("DeleteByID: %v", err)
	}
	if res != model.NotFound {
		t.Fatalf("expected not_found, got %s", res)
	}

	items, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if got := ids(items); !equal(got, []string{"a", "b"}) {
		t.Fatalf("collection changed: %v", got)
	}
}

func TestDeleteTwice(t *testing.T) {
	ctx := context.Background()
	repo := inm.New()
	seed(t, repo, "a", "b")
	svc := New(repo, time.Second)

	first, err := svc.DeleteByID(ctx, "a")
	if err != nil || first != model.Deleted {
		t.Fatalf("first delete: %s, %v", first, err)
	}
	second, err := svc.DeleteByID(ctx, "a")
	if err != nil {
		t.Fatalf("second delete returned error: %v", err)
	}
	if second != model.NotFound {
		t.Fatalf("expected not_found on second delete, got %s", second)
	}
	if repo.Len() != 1 {
		t.Fatalf("expected 1 comment left, got %d", repo.Len())
	}
}

func TestBackendFailure(t *testing.T) {
	ctx := context.Background()
	cause := errors.New("connection refused")
	svc := New(&failingRepo{err: cause}, time.Second)

	items, err := svc.ListAll(ctx)
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from ListAll, got %v", err)
	}
	if items != nil {
		t.Fatalf("expected no partial result, got %v", items)
	}

	_, err = svc.DeleteByID(ctx, "a")
	if !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable from DeleteByID, got %v", err)
	}
}

func TestTimeoutSurfacesAsUnavailable(t *testing.T) {
	svc := New(slowRepo{}, 20*time.Millisecond)

	if _, err := svc.ListAll(context.Background()); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable on timeout, got %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := New(slowRepo{}, 0).DeleteByID(ctx, "a"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable on cancelled context, got %v", err)
	}
}

func TestScenario(t *testing.T) {
	ctx := context.Background()
	repo := inm.New()
	seed(t, repo, "a", "b")
	svc := New(repo, time.Second)

	items, err := svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if got := ids(items); !equal(got, []string{"a", "b"}) {
		t.Fatalf("expected [a b], got %v", got)
	}

	if res, err := svc.DeleteByID(ctx, "b"); err != nil || res != model.Deleted {
		t.Fatalf("delete b: %s, %v", res, err)
	}

	items, err = svc.ListAll(ctx)
	if err != nil {
		t.Fatalf("ListAll: %v", err)
	}
	if got := ids(items); !equal(got, []string{"a"}) {
		t.Fatalf("expected [a], got %v", got)
	}

	if res, err := svc.DeleteByID(ctx, "b"); err != nil || res != model.NotFound {
		t.Fatalf("delete b again: %s, %v", res, err)
	}
	if res, err := svc.DeleteByID(ctx, "z"); err != nil || res != model.NotFound {
		t.Fatalf("delete z: %s, %v", res, err)
	}
}
