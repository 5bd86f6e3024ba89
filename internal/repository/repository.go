package repository

import (
	"context"

	"github.com/rahulv/blog-platform/internal/model"
)

// BlogRepository is the persistence contract for blog posts.
//
// The write model (model.Blog) and the read projection (model.BlogView,
// which carries the joined author name) are served by separate methods so
// callers never accidentally expose author internals.
type BlogRepository interface {
	Create(ctx context.Context, blog *model.Blog) error
	GetByID(ctx context.Context, id int64) (*model.Blog, error)
	GetViewByID(ctx context.Context, id int64) (*model.BlogView, error)
	ListViews(ctx context.Context) ([]model.BlogView, error)
	Update(ctx context.Context, blog *model.Blog) error
}

// UserRepository is the persistence contract for user accounts.
//
// Method names carry the "User" noun because the SQLite implementation puts
// blog and user methods on one type sharing the pool — the two interfaces
// must not demand clashing signatures for the same name.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpsertGitHub(ctx context.Context, user *model.User) error
}
