package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/rahulv/blog-platform/internal/apperror"
	"github.com/rahulv/blog-platform/internal/model"
	"github.com/rahulv/blog-platform/internal/repository"
)

// Compile-time check that *DB implements repository.BlogRepository.
// If a method goes missing, the build breaks here rather than at a distant
// call site.
var _ repository.BlogRepository = (*DB)(nil)

// Create inserts a new blog post.
//
// The database assigns the id (INTEGER PRIMARY KEY); we read it back via
// LastInsertId and write it into the caller's struct — that id is what the
// create endpoint returns. blog.AuthorID must already be set by the service
// from the authenticated identity.
func (db *DB) Create(ctx context.Context, blog *model.Blog) error {
	now := time.Now()
	blog.CreatedAt = now
	blog.UpdatedAt = now

	res, err := db.conn.ExecContext(ctx,
		`INSERT INTO blogs (title, content, author_id, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		blog.Title,
		blog.Content,
		blog.AuthorID,
		blog.CreatedAt,
		blog.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlite: creating blog: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("sqlite: reading new blog id: %w", err)
	}
	blog.ID = id

	return nil
}

// GetByID retrieves the write model of a single post.
// Returns apperror.ErrNotFound if no post has that id.
func (db *DB) GetByID(ctx context.Context, id int64) (*model.Blog, error) {
	var blog model.Blog

	err := db.conn.QueryRowContext(ctx,
		`SELECT id, title, content, author_id, created_at, updated_at
		 FROM blogs
		 WHERE id = ?`,
		id,
	).Scan(
		&blog.ID,
		&blog.Title,
		&blog.Content,
		&blog.AuthorID,
		&blog.CreatedAt,
		&blog.UpdatedAt,
	)
	if err != nil {
		// sql.ErrNoRows is a sentinel, not a failure — translate it into the
		// domain's typed not-found so callers can distinguish it from real
		// database errors.
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog %d: %w", id, err)
	}

	return &blog, nil
}

// GetViewByID retrieves a single post joined with its author's display name —
// the projection the detail endpoint serves.
func (db *DB) GetViewByID(ctx context.Context, id int64) (*model.BlogView, error) {
	var v model.BlogView

	err := db.conn.QueryRowContext(ctx,
		`SELECT b.id, b.title, b.content, u.name
		 FROM blogs b
		 JOIN users u ON u.id = b.author_id
		 WHERE b.id = ?`,
		id,
	).Scan(
		&v.ID,
		&v.Title,
		&v.Content,
		&v.Author.Name,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, apperror.NotFound("blog", id)
		}
		return nil, fmt.Errorf("sqlite: getting blog view %d: %w", id, err)
	}

	return &v, nil
}

// ListViews returns every post joined with its author's name.
//
// No pagination — the bulk endpoint serves the whole table. Ordered by id so
// the response is stable across calls (insertion order).
func (db *DB) ListViews(ctx context.Context) ([]model.BlogView, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT b.id, b.title, b.content, u.name
		 FROM blogs b
		 JOIN users u ON u.id = b.author_id
		 ORDER BY b.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("sqlite: listing blogs: %w", err)
	}
	// rows holds a pool connection until closed — leak these and the pool
	// eventually runs dry.
	defer rows.Close()

	views := make([]model.BlogView, 0)

	for rows.Next() {
		var v model.BlogView
		if err := rows.Scan(&v.ID, &v.Title, &v.Content, &v.Author.Name); err != nil {
			return nil, fmt.Errorf("sqlite: scanning blog row: %w", err)
		}
		views = append(views, v)
	}

	// rows.Err() catches errors that happened during iteration (connection
	// dropping mid-read, for example).
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqlite: iterating blogs: %w", err)
	}

	return views, nil
}

// Update modifies an existing post's title and content.
//
// id, author_id, and created_at are immutable; updated_at is always bumped.
// RowsAffected == 0 means the WHERE clause matched nothing — the post
// doesn't exist — which is reported as a typed not-found.
func (db *DB) Update(ctx context.Context, blog *model.Blog) error {
	blog.UpdatedAt = time.Now()

	result, err := db.conn.ExecContext(ctx,
		`UPDATE blogs
		 SET title = ?, content = ?, updated_at = ?
		 WHERE id = ?`,
		blog.Title,
		blog.Content,
		blog.UpdatedAt,
		blog.ID,
	)
	if err != nil {
		return fmt.Errorf("sqlite: updating blog %d: %w", blog.ID, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqlite: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("blog", blog.ID)
	}

	return nil
}
