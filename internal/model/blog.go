// Package model defines the data structures used throughout the application.
// In Go, we use structs to represent our data — similar to classes in other languages,
// but without inheritance. Go favours composition over inheritance.
package model

import "time"

// Blog represents a published blog post.
//
// The `json:"..."` tags tell Go's encoding/json package how to serialize this
// struct. The ID is assigned by the database (INTEGER PRIMARY KEY), never by
// the client. AuthorID is set once at creation time from the authenticated
// caller's token and is immutable afterwards — it is deliberately NOT part of
// any request payload.
type Blog struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  int64     `json:"authorId"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Author is the read-only projection of a post's author exposed in list and
// detail responses. Only the display name is surfaced — never the email or
// password hash.
type Author struct {
	Name string `json:"name"`
}

// BlogView is what list and get-by-id responses carry: the post joined with
// its author's display name. It exists separately from Blog so the write
// model (with AuthorID) and the read model (with the joined Author) can't be
// confused for one another.
type BlogView struct {
	ID      int64  `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
	Author  Author `json:"author"`
}
