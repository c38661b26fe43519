package models

import (
	"time"
)

type User struct {
	ID                     int64     `json:"id" db:"id"`
	Username               string    `json:"username" db:"username"`
	Email                  string    `json:"email" db:"email"`
	FirstName              string    `json:"firstName" db:"first_name"`
	LastName               string    `json:"lastName" db:"last_name"`
	PasswordHash           string    `json:"-" db:"password_hash"`
	IsStaff                bool      `json:"isStaff" db:"is_staff"`
	RefreshToken           string    `json:"-" db:"refresh_token"`
	RefreshTokenExpiryTime time.Time `json:"-" db:"refresh_token_expiry_time"`
	CreatedAt              time.Time `json:"createdAt" db:"created_at"`
}

type Category struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Slug        string    `json:"slug" db:"slug"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

type Location struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}

// Post carries its author, location and category resolved eagerly.
// CommentCount is filled only by annotated queries, ImageURL only by the service layer.
type Post struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Text         string    `json:"text"`
	PubDate      time.Time `json:"pubDate"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	Image        string    `json:"image,omitempty"`
	ImageURL     string    `json:"imageUrl,omitempty"`
	AuthorID     *int64    `json:"authorId"`
	LocationID   *int64    `json:"locationId"`
	CategoryID   *int64    `json:"categoryId"`
	Author       *User     `json:"author,omitempty"`
	Location     *Location `json:"location,omitempty"`
	Category     *Category `json:"category,omitempty"`
	CommentCount int       `json:"commentCount"`
}

type Comment struct {
	ID          int64     `json:"id" db:"id"`
	Text        string    `json:"text" db:"text"`
	AuthorID    int64     `json:"authorId" db:"author_id"`
	PostID      int64     `json:"postId" db:"post_id"`
	IsPublished bool      `json:"isPublished" db:"is_published"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	Author      *User     `json:"author,omitempty" db:"-"`
}

// IsAuthoredBy reports whether userID wrote the post. Posts whose author was deleted belong to nobody.
func (p *Post) IsAuthoredBy(userID int64) bool {
	return p.AuthorID != nil && userID != 0 && *p.AuthorID == userID
}
