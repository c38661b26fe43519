// Package visibility decides which posts a listing returns.
//
// A Spec names the base collection and two independent switches: Filter keeps
// only publicly visible posts, Annotate attaches comment counts and orders the
// result newest first. Build turns a Spec into SQL for the relational store;
// Matches and Sort apply the same rule to posts already in memory.
package visibility

import (
	"sort"
	"strings"
	"time"

	"blogicum/internal/models"
)

// Base selects the collection a query starts from. Zero values do not restrict.
type Base struct {
	PostID     int64
	AuthorID   int64
	CategoryID int64

	// used by admin listings
	TitleQuery  string
	IsPublished *bool
}

type Spec struct {
	Base     Base
	Filter   bool
	Annotate bool

	// Limit of zero means no limit.
	Limit  int
	Offset int
}

// Listing describes every public feed.
func Listing(base Base) Spec {
	return Spec{Base: base, Filter: true, Annotate: true}
}

// Detail fetches a single post without filtering; access is checked per object.
func Detail(postID int64) Spec {
	return Spec{Base: Base{PostID: postID}}
}

// Profile lists an author's posts. Owners see everything they wrote.
func Profile(authorID int64, ownerIsViewing bool) Spec {
	return Spec{Base: Base{AuthorID: authorID}, Filter: !ownerIsViewing, Annotate: true}
}

const selectColumns = `
SELECT
	p.id, p.title, p.text, p.pub_date, p.is_published, p.created_at, p.image,
	p.author_id, p.location_id, p.category_id,
	u.username AS author_username, u.first_name AS author_first_name, u.last_name AS author_last_name,
	l.name AS location_name, l.is_published AS location_is_published, l.created_at AS location_created_at,
	c.title AS category_title, c.description AS category_description, c.slug AS category_slug,
	c.is_published AS category_is_published, c.created_at AS category_created_at,`

const commentCountColumn = `
	(SELECT COUNT(*) FROM comments cm WHERE cm.post_id = p.id) AS comment_count`

const noCommentCountColumn = `
	0 AS comment_count`

// author, location and category are always resolved in the same query
const joins = `
FROM posts p
LEFT JOIN users u ON u.id = p.author_id
LEFT JOIN locations l ON l.id = p.location_id
LEFT JOIN categories c ON c.id = p.category_id`

// default ordering of the posts table
const orderBy = `
ORDER BY p.pub_date DESC, p.id DESC`

// Build returns a query with named parameters and its arguments, ready for sqlx.Named.
func Build(spec Spec, now time.Time) (string, map[string]interface{}) {
	var b strings.Builder
	args := make(map[string]interface{})

	b.WriteString(selectColumns)
	if spec.Annotate {
		b.WriteString(commentCountColumn)
	} else {
		b.WriteString(noCommentCountColumn)
	}
	b.WriteString(joins)
	writeWhere(&b, args, spec, now)
	b.WriteString(orderBy)

	if spec.Limit > 0 {
		b.WriteString("\nLIMIT :limit OFFSET :offset")
		args["limit"] = spec.Limit
		args["offset"] = spec.Offset
	}

	return b.String(), args
}

// BuildCount counts the rows Build would return without a limit.
func BuildCount(spec Spec, now time.Time) (string, map[string]interface{}) {
	var b strings.Builder
	args := make(map[string]interface{})

	b.WriteString("SELECT COUNT(*)")
	b.WriteString(joins)
	writeWhere(&b, args, spec, now)

	return b.String(), args
}

func writeWhere(b *strings.Builder, args map[string]interface{}, spec Spec, now time.Time) {
	var conditions []string

	if spec.Base.PostID != 0 {
		conditions = append(conditions, "p.id = :post_id")
		args["post_id"] = spec.Base.PostID
	}
	if spec.Base.AuthorID != 0 {
		conditions = append(conditions, "p.author_id = :author_id")
		args["author_id"] = spec.Base.AuthorID
	}
	if spec.Base.CategoryID != 0 {
		conditions = append(conditions, "p.category_id = :category_id")
		args["category_id"] = spec.Base.CategoryID
	}
	if spec.Base.TitleQuery != "" {
		conditions = append(conditions, "p.title ILIKE :title_query")
		args["title_query"] = "%" + spec.Base.TitleQuery + "%"
	}
	if spec.Base.IsPublished != nil {
		conditions = append(conditions, "p.is_published = :base_is_published")
		args["base_is_published"] = *spec.Base.IsPublished
	}

	if spec.Filter {
		// a post without category joins NULL here and drops out
		conditions = append(conditions,
			"p.pub_date <= :now",
			"p.is_published = TRUE",
			"c.is_published = TRUE",
		)
		args["now"] = now
	}

	if len(conditions) == 0 {
		return
	}

	b.WriteString("\nWHERE ")
	b.WriteString(strings.Join(conditions, "\n\tAND "))
}

// IsPublic is the visibility predicate: published, not scheduled for later, in a published category.
func IsPublic(post *models.Post, now time.Time) bool {
	return post.IsPublished &&
		!post.PubDate.After(now) &&
		post.Category != nil &&
		post.Category.IsPublished
}

// Matches applies the base restriction and the public filter to a single post.
func Matches(post *models.Post, spec Spec, now time.Time) bool {
	base := spec.Base

	if base.PostID != 0 && post.ID != base.PostID {
		return false
	}
	if base.AuthorID != 0 && !post.IsAuthoredBy(base.AuthorID) {
		return false
	}
	if base.CategoryID != 0 && (post.CategoryID == nil || *post.CategoryID != base.CategoryID) {
		return false
	}
	if base.TitleQuery != "" && !strings.Contains(strings.ToLower(post.Title), strings.ToLower(base.TitleQuery)) {
		return false
	}
	if base.IsPublished != nil && post.IsPublished != *base.IsPublished {
		return false
	}

	if spec.Filter && !IsPublic(post, now) {
		return false
	}

	return true
}

// Sort orders posts the way Build does.
func Sort(posts []models.Post) {
	sort.SliceStable(posts, func(i, j int) bool {
		if !posts[i].PubDate.Equal(posts[j].PubDate) {
			return posts[i].PubDate.After(posts[j].PubDate)
		}
		return posts[i].ID > posts[j].ID
	})
}

// Window cuts the page described by spec out of an already ordered slice.
func Window(posts []models.Post, spec Spec) []models.Post {
	if spec.Offset >= len(posts) {
		return []models.Post{}
	}
	posts = posts[spec.Offset:]
	if spec.Limit > 0 && spec.Limit < len(posts) {
		posts = posts[:spec.Limit]
	}
	return posts
}
