package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/visibility"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)

type seeded struct {
	repo      *repository.Repository
	authorID  int64
	published int64
	hidden    int64
}

func seed(t *testing.T) *seeded {
	t.Helper()
	ctx := context.Background()

	s := &seeded{repo: New().Repository()}

	author := &models.User{Username: "alice"}
	require.NoError(t, s.repo.User.CreateUser(ctx, author, "password123"))
	s.authorID = author.ID

	published := &models.Category{Title: "Путешествия", Slug: "travel", IsPublished: true}
	require.NoError(t, s.repo.Category.Create(ctx, published))
	s.published = published.ID

	hidden := &models.Category{Title: "Черновики", Slug: "drafts"}
	require.NoError(t, s.repo.Category.Create(ctx, hidden))
	s.hidden = hidden.ID

	return s
}

func (s *seeded) post(t *testing.T, text string, pubDate time.Time, isPublished bool, categoryID int64) *models.Post {
	t.Helper()

	post := &models.Post{
		Title:       text,
		Text:        text,
		PubDate:     pubDate,
		IsPublished: isPublished,
		AuthorID:    &s.authorID,
	}
	if categoryID != 0 {
		post.CategoryID = &categoryID
	}

	require.NoError(t, s.repo.Post.Create(context.Background(), post))
	return post
}

func texts(posts []models.Post) []string {
	result := make([]string, 0, len(posts))
	for _, post := range posts {
		result = append(result, post.Text)
	}
	return result
}

func TestFind_ListingKeepsOnlyPublicPosts(t *testing.T) {
	s := seed(t)

	s.post(t, "public", now.Add(-time.Hour), true, s.published)
	s.post(t, "unpublished", now.Add(-time.Hour), false, s.published)
	s.post(t, "scheduled", now.Add(time.Hour), true, s.published)
	s.post(t, "hidden category", now.Add(-time.Hour), true, s.hidden)
	s.post(t, "no category", now.Add(-time.Hour), true, 0)
	s.post(t, "exactly now", now, true, s.published)

	posts, err := s.repo.Post.Find(context.Background(), visibility.Listing(visibility.Base{}), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"exactly now", "public"}, texts(posts))

	count, err := s.repo.Post.Count(context.Background(), visibility.Listing(visibility.Base{}), now)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	all, err := s.repo.Post.Find(context.Background(), visibility.Profile(s.authorID, true), now)
	require.NoError(t, err)
	assert.Len(t, all, 6, "владелец видит все свои посты")
}

func TestFind_OrderingAndWindow(t *testing.T) {
	s := seed(t)

	first := s.post(t, "a", now.Add(-2*time.Hour), true, s.published)
	second := s.post(t, "b", now.Add(-time.Hour), true, s.published)
	third := s.post(t, "c", now.Add(-time.Hour), true, s.published)

	posts, err := s.repo.Post.Find(context.Background(), visibility.Listing(visibility.Base{}), now)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []int64{third.ID, second.ID, first.ID}, []int64{posts[0].ID, posts[1].ID, posts[2].ID})

	spec := visibility.Listing(visibility.Base{})
	spec.Limit = 2
	spec.Offset = 2

	page, err := s.repo.Post.Find(context.Background(), spec, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"a"}, texts(page))
}

func TestFind_AnnotateCountsEveryComment(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	post := s.post(t, "public", now.Add(-time.Hour), true, s.published)

	require.NoError(t, s.repo.Comment.Create(ctx, &models.Comment{Text: "1", AuthorID: s.authorID, PostID: post.ID, IsPublished: true}))
	require.NoError(t, s.repo.Comment.Create(ctx, &models.Comment{Text: "2", AuthorID: s.authorID, PostID: post.ID, IsPublished: false}))

	posts, err := s.repo.Post.Find(ctx, visibility.Listing(visibility.Base{}), now)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 2, posts[0].CommentCount, "неопубликованные комментарии тоже учитываются")

	detail, err := s.repo.Post.Find(ctx, visibility.Detail(post.ID), now)
	require.NoError(t, err)
	require.Len(t, detail, 1)
	assert.Zero(t, detail[0].CommentCount, "без аннотации счётчик не заполняется")

	comments, err := s.repo.Comment.ListByPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
	assert.Equal(t, "alice", comments[0].Author.Username)
}

func TestFind_DetailResolvesRelations(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	location := &models.Location{Name: "Москва", IsPublished: true}
	require.NoError(t, s.repo.Location.Create(ctx, location))

	post := s.post(t, "with relations", now.Add(-time.Hour), true, s.published)
	post.LocationID = &location.ID
	require.NoError(t, s.repo.Post.Update(ctx, post))

	found, err := s.repo.Post.GetByID(ctx, post.ID)
	require.NoError(t, err)
	require.NotNil(t, found.Author)
	assert.Equal(t, "alice", found.Author.Username)
	assert.Empty(t, found.Author.PasswordHash)
	require.NotNil(t, found.Location)
	assert.Equal(t, "Москва", found.Location.Name)
	require.NotNil(t, found.Category)
	assert.Equal(t, "travel", found.Category.Slug)

	_, err = s.repo.Post.GetByID(ctx, 999)
	assert.True(t, repository.IsNotFound(err))
}

func TestCategoryDelete_DetachesPosts(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	post := s.post(t, "public", now.Add(-time.Hour), true, s.published)
	require.NoError(t, s.repo.Category.Delete(ctx, s.published))

	found, err := s.repo.Post.GetByID(ctx, post.ID)
	require.NoError(t, err)
	assert.Nil(t, found.CategoryID)

	posts, err := s.repo.Post.Find(ctx, visibility.Listing(visibility.Base{}), now)
	require.NoError(t, err)
	assert.Empty(t, posts, "пост без категории выпадает из ленты")
}

func TestPostDelete_RemovesComments(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	post := s.post(t, "public", now.Add(-time.Hour), true, s.published)
	comment := &models.Comment{Text: "c", AuthorID: s.authorID, PostID: post.ID, IsPublished: true}
	require.NoError(t, s.repo.Comment.Create(ctx, comment))

	require.NoError(t, s.repo.Post.Delete(ctx, post.ID))

	_, err := s.repo.Comment.GetForPost(ctx, post.ID, comment.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	assert.ErrorIs(t, s.repo.Post.Delete(ctx, post.ID), repository.ErrNotFound)
}

func TestComment_GetForPostChecksPost(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	first := s.post(t, "first", now.Add(-time.Hour), true, s.published)
	second := s.post(t, "second", now.Add(-time.Hour), true, s.published)

	comment := &models.Comment{Text: "c", AuthorID: s.authorID, PostID: first.ID, IsPublished: true}
	require.NoError(t, s.repo.Comment.Create(ctx, comment))

	_, err := s.repo.Comment.GetForPost(ctx, second.ID, comment.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)

	found, err := s.repo.Comment.GetForPost(ctx, first.ID, comment.ID)
	require.NoError(t, err)
	assert.Equal(t, "c", found.Text)

	err = s.repo.Comment.Create(ctx, &models.Comment{Text: "c", AuthorID: s.authorID, PostID: 999})
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestUniqueConstraints(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	first := s.post(t, "same", now, true, s.published)
	other := s.post(t, "other", now, true, s.published)

	dup := &models.Post{Title: "x", Text: "same", PubDate: now}
	assert.ErrorIs(t, s.repo.Post.Create(ctx, dup), repository.ErrDuplicateText)

	other.Text = "same"
	assert.ErrorIs(t, s.repo.Post.Update(ctx, other), repository.ErrDuplicateText)

	first.Title = "переименован"
	assert.NoError(t, s.repo.Post.Update(ctx, first), "свой текст не считается дубликатом")

	assert.ErrorIs(t, s.repo.Category.Create(ctx, &models.Category{Slug: "travel"}), repository.ErrDuplicateSlug)
	assert.ErrorIs(t, s.repo.User.CreateUser(ctx, &models.User{Username: "alice"}, "password123"), repository.ErrDuplicateUsername)
}

func TestUser_RefreshToken(t *testing.T) {
	s := seed(t)
	ctx := context.Background()

	require.NoError(t, s.repo.User.UpdateRefreshToken(ctx, s.authorID, "token", time.Now().Add(time.Hour)))

	user, err := s.repo.User.GetUserByRefreshToken(ctx, "token")
	require.NoError(t, err)
	assert.Equal(t, s.authorID, user.ID)

	require.NoError(t, s.repo.User.UpdateRefreshToken(ctx, s.authorID, "token", time.Now().Add(-time.Hour)))
	_, err = s.repo.User.GetUserByRefreshToken(ctx, "token")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = s.repo.User.GetUserByRefreshToken(ctx, "")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestStore_ConcurrentCreates(t *testing.T) {
	s := seed(t)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			post := &models.Post{Title: "p", Text: fmt.Sprintf("post %d", i), PubDate: now, IsPublished: true, CategoryID: &s.published}
			assert.NoError(t, s.repo.Post.Create(context.Background(), post))
		}(i)
	}
	wg.Wait()

	count, err := s.repo.Post.Count(context.Background(), visibility.Listing(visibility.Base{}), now)
	require.NoError(t, err)
	assert.Equal(t, 20, count)
}
