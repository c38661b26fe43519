// Package memory keeps the blog in process memory. It serves the same
// repository interfaces as the Postgres implementation and answers
// visibility specs with the same rule, which makes it suitable for local runs
// and handler tests.
package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/visibility"

	"golang.org/x/crypto/bcrypt"
)

type Store struct {
	mu         sync.RWMutex
	users      map[int64]*models.User
	categories map[int64]*models.Category
	locations  map[int64]*models.Location
	posts      map[int64]*models.Post
	comments   map[int64]*models.Comment
	lastID     map[string]int64
}

func New() *Store {
	return &Store{
		users:      make(map[int64]*models.User),
		categories: make(map[int64]*models.Category),
		locations:  make(map[int64]*models.Location),
		posts:      make(map[int64]*models.Post),
		comments:   make(map[int64]*models.Comment),
		lastID:     make(map[string]int64),
	}
}

// NewRepository returns the repository set over a fresh store.
func NewRepository() *repository.Repository {
	return New().Repository()
}

func (s *Store) Repository() *repository.Repository {
	return &repository.Repository{
		User:     &userRepo{s},
		Category: &categoryRepo{s},
		Location: &locationRepo{s},
		Post:     &postRepo{s},
		Comment:  &commentRepo{s},
		Tables:   &tablesRepo{},
	}
}

// nextID must be called with the write lock held.
func (s *Store) nextID(table string) int64 {
	s.lastID[table]++
	return s.lastID[table]
}

type userRepo struct{ s *Store }

func (r *userRepo) CreateUser(ctx context.Context, user *models.User, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка при хешировании пароля: %w", err)
	}

	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.users {
		if existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}

	user.ID = r.s.nextID("users")
	user.PasswordHash = string(hashedPassword)
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	stored := *user
	r.s.users[user.ID] = &stored
	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, userID int64) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	user, ok := r.s.users[userID]
	if !ok {
		return nil, fmt.Errorf("пользователь с ID %d: %w", userID, repository.ErrNotFound)
	}

	found := *user
	return &found, nil
}

func (r *userRepo) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, user := range r.s.users {
		if user.Username == username {
			found := *user
			return &found, nil
		}
	}

	return nil, fmt.Errorf("пользователь %s: %w", username, repository.ErrNotFound)
}

func (r *userRepo) UpdateUser(ctx context.Context, user *models.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.users[user.ID]
	if !ok {
		return fmt.Errorf("пользователь с ID %d: %w", user.ID, repository.ErrNotFound)
	}

	for id, existing := range r.s.users {
		if id != user.ID && existing.Username == user.Username {
			return repository.ErrDuplicateUsername
		}
	}

	stored.Username = user.Username
	stored.Email = user.Email
	stored.FirstName = user.FirstName
	stored.LastName = user.LastName
	return nil
}

func (r *userRepo) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := r.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, fmt.Errorf("неверный пароль")
	}

	return user, nil
}

func (r *userRepo) UpdateRefreshToken(ctx context.Context, userID int64, refreshToken string, expiryTime time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	user, ok := r.s.users[userID]
	if !ok {
		return fmt.Errorf("пользователь с ID %d: %w", userID, repository.ErrNotFound)
	}

	user.RefreshToken = refreshToken
	user.RefreshTokenExpiryTime = expiryTime
	return nil
}

func (r *userRepo) GetUserByRefreshToken(ctx context.Context, refreshToken string) (*models.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	now := time.Now()
	for _, user := range r.s.users {
		if refreshToken != "" && user.RefreshToken == refreshToken && user.RefreshTokenExpiryTime.After(now) {
			found := *user
			return &found, nil
		}
	}

	return nil, fmt.Errorf("недействительный или просроченный refresh token: %w", repository.ErrNotFound)
}

type categoryRepo struct{ s *Store }

func (r *categoryRepo) Create(ctx context.Context, category *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	for _, existing := range r.s.categories {
		if existing.Slug == category.Slug {
			return repository.ErrDuplicateSlug
		}
	}

	category.ID = r.s.nextID("categories")
	if category.CreatedAt.IsZero() {
		category.CreatedAt = time.Now()
	}

	stored := *category
	r.s.categories[category.ID] = &stored
	return nil
}

func (r *categoryRepo) GetByID(ctx context.Context, categoryID int64) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	category, ok := r.s.categories[categoryID]
	if !ok {
		return nil, fmt.Errorf("категория с ID %d: %w", categoryID, repository.ErrNotFound)
	}

	found := *category
	return &found, nil
}

func (r *categoryRepo) GetBySlug(ctx context.Context, slug string) (*models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	for _, category := range r.s.categories {
		if category.Slug == slug {
			found := *category
			return &found, nil
		}
	}

	return nil, fmt.Errorf("категория %s: %w", slug, repository.ErrNotFound)
}

func (r *categoryRepo) List(ctx context.Context, titleQuery string) ([]models.Category, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	categories := []models.Category{}
	for _, category := range r.s.categories {
		if containsFold(category.Title, titleQuery) {
			categories = append(categories, *category)
		}
	}

	sort.Slice(categories, func(i, j int) bool { return categories[i].Title < categories[j].Title })
	return categories, nil
}

func (r *categoryRepo) Update(ctx context.Context, category *models.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.categories[category.ID]
	if !ok {
		return fmt.Errorf("категория с ID %d: %w", category.ID, repository.ErrNotFound)
	}

	for id, existing := range r.s.categories {
		if id != category.ID && existing.Slug == category.Slug {
			return repository.ErrDuplicateSlug
		}
	}

	stored.Title = category.Title
	stored.Description = category.Description
	stored.Slug = category.Slug
	stored.IsPublished = category.IsPublished
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, categoryID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.categories[categoryID]; !ok {
		return fmt.Errorf("категория с ID %d: %w", categoryID, repository.ErrNotFound)
	}

	delete(r.s.categories, categoryID)
	for _, post := range r.s.posts {
		if post.CategoryID != nil && *post.CategoryID == categoryID {
			post.CategoryID = nil
		}
	}
	return nil
}

type locationRepo struct{ s *Store }

func (r *locationRepo) Create(ctx context.Context, location *models.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	location.ID = r.s.nextID("locations")
	if location.CreatedAt.IsZero() {
		location.CreatedAt = time.Now()
	}

	stored := *location
	r.s.locations[location.ID] = &stored
	return nil
}

func (r *locationRepo) GetByID(ctx context.Context, locationID int64) (*models.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	location, ok := r.s.locations[locationID]
	if !ok {
		return nil, fmt.Errorf("местоположение с ID %d: %w", locationID, repository.ErrNotFound)
	}

	found := *location
	return &found, nil
}

func (r *locationRepo) List(ctx context.Context, nameQuery string) ([]models.Location, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	locations := []models.Location{}
	for _, location := range r.s.locations {
		if containsFold(location.Name, nameQuery) {
			locations = append(locations, *location)
		}
	}

	sort.Slice(locations, func(i, j int) bool { return locations[i].Name < locations[j].Name })
	return locations, nil
}

func (r *locationRepo) Update(ctx context.Context, location *models.Location) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.locations[location.ID]
	if !ok {
		return fmt.Errorf("местоположение с ID %d: %w", location.ID, repository.ErrNotFound)
	}

	stored.Name = location.Name
	stored.IsPublished = location.IsPublished
	return nil
}

func (r *locationRepo) Delete(ctx context.Context, locationID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.locations[locationID]; !ok {
		return fmt.Errorf("местоположение с ID %d: %w", locationID, repository.ErrNotFound)
	}

	delete(r.s.locations, locationID)
	for _, post := range r.s.posts {
		if post.LocationID != nil && *post.LocationID == locationID {
			post.LocationID = nil
		}
	}
	return nil
}

type postRepo struct{ s *Store }

// stored posts keep only foreign keys; relations are resolved on read
func (r *postRepo) Create(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if r.s.textTaken(post.Text, 0) {
		return repository.ErrDuplicateText
	}

	post.ID = r.s.nextID("posts")
	if post.CreatedAt.IsZero() {
		post.CreatedAt = time.Now()
	}

	r.s.posts[post.ID] = stripRelations(post)
	return nil
}

func (r *postRepo) GetByID(ctx context.Context, postID int64) (*models.Post, error) {
	posts, err := r.Find(ctx, visibility.Detail(postID), time.Now())
	if err != nil {
		return nil, err
	}

	if len(posts) == 0 {
		return nil, fmt.Errorf("пост с ID %d: %w", postID, repository.ErrNotFound)
	}

	return &posts[0], nil
}

func (r *postRepo) Find(ctx context.Context, spec visibility.Spec, now time.Time) ([]models.Post, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	posts := r.s.matching(spec, now)
	visibility.Sort(posts)
	return visibility.Window(posts, spec), nil
}

func (r *postRepo) Count(ctx context.Context, spec visibility.Spec, now time.Time) (int, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	return len(r.s.matching(spec, now)), nil
}

func (r *postRepo) Update(ctx context.Context, post *models.Post) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[post.ID]
	if !ok {
		return fmt.Errorf("пост с ID %d: %w", post.ID, repository.ErrNotFound)
	}

	if r.s.textTaken(post.Text, post.ID) {
		return repository.ErrDuplicateText
	}

	stored.Title = post.Title
	stored.Text = post.Text
	stored.PubDate = post.PubDate
	stored.IsPublished = post.IsPublished
	stored.LocationID = post.LocationID
	stored.CategoryID = post.CategoryID
	return nil
}

func (r *postRepo) UpdateImage(ctx context.Context, postID int64, image string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.posts[postID]
	if !ok {
		return fmt.Errorf("пост с ID %d: %w", postID, repository.ErrNotFound)
	}

	stored.Image = image
	return nil
}

func (r *postRepo) Delete(ctx context.Context, postID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[postID]; !ok {
		return fmt.Errorf("пост с ID %d: %w", postID, repository.ErrNotFound)
	}

	delete(r.s.posts, postID)
	for id, comment := range r.s.comments {
		if comment.PostID == postID {
			delete(r.s.comments, id)
		}
	}
	return nil
}

// matching must be called with the read lock held.
func (s *Store) matching(spec visibility.Spec, now time.Time) []models.Post {
	var counts map[int64]int
	if spec.Annotate {
		counts = make(map[int64]int)
		for _, comment := range s.comments {
			counts[comment.PostID]++
		}
	}

	posts := []models.Post{}
	for _, stored := range s.posts {
		post := s.hydrate(stored)
		if !visibility.Matches(&post, spec, now) {
			continue
		}
		post.CommentCount = counts[post.ID]
		posts = append(posts, post)
	}

	return posts
}

func (s *Store) hydrate(stored *models.Post) models.Post {
	post := *stored

	if post.AuthorID != nil {
		if user, ok := s.users[*post.AuthorID]; ok {
			post.Author = &models.User{ID: user.ID, Username: user.Username, FirstName: user.FirstName, LastName: user.LastName}
		}
	}
	if post.LocationID != nil {
		if location, ok := s.locations[*post.LocationID]; ok {
			found := *location
			post.Location = &found
		}
	}
	if post.CategoryID != nil {
		if category, ok := s.categories[*post.CategoryID]; ok {
			found := *category
			post.Category = &found
		}
	}

	return post
}

func (s *Store) textTaken(text string, exceptID int64) bool {
	for id, post := range s.posts {
		if id != exceptID && post.Text == text {
			return true
		}
	}
	return false
}

func stripRelations(post *models.Post) *models.Post {
	stored := *post
	stored.Author = nil
	stored.Location = nil
	stored.Category = nil
	stored.CommentCount = 0
	return &stored
}

type commentRepo struct{ s *Store }

func (r *commentRepo) Create(ctx context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.posts[comment.PostID]; !ok {
		return fmt.Errorf("пост с ID %d: %w", comment.PostID, repository.ErrNotFound)
	}

	comment.ID = r.s.nextID("comments")
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = time.Now()
	}

	stored := *comment
	stored.Author = nil
	r.s.comments[comment.ID] = &stored
	return nil
}

func (r *commentRepo) GetForPost(ctx context.Context, postID, commentID int64) (*models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comment, ok := r.s.comments[commentID]
	if !ok || comment.PostID != postID {
		return nil, fmt.Errorf("комментарий %d к посту %d: %w", commentID, postID, repository.ErrNotFound)
	}

	found := *comment
	return &found, nil
}

func (r *commentRepo) ListByPost(ctx context.Context, postID int64) ([]models.Comment, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	comments := []models.Comment{}
	for _, stored := range r.s.comments {
		if stored.PostID != postID {
			continue
		}
		comment := *stored
		author := &models.User{ID: comment.AuthorID}
		if user, ok := r.s.users[comment.AuthorID]; ok {
			author.Username = user.Username
		}
		comment.Author = author
		comments = append(comments, comment)
	}

	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}
		return comments[i].ID < comments[j].ID
	})
	return comments, nil
}

func (r *commentRepo) Update(ctx context.Context, comment *models.Comment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	stored, ok := r.s.comments[comment.ID]
	if !ok || stored.PostID != comment.PostID {
		return fmt.Errorf("комментарий с ID %d: %w", comment.ID, repository.ErrNotFound)
	}

	stored.Text = comment.Text
	return nil
}

func (r *commentRepo) Delete(ctx context.Context, commentID int64) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.comments[commentID]; !ok {
		return fmt.Errorf("комментарий с ID %d: %w", commentID, repository.ErrNotFound)
	}

	delete(r.s.comments, commentID)
	return nil
}

type tablesRepo struct{}

// CountTables reports the number of collections the store keeps, matching the SQL schema.
func (r *tablesRepo) CountTables(ctx context.Context) (int, error) {
	return 5, nil
}

func containsFold(s, substr string) bool {
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
