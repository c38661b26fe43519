package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"time"

	"blogicum/internal/access"
	"blogicum/internal/config"
	"blogicum/internal/models"
	"blogicum/internal/repository"
	"blogicum/internal/storage"
	"blogicum/internal/visibility"
)

var ErrImagesDisabled = errors.New("хранилище изображений не настроено")

type PostPage struct {
	Posts      []models.Post `json:"posts"`
	Pagination Pagination    `json:"pagination"`
}

type CategoryPage struct {
	Category *models.Category `json:"category"`
	PostPage
}

type ProfilePage struct {
	Profile *models.User `json:"profile"`
	PostPage
}

type PostDetail struct {
	Post     *models.Post     `json:"post"`
	Comments []models.Comment `json:"comments"`
}

type PostService interface {
	Index(ctx context.Context, page int) (*PostPage, error)
	Category(ctx context.Context, slug string, page int) (*CategoryPage, error)
	Profile(ctx context.Context, username string, viewer access.Viewer, page int) (*ProfilePage, error)
	Detail(ctx context.Context, postID int64, viewer access.Viewer) (*PostDetail, error)
	Search(ctx context.Context, base visibility.Base, page int) (*PostPage, error)

	Authorize(ctx context.Context, viewer access.Viewer, postID int64) (access.Decision, error)
	ForEdit(ctx context.Context, viewer access.Viewer, postID int64) (*models.Post, access.Decision, error)
	Create(ctx context.Context, viewer access.Viewer, req repository.PostRequest) (*models.Post, error)
	Update(ctx context.Context, viewer access.Viewer, postID int64, req repository.PostRequest) (access.Decision, error)
	Delete(ctx context.Context, viewer access.Viewer, postID int64) (access.Decision, error)
	SetImage(ctx context.Context, viewer access.Viewer, postID int64, fileName string, file io.Reader, size int64) (access.Decision, error)
	DeleteImage(ctx context.Context, viewer access.Viewer, postID int64) (access.Decision, error)
}

type postService struct {
	postRepo     repository.PostRepository
	commentRepo  repository.CommentRepository
	categoryRepo repository.CategoryRepository
	locationRepo repository.LocationRepository
	userRepo     repository.UserRepository
	storage      storage.Storage
	cfg          *config.Config
	now          func() time.Time
}

func NewPostService(rep *repository.Repository, storage storage.Storage, cfg *config.Config) PostService {
	return &postService{
		postRepo:     rep.Post,
		commentRepo:  rep.Comment,
		categoryRepo: rep.Category,
		locationRepo: rep.Location,
		userRepo:     rep.User,
		storage:      storage,
		cfg:          cfg,
		now:          time.Now,
	}
}

func (p *postService) Index(ctx context.Context, page int) (*PostPage, error) {
	return p.list(ctx, visibility.Listing(visibility.Base{}), page)
}

// Category hides unpublished categories entirely, not just their posts.
func (p *postService) Category(ctx context.Context, slug string, page int) (*CategoryPage, error) {
	category, err := p.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, translate(err)
	}
	if !category.IsPublished {
		return nil, fmt.Errorf("категория %s: %w", slug, access.ErrNotFound)
	}

	list, err := p.list(ctx, visibility.Listing(visibility.Base{CategoryID: category.ID}), page)
	if err != nil {
		return nil, err
	}

	return &CategoryPage{Category: category, PostPage: *list}, nil
}

// Profile shows the owner everything they wrote and everyone else only the public part.
func (p *postService) Profile(ctx context.Context, username string, viewer access.Viewer, page int) (*ProfilePage, error) {
	profile, err := p.userRepo.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, translate(err)
	}

	ownerIsViewing := viewer.ID == profile.ID
	list, err := p.list(ctx, visibility.Profile(profile.ID, ownerIsViewing), page)
	if err != nil {
		return nil, err
	}

	return &ProfilePage{Profile: profile, PostPage: *list}, nil
}

func (p *postService) Detail(ctx context.Context, postID int64, viewer access.Viewer) (*PostDetail, error) {
	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, translate(err)
	}

	post, err = access.AuthorizeView(post, viewer, p.now())
	if err != nil {
		return nil, err
	}

	// unpublished comments are listed too
	comments, err := p.commentRepo.ListByPost(ctx, post.ID)
	if err != nil {
		return nil, err
	}

	post.CommentCount = len(comments)
	p.resolveImage(ctx, post)

	return &PostDetail{Post: post, Comments: comments}, nil
}

// Search is the staff listing: no visibility filter, optional title and publication filters.
func (p *postService) Search(ctx context.Context, base visibility.Base, page int) (*PostPage, error) {
	return p.list(ctx, visibility.Spec{Base: base, Annotate: true}, page)
}

func (p *postService) list(ctx context.Context, spec visibility.Spec, page int) (*PostPage, error) {
	now := p.now()

	total, err := p.postRepo.Count(ctx, spec, now)
	if err != nil {
		return nil, err
	}

	pagination, err := paginate(page, total, p.cfg.Pagination)
	if err != nil {
		return nil, err
	}

	posts, err := p.postRepo.Find(ctx, window(spec, pagination), now)
	if err != nil {
		return nil, err
	}

	for i := range posts {
		p.resolveImage(ctx, &posts[i])
	}

	return &PostPage{Posts: posts, Pagination: pagination}, nil
}

// Authorize runs the ownership check alone, so a submission can be refused before its body is read.
func (p *postService) Authorize(ctx context.Context, viewer access.Viewer, postID int64) (access.Decision, error) {
	_, decision, err := p.authorize(ctx, viewer, postID)
	return decision, err
}

// ForEdit serves the edit and delete forms. Non-authors get the same redirect as on submit.
func (p *postService) ForEdit(ctx context.Context, viewer access.Viewer, postID int64) (*models.Post, access.Decision, error) {
	post, decision, err := p.authorize(ctx, viewer, postID)
	if err != nil || !decision.Allowed {
		return nil, decision, err
	}

	p.resolveImage(ctx, post)

	return post, decision, nil
}

func (p *postService) Create(ctx context.Context, viewer access.Viewer, req repository.PostRequest) (*models.Post, error) {
	if viewer.IsAnonymous() {
		return nil, access.ErrUnauthenticated
	}

	if err := p.checkRelations(ctx, req); err != nil {
		return nil, err
	}

	authorID := viewer.ID
	post := &models.Post{
		Title:       req.Title,
		Text:        req.Text,
		PubDate:     req.PubDate,
		IsPublished: publishedOrDefault(req.IsPublished),
		CreatedAt:   p.now(),
		AuthorID:    &authorID,
		LocationID:  req.LocationID,
		CategoryID:  req.CategoryID,
	}

	err := p.postRepo.Create(ctx, post)
	if err != nil {
		return nil, translate(err)
	}

	return post, nil
}

func (p *postService) Update(ctx context.Context, viewer access.Viewer, postID int64, req repository.PostRequest) (access.Decision, error) {
	post, decision, err := p.authorize(ctx, viewer, postID)
	if err != nil || !decision.Allowed {
		return decision, err
	}

	if err := p.checkRelations(ctx, req); err != nil {
		return access.Decision{}, err
	}

	post.Title = req.Title
	post.Text = req.Text
	post.PubDate = req.PubDate
	post.IsPublished = publishedOrDefault(req.IsPublished)
	post.LocationID = req.LocationID
	post.CategoryID = req.CategoryID

	err = p.postRepo.Update(ctx, post)
	if err != nil {
		return access.Decision{}, translate(err)
	}

	return decision, nil
}

// Delete removes the post with its comments. A failure to drop the image object is only logged.
func (p *postService) Delete(ctx context.Context, viewer access.Viewer, postID int64) (access.Decision, error) {
	post, decision, err := p.authorize(ctx, viewer, postID)
	if err != nil || !decision.Allowed {
		return decision, err
	}

	err = p.postRepo.Delete(ctx, post.ID)
	if err != nil {
		return access.Decision{}, translate(err)
	}

	p.dropObject(ctx, post.Image)

	return decision, nil
}

func (p *postService) SetImage(ctx context.Context, viewer access.Viewer, postID int64, fileName string, file io.Reader, size int64) (access.Decision, error) {
	post, decision, err := p.authorize(ctx, viewer, postID)
	if err != nil || !decision.Allowed {
		return decision, err
	}

	if p.storage == nil {
		return access.Decision{}, ErrImagesDisabled
	}

	objectName, err := p.storage.UploadImage(ctx, post.ID, fileName, file, size)
	if err != nil {
		return access.Decision{}, err
	}

	err = p.postRepo.UpdateImage(ctx, post.ID, objectName)
	if err != nil {
		p.dropObject(ctx, objectName)
		return access.Decision{}, translate(err)
	}

	p.dropObject(ctx, post.Image)

	return decision, nil
}

func (p *postService) DeleteImage(ctx context.Context, viewer access.Viewer, postID int64) (access.Decision, error) {
	post, decision, err := p.authorize(ctx, viewer, postID)
	if err != nil || !decision.Allowed {
		return decision, err
	}

	if post.Image == "" {
		return decision, nil
	}

	err = p.postRepo.UpdateImage(ctx, post.ID, "")
	if err != nil {
		return access.Decision{}, translate(err)
	}

	p.dropObject(ctx, post.Image)

	return decision, nil
}

// authorize loads the post and runs the ownership check before any change.
func (p *postService) authorize(ctx context.Context, viewer access.Viewer, postID int64) (*models.Post, access.Decision, error) {
	if viewer.IsAnonymous() {
		return nil, access.Decision{}, access.ErrUnauthenticated
	}

	post, err := p.postRepo.GetByID(ctx, postID)
	if err != nil {
		return nil, access.Decision{}, translate(err)
	}

	decision, err := access.AuthorizePostMutation(post, viewer)
	if err != nil {
		return nil, access.Decision{}, err
	}

	return post, decision, nil
}

// checkRelations rejects references to missing locations and to missing or hidden categories.
func (p *postService) checkRelations(ctx context.Context, req repository.PostRequest) error {
	fields := map[string]string{}

	if req.CategoryID != nil {
		category, err := p.categoryRepo.GetByID(ctx, *req.CategoryID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			fields["categoryId"] = "категория не найдена"
		case err != nil:
			return err
		case !category.IsPublished:
			fields["categoryId"] = "категория снята с публикации"
		}
	}

	if req.LocationID != nil {
		_, err := p.locationRepo.GetByID(ctx, *req.LocationID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			fields["locationId"] = "местоположение не найдено"
		case err != nil:
			return err
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	return nil
}

func (p *postService) resolveImage(ctx context.Context, post *models.Post) {
	if post.Image == "" || p.storage == nil {
		return
	}

	url, err := p.storage.GetImageURL(ctx, post.Image)
	if err != nil {
		log.Printf("Не удалось получить ссылку на изображение поста %d: %v", post.ID, err)
		return
	}
	post.ImageURL = url
}

func (p *postService) dropObject(ctx context.Context, objectName string) {
	if objectName == "" || p.storage == nil {
		return
	}

	if err := p.storage.DeleteImage(ctx, objectName); err != nil {
		log.Printf("Не удалось удалить изображение %s: %v", objectName, err)
	}
}

func publishedOrDefault(isPublished *bool) bool {
	if isPublished == nil {
		return true
	}
	return *isPublished
}
