package service

import (
	"blogicum/internal/config"
	"blogicum/internal/repository"
	"blogicum/internal/storage"
)

type Service struct {
	Auth    AuthService
	User    UserService
	Post    PostService
	Comment CommentService
	Admin   AdminService
	Tables  TablesService
}

// NewService wires every service over one repository set. storage may be nil; image uploads are then refused.
func NewService(rep *repository.Repository, cfg *config.Config, storage storage.Storage) *Service {
	return &Service{
		Auth:    NewAuthService(rep.User, cfg),
		User:    NewUserService(rep.User),
		Post:    NewPostService(rep, storage, cfg),
		Comment: NewCommentService(rep.Post, rep.Comment),
		Admin:   NewAdminService(rep.Category, rep.Location),
		Tables:  NewTablesService(rep.Tables),
	}
}
