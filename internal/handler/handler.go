package handlers

import (
	"reflect"
	"regexp"
	"strings"

	"blogicum/internal/config"
	"blogicum/internal/service"

	"github.com/go-playground/validator/v10"
)

var (
	slugPattern     = regexp.MustCompile(`^[-a-zA-Z0-9_]+$`)
	usernamePattern = regexp.MustCompile(`^[\w.@+-]+$`)
)

type Handlers struct {
	AuthService    service.AuthService
	UserService    service.UserService
	PostService    service.PostService
	CommentService service.CommentService
	AdminService   service.AdminService
	TablesService  service.TablesService
	Cfg            *config.Config
	Validate       *validator.Validate
}

func NewHandlers(service *service.Service, config *config.Config) *Handlers {
	return &Handlers{
		AuthService:    service.Auth,
		UserService:    service.User,
		PostService:    service.Post,
		CommentService: service.Comment,
		AdminService:   service.Admin,
		TablesService:  service.Tables,
		Cfg:            config,
		Validate:       NewValidator(),
	}
}

// NewValidator reports fields by their JSON names and knows the slug and username formats.
func NewValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return field.Name
		}
		return name
	})

	// patterns are fixed, registration cannot fail
	_ = validate.RegisterValidation("slug", func(fl validator.FieldLevel) bool {
		return slugPattern.MatchString(fl.Field().String())
	})
	_ = validate.RegisterValidation("username", func(fl validator.FieldLevel) bool {
		return usernamePattern.MatchString(fl.Field().String())
	})

	return validate
}
