package httpapi

import (
	"context"
	"net/http"
	"time"

	"forum/internal/adapters/httpapi/hateoas"
	"forum/internal/adapters/httpapi/middleware"
	"forum/internal/core/auth"
	"forum/internal/core/pagination"
	userapp "forum/internal/core/user/service"
	commentPort "forum/internal/ports/comment"
	postPort "forum/internal/ports/post"
	topicPort "forum/internal/ports/topic"
	userPort "forum/internal/ports/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UserUseCase: inbound port for registration and the token lifecycle
type UserUseCase interface {
	RegisterUser(ctx context.Context, username, email, password string) (*userPort.UserDTO, error)
	LoginUser(ctx context.Context, username, password string) (*userapp.LoginResult, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (*userapp.LoginResult, error)
	LogoutUser(ctx context.Context, refreshToken string) error
}

type TopicUseCase interface {
	ListTopics(ctx context.Context, params pagination.Params) (pagination.PagedList[*topicPort.TopicDTO], error)
	GetTopic(ctx context.Context, id uint) (*topicPort.TopicDTO, error)
	CreateTopic(ctx context.Context, actor auth.Context, title, description string) (*topicPort.TopicDTO, error)
	UpdateTopic(ctx context.Context, actor auth.Context, id uint, description string) (*topicPort.TopicDTO, error)
	DeleteTopic(ctx context.Context, actor auth.Context, id uint) error
}

type PostUseCase interface {
	ListPosts(ctx context.Context, topicID uint, params pagination.Params) (pagination.PagedList[*postPort.PostDTO], error)
	GetPost(ctx context.Context, topicID, postID uint) (*postPort.PostDTO, error)
	CreatePost(ctx context.Context, actor auth.Context, topicID uint, title, body string) (*postPort.PostDTO, error)
	UpdatePost(ctx context.Context, actor auth.Context, topicID, postID uint, body string) (*postPort.PostDTO, error)
	DeletePost(ctx context.Context, actor auth.Context, topicID, postID uint) error
}

type CommentUseCase interface {
	ListComments(ctx context.Context, topicID, postID uint, params pagination.Params) (pagination.PagedList[*commentPort.CommentDTO], error)
	GetComment(ctx context.Context, topicID, postID, commentID uint) (*commentPort.CommentDTO, error)
	CreateComment(ctx context.Context, actor auth.Context, topicID, postID uint, content string) (*commentPort.CommentDTO, error)
	UpdateComment(ctx context.Context, actor auth.Context, topicID, postID, commentID uint, content string) (*commentPort.CommentDTO, error)
	DeleteComment(ctx context.Context, actor auth.Context, topicID, postID, commentID uint) error
}

// RouterConfig carries the non use case dependencies of the HTTP layer.
type RouterConfig struct {
	Logger      *zap.Logger
	Tokens      middleware.AccessTokenParser
	CORSOrigins []string
	// SecureCookies marks the refresh token cookie Secure; off for plain http development.
	SecureCookies bool
}

// Routing only: use cases are injected from outside
func SetupRoutes(
	cfg RouterConfig,
	userUC UserUseCase,
	topicUC TopicUseCase,
	postUC PostUseCase,
	commentUC CommentUseCase,
) *gin.Engine {
	registerValidators()

	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(logger))
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Location"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	uc := NewUserController(userUC, cfg.SecureCookies)
	tc := NewTopicController(topicUC)
	pc := NewPostController(postUC)
	cc := NewCommentController(commentUC)
	requireAuth := middleware.JWTAuthMiddleware(cfg.Tokens)

	handle := func(name string, handlers ...gin.HandlerFunc) {
		route := hateoas.Routes[name]
		r.Handle(route.Method, route.Path, handlers...)
	}

	handle(hateoas.GetRoot, GetRoot)

	// account routes without the JWT middleware, except logout
	api := r.Group("/api")
	api.POST("/accounts", uc.RegisterUser)
	api.POST("/login", uc.LoginUser)
	api.POST("/accessToken", uc.RefreshAccessToken)
	api.POST("/logout", requireAuth, uc.LogoutUser)

	handle(hateoas.GetTopics, tc.GetTopics)
	handle(hateoas.GetTopic, tc.GetTopic)
	handle(hateoas.CreateTopic, requireAuth, tc.CreateTopic)
	handle(hateoas.UpdateTopic, requireAuth, tc.UpdateTopic)
	handle(hateoas.DeleteTopic, requireAuth, tc.DeleteTopic)

	handle(hateoas.GetPosts, pc.GetPosts)
	handle(hateoas.GetPost, pc.GetPost)
	handle(hateoas.CreatePost, requireAuth, pc.CreatePost)
	handle(hateoas.UpdatePost, requireAuth, pc.UpdatePost)
	handle(hateoas.DeletePost, requireAuth, pc.DeletePost)

	handle(hateoas.GetComments, cc.GetComments)
	handle(hateoas.GetComment, cc.GetComment)
	handle(hateoas.CreateComment, requireAuth, cc.CreateComment)
	handle(hateoas.UpdateComment, requireAuth, cc.UpdateComment)
	handle(hateoas.DeleteComment, requireAuth, cc.DeleteComment)

	return r
}

// GetRoot lists the entry points of the API.
func GetRoot(c *gin.Context) {
	c.JSON(http.StatusOK, hateoas.FromRequest(c.Request).RootLinks())
}
