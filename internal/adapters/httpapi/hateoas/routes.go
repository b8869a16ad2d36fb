package hateoas

import "net/http"

// Route names shared by the router and the link builder.
const (
	GetRoot = "GetRoot"

	GetTopics   = "GetTopics"
	GetTopic    = "GetTopic"
	CreateTopic = "CreateTopic"
	UpdateTopic = "UpdateTopic"
	DeleteTopic = "DeleteTopic"

	GetPosts   = "GetPosts"
	GetPost    = "GetPost"
	CreatePost = "CreatePost"
	UpdatePost = "UpdatePost"
	DeletePost = "DeletePost"

	GetComments   = "GetComments"
	GetComment    = "GetComment"
	CreateComment = "CreateComment"
	UpdateComment = "UpdateComment"
	DeleteComment = "DeleteComment"
)

type Route struct {
	Method string
	Path   string
}

const (
	topicsPath   = "/api/topics"
	topicPath    = topicsPath + "/:topicId"
	postsPath    = topicPath + "/posts"
	postPath     = postsPath + "/:postId"
	commentsPath = postPath + "/comments"
	commentPath  = commentsPath + "/:commentId"
)

// Routes maps each route name to its gin path template.
var Routes = map[string]Route{
	GetRoot: {http.MethodGet, "/api"},

	GetTopics:   {http.MethodGet, topicsPath},
	GetTopic:    {http.MethodGet, topicPath},
	CreateTopic: {http.MethodPost, topicsPath},
	UpdateTopic: {http.MethodPut, topicPath},
	DeleteTopic: {http.MethodDelete, topicPath},

	GetPosts:   {http.MethodGet, postsPath},
	GetPost:    {http.MethodGet, postPath},
	CreatePost: {http.MethodPost, postsPath},
	UpdatePost: {http.MethodPut, postPath},
	DeletePost: {http.MethodDelete, postPath},

	GetComments:   {http.MethodGet, commentsPath},
	GetComment:    {http.MethodGet, commentPath},
	CreateComment: {http.MethodPost, commentsPath},
	UpdateComment: {http.MethodPut, commentPath},
	DeleteComment: {http.MethodDelete, commentPath},
}
