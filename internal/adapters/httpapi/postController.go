package httpapi

import (
	"net/http"

	"forum/internal/adapters/httpapi/hateoas"
	"forum/internal/adapters/httpapi/middleware"
	postPort "forum/internal/ports/post"

	"github.com/gin-gonic/gin"
)

type PostController struct{ pc PostUseCase }

func NewPostController(pc PostUseCase) *PostController { return &PostController{pc: pc} }

type createPostRequest struct {
	Title string `json:"title" binding:"required,notblank"`
	Body  string `json:"body" binding:"required,notblank"`
}

type updatePostRequest struct {
	Body string `json:"body" binding:"required,notblank"`
}

func postResource(b hateoas.Builder, topicID uint, p *postPort.PostDTO) hateoas.Resource[*postPort.PostDTO] {
	return hateoas.Resource[*postPort.PostDTO]{Resource: p, Links: b.PostLinks(topicID, p.ID)}
}

func (ctl *PostController) GetPosts(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId")
	if !ok {
		return
	}
	page, err := ctl.pc.ListPosts(c.Request.Context(), ids[0], pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	b := hateoas.FromRequest(c.Request)
	params := hateoas.Params{"topicId": hateoas.ID(ids[0])}
	c.JSON(http.StatusOK, hateoas.Collection(b, hateoas.GetPosts, params, page, func(p *postPort.PostDTO) []hateoas.Link {
		return b.PostLinks(ids[0], p.ID)
	}))
}

func (ctl *PostController) GetPost(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId", "postId")
	if !ok {
		return
	}
	p, err := ctl.pc.GetPost(c.Request.Context(), ids[0], ids[1])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postResource(hateoas.FromRequest(c.Request), ids[0], p))
}

func (ctl *PostController) CreatePost(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId")
	if !ok {
		return
	}
	var req createPostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := ctl.pc.CreatePost(c.Request.Context(), middleware.AuthContext(c), ids[0], req.Title, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, postResource(hateoas.FromRequest(c.Request), ids[0], p))
}

func (ctl *PostController) UpdatePost(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId", "postId")
	if !ok {
		return
	}
	var req updatePostRequest
	if !bindJSON(c, &req) {
		return
	}
	p, err := ctl.pc.UpdatePost(c.Request.Context(), middleware.AuthContext(c), ids[0], ids[1], req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, postResource(hateoas.FromRequest(c.Request), ids[0], p))
}

func (ctl *PostController) DeletePost(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId", "postId")
	if !ok {
		return
	}
	if err := ctl.pc.DeletePost(c.Request.Context(), middleware.AuthContext(c), ids[0], ids[1]); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
