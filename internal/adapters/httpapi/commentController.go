package httpapi

import (
	"net/http"

	"forum/internal/adapters/httpapi/hateoas"
	"forum/internal/adapters/httpapi/middleware"
	commentPort "forum/internal/ports/comment"

	"github.com/gin-gonic/gin"
)

type CommentController struct{ cc CommentUseCase }

func NewCommentController(cc CommentUseCase) *CommentController {
	return &CommentController{cc: cc}
}

type commentRequest struct {
	Content string `json:"content" binding:"required,notblank"`
}

func commentResource(b hateoas.Builder, topicID, postID uint, cm *commentPort.CommentDTO) hateoas.Resource[*commentPort.CommentDTO] {
	return hateoas.Resource[*commentPort.CommentDTO]{Resource: cm, Links: b.CommentLinks(topicID, postID, cm.ID)}
}

func (ctl *CommentController) GetComments(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId", "postId")
	if !ok {
		return
	}
	page, err := ctl.cc.ListComments(c.Request.Context(), ids[0], ids[1], pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	b := hateoas.FromRequest(c.Request)
	params := hateoas.Params{"topicId": hateoas.ID(ids[0]), "postId": hateoas.ID(ids[1])}
	c.JSON(http.StatusOK, hateoas.Collection(b, hateoas.GetComments, params, page, func(cm *commentPort.CommentDTO) []hateoas.Link {
		return b.CommentLinks(ids[0], ids[1], cm.ID)
	}))
}

func (ctl *CommentController) GetComment(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId", "postId", "commentId")
	if !ok {
		return
	}
	cm, err := ctl.cc.GetComment(c.Request.Context(), ids[0], ids[1], ids[2])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentResource(hateoas.FromRequest(c.Request), ids[0], ids[1], cm))
}

func (ctl *CommentController) CreateComment(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId", "postId")
	if !ok {
		return
	}
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}
	cm, err := ctl.cc.CreateComment(c.Request.Context(), middleware.AuthContext(c), ids[0], ids[1], req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, commentResource(hateoas.FromRequest(c.Request), ids[0], ids[1], cm))
}

func (ctl *CommentController) UpdateComment(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId", "postId", "commentId")
	if !ok {
		return
	}
	var req commentRequest
	if !bindJSON(c, &req) {
		return
	}
	cm, err := ctl.cc.UpdateComment(c.Request.Context(), middleware.AuthContext(c), ids[0], ids[1], ids[2], req.Content)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, commentResource(hateoas.FromRequest(c.Request), ids[0], ids[1], cm))
}

func (ctl *CommentController) DeleteComment(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId", "postId", "commentId")
	if !ok {
		return
	}
	if err := ctl.cc.DeleteComment(c.Request.Context(), middleware.AuthContext(c), ids[0], ids[1], ids[2]); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
