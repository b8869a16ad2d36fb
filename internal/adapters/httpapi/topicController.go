package httpapi

import (
	"net/http"

	"forum/internal/adapters/httpapi/hateoas"
	"forum/internal/adapters/httpapi/middleware"
	topicPort "forum/internal/ports/topic"

	"github.com/gin-gonic/gin"
)

type TopicController struct{ tc TopicUseCase }

func NewTopicController(tc TopicUseCase) *TopicController { return &TopicController{tc: tc} }

type createTopicRequest struct {
	Title       string `json:"title" binding:"required,min=2,max=100,alnumtail"`
	Description string `json:"description" binding:"required,min=5,max=400,alnumtail"`
}

type updateTopicRequest struct {
	Description string `json:"description" binding:"required,min=5,max=400,alnumtail"`
}

func topicResource(b hateoas.Builder, t *topicPort.TopicDTO) hateoas.Resource[*topicPort.TopicDTO] {
	return hateoas.Resource[*topicPort.TopicDTO]{Resource: t, Links: b.TopicLinks(t.ID)}
}

func (ctl *TopicController) GetTopics(c *gin.Context) {
	page, err := ctl.tc.ListTopics(c.Request.Context(), pageParams(c))
	if err != nil {
		respondError(c, err)
		return
	}
	b := hateoas.FromRequest(c.Request)
	c.JSON(http.StatusOK, hateoas.Collection(b, hateoas.GetTopics, nil, page, func(t *topicPort.TopicDTO) []hateoas.Link {
		return b.TopicLinks(t.ID)
	}))
}

func (ctl *TopicController) GetTopic(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId")
	if !ok {
		return
	}
	t, err := ctl.tc.GetTopic(c.Request.Context(), ids[0])
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topicResource(hateoas.FromRequest(c.Request), t))
}

func (ctl *TopicController) CreateTopic(c *gin.Context) {
	var req createTopicRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := ctl.tc.CreateTopic(c.Request.Context(), middleware.AuthContext(c), req.Title, req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	created(c, topicResource(hateoas.FromRequest(c.Request), t))
}

func (ctl *TopicController) UpdateTopic(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId")
	if !ok {
		return
	}
	var req updateTopicRequest
	if !bindJSON(c, &req) {
		return
	}
	t, err := ctl.tc.UpdateTopic(c.Request.Context(), middleware.AuthContext(c), ids[0], req.Description)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, topicResource(hateoas.FromRequest(c.Request), t))
}

func (ctl *TopicController) DeleteTopic(c *gin.Context) {
	ids, ok := pathIDs(c, "topicId")
	if !ok {
		return
	}
	if err := ctl.tc.DeleteTopic(c.Request.Context(), middleware.AuthContext(c), ids[0]); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
