package httpapi

import (
	"errors"
	"net/http"
	"strconv"

	"forum/internal/adapters/httpapi/hateoas"
	"forum/internal/core/errs"
	"forum/internal/core/pagination"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	problemTypeUnprocessable  = "https://tools.ietf.org/html/rfc4918#section-11.2"
	problemTitleUnprocessable = "Unprocessable Entity"
)

// ValidationProblem is the problem details body of a 422 response.
type ValidationProblem struct {
	Type   string              `json:"type"`
	Title  string              `json:"title"`
	Status int                 `json:"status"`
	Errors map[string][]string `json:"errors"`
}

func unprocessable(c *gin.Context, fieldErrors map[string][]string) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, ValidationProblem{
		Type:   problemTypeUnprocessable,
		Title:  problemTitleUnprocessable,
		Status: http.StatusUnprocessableEntity,
		Errors: fieldErrors,
	})
}

// bindJSON decodes the body; failed rules answer 422, undecodable input 400.
func bindJSON(c *gin.Context, req any) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		unprocessable(c, fieldErrors(verrs))
		return false
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid input"})
	return false
}

// respondError maps service errors to status codes; anything unknown is a 500 logged by the request logger.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathIDs parses numeric path parameters in order; a bad one answers 400.
func pathIDs(c *gin.Context, names ...string) ([]uint, bool) {
	ids := make([]uint, 0, len(names))
	for _, name := range names {
		id, err := strconv.ParseUint(c.Param(name), 10, strconv.IntSize)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
			return nil, false
		}
		ids = append(ids, uint(id))
	}
	return ids, true
}

func pageParams(c *gin.Context) pagination.Params {
	return pagination.ParseParams(c.Query("pageNumber"), c.Query("pageSize"))
}

func created[T any](c *gin.Context, res hateoas.Resource[T]) {
	c.Header("Location", res.Links[0].Href)
	c.JSON(http.StatusCreated, res)
}
