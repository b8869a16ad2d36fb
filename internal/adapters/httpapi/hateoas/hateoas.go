// Package hateoas wraps API responses in the {resource, links} envelope.
package hateoas

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"forum/internal/core/pagination"
)

type Link struct {
	Href   string `json:"href"`
	Rel    string `json:"rel"`
	Method string `json:"method"`
}

type Resource[T any] struct {
	Resource T      `json:"resource"`
	Links    []Link `json:"links"`
}

// Params fills the :name segments of a route path.
type Params map[string]string

// ID formats a numeric resource id for Params.
func ID(id uint) string { return strconv.FormatUint(uint64(id), 10) }

// Builder resolves named routes to absolute URIs for one request.
type Builder struct {
	scheme string
	host   string
}

func NewBuilder(scheme, host string) Builder {
	return Builder{scheme: scheme, host: host}
}

// FromRequest takes scheme and host from the incoming request, honouring a proxy's X-Forwarded-Proto.
func FromRequest(r *http.Request) Builder {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}
	return NewBuilder(scheme, r.Host)
}

// URI returns the absolute address of route name; unknown names give "".
func (b Builder) URI(name string, params Params, query url.Values) string {
	route, ok := Routes[name]
	if !ok {
		return ""
	}

	segments := strings.Split(route.Path, "/")
	for i, seg := range segments {
		if strings.HasPrefix(seg, ":") {
			segments[i] = url.PathEscape(params[seg[1:]])
		}
	}

	u := url.URL{
		Scheme: b.scheme,
		Host:   b.host,
		Path:   strings.Join(segments, "/"),
	}
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (b Builder) link(name, rel string, params Params, query url.Values) Link {
	return Link{Href: b.URI(name, params, query), Rel: rel, Method: Routes[name].Method}
}

// ItemLinks is the self/edit/remove triple of a single resource.
func (b Builder) ItemLinks(get, update, remove string, params Params) []Link {
	return []Link{
		b.link(get, "self", params, nil),
		b.link(update, "edit", params, nil),
		b.link(remove, "remove", params, nil),
	}
}

func (b Builder) TopicLinks(topicID uint) []Link {
	return b.ItemLinks(GetTopic, UpdateTopic, DeleteTopic, Params{"topicId": ID(topicID)})
}

func (b Builder) PostLinks(topicID, postID uint) []Link {
	return b.ItemLinks(GetPost, UpdatePost, DeletePost, Params{
		"topicId": ID(topicID),
		"postId":  ID(postID),
	})
}

func (b Builder) CommentLinks(topicID, postID, commentID uint) []Link {
	return b.ItemLinks(GetComment, UpdateComment, DeleteComment, Params{
		"topicId":   ID(topicID),
		"postId":    ID(postID),
		"commentId": ID(commentID),
	})
}

// RootLinks is the entry document of the API.
func (b Builder) RootLinks() []Link {
	return []Link{
		b.link(GetTopics, "topics", nil, nil),
		b.link(CreateTopic, "createTopic", nil, nil),
		b.link(GetRoot, "self", nil, nil),
	}
}

// CollectionLinks returns self plus previousPage/nextPage when those pages exist.
func CollectionLinks[T any](b Builder, route string, params Params, list pagination.PagedList[T]) []Link {
	links := []Link{b.link(route, "self", params, nil)}
	if prev, ok := list.PreviousPage(); ok {
		links = append(links, b.link(route, "previousPage", params, pageQuery(prev)))
	}
	if next, ok := list.NextPage(); ok {
		links = append(links, b.link(route, "nextPage", params, pageQuery(next)))
	}
	return links
}

func pageQuery(p pagination.Params) url.Values {
	q := url.Values{}
	q.Set("pageNumber", strconv.Itoa(p.PageNumber))
	q.Set("pageSize", strconv.Itoa(p.PageSize))
	return q
}

// Collection wraps every item with its own links and the page with collection links.
func Collection[T any](b Builder, route string, params Params, list pagination.PagedList[T], itemLinks func(T) []Link) Resource[[]Resource[T]] {
	items := make([]Resource[T], 0, len(list.Items))
	for _, item := range list.Items {
		items = append(items, Resource[T]{Resource: item, Links: itemLinks(item)})
	}
	return Resource[[]Resource[T]]{
		Resource: items,
		Links:    CollectionLinks(b, route, params, list),
	}
}
