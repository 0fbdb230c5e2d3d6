// Package fakeapi is an in-memory stand-in for the creddit REST API,
// used by client and screen tests.
package fakeapi

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/CrestNiraj12/creddit/domain"
)

type failure struct {
	method string
	path   string
	status int
}

// Server serves the posts/comments endpoints from memory.
type Server struct {
	mu       sync.Mutex
	posts    []domain.Post
	failures []failure
	requests []string
	engine   *gin.Engine
}

type createPostBody struct {
	Title       string `json:"title" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type addCommentBody struct {
	Username string `json:"username" binding:"required"`
	Comment  string `json:"comment" binding:"required"`
}

// New creates an empty server.
func New() *Server {
	gin.SetMode(gin.TestMode)
	s := &Server{engine: gin.New()}
	s.engine.Use(s.record, gin.Recovery())

	s.engine.GET("/posts", s.listPosts)
	s.engine.GET("/posts/:id", s.getPost)
	s.engine.POST("/posts", s.createPost)
	s.engine.DELETE("/posts/:id", s.deletePost)
	s.engine.POST("/posts/:id/comments", s.addComment)
	s.engine.DELETE("/posts/comments/:id", s.deleteComment)
	return s
}

// Handler exposes the router, e.g. for an in-process round tripper.
func (s *Server) Handler() http.Handler { return s.engine }

// Serve starts a real listener. The caller closes it.
func (s *Server) Serve() *httptest.Server { return httptest.NewServer(s.engine) }

// Seed appends a post in server order and returns it with its assigned ID.
func (s *Server) Seed(title, description string, comments ...domain.NewComment) domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()

	p := domain.Post{ID: uuid.NewString(), Title: title, Description: description}
	for _, c := range comments {
		p.Comments = append(p.Comments, domain.Comment{ID: uuid.NewString(), Username: c.Username, Comment: c.Comment})
	}
	s.posts = append(s.posts, p)
	return clonePost(p)
}

// FailNext makes the next request matching method and path answer with status.
func (s *Server) FailNext(method, path string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: path, status: status})
}

// Requests returns "METHOD /path" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// Posts returns a copy of the stored posts in server order.
func (s *Server) Posts() []domain.Post {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		out = append(out, clonePost(p))
	}
	return out
}

func (s *Server) record(c *gin.Context) {
	method, path := c.Request.Method, c.Request.URL.Path

	s.mu.Lock()
	s.requests = append(s.requests, method+" "+path)
	status := 0
	for i, f := range s.failures {
		if f.method == method && f.path == path {
			status = f.status
			s.failures = append(s.failures[:i], s.failures[i+1:]...)
			break
		}
	}
	s.mu.Unlock()

	if status != 0 {
		c.AbortWithStatusJSON(status, gin.H{"message": http.StatusText(status)})
		return
	}
	c.Next()
}

func (s *Server) listPosts(c *gin.Context) {
	c.JSON(http.StatusOK, toJSONPosts(s.Posts()))
}

func (s *Server) getPost(c *gin.Context) {
	s.mu.Lock()
	idx := s.indexOf(c.Param("id"))
	var p domain.Post
	if idx >= 0 {
		p = clonePost(s.posts[idx])
	}
	s.mu.Unlock()

	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
		return
	}
	c.JSON(http.StatusOK, toJSONPost(p))
}

func (s *Server) createPost(c *gin.Context) {
	var body createPostBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	p := s.Seed(body.Title, body.Description)
	c.JSON(http.StatusCreated, toJSONPost(p))
}

func (s *Server) deletePost(c *gin.Context) {
	s.mu.Lock()
	idx := s.indexOf(c.Param("id"))
	if idx >= 0 {
		s.posts = append(s.posts[:idx], s.posts[idx+1:]...)
	}
	s.mu.Unlock()

	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (s *Server) addComment(c *gin.Context) {
	var body addCommentBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	idx := s.indexOf(c.Param("id"))
	var created domain.Comment
	if idx >= 0 {
		created = domain.Comment{ID: uuid.NewString(), Username: body.Username, Comment: body.Comment}
		s.posts[idx].Comments = append(s.posts[idx].Comments, created)
	}
	s.mu.Unlock()

	if idx < 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "post not found"})
		return
	}
	c.JSON(http.StatusCreated, toJSONComment(created))
}

func (s *Server) deleteComment(c *gin.Context) {
	id := c.Param("id")

	s.mu.Lock()
	found := false
	for i := range s.posts {
		for j, cm := range s.posts[i].Comments {
			if cm.ID == id {
				s.posts[i].Comments = append(s.posts[i].Comments[:j], s.posts[i].Comments[j+1:]...)
				found = true
				break
			}
		}
		if found {
			break
		}
	}
	s.mu.Unlock()

	if !found {
		c.JSON(http.StatusNotFound, gin.H{"message": "comment not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}

// indexOf must be called with mu held.
func (s *Server) indexOf(id string) int {
	for i, p := range s.posts {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func clonePost(p domain.Post) domain.Post {
	p.Comments = append([]domain.Comment(nil), p.Comments...)
	return p
}
