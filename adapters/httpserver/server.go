package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"postboard/domain/entities"
	"postboard/domain/services"
	"strconv"
	"time"

	router "github.com/xandalm/go-router"
	"go.uber.org/zap"
)

type Error struct {
	Message string `json:"error"`
}

func NewError(message string) *Error {
	return &Error{
		Message: message,
	}
}

const (
	ErrPostNotFoundMessage    = "Post not found"
	ErrUnsupportedPostMessage = "unsupported data to parse into post"
	ErrNotFoundMessage        = "Not found"
	ErrTimeoutMessage         = "request timed out"
)

type Server struct {
	storage services.PostStore
	router  *router.Router
	handler http.Handler
	logger  *zap.Logger
	to      time.Duration
}

func NewServer(storage services.PostStore, logger *zap.Logger) *Server {
	s := &Server{
		storage: storage,
		router:  &router.Router{},
		logger:  logger,
		to:      time.Minute,
	}

	// /posts/search shadows /posts/{id} for every method, so the id routes
	// are repeated on it to answer with the usual not-found error.
	s.router.GetFunc("/posts/search", s.searchPostsHandler)
	s.router.PutFunc("/posts/search", s.editPostHandler)
	s.router.DeleteFunc("/posts/search", s.deletePostHandler)
	s.router.PutFunc("/posts/{id}", s.editPostHandler)
	s.router.DeleteFunc("/posts/{id}", s.deletePostHandler)
	s.router.GetFunc("/posts", s.listPostsHandler)
	s.router.PostFunc("/posts", s.storePostHandler)

	s.router.GetFunc("/health", s.healthHandler)

	s.buildHandler()

	return s
}

func (s *Server) buildHandler() {
	timeoutBody, _ := json.Marshal(NewError(ErrTimeoutMessage))
	s.handler = withLogging(s.logger, http.TimeoutHandler(withJSONNotFound(s.router), s.to, string(timeoutBody)))
}

func (s *Server) SetTimeout(duration time.Duration) error {
	if duration < time.Second {
		return errors.New("timeout duration must be greater than 1s")
	}
	s.to = duration
	s.buildHandler()
	return nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

func (s *Server) listPostsHandler(w router.ResponseWriter, r *router.Request) {
	query := r.URL.Query()
	opts := services.ListOptions{
		SortField: services.SortField(query.Get("sort")),
		Direction: services.Direction(query.Get("direction")),
	}

	writeJSON(w, http.StatusOK, s.storage.ListPosts(opts))
}

func (s *Server) searchPostsHandler(w router.ResponseWriter, r *router.Request) {
	query := r.URL.Query()
	q := services.SearchQuery{
		Title:   query.Get("title"),
		Content: query.Get("content"),
	}

	writeJSON(w, http.StatusOK, s.storage.SearchPosts(q))
}

type postInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func (s *Server) storePostHandler(w router.ResponseWriter, r *router.Request) {
	var input postInput
	if err := r.ParseBodyInto(&input); err != nil {
		s.logger.Debug("unable to parse post", zap.Error(err))
		writeError(w, http.StatusBadRequest, ErrUnsupportedPostMessage)
		return
	}

	post, err := s.storage.StorePost(input.Title, input.Content)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	s.logger.Info("post created", zap.Int("id", post.Id))
	writeJSON(w, http.StatusCreated, post)
}

func (s *Server) editPostHandler(w router.ResponseWriter, r *router.Request) {
	postId, ok := parsePostID(r)
	if !ok {
		writeError(w, http.StatusNotFound, ErrPostNotFoundMessage)
		return
	}

	var patch entities.PostPatch
	if err := r.ParseBodyInto(&patch); err != nil {
		s.logger.Debug("unable to parse post patch", zap.Int("id", postId), zap.Error(err))
		writeError(w, http.StatusBadRequest, ErrUnsupportedPostMessage)
		return
	}

	post, err := s.storage.EditPost(postId, patch)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	s.logger.Info("post edited", zap.Int("id", post.Id))
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) deletePostHandler(w router.ResponseWriter, r *router.Request) {
	postId, ok := parsePostID(r)
	if !ok {
		writeError(w, http.StatusNotFound, ErrPostNotFoundMessage)
		return
	}

	post, err := s.storage.DeletePost(postId)
	if err != nil {
		s.writeStorageError(w, err)
		return
	}

	s.logger.Info("post deleted", zap.Int("id", post.Id))
	writeJSON(w, http.StatusOK, post)
}

func (s *Server) healthHandler(w router.ResponseWriter, r *router.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"posts":  len(s.storage.ListPosts(services.ListOptions{})),
	})
}

func (s *Server) writeStorageError(w responseWriter, err error) {
	var verr *services.ValidationError
	var nerr *services.NotFoundError
	switch {
	case errors.As(err, &verr):
		writeError(w, http.StatusBadRequest, verr.Error())
	case errors.As(err, &nerr):
		writeError(w, http.StatusNotFound, ErrPostNotFoundMessage)
	default:
		s.logger.Error("storage failure", zap.Error(err))
		writeError(w, http.StatusInternalServerError, http.StatusText(http.StatusInternalServerError))
	}
}

// parsePostID reads the {id} path parameter. Ids are integers, so anything
// else cannot name a post.
func parsePostID(r *router.Request) (int, bool) {
	id, err := strconv.Atoi(r.Params()["id"])
	if err != nil {
		return 0, false
	}
	return id, true
}

// responseWriter is the part of router.ResponseWriter the handlers use.
type responseWriter interface {
	io.Writer
	WriteHeader(statusCode int)
}

func writeJSON(w responseWriter, status int, v any) {
	w.WriteHeader(status)
	toJSON(w, v)
}

func writeError(w responseWriter, status int, message string) {
	writeJSON(w, status, NewError(message))
}

func toJSON(w io.Writer, s any) error {
	return json.NewEncoder(w).Encode(s)
}
