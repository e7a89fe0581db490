// Package server exposes the analytics engine over HTTP.
package server

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agenthands/cortex/internal/core"
	"github.com/agenthands/cortex/internal/model"
)

type Server struct {
	Engine *core.Engine
}

func NewServer(engine *core.Engine) *Server {
	return &Server{Engine: engine}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()
	r.Use(requestID())

	r.GET("/healthz", s.Health)
	r.POST("/digest", s.Digest)
	r.POST("/gaps", s.Gaps)
	r.GET("/insights", s.Insights)
	r.GET("/insights/:id", s.InsightsForCluster)
	r.POST("/search", s.Search)
	r.POST("/pulse", s.Pulse)
	r.GET("/graph/stats", s.GraphStats)

	return r
}

// requestID tags every request so log lines can be correlated.
func requestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.New().String()
		}
		c.Set("request_id", id)
		c.Header("X-Request-ID", id)
		c.Next()
	}
}

func (s *Server) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

type spacesRequest struct {
	Spaces []string `json:"spaces"`
}

func (s *Server) Digest(c *gin.Context) {
	var req spacesRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := s.Engine.Digest(c.Request.Context(), req.Spaces)
	if err != nil {
		s.fail(c, "digest", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) Gaps(c *gin.Context) {
	var req spacesRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	result, err := s.Engine.Gaps(c.Request.Context(), req.Spaces)
	if err != nil {
		s.fail(c, "gaps", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) Insights(c *gin.Context) {
	result, err := s.Engine.Insights(c.Request.Context(), c.QueryArray("space"))
	if err != nil {
		s.fail(c, "insights", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) InsightsForCluster(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid cluster id"})
		return
	}

	result, err := s.Engine.InsightsForCluster(c.Request.Context(), c.QueryArray("space"), id)
	if err != nil {
		if errors.Is(err, model.ErrClusterNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		s.fail(c, "insights", err)
		return
	}
	c.JSON(http.StatusOK, result)
}

type searchRequest struct {
	Query  string   `json:"query" binding:"required"`
	Spaces []string `json:"spaces"`
	TopK   int      `json:"top_k"`
	Expand *bool    `json:"expand"`
}

func (s *Server) Search(c *gin.Context) {
	var req searchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.Engine.Config.Search.TopK
	}
	expand := s.Engine.Config.Search.Expand
	if req.Expand != nil {
		expand = *req.Expand
	}

	results, err := s.Engine.Search(c.Request.Context(), req.Spaces, req.Query, topK, expand)
	if err != nil {
		s.fail(c, "search", err)
		return
	}
	c.JSON(http.StatusOK, results)
}

type pulseRequest struct {
	Spaces []string `json:"spaces"`
	ID     string   `json:"id"`
	Note   string   `json:"note"`
}

func (s *Server) Pulse(c *gin.Context) {
	var req pulseRequest
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	snap, err := s.Engine.Pulse(c.Request.Context(), req.Spaces, req.ID, req.Note)
	if err != nil {
		s.fail(c, "pulse", err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) GraphStats(c *gin.Context) {
	stats, err := s.Engine.Stats(c.Request.Context(), c.QueryArray("space"))
	if err != nil {
		s.fail(c, "stats", err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

func (s *Server) fail(c *gin.Context, op string, err error) {
	slog.Error(op+" failed", "error", err, "request_id", c.GetString("request_id"))
	if errors.Is(err, model.ErrNoDocuments) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
}
