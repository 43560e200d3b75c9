// Package server exposes the analysis pipeline over HTTP. Review fetching
// and scraping happen upstream; this endpoint accepts an already-normalized
// review list.
package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/theimaginaryfoundation/review-radar/insights"
)

// AnalyzeRequest is the POST /api/analyze payload.
type AnalyzeRequest struct {
	AppName string            `json:"appName"`
	Store   string            `json:"store"`
	Reviews []insights.Review `json:"reviews"`
}

// Handler serves analysis requests.
type Handler struct {
	pipeline *insights.Pipeline
	log      *zap.Logger
	timeout  time.Duration
}

// NewHandler builds a Handler. timeout bounds one analysis request; zero
// disables the per-request deadline.
func NewHandler(pipeline *insights.Pipeline, log *zap.Logger, timeout time.Duration) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{pipeline: pipeline, log: log, timeout: timeout}
}

// NewRouter wires the HTTP routes.
func NewRouter(h *Handler) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(requestLogger(h.log))

	router.GET("/healthz", handleHealthz)
	api := router.Group("/api")
	{
		api.POST("/analyze", h.Analyze)
	}
	return router
}

func handleHealthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Analyze validates the request and runs the pipeline. Pipeline-internal
// degradations (oracle failures, thin data) still produce a 200; only
// malformed requests and empty review lists are caller-visible errors.
func (h *Handler) Analyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}
	if len(req.Reviews) == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "No reviews found for this app. The app might be new or have no public reviews."})
		return
	}

	ctx := c.Request.Context()
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}

	result, err := h.pipeline.Analyze(ctx, insights.AnalyzeInput{
		AppName: req.AppName,
		Store:   req.Store,
		Reviews: req.Reviews,
	})
	if err != nil {
		h.log.Error("analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to analyze app reviews. Please try again."})
		return
	}

	c.JSON(http.StatusOK, result)
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("elapsed", time.Since(start)))
	}
}
