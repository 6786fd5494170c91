package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/vat-directory/internal/domain/blog"
	"github.com/yanqian/vat-directory/internal/domain/metadata"
	"github.com/yanqian/vat-directory/internal/domain/overview"
	apperrors "github.com/yanqian/vat-directory/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	metadataSvc metadata.Service
	overviewSvc overview.Service
	blogSvc     blog.Service
	logger      *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(metadataSvc metadata.Service, overviewSvc overview.Service, blogSvc blog.Service, logger *slog.Logger) *Handler {
	return &Handler{
		metadataSvc: metadataSvc,
		overviewSvc: overviewSvc,
		blogSvc:     blogSvc,
		logger:      logger.With("component", "http.handler"),
	}
}

var (
	metadataErrorRules = []errorRule{
		{appCode: "invalid_input", status: http.StatusBadRequest, code: "invalid_request"},
		{appCode: "upstream_error", code: "upstream_error"},
		{appCode: "fetch_unavailable", status: http.StatusBadGateway, code: "upstream_error"},
	}
	metadataFallback = errorRule{status: http.StatusInternalServerError, code: "metadata_failed"}

	generateErrorRules = []errorRule{
		{appCode: "invalid_input", status: http.StatusBadRequest, code: "invalid_request"},
		{appCode: "config_error", status: http.StatusInternalServerError, code: "config_error"},
		{appCode: "upstream_error", code: "llm_error"},
		{appCode: "llm_unavailable", status: http.StatusBadGateway, code: "llm_error"},
	}
	generateFallback = errorRule{status: http.StatusInternalServerError, code: "generate_failed"}
)

// Metadata returns link preview fields for the page named by the url query parameter.
func (h *Handler) Metadata(c *gin.Context) {
	result, err := h.metadataSvc.Extract(c.Request.Context(), c.Query("url"))
	if err != nil {
		abortWithError(c, translateError(err, metadataErrorRules, metadataFallback))
		return
	}

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, result)
}

// Generate produces a markdown overview from scraped search results.
func (h *Handler) Generate(c *gin.Context) {
	var req overview.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "URL and search results are required", err))
		return
	}
	if claims, ok := getClaims(c); ok {
		h.logger.Debug("overview requested", "subject", claims.Subject, "url", req.URL)
	}

	resp, err := h.overviewSvc.Generate(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, translateError(err, generateErrorRules, generateFallback))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListPosts returns the blog catalogue, newest first.
func (h *Handler) ListPosts(c *gin.Context) {
	posts, err := h.blogSvc.List(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "blog_failed", apperrors.Message(err), err))
		return
	}
	if posts == nil {
		posts = []blog.PostMeta{}
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// GetPost returns a single post with its markdown body.
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.blogSvc.Get(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if apperrors.IsCode(err, "not_found") {
			abortWithError(c, NewHTTPError(http.StatusNotFound, "not_found", apperrors.Message(err), err))
			return
		}
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "blog_failed", apperrors.Message(err), err))
		return
	}
	c.JSON(http.StatusOK, post)
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
