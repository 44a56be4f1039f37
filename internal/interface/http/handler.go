package http

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/calvarezg/recipe-search/internal/domain/clicks"
	"github.com/calvarezg/recipe-search/internal/domain/ingest"
	"github.com/calvarezg/recipe-search/internal/domain/search"
	apperrors "github.com/calvarezg/recipe-search/pkg/errors"
)

// Handler wires the HTTP transport to domain services.
type Handler struct {
	searchSvc search.Service
	clickSvc  clicks.Service
	ingestSvc ingest.Service
	logger    *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(searchSvc search.Service, clickSvc clicks.Service, ingestSvc ingest.Service, logger *slog.Logger) *Handler {
	return &Handler{
		searchSvc: searchSvc,
		clickSvc:  clickSvc,
		ingestSvc: ingestSvc,
		logger:    logger.With("component", "http.handler"),
	}
}

// Health reports liveness. It deliberately checks no dependencies, the
// process being reachable is the whole contract.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// SearchRecipes returns the ranked recipe page for a free-text query.
func (h *Handler) SearchRecipes(c *gin.Context) {
	query := c.Query("query")
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", "page must be an integer", err))
		return
	}

	resp, err := h.searchSvc.Search(c.Request.Context(), search.Request{Query: query, Page: page})
	if err != nil {
		status := http.StatusInternalServerError
		code := "search_failed"
		switch {
		case apperrors.IsCode(err, "invalid_input"):
			status = http.StatusBadRequest
			code = "invalid_request"
		case apperrors.IsCode(err, "embedding_error"):
			status = http.StatusBadGateway
			code = "embedding_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, resp)
}

// RecordClick accepts a click-through event.
func (h *Handler) RecordClick(c *gin.Context) {
	var click clicks.Click
	if err := c.ShouldBindJSON(&click); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	if err := h.clickSvc.Record(c.Request.Context(), click); err != nil {
		status := http.StatusInternalServerError
		code := "click_failed"
		if apperrors.IsCode(err, "invalid_input") {
			status = http.StatusBadRequest
			code = "invalid_request"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "success", "message": "Click data recorded"})
}

// TopClicks returns the most clicked links.
func (h *Handler) TopClicks(c *gin.Context) {
	links, err := h.clickSvc.TopLinks(c.Request.Context())
	if err != nil {
		abortWithError(c, NewHTTPError(http.StatusInternalServerError, "click_failed", errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"links": links})
}

// Ingest loads the recipe dataset into the vector index.
func (h *Handler) Ingest(c *gin.Context) {
	summary, err := h.ingestSvc.Run(c.Request.Context())
	if err != nil {
		status := http.StatusInternalServerError
		code := "ingest_failed"
		if apperrors.IsCode(err, "embedding_error") {
			status = http.StatusBadGateway
			code = "embedding_error"
		}
		abortWithError(c, NewHTTPError(status, code, errMessage(err), err))
		return
	}
	c.JSON(http.StatusOK, summary)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
