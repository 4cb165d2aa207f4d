package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tubeask/tubeask/internal/pkg/errcode"
	"github.com/tubeask/tubeask/internal/pkg/response"
	"github.com/tubeask/tubeask/internal/service"
)

type RAGHandler struct {
	ingest *service.IngestService
	query  *service.QueryService
}

func NewRAGHandler(ingest *service.IngestService, query *service.QueryService) *RAGHandler {
	return &RAGHandler{ingest: ingest, query: query}
}

type ingestRequest struct {
	Source   string `json:"source"`
	Language string `json:"language"`
}

type queryRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
	K         int    `json:"k"`
}

func (h *RAGHandler) Ingest(c *gin.Context) {
	var req ingestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.Source == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "source is required")
		return
	}
	result, err := h.ingest.Ingest(c.Request.Context(), req.Source, req.Language)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *RAGHandler) Query(c *gin.Context) {
	var req queryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "invalid request")
		return
	}
	if req.SessionID == "" {
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, "session_id is required")
		return
	}
	result, err := h.query.Query(c.Request.Context(), req.SessionID, req.Question, req.K)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, result)
}

func (h *RAGHandler) Health(c *gin.Context) {
	response.Success(c, gin.H{"ok": true})
}
