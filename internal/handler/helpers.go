package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xxxsen/common/logutil"
	"go.uber.org/zap"

	"github.com/tubeask/tubeask/internal/pkg/errcode"
	appErr "github.com/tubeask/tubeask/internal/pkg/errors"
	"github.com/tubeask/tubeask/internal/pkg/response"
)

// handleError maps the error taxonomy onto http statuses and machine
// codes. Collaborator outages surface as 502 so callers know a retry of
// the whole operation may help; client mistakes stay in the 4xx range.
func handleError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	logutil.GetLogger(c.Request.Context()).Warn("request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	switch {
	case errors.Is(err, appErr.ErrInvalidVideoRef):
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalidVideoRef, err.Error())
	case errors.Is(err, appErr.ErrInvalid):
		response.Error(c, http.StatusBadRequest, errcode.ErrInvalid, err.Error())
	case errors.Is(err, appErr.ErrTranscriptsDisabled):
		response.Error(c, http.StatusNotFound, errcode.ErrTranscriptsDisabled, err.Error())
	case errors.Is(err, appErr.ErrTranscriptNotFound):
		response.Error(c, http.StatusNotFound, errcode.ErrTranscriptNotFound, err.Error())
	case errors.Is(err, appErr.ErrSessionNotFound):
		response.Error(c, http.StatusNotFound, errcode.ErrSessionNotFound, "unknown session, call ingest first")
	case errors.Is(err, appErr.ErrEmbeddingUnavailable):
		response.Error(c, http.StatusBadGateway, errcode.ErrEmbeddingUnavailable, err.Error())
	case errors.Is(err, appErr.ErrGenerationFailed):
		response.Error(c, http.StatusBadGateway, errcode.ErrGenerationFailed, err.Error())
	default:
		response.Error(c, http.StatusInternalServerError, errcode.ErrInternal, "internal error")
	}
}
