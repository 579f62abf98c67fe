package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/marcus/scenevoice/internal/api/middleware"
	"github.com/marcus/scenevoice/internal/describe"
	"github.com/marcus/scenevoice/internal/domain"
	"github.com/marcus/scenevoice/internal/logger"
	"github.com/marcus/scenevoice/internal/repository"
	"github.com/marcus/scenevoice/internal/storage"
)

// archiveTimeout bounds the fire-and-forget narration upload.
const archiveTimeout = 30 * time.Second

// DescribeHandler serves the two description endpoints. The audit
// repository and archive storage are optional; nil disables them.
type DescribeHandler struct {
	resolver *describe.Resolver
	audit    *repository.AuditRepository
	archive  storage.ObjectStorage
}

// NewDescribeHandler creates the describe handler.
// Parameters:
//   - resolver: request resolution core.
//   - audit: audit repository, nil to disable request auditing.
//   - archive: narration archive storage, nil to disable archiving.
// Returns:
//   - *DescribeHandler: initialized handler.
func NewDescribeHandler(resolver *describe.Resolver, audit *repository.AuditRepository, archive storage.ObjectStorage) *DescribeHandler {
	return &DescribeHandler{
		resolver: resolver,
		audit:    audit,
		archive:  archive,
	}
}

// textResponse is the text-path success envelope.
type textResponse struct {
	Description string `json:"description"`
	Format      string `json:"format"`
	Language    string `json:"language"`
}

// audioResponse is the narration-path success envelope. Audio is
// base64-encoded mp3 via the standard JSON []byte encoding.
type audioResponse struct {
	Description string `json:"description"`
	Audio       []byte `json:"audio"`
	Format      string `json:"format"`
	Voice       string `json:"voice"`
	Language    string `json:"language"`
}

// Text handles POST /api/v1/describe/text.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *DescribeHandler) Text(c *gin.Context) {
	start := time.Now()

	var req describe.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.resolver.Describe(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		h.recordAudit(c, domain.ModeText, &req, nil, start, err)
		return
	}

	c.JSON(http.StatusOK, textResponse{
		Description: result.Description,
		Format:      "text",
		Language:    result.Language,
	})
	h.recordAudit(c, domain.ModeText, &req, result, start, nil)
}

// Audio handles POST /api/v1/describe/audio.
// Parameters:
//   - c: Gin request context.
// Returns: none (writes JSON response).
func (h *DescribeHandler) Audio(c *gin.Context) {
	start := time.Now()

	var req describe.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request: " + err.Error(),
		})
		return
	}

	result, err := h.resolver.Narrate(c.Request.Context(), &req)
	if err != nil {
		h.writeError(c, err)
		h.recordAudit(c, domain.ModeAudio, &req, nil, start, err)
		return
	}

	c.JSON(http.StatusOK, audioResponse{
		Description: result.Description,
		Audio:       result.Audio,
		Format:      "audio",
		Voice:       result.Voice,
		Language:    result.Language,
	})
	h.recordAudit(c, domain.ModeAudio, &req, result, start, nil)
	h.archiveNarration(c.Request.Context(), result)
}

// writeError maps the resolver's error taxonomy onto HTTP statuses:
// validation failures are the client's fault, inference failures ours.
func (h *DescribeHandler) writeError(c *gin.Context, err error) {
	var verr *describe.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}
	logger.CtxError(c.Request.Context(), "Request failed: %v", err)
	c.JSON(http.StatusInternalServerError, gin.H{
		"error": "Internal server error: " + err.Error(),
	})
}

// recordAudit persists the request outcome when auditing is enabled.
// The write happens off the request goroutine with a fresh context so
// a canceled client never loses the record.
func (h *DescribeHandler) recordAudit(c *gin.Context, mode string, req *describe.Request, result *describe.Result, start time.Time, reqErr error) {
	if h.audit == nil {
		return
	}

	audit := &domain.RequestAudit{
		RequestID:  middleware.RequestID(c),
		Mode:       mode,
		Language:   req.Language,
		Status:     c.Writer.Status(),
		DurationMs: time.Since(start).Milliseconds(),
	}
	if result != nil {
		audit.Language = result.Language
		audit.Voice = result.Voice
	}
	if reqErr != nil {
		audit.Error = reqErr.Error()
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := h.audit.Record(ctx, audit); err != nil {
			logger.Error("Failed to record request audit: %v", err)
		}
	}()
}

// archiveNarration uploads the synthesized mp3 when archiving is
// enabled. Failures are logged and never affect the response.
func (h *DescribeHandler) archiveNarration(ctx context.Context, result *describe.Result) {
	if h.archive == nil || len(result.Audio) == 0 {
		return
	}

	key := fmt.Sprintf("narrations/%s.mp3", uuid.New().String())
	audio := result.Audio
	requestID := logger.GetRequestID(ctx)

	go func() {
		uploadCtx, cancel := context.WithTimeout(context.Background(), archiveTimeout)
		defer cancel()
		if err := h.archive.Upload(uploadCtx, key, bytes.NewReader(audio), int64(len(audio)), "audio/mpeg"); err != nil {
			logger.With(logger.Fields{logger.FieldRequestID: requestID}).
				Error(context.Background(), "Failed to archive narration %s: %v", key, err)
			return
		}
		logger.With(logger.Fields{
			logger.FieldRequestID: requestID,
			logger.FieldSize:      len(audio),
		}).Debug(context.Background(), "Archived narration %s", key)
	}()
}
