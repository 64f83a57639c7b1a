package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ldsgroups225/yeko-pointage/internal/service"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
	"github.com/ldsgroups225/yeko-pointage/pkg/response"
)

// SessionHandler wires the session lifecycle endpoints: roll call,
// participation capture, homework draft and submission.
type SessionHandler struct {
	sessions       *service.SessionService
	roster         *service.RosterService
	participations *service.ParticipationService
	metrics        *service.MetricsService
}

// NewSessionHandler creates a new handler.
func NewSessionHandler(sessions *service.SessionService, roster *service.RosterService, participations *service.ParticipationService, metrics *service.MetricsService) *SessionHandler {
	return &SessionHandler{
		sessions:       sessions,
		roster:         roster,
		participations: participations,
		metrics:        metrics,
	}
}

// Get godoc
// @Summary Get current session state
// @Tags Session
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /session [get]
func (h *SessionHandler) Get(c *gin.Context) {
	state, err := h.sessions.Get(c.Request.Context(), deviceFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// ToggleAttendance godoc
// @Summary Toggle a student's attendance status
// @Description Applies one tap on a student card following the active pass rules
// @Tags Session
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param studentId path string true "Student id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /session/attendance/{studentId} [post]
func (h *SessionHandler) ToggleAttendance(c *gin.Context) {
	record, err := h.roster.ToggleStudent(c.Request.Context(), deviceFromContext(c), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// FinalizeAttendance godoc
// @Summary Advance the roll call
// @Description First call closes the first pass; second call freezes the attendance snapshot and opens participation capture
// @Tags Session
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /session/attendance/finalize [post]
func (h *SessionHandler) FinalizeAttendance(c *gin.Context) {
	state, err := h.roster.Finalize(c.Request.Context(), deviceFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// ToggleParticipation godoc
// @Summary Toggle a student's participation entry
// @Tags Session
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param studentId path string true "Student id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /session/participation/{studentId} [post]
func (h *SessionHandler) ToggleParticipation(c *gin.Context) {
	state, err := h.participations.Toggle(c.Request.Context(), deviceFromContext(c), c.Param("studentId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

type commentRequest struct {
	Comment string `json:"comment"`
}

// SaveParticipationComment godoc
// @Summary Attach a comment to a participation entry
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param studentId path string true "Student id"
// @Param payload body commentRequest true "Comment"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /session/participation/{studentId}/comment [put]
func (h *SessionHandler) SaveParticipationComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid comment payload"))
		return
	}
	state, err := h.participations.SaveComment(c.Request.Context(), deviceFromContext(c), c.Param("studentId"), req.Comment)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// ParticipationStats godoc
// @Summary Get the participation summary of the current draft
// @Tags Session
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /session/participation/stats [get]
func (h *SessionHandler) ParticipationStats(c *gin.Context) {
	stats, err := h.participations.Stats(c.Request.Context(), deviceFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, stats, nil)
}

// SetHomework godoc
// @Summary Attach a homework draft to the session
// @Tags Session
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param payload body service.HomeworkDraftRequest true "Homework draft"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /session/homework [put]
func (h *SessionHandler) SetHomework(c *gin.Context) {
	var req service.HomeworkDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid homework payload"))
		return
	}
	state, err := h.sessions.SetHomework(c.Request.Context(), deviceFromContext(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// ClearHomework godoc
// @Summary Remove the homework draft from the session
// @Tags Session
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /session/homework [delete]
func (h *SessionHandler) ClearHomework(c *gin.Context) {
	state, err := h.sessions.ClearHomework(c.Request.Context(), deviceFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, state, nil)
}

// Submit godoc
// @Summary Submit the session
// @Description Issues the attendance, participation and homework writes and clears the session on success
// @Tags Session
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Failure 502 {object} response.Envelope
// @Router /session/submit [post]
func (h *SessionHandler) Submit(c *gin.Context) {
	deviceID := deviceFromContext(c)
	start := time.Now()
	result, err := h.sessions.Submit(c.Request.Context(), deviceID)
	if err != nil {
		if appErrors.Is(err, appErrors.ErrSubmissionFailed) {
			h.metrics.RecordSessionClosed("failed", time.Since(start))
		}
		response.Error(c, err)
		return
	}
	h.metrics.RecordSessionClosed("submitted", time.Since(start))
	response.JSON(c, http.StatusOK, result, nil)
}

// Abort godoc
// @Summary Abort the session
// @Description Discards the session state and returns the device to the scan screen
// @Tags Session
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 204 {object} response.Envelope
// @Router /session [delete]
func (h *SessionHandler) Abort(c *gin.Context) {
	if err := h.sessions.Abort(c.Request.Context(), deviceFromContext(c)); err != nil {
		response.Error(c, err)
		return
	}
	h.metrics.RecordSessionClosed("aborted", 0)
	response.NoContent(c)
}
