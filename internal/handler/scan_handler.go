package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	"github.com/ldsgroups225/yeko-pointage/internal/service"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
	"github.com/ldsgroups225/yeko-pointage/pkg/response"
)

// ScanHandler wires the scan resolution endpoint.
type ScanHandler struct {
	service *service.ScanService
	metrics *service.MetricsService
}

// NewScanHandler creates a new handler.
func NewScanHandler(svc *service.ScanService, metrics *service.MetricsService) *ScanHandler {
	return &ScanHandler{service: svc, metrics: metrics}
}

type scanRequest struct {
	Payload string `json:"payload" binding:"required"`
}

// Resolve godoc
// @Summary Resolve a scanned identification code
// @Description Parses the scanned payload and either opens a teacher session or returns a director login redirect
// @Tags Scan
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param payload body scanRequest true "Scanned payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /scan [post]
func (h *ScanHandler) Resolve(c *gin.Context) {
	var req scanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid scan payload"))
		return
	}

	resolution, err := h.service.Resolve(c.Request.Context(), deviceFromContext(c), req.Payload)
	if err != nil {
		response.Error(c, err)
		return
	}

	if resolution.Role == models.RoleTeacher {
		h.metrics.RecordSessionOpened()
	}
	response.JSON(c, http.StatusOK, resolution, nil)
}
