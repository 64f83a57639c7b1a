package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/ldsgroups225/yeko-pointage/internal/models"
	"github.com/ldsgroups225/yeko-pointage/internal/service"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
	"github.com/ldsgroups225/yeko-pointage/pkg/response"
)

// ArchiveHandler serves session history and report exports.
type ArchiveHandler struct {
	service *service.ArchiveService
}

// NewArchiveHandler creates a new handler.
func NewArchiveHandler(svc *service.ArchiveService) *ArchiveHandler {
	return &ArchiveHandler{service: svc}
}

func archiveFilterFromQuery(c *gin.Context) (models.SessionArchiveFilter, error) {
	filter := models.SessionArchiveFilter{
		ClassID:   c.Query("class_id"),
		TeacherID: c.Query("teacher_id"),
	}
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid from date, expected YYYY-MM-DD")
		}
		filter.DateFrom = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid to date, expected YYYY-MM-DD")
		}
		end := t.Add(24*time.Hour - time.Nanosecond)
		filter.DateTo = &end
	}
	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)
		if err != nil || limit < 0 {
			return filter, appErrors.Clone(appErrors.ErrValidation, "invalid limit")
		}
		filter.Limit = limit
	}
	return filter, nil
}

// List godoc
// @Summary List session archives
// @Tags Archive
// @Produce json
// @Param class_id query string false "Filter by class"
// @Param teacher_id query string false "Filter by teacher"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Param limit query int false "Max rows"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /archives [get]
func (h *ArchiveHandler) List(c *gin.Context) {
	filter, err := archiveFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	archives, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, archives, map[string]interface{}{"count": len(archives)})
}

// Get godoc
// @Summary Get a session archive
// @Tags Archive
// @Produce json
// @Param archiveId path string true "Archive id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /archives/{archiveId} [get]
func (h *ArchiveHandler) Get(c *gin.Context) {
	archive, err := h.service.Get(c.Request.Context(), c.Param("archiveId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, archive, nil)
}

// Export godoc
// @Summary Export session archives
// @Description Renders the filtered archives as a PDF or CSV report
// @Tags Archive
// @Produce application/pdf
// @Param format query string false "pdf or csv" default(pdf)
// @Param class_id query string false "Filter by class"
// @Param teacher_id query string false "Filter by teacher"
// @Param from query string false "Start date (YYYY-MM-DD)"
// @Param to query string false "End date (YYYY-MM-DD)"
// @Success 200 {file} binary
// @Failure 400 {object} response.Envelope
// @Router /archives/export [get]
func (h *ArchiveHandler) Export(c *gin.Context) {
	filter, err := archiveFilterFromQuery(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	name := fmt.Sprintf("session-report-%s", time.Now().UTC().Format("20060102-150405"))
	switch c.DefaultQuery("format", "pdf") {
	case "pdf":
		data, err := h.service.ExportPDF(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", name))
		c.Data(http.StatusOK, "application/pdf", data)
	case "csv":
		data, err := h.service.ExportCSV(c.Request.Context(), filter)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.csv", name))
		c.Data(http.StatusOK, "text/csv", data)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "unsupported export format"))
	}
}
