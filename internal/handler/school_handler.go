package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ldsgroups225/yeko-pointage/internal/service"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
	"github.com/ldsgroups225/yeko-pointage/pkg/response"
)

// SchoolHandler serves the school data the configuration screen reads.
type SchoolHandler struct {
	service *service.SchoolService
}

// NewSchoolHandler creates a new handler.
func NewSchoolHandler(svc *service.SchoolService) *SchoolHandler {
	return &SchoolHandler{service: svc}
}

// Get godoc
// @Summary Get a school
// @Tags School
// @Produce json
// @Param schoolId path string true "School id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{schoolId} [get]
func (h *SchoolHandler) Get(c *gin.Context) {
	school, err := h.service.GetSchool(c.Request.Context(), c.Param("schoolId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, school, nil)
}

// ListClasses godoc
// @Summary List the classes of a school
// @Tags School
// @Produce json
// @Param schoolId path string true "School id"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /schools/{schoolId}/classes [get]
func (h *SchoolHandler) ListClasses(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	schoolID := c.Param("schoolId")
	if err := h.service.VerifyDirectorAccess(c.Request.Context(), claims.UserID, schoolID); err != nil {
		response.Error(c, err)
		return
	}

	classes, err := h.service.ListClasses(c.Request.Context(), schoolID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, classes, nil)
}

// ListGrades godoc
// @Summary List the grades of a school's cycle
// @Tags School
// @Produce json
// @Param schoolId path string true "School id"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /schools/{schoolId}/grades [get]
func (h *SchoolHandler) ListGrades(c *gin.Context) {
	grades, err := h.service.ListGrades(c.Request.Context(), c.Param("schoolId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, grades, nil)
}
