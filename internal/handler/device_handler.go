package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ldsgroups225/yeko-pointage/internal/service"
	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
	"github.com/ldsgroups225/yeko-pointage/pkg/response"
)

// DeviceHandler wires the tablet configuration endpoints.
type DeviceHandler struct {
	devices *service.DeviceService
	schools *service.SchoolService
	classes *service.ClassService
}

// NewDeviceHandler creates a new handler.
func NewDeviceHandler(devices *service.DeviceService, schools *service.SchoolService, classes *service.ClassService) *DeviceHandler {
	return &DeviceHandler{devices: devices, schools: schools, classes: classes}
}

// GetBinding godoc
// @Summary Get the binding of the calling device
// @Tags Device
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /device/binding [get]
func (h *DeviceHandler) GetBinding(c *gin.Context) {
	binding, err := h.devices.FindBinding(c.Request.Context(), deviceFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, binding, nil)
}

// Bind godoc
// @Summary Bind the calling device to a class
// @Description Directors configure a tablet by binding it to one class of their school
// @Tags Device
// @Accept json
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Param payload body service.BindDeviceRequest true "Binding payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /device/binding [put]
func (h *DeviceHandler) Bind(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.BindDeviceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid binding payload"))
		return
	}
	req.DeviceID = deviceFromContext(c)

	if err := h.schools.VerifyDirectorAccess(c.Request.Context(), claims.UserID, req.SchoolID); err != nil {
		response.Error(c, err)
		return
	}

	binding, err := h.devices.Bind(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, binding)
}

// ClassDetails godoc
// @Summary Get the class details of the bound class
// @Tags Device
// @Produce json
// @Param X-Device-ID header string true "Device identifier"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /device/class [get]
func (h *DeviceHandler) ClassDetails(c *gin.Context) {
	binding, err := h.devices.FindBinding(c.Request.Context(), deviceFromContext(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	details, err := h.classes.ClassDetails(c.Request.Context(), binding.ClassID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, details, nil)
}
