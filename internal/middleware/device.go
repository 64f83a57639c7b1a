package middleware

import (
	"github.com/gin-gonic/gin"

	appErrors "github.com/ldsgroups225/yeko-pointage/pkg/errors"
	"github.com/ldsgroups225/yeko-pointage/pkg/response"
)

// ContextDeviceKey is the gin context key storing the calling device id.
const ContextDeviceKey = "deviceID"

// DeviceHeader identifies the tablet issuing the request.
const DeviceHeader = "X-Device-ID"

// RequireDevice rejects requests that do not carry a device id header.
// Session routes are keyed by device, so an anonymous request has no
// state to act on.
func RequireDevice() gin.HandlerFunc {
	return func(c *gin.Context) {
		deviceID := c.GetHeader(DeviceHeader)
		if deviceID == "" {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "missing device id header"))
			c.Abort()
			return
		}
		c.Set(ContextDeviceKey, deviceID)
		c.Next()
	}
}
