package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/ldsgroups225/yeko-pointage/internal/middleware"
	"github.com/ldsgroups225/yeko-pointage/internal/models"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

func deviceFromContext(c *gin.Context) string {
	value, exists := c.Get(middleware.ContextDeviceKey)
	if !exists {
		return ""
	}
	deviceID, _ := value.(string)
	return deviceID
}
