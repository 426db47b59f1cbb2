package middleware

import (
	"net/http"
	"strings"

	"choosecare-bff/pkg/utils"

	"github.com/gin-gonic/gin"
)

// DeviceHeader identifies the phone or tablet a request comes from. Screen
// state and the saved login are kept per device.
const DeviceHeader = "X-Device-Id"

func Device() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("deviceID", strings.TrimSpace(c.GetHeader(DeviceHeader)))
		c.Next()
	}
}

// RequireDevice rejects requests that do not name their device. Routes that
// keep per-device state sit behind it.
func RequireDevice() gin.HandlerFunc {
	return func(c *gin.Context) {
		if DeviceID(c) == "" {
			utils.ErrorResponse(c, http.StatusBadRequest, DeviceHeader+" header is required")
			c.Abort()
			return
		}
		c.Next()
	}
}

// DeviceID returns the device set by Device, or "" when the request named none.
func DeviceID(c *gin.Context) string {
	return c.GetString("deviceID")
}
