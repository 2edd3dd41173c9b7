package middleware

import (
	"github.com/gin-gonic/gin"
)

// AppInfo stamps the server name and version onto the gin context for
// handlers and log lines.
func AppInfo(name string, version string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("app_name", name)
		c.Set("app_version", version)
		c.Writer.Header().Set("Server", name+"/"+version)
		c.Next()
	}
}
