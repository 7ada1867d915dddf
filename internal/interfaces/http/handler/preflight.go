package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Preflight CORS 预检，头部由 CORS 中间件写入
func Preflight(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
