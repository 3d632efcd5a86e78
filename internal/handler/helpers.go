package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses a positive integer id path parameter. Callers respond
// with 400 when ok is false.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
