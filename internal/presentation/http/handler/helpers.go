package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/nota-perusahaan/internal/presentation/http/middleware"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
)

// receiptID reads the :id path parameter
func receiptID(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, apperror.NewBadRequestError("Invalid receipt ID")
	}
	return uint(id), nil
}

// actingUser is the name printed on documents rendered for this request
func actingUser(c *gin.Context) string {
	return middleware.GetDisplayName(c)
}

// wantsJSON reports whether the client posted JSON rather than an HTML form
func wantsJSON(c *gin.Context) bool {
	return c.ContentType() == gin.MIMEJSON
}
