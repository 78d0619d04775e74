package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yigit/studybuddy/internal/app/models/dto"
)

// BindJSON binds and validates the JSON body into obj. On failure it writes a
// 400 with every failing field and returns false.
func BindJSON(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBindJSON(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}

// BindForm is BindJSON for url-encoded and multipart forms
func BindForm(c *gin.Context, obj interface{}) bool {
	if err := c.ShouldBind(obj); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewErrorResponse(dto.HandleValidationError(err)))
		return false
	}
	return true
}
