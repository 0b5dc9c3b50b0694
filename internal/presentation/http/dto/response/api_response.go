package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/nota-perusahaan/pkg/apperror"
)

// ErrorBody is the JSON shape of every failed API call
type ErrorBody struct {
	Error  string                `json:"error"`
	Errors []apperror.FieldError `json:"errors,omitempty"`
}

// Success sends {"success": true, ...payload}
func Success(c *gin.Context, statusCode int, payload gin.H) {
	body := gin.H{"success": true}
	for k, v := range payload {
		body[k] = v
	}
	c.JSON(statusCode, body)
}

// OK sends a 200 success response
func OK(c *gin.Context, payload gin.H) {
	Success(c, http.StatusOK, payload)
}

// Created sends a 201 success response
func Created(c *gin.Context, payload gin.H) {
	Success(c, http.StatusCreated, payload)
}

// Error sends the error response for err and records it on the context so
// the request logger can report the cause.
func Error(c *gin.Context, err error) {
	appErr := apperror.GetAppError(err)
	if appErr.Code >= http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(appErr.Code, ErrorBody{
		Error:  appErr.Message,
		Errors: appErr.Errors,
	})
}

// ErrorWithCode sends an error response with a specific status code
func ErrorWithCode(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, ErrorBody{Error: message})
}

// BadRequest sends a 400 Bad Request response
func BadRequest(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusBadRequest, message)
}

// Unauthorized sends a 401 Unauthorized response
func Unauthorized(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusUnauthorized, message)
}

// NotFound sends a 404 Not Found response
func NotFound(c *gin.Context, message string) {
	ErrorWithCode(c, http.StatusNotFound, message)
}
