package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Pagination metadata returned with admin list responses.
type Pagination struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	TotalItems  int64 `json:"totalItems"`
	Limit       int   `json:"limit"`
}

// listResponse is the envelope for admin list endpoints: a filtered page of
// items plus aggregate stats over the caller's full (unfiltered) scope.
type listResponse struct {
	Items      interface{} `json:"items"`
	Pagination Pagination  `json:"pagination"`
	Stats      interface{} `json:"stats,omitempty"`
}

// OK sends a 200 response.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// List sends an {items, pagination, stats} response.
func List(c *gin.Context, items interface{}, pagination Pagination, stats interface{}) {
	c.JSON(http.StatusOK, listResponse{Items: items, Pagination: pagination, Stats: stats})
}

// Created sends a 201 {message, item} response.
func Created(c *gin.Context, message string, item interface{}) {
	c.JSON(http.StatusCreated, gin.H{"message": message, "item": item})
}

// NoContent sends a 204 response.
func NoContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// BadRequest sends a 400 error response.
func BadRequest(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": message})
}

// Unauthorized sends a 401 error response.
func Unauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}

// Forbidden sends a 403 error response.
func Forbidden(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
}

// NotFound sends a 404 error response.
func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "not found"
	}
	c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": message})
}

// Conflict sends a 409 error response.
func Conflict(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": message})
}

// InternalError sends a generic 500 error response. The underlying error is
// logged by the caller, never exposed here.
func InternalError(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}

// TooManyRequests sends a 429 error response.
func TooManyRequests(c *gin.Context) {
	c.Header("Retry-After", "1")
	c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
}
