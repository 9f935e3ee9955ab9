package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// PageResponse wraps a paginated listing.
type PageResponse struct {
	Data       interface{} `json:"data"`
	Pagination Pagination  `json:"pagination"`
}

// Pagination carries paging metadata.
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// BuildPagination computes paging metadata.
func BuildPagination(page, pageSize int, total int64) Pagination {
	totalPage := int64(0)
	if pageSize > 0 {
		totalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return Pagination{
		Page:      page,
		PageSize:  pageSize,
		Total:     total,
		TotalPage: totalPage,
	}
}

// Success writes a 200 with the payload.
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, data)
}

// Created writes a 201 with the payload.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, data)
}

// SuccessWithPage writes a 200 paginated listing.
func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(http.StatusOK, PageResponse{
		Data:       data,
		Pagination: pagination,
	})
}

// Error writes an error body with the given HTTP status.
func Error(c *gin.Context, status int, msg string) {
	body := gin.H{"error": msg}
	if requestID := resolveRequestID(c); requestID != "" {
		body["request_id"] = requestID
	}
	c.JSON(status, body)
}

// BadRequest writes a 400 error.
func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, msg)
}

// NotFound writes a 404 error.
func NotFound(c *gin.Context, msg string) {
	Error(c, http.StatusNotFound, msg)
}

func resolveRequestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
