package util

import (
	"errors"
	"net/http"

	"text2learn_backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Response 统一响应结构
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// ListResponse 列表响应结构
type ListResponse struct {
	Count int         `json:"count"`
	List  interface{} `json:"list"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    http.StatusOK,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    http.StatusCreated,
		Message: "created",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, Response{
		Code:    code,
		Message: message,
	})
}

func Unauthorized(c *gin.Context) {
	Error(c, http.StatusUnauthorized, "Unauthorized")
}

func Forbidden(c *gin.Context, message string) {
	Error(c, http.StatusForbidden, message)
}

func BadRequest(c *gin.Context, message string) {
	Error(c, http.StatusBadRequest, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, http.StatusNotFound, message)
}

func InternalServerError(c *gin.Context) {
	Error(c, http.StatusInternalServerError, "Internal server error")
}

func LogInternalError(c *gin.Context, err error) {
	logger.Log.Error("Internal server error", zap.Error(err))
	InternalServerError(c)
}

// GenerationError 将生成管线错误映射为对应的HTTP状态。
// 供应商全部失败→503，供应商返回无法解析的内容→502，其余→500。
func GenerationError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrTopicRequired):
		BadRequest(c, err.Error())
	case errors.Is(err, ErrGenerationUnavailable):
		Error(c, http.StatusServiceUnavailable, ErrGenerationUnavailable.Error())
	case errors.Is(err, ErrMalformedOutput):
		logger.Log.Error("Provider returned unparsable output", zap.Error(err))
		Error(c, http.StatusBadGateway, ErrMalformedOutput.Error())
	case errors.Is(err, ErrCourseNotFound), errors.Is(err, ErrModuleNotFound), errors.Is(err, ErrLessonNotFound):
		NotFound(c, err.Error())
	default:
		LogInternalError(c, err)
	}
}
