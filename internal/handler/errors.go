package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/utils"
)

// respondError 把错误分类映射为 HTTP 状态码，只有未知错误会记录日志
func (h *Handler) respondError(c *gin.Context, err error) {
	var fe *apperr.FieldError
	switch {
	case errors.As(err, &fe):
		utils.Error(c, http.StatusUnprocessableEntity, "参数错误: "+fe.Field+" "+fe.Reason)
	case errors.Is(err, apperr.ErrInvariantViolation):
		utils.Error(c, http.StatusUnprocessableEntity, "已看集数不能超过总集数: "+err.Error())
	case errors.Is(err, apperr.ErrEmptyUpdate):
		utils.Error(c, http.StatusUnprocessableEntity, "没有需要更新的字段")
	case errors.Is(err, apperr.ErrNotFound):
		utils.NotFound(c, "记录不存在")
	case errors.Is(err, apperr.ErrUnauthenticated):
		utils.Unauthorized(c, "未登录或登录已失效")
	case errors.Is(err, apperr.ErrConflict):
		utils.Error(c, http.StatusConflict, "资源已存在")
	case errors.Is(err, apperr.ErrRateLimited):
		utils.Error(c, http.StatusTooManyRequests, "尝试次数过多，请稍后再试")
	default:
		_ = c.Error(err)
		h.Log.Error("请求处理失败", "path", c.FullPath(), "error", err)
		utils.InternalServerError(c, "")
	}
}

// bindError 请求体解析失败转为字段错误
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return apperr.Field(typeErr.Field, "must be a "+typeErr.Type.String())
	}
	var syntaxErr *json.SyntaxError
	if errors.As(err, &syntaxErr) || errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return apperr.Field("body", "malformed JSON")
	}
	return apperr.Field("body", err.Error())
}

// parseID 解析路径中的 :id，必须为正整数
func parseID(c *gin.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperr.Field("id", "must be a positive integer")
	}
	return id, nil
}
