package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/middleware"
	"github.com/user/seriestrack/internal/model"
	"github.com/user/seriestrack/internal/utils"
	"github.com/user/seriestrack/internal/validation"
)

// SeriesList 列表响应
type SeriesList struct {
	Count  int             `json:"count"`
	Series []*model.Series `json:"series"`
}

// CreateSeries 新建记录
func (h *Handler) CreateSeries(c *gin.Context) {
	var req model.SeriesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	series, err := h.Series.Create(c.Request.Context(), middleware.GetUserID(c), req)
	h.Metrics.ObserveSeriesWrite("create", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Created(c, series)
}

// ListSeries 列表，支持 status / rating / title 过滤
func (h *Handler) ListSeries(c *gin.Context) {
	var query model.SeriesFilterInput
	if err := c.ShouldBindQuery(&query); err != nil {
		h.respondError(c, apperr.Field("query", err.Error()))
		return
	}
	filter, err := validation.ParseFilter(query)
	if err != nil {
		h.respondError(c, err)
		return
	}

	list, err := h.Series.ListByOwner(c.Request.Context(), middleware.GetUserID(c), filter)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if list == nil {
		list = []*model.Series{}
	}
	utils.Success(c, SeriesList{Count: len(list), Series: list})
}

// GetSeries 单条记录
func (h *Handler) GetSeries(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	series, err := h.Series.GetByID(c.Request.Context(), middleware.GetUserID(c), id)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, series)
}

// ReplaceSeries 整体替换（PUT），所有字段必填
func (h *Handler) ReplaceSeries(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req model.SeriesInput
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	series, err := h.Series.Replace(c.Request.Context(), middleware.GetUserID(c), id, req)
	h.Metrics.ObserveSeriesWrite("replace", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, series)
}

// PatchSeries 部分更新（PATCH），只修改出现的字段
func (h *Handler) PatchSeries(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}
	var req model.SeriesPatch
	if err := c.ShouldBindJSON(&req); err != nil {
		h.respondError(c, bindError(err))
		return
	}

	series, err := h.Series.UpdatePartial(c.Request.Context(), middleware.GetUserID(c), id, req)
	h.Metrics.ObserveSeriesWrite("update", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	utils.Success(c, series)
}

// DeleteSeries 删除记录
func (h *Handler) DeleteSeries(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		h.respondError(c, err)
		return
	}

	removed, err := h.Series.Remove(c.Request.Context(), middleware.GetUserID(c), id)
	h.Metrics.ObserveSeriesWrite("delete", err)
	if err != nil {
		h.respondError(c, err)
		return
	}
	if !removed {
		h.respondError(c, apperr.ErrNotFound)
		return
	}
	utils.SuccessWithMessage(c, "删除成功", gin.H{"id": id})
}
