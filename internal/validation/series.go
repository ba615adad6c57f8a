package validation

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/model"
)

// ValidateCreateOrReplace 校验创建 / 整体替换的请求体，返回规范化后的字段
func ValidateCreateOrReplace(in model.SeriesInput) (model.SeriesFields, error) {
	in.Title = trimmed(in.Title)
	if err := validate.Struct(in); err != nil {
		return model.SeriesFields{}, fieldError(err)
	}

	fields := model.SeriesFields{
		Title:           *in.Title,
		Rating:          NormalizeRating(*in.Rating),
		TotalSeasons:    *in.TotalSeasons,
		TotalEpisodes:   *in.TotalEpisodes,
		WatchedEpisodes: *in.WatchedEpisodes,
		Status:          *in.Status,
	}
	if err := checkInvariant(fields); err != nil {
		return model.SeriesFields{}, err
	}
	return fields, nil
}

// ValidatePartial 校验部分更新：逐个检查出现的字段，再用合并后的状态检查不变式。
// 返回合并后的完整状态。
func ValidatePartial(in model.SeriesPatch, current model.SeriesFields) (model.SeriesFields, error) {
	if in.Empty() {
		return model.SeriesFields{}, apperr.ErrEmptyUpdate
	}

	in.Title = trimmed(in.Title)
	if err := validate.Struct(in); err != nil {
		return model.SeriesFields{}, fieldError(err)
	}

	merged := Merge(current, in)
	if err := checkInvariant(merged); err != nil {
		return model.SeriesFields{}, err
	}
	return merged, nil
}

// Merge 将 patch 中出现的字段覆盖到 current 上
func Merge(current model.SeriesFields, in model.SeriesPatch) model.SeriesFields {
	merged := current
	if in.Title != nil {
		merged.Title = strings.TrimSpace(*in.Title)
	}
	if in.Rating != nil {
		merged.Rating = NormalizeRating(*in.Rating)
	}
	if in.TotalSeasons != nil {
		merged.TotalSeasons = *in.TotalSeasons
	}
	if in.TotalEpisodes != nil {
		merged.TotalEpisodes = *in.TotalEpisodes
	}
	if in.WatchedEpisodes != nil {
		merged.WatchedEpisodes = *in.WatchedEpisodes
	}
	if in.Status != nil {
		merged.Status = *in.Status
	}
	return merged
}

func checkInvariant(f model.SeriesFields) error {
	if f.WatchedEpisodes > f.TotalEpisodes {
		return apperr.Invariant(fmt.Sprintf(
			"watchedEpisodes (%d) exceeds totalEpisodes (%d)", f.WatchedEpisodes, f.TotalEpisodes))
	}
	return nil
}

// NormalizeRating 评分保留一位小数
func NormalizeRating(r float64) float64 {
	return math.Round(r*10) / 10
}

// ParseFilter 解析列表过滤参数
func ParseFilter(in model.SeriesFilterInput) (model.SeriesFilter, error) {
	var f model.SeriesFilter

	if raw := strings.TrimSpace(in.Status); raw != "" {
		s, ok := model.ParseStatus(raw)
		if !ok {
			return model.SeriesFilter{}, apperr.Field("status", "must be one of planned, watching, completed")
		}
		f.Status = &s
	}

	if raw := strings.TrimSpace(in.Rating); raw != "" {
		r, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(r) || r < 0 || r > 10 {
			return model.SeriesFilter{}, apperr.Field("rating", "must be a number between 0 and 10")
		}
		r = NormalizeRating(r)
		f.Rating = &r
	}

	f.Title = strings.TrimSpace(in.Title)
	return f, nil
}
