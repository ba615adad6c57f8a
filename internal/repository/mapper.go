package repository

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/user/seriestrack/internal/apperr"
	"github.com/user/seriestrack/internal/model"
)

const seriesColumns = "id, user_id, title, rating, total_seasons, total_episodes, watched_episodes, status, created_at, updated_at"

// assignment 一个 SET 子句项，列名只来自固定映射
type assignment struct {
	column string
	value  any
}

// seriesFromRow 将一行结果转换为 Series，兼容不同驱动返回的值类型
func seriesFromRow(row Row) (*model.Series, error) {
	var (
		s   model.Series
		err error
	)
	if s.ID, err = toInt64(row["id"]); err != nil {
		return nil, mapErr("id", err)
	}
	if s.UserID, err = toInt64(row["user_id"]); err != nil {
		return nil, mapErr("user_id", err)
	}
	if s.Title, err = toString(row["title"]); err != nil {
		return nil, mapErr("title", err)
	}
	if s.Rating, err = toRating(row["rating"]); err != nil {
		return nil, mapErr("rating", err)
	}
	if s.TotalSeasons, err = toInt(row["total_seasons"]); err != nil {
		return nil, mapErr("total_seasons", err)
	}
	if s.TotalEpisodes, err = toInt(row["total_episodes"]); err != nil {
		return nil, mapErr("total_episodes", err)
	}
	if s.WatchedEpisodes, err = toInt(row["watched_episodes"]); err != nil {
		return nil, mapErr("watched_episodes", err)
	}

	raw, err := toString(row["status"])
	if err != nil {
		return nil, mapErr("status", err)
	}
	status, ok := model.ParseStatus(raw)
	if !ok {
		return nil, mapErr("status", fmt.Errorf("unknown status %q", raw))
	}
	s.Status = status

	if s.CreatedAt, err = toTime(row["created_at"]); err != nil {
		return nil, mapErr("created_at", err)
	}
	if s.UpdatedAt, err = toTime(row["updated_at"]); err != nil {
		return nil, mapErr("updated_at", err)
	}
	return &s, nil
}

func seriesFromRows(rows []Row) ([]*model.Series, error) {
	out := make([]*model.Series, 0, len(rows))
	for _, row := range rows {
		s, err := seriesFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// ratingToStorage 评分以一位小数的定点文本写入
func ratingToStorage(r float64) string {
	return strconv.FormatFloat(r, 'f', 1, 64)
}

// fieldAssignments 全量替换时写入的列
func fieldAssignments(f model.SeriesFields) []assignment {
	return []assignment{
		{"title", f.Title},
		{"rating", ratingToStorage(f.Rating)},
		{"total_seasons", f.TotalSeasons},
		{"total_episodes", f.TotalEpisodes},
		{"watched_episodes", f.WatchedEpisodes},
		{"status", string(f.Status)},
	}
}

// patchAssignments 只写 patch 中出现的列，取值来自合并后的（已规范化）状态
func patchAssignments(p model.SeriesPatch, merged model.SeriesFields) []assignment {
	var out []assignment
	if p.Title != nil {
		out = append(out, assignment{"title", merged.Title})
	}
	if p.Rating != nil {
		out = append(out, assignment{"rating", ratingToStorage(merged.Rating)})
	}
	if p.TotalSeasons != nil {
		out = append(out, assignment{"total_seasons", merged.TotalSeasons})
	}
	if p.TotalEpisodes != nil {
		out = append(out, assignment{"total_episodes", merged.TotalEpisodes})
	}
	if p.WatchedEpisodes != nil {
		out = append(out, assignment{"watched_episodes", merged.WatchedEpisodes})
	}
	if p.Status != nil {
		out = append(out, assignment{"status", string(merged.Status)})
	}
	return out
}

// setClause 生成 "a = ?, b = ?" 及对应参数
func setClause(as []assignment) (string, []any) {
	parts := make([]string, 0, len(as))
	args := make([]any, 0, len(as))
	for _, a := range as {
		parts = append(parts, a.column+" = ?")
		args = append(args, a.value)
	}
	return strings.Join(parts, ", "), args
}

// escapeLike 转义 LIKE 通配符，配合 ESCAPE '\' 使用
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}

func mapErr(col string, err error) error {
	return apperr.Storage("", fmt.Errorf("map column %s: %w", col, err))
}

func toInt64(v any) (int64, error) {
	switch t := v.(type) {
	case int64:
		return t, nil
	case int32:
		return int64(t), nil
	case int:
		return int64(t), nil
	case float64:
		return int64(t), nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(t), 10, 64)
	case []byte:
		return strconv.ParseInt(strings.TrimSpace(string(t)), 10, 64)
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
}

func toInt(v any) (int, error) {
	n, err := toInt64(v)
	return int(n), err
}

func toString(v any) (string, error) {
	switch t := v.(type) {
	case string:
		return t, nil
	case []byte:
		return string(t), nil
	default:
		return "", fmt.Errorf("unexpected type %T", v)
	}
}

func toRating(v any) (float64, error) {
	var r float64
	switch t := v.(type) {
	case float64:
		r = t
	case float32:
		r = float64(t)
	case int64:
		r = float64(t)
	case int32:
		r = float64(t)
	case string, []byte:
		s, _ := toString(t)
		f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
		if err != nil {
			return 0, err
		}
		r = f
	default:
		return 0, fmt.Errorf("unexpected type %T", v)
	}
	return math.Round(r*10) / 10, nil
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999-07:00",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04:05.999999999",
}

func toTime(v any) (time.Time, error) {
	var s string
	switch t := v.(type) {
	case time.Time:
		return t.UTC(), nil
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return time.Time{}, fmt.Errorf("unexpected type %T", v)
	}
	for _, layout := range timeLayouts {
		if ts, err := time.Parse(layout, s); err == nil {
			return ts.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable time %q", s)
}
