package model

import (
	"time"
)

// Status 观看状态
type Status string

const (
	StatusPlanned   Status = "planned"   // 想看
	StatusWatching  Status = "watching"  // 在看
	StatusCompleted Status = "completed" // 看完
)

// Statuses 所有合法状态
var Statuses = []Status{StatusPlanned, StatusWatching, StatusCompleted}

// Valid 是否为合法状态
func (s Status) Valid() bool {
	switch s {
	case StatusPlanned, StatusWatching, StatusCompleted:
		return true
	default:
		return false
	}
}

// ParseStatus 解析状态字符串
func ParseStatus(raw string) (Status, bool) {
	s := Status(raw)
	return s, s.Valid()
}

// SeriesFields 剧集的可变字段（已校验）
type SeriesFields struct {
	Title           string  `json:"title"`
	Rating          float64 `json:"rating"`
	TotalSeasons    int     `json:"totalSeasons"`
	TotalEpisodes   int     `json:"totalEpisodes"`
	WatchedEpisodes int     `json:"watchedEpisodes"`
	Status          Status  `json:"status"`
}

// Series 剧集观看记录
type Series struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	SeriesFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// SeriesInput 创建 / 整体替换的请求体，所有字段必填（nil 表示未提供）
type SeriesInput struct {
	Title           *string  `json:"title" validate:"required,notblank,max=200"`
	Rating          *float64 `json:"rating" validate:"required,gte=0,lte=10"`
	TotalSeasons    *int     `json:"totalSeasons" validate:"required,gte=1"`
	TotalEpisodes   *int     `json:"totalEpisodes" validate:"required,gte=1"`
	WatchedEpisodes *int     `json:"watchedEpisodes" validate:"required,gte=0"`
	Status          *Status  `json:"status" validate:"required,series_status"`
}

// SeriesPatch 部分更新的请求体，任意字段子集
type SeriesPatch struct {
	Title           *string  `json:"title" validate:"omitempty,notblank,max=200"`
	Rating          *float64 `json:"rating" validate:"omitempty,gte=0,lte=10"`
	TotalSeasons    *int     `json:"totalSeasons" validate:"omitempty,gte=1"`
	TotalEpisodes   *int     `json:"totalEpisodes" validate:"omitempty,gte=1"`
	WatchedEpisodes *int     `json:"watchedEpisodes" validate:"omitempty,gte=0"`
	Status          *Status  `json:"status" validate:"omitempty,series_status"`
}

// Empty 是否没有任何字段
func (p SeriesPatch) Empty() bool {
	return p.Title == nil && p.Rating == nil && p.TotalSeasons == nil &&
		p.TotalEpisodes == nil && p.WatchedEpisodes == nil && p.Status == nil
}

// SeriesFilterInput 列表查询参数（原始字符串）
type SeriesFilterInput struct {
	Status string `form:"status"`
	Rating string `form:"rating"`
	Title  string `form:"title"`
}

// SeriesFilter 解析后的列表过滤条件，nil / 空值表示不过滤
type SeriesFilter struct {
	Status *Status
	Rating *float64
	Title  string
}
